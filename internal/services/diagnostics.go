package services

import (
	"log"
	"sync"
)

// Diagnostics rate-limits fetch-failure logging to once per source per
// process, so a persistently failing collaborator cannot spam the log.
// It is owned by the long-lived service that instantiates the engine;
// there is no package-global state.
type Diagnostics struct {
	onces sync.Map // source -> *sync.Once
}

func NewDiagnostics() *Diagnostics {
	return &Diagnostics{}
}

func (diagnostics *Diagnostics) ReportFetchFailure(source string, err error) {
	if err == nil {
		return
	}
	entry, _ := diagnostics.onces.LoadOrStore(source, &sync.Once{})
	entry.(*sync.Once).Do(func() {
		log.Printf("overview: %s fetch failed, degrading to defaults (logged once): %v", source, err)
	})
}
