package api

import (
	"errors"

	"github.com/fergcraven/coachline/internal/db"
	"github.com/fergcraven/coachline/internal/services"
	"gorm.io/gorm"
)

const (
	authCookieName = "coachline_token"
	contextUserKey = "coachline_user"
)

type Handler struct {
	db           *gorm.DB
	secretKey    []byte
	cookieSecure bool

	repositories *db.Repositories
	overview     *services.OverviewService
	diagnostics  *services.Diagnostics
}

func NewHandler(database *gorm.DB, secretKey string, cookieSecure bool) (*Handler, error) {
	if database == nil {
		return nil, errors.New("nil database")
	}
	if len(secretKey) == 0 {
		return nil, errors.New("empty secret key")
	}

	handler := &Handler{
		db:           database,
		secretKey:    []byte(secretKey),
		cookieSecure: cookieSecure,
	}
	handler.wireDependencies()
	return handler, nil
}

func (handler *Handler) wireDependencies() {
	handler.repositories = db.NewRepositories(handler.db)
	handler.diagnostics = services.NewDiagnostics()
	handler.overview = services.NewOverviewService(
		handler.repositories.HabitLogs,
		handler.repositories.Checkins,
		handler.repositories.HabitLogs,
		handler.repositories.Dismissals,
		handler.diagnostics,
	)
}
