package services

import (
	"math"
	"sort"

	"github.com/fergcraven/coachline/internal/models"
)

// DefaultStreakLookback caps how far back a streak walk goes. A streak
// can never exceed the lookback window.
const DefaultStreakLookback = 30

// MetricSelector extracts one numeric metric from a habit log, or nil
// when the log carries no usable value for it.
type MetricSelector func(entry models.HabitLog) *float64

func SelectSteps(entry models.HabitLog) *float64 {
	if entry.Steps == nil {
		return nil
	}
	value := float64(*entry.Steps)
	return &value
}

func SelectSleepHours(entry models.HabitLog) *float64 {
	return entry.SleepHours
}

func SelectProteinG(entry models.HabitLog) *float64 {
	return entry.ProteinG
}

// SelectWeight requires the unit tag: a weight value without a unit is
// not comparable and does not count.
func SelectWeight(entry models.HabitLog) *float64 {
	if entry.WeightValue == nil || entry.WeightUnit == "" {
		return nil
	}
	return entry.WeightValue
}

// LogDateSet dedupes rows into the set of days with a log present.
func LogDateSet(entries []models.HabitLog) map[CalendarDate]struct{} {
	dates := make(map[CalendarDate]struct{}, len(entries))
	for _, entry := range entries {
		dates[CalendarDate(entry.LogDate)] = struct{}{}
	}
	return dates
}

// ComputeStreak counts consecutive logged days walking backward from
// referenceDate, stopping at the first gap or after maxLookback days.
func ComputeStreak(logDates map[CalendarDate]struct{}, referenceDate CalendarDate, maxLookback int) int {
	if referenceDate.IsZero() || len(logDates) == 0 {
		return 0
	}
	if maxLookback <= 0 {
		maxLookback = DefaultStreakLookback
	}

	streak := 0
	cursor := referenceDate
	for streak < maxLookback {
		if _, logged := logDates[cursor]; !logged {
			break
		}
		streak++
		cursor = AddDays(cursor, -1)
	}
	return streak
}

// dedupeByLogDate collapses duplicate same-day rows, keeping the row
// seen last for each date, so aggregates count every day exactly once
// regardless of where the rows came from.
func dedupeByLogDate(entries []models.HabitLog) []models.HabitLog {
	indexByDate := make(map[string]int, len(entries))
	deduped := make([]models.HabitLog, 0, len(entries))
	for _, entry := range entries {
		if i, seen := indexByDate[entry.LogDate]; seen {
			deduped[i] = entry
			continue
		}
		indexByDate[entry.LogDate] = len(deduped)
		deduped = append(deduped, entry)
	}
	return deduped
}

// RollingAverage returns the rounded mean of a metric over rows whose
// date falls in [windowStart, windowEnd], or nil when no numeric
// samples exist; "no data" is not zero. Duplicate same-day rows count
// once.
func RollingAverage(entries []models.HabitLog, selector MetricSelector, windowStart CalendarDate, windowEnd CalendarDate) *float64 {
	sum := 0.0
	samples := 0
	for _, entry := range dedupeByLogDate(entries) {
		date := CalendarDate(entry.LogDate)
		if date.Before(windowStart) || date.After(windowEnd) {
			continue
		}
		value := selector(entry)
		if value == nil {
			continue
		}
		sum += *value
		samples++
	}
	if samples == 0 {
		return nil
	}
	mean := math.Round(sum / float64(samples))
	return &mean
}

// Delta returns last numeric sample minus first numeric sample across
// the rows in date order, or nil with fewer than two samples. Duplicate
// same-day rows count once.
func Delta(entries []models.HabitLog, selector MetricSelector) *float64 {
	sorted := dedupeByLogDate(entries)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].LogDate < sorted[j].LogDate
	})

	var first, last float64
	samples := 0
	for _, entry := range sorted {
		value := selector(entry)
		if value == nil {
			continue
		}
		if samples == 0 {
			first = *value
		}
		last = *value
		samples++
	}
	if samples < 2 {
		return nil
	}
	delta := last - first
	return &delta
}
