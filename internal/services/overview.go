package services

import (
	"time"

	"github.com/fergcraven/coachline/internal/models"
)

// trendWindowDays is the rolling window for metric averages shown on
// the dashboard. Weight delta uses the full fetched range instead,
// since two weigh-ins rarely land in the same week.
const trendWindowDays = 7

type HabitLogReader interface {
	ListByClientRange(clientID uint, from string, to string) ([]models.HabitLog, error)
}

type CheckinReader interface {
	ListByClient(clientID uint) ([]models.CheckinRecord, error)
}

type BaselineReader interface {
	BaselineExists(clientID uint) (bool, error)
}

type DismissalReader interface {
	ListKeysForDay(clientID uint, date string) ([]string, error)
}

// OverviewService composes the calendar, streak, cycle, and reminder
// engines over storage collaborators. Each source degrades
// independently: one failing fetch only defaults the context fields it
// feeds and never fails the overview as a whole.
type OverviewService struct {
	habitLogs   HabitLogReader
	checkins    CheckinReader
	baselines   BaselineReader
	dismissals  DismissalReader
	diagnostics *Diagnostics
}

func NewOverviewService(habitLogs HabitLogReader, checkins CheckinReader, baselines BaselineReader, dismissals DismissalReader, diagnostics *Diagnostics) *OverviewService {
	if diagnostics == nil {
		diagnostics = NewDiagnostics()
	}
	return &OverviewService{
		habitLogs:   habitLogs,
		checkins:    checkins,
		baselines:   baselines,
		dismissals:  dismissals,
		diagnostics: diagnostics,
	}
}

type HabitTrends struct {
	AvgSteps      *float64 `json:"avg_steps"`
	AvgSleepHours *float64 `json:"avg_sleep_hours"`
	AvgProteinG   *float64 `json:"avg_protein_g"`
	WeightDelta   *float64 `json:"weight_delta"`
}

type ClientOverview struct {
	Today     CalendarDate         `json:"today"`
	Streak    int                  `json:"streak"`
	Trends    HabitTrends          `json:"trends"`
	Status    CycleStatus          `json:"status"`
	Standing  CheckinStanding      `json:"standing"`
	Context   ReminderContext      `json:"context"`
	Reminders []ReminderDefinition `json:"reminders"`
	Alerts    []Alert              `json:"alerts"`
}

// BuildOverview evaluates everything the client dashboard needs for one
// wall-clock instant, in the client's zone.
func (service *OverviewService) BuildOverview(clientID uint, timezone string, now time.Time) ClientOverview {
	today := FormatInTimezone(now, timezone)

	entries := service.fetchHabitLogs(clientID, today)
	logDates := LogDateSet(entries)
	_, hasTodayLog := logDates[today]

	status, standing := service.resolveCheckins(clientID, timezone, today)

	overview := ClientOverview{
		Today:  today,
		Streak: ComputeStreak(logDates, today, DefaultStreakLookback),
		Trends: HabitTrends{
			AvgSteps:      RollingAverage(entries, SelectSteps, AddDays(today, -(trendWindowDays-1)), today),
			AvgSleepHours: RollingAverage(entries, SelectSleepHours, AddDays(today, -(trendWindowDays-1)), today),
			AvgProteinG:   RollingAverage(entries, SelectProteinG, AddDays(today, -(trendWindowDays-1)), today),
			WeightDelta:   Delta(entries, SelectWeight),
		},
		Status:   status,
		Standing: standing,
		Context: ReminderContext{
			HasTodayLog:    hasTodayLog,
			BaselineExists: service.fetchBaselineExists(clientID),
			CheckinDue:     standing.Due,
		},
	}

	overview.Reminders = EvaluateReminders(overview.Context, service.fetchDismissedKeys(clientID, today))
	overview.Alerts = AlertsForStatus(status)
	return overview
}

func (service *OverviewService) fetchHabitLogs(clientID uint, today CalendarDate) []models.HabitLog {
	from := AddDays(today, -(DefaultStreakLookback - 1))
	entries, err := service.habitLogs.ListByClientRange(clientID, from.String(), today.String())
	if err != nil {
		service.diagnostics.ReportFetchFailure("habit logs", err)
		return nil
	}
	return entries
}

// resolveCheckins loads check-in history and derives cycle state. A
// storage error collapses to the safe default (nothing due, nothing
// submitted) rather than blocking the rest of the overview.
func (service *OverviewService) resolveCheckins(clientID uint, timezone string, today CalendarDate) (CycleStatus, CheckinStanding) {
	records, err := service.checkins.ListByClient(clientID)
	if err != nil {
		service.diagnostics.ReportFetchFailure("check-ins", err)
		return CycleStatusNoAlerts, CheckinStanding{}
	}

	rows := make([]CheckinRow, 0, len(records))
	for _, record := range records {
		rows = append(rows, RowFromRecord(record))
	}

	current := RowForDate(rows, WeekEndSaturday(today), timezone)
	return ResolveCycleStatus(today, current), StandingForToday(today, rows, timezone)
}

// fetchBaselineExists defaults to true on error: a failed lookup must
// not nag the client about a baseline they may already have.
func (service *OverviewService) fetchBaselineExists(clientID uint) bool {
	exists, err := service.baselines.BaselineExists(clientID)
	if err != nil {
		service.diagnostics.ReportFetchFailure("baseline", err)
		return true
	}
	return exists
}

func (service *OverviewService) fetchDismissedKeys(clientID uint, today CalendarDate) map[string]struct{} {
	keys, err := service.dismissals.ListKeysForDay(clientID, today.String())
	if err != nil {
		service.diagnostics.ReportFetchFailure("dismissals", err)
		return map[string]struct{}{}
	}
	dismissed := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		dismissed[key] = struct{}{}
	}
	return dismissed
}
