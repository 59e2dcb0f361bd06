package services

import (
	"github.com/fergcraven/coachline/internal/models"
)

// CycleStatus is the display state of the current weekly check-in
// cycle. It is derived per evaluation and never stored.
type CycleStatus string

const (
	CycleStatusDueToday         CycleStatus = "due_today"
	CycleStatusInProgress       CycleStatus = "in_progress"
	CycleStatusSubmittedWaiting CycleStatus = "submitted_waiting"
	CycleStatusReviewed         CycleStatus = "reviewed"
	CycleStatusNoAlerts         CycleStatus = "no_alerts"
)

const (
	weekdayFriday   = 5
	weekdaySaturday = 6
)

// ResolveCycleStatus derives the cycle state from today and the record
// (possibly nil) for the current week-ending-Saturday. The cycle is
// only actionable on its due days: outside Friday and Saturday the
// answer is no_alerts even when an unsubmitted record exists. Within
// the window the transition checks the submission timestamp directly;
// the looser SubmittedFromRow predicate serves other call sites.
func ResolveCycleStatus(today CalendarDate, row CheckinRow) CycleStatus {
	weekday := Weekday(today)
	if weekday != weekdayFriday && weekday != weekdaySaturday {
		return CycleStatusNoAlerts
	}

	if row == nil {
		return CycleStatusDueToday
	}
	if _, submitted := rowTime(row, "submittedAt"); !submitted {
		return CycleStatusInProgress
	}
	if FeedbackFromRow(row) == "" {
		return CycleStatusSubmittedWaiting
	}
	return CycleStatusReviewed
}

// LatestRow picks the most recent record when a query returned all-time
// history rather than just the current cycle. Ordering uses the
// canonical timestamp; rows without one fall back to the first row
// encountered.
func LatestRow(rows []CheckinRow) CheckinRow {
	if len(rows) == 0 {
		return nil
	}

	latest := rows[0]
	latestAt, latestOK := CanonicalTimestamp(latest)
	for _, row := range rows[1:] {
		at, ok := CanonicalTimestamp(row)
		if !ok {
			continue
		}
		if !latestOK || at.After(latestAt) {
			latest = row
			latestAt = at
			latestOK = true
		}
	}
	return latest
}

// RowForDate filters history down to the record whose cycle date equals
// the given week-ending-Saturday, resolving duplicates via LatestRow.
func RowForDate(rows []CheckinRow, cycleDate CalendarDate, timezone string) CheckinRow {
	matches := make([]CheckinRow, 0, 1)
	for _, row := range rows {
		if RowDate(row, timezone) == cycleDate {
			matches = append(matches, row)
		}
	}
	return LatestRow(matches)
}

// DueForToday reports whether a check-in must be started today: today
// is a Saturday and no record is bucketed to it.
func DueForToday(today CalendarDate, rows []CheckinRow, timezone string) bool {
	if Weekday(today) != weekdaySaturday {
		return false
	}
	for _, row := range rows {
		if RowDate(row, timezone) == today {
			return false
		}
	}
	return true
}

// CheckinStanding summarizes the cycle for reminder evaluation. Its
// zero value is the safe default used when loading rows fails.
type CheckinStanding struct {
	Due             bool `json:"due"`
	Submitted       bool `json:"submitted"`
	Reviewed        bool `json:"reviewed"`
	ReviewSupported bool `json:"review_supported"`
}

// StandingForToday evaluates the standing from all known rows for a
// client, in the client's zone.
func StandingForToday(today CalendarDate, rows []CheckinRow, timezone string) CheckinStanding {
	standing := CheckinStanding{
		Due: DueForToday(today, rows, timezone),
	}
	current := RowForDate(rows, WeekEndSaturday(today), timezone)
	if current == nil {
		return standing
	}
	standing.Submitted = SubmittedFromRow(current)
	review := ReviewFromRow(current)
	standing.Reviewed = review.Reviewed
	standing.ReviewSupported = review.Supported
	return standing
}

func frequencyStepDays(frequency string) int {
	switch frequency {
	case models.CheckinFrequencyBiweekly:
		return 14
	case models.CheckinFrequencyMonthly:
		return 30
	default:
		return 7
	}
}

// NextCycleDate returns the first cycle date strictly after the
// reference, advancing from the assignment's start date in fixed steps.
// The advance count is computed arithmetically so a start date years in
// the past costs the same as yesterday's.
func NextCycleDate(startDate CalendarDate, frequency string, after CalendarDate) CalendarDate {
	if startDate.After(after) {
		return startDate
	}
	step := frequencyStepDays(frequency)
	elapsed := DiffDays(after, startDate)
	advances := elapsed/step + 1
	return AddDays(startDate, advances*step)
}
