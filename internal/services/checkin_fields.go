package services

import (
	"strings"
	"time"

	"github.com/fergcraven/coachline/internal/models"
)

// CheckinRow is a loosely-typed view of one check-in record. Historical
// schema variants used different field names for the same semantic
// fact, so submission and review are derived here by predicate rather
// than read from a rigid struct. A key present with a nil value means
// the record's schema carries the field but it is unset; a missing key
// means the schema never had it.
type CheckinRow map[string]any

var legacyDateKeys = []string{"checkinDate", "weekStart", "periodStart"}

var submittedStatuses = map[string]bool{
	"submitted": true,
	"complete":  true,
	"completed": true,
	"done":      true,
}

// RowFromRecord projects a current-schema record into the row map.
// Review keys are always present because the schema tracks them.
func RowFromRecord(record models.CheckinRecord) CheckinRow {
	row := CheckinRow{
		"id":              record.ID,
		"submittedAt":     record.SubmittedAt,
		"reviewed":        record.Reviewed,
		"reviewedAt":      record.ReviewedAt,
		"coachReviewedAt": record.CoachReviewedAt,
		"submitted":       record.Submitted,
	}
	if record.WeekEndingSaturday != "" {
		row["weekEndingSaturday"] = record.WeekEndingSaturday
	}
	if record.TrainerFeedback != "" {
		row["trainerFeedback"] = record.TrainerFeedback
	}
	if record.ReviewedBy != "" {
		row["reviewedBy"] = record.ReviewedBy
	}
	if record.Status != "" {
		row["status"] = record.Status
	}
	if record.CheckinDate != nil {
		row["checkinDate"] = record.CheckinDate
	}
	if record.WeekStart != nil {
		row["weekStart"] = record.WeekStart
	}
	if record.PeriodStart != nil {
		row["periodStart"] = record.PeriodStart
	}
	if !record.CreatedAt.IsZero() {
		row["createdAt"] = record.CreatedAt
	}
	return row
}

// SubmittedFromRow reports whether a record, in any of its historical
// shapes, has been submitted: an explicit flag, a submission timestamp,
// a terminal status, or, for rows that predate all of those, a
// creation timestamp. The createdAt fallback is a legacy-row heuristic
// carried over from the original data; it can mask a created-but-draft
// row, and is kept as-is for behavioral compatibility.
func SubmittedFromRow(row CheckinRow) bool {
	if SubmittedExplicitly(row) {
		return true
	}
	_, created := rowTime(row, "createdAt")
	return created
}

// SubmittedExplicitly is SubmittedFromRow without the createdAt
// fallback: only an explicit submission marker counts. Write paths use
// this one, because every persisted row carries a creation timestamp
// and the heuristic would make unsubmitted drafts look submitted.
func SubmittedExplicitly(row CheckinRow) bool {
	if flag, ok := rowBool(row, "submitted"); ok && flag {
		return true
	}
	if _, ok := rowTime(row, "submittedAt"); ok {
		return true
	}
	if status, ok := rowString(row, "status"); ok && submittedStatuses[strings.ToLower(strings.TrimSpace(status))] {
		return true
	}
	return false
}

// ReviewState distinguishes "not reviewed" from "review not tracked for
// this record shape".
type ReviewState struct {
	Reviewed  bool
	Supported bool
}

func ReviewFromRow(row CheckinRow) ReviewState {
	state := ReviewState{}
	for _, key := range []string{"reviewed", "reviewedAt", "reviewedBy", "coachReviewedAt"} {
		if _, present := row[key]; present {
			state.Supported = true
			break
		}
	}
	if !state.Supported {
		return state
	}

	if flag, ok := rowBool(row, "reviewed"); ok && flag {
		state.Reviewed = true
	}
	if _, ok := rowTime(row, "reviewedAt"); ok {
		state.Reviewed = true
	}
	if by, ok := rowString(row, "reviewedBy"); ok && strings.TrimSpace(by) != "" {
		state.Reviewed = true
	}
	if _, ok := rowTime(row, "coachReviewedAt"); ok {
		state.Reviewed = true
	}
	return state
}

// FeedbackFromRow returns the trainer's feedback text under either its
// current or legacy field name, trimmed.
func FeedbackFromRow(row CheckinRow) string {
	for _, key := range []string{"trainerFeedback", "ptFeedback", "feedback"} {
		if text, ok := rowString(row, key); ok {
			if trimmed := strings.TrimSpace(text); trimmed != "" {
				return trimmed
			}
		}
	}
	return ""
}

// CanonicalTimestamp derives the instant used to order heterogeneous
// rows: submission time, else creation time, else a date-only field at
// UTC midnight.
func CanonicalTimestamp(row CheckinRow) (time.Time, bool) {
	if at, ok := rowTime(row, "submittedAt"); ok {
		return at, true
	}
	if at, ok := rowTime(row, "createdAt"); ok {
		return at, true
	}
	for _, key := range legacyDateKeys {
		if at, ok := rowTime(row, key); ok {
			return at, true
		}
	}
	return time.Time{}, false
}

// RowDate buckets a record into the day identifying its cycle, in the
// client's zone. Date-only fields pass through; timestamp fields are
// projected via the calendar engine so the ambiguity is resolved in one
// place.
func RowDate(row CheckinRow, timezone string) CalendarDate {
	if raw, ok := rowString(row, "weekEndingSaturday"); ok {
		if date, err := ParseCalendarDate(raw); err == nil {
			return date
		}
	}
	for _, key := range legacyDateKeys {
		if at, ok := rowTime(row, key); ok {
			return CalendarDate(at.UTC().Format(calendarDateLayout))
		}
	}
	if at, ok := rowTime(row, "submittedAt"); ok {
		return FormatInTimezone(at, timezone)
	}
	if at, ok := rowTime(row, "createdAt"); ok {
		return FormatInTimezone(at, timezone)
	}
	return ""
}

func rowTime(row CheckinRow, key string) (time.Time, bool) {
	raw, present := row[key]
	if !present || raw == nil {
		return time.Time{}, false
	}
	switch value := raw.(type) {
	case time.Time:
		if value.IsZero() {
			return time.Time{}, false
		}
		return value, true
	case *time.Time:
		if value == nil || value.IsZero() {
			return time.Time{}, false
		}
		return *value, true
	case string:
		return parseFlexibleTime(value)
	default:
		return time.Time{}, false
	}
}

// parseFlexibleTime accepts RFC3339 timestamps and bare dates, the two
// encodings legacy rows arrive in.
func parseFlexibleTime(raw string) (time.Time, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return time.Time{}, false
	}
	if at, err := time.Parse(time.RFC3339, trimmed); err == nil {
		return at, true
	}
	if at, err := time.ParseInLocation(calendarDateLayout, trimmed, time.UTC); err == nil {
		return at, true
	}
	return time.Time{}, false
}

func rowBool(row CheckinRow, key string) (bool, bool) {
	raw, present := row[key]
	if !present || raw == nil {
		return false, false
	}
	switch value := raw.(type) {
	case bool:
		return value, true
	case *bool:
		if value == nil {
			return false, false
		}
		return *value, true
	default:
		return false, false
	}
}

func rowString(row CheckinRow, key string) (string, bool) {
	raw, present := row[key]
	if !present || raw == nil {
		return "", false
	}
	switch value := raw.(type) {
	case string:
		return value, true
	case CalendarDate:
		return string(value), true
	default:
		return "", false
	}
}
