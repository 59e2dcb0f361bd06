package services

import (
	"testing"
	"time"

	"github.com/fergcraven/coachline/internal/models"
)

// 2024-05-03 is a Friday, 2024-05-04 a Saturday, 2024-05-01 a Wednesday.

func TestResolveCycleStatus(t *testing.T) {
	t.Parallel()

	submittedAt := time.Date(2024, 5, 3, 18, 0, 0, 0, time.UTC)

	cases := []struct {
		name  string
		today string
		row   CheckinRow
		want  CycleStatus
	}{
		{
			name:  "saturday with no record is due",
			today: "2024-05-04",
			row:   nil,
			want:  CycleStatusDueToday,
		},
		{
			name:  "friday with no record is due",
			today: "2024-05-03",
			row:   nil,
			want:  CycleStatusDueToday,
		},
		{
			name:  "midweek is quiet even with an unsubmitted record",
			today: "2024-05-01",
			row:   CheckinRow{"weekEndingSaturday": "2024-05-04"},
			want:  CycleStatusNoAlerts,
		},
		{
			name:  "unsubmitted record in the window is in progress",
			today: "2024-05-04",
			row:   CheckinRow{"weekEndingSaturday": "2024-05-04"},
			want:  CycleStatusInProgress,
		},
		{
			name:  "submitted without feedback waits on review",
			today: "2024-05-04",
			row:   CheckinRow{"weekEndingSaturday": "2024-05-04", "submittedAt": submittedAt},
			want:  CycleStatusSubmittedWaiting,
		},
		{
			name:  "blank feedback still waits",
			today: "2024-05-04",
			row:   CheckinRow{"weekEndingSaturday": "2024-05-04", "submittedAt": submittedAt, "trainerFeedback": "   "},
			want:  CycleStatusSubmittedWaiting,
		},
		{
			name:  "submitted with feedback is reviewed",
			today: "2024-05-03",
			row:   CheckinRow{"weekEndingSaturday": "2024-05-04", "submittedAt": submittedAt, "trainerFeedback": "Nice work"},
			want:  CycleStatusReviewed,
		},
		{
			name:  "legacy ptFeedback field counts as reviewed",
			today: "2024-05-04",
			row:   CheckinRow{"weekEndingSaturday": "2024-05-04", "submittedAt": submittedAt, "ptFeedback": "Keep it up"},
			want:  CycleStatusReviewed,
		},
	}

	for _, testCase := range cases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			got := ResolveCycleStatus(mustParseDay(t, testCase.today), testCase.row)
			if got != testCase.want {
				t.Fatalf("expected %s, got %s", testCase.want, got)
			}
		})
	}
}

func TestSubmittedFromRow_LegacyShapes(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		row  CheckinRow
		want bool
	}{
		{name: "explicit flag", row: CheckinRow{"submitted": true}, want: true},
		{name: "submission timestamp", row: CheckinRow{"submittedAt": time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}, want: true},
		{name: "status completed", row: CheckinRow{"status": "completed"}, want: true},
		{name: "status uppercase done", row: CheckinRow{"status": " DONE "}, want: true},
		{name: "status pending is not submitted", row: CheckinRow{"status": "pending"}, want: false},
		{name: "createdAt fallback for pre-flag rows", row: CheckinRow{"status": "completed", "createdAt": "2024-01-01T00:00:00Z"}, want: true},
		{name: "createdAt alone counts", row: CheckinRow{"createdAt": "2024-01-01T00:00:00Z"}, want: true},
		{name: "nil submittedAt pointer is absent", row: CheckinRow{"submittedAt": (*time.Time)(nil)}, want: false},
		{name: "empty row", row: CheckinRow{}, want: false},
	}

	for _, testCase := range cases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			if got := SubmittedFromRow(testCase.row); got != testCase.want {
				t.Fatalf("expected %v, got %v", testCase.want, got)
			}
		})
	}
}

func TestSubmittedExplicitlyIgnoresCreatedAt(t *testing.T) {
	t.Parallel()

	// Every persisted row has a creation timestamp; only an explicit
	// marker may count on write paths, or no draft could ever be
	// promoted.
	draft := CheckinRow{"createdAt": time.Date(2024, 5, 4, 8, 0, 0, 0, time.UTC)}
	if SubmittedExplicitly(draft) {
		t.Fatal("expected a bare created row to not be explicitly submitted")
	}
	if !SubmittedFromRow(draft) {
		t.Fatal("expected the loose predicate to keep its createdAt fallback")
	}

	submitted := CheckinRow{
		"createdAt":   time.Date(2024, 5, 4, 8, 0, 0, 0, time.UTC),
		"submittedAt": time.Date(2024, 5, 4, 9, 0, 0, 0, time.UTC),
	}
	if !SubmittedExplicitly(submitted) {
		t.Fatal("expected a submission timestamp to count")
	}
	if !SubmittedExplicitly(CheckinRow{"status": "completed"}) {
		t.Fatal("expected a terminal status to count")
	}
}

func TestReviewFromRow(t *testing.T) {
	t.Parallel()

	reviewedAt := time.Date(2024, 5, 5, 9, 0, 0, 0, time.UTC)

	cases := []struct {
		name          string
		row           CheckinRow
		wantReviewed  bool
		wantSupported bool
	}{
		{
			name:          "no review keys means review is untracked",
			row:           CheckinRow{"submittedAt": reviewedAt},
			wantReviewed:  false,
			wantSupported: false,
		},
		{
			name:          "key present but unset is supported and not reviewed",
			row:           CheckinRow{"reviewedAt": (*time.Time)(nil)},
			wantReviewed:  false,
			wantSupported: true,
		},
		{
			name:          "reviewedAt set",
			row:           CheckinRow{"reviewedAt": reviewedAt},
			wantReviewed:  true,
			wantSupported: true,
		},
		{
			name:          "reviewedBy set",
			row:           CheckinRow{"reviewedBy": "coach@example.com"},
			wantReviewed:  true,
			wantSupported: true,
		},
		{
			name:          "legacy coachReviewedAt",
			row:           CheckinRow{"coachReviewedAt": reviewedAt},
			wantReviewed:  true,
			wantSupported: true,
		},
		{
			name:          "explicit reviewed flag false",
			row:           CheckinRow{"reviewed": false},
			wantReviewed:  false,
			wantSupported: true,
		},
	}

	for _, testCase := range cases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			got := ReviewFromRow(testCase.row)
			if got.Reviewed != testCase.wantReviewed {
				t.Fatalf("expected reviewed=%v, got %v", testCase.wantReviewed, got.Reviewed)
			}
			if got.Supported != testCase.wantSupported {
				t.Fatalf("expected supported=%v, got %v", testCase.wantSupported, got.Supported)
			}
		})
	}
}

func TestRowFromRecordAlwaysSupportsReview(t *testing.T) {
	t.Parallel()

	// The current schema tracks review, so even an unreviewed record
	// reports support, so callers can trust a false "reviewed".
	row := RowFromRecord(models.CheckinRecord{ClientID: 1, WeekEndingSaturday: "2024-05-04"})
	state := ReviewFromRow(row)
	if !state.Supported {
		t.Fatal("expected review support for current-schema records")
	}
	if state.Reviewed {
		t.Fatal("expected unreviewed record")
	}
}

func TestLatestRow(t *testing.T) {
	t.Parallel()

	early := time.Date(2024, 4, 20, 12, 0, 0, 0, time.UTC)
	late := time.Date(2024, 5, 4, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name   string
		rows   []CheckinRow
		wantID any
	}{
		{
			name: "creation time orders rows without a submission",
			rows: []CheckinRow{
				{"id": 1, "createdAt": late},
				{"id": 2, "submittedAt": early},
			},
			wantID: 1,
		},
		{
			name: "latest canonical timestamp wins",
			rows: []CheckinRow{
				{"id": 1, "submittedAt": early},
				{"id": 2, "submittedAt": late},
			},
			wantID: 2,
		},
		{
			name: "date-only legacy field at UTC midnight",
			rows: []CheckinRow{
				{"id": 1, "checkinDate": "2024-04-20"},
				{"id": 2, "checkinDate": "2024-05-04"},
			},
			wantID: 2,
		},
		{
			name: "tie falls back to first row encountered",
			rows: []CheckinRow{
				{"id": 1, "submittedAt": late},
				{"id": 2, "submittedAt": late},
			},
			wantID: 1,
		},
		{
			name: "unparseable timestamps fall back to first row",
			rows: []CheckinRow{
				{"id": 1},
				{"id": 2},
			},
			wantID: 1,
		},
	}

	for _, testCase := range cases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			got := LatestRow(testCase.rows)
			if got == nil {
				t.Fatal("expected a row, got nil")
			}
			if got["id"] != testCase.wantID {
				t.Fatalf("expected row %v, got %v", testCase.wantID, got["id"])
			}
		})
	}

	if got := LatestRow(nil); got != nil {
		t.Fatalf("expected nil for no rows, got %v", got)
	}
}

func TestDueForToday(t *testing.T) {
	t.Parallel()

	saturday := mustParseDay(t, "2024-05-04")

	if !DueForToday(saturday, nil, "UTC") {
		t.Fatal("expected due on a saturday with no records")
	}

	rows := []CheckinRow{{"weekEndingSaturday": "2024-05-04"}}
	if DueForToday(saturday, rows, "UTC") {
		t.Fatal("expected not due when a record is bucketed to today")
	}

	friday := mustParseDay(t, "2024-05-03")
	if DueForToday(friday, nil, "UTC") {
		t.Fatal("expected not due on a friday")
	}
}

func TestStandingForToday(t *testing.T) {
	t.Parallel()

	saturday := mustParseDay(t, "2024-05-04")
	submittedAt := time.Date(2024, 5, 4, 10, 0, 0, 0, time.UTC)

	rows := []CheckinRow{
		{"weekEndingSaturday": "2024-04-27", "submittedAt": submittedAt.AddDate(0, 0, -7)},
		{"weekEndingSaturday": "2024-05-04", "submittedAt": submittedAt, "reviewedAt": submittedAt.Add(time.Hour)},
	}

	standing := StandingForToday(saturday, rows, "UTC")
	if standing.Due {
		t.Fatal("expected not due with a record for this week")
	}
	if !standing.Submitted || !standing.Reviewed || !standing.ReviewSupported {
		t.Fatalf("expected submitted and reviewed standing, got %+v", standing)
	}

	// An old record must never feed the current cycle's status.
	stale := []CheckinRow{{"weekEndingSaturday": "2024-04-27", "submittedAt": submittedAt.AddDate(0, 0, -7)}}
	standing = StandingForToday(saturday, stale, "UTC")
	if standing.Submitted || standing.Reviewed {
		t.Fatalf("expected empty standing from a stale record, got %+v", standing)
	}
	if !standing.Due {
		t.Fatal("expected due on saturday with no record for today")
	}
}

func TestNextCycleDate(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name      string
		start     string
		frequency string
		after     string
		want      string
	}{
		{name: "weekly from recent start", start: "2024-05-04", frequency: models.CheckinFrequencyWeekly, after: "2024-05-04", want: "2024-05-11"},
		{name: "weekly from ancient start terminates", start: "2015-01-03", frequency: models.CheckinFrequencyWeekly, after: "2024-05-01", want: "2024-05-04"},
		{name: "biweekly", start: "2024-04-06", frequency: models.CheckinFrequencyBiweekly, after: "2024-05-01", want: "2024-05-04"},
		{name: "monthly is a flat 30 days", start: "2024-01-01", frequency: models.CheckinFrequencyMonthly, after: "2024-01-15", want: "2024-01-31"},
		{name: "future start returns itself", start: "2024-06-01", frequency: models.CheckinFrequencyWeekly, after: "2024-05-01", want: "2024-06-01"},
		{name: "unknown frequency defaults weekly", start: "2024-05-04", frequency: "fortnightly-ish", after: "2024-05-04", want: "2024-05-11"},
	}

	for _, testCase := range cases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			got := NextCycleDate(mustParseDay(t, testCase.start), testCase.frequency, mustParseDay(t, testCase.after))
			if got.String() != testCase.want {
				t.Fatalf("expected %s, got %s", testCase.want, got)
			}
		})
	}
}

func TestRowDateProjectsTimestamps(t *testing.T) {
	t.Parallel()

	// 01:30 UTC on the 2nd is still the 1st in New York.
	instant := time.Date(2024, 3, 2, 1, 30, 0, 0, time.UTC)
	row := CheckinRow{"submittedAt": instant}
	if got := RowDate(row, "America/New_York"); got.String() != "2024-03-01" {
		t.Fatalf("expected 2024-03-01, got %s", got)
	}

	// Date-only fields pass through without zone shifting.
	row = CheckinRow{"weekStart": "2024-05-04"}
	if got := RowDate(row, "America/New_York"); got.String() != "2024-05-04" {
		t.Fatalf("expected 2024-05-04, got %s", got)
	}
}
