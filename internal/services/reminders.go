package services

// ReminderContext is the composed view a reminder predicate sees. It is
// rebuilt on every evaluation and never persisted.
type ReminderContext struct {
	HasTodayLog    bool `json:"has_today_log"`
	BaselineExists bool `json:"baseline_exists"`
	CheckinDue     bool `json:"checkin_due"`
}

const (
	SeverityInfo   = "info"
	SeverityAction = "action"
)

// ReminderDefinition is a static catalog entry: a dismissible nudge
// with a pure relevance predicate.
type ReminderDefinition struct {
	Key         string `json:"key"`
	Title       string `json:"title"`
	Description string `json:"description"`
	CTALabel    string `json:"cta_label"`
	CTATarget   string `json:"cta_target"`
	Severity    string `json:"severity"`
	IsRelevant  func(context ReminderContext) bool `json:"-"`
}

// reminderCatalog is fixed, in-process data. Declaration order is the
// display order; there is no priority scoring beyond it.
var reminderCatalog = []ReminderDefinition{
	{
		Key:         "log_today",
		Title:       "Log your habits",
		Description: "You haven't logged anything today. A quick entry keeps your streak alive.",
		CTALabel:    "Log now",
		CTATarget:   "/log",
		Severity:    SeverityAction,
		IsRelevant: func(context ReminderContext) bool {
			return !context.HasTodayLog
		},
	},
	{
		Key:         "complete_baseline",
		Title:       "Finish your baseline",
		Description: "Your trainer needs starting measurements to track progress.",
		CTALabel:    "Add baseline",
		CTATarget:   "/baseline",
		Severity:    SeverityInfo,
		IsRelevant: func(context ReminderContext) bool {
			return !context.BaselineExists
		},
	},
	{
		Key:         "checkin_due",
		Title:       "Weekly check-in due",
		Description: "Your check-in closes out this week. Submit it so your trainer can review.",
		CTALabel:    "Start check-in",
		CTATarget:   "/checkin",
		Severity:    SeverityAction,
		IsRelevant: func(context ReminderContext) bool {
			return context.CheckinDue
		},
	},
}

// ReminderCatalog exposes a copy of the catalog for display surfaces.
func ReminderCatalog() []ReminderDefinition {
	out := make([]ReminderDefinition, len(reminderCatalog))
	copy(out, reminderCatalog)
	return out
}

// EvaluateReminders filters the catalog against the context, preserving
// catalog order, then drops entries the client dismissed for today.
func EvaluateReminders(context ReminderContext, dismissedKeys map[string]struct{}) []ReminderDefinition {
	relevant := make([]ReminderDefinition, 0, len(reminderCatalog))
	for _, definition := range reminderCatalog {
		if !definition.IsRelevant(context) {
			continue
		}
		if _, dismissed := dismissedKeys[definition.Key]; dismissed {
			continue
		}
		relevant = append(relevant, definition)
	}
	return relevant
}

// Alert is a time-sensitive, non-dismissible notice derived straight
// from the check-in cycle state.
type Alert struct {
	Key    string      `json:"key"`
	Title  string      `json:"title"`
	Body   string      `json:"body"`
	Status CycleStatus `json:"status"`
}

// AlertsForStatus maps cycle states 1:1 to display copy. Unlike
// reminders, alerts cannot be dismissed.
func AlertsForStatus(status CycleStatus) []Alert {
	switch status {
	case CycleStatusDueToday:
		return []Alert{{
			Key:    "checkin_due_today",
			Title:  "Check-in due today",
			Body:   "Your weekly check-in is due. Submit it before the week closes.",
			Status: status,
		}}
	case CycleStatusInProgress:
		return []Alert{{
			Key:    "checkin_in_progress",
			Title:  "Check-in started",
			Body:   "You have an unsubmitted check-in for this week. Finish and submit it.",
			Status: status,
		}}
	case CycleStatusSubmittedWaiting:
		return []Alert{{
			Key:    "checkin_awaiting_review",
			Title:  "Check-in submitted",
			Body:   "Your check-in is with your trainer. You'll see feedback here once it's reviewed.",
			Status: status,
		}}
	case CycleStatusReviewed:
		return []Alert{{
			Key:    "checkin_reviewed",
			Title:  "Feedback ready",
			Body:   "Your trainer reviewed this week's check-in. Read the feedback.",
			Status: status,
		}}
	default:
		return []Alert{}
	}
}
