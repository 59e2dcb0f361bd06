package models

import "time"

const (
	CheckinFrequencyWeekly   = "weekly"
	CheckinFrequencyBiweekly = "biweekly"
	CheckinFrequencyMonthly  = "monthly"
)

// CheckinRecord is one weekly check-in, keyed by the Saturday that ends
// its cycle. Older client versions wrote other date and review columns;
// those survive here as nullable legacy fields and are interpreted by
// the resolver, not by call sites.
type CheckinRecord struct {
	ID                 uint       `gorm:"primaryKey" json:"id"`
	ClientID           uint       `gorm:"not null;index:idx_checkin_client_week" json:"client_id"`
	WeekEndingSaturday string     `gorm:"type:text;index:idx_checkin_client_week" json:"week_ending_saturday"`
	SubmittedAt        *time.Time `json:"submitted_at"`
	TrainerFeedback    string     `json:"trainer_feedback"`

	// Legacy date aliases for WeekEndingSaturday.
	CheckinDate *time.Time `json:"checkin_date,omitempty"`
	WeekStart   *time.Time `json:"week_start,omitempty"`
	PeriodStart *time.Time `json:"period_start,omitempty"`

	// Legacy review markers. Any one of them set means reviewed.
	Reviewed        *bool      `json:"reviewed,omitempty"`
	ReviewedAt      *time.Time `json:"reviewed_at"`
	ReviewedBy      string     `json:"reviewed_by"`
	CoachReviewedAt *time.Time `json:"coach_reviewed_at,omitempty"`

	// Legacy submission markers.
	Status    string `json:"status,omitempty"`
	Submitted *bool  `json:"submitted,omitempty"`

	Wins       string    `json:"wins"`
	Challenges string    `json:"challenges"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// CheckinAssignment is a trainer-configured recurring check-in schedule
// for a client.
type CheckinAssignment struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	ClientID         uint      `gorm:"not null;uniqueIndex" json:"client_id"`
	CheckinStartDate string    `gorm:"type:text;not null" json:"checkin_start_date"`
	Frequency        string    `gorm:"not null;default:weekly" json:"frequency"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
