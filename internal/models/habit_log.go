package models

import "time"

const (
	WeightUnitKg = "kg"
	WeightUnitLb = "lb"
)

// HabitLog is one client's log for one calendar day. LogDate is the
// day bucket in the client's timezone, stored as YYYY-MM-DD.
type HabitLog struct {
	ID          uint     `gorm:"primaryKey" json:"id"`
	ClientID    uint     `gorm:"not null;uniqueIndex:uidx_client_log_date" json:"client_id"`
	LogDate     string   `gorm:"type:text;not null;uniqueIndex:uidx_client_log_date" json:"log_date"`
	Steps       *int     `json:"steps"`
	SleepHours  *float64 `json:"sleep_hours"`
	WeightValue *float64 `json:"weight_value"`
	WeightUnit  string   `json:"weight_unit"`
	ProteinG    *float64 `json:"protein_g"`
	Notes       string   `json:"notes"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
