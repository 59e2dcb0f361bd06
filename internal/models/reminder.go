package models

import "time"

// DismissedReminder suppresses one reminder key for one client for one
// day. The reminder resurfaces the next day if still relevant.
type DismissedReminder struct {
	ID               uint   `gorm:"primaryKey"`
	ClientID         uint   `gorm:"not null;uniqueIndex:uidx_dismissal"`
	ReminderKey      string `gorm:"not null;uniqueIndex:uidx_dismissal"`
	DismissedForDate string `gorm:"type:text;not null;uniqueIndex:uidx_dismissal"`
	CreatedAt        time.Time
}
