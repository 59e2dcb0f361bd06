package db

import (
	"github.com/fergcraven/coachline/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DismissedReminderRepository struct {
	database *gorm.DB
}

func NewDismissedReminderRepository(database *gorm.DB) *DismissedReminderRepository {
	return &DismissedReminderRepository{database: database}
}

func (repo *DismissedReminderRepository) ListKeysForDay(clientID uint, date string) ([]string, error) {
	rows := make([]models.DismissedReminder, 0)
	if err := repo.database.
		Select("reminder_key").
		Where("client_id = ? AND dismissed_for_date = ?", clientID, date).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(rows))
	for _, row := range rows {
		keys = append(keys, row.ReminderKey)
	}
	return keys, nil
}

// Record inserts a dismissal for one client-key-day. A duplicate is
// success, not an error: the semantic effect is already achieved.
func (repo *DismissedReminderRepository) Record(clientID uint, reminderKey string, date string) error {
	dismissal := models.DismissedReminder{
		ClientID:         clientID,
		ReminderKey:      reminderKey,
		DismissedForDate: date,
	}
	return repo.database.Clauses(clause.OnConflict{DoNothing: true}).Create(&dismissal).Error
}
