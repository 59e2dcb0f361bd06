package db

import (
	"github.com/fergcraven/coachline/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type HabitLogRepository struct {
	database *gorm.DB
}

func NewHabitLogRepository(database *gorm.DB) *HabitLogRepository {
	return &HabitLogRepository{database: database}
}

func (repo *HabitLogRepository) ListByClientRange(clientID uint, from string, to string) ([]models.HabitLog, error) {
	entries := make([]models.HabitLog, 0)
	if err := repo.database.
		Where("client_id = ? AND log_date >= ? AND log_date <= ?", clientID, from, to).
		Order("log_date ASC, id ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (repo *HabitLogRepository) FindByClientAndDate(clientID uint, logDate string) (models.HabitLog, bool, error) {
	entry := models.HabitLog{}
	result := repo.database.
		Where("client_id = ? AND log_date = ?", clientID, logDate).
		Limit(1).
		Find(&entry)
	if result.Error != nil {
		return models.HabitLog{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.HabitLog{}, false, nil
	}
	return entry, true, nil
}

// Upsert writes the log for one client-day; a second write for the
// same day replaces the metric columns rather than adding a row.
func (repo *HabitLogRepository) Upsert(entry *models.HabitLog) error {
	return repo.database.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "client_id"}, {Name: "log_date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"steps", "sleep_hours", "weight_value", "weight_unit", "protein_g", "notes", "updated_at",
		}),
	}).Create(entry).Error
}

// BaselineExists reports whether the client has any weight log with a
// unit tag, the minimum a trainer needs as a starting measurement.
func (repo *HabitLogRepository) BaselineExists(clientID uint) (bool, error) {
	var count int64
	if err := repo.database.Model(&models.HabitLog{}).
		Where("client_id = ? AND weight_value IS NOT NULL AND weight_unit <> ''", clientID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
