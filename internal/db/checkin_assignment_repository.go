package db

import (
	"github.com/fergcraven/coachline/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CheckinAssignmentRepository struct {
	database *gorm.DB
}

func NewCheckinAssignmentRepository(database *gorm.DB) *CheckinAssignmentRepository {
	return &CheckinAssignmentRepository{database: database}
}

func (repo *CheckinAssignmentRepository) FindByClient(clientID uint) (models.CheckinAssignment, bool, error) {
	assignment := models.CheckinAssignment{}
	result := repo.database.Where("client_id = ?", clientID).Limit(1).Find(&assignment)
	if result.Error != nil {
		return models.CheckinAssignment{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.CheckinAssignment{}, false, nil
	}
	return assignment, true, nil
}

// Upsert keeps one schedule per client; reassigning replaces the start
// date and frequency in place.
func (repo *CheckinAssignmentRepository) Upsert(assignment *models.CheckinAssignment) error {
	return repo.database.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "client_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"checkin_start_date", "frequency", "updated_at"}),
	}).Create(assignment).Error
}
