package db

import (
	"errors"

	"github.com/fergcraven/coachline/internal/models"
	"gorm.io/gorm"
)

type CheckinRepository struct {
	database *gorm.DB
}

func NewCheckinRepository(database *gorm.DB) *CheckinRepository {
	return &CheckinRepository{database: database}
}

func (repo *CheckinRepository) ListByClient(clientID uint) ([]models.CheckinRecord, error) {
	records := make([]models.CheckinRecord, 0)
	if err := repo.database.
		Where("client_id = ?", clientID).
		Order("week_ending_saturday ASC, id ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// ListByClientWeek returns every row for one week-ending-Saturday.
// Exactly one is expected, but duplicates have existed in the wild and
// the resolver picks the winner, not the query.
func (repo *CheckinRepository) ListByClientWeek(clientID uint, weekEndingSaturday string) ([]models.CheckinRecord, error) {
	records := make([]models.CheckinRecord, 0)
	if err := repo.database.
		Where("client_id = ? AND week_ending_saturday = ?", clientID, weekEndingSaturday).
		Order("id ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (repo *CheckinRepository) FindByID(id uint) (*models.CheckinRecord, error) {
	record := &models.CheckinRecord{}
	if err := repo.database.First(record, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return record, nil
}

func (repo *CheckinRepository) Create(record *models.CheckinRecord) error {
	return repo.database.Create(record).Error
}

func (repo *CheckinRepository) Save(record *models.CheckinRecord) error {
	return repo.database.Save(record).Error
}
