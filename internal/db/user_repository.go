package db

import (
	"errors"

	"github.com/fergcraven/coachline/internal/models"
	"gorm.io/gorm"
)

type UserRepository struct {
	database *gorm.DB
}

func NewUserRepository(database *gorm.DB) *UserRepository {
	return &UserRepository{database: database}
}

func (repo *UserRepository) Create(user *models.User) error {
	return repo.database.Create(user).Error
}

func (repo *UserRepository) FindByID(id uint) (*models.User, error) {
	user := &models.User{}
	if err := repo.database.First(user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

func (repo *UserRepository) FindByEmail(email string) (*models.User, error) {
	user := &models.User{}
	result := repo.database.Where("email = ?", email).Limit(1).Find(user)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return user, nil
}

func (repo *UserRepository) ListClientsOfTrainer(trainerID uint) ([]models.User, error) {
	clients := make([]models.User, 0)
	if err := repo.database.
		Where("role = ? AND trainer_id = ?", models.RoleClient, trainerID).
		Order("name ASC, id ASC").
		Find(&clients).Error; err != nil {
		return nil, err
	}
	return clients, nil
}

func (repo *UserRepository) UpdateTimezone(userID uint, timezone string) error {
	return repo.database.Model(&models.User{}).Where("id = ?", userID).Update("timezone", timezone).Error
}
