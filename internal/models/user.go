package models

import "time"

const (
	RoleTrainer = "trainer"
	RoleClient  = "client"
)

type User struct {
	ID           uint   `gorm:"primaryKey"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	Name         string
	Role         string `gorm:"not null;default:client"`
	// Timezone is an IANA zone name. Empty means the server's environment
	// zone applies.
	Timezone  string
	TrainerID *uint     `gorm:"index"`
	CreatedAt time.Time `gorm:"not null"`
}

func IsTrainerUser(user *User) bool {
	return user != nil && user.Role == RoleTrainer
}
