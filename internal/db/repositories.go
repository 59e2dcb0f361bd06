package db

import "gorm.io/gorm"

type Repositories struct {
	Users       *UserRepository
	HabitLogs   *HabitLogRepository
	Checkins    *CheckinRepository
	Dismissals  *DismissedReminderRepository
	Assignments *CheckinAssignmentRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:       NewUserRepository(database),
		HabitLogs:   NewHabitLogRepository(database),
		Checkins:    NewCheckinRepository(database),
		Dismissals:  NewDismissedReminderRepository(database),
		Assignments: NewCheckinAssignmentRepository(database),
	}
}
