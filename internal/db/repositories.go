package db

import "gorm.io/gorm"

type Repositories struct {
	DailyLogs     *DailyLogRepository
	Settings      *SettingsRepository
	Symptoms      *SymptomRepository
	Notifications *NotificationRepository
	Credentials   *CredentialRepository
	Backups       *BackupRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		DailyLogs:     NewDailyLogRepository(database),
		Settings:      NewSettingsRepository(database),
		Symptoms:      NewSymptomRepository(database),
		Notifications: NewNotificationRepository(database),
		Credentials:   NewCredentialRepository(database),
		Backups:       NewBackupRepository(database),
	}
}
