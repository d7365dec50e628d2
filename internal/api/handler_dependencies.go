package api

import (
	"github.com/terraincognita07/lunamia/internal/db"
	"github.com/terraincognita07/lunamia/internal/services"
	"gorm.io/gorm"
)

func (handler *Handler) withDependencies(database *gorm.DB, secretKey []byte) *Handler {
	handler.repositories = db.NewRepositories(database)
	repos := handler.repositories

	handler.dayService = services.NewDayService(repos.DailyLogs)
	handler.settingsService = services.NewSettingsService(repos.Settings)
	handler.symptomService = services.NewSymptomService(repos.Symptoms)
	handler.statsService = services.NewStatsService(handler.dayService, handler.settingsService)
	handler.backupService = services.NewBackupService(repos.DailyLogs, repos.Settings, repos.Symptoms, repos.Backups)
	handler.authService = services.NewOwnerAuthService(repos.Credentials, secretKey)
	handler.UseNotifiers()
	return handler
}

func (handler *Handler) Reminders() *services.ReminderService {
	return handler.reminderService
}

// UseNotifiers rebuilds the reminder service so scheduled runs deliver through notifiers.
func (handler *Handler) UseNotifiers(notifiers ...services.Notifier) *services.ReminderService {
	handler.reminderService = services.NewReminderService(
		handler.statsService,
		handler.repositories.Notifications,
		handler.i18n,
		handler.i18n.DefaultLanguage(),
		handler.location,
		notifiers...,
	)
	return handler.reminderService
}
