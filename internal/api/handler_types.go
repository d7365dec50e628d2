package api

import (
	"time"

	"github.com/terraincognita07/lunamia/internal/db"
	"github.com/terraincognita07/lunamia/internal/i18n"
	"github.com/terraincognita07/lunamia/internal/services"
	"gorm.io/gorm"
)

type Handler struct {
	db           *gorm.DB
	location     *time.Location
	cookieSecure bool
	i18n         *i18n.Manager
	loginLimiter *attemptLimiter
	now          func() time.Time

	repositories    *db.Repositories
	dayService      *services.DayService
	settingsService *services.SettingsService
	symptomService  *services.SymptomService
	statsService    *services.StatsService
	backupService   *services.BackupService
	authService     *services.OwnerAuthService
	reminderService *services.ReminderService
}

type loginInput struct {
	Passphrase string `json:"passphrase" form:"passphrase"`
}

type passphraseInput struct {
	CurrentPassphrase string `json:"current_passphrase" form:"current_passphrase"`
	NewPassphrase     string `json:"new_passphrase" form:"new_passphrase"`
	ConfirmPassphrase string `json:"confirm_passphrase" form:"confirm_passphrase"`
}

type symptomInput struct {
	Label string `json:"label" form:"label"`
}

type resetInput struct {
	Confirm bool `json:"confirm" form:"confirm"`
}

const (
	loginAttemptLimit  = 8
	loginAttemptWindow = 15 * time.Minute
	maxImportSize      = 8 << 20
)
