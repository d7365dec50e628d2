package api

import (
	"errors"
	"time"

	"github.com/terraincognita07/lunamia/internal/i18n"
	"gorm.io/gorm"
)

func NewHandler(database *gorm.DB, secret string, location *time.Location, i18nManager *i18n.Manager, cookieSecure bool) (*Handler, error) {
	if database == nil {
		return nil, errors.New("database is required")
	}
	if i18nManager == nil {
		return nil, errors.New("i18n manager is required")
	}
	if len(secret) < 32 {
		return nil, errors.New("secret key must be at least 32 characters")
	}
	if location == nil {
		location = time.Local
	}

	handler := &Handler{
		db:           database,
		location:     location,
		cookieSecure: cookieSecure,
		i18n:         i18nManager,
		loginLimiter: newAttemptLimiter(loginAttemptLimit, loginAttemptWindow),
		now:          time.Now,
	}
	return handler.withDependencies(database, []byte(secret)), nil
}
