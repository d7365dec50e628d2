package models

import "time"

const (
	SettingCycleLength  = "cycleLength"
	SettingPeriodLength = "periodLength"
)

const (
	DefaultCycleLength  = 28
	DefaultPeriodLength = 5
)

type Setting struct {
	Key   string `gorm:"primaryKey"`
	Value string `gorm:"not null"`
}

type OwnerCredential struct {
	ID             uint   `gorm:"primaryKey"`
	PassphraseHash string `gorm:"not null"`
	UpdatedAt      time.Time
}
