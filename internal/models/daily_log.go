package models

import "time"

const (
	FlowNone   = "none"
	FlowLight  = "light"
	FlowMedium = "medium"
	FlowHeavy  = "heavy"
)

const (
	MoodGood      = "good"
	MoodNeutral   = "neutral"
	MoodTired     = "tired"
	MoodStressed  = "stressed"
	MoodIrritable = "irritable"
)

// DateLayout is the calendar-date format used for every stored and exchanged day key.
const DateLayout = "2006-01-02"

type DailyLog struct {
	ID              uint      `gorm:"primaryKey" json:"-"`
	Date            string    `gorm:"type:text;not null;uniqueIndex:uidx_daily_logs_date" json:"date"`
	FlowLevel       string    `gorm:"not null;default:none" json:"flow_level"`
	SymptomsDefault []string  `gorm:"serializer:json" json:"symptoms_default"`
	SymptomsCustom  []string  `gorm:"serializer:json" json:"symptoms_custom"`
	Mood            string    `gorm:"not null;default:''" json:"mood"`
	Note            string    `gorm:"not null;default:''" json:"note"`
	CreatedAt       time.Time `json:"-"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (entry DailyLog) HasFlow() bool {
	return entry.FlowLevel != "" && entry.FlowLevel != FlowNone
}

func IsValidFlowLevel(value string) bool {
	switch value {
	case FlowNone, FlowLight, FlowMedium, FlowHeavy:
		return true
	default:
		return false
	}
}

func IsValidMood(value string) bool {
	switch value {
	case "", MoodGood, MoodNeutral, MoodTired, MoodStressed, MoodIrritable:
		return true
	default:
		return false
	}
}
