package models

import "time"

type CustomSymptom struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Label     string    `gorm:"not null;uniqueIndex" json:"label"`
	CreatedAt time.Time `json:"created_at"`
}

func DefaultSymptoms() []string {
	return []string{
		"Cramps",
		"Headache",
		"Fatigue",
		"Breast tenderness",
		"Irritability",
		"Bloating",
	}
}
