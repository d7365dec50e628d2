package models

import "time"

type Notification struct {
	ID          uint       `gorm:"primaryKey" json:"-"`
	UID         string     `gorm:"not null;uniqueIndex" json:"id"`
	Kind        string     `gorm:"not null;uniqueIndex:uidx_notifications_kind_date" json:"kind"`
	ForDate     string     `gorm:"not null;uniqueIndex:uidx_notifications_kind_date" json:"for_date"`
	Message     string     `gorm:"not null" json:"message"`
	DeliveredAt *time.Time `json:"delivered_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}
