package db

import (
	"time"

	"github.com/terraincognita07/lunamia/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type NotificationRepository struct {
	database *gorm.DB
}

func NewNotificationRepository(database *gorm.DB) *NotificationRepository {
	return &NotificationRepository{database: database}
}

func (repo *NotificationRepository) ListRecent(limit int) ([]models.Notification, error) {
	notifications := make([]models.Notification, 0)
	query := repo.database.Order("for_date DESC, id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}

// CreateIfAbsent inserts notification unless one with the same kind and date exists.
func (repo *NotificationRepository) CreateIfAbsent(notification *models.Notification) (bool, error) {
	result := repo.database.Clauses(clause.OnConflict{DoNothing: true}).Create(notification)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (repo *NotificationRepository) MarkDelivered(id uint, deliveredAt time.Time) error {
	return repo.database.Model(&models.Notification{}).Where("id = ?", id).Update("delivered_at", deliveredAt).Error
}

// ListUndelivered returns the reminders recorded for forDate that no notifier has accepted yet.
func (repo *NotificationRepository) ListUndelivered(forDate string) ([]models.Notification, error) {
	notifications := make([]models.Notification, 0)
	if err := repo.database.
		Where("for_date = ? AND delivered_at IS NULL", forDate).
		Order("id ASC").
		Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}
