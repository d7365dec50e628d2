package db

import (
	"github.com/terraincognita07/lunamia/internal/models"
	"gorm.io/gorm"
)

type DailyLogRepository struct {
	database *gorm.DB
}

func NewDailyLogRepository(database *gorm.DB) *DailyLogRepository {
	return &DailyLogRepository{database: database}
}

func (repo *DailyLogRepository) ListAll() ([]models.DailyLog, error) {
	logs := make([]models.DailyLog, 0)
	if err := repo.database.Order("date ASC, id ASC").Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

// ListRange returns logs whose ISO date lies in [from, to]; ISO dates order lexically.
// An empty bound leaves that side open.
func (repo *DailyLogRepository) ListRange(from string, to string) ([]models.DailyLog, error) {
	query := repo.database.Model(&models.DailyLog{})
	if from != "" {
		query = query.Where("date >= ?", from)
	}
	if to != "" {
		query = query.Where("date <= ?", to)
	}

	logs := make([]models.DailyLog, 0)
	if err := query.Order("date ASC, id ASC").Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func (repo *DailyLogRepository) FindByDate(date string) (models.DailyLog, bool, error) {
	entry := models.DailyLog{}
	result := repo.database.Where("date = ?", date).Limit(1).Find(&entry)
	if result.Error != nil {
		return models.DailyLog{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.DailyLog{}, false, nil
	}
	return entry, true, nil
}

func (repo *DailyLogRepository) Create(entry *models.DailyLog) error {
	return repo.database.Create(entry).Error
}

func (repo *DailyLogRepository) Save(entry *models.DailyLog) error {
	return repo.database.Save(entry).Error
}

func (repo *DailyLogRepository) DeleteByDate(date string) (bool, error) {
	result := repo.database.Where("date = ?", date).Delete(&models.DailyLog{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
