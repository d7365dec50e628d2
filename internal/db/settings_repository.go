package db

import (
	"github.com/terraincognita07/lunamia/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SettingsRepository struct {
	database *gorm.DB
}

func NewSettingsRepository(database *gorm.DB) *SettingsRepository {
	return &SettingsRepository{database: database}
}

func (repo *SettingsRepository) ListAll() ([]models.Setting, error) {
	settings := make([]models.Setting, 0)
	if err := repo.database.Order(clause.OrderByColumn{Column: clause.Column{Name: "key"}}).Find(&settings).Error; err != nil {
		return nil, err
	}
	return settings, nil
}

func (repo *SettingsRepository) PutMany(settings []models.Setting) error {
	if len(settings) == 0 {
		return nil
	}
	return repo.database.Transaction(func(tx *gorm.DB) error {
		return upsertSettings(tx, settings)
	})
}

func upsertSettings(tx *gorm.DB, settings []models.Setting) error {
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&settings).Error
}
