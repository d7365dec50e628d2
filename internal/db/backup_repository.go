package db

import (
	"github.com/terraincognita07/lunamia/internal/models"
	"gorm.io/gorm"
)

type BackupRepository struct {
	database *gorm.DB
}

func NewBackupRepository(database *gorm.DB) *BackupRepository {
	return &BackupRepository{database: database}
}

// ReplaceAll swaps the whole user dataset in one transaction.
func (repo *BackupRepository) ReplaceAll(settings []models.Setting, logs []models.DailyLog, symptoms []models.CustomSymptom) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := clearUserData(tx); err != nil {
			return err
		}
		if len(settings) > 0 {
			if err := upsertSettings(tx, settings); err != nil {
				return err
			}
		}
		if len(logs) > 0 {
			if err := tx.CreateInBatches(&logs, 200).Error; err != nil {
				return err
			}
		}
		if len(symptoms) > 0 {
			if err := tx.CreateInBatches(&symptoms, 200).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (repo *BackupRepository) ClearAll() error {
	return repo.database.Transaction(clearUserData)
}

func clearUserData(tx *gorm.DB) error {
	if err := tx.Where("1 = 1").Delete(&models.DailyLog{}).Error; err != nil {
		return err
	}
	if err := tx.Where("1 = 1").Delete(&models.Setting{}).Error; err != nil {
		return err
	}
	if err := tx.Where("1 = 1").Delete(&models.Notification{}).Error; err != nil {
		return err
	}
	return tx.Where("1 = 1").Delete(&models.CustomSymptom{}).Error
}
