package db

import (
	"github.com/terraincognita07/lunamia/internal/models"
	"gorm.io/gorm"
)

type SymptomRepository struct {
	database *gorm.DB
}

func NewSymptomRepository(database *gorm.DB) *SymptomRepository {
	return &SymptomRepository{database: database}
}

func (repo *SymptomRepository) List() ([]models.CustomSymptom, error) {
	symptoms := make([]models.CustomSymptom, 0)
	if err := repo.database.Order("created_at ASC, id ASC").Find(&symptoms).Error; err != nil {
		return nil, err
	}
	return symptoms, nil
}

func (repo *SymptomRepository) FindByLabel(label string) (models.CustomSymptom, bool, error) {
	symptom := models.CustomSymptom{}
	result := repo.database.Where("label = ?", label).Limit(1).Find(&symptom)
	if result.Error != nil {
		return models.CustomSymptom{}, false, result.Error
	}
	return symptom, result.RowsAffected > 0, nil
}

func (repo *SymptomRepository) Create(symptom *models.CustomSymptom) error {
	return repo.database.Create(symptom).Error
}

func (repo *SymptomRepository) Delete(id uint) (bool, error) {
	result := repo.database.Delete(&models.CustomSymptom{}, id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
