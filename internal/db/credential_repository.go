package db

import (
	"github.com/terraincognita07/lunamia/internal/models"
	"gorm.io/gorm"
)

type CredentialRepository struct {
	database *gorm.DB
}

func NewCredentialRepository(database *gorm.DB) *CredentialRepository {
	return &CredentialRepository{database: database}
}

func (repo *CredentialRepository) Load() (models.OwnerCredential, bool, error) {
	credential := models.OwnerCredential{}
	result := repo.database.Order("id ASC").Limit(1).Find(&credential)
	if result.Error != nil {
		return models.OwnerCredential{}, false, result.Error
	}
	return credential, result.RowsAffected > 0, nil
}

// SavePassphraseHash replaces the single owner credential row.
func (repo *CredentialRepository) SavePassphraseHash(hash string) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.OwnerCredential{}).Error; err != nil {
			return err
		}
		return tx.Create(&models.OwnerCredential{PassphraseHash: hash}).Error
	})
}
