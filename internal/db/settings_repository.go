package db

import (
	"github.com/fixbo/fixbo/internal/models"
	"gorm.io/gorm"
)

type SettingsRepository struct {
	database *gorm.DB
}

func NewSettingsRepository(database *gorm.DB) *SettingsRepository {
	return &SettingsRepository{database: database}
}

// FindByUser returns the stored settings, or the documented defaults when the
// user never saved any.
func (repo *SettingsRepository) FindByUser(userID uint) (models.AppSettings, error) {
	var settings models.AppSettings
	result := repo.database.Where("user_id = ?", userID).Limit(1).Find(&settings)
	if result.Error != nil {
		return models.AppSettings{}, result.Error
	}
	if result.RowsAffected == 0 {
		return models.DefaultAppSettings(userID), nil
	}
	return settings, nil
}

func (repo *SettingsRepository) Upsert(settings *models.AppSettings) error {
	var existing models.AppSettings
	result := repo.database.Where("user_id = ?", settings.UserID).Limit(1).Find(&existing)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected > 0 {
		settings.ID = existing.ID
		settings.CreatedAt = existing.CreatedAt
	}
	return repo.database.Save(settings).Error
}
