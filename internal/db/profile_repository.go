package db

import (
	"github.com/fixbo/fixbo/internal/models"
	"gorm.io/gorm"
)

type ProfileRepository struct {
	database *gorm.DB
}

func NewProfileRepository(database *gorm.DB) *ProfileRepository {
	return &ProfileRepository{database: database}
}

func (repo *ProfileRepository) FindByUser(userID uint) (models.HandymanProfile, bool, error) {
	var profile models.HandymanProfile
	result := repo.database.Where("user_id = ?", userID).Limit(1).Find(&profile)
	if result.Error != nil {
		return models.HandymanProfile{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.HandymanProfile{}, false, nil
	}
	return profile, true, nil
}

func (repo *ProfileRepository) Save(profile *models.HandymanProfile) error {
	return repo.database.Save(profile).Error
}
