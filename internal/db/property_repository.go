package db

import (
	"github.com/fixbo/fixbo/internal/models"
	"gorm.io/gorm"
)

type PropertyRepository struct {
	database *gorm.DB
}

func NewPropertyRepository(database *gorm.DB) *PropertyRepository {
	return &PropertyRepository{database: database}
}

func (repo *PropertyRepository) ListByUser(userID uint) ([]models.Property, error) {
	properties := make([]models.Property, 0)
	if err := repo.database.Where("user_id = ?", userID).Order("id ASC").Find(&properties).Error; err != nil {
		return nil, err
	}
	return properties, nil
}

func (repo *PropertyRepository) FindByPublicID(userID uint, publicID string) (models.Property, error) {
	var property models.Property
	if err := repo.database.
		Where("user_id = ? AND public_id = ?", userID, publicID).
		First(&property).Error; err != nil {
		return models.Property{}, err
	}
	return property, nil
}

func (repo *PropertyRepository) FindByID(propertyID uint) (models.Property, error) {
	var property models.Property
	if err := repo.database.First(&property, propertyID).Error; err != nil {
		return models.Property{}, err
	}
	return property, nil
}

func (repo *PropertyRepository) Create(property *models.Property) error {
	return repo.database.Create(property).Error
}

func (repo *PropertyRepository) Save(property *models.Property) error {
	return repo.database.Save(property).Error
}

func (repo *PropertyRepository) AdjustRequestCounters(propertyID uint, activeDelta int, completedDelta int) error {
	return repo.database.Model(&models.Property{}).Where("id = ?", propertyID).Updates(map[string]any{
		"active_requests":    gorm.Expr("active_requests + ?", activeDelta),
		"completed_requests": gorm.Expr("completed_requests + ?", completedDelta),
	}).Error
}
