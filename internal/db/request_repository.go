package db

import (
	"github.com/fixbo/fixbo/internal/models"
	"gorm.io/gorm"
)

type RequestRepository struct {
	database *gorm.DB
}

func NewRequestRepository(database *gorm.DB) *RequestRepository {
	return &RequestRepository{database: database}
}

func (repo *RequestRepository) ListByUser(userID uint) ([]models.ServiceRequest, error) {
	requests := make([]models.ServiceRequest, 0)
	if err := repo.database.
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// ListBiddable returns every request currently visible in the marketplace
// feed, newest first, across all owners.
func (repo *RequestRepository) ListBiddable() ([]models.ServiceRequest, error) {
	requests := make([]models.ServiceRequest, 0)
	if err := repo.database.
		Where("status IN ?", []string{models.RequestStatusOpen, models.RequestStatusActive}).
		Order("created_at DESC, id DESC").
		Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

func (repo *RequestRepository) FindByID(requestID uint) (models.ServiceRequest, error) {
	var request models.ServiceRequest
	if err := repo.database.First(&request, requestID).Error; err != nil {
		return models.ServiceRequest{}, err
	}
	return request, nil
}

func (repo *RequestRepository) FindByPublicID(publicID string) (models.ServiceRequest, error) {
	var request models.ServiceRequest
	if err := repo.database.Where("public_id = ?", publicID).First(&request).Error; err != nil {
		return models.ServiceRequest{}, err
	}
	return request, nil
}

func (repo *RequestRepository) FindOwnedByPublicID(userID uint, publicID string) (models.ServiceRequest, error) {
	var request models.ServiceRequest
	if err := repo.database.
		Where("user_id = ? AND public_id = ?", userID, publicID).
		First(&request).Error; err != nil {
		return models.ServiceRequest{}, err
	}
	return request, nil
}

func (repo *RequestRepository) Create(request *models.ServiceRequest) error {
	return repo.database.Create(request).Error
}

func (repo *RequestRepository) Save(request *models.ServiceRequest) error {
	return repo.database.Save(request).Error
}

func (repo *RequestRepository) UpdateStatus(requestID uint, status string) error {
	return repo.database.Model(&models.ServiceRequest{}).Where("id = ?", requestID).
		Update("status", status).Error
}

func (repo *RequestRepository) CountByUserAndStatus(userID uint, status string) (int64, error) {
	var count int64
	if err := repo.database.Model(&models.ServiceRequest{}).
		Where("user_id = ? AND status = ?", userID, status).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
