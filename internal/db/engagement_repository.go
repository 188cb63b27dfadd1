package db

import (
	"github.com/fixbo/fixbo/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EngagementRepository struct {
	database *gorm.DB
}

func NewEngagementRepository(database *gorm.DB) *EngagementRepository {
	return &EngagementRepository{database: database}
}

// IncrementViews bumps the per-job view counter, creating the row on first view.
func (repo *EngagementRepository) IncrementViews(requestID uint) (int, error) {
	engagement := models.JobEngagement{RequestID: requestID, Views: 1}
	if err := repo.database.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "request_id"}},
		DoUpdates: clause.Assignments(map[string]any{"views": gorm.Expr("views + 1")}),
	}).Create(&engagement).Error; err != nil {
		return 0, err
	}

	var current models.JobEngagement
	if err := repo.database.Where("request_id = ?", requestID).First(&current).Error; err != nil {
		return 0, err
	}
	return current.Views, nil
}

// SetViews overwrites the counter, used when restoring an archive.
func (repo *EngagementRepository) SetViews(requestID uint, views int) error {
	engagement := models.JobEngagement{RequestID: requestID, Views: views}
	return repo.database.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "request_id"}},
		DoUpdates: clause.Assignments(map[string]any{"views": views}),
	}).Create(&engagement).Error
}

func (repo *EngagementRepository) Views(requestID uint) (int, error) {
	var engagement models.JobEngagement
	result := repo.database.Where("request_id = ?", requestID).Limit(1).Find(&engagement)
	if result.Error != nil {
		return 0, result.Error
	}
	return engagement.Views, nil
}

func (repo *EngagementRepository) CountLikes(requestID uint) (int64, error) {
	var count int64
	if err := repo.database.Model(&models.UserLike{}).
		Where("request_id = ?", requestID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (repo *EngagementRepository) IsLiked(userID uint, requestID uint) (bool, error) {
	var count int64
	if err := repo.database.Model(&models.UserLike{}).
		Where("user_id = ? AND request_id = ?", userID, requestID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ToggleLike flips the like state and reports the new state.
func (repo *EngagementRepository) ToggleLike(userID uint, requestID uint) (bool, error) {
	liked, err := repo.IsLiked(userID, requestID)
	if err != nil {
		return false, err
	}

	if liked {
		if err := repo.database.
			Where("user_id = ? AND request_id = ?", userID, requestID).
			Delete(&models.UserLike{}).Error; err != nil {
			return false, err
		}
		return false, nil
	}

	like := models.UserLike{UserID: userID, RequestID: requestID}
	if err := repo.database.Create(&like).Error; err != nil {
		return false, err
	}
	return true, nil
}

func (repo *EngagementRepository) ListLikedRequestIDs(userID uint) ([]uint, error) {
	likes := make([]models.UserLike, 0)
	if err := repo.database.Where("user_id = ?", userID).Order("id ASC").Find(&likes).Error; err != nil {
		return nil, err
	}

	requestIDs := make([]uint, 0, len(likes))
	for _, like := range likes {
		requestIDs = append(requestIDs, like.RequestID)
	}
	return requestIDs, nil
}
