package db

import (
	"errors"
	"time"

	"github.com/fixbo/fixbo/internal/models"
	"gorm.io/gorm"
)

type BidRepository struct {
	database *gorm.DB
}

func NewBidRepository(database *gorm.DB) *BidRepository {
	return &BidRepository{database: database}
}

func (repo *BidRepository) ListByJobPublicID(jobPublicID string) ([]models.Bid, error) {
	bids := make([]models.Bid, 0)
	if err := repo.database.
		Where("job_public_id = ?", jobPublicID).
		Order("created_at ASC, id ASC").
		Find(&bids).Error; err != nil {
		return nil, err
	}
	return bids, nil
}

func (repo *BidRepository) ListByContractor(contractorID uint) ([]models.Bid, error) {
	bids := make([]models.Bid, 0)
	if err := repo.database.
		Where("contractor_id = ?", contractorID).
		Order("created_at DESC, id DESC").
		Find(&bids).Error; err != nil {
		return nil, err
	}
	return bids, nil
}

func (repo *BidRepository) ListAcceptedByContractorRange(contractorID uint, start time.Time, end time.Time) ([]models.Bid, error) {
	bids := make([]models.Bid, 0)
	if err := repo.database.
		Where("contractor_id = ? AND status = ? AND scheduled_date >= ? AND scheduled_date < ?",
			contractorID, models.BidStatusAccepted, start, end).
		Order("scheduled_date ASC, id ASC").
		Find(&bids).Error; err != nil {
		return nil, err
	}
	return bids, nil
}

func (repo *BidRepository) FindByPublicID(publicID string) (models.Bid, error) {
	var bid models.Bid
	if err := repo.database.Where("public_id = ?", publicID).First(&bid).Error; err != nil {
		return models.Bid{}, err
	}
	return bid, nil
}

// Create inserts the bid as-is, without touching the request. Archive
// restores use it because the archived request already carries its counters.
func (repo *BidRepository) Create(bid *models.Bid) error {
	return repo.database.Create(bid).Error
}

// CreateForRequest inserts the bid and updates the originating request inside
// one transaction so the two writes never partially apply.
func (repo *BidRepository) CreateForRequest(bid *models.Bid, request *models.ServiceRequest) error {
	if bid == nil || request == nil {
		return errors.New("bid and request are required")
	}

	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(bid).Error; err != nil {
			return err
		}

		updates := map[string]any{
			"bid_count": gorm.Expr("bid_count + 1"),
		}
		if request.Status == models.RequestStatusOpen {
			updates["status"] = models.RequestStatusActive
		}
		return tx.Model(&models.ServiceRequest{}).Where("id = ?", request.ID).Updates(updates).Error
	})
}

// AcceptBid marks the bid accepted, rejects sibling pending bids and moves the
// request to Pending as one unit.
func (repo *BidRepository) AcceptBid(bid *models.Bid, scheduledDate *time.Time) error {
	if bid == nil {
		return errors.New("bid is required")
	}

	return repo.database.Transaction(func(tx *gorm.DB) error {
		updates := map[string]any{"status": models.BidStatusAccepted}
		if scheduledDate != nil {
			updates["scheduled_date"] = *scheduledDate
		}
		if err := tx.Model(&models.Bid{}).Where("id = ?", bid.ID).Updates(updates).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.Bid{}).
			Where("request_id = ? AND id <> ? AND status = ?", bid.RequestID, bid.ID, models.BidStatusPending).
			Update("status", models.BidStatusRejected).Error; err != nil {
			return err
		}

		return tx.Model(&models.ServiceRequest{}).Where("id = ?", bid.RequestID).
			Update("status", models.RequestStatusPending).Error
	})
}

func (repo *BidRepository) UpdateStatus(bidID uint, status string) error {
	return repo.database.Model(&models.Bid{}).Where("id = ?", bidID).
		Update("status", status).Error
}
