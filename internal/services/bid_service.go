package services

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/fixbo/fixbo/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BidRepository interface {
	ListByJobPublicID(jobPublicID string) ([]models.Bid, error)
	FindByPublicID(publicID string) (models.Bid, error)
	CreateForRequest(bid *models.Bid, request *models.ServiceRequest) error
	AcceptBid(bid *models.Bid, scheduledDate *time.Time) error
	UpdateStatus(bidID uint, status string) error
}

type BidRequestRepository interface {
	FindByID(requestID uint) (models.ServiceRequest, error)
	FindByPublicID(publicID string) (models.ServiceRequest, error)
}

type BidUserRepository interface {
	FindByID(userID uint) (models.User, error)
}

type BidInput struct {
	Amount         float64 `json:"amount"`
	EstimatedHours float64 `json:"estimatedHours"`
	Message        string  `json:"message"`
}

type BidService struct {
	bids     BidRepository
	requests BidRequestRepository
	users    BidUserRepository

	mu       sync.Mutex
	jobLocks map[string]*sync.Mutex
}

func NewBidService(bids BidRepository, requests BidRequestRepository, users BidUserRepository) *BidService {
	return &BidService{
		bids:     bids,
		requests: requests,
		users:    users,
		jobLocks: make(map[string]*sync.Mutex),
	}
}

// lockJob serializes writes per job so two concurrent bids on the same job
// cannot interleave their read-modify-write cycles.
func (service *BidService) lockJob(jobPublicID string) *sync.Mutex {
	service.mu.Lock()
	defer service.mu.Unlock()

	lock, ok := service.jobLocks[jobPublicID]
	if !ok {
		lock = &sync.Mutex{}
		service.jobLocks[jobPublicID] = lock
	}
	return lock
}

func ValidateBidInput(input BidInput) error {
	validation := NewValidationError()
	if input.Amount <= 0 {
		validation.Add("amount", "bid amount must be positive")
	}
	if input.EstimatedHours < 0 {
		validation.Add("estimatedHours", "estimated hours cannot be negative")
	}
	return validation.ErrOrNil()
}

// CreateBid appends the bid to the job's bid list and updates the
// originating request as one logical unit.
func (service *BidService) CreateBid(contractorID uint, jobPublicID string, input BidInput) (models.Bid, error) {
	if err := ValidateBidInput(input); err != nil {
		return models.Bid{}, err
	}

	lock := service.lockJob(jobPublicID)
	lock.Lock()
	defer lock.Unlock()

	request, err := service.requests.FindByPublicID(jobPublicID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Bid{}, ErrJobNotFound
		}
		return models.Bid{}, err
	}
	if request.UserID == contractorID {
		return models.Bid{}, ErrBidOwnJob
	}
	if !request.IsBiddable() {
		return models.Bid{}, ErrJobNotBiddable
	}

	contractor, err := service.users.FindByID(contractorID)
	if err != nil {
		return models.Bid{}, err
	}

	bid := models.Bid{
		PublicID:       uuid.NewString(),
		RequestID:      request.ID,
		JobPublicID:    request.PublicID,
		ContractorID:   contractorID,
		ContractorName: contractor.Name,
		Amount:         input.Amount,
		EstimatedHours: input.EstimatedHours,
		Message:        strings.TrimSpace(input.Message),
		Status:         models.BidStatusPending,
		CreatedAt:      time.Now(),
	}
	if err := service.bids.CreateForRequest(&bid, &request); err != nil {
		return models.Bid{}, err
	}
	return bid, nil
}

func (service *BidService) BidsForJob(jobPublicID string) ([]models.Bid, error) {
	if _, err := service.requests.FindByPublicID(jobPublicID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return service.bids.ListByJobPublicID(jobPublicID)
}

// Accept marks the bid accepted on behalf of the job owner; sibling pending
// bids are rejected and the request moves to Pending.
func (service *BidService) Accept(ownerID uint, bidPublicID string, scheduledDate *time.Time) (models.Bid, error) {
	bid, request, err := service.loadBidWithRequest(bidPublicID)
	if err != nil {
		return models.Bid{}, err
	}
	if request.UserID != ownerID {
		return models.Bid{}, ErrNotJobOwner
	}
	if bid.Status != models.BidStatusPending {
		return models.Bid{}, ErrBidNotPending
	}

	if err := service.bids.AcceptBid(&bid, scheduledDate); err != nil {
		return models.Bid{}, err
	}

	bid.Status = models.BidStatusAccepted
	bid.ScheduledDate = scheduledDate
	return bid, nil
}

func (service *BidService) Reject(ownerID uint, bidPublicID string) (models.Bid, error) {
	bid, request, err := service.loadBidWithRequest(bidPublicID)
	if err != nil {
		return models.Bid{}, err
	}
	if request.UserID != ownerID {
		return models.Bid{}, ErrNotJobOwner
	}
	if bid.Status != models.BidStatusPending {
		return models.Bid{}, ErrBidNotPending
	}

	if err := service.bids.UpdateStatus(bid.ID, models.BidStatusRejected); err != nil {
		return models.Bid{}, err
	}
	bid.Status = models.BidStatusRejected
	return bid, nil
}

// Withdraw lets a contractor pull their own pending bid.
func (service *BidService) Withdraw(contractorID uint, bidPublicID string) (models.Bid, error) {
	bid, err := service.bids.FindByPublicID(bidPublicID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Bid{}, ErrBidNotFound
		}
		return models.Bid{}, err
	}
	if bid.ContractorID != contractorID {
		return models.Bid{}, ErrBidNotFound
	}
	if bid.Status != models.BidStatusPending {
		return models.Bid{}, ErrBidNotPending
	}

	if err := service.bids.UpdateStatus(bid.ID, models.BidStatusWithdrawn); err != nil {
		return models.Bid{}, err
	}
	bid.Status = models.BidStatusWithdrawn
	return bid, nil
}

func (service *BidService) loadBidWithRequest(bidPublicID string) (models.Bid, models.ServiceRequest, error) {
	bid, err := service.bids.FindByPublicID(bidPublicID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Bid{}, models.ServiceRequest{}, ErrBidNotFound
		}
		return models.Bid{}, models.ServiceRequest{}, err
	}

	request, err := service.requests.FindByID(bid.RequestID)
	if err != nil {
		return models.Bid{}, models.ServiceRequest{}, err
	}
	return bid, request, nil
}
