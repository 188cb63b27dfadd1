package services

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/fixbo/fixbo/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RequestRepository interface {
	ListByUser(userID uint) ([]models.ServiceRequest, error)
	FindOwnedByPublicID(userID uint, publicID string) (models.ServiceRequest, error)
	Create(request *models.ServiceRequest) error
	Save(request *models.ServiceRequest) error
	UpdateStatus(requestID uint, status string) error
}

type RequestPropertyRepository interface {
	FindByPublicID(userID uint, publicID string) (models.Property, error)
	AdjustRequestCounters(propertyID uint, activeDelta int, completedDelta int) error
}

type RequestBidRepository interface {
	ListByJobPublicID(jobPublicID string) ([]models.Bid, error)
}

type RequestEngagementRepository interface {
	Views(requestID uint) (int, error)
	CountLikes(requestID uint) (int64, error)
}

type RequestService struct {
	requests    RequestRepository
	properties  RequestPropertyRepository
	bids        RequestBidRepository
	engagements RequestEngagementRepository
}

func NewRequestService(
	requests RequestRepository,
	properties RequestPropertyRepository,
	bids RequestBidRepository,
	engagements RequestEngagementRepository,
) *RequestService {
	return &RequestService{
		requests:    requests,
		properties:  properties,
		bids:        bids,
		engagements: engagements,
	}
}

// RequestWithActivity is a request with its bids and engagement counters
// attached, the shape the current-requests page reads.
type RequestWithActivity struct {
	models.ServiceRequest
	Bids  []models.Bid `json:"bids"`
	Views int          `json:"views"`
	Likes int64        `json:"likes"`
}

// Submit commits a fully validated draft as exactly one new request with
// status Open and no bids.
func (service *RequestService) Submit(userID uint, draft RequestDraft) (models.ServiceRequest, error) {
	if err := ValidateRequestDraft(draft); err != nil {
		return models.ServiceRequest{}, err
	}

	propertyID, err := service.resolvePropertyID(userID, draft.PropertyID)
	if err != nil {
		return models.ServiceRequest{}, err
	}

	priority := draft.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}

	request := models.ServiceRequest{
		PublicID:    uuid.NewString(),
		UserID:      userID,
		PropertyID:  propertyID,
		Title:       strings.TrimSpace(draft.Title),
		Description: strings.TrimSpace(draft.Description),
		Category:    draft.Category,
		Priority:    priority,
		Images:      append([]string{}, draft.Images...),
		Budget:      draft.Budget,
		Timeline:    draft.Timeline,
		Status:      models.RequestStatusOpen,
		CreatedAt:   time.Now(),
	}
	if err := service.requests.Create(&request); err != nil {
		return models.ServiceRequest{}, err
	}

	if propertyID != nil {
		if err := service.properties.AdjustRequestCounters(*propertyID, 1, 0); err != nil {
			return models.ServiceRequest{}, err
		}
	}
	return request, nil
}

// Update replaces a request's editable fields in place, preserving its
// status, bids and engagement.
func (service *RequestService) Update(userID uint, publicID string, draft RequestDraft) (models.ServiceRequest, error) {
	if err := ValidateRequestDraft(draft); err != nil {
		return models.ServiceRequest{}, err
	}

	request, err := service.requests.FindOwnedByPublicID(userID, publicID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ServiceRequest{}, ErrJobNotFound
		}
		return models.ServiceRequest{}, err
	}

	priority := draft.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}

	request.Title = strings.TrimSpace(draft.Title)
	request.Description = strings.TrimSpace(draft.Description)
	request.Category = draft.Category
	request.Priority = priority
	request.Images = append([]string{}, draft.Images...)
	request.Budget = draft.Budget
	request.Timeline = draft.Timeline

	if err := service.requests.Save(&request); err != nil {
		return models.ServiceRequest{}, err
	}
	return request, nil
}

// DraftFor pre-populates the wizard shape from an existing record for the
// edit flow.
func (service *RequestService) DraftFor(userID uint, publicID string) (RequestDraft, error) {
	request, err := service.requests.FindOwnedByPublicID(userID, publicID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RequestDraft{}, ErrJobNotFound
		}
		return RequestDraft{}, err
	}

	return RequestDraft{
		Title:       request.Title,
		Description: request.Description,
		Category:    request.Category,
		Priority:    request.Priority,
		Images:      append([]string{}, request.Images...),
		Budget:      request.Budget,
		Timeline:    request.Timeline,
	}, nil
}

func (service *RequestService) Cancel(userID uint, publicID string) error {
	request, err := service.requests.FindOwnedByPublicID(userID, publicID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrJobNotFound
		}
		return err
	}
	if request.Status == models.RequestStatusCompleted || request.Status == models.RequestStatusCancelled {
		return nil
	}

	if err := service.requests.UpdateStatus(request.ID, models.RequestStatusCancelled); err != nil {
		return err
	}
	if request.PropertyID != nil {
		return service.properties.AdjustRequestCounters(*request.PropertyID, -1, 0)
	}
	return nil
}

// ListWithActivity returns the user's requests with bids and counters
// attached, optionally filtered by status.
func (service *RequestService) ListWithActivity(userID uint, status string) ([]RequestWithActivity, error) {
	requests, err := service.requests.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	enriched := make([]RequestWithActivity, 0, len(requests))
	for _, request := range requests {
		if status != "" && request.Status != status {
			continue
		}

		bids, err := service.bids.ListByJobPublicID(request.PublicID)
		if err != nil {
			return nil, err
		}
		views, err := service.engagements.Views(request.ID)
		if err != nil {
			return nil, err
		}
		likes, err := service.engagements.CountLikes(request.ID)
		if err != nil {
			return nil, err
		}

		enriched = append(enriched, RequestWithActivity{
			ServiceRequest: request,
			Bids:           bids,
			Views:          views,
			Likes:          likes,
		})
	}
	return enriched, nil
}

// SortRequests orders a request list by the given key without mutating the
// input slice. Supported keys: recent (default), popularity, budget.
func SortRequests(requests []RequestWithActivity, sortKey string) []RequestWithActivity {
	sorted := append([]RequestWithActivity(nil), requests...)
	switch sortKey {
	case "popularity":
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Views > sorted[j].Views
		})
	case "budget":
		sort.SliceStable(sorted, func(i, j int) bool {
			return BudgetValue(sorted[i].Budget) > BudgetValue(sorted[j].Budget)
		})
	default:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
		})
	}
	return sorted
}

func (service *RequestService) resolvePropertyID(userID uint, propertyPublicID string) (*uint, error) {
	if strings.TrimSpace(propertyPublicID) == "" {
		return nil, nil
	}

	property, err := service.properties.FindByPublicID(userID, propertyPublicID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			validation := NewValidationError()
			validation.Add("property", "Please select one of your properties")
			return nil, validation
		}
		return nil, err
	}
	return &property.ID, nil
}
