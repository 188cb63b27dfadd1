package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/fixbo/fixbo/internal/models"
	"gorm.io/gorm"
)

// JobView is the contractor-facing projection of a customer's service
// request, the shape the marketplace feed and job details page read.
type JobView struct {
	ID             string           `json:"id"`
	Title          string           `json:"title"`
	Category       string           `json:"category"`
	Description    string           `json:"description"`
	Budget         float64          `json:"budget"`
	BudgetType     string           `json:"budgetType"`
	Location       string           `json:"location"`
	PostedAt       time.Time        `json:"postedAt"`
	PostedAgo      string           `json:"postedDate"`
	Urgency        string           `json:"urgency"`
	Homeowner      HomeownerSummary `json:"homeowner"`
	Images         []string         `json:"images"`
	EstimatedHours string           `json:"estimatedHours"`
	Status         string           `json:"status"`
	BidCount       int              `json:"bidCount"`
	Views          int              `json:"views"`
	Likes          int64            `json:"likes"`
	Liked          bool             `json:"liked"`
}

type HomeownerSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// JobFilters narrows the marketplace feed. Zero values mean "no constraint".
type JobFilters struct {
	Category  string
	Location  string
	MinBudget float64
	MaxBudget float64
	Query     string
	SortKey   string
}

type MarketplaceRequestRepository interface {
	ListBiddable() ([]models.ServiceRequest, error)
	FindByPublicID(publicID string) (models.ServiceRequest, error)
}

type MarketplaceUserRepository interface {
	FindByID(userID uint) (models.User, error)
}

type MarketplacePropertyRepository interface {
	FindByID(propertyID uint) (models.Property, error)
}

type MarketplaceEngagementRepository interface {
	IncrementViews(requestID uint) (int, error)
	Views(requestID uint) (int, error)
	CountLikes(requestID uint) (int64, error)
	IsLiked(userID uint, requestID uint) (bool, error)
	ToggleLike(userID uint, requestID uint) (bool, error)
}

type MarketplaceService struct {
	requests    MarketplaceRequestRepository
	users       MarketplaceUserRepository
	properties  MarketplacePropertyRepository
	engagements MarketplaceEngagementRepository
}

func NewMarketplaceService(
	requests MarketplaceRequestRepository,
	users MarketplaceUserRepository,
	properties MarketplacePropertyRepository,
	engagements MarketplaceEngagementRepository,
) *MarketplaceService {
	return &MarketplaceService{
		requests:    requests,
		users:       users,
		properties:  properties,
		engagements: engagements,
	}
}

// Jobs aggregates every customer's biddable requests into a flat list, then
// applies filters and sorting. No pagination, matching the source feed.
func (service *MarketplaceService) Jobs(filters JobFilters, now time.Time) ([]JobView, error) {
	requests, err := service.requests.ListBiddable()
	if err != nil {
		return nil, err
	}

	jobs := make([]JobView, 0, len(requests))
	for _, request := range requests {
		job, err := service.buildJobView(request, now)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}

	jobs = FilterJobs(jobs, filters)
	return SortJobs(jobs, filters.SortKey), nil
}

// JobByID loads the detail view and counts the visit.
func (service *MarketplaceService) JobByID(jobPublicID string, viewerID uint, now time.Time) (JobView, error) {
	request, err := service.requests.FindByPublicID(jobPublicID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return JobView{}, ErrJobNotFound
		}
		return JobView{}, err
	}

	job, err := service.buildJobView(request, now)
	if err != nil {
		return JobView{}, err
	}

	views, err := service.engagements.IncrementViews(request.ID)
	if err != nil {
		return JobView{}, err
	}
	job.Views = views

	if viewerID != 0 {
		liked, err := service.engagements.IsLiked(viewerID, request.ID)
		if err != nil {
			return JobView{}, err
		}
		job.Liked = liked
	}
	return job, nil
}

// ToggleLike flips the viewer's like on a job and reports the new state.
func (service *MarketplaceService) ToggleLike(userID uint, jobPublicID string) (bool, error) {
	request, err := service.requests.FindByPublicID(jobPublicID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrJobNotFound
		}
		return false, err
	}
	return service.engagements.ToggleLike(userID, request.ID)
}

func (service *MarketplaceService) buildJobView(request models.ServiceRequest, now time.Time) (JobView, error) {
	owner, err := service.users.FindByID(request.UserID)
	if err != nil {
		return JobView{}, err
	}

	location := ""
	if request.PropertyID != nil {
		if property, err := service.properties.FindByID(*request.PropertyID); err == nil {
			location = property.Address
		}
	}

	views, err := service.engagements.Views(request.ID)
	if err != nil {
		return JobView{}, err
	}
	likes, err := service.engagements.CountLikes(request.ID)
	if err != nil {
		return JobView{}, err
	}

	return JobView{
		ID:             request.PublicID,
		Title:          request.Title,
		Category:       request.Category,
		Description:    request.Description,
		Budget:         BudgetValue(request.Budget),
		BudgetType:     "fixed",
		Location:       location,
		PostedAt:       request.CreatedAt,
		PostedAgo:      FormatPostedAgo(request.CreatedAt, now),
		Urgency:        urgencyFromPriority(request.Priority),
		Homeowner:      HomeownerSummary{ID: owner.PublicID, Name: owner.Name},
		Images:         append([]string{}, request.Images...),
		EstimatedHours: request.Timeline,
		Status:         request.Status,
		BidCount:       request.BidCount,
		Views:          views,
		Likes:          likes,
	}, nil
}

// FilterJobs is a pure transform: it never mutates the input slice.
func FilterJobs(jobs []JobView, filters JobFilters) []JobView {
	filtered := make([]JobView, 0, len(jobs))
	query := strings.ToLower(strings.TrimSpace(filters.Query))
	location := strings.ToLower(strings.TrimSpace(filters.Location))

	for _, job := range jobs {
		if filters.Category != "" && job.Category != filters.Category {
			continue
		}
		if location != "" && !strings.Contains(strings.ToLower(job.Location), location) {
			continue
		}
		if filters.MinBudget > 0 && job.Budget < filters.MinBudget {
			continue
		}
		if filters.MaxBudget > 0 && job.Budget > filters.MaxBudget {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(job.Title), query) &&
			!strings.Contains(strings.ToLower(job.Description), query) {
			continue
		}
		filtered = append(filtered, job)
	}
	return filtered
}

// SortJobs orders jobs by the given key without mutating the input.
// Supported keys: recent (default), budget, popularity.
func SortJobs(jobs []JobView, sortKey string) []JobView {
	sorted := append([]JobView(nil), jobs...)
	switch sortKey {
	case "budget":
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Budget > sorted[j].Budget
		})
	case "popularity":
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Views > sorted[j].Views
		})
	default:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].PostedAt.After(sorted[j].PostedAt)
		})
	}
	return sorted
}

func urgencyFromPriority(priority string) string {
	switch priority {
	case models.PriorityHigh, models.PriorityUrgent:
		return "urgent"
	case models.PriorityLow:
		return "low"
	}
	return "normal"
}

// FormatPostedAgo renders the relative posted time the job cards show.
func FormatPostedAgo(postedAt time.Time, now time.Time) string {
	if postedAt.IsZero() || postedAt.After(now) {
		return "Just now"
	}

	hours := int(now.Sub(postedAt).Hours())
	switch {
	case hours < 1:
		return "Just now"
	case hours == 1:
		return "1 hour ago"
	case hours < 24:
		return fmt.Sprintf("%d hours ago", hours)
	}

	days := hours / 24
	if days == 1 {
		return "1 day ago"
	}
	return fmt.Sprintf("%d days ago", days)
}
