package services

import (
	"errors"
	"sort"
	"time"

	"github.com/fixbo/fixbo/internal/models"
	"gorm.io/gorm"
)

type ContractorBidRepository interface {
	ListByContractor(contractorID uint) ([]models.Bid, error)
	ListAcceptedByContractorRange(contractorID uint, start time.Time, end time.Time) ([]models.Bid, error)
}

type ContractorRequestRepository interface {
	FindByID(requestID uint) (models.ServiceRequest, error)
}

type ContractorService struct {
	bids     ContractorBidRepository
	requests ContractorRequestRepository
}

func NewContractorService(bids ContractorBidRepository, requests ContractorRequestRepository) *ContractorService {
	return &ContractorService{bids: bids, requests: requests}
}

// ContractorStats is the handyman dashboard header: money earned, job
// counters and the current week's schedule load.
type ContractorStats struct {
	TotalEarnings   float64 `json:"totalEarnings"`
	CompletedJobs   int     `json:"completedJobs"`
	ActiveJobs      int     `json:"activeJobs"`
	PendingBids     int     `json:"pendingBids"`
	WeeklyEarnings  float64 `json:"weeklyEarnings"`
	WeeklyScheduled int     `json:"weeklyScheduled"`
}

// ContractorProject is one row of the handyman's project list: their bid
// plus enough of the underlying job to render the card.
type ContractorProject struct {
	BidID         string     `json:"bidId"`
	JobID         string     `json:"jobId"`
	Title         string     `json:"title"`
	Category      string     `json:"category"`
	CustomerID    uint       `json:"-"`
	Amount        float64    `json:"amount"`
	BidStatus     string     `json:"bidStatus"`
	JobStatus     string     `json:"jobStatus"`
	ScheduledDate *time.Time `json:"scheduledDate,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
}

// CalendarEntry is one scheduled visit on the handyman's calendar.
type CalendarEntry struct {
	BidID     string    `json:"bidId"`
	JobID     string    `json:"jobId"`
	Title     string    `json:"title"`
	Category  string    `json:"category"`
	Amount    float64   `json:"amount"`
	Scheduled time.Time `json:"scheduled"`
}

// Stats derives the dashboard counters from the contractor's bid history.
// Earnings count accepted bids whose job reached Completed; active jobs are
// accepted bids still in flight.
func (service *ContractorService) Stats(contractorID uint, now time.Time) (ContractorStats, error) {
	bids, err := service.bids.ListByContractor(contractorID)
	if err != nil {
		return ContractorStats{}, err
	}

	weekStart := startOfWeek(now)
	weekEnd := weekStart.AddDate(0, 0, 7)

	var stats ContractorStats
	for _, bid := range bids {
		switch bid.Status {
		case models.BidStatusPending:
			stats.PendingBids++
		case models.BidStatusAccepted:
			request, err := service.requests.FindByID(bid.RequestID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					continue
				}
				return ContractorStats{}, err
			}

			if request.Status == models.RequestStatusCompleted {
				stats.CompletedJobs++
				stats.TotalEarnings += bid.Amount
				if bid.ScheduledDate != nil && inRange(*bid.ScheduledDate, weekStart, weekEnd) {
					stats.WeeklyEarnings += bid.Amount
				}
			} else if request.Status != models.RequestStatusCancelled {
				stats.ActiveJobs++
			}

			if bid.ScheduledDate != nil && inRange(*bid.ScheduledDate, weekStart, weekEnd) {
				stats.WeeklyScheduled++
			}
		}
	}
	return stats, nil
}

// Projects lists the contractor's bids with the underlying jobs, newest
// first. An empty status returns everything; otherwise it filters on the
// bid status.
func (service *ContractorService) Projects(contractorID uint, status string) ([]ContractorProject, error) {
	bids, err := service.bids.ListByContractor(contractorID)
	if err != nil {
		return nil, err
	}

	projects := make([]ContractorProject, 0, len(bids))
	for _, bid := range bids {
		if status != "" && bid.Status != status {
			continue
		}

		request, err := service.requests.FindByID(bid.RequestID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, err
		}

		projects = append(projects, ContractorProject{
			BidID:         bid.PublicID,
			JobID:         request.PublicID,
			Title:         request.Title,
			Category:      request.Category,
			CustomerID:    request.UserID,
			Amount:        bid.Amount,
			BidStatus:     bid.Status,
			JobStatus:     request.Status,
			ScheduledDate: bid.ScheduledDate,
			CreatedAt:     bid.CreatedAt,
		})
	}
	return projects, nil
}

// Calendar returns the contractor's accepted, scheduled work inside
// [start, end), ordered by date.
func (service *ContractorService) Calendar(contractorID uint, start time.Time, end time.Time) ([]CalendarEntry, error) {
	bids, err := service.bids.ListAcceptedByContractorRange(contractorID, start, end)
	if err != nil {
		return nil, err
	}

	entries := make([]CalendarEntry, 0, len(bids))
	for _, bid := range bids {
		if bid.ScheduledDate == nil {
			continue
		}

		request, err := service.requests.FindByID(bid.RequestID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, err
		}

		entries = append(entries, CalendarEntry{
			BidID:     bid.PublicID,
			JobID:     request.PublicID,
			Title:     request.Title,
			Category:  request.Category,
			Amount:    bid.Amount,
			Scheduled: *bid.ScheduledDate,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Scheduled.Before(entries[j].Scheduled)
	})
	return entries, nil
}

// startOfWeek snaps to the preceding Monday at midnight.
func startOfWeek(now time.Time) time.Time {
	day := now.Weekday()
	offset := int(day) - int(time.Monday)
	if offset < 0 {
		offset += 7
	}
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return midnight.AddDate(0, 0, -offset)
}

func inRange(moment time.Time, start time.Time, end time.Time) bool {
	return !moment.Before(start) && moment.Before(end)
}
