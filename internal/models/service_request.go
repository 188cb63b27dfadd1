package models

import "time"

const (
	RequestStatusOpen      = "Open"
	RequestStatusPending   = "Pending"
	RequestStatusActive    = "Active"
	RequestStatusCompleted = "Completed"
	RequestStatusCancelled = "Cancelled"
)

const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// JobCategories mirrors the category selector of the request wizard.
var JobCategories = []string{
	"plumbing",
	"electrical",
	"carpentry",
	"hvac",
	"painting",
	"landscaping",
	"general",
}

type ServiceRequest struct {
	ID          uint      `gorm:"primaryKey" json:"-"`
	PublicID    string    `gorm:"uniqueIndex;not null" json:"id"`
	UserID      uint      `gorm:"not null;index" json:"-"`
	PropertyID  *uint     `json:"-"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `gorm:"not null" json:"description"`
	Category    string    `gorm:"not null" json:"category"`
	Priority    string    `gorm:"not null;default:medium" json:"priority"`
	Images      []string  `gorm:"serializer:json" json:"images"`
	Budget      string    `gorm:"not null" json:"budget"`
	Timeline    string    `json:"timeline"`
	Status      string    `gorm:"not null;default:Open;index" json:"status"`
	BidCount    int       `gorm:"not null;default:0" json:"bidCount"`
	CreatedAt   time.Time `gorm:"not null" json:"dateCreated"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func IsKnownJobCategory(value string) bool {
	for _, category := range JobCategories {
		if category == value {
			return true
		}
	}
	return false
}

func IsKnownPriority(value string) bool {
	switch value {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

func IsKnownRequestStatus(value string) bool {
	switch value {
	case RequestStatusOpen, RequestStatusPending, RequestStatusActive,
		RequestStatusCompleted, RequestStatusCancelled:
		return true
	}
	return false
}

// IsBiddable reports whether the request should appear in the marketplace
// feed. Open requests have no bids yet; Active ones are collecting bids.
func (request *ServiceRequest) IsBiddable() bool {
	return request.Status == RequestStatusOpen || request.Status == RequestStatusActive
}
