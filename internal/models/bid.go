package models

import "time"

const (
	BidStatusPending   = "pending"
	BidStatusAccepted  = "accepted"
	BidStatusRejected  = "rejected"
	BidStatusWithdrawn = "withdrawn"
)

type Bid struct {
	ID             uint       `gorm:"primaryKey" json:"-"`
	PublicID       string     `gorm:"uniqueIndex;not null" json:"id"`
	RequestID      uint       `gorm:"not null;index" json:"-"`
	JobPublicID    string     `gorm:"not null;index" json:"jobId"`
	ContractorID   uint       `gorm:"not null;index" json:"-"`
	ContractorName string     `gorm:"not null" json:"contractor"`
	Amount         float64    `gorm:"not null" json:"amount"`
	EstimatedHours float64    `json:"estimatedHours"`
	Message        string     `json:"message"`
	Status         string     `gorm:"not null;default:pending" json:"status"`
	ScheduledDate  *time.Time `json:"scheduledDate,omitempty"`
	CreatedAt      time.Time  `gorm:"not null" json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}
