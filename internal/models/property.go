package models

import "time"

const PropertyStatusActive = "Active"

// PropertyTypes mirrors the options offered by the setup wizard.
var PropertyTypes = []string{
	"Single Family Home",
	"Condo",
	"Apartment",
	"Townhouse",
	"Duplex",
	"Other",
}

type Property struct {
	ID                uint      `gorm:"primaryKey" json:"-"`
	PublicID          string    `gorm:"uniqueIndex;not null" json:"id"`
	UserID            uint      `gorm:"not null;index" json:"-"`
	Address           string    `gorm:"not null" json:"address"`
	Type              string    `gorm:"not null" json:"type"`
	OwnerRole         string    `json:"userRole"`
	Size              string    `json:"size"`
	YearBuilt         string    `json:"yearBuilt"`
	Bedrooms          string    `json:"bedrooms"`
	Bathrooms         string    `json:"bathrooms"`
	Description       string    `json:"description"`
	Notes             string    `json:"notes"`
	Status            string    `gorm:"not null;default:Active" json:"status"`
	ActiveRequests    int       `gorm:"not null;default:0" json:"activeRequests"`
	CompletedRequests int       `gorm:"not null;default:0" json:"completedRequests"`
	CreatedAt         time.Time `gorm:"not null" json:"dateAdded"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

func IsKnownPropertyType(value string) bool {
	for _, propertyType := range PropertyTypes {
		if propertyType == value {
			return true
		}
	}
	return false
}
