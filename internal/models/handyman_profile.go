package models

import "time"

// Weekdays orders the availability map for stable rendering and export.
var Weekdays = []string{
	"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
}

type DayAvailability struct {
	Available bool   `json:"available"`
	Hours     string `json:"hours"`
}

type HandymanProfile struct {
	ID                    uint                       `gorm:"primaryKey" json:"-"`
	UserID                uint                       `gorm:"uniqueIndex;not null" json:"-"`
	BusinessName          string                     `gorm:"not null" json:"businessName"`
	ContactPhone          string                     `gorm:"not null" json:"contactPhone"`
	ContactEmail          string                     `json:"contactEmail"`
	YearsExperience       int                        `json:"yearsExperience"`
	GettingStarted        bool                       `gorm:"not null;default:false" json:"gettingStarted"`
	HasLiabilityInsurance bool                       `gorm:"not null;default:false" json:"hasLiabilityInsurance"`
	HasWorkersComp        bool                       `gorm:"not null;default:false" json:"hasWorkersComp"`
	HasBonding            bool                       `gorm:"not null;default:false" json:"hasBonding"`
	InsuranceProvider     string                     `json:"insuranceProvider"`
	Services              []string                   `gorm:"serializer:json" json:"services"`
	SpecialSkills         string                     `json:"specialSkills"`
	ServiceArea           string                     `json:"serviceArea"`
	ServiceRadiusMiles    int                        `json:"serviceRadiusMiles"`
	Availability          map[string]DayAvailability `gorm:"serializer:json" json:"availability"`
	HourlyRate            float64                    `json:"hourlyRate"`
	MinimumCharge         float64                    `json:"minimumCharge"`
	PricingModel          string                     `json:"pricingModel"`
	CreatedAt             time.Time                  `gorm:"not null" json:"createdAt"`
	UpdatedAt             time.Time                  `json:"updatedAt"`
}

// DefaultAvailability marks every day unavailable until the wizard fills it in.
func DefaultAvailability() map[string]DayAvailability {
	availability := make(map[string]DayAvailability, len(Weekdays))
	for _, day := range Weekdays {
		availability[day] = DayAvailability{Available: false, Hours: ""}
	}
	return availability
}
