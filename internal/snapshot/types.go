package snapshot

import (
	"time"

	"github.com/fixbo/fixbo/internal/models"
)

// Archive is the flat key/value form of a snapshot. Values are JSON except
// the boolean flags and view counters, which the old client stored raw.
type Archive map[string]string

// archiveUser carries what the old client kept per account. Password is
// import-only: old archives stored it in the clear, so imports hash it and
// exports never emit it.
type archiveUser struct {
	ID                     string `json:"id"`
	Name                   string `json:"name"`
	Email                  string `json:"email"`
	Phone                  string `json:"phone,omitempty"`
	UserType               string `json:"userType"`
	Password               string `json:"password,omitempty"`
	PasswordHash           string `json:"passwordHash,omitempty"`
	SetupCompleted         bool   `json:"hasCompletedSetup,omitempty"`
	HandymanSetupCompleted bool   `json:"hasCompletedHandymanSetup,omitempty"`
}

type archiveProperty struct {
	ID                string    `json:"id"`
	Address           string    `json:"address"`
	Type              string    `json:"type"`
	UserRole          string    `json:"userRole,omitempty"`
	Size              string    `json:"size,omitempty"`
	YearBuilt         string    `json:"yearBuilt,omitempty"`
	Bedrooms          string    `json:"bedrooms,omitempty"`
	Bathrooms         string    `json:"bathrooms,omitempty"`
	Description       string    `json:"description,omitempty"`
	Notes             string    `json:"notes,omitempty"`
	Status            string    `json:"status"`
	ActiveRequests    int       `json:"activeRequests"`
	CompletedRequests int       `json:"completedRequests"`
	DateAdded         time.Time `json:"dateAdded"`
}

type archiveRequest struct {
	ID          string    `json:"id"`
	PropertyID  string    `json:"propertyId,omitempty"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Priority    string    `json:"priority"`
	Images      []string  `json:"images,omitempty"`
	Budget      string    `json:"budget"`
	Timeline    string    `json:"timeline,omitempty"`
	Status      string    `json:"status"`
	BidCount    int       `json:"bidCount"`
	DateCreated time.Time `json:"dateCreated"`
}

type archiveBid struct {
	ID             string     `json:"id"`
	JobID          string     `json:"jobId"`
	ContractorID   string     `json:"contractorId"`
	Contractor     string     `json:"contractor"`
	Amount         float64    `json:"amount"`
	EstimatedHours float64    `json:"estimatedHours,omitempty"`
	Message        string     `json:"message,omitempty"`
	Status         string     `json:"status"`
	ScheduledDate  *time.Time `json:"scheduledDate,omitempty"`
	CreatedAt      time.Time  `json:"createdAt"`
}

type archiveProfile struct {
	BusinessName          string                            `json:"businessName"`
	ContactPhone          string                            `json:"contactPhone"`
	ContactEmail          string                            `json:"contactEmail,omitempty"`
	YearsExperience       int                               `json:"yearsExperience,omitempty"`
	GettingStarted        bool                              `json:"gettingStarted,omitempty"`
	HasLiabilityInsurance bool                              `json:"hasLiabilityInsurance,omitempty"`
	HasWorkersComp        bool                              `json:"hasWorkersComp,omitempty"`
	HasBonding            bool                              `json:"hasBonding,omitempty"`
	InsuranceProvider     string                            `json:"insuranceProvider,omitempty"`
	Services              []string                          `json:"services"`
	SpecialSkills         string                            `json:"specialSkills,omitempty"`
	ServiceArea           string                            `json:"serviceArea,omitempty"`
	ServiceRadiusMiles    int                               `json:"serviceRadiusMiles,omitempty"`
	Availability          map[string]models.DayAvailability `json:"availability,omitempty"`
	HourlyRate            float64                           `json:"hourlyRate,omitempty"`
	MinimumCharge         float64                           `json:"minimumCharge,omitempty"`
	PricingModel          string                            `json:"pricingModel,omitempty"`
}

type archiveSettings struct {
	EmailNotifications   bool `json:"emailNotifications"`
	BrowserNotifications bool `json:"browserNotifications"`
	BidAlerts            bool `json:"bidAlerts"`
	StatusUpdates        bool `json:"statusUpdates"`
	DarkMode             bool `json:"darkMode"`
	CompactView          bool `json:"compactView"`
}

// ImportSummary counts what an archive import actually wrote.
type ImportSummary struct {
	Users      int `json:"users"`
	Properties int `json:"properties"`
	Requests   int `json:"requests"`
	Bids       int `json:"bids"`
	Likes      int `json:"likes"`
	Skipped    int `json:"skipped"`
}
