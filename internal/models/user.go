package models

import "time"

const (
	RoleCustomer = "customer"
	RoleHandyman = "handyman"
)

// Situation values collected by step 1 of the customer wizard.
const (
	SituationOwner   = "owner"
	SituationRenter  = "renter"
	SituationManager = "manager"
	SituationBrowse  = "browse"
)

type User struct {
	ID                     uint      `gorm:"primaryKey" json:"-"`
	PublicID               string    `gorm:"uniqueIndex;not null" json:"id"`
	Email                  string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash           string    `gorm:"not null" json:"-"`
	Name                   string    `gorm:"not null" json:"name"`
	Phone                  string    `json:"phone"`
	Role                   string    `gorm:"not null;default:customer" json:"userType"`
	MustChangePassword     bool      `gorm:"not null;default:false" json:"-"`
	SetupCompleted         bool      `gorm:"not null;default:false" json:"setupCompleted"`
	HandymanSetupCompleted bool      `gorm:"not null;default:false" json:"handymanSetupCompleted"`
	SetupSituation         string    `json:"-"`
	PropertyDraft          []byte    `json:"-"`
	ProfileDraft           []byte    `json:"-"`
	CreatedAt              time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt              time.Time `json:"updatedAt"`
}

func (user *User) IsCustomer() bool {
	return user != nil && user.Role == RoleCustomer
}

func (user *User) IsHandyman() bool {
	return user != nil && user.Role == RoleHandyman
}

// OnboardingDone reports whether the role-specific wizard has been finished.
// Skipping the wizard is equally terminal.
func (user *User) OnboardingDone() bool {
	if user == nil {
		return false
	}
	if user.Role == RoleHandyman {
		return user.HandymanSetupCompleted
	}
	return user.SetupCompleted
}
