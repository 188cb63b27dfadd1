package services

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/fixbo/fixbo/internal/models"
	"github.com/google/uuid"
)

var ErrSituationUnknown = errors.New("unknown setup situation")

// PropertyDraft accumulates the customer wizard answers between steps.
type PropertyDraft struct {
	Street      string `json:"street"`
	City        string `json:"city"`
	State       string `json:"state"`
	ZipCode     string `json:"zipCode"`
	Type        string `json:"type"`
	Size        string `json:"size"`
	YearBuilt   string `json:"yearBuilt"`
	Bedrooms    string `json:"bedrooms"`
	Bathrooms   string `json:"bathrooms"`
	Description string `json:"description"`
	Notes       string `json:"notes"`
}

type OnboardingUserRepository interface {
	FindByID(userID uint) (models.User, error)
	SaveSetupSituation(userID uint, situation string) error
	SavePropertyDraft(userID uint, draft []byte) error
	CompleteCustomerSetup(userID uint, property *models.Property) error
	RearmSetup(userID uint, role string) error
}

type OnboardingService struct {
	users OnboardingUserRepository
}

func NewOnboardingService(users OnboardingUserRepository) *OnboardingService {
	return &OnboardingService{users: users}
}

// SaveSituation handles step 1. Choosing "browse" is a terminal skip: the
// wizard must not be shown again, with no property created.
func (service *OnboardingService) SaveSituation(userID uint, situation string) (skipped bool, err error) {
	switch situation {
	case models.SituationOwner, models.SituationRenter, models.SituationManager:
		return false, service.users.SaveSetupSituation(userID, situation)
	case models.SituationBrowse:
		if err := service.users.SaveSetupSituation(userID, situation); err != nil {
			return false, err
		}
		return true, service.Skip(userID)
	}
	return false, ErrSituationUnknown
}

// ValidatePropertyStep is the canProceed predicate for step 2.
func ValidatePropertyStep(draft PropertyDraft) error {
	validation := NewValidationError()
	if strings.TrimSpace(draft.Street) == "" {
		validation.Add("street", "street address is required")
	}
	if strings.TrimSpace(draft.City) == "" {
		validation.Add("city", "city is required")
	}
	if strings.TrimSpace(draft.State) == "" {
		validation.Add("state", "state is required")
	}
	if strings.TrimSpace(draft.Type) == "" {
		validation.Add("type", "property type is required")
	} else if !models.IsKnownPropertyType(draft.Type) {
		validation.Add("type", "unknown property type")
	}
	return validation.ErrOrNil()
}

func (service *OnboardingService) SavePropertyStep(userID uint, draft PropertyDraft) error {
	if err := ValidatePropertyStep(draft); err != nil {
		return err
	}

	serialized, err := json.Marshal(draft)
	if err != nil {
		return err
	}
	return service.users.SavePropertyDraft(userID, serialized)
}

// Complete commits the draft as a Property and flips the completion flag. The
// step-2 predicate is enforced again here, guarding against a commit with no
// prior step.
func (service *OnboardingService) Complete(userID uint) (*models.Property, error) {
	user, err := service.users.FindByID(userID)
	if err != nil {
		return nil, err
	}

	draft := PropertyDraft{}
	if len(user.PropertyDraft) > 0 {
		if err := json.Unmarshal(user.PropertyDraft, &draft); err != nil {
			return nil, err
		}
	}
	if err := ValidatePropertyStep(draft); err != nil {
		return nil, err
	}

	property := buildPropertyFromDraft(draft, user.SetupSituation)
	if err := service.users.CompleteCustomerSetup(userID, property); err != nil {
		return nil, err
	}
	return property, nil
}

// Skip is a terminal transition: the flag is set with no property so the
// wizard is not re-shown.
func (service *OnboardingService) Skip(userID uint) error {
	return service.users.CompleteCustomerSetup(userID, nil)
}

// Restart re-arms the wizard from profile settings.
func (service *OnboardingService) Restart(userID uint) error {
	return service.users.RearmSetup(userID, models.RoleCustomer)
}

func buildPropertyFromDraft(draft PropertyDraft, situation string) *models.Property {
	addressParts := make([]string, 0, 4)
	for _, part := range []string{draft.Street, draft.City, draft.State, draft.ZipCode} {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			addressParts = append(addressParts, trimmed)
		}
	}

	ownerRole := ""
	switch situation {
	case models.SituationOwner:
		ownerRole = "Owner"
	case models.SituationRenter:
		ownerRole = "Renter"
	case models.SituationManager:
		ownerRole = "Property Manager"
	}

	return &models.Property{
		PublicID:    uuid.NewString(),
		Address:     strings.Join(addressParts, ", "),
		Type:        draft.Type,
		OwnerRole:   ownerRole,
		Size:        valueOr(draft.Size, "Not specified"),
		YearBuilt:   valueOr(draft.YearBuilt, "Unknown"),
		Bedrooms:    valueOr(draft.Bedrooms, "Not specified"),
		Bathrooms:   valueOr(draft.Bathrooms, "Not specified"),
		Description: valueOr(draft.Description, "No description provided"),
		Notes:       draft.Notes,
		Status:      models.PropertyStatusActive,
		CreatedAt:   time.Now(),
	}
}

func valueOr(value string, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
