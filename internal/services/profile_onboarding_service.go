package services

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/fixbo/fixbo/internal/models"
)

const (
	HandymanStepBusiness  = 1
	HandymanStepInsurance = 2
	HandymanStepServices  = 3
	HandymanStepLogistics = 4
	HandymanStepReview    = 5
)

var ErrUnknownWizardStep = errors.New("unknown wizard step")

// HandymanProfileDraft accumulates the professional profile wizard answers.
type HandymanProfileDraft struct {
	BusinessName          string                            `json:"businessName"`
	ContactPhone          string                            `json:"contactPhone"`
	ContactEmail          string                            `json:"contactEmail"`
	YearsExperience       int                               `json:"yearsExperience"`
	GettingStarted        bool                              `json:"gettingStarted"`
	HasLiabilityInsurance bool                              `json:"hasLiabilityInsurance"`
	HasWorkersComp        bool                              `json:"hasWorkersComp"`
	HasBonding            bool                              `json:"hasBonding"`
	InsuranceProvider     string                            `json:"insuranceProvider"`
	Services              []string                          `json:"services"`
	SpecialSkills         string                            `json:"specialSkills"`
	ServiceArea           string                            `json:"serviceArea"`
	ServiceRadiusMiles    int                               `json:"serviceRadiusMiles"`
	Availability          map[string]models.DayAvailability `json:"availability"`
	HourlyRate            float64                           `json:"hourlyRate"`
	MinimumCharge         float64                           `json:"minimumCharge"`
	PricingModel          string                            `json:"pricingModel"`
}

type ProfileOnboardingUserRepository interface {
	FindByID(userID uint) (models.User, error)
	SaveProfileDraft(userID uint, draft []byte) error
	CompleteHandymanSetup(userID uint, profile *models.HandymanProfile) error
	RearmSetup(userID uint, role string) error
}

type ProfileOnboardingService struct {
	users ProfileOnboardingUserRepository
}

func NewProfileOnboardingService(users ProfileOnboardingUserRepository) *ProfileOnboardingService {
	return &ProfileOnboardingService{users: users}
}

// ValidateHandymanStep is the canProceed predicate per wizard step.
func ValidateHandymanStep(step int, draft HandymanProfileDraft) error {
	validation := NewValidationError()

	switch step {
	case HandymanStepBusiness:
		if strings.TrimSpace(draft.BusinessName) == "" {
			validation.Add("businessName", "business name is required")
		}
		if strings.TrimSpace(draft.ContactPhone) == "" {
			validation.Add("contactPhone", "contact phone is required")
		}
		if draft.ContactEmail != "" && !IsValidEmail(NormalizeEmail(draft.ContactEmail)) {
			validation.Add("contactEmail", "invalid contact email")
		}
	case HandymanStepInsurance:
		if !draft.GettingStarted && !draft.HasLiabilityInsurance &&
			!draft.HasWorkersComp && !draft.HasBonding {
			validation.Add("insurance", "select at least one option")
		}
	case HandymanStepServices:
		if len(draft.Services) == 0 {
			validation.Add("services", "select at least one service")
		}
		for _, serviceID := range draft.Services {
			if !models.IsKnownJobCategory(serviceID) {
				validation.Add("services", "unknown service: "+serviceID)
				break
			}
		}
	case HandymanStepLogistics:
		if draft.HourlyRate < 0 {
			validation.Add("hourlyRate", "hourly rate cannot be negative")
		}
		if draft.ServiceRadiusMiles < 0 {
			validation.Add("serviceRadiusMiles", "service radius cannot be negative")
		}
	case HandymanStepReview:
		// Review collects nothing; commit re-runs the earlier predicates.
	default:
		return ErrUnknownWizardStep
	}

	return validation.ErrOrNil()
}

func (service *ProfileOnboardingService) SaveStep(userID uint, step int, draft HandymanProfileDraft) error {
	if err := ValidateHandymanStep(step, draft); err != nil {
		return err
	}

	serialized, err := json.Marshal(draft)
	if err != nil {
		return err
	}
	return service.users.SaveProfileDraft(userID, serialized)
}

// Complete re-validates every collecting step atomically, then commits the
// profile and the completion flag as one unit.
func (service *ProfileOnboardingService) Complete(userID uint) (*models.HandymanProfile, error) {
	user, err := service.users.FindByID(userID)
	if err != nil {
		return nil, err
	}

	draft := HandymanProfileDraft{}
	if len(user.ProfileDraft) > 0 {
		if err := json.Unmarshal(user.ProfileDraft, &draft); err != nil {
			return nil, err
		}
	}

	for step := HandymanStepBusiness; step <= HandymanStepLogistics; step++ {
		if err := ValidateHandymanStep(step, draft); err != nil {
			return nil, err
		}
	}

	profile := buildProfileFromDraft(draft)
	if err := service.users.CompleteHandymanSetup(userID, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (service *ProfileOnboardingService) Skip(userID uint) error {
	return service.users.CompleteHandymanSetup(userID, nil)
}

func (service *ProfileOnboardingService) Restart(userID uint) error {
	return service.users.RearmSetup(userID, models.RoleHandyman)
}

func buildProfileFromDraft(draft HandymanProfileDraft) *models.HandymanProfile {
	availability := draft.Availability
	if len(availability) == 0 {
		availability = models.DefaultAvailability()
	}

	return &models.HandymanProfile{
		BusinessName:          strings.TrimSpace(draft.BusinessName),
		ContactPhone:          strings.TrimSpace(draft.ContactPhone),
		ContactEmail:          NormalizeEmail(draft.ContactEmail),
		YearsExperience:       draft.YearsExperience,
		GettingStarted:        draft.GettingStarted,
		HasLiabilityInsurance: draft.HasLiabilityInsurance,
		HasWorkersComp:        draft.HasWorkersComp,
		HasBonding:            draft.HasBonding,
		InsuranceProvider:     strings.TrimSpace(draft.InsuranceProvider),
		Services:              append([]string(nil), draft.Services...),
		SpecialSkills:         strings.TrimSpace(draft.SpecialSkills),
		ServiceArea:           strings.TrimSpace(draft.ServiceArea),
		ServiceRadiusMiles:    draft.ServiceRadiusMiles,
		Availability:          availability,
		HourlyRate:            draft.HourlyRate,
		MinimumCharge:         draft.MinimumCharge,
		PricingModel:          strings.TrimSpace(draft.PricingModel),
		CreatedAt:             time.Now(),
	}
}
