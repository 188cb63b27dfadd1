package services

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/fixbo/fixbo/internal/models"
	"gorm.io/gorm"
)

type PropertyEditRepository interface {
	FindByPublicID(userID uint, publicID string) (models.Property, error)
	Save(property *models.Property) error
}

// PropertyUpdateInput is the property edit form payload. Numeric fields
// arrive as strings because the form stores them that way.
type PropertyUpdateInput struct {
	Address     string `json:"address"`
	Type        string `json:"type"`
	Size        string `json:"size"`
	YearBuilt   string `json:"yearBuilt"`
	Bedrooms    string `json:"bedrooms"`
	Bathrooms   string `json:"bathrooms"`
	Description string `json:"description"`
	Notes       string `json:"notes"`
}

type PropertyService struct {
	properties PropertyEditRepository
}

func NewPropertyService(properties PropertyEditRepository) *PropertyService {
	return &PropertyService{properties: properties}
}

var (
	yearBuiltPattern = regexp.MustCompile(`^\d{4}$`)
	bedroomsPattern  = regexp.MustCompile(`^\d+$`)
	bathroomsPattern = regexp.MustCompile(`^\d+(\.\d)?$`)
)

const earliestYearBuilt = 1800

// ValidatePropertyUpdate applies the edit form's rules: address, type, size
// and a plausible build year are required; room counts are optional but must
// be numeric when present, with bathrooms allowing one decimal place.
func ValidatePropertyUpdate(input PropertyUpdateInput, now time.Time) error {
	validation := NewValidationError()

	if strings.TrimSpace(input.Address) == "" {
		validation.Add("address", "address is required")
	}
	if strings.TrimSpace(input.Type) == "" {
		validation.Add("type", "property type is required")
	} else if !models.IsKnownPropertyType(input.Type) {
		validation.Add("type", "unknown property type")
	}
	if strings.TrimSpace(input.Size) == "" {
		validation.Add("size", "size is required")
	}

	yearBuilt := strings.TrimSpace(input.YearBuilt)
	if yearBuilt == "" {
		validation.Add("yearBuilt", "year built is required")
	} else if !yearBuiltPattern.MatchString(yearBuilt) {
		validation.Add("yearBuilt", "enter a valid 4-digit year")
	} else if year, _ := strconv.Atoi(yearBuilt); year < earliestYearBuilt || year > now.Year() {
		validation.Add("yearBuilt", "enter a valid 4-digit year")
	}

	bedrooms := strings.TrimSpace(input.Bedrooms)
	if bedrooms != "" && !bedroomsPattern.MatchString(bedrooms) {
		validation.Add("bedrooms", "bedrooms must be a whole number")
	}
	bathrooms := strings.TrimSpace(input.Bathrooms)
	if bathrooms != "" && !bathroomsPattern.MatchString(bathrooms) {
		validation.Add("bathrooms", "bathrooms must be a number like 2 or 2.5")
	}

	return validation.ErrOrNil()
}

// Update replaces a property's editable fields in place, preserving its
// status, counters and ownership.
func (service *PropertyService) Update(userID uint, publicID string, input PropertyUpdateInput) (models.Property, error) {
	if err := ValidatePropertyUpdate(input, time.Now()); err != nil {
		return models.Property{}, err
	}

	property, err := service.properties.FindByPublicID(userID, publicID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Property{}, ErrPropertyNotFound
		}
		return models.Property{}, err
	}

	property.Address = strings.TrimSpace(input.Address)
	property.Type = input.Type
	property.Size = strings.TrimSpace(input.Size)
	property.YearBuilt = strings.TrimSpace(input.YearBuilt)
	property.Bedrooms = strings.TrimSpace(input.Bedrooms)
	property.Bathrooms = strings.TrimSpace(input.Bathrooms)
	property.Description = strings.TrimSpace(input.Description)
	property.Notes = strings.TrimSpace(input.Notes)

	if err := service.properties.Save(&property); err != nil {
		return models.Property{}, err
	}
	return property, nil
}
