package services

import (
	"testing"
	"time"

	"github.com/fixbo/fixbo/internal/models"
	"gorm.io/gorm"
)

type fakePropertyStore struct {
	properties map[string]models.Property
}

func (store *fakePropertyStore) FindByPublicID(userID uint, publicID string) (models.Property, error) {
	property, ok := store.properties[publicID]
	if !ok || property.UserID != userID {
		return models.Property{}, gorm.ErrRecordNotFound
	}
	return property, nil
}

func (store *fakePropertyStore) Save(property *models.Property) error {
	store.properties[property.PublicID] = *property
	return nil
}

func validPropertyUpdate() PropertyUpdateInput {
	return PropertyUpdateInput{
		Address:   "14 Oak Street, Springfield",
		Type:      "Townhouse",
		Size:      "1850",
		YearBuilt: "1987",
		Bedrooms:  "3",
		Bathrooms: "2.5",
	}
}

func TestValidatePropertyUpdate(t *testing.T) {
	now := time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)

	if err := ValidatePropertyUpdate(validPropertyUpdate(), now); err != nil {
		t.Fatalf("valid input rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*PropertyUpdateInput)
		field  string
	}{
		{"missing address", func(input *PropertyUpdateInput) { input.Address = "  " }, "address"},
		{"unknown type", func(input *PropertyUpdateInput) { input.Type = "Castle" }, "type"},
		{"missing size", func(input *PropertyUpdateInput) { input.Size = "" }, "size"},
		{"missing year", func(input *PropertyUpdateInput) { input.YearBuilt = "" }, "yearBuilt"},
		{"short year", func(input *PropertyUpdateInput) { input.YearBuilt = "99" }, "yearBuilt"},
		{"year before 1800", func(input *PropertyUpdateInput) { input.YearBuilt = "1750" }, "yearBuilt"},
		{"year in the future", func(input *PropertyUpdateInput) { input.YearBuilt = "3021" }, "yearBuilt"},
		{"fractional bedrooms", func(input *PropertyUpdateInput) { input.Bedrooms = "2.5" }, "bedrooms"},
		{"wordy bathrooms", func(input *PropertyUpdateInput) { input.Bathrooms = "two" }, "bathrooms"},
		{"too many decimals", func(input *PropertyUpdateInput) { input.Bathrooms = "2.55" }, "bathrooms"},
	}
	for _, testCase := range cases {
		input := validPropertyUpdate()
		testCase.mutate(&input)
		validation, ok := AsValidationError(ValidatePropertyUpdate(input, now))
		if !ok || validation.Fields[testCase.field] == "" {
			t.Fatalf("%s: expected a %s field error, got %v", testCase.name, testCase.field, validation)
		}
	}

	// Room counts are optional.
	input := validPropertyUpdate()
	input.Bedrooms = ""
	input.Bathrooms = ""
	if err := ValidatePropertyUpdate(input, now); err != nil {
		t.Fatalf("empty room counts rejected: %v", err)
	}
}

func TestPropertyUpdatePreservesOwnershipAndCounters(t *testing.T) {
	store := &fakePropertyStore{properties: map[string]models.Property{
		"prop-1": {
			ID:             7,
			PublicID:       "prop-1",
			UserID:         1,
			Address:        "12 Oak Street",
			Type:           "Single Family Home",
			Status:         models.PropertyStatusActive,
			ActiveRequests: 2,
		},
	}}
	service := NewPropertyService(store)

	updated, err := service.Update(1, "prop-1", validPropertyUpdate())
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Address != "14 Oak Street, Springfield" || updated.Type != "Townhouse" {
		t.Fatalf("fields not replaced: %+v", updated)
	}
	if updated.UserID != 1 || updated.ActiveRequests != 2 || updated.Status != models.PropertyStatusActive {
		t.Fatalf("update touched ownership or counters: %+v", updated)
	}

	if _, err := service.Update(2, "prop-1", validPropertyUpdate()); err != ErrPropertyNotFound {
		t.Fatalf("expected ErrPropertyNotFound for a foreign property, got %v", err)
	}
}
