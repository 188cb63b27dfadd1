package services

import (
	"strconv"
	"strings"

	"github.com/fixbo/fixbo/internal/models"
)

const (
	RequestStepDetails = 1
	RequestStepPhotos  = 2
	RequestStepBudget  = 3
	RequestStepReview  = 4
)

const maxRequestImages = 6
const minDescriptionLength = 10

// BudgetRanges are the selectable budget tokens; a custom amount is encoded
// as "custom-<dollars>".
var BudgetRanges = []string{
	"under-100",
	"100-300",
	"300-500",
	"500-1000",
	"over-1000",
}

// TimelineOptions are the selectable timeline tokens.
var TimelineOptions = []string{"asap", "week", "month", "flexible"}

// RequestDraft is the accumulated 4-step wizard state. The edit flow
// pre-populates the same shape from an existing record.
type RequestDraft struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Priority    string   `json:"priority"`
	PropertyID  string   `json:"propertyId"`
	Images      []string `json:"images"`
	Budget      string   `json:"budget"`
	Timeline    string   `json:"timeline"`
}

// ValidateRequestStep is the per-step forward-navigation gate. It returns a
// *ValidationError carrying only the failing step's fields, so fixing one
// field clears exactly that error.
func ValidateRequestStep(step int, draft RequestDraft) error {
	validation := NewValidationError()

	switch step {
	case RequestStepDetails:
		if strings.TrimSpace(draft.Title) == "" {
			validation.Add("title", "Title is required")
		}
		description := strings.TrimSpace(draft.Description)
		if description == "" {
			validation.Add("description", "Description is required")
		} else if len(description) < minDescriptionLength {
			validation.Add("description", "Description must be at least 10 characters")
		}
		if draft.Category == "" {
			validation.Add("category", "Please select a category")
		} else if !models.IsKnownJobCategory(draft.Category) {
			validation.Add("category", "Unknown category")
		}
		if draft.Priority != "" && !models.IsKnownPriority(draft.Priority) {
			validation.Add("priority", "Unknown priority level")
		}
	case RequestStepPhotos:
		if len(draft.Images) > maxRequestImages {
			validation.Add("images", "At most 6 photos are allowed")
		}
		for _, handle := range draft.Images {
			if strings.TrimSpace(handle) == "" {
				validation.Add("images", "Empty image reference")
				break
			}
		}
	case RequestStepBudget:
		if draft.Budget == "" {
			validation.Add("budget", "Please select a budget range")
		} else if !IsKnownBudget(draft.Budget) {
			validation.Add("budget", "Unknown budget range")
		}
		if draft.Timeline != "" && !isKnownTimeline(draft.Timeline) {
			validation.Add("timeline", "Unknown timeline")
		}
	case RequestStepReview:
		// Review collects nothing.
	default:
		return ErrUnknownWizardStep
	}

	return validation.ErrOrNil()
}

// ValidateRequestDraft re-runs every step atomically. Submission must pass
// this even when individual steps were validated earlier, guarding against
// stale state from back-navigated steps.
func ValidateRequestDraft(draft RequestDraft) error {
	validation := NewValidationError()
	for step := RequestStepDetails; step <= RequestStepReview; step++ {
		if err := ValidateRequestStep(step, draft); err != nil {
			if stepValidation, ok := AsValidationError(err); ok {
				for field, message := range stepValidation.Fields {
					validation.Add(field, message)
				}
				continue
			}
			return err
		}
	}
	return validation.ErrOrNil()
}

func IsKnownBudget(value string) bool {
	for _, budgetRange := range BudgetRanges {
		if budgetRange == value {
			return true
		}
	}
	_, ok := customBudgetAmount(value)
	return ok
}

func isKnownTimeline(value string) bool {
	for _, option := range TimelineOptions {
		if option == value {
			return true
		}
	}
	return false
}

func customBudgetAmount(value string) (float64, bool) {
	raw, found := strings.CutPrefix(value, "custom-")
	if !found {
		return 0, false
	}
	amount, err := strconv.ParseFloat(raw, 64)
	if err != nil || amount <= 0 {
		return 0, false
	}
	return amount, true
}

// BudgetValue maps a budget token to a representative dollar amount used for
// range filtering and marketplace display.
func BudgetValue(budget string) float64 {
	if amount, ok := customBudgetAmount(budget); ok {
		return amount
	}
	switch budget {
	case "under-100":
		return 100
	case "100-300":
		return 200
	case "300-500":
		return 400
	case "500-1000":
		return 750
	case "over-1000":
		return 1250
	}
	return 200
}
