package services

import (
	"net/mail"
	"strings"
)

// NormalizeEmail lowercases and trims; the repository queries compare against
// the same normalization.
func NormalizeEmail(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

func IsValidEmail(email string) bool {
	if email == "" {
		return false
	}
	_, err := mail.ParseAddress(email)
	return err == nil
}

type RegistrationInput struct {
	Name            string
	Email           string
	Phone           string
	Role            string
	Password        string
	ConfirmPassword string
}

func ValidateRegistrationInput(input RegistrationInput) error {
	validation := NewValidationError()

	if strings.TrimSpace(input.Name) == "" {
		validation.Add("name", "name is required")
	}
	if !IsValidEmail(NormalizeEmail(input.Email)) {
		validation.Add("email", "valid email is required")
	}
	if input.Role != "" && input.Role != "customer" && input.Role != "handyman" {
		validation.Add("userType", "unknown account type")
	}
	if err := ValidatePasswordStrength(input.Password); err != nil {
		validation.Add("password", err.Error())
	}
	if input.Password != input.ConfirmPassword {
		validation.Add("confirmPassword", "passwords do not match")
	}

	return validation.ErrOrNil()
}
