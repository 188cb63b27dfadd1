package services

import (
	"errors"
	"regexp"
)

var (
	passwordLengthRegex = regexp.MustCompile(`^.{8,}$`)
	passwordUpperRegex  = regexp.MustCompile(`\p{Lu}`)
	passwordLowerRegex  = regexp.MustCompile(`\p{Ll}`)
	passwordDigitRegex  = regexp.MustCompile(`\d`)
)

func ValidatePasswordStrength(password string) error {
	if !passwordLengthRegex.MatchString(password) {
		return errors.New("password must be at least 8 characters")
	}

	if passwordUpperRegex.MatchString(password) &&
		passwordLowerRegex.MatchString(password) &&
		passwordDigitRegex.MatchString(password) {
		return nil
	}
	return errors.New("password must mix upper and lower case letters and digits")
}
