package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrJobNotFound        = errors.New("job not found")
	ErrBidNotFound        = errors.New("bid not found")
	ErrPropertyNotFound   = errors.New("property not found")
	ErrNotJobOwner        = errors.New("not the job owner")
	ErrBidOwnJob          = errors.New("cannot bid on your own job")
	ErrJobNotBiddable     = errors.New("job is not accepting bids")
	ErrBidNotPending      = errors.New("bid is no longer pending")
)

// ValidationError carries per-field messages for wizard steps and forms. It
// never crosses the API boundary as a 500; handlers render the field map and
// the client re-prompts.
type ValidationError struct {
	Fields map[string]string
}

func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string]string)}
}

func (validation *ValidationError) Add(field string, message string) {
	if validation.Fields == nil {
		validation.Fields = make(map[string]string)
	}
	validation.Fields[field] = message
}

func (validation *ValidationError) HasErrors() bool {
	return len(validation.Fields) > 0
}

// ErrOrNil lets validators build up a map and return nil when it stayed empty.
func (validation *ValidationError) ErrOrNil() error {
	if validation == nil || !validation.HasErrors() {
		return nil
	}
	return validation
}

func (validation *ValidationError) Error() string {
	if len(validation.Fields) == 0 {
		return "validation failed"
	}

	fields := make([]string, 0, len(validation.Fields))
	for field := range validation.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, validation.Fields[field]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func AsValidationError(err error) (*ValidationError, bool) {
	var validation *ValidationError
	if errors.As(err, &validation) {
		return validation, true
	}
	return nil, false
}
