package service

import (
	"fmt"
	"strings"

	"github.com/DenisMukonin/Project-Portfolio/internal/domain"
)

// Field length ceilings shared across entity validators.
const (
	maxTitleLen       = 100
	maxCompanyLen     = 100
	maxLocationLen    = 100
	maxSchoolLen      = 100
	maxDegreeLen      = 100
	maxFieldLen       = 100
	maxNameLen        = 100
	maxURLLen         = 500
	maxDescriptionLen = 1000
	maxBioLen         = 1000
)

// trimRequired trims a mandatory text field and enforces its length ceiling.
func trimRequired(field, value string, max int) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", &domain.ValidationError{Field: field, Message: "is required"}
	}
	if len(trimmed) > max {
		return "", &domain.ValidationError{Field: field, Message: fmt.Sprintf("too long (max %d characters)", max)}
	}
	return trimmed, nil
}

// trimOptional trims an optional text field, mapping blank input to nil and
// enforcing its length ceiling.
func trimOptional(field string, value *string, max int) (*string, error) {
	if value == nil {
		return nil, nil
	}
	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return nil, nil
	}
	if len(trimmed) > max {
		return nil, &domain.ValidationError{Field: field, Message: fmt.Sprintf("too long (max %d characters)", max)}
	}
	return &trimmed, nil
}

// parseStartDate parses and validates a start date: flexible format, a real
// calendar date, and not in the future.
func parseStartDate(field, value string) (domain.Date, error) {
	d, err := domain.ParseDate(strings.TrimSpace(value))
	if err != nil {
		return domain.Date{}, &domain.ValidationError{Field: field, Message: "invalid date"}
	}
	if d.After(domain.Today()) {
		return domain.Date{}, &domain.ValidationError{Field: field, Message: "cannot be in the future"}
	}
	return d, nil
}

// parseEndDate parses and validates an end date against the effective start.
func parseEndDate(field, value string, start domain.Date) (*domain.Date, error) {
	d, err := domain.ParseDate(strings.TrimSpace(value))
	if err != nil {
		return nil, &domain.ValidationError{Field: field, Message: "invalid date"}
	}
	if d.Before(start) {
		return nil, &domain.ValidationError{Field: field, Message: "cannot be before start date"}
	}
	return &d, nil
}

// strEq compares optional strings by value.
func strEq(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// dateEq compares optional dates by calendar day.
func dateEq(a, b *domain.Date) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(b.Time)
}
