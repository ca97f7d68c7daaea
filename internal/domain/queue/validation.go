package queue

import (
	"slices"
	"strings"
)

const (
	MinAge = 1
	MaxAge = 120
)

// ValidateSubmitInput checks a submission against the configured categories.
func ValidateSubmitInput(req SubmitRequest, categories []string) error {
	if strings.TrimSpace(req.Name) == "" {
		return ErrEmptyName
	}
	if req.Age < MinAge || req.Age > MaxAge {
		return ErrAgeOutOfRange
	}
	if !slices.Contains(categories, req.Category) {
		return ErrUnknownCategory
	}
	return nil
}
