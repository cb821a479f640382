package services

import (
	"errors"

	apperrors "github.com/Anilrajput6441/Gema-Assignment/internal/errors"
	"github.com/Anilrajput6441/Gema-Assignment/internal/scoring"
)

// ===== COMMON SERVICE ERRORS =====

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrAssessmentNotFound = errors.New("assessment not found")
)

// Use shared validation errors from errors package
type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors

// NewValidationError creates a new validation error using the shared type
func NewValidationError(field, message string, value interface{}) *ValidationError {
	return apperrors.NewValidationError(field, message, value)
}

// ===== ERROR HELPERS =====

// IsNotFound checks if error represents a "not found" condition
func IsNotFound(err error) bool {
	return errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrAssessmentNotFound)
}

// IsValidation checks if error represents a validation failure
func IsValidation(err error) bool {
	var ve apperrors.ValidationErrors
	return errors.As(err, &ve)
}

func IsUnknownExamType(err error) bool {
	return errors.Is(err, scoring.ErrUnknownExamType)
}

func IsDegenerateRange(err error) bool {
	var dre *scoring.DegenerateRangeError
	return errors.As(err, &dre)
}
