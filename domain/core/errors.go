package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Input shape errors
	ErrShape = errors.New("mismatched subject or replicate counts")

	// Validation errors
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrInsufficientData = errors.New("insufficient data for analysis")

	// Degenerate input errors
	ErrDegenerateFit         = errors.New("degenerate regression fit")
	ErrDegenerateCorrelation = errors.New("degenerate correlation input")
)

// Error constructors with context

func NewShapeError(detail string) error {
	return fmt.Errorf("%w: %s", ErrShape, detail)
}

func NewInvalidParameterError(name string, reason string) error {
	return fmt.Errorf("%w: %s %s", ErrInvalidParameter, name, reason)
}

func NewInsufficientDataError(detail string) error {
	return fmt.Errorf("%w: %s", ErrInsufficientData, detail)
}

func NewDegenerateFitError(detail string) error {
	return fmt.Errorf("%w: %s", ErrDegenerateFit, detail)
}

func NewDegenerateCorrelationError(detail string) error {
	return fmt.Errorf("%w: %s", ErrDegenerateCorrelation, detail)
}

// Error checking helpers

func IsShapeError(err error) bool {
	return errors.Is(err, ErrShape)
}

func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidParameter) ||
		errors.Is(err, ErrInsufficientData)
}

func IsDegenerateError(err error) bool {
	return errors.Is(err, ErrDegenerateFit) ||
		errors.Is(err, ErrDegenerateCorrelation)
}
