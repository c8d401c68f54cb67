package core

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by every indicator package.
var (
	// ErrInvalidParameter covers non-positive periods and multipliers,
	// malformed parameter maps and unknown indicator identifiers.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrInvalidSeries is returned when bars violate the Series invariants.
	ErrInvalidSeries = errors.New("invalid series")
)

// periodError formats a period validation failure.
func periodError(name string, period int) error {
	return fmt.Errorf("%w: %s must be at least 1, got %d", ErrInvalidParameter, name, period)
}

// RequirePeriod returns an ErrInvalidParameter error when period < 1.
func RequirePeriod(name string, period int) error {
	if period < 1 {
		return periodError(name, period)
	}
	return nil
}

// RequirePositive returns an ErrInvalidParameter error when v is not > 0.
func RequirePositive(name string, v float64) error {
	if !(v > 0) {
		return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalidParameter, name, v)
	}
	return nil
}
