package entities

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidArgument is wrapped by every strict validation failure
var ErrInvalidArgument = errors.New("invalid argument")

// ValidateUnits checks that a quantity is a non-negative finite number
func ValidateUnits(name string, value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return fmt.Errorf("%w: %s must be finite, got %v", ErrInvalidArgument, name, value)
	}
	if value < 0 {
		return fmt.Errorf("%w: %s cannot be negative, got %v", ErrInvalidArgument, name, value)
	}
	return nil
}

// ValidatePositive checks that a value is a strictly positive finite number
func ValidatePositive(name string, value float64) error {
	if err := ValidateUnits(name, value); err != nil {
		return err
	}
	if value == 0 {
		return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalidArgument, name, value)
	}
	return nil
}
