package diet

import (
	"errors"
	"fmt"

	"github.com/fdg312/diet-hub/internal/catalog"
)

var (
	ErrInvalidBound       = errors.New("invalid bound")
	ErrUnknownFood        = errors.New("unknown food")
	ErrUnknownNutrient    = errors.New("unknown nutrient")
	ErrInvalidRequirement = errors.New("invalid requirement")
)

// InvalidBoundError reports a negative or non-finite bound.
type InvalidBoundError struct {
	Food  string
	Value float64
}

func (e *InvalidBoundError) Error() string {
	return fmt.Sprintf("bound for %q must be a finite number >= 0, got %v", e.Food, e.Value)
}

func (e *InvalidBoundError) Is(target error) bool {
	return target == ErrInvalidBound
}

// UnknownFoodError reports a bound or exclusion naming a food outside the catalog.
type UnknownFoodError struct {
	Food string
}

func (e *UnknownFoodError) Error() string {
	return fmt.Sprintf("food %q is not in the catalog", e.Food)
}

func (e *UnknownFoodError) Is(target error) bool {
	return target == ErrUnknownFood
}

type UnknownNutrientError struct {
	Nutrient catalog.Nutrient
}

func (e *UnknownNutrientError) Error() string {
	return fmt.Sprintf("nutrient %q is not listed by any food", e.Nutrient)
}

func (e *UnknownNutrientError) Is(target error) bool {
	return target == ErrUnknownNutrient
}

type InvalidRequirementError struct {
	Nutrient catalog.Nutrient
	Value    float64
}

func (e *InvalidRequirementError) Error() string {
	return fmt.Sprintf("requirement for %q must be a finite number >= 0, got %v", e.Nutrient, e.Value)
}

func (e *InvalidRequirementError) Is(target error) bool {
	return target == ErrInvalidRequirement
}
