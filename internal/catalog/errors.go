package catalog

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyCatalog  = errors.New("catalog is empty")
	ErrDuplicateFood = errors.New("duplicate food name")
	ErrInvalidItem   = errors.New("invalid food item")
	ErrFoodNotFound  = errors.New("food not found")
	ErrUnknownFormat = errors.New("unknown catalog format")
)

// NotFoundError is returned by Get for a name outside the catalog.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("food %q not found in catalog", e.Name)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrFoodNotFound
}
