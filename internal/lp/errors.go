package lp

import "errors"

var (
	ErrShape         = errors.New("lp: inconsistent model shape")
	ErrInvalidBound  = errors.New("lp: invalid bound")
	ErrFreeVariable  = errors.New("lp: column has no finite lower bound")
	ErrNaN           = errors.New("lp: non-finite value")
	ErrUnknownEngine = errors.New("lp: unknown engine")
)
