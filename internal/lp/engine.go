package lp

import (
	"context"
	"fmt"
	"strings"
)

const (
	EngineTableau = "tableau"
	EngineGonum   = "gonum"
)

// Engine solves a Model. The returned error is reserved for malformed models
// and cancellation; solve outcomes are reported through Solution.Status.
type Engine interface {
	Name() string
	Solve(ctx context.Context, m *Model) (*Solution, error)
}

// NewEngine returns the engine registered under name ("" means gonum).
func NewEngine(name string) (Engine, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", EngineGonum:
		return Gonum{}, nil
	case EngineTableau:
		return Tableau{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, name)
	}
}

// EngineNames lists the registered engines.
func EngineNames() []string {
	return []string{EngineGonum, EngineTableau}
}
