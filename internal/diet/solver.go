// Package diet builds and solves the least-cost diet linear program over a
// food catalog.
package diet

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/fdg312/diet-hub/internal/catalog"
	"github.com/fdg312/diet-hub/internal/lp"
)

// Solver is immutable after NewSolver and safe for concurrent use.
type Solver struct {
	catalog     *catalog.Catalog
	engine      lp.Engine
	tolerance   float64
	zeroEpsilon float64
	logger      Logger
}

func NewSolver(cat *catalog.Catalog, opts ...Option) *Solver {
	s := &Solver{
		catalog:     cat,
		engine:      lp.Gonum{},
		tolerance:   DefaultTolerance,
		zeroEpsilon: DefaultZeroEpsilon,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Solver) Catalog() *catalog.Catalog {
	return s.catalog
}

func (s *Solver) EngineName() string {
	return s.engine.Name()
}

// Solve is a shortcut for NewSolver(cat).Solve.
func Solve(ctx context.Context, cat *catalog.Catalog, req Requirement, bounds Bounds) (*Solution, error) {
	return NewSolver(cat).Solve(ctx, req, bounds)
}

// Solve finds the cheapest quantities meeting req within bounds. Invalid
// input is returned as an error before any model is built; infeasible and
// unbounded problems are reported through Solution.Status.
func (s *Solver) Solve(ctx context.Context, req Requirement, bounds Bounds) (*Solution, error) {
	if s.catalog == nil || s.catalog.Len() == 0 {
		return nil, catalog.ErrEmptyCatalog
	}
	if err := s.validate(req, bounds); err != nil {
		return nil, err
	}

	items := s.catalog.All()
	nutrients := s.requiredNutrients(req)
	model := buildModel(items, nutrients, req, bounds)

	res, err := s.engine.Solve(ctx, model)
	if err != nil {
		return nil, fmt.Errorf("solve diet model: %w", err)
	}

	sol := &Solution{
		Engine:     res.Engine,
		Iterations: res.Iterations,
	}

	switch res.Status {
	case lp.Optimal:
		sol.Status = StatusOptimal
		if err := s.fill(sol, items, nutrients, req, bounds, res.ColValues); err != nil {
			*sol = Solution{
				Status:     StatusError,
				Engine:     res.Engine,
				Iterations: res.Iterations,
				Message:    err.Error(),
			}
		}
	case lp.Infeasible:
		sol.Status = StatusInfeasible
		sol.Message = "no combination of foods within the bounds meets the requirement"
	case lp.Unbounded:
		sol.Status = StatusUnbounded
		sol.Message = "the cost can decrease without limit"
	default:
		sol.Status = StatusError
		sol.Message = res.Message
		if sol.Message == "" {
			sol.Message = fmt.Sprintf("engine %s ended with status %s", res.Engine, res.Status)
		}
	}

	s.logf("INFO diet: status=%s cost=%.4f engine=%s iterations=%d foods=%d", sol.Status, sol.Cost, sol.Engine, sol.Iterations, len(sol.Allocations))
	if sol.Status == StatusError {
		s.logf("WARN diet: engine=%s message=%q", sol.Engine, sol.Message)
	}
	return sol, nil
}

func (s *Solver) validate(req Requirement, bounds Bounds) error {
	for _, name := range sortedKeys(bounds) {
		if !s.catalog.Has(name) {
			return &UnknownFoodError{Food: name}
		}
		if v := bounds[name]; !validAmount(v) {
			return &InvalidBoundError{Food: name, Value: v}
		}
	}
	for _, n := range sortedKeys(req) {
		if !s.catalog.HasNutrient(n) {
			return &UnknownNutrientError{Nutrient: n}
		}
		if v := req[n]; !validAmount(v) {
			return &InvalidRequirementError{Nutrient: n, Value: v}
		}
	}
	return nil
}

// requiredNutrients lists the nutrients in req in catalog order.
func (s *Solver) requiredNutrients(req Requirement) []catalog.Nutrient {
	var out []catalog.Nutrient
	for _, n := range s.catalog.Nutrients() {
		if _, ok := req[n]; ok {
			out = append(out, n)
		}
	}
	return out
}

// buildModel has one column per catalog item and one ≥ row per required
// nutrient. Items without a bound get an upper bound of 0.
func buildModel(items []catalog.FoodItem, nutrients []catalog.Nutrient, req Requirement, bounds Bounds) *lp.Model {
	m := &lp.Model{}
	for _, item := range items {
		m.AddColumn(item.Name, item.Price, 0, bounds[item.Name])
	}
	for _, n := range nutrients {
		coeffs := make([]float64, len(items))
		for j, item := range items {
			coeffs[j] = item.Amount(n)
		}
		row := m.AddGeRow(coeffs, req[n])
		m.SetRowName(row, string(n))
	}
	return m
}

// fill checks the engine's point against the model in float64, then rounds
// near-zero quantities, clamps into bounds and derives cost and totals.
func (s *Solver) fill(sol *Solution, items []catalog.FoodItem, nutrients []catalog.Nutrient, req Requirement, bounds Bounds, x []float64) error {
	if len(x) != len(items) {
		return fmt.Errorf("engine returned %d values for %d foods", len(x), len(items))
	}

	q := make([]float64, len(x))
	for j, v := range x {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("engine returned %v for %q", v, items[j].Name)
		}
		if math.Abs(v) < s.zeroEpsilon {
			v = 0
		}
		q[j] = v
	}

	if err := s.verify(items, nutrients, req, bounds, q); err != nil {
		return err
	}

	sol.Quantities = make(map[string]float64, len(items))
	for j, item := range items {
		v := math.Min(math.Max(q[j], 0), bounds[item.Name])
		sol.Quantities[item.Name] = v
		if v == 0 {
			continue
		}
		cost := v * item.Price
		sol.Cost += cost
		sol.Allocations = append(sol.Allocations, Allocation{Food: item.Name, Quantity: v, Cost: cost})
	}

	sol.Totals = make(map[catalog.Nutrient]float64)
	for _, n := range s.catalog.Nutrients() {
		var total float64
		for _, item := range items {
			total += sol.Quantities[item.Name] * item.Amount(n)
		}
		sol.Totals[n] = total
	}
	return nil
}

var errViolation = errors.New("engine result violates the diet constraints")

func (s *Solver) verify(items []catalog.FoodItem, nutrients []catalog.Nutrient, req Requirement, bounds Bounds, q []float64) error {
	for j, item := range items {
		bound := bounds[item.Name]
		if q[j] < -s.tolerance || q[j] > bound+s.tolerance*math.Max(1, bound) {
			return fmt.Errorf("%w: %q quantity %v outside [0, %v]", errViolation, item.Name, q[j], bound)
		}
	}
	for _, n := range nutrients {
		var total float64
		for j, item := range items {
			total += q[j] * item.Amount(n)
		}
		if total < req[n]-s.tolerance*math.Max(1, math.Abs(req[n])) {
			return fmt.Errorf("%w: %s total %v below requirement %v", errViolation, n, total, req[n])
		}
	}
	return nil
}

func (s *Solver) logf(format string, v ...any) {
	if s.logger == nil {
		return
	}
	s.logger.Printf(format, v...)
}

func validAmount(v float64) bool {
	return v >= 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

func sortedKeys[K ~string, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
