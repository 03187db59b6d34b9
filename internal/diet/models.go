package diet

import "github.com/fdg312/diet-hub/internal/catalog"

// Requirement maps a nutrient to the minimum total the diet must reach.
type Requirement map[catalog.Nutrient]float64

// Bounds maps a food name to the most portions the diet may use. Foods
// without an entry are excluded.
type Bounds map[string]float64

type Status string

const (
	StatusOptimal    Status = "optimal"
	StatusInfeasible Status = "infeasible"
	StatusUnbounded  Status = "unbounded"
	StatusError      Status = "error"
)

// Allocation is one food the diet actually uses.
type Allocation struct {
	Food     string
	Quantity float64
	Cost     float64
}

// Solution is the result of a solve. Cost, Quantities, Allocations and
// Totals are set only when Status is StatusOptimal.
type Solution struct {
	Status      Status
	Cost        float64
	Quantities  map[string]float64
	Allocations []Allocation
	Totals      map[catalog.Nutrient]float64
	Engine      string
	Iterations  int
	Message     string
}

func (s *Solution) IsOptimal() bool {
	return s.Status == StatusOptimal
}
