package lp

// Status is the outcome of a solve.
type Status int

const (
	NotSolved Status = iota
	Optimal
	Infeasible
	Unbounded
	Error
)

func (s Status) String() string {
	switch s {
	case NotSolved:
		return "not_solved"
	case Optimal:
		return "optimal"
	case Infeasible:
		return "infeasible"
	case Unbounded:
		return "unbounded"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// Solution holds column and row values for an Optimal status. For other
// statuses only Status, Iterations, Engine and Message are set.
type Solution struct {
	Status     Status
	ColValues  []float64
	RowValues  []float64
	Objective  float64
	Iterations int
	Engine     string
	Message    string
}

func (s *Solution) IsOptimal() bool {
	return s.Status == Optimal
}

func (s *Solution) IsInfeasible() bool {
	return s.Status == Infeasible
}

func (s *Solution) IsUnbounded() bool {
	return s.Status == Unbounded
}

// Value returns the value of column i, 0 when the solution carries none.
func (s *Solution) Value(i int) float64 {
	if i < 0 || i >= len(s.ColValues) {
		return 0
	}
	return s.ColValues[i]
}
