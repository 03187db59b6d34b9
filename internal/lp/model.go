// Package lp models and solves small dense linear programs of the form
//
//	minimize   ColCosts·x + Offset
//	subject to RowLower ≤ A·x ≤ RowUpper
//	           ColLower ≤ x ≤ ColUpper
//
// A is given as a list of nonzero entries. Two engines are available: a
// two-phase tableau simplex and an adapter over gonum's simplex.
package lp

import (
	"fmt"
	"math"
)

// Nonzero is one entry of the constraint matrix.
type Nonzero struct {
	Row   int
	Col   int
	Value float64
}

// Model is a linear program with bounded columns and ranged rows. Missing
// ColLower entries read as 0 and missing ColUpper entries as +Inf.
type Model struct {
	Offset      float64
	ColCosts    []float64
	ColLower    []float64
	ColUpper    []float64
	RowLower    []float64
	RowUpper    []float64
	ConstMatrix []Nonzero
	ColNames    []string
	RowNames    []string
}

func (m *Model) NumVars() int {
	return len(m.ColCosts)
}

func (m *Model) NumConstraints() int {
	return len(m.RowLower)
}

// AddColumn appends a variable and returns its index.
func (m *Model) AddColumn(name string, cost, lower, upper float64) int {
	j := len(m.ColCosts)
	m.padColumns(j)
	m.ColCosts = append(m.ColCosts, cost)
	m.ColLower = append(m.ColLower, lower)
	m.ColUpper = append(m.ColUpper, upper)
	if name != "" || len(m.ColNames) > 0 {
		for len(m.ColNames) < j {
			m.ColNames = append(m.ColNames, "")
		}
		m.ColNames = append(m.ColNames, name)
	}
	return j
}

// padColumns fills implicit bounds up to n columns so they can be appended to.
func (m *Model) padColumns(n int) {
	for len(m.ColLower) < n {
		m.ColLower = append(m.ColLower, 0)
	}
	for len(m.ColUpper) < n {
		m.ColUpper = append(m.ColUpper, math.Inf(1))
	}
}

// AddDenseRow appends lower ≤ coeffs·x ≤ upper and returns the row index.
// Zero coefficients are not stored.
func (m *Model) AddDenseRow(lower float64, coeffs []float64, upper float64) int {
	i := len(m.RowLower)
	for j, v := range coeffs {
		if v != 0 {
			m.ConstMatrix = append(m.ConstMatrix, Nonzero{Row: i, Col: j, Value: v})
		}
	}
	m.RowLower = append(m.RowLower, lower)
	m.RowUpper = append(m.RowUpper, upper)
	return i
}

// AddSparseRow appends lower ≤ Σ vals[k]·x[cols[k]] ≤ upper.
func (m *Model) AddSparseRow(lower float64, cols []int, vals []float64, upper float64) (int, error) {
	if len(cols) != len(vals) {
		return 0, fmt.Errorf("%w: %d columns, %d values", ErrShape, len(cols), len(vals))
	}
	i := len(m.RowLower)
	for k, j := range cols {
		m.ConstMatrix = append(m.ConstMatrix, Nonzero{Row: i, Col: j, Value: vals[k]})
	}
	m.RowLower = append(m.RowLower, lower)
	m.RowUpper = append(m.RowUpper, upper)
	return i, nil
}

// AddGeRow appends coeffs·x ≥ lower.
func (m *Model) AddGeRow(coeffs []float64, lower float64) int {
	return m.AddDenseRow(lower, coeffs, math.Inf(1))
}

// AddLeRow appends coeffs·x ≤ upper.
func (m *Model) AddLeRow(coeffs []float64, upper float64) int {
	return m.AddDenseRow(math.Inf(-1), coeffs, upper)
}

// AddEqRow appends coeffs·x = rhs.
func (m *Model) AddEqRow(coeffs []float64, rhs float64) int {
	return m.AddDenseRow(rhs, coeffs, rhs)
}

// SetRowName names row i, growing RowNames as needed.
func (m *Model) SetRowName(i int, name string) {
	for len(m.RowNames) <= i {
		m.RowNames = append(m.RowNames, "")
	}
	m.RowNames[i] = name
}

func (m *Model) colLower(j int) float64 {
	if j < len(m.ColLower) {
		return m.ColLower[j]
	}
	return 0
}

func (m *Model) colUpper(j int) float64 {
	if j < len(m.ColUpper) {
		return m.ColUpper[j]
	}
	return math.Inf(1)
}

// Validate checks shapes and bounds. It does not decide feasibility.
func (m *Model) Validate() error {
	n := m.NumVars()
	rows := m.NumConstraints()

	if n == 0 {
		return fmt.Errorf("%w: model has no columns", ErrShape)
	}
	if len(m.ColLower) > n || len(m.ColUpper) > n {
		return fmt.Errorf("%w: %d columns but %d lower / %d upper bounds", ErrShape, n, len(m.ColLower), len(m.ColUpper))
	}
	if len(m.RowUpper) != rows {
		return fmt.Errorf("%w: %d row lower bounds but %d upper bounds", ErrShape, rows, len(m.RowUpper))
	}
	if len(m.ColNames) != 0 && len(m.ColNames) != n {
		return fmt.Errorf("%w: %d column names for %d columns", ErrShape, len(m.ColNames), n)
	}
	if len(m.RowNames) != 0 && len(m.RowNames) != rows {
		return fmt.Errorf("%w: %d row names for %d rows", ErrShape, len(m.RowNames), rows)
	}
	if !finite(m.Offset) {
		return fmt.Errorf("%w: offset=%v", ErrNaN, m.Offset)
	}

	for j := 0; j < n; j++ {
		if !finite(m.ColCosts[j]) {
			return fmt.Errorf("%w: cost of column %d is %v", ErrNaN, j, m.ColCosts[j])
		}
		lo, hi := m.colLower(j), m.colUpper(j)
		if math.IsNaN(lo) || math.IsNaN(hi) {
			return fmt.Errorf("%w: bounds of column %d", ErrNaN, j)
		}
		if math.IsInf(lo, -1) {
			return fmt.Errorf("%w: column %d", ErrFreeVariable, j)
		}
		if math.IsInf(lo, 1) || math.IsInf(hi, -1) || lo > hi {
			return fmt.Errorf("%w: column %d has [%v, %v]", ErrInvalidBound, j, lo, hi)
		}
	}

	for i := 0; i < rows; i++ {
		lo, hi := m.RowLower[i], m.RowUpper[i]
		if math.IsNaN(lo) || math.IsNaN(hi) {
			return fmt.Errorf("%w: bounds of row %d", ErrNaN, i)
		}
		if math.IsInf(lo, 1) || math.IsInf(hi, -1) || lo > hi {
			return fmt.Errorf("%w: row %d has [%v, %v]", ErrInvalidBound, i, lo, hi)
		}
	}

	for _, nz := range m.ConstMatrix {
		if nz.Row < 0 || nz.Row >= rows || nz.Col < 0 || nz.Col >= n {
			return fmt.Errorf("%w: entry (%d, %d) outside %dx%d", ErrShape, nz.Row, nz.Col, rows, n)
		}
		if !finite(nz.Value) {
			return fmt.Errorf("%w: entry (%d, %d) is %v", ErrNaN, nz.Row, nz.Col, nz.Value)
		}
	}

	return nil
}

// rowActivity returns A·x for the model rows.
func (m *Model) rowActivity(x []float64) []float64 {
	out := make([]float64, m.NumConstraints())
	for _, nz := range m.ConstMatrix {
		out[nz.Row] += nz.Value * x[nz.Col]
	}
	return out
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
