package lp

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// standardForm is the model rewritten as
//
//	minimize c·y  subject to  A·y = b, y ≥ 0, b ≥ 0
//
// where y[:n] are the model columns shifted by their lower bound and the
// remaining entries are slack and surplus variables.
type standardForm struct {
	a     *mat.Dense // nil when there are no rows
	b     []float64
	c     []float64
	n     int
	shift []float64
}

func (sf *standardForm) rows() int {
	return len(sf.b)
}

func (sf *standardForm) cols() int {
	return len(sf.c)
}

type stdRow struct {
	coeffs map[int]float64
	slack  float64 // +1 for ≤, -1 for ≥, 0 for =
	rhs    float64
}

// toStandard expects a validated model.
func toStandard(m *Model) *standardForm {
	n := m.NumVars()
	shift := make([]float64, n)
	for j := range shift {
		shift[j] = m.colLower(j)
	}

	var rows []stdRow

	// x_j - l_j + t_j = u_j - l_j for every finite upper bound.
	for j := 0; j < n; j++ {
		if hi := m.colUpper(j); !math.IsInf(hi, 1) {
			rows = append(rows, stdRow{coeffs: map[int]float64{j: 1}, slack: 1, rhs: hi - shift[j]})
		}
	}

	coeffs := make([]map[int]float64, m.NumConstraints())
	for i := range coeffs {
		coeffs[i] = make(map[int]float64)
	}
	for _, nz := range m.ConstMatrix {
		coeffs[nz.Row][nz.Col] += nz.Value
	}

	for i, row := range coeffs {
		var offset float64
		for j, v := range row {
			offset += v * shift[j]
		}
		lo, hi := m.RowLower[i]-offset, m.RowUpper[i]-offset

		switch {
		case lo == hi:
			rows = append(rows, stdRow{coeffs: row, rhs: lo})
		default:
			if !math.IsInf(lo, -1) {
				rows = append(rows, stdRow{coeffs: row, slack: -1, rhs: lo})
			}
			if !math.IsInf(hi, 1) {
				rows = append(rows, stdRow{coeffs: row, slack: 1, rhs: hi})
			}
		}
	}

	slacks := 0
	for _, r := range rows {
		if r.slack != 0 {
			slacks++
		}
	}

	sf := &standardForm{
		b:     make([]float64, len(rows)),
		c:     make([]float64, n+slacks),
		n:     n,
		shift: shift,
	}
	copy(sf.c, m.ColCosts)
	if len(rows) == 0 {
		return sf
	}

	sf.a = mat.NewDense(len(rows), n+slacks, nil)
	s := n
	for i, r := range rows {
		sign := 1.0
		if r.rhs < 0 {
			sign = -1
		}
		for j, v := range r.coeffs {
			sf.a.Set(i, j, sign*v)
		}
		if r.slack != 0 {
			sf.a.Set(i, s, sign*r.slack)
			s++
		}
		sf.b[i] = sign * r.rhs
	}

	return sf
}

// trivial handles a standard form without rows: every variable sits at zero
// unless a negative cost makes the problem unbounded.
func (sf *standardForm) trivial() (Status, []float64) {
	for _, c := range sf.c {
		if c < 0 {
			return Unbounded, nil
		}
	}
	return Optimal, make([]float64, sf.cols())
}

// fill maps a standard-form point back onto the model columns.
func (sf *standardForm) fill(m *Model, sol *Solution, y []float64) {
	x := make([]float64, sf.n)
	obj := m.Offset
	for j := range x {
		x[j] = y[j] + sf.shift[j]
		obj += m.ColCosts[j] * x[j]
	}
	sol.ColValues = x
	sol.RowValues = m.rowActivity(x)
	sol.Objective = obj
}
