package lp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gonum.org/v1/gonum/mat"
	gonumlp "gonum.org/v1/gonum/optimize/convex/lp"
)

const defaultGonumTol = 1e-10

// Gonum solves the standard form with gonum's simplex.
type Gonum struct {
	// Tol is the reduced-cost tolerance passed to gonum. Zero means 1e-10.
	Tol float64
}

func (Gonum) Name() string {
	return EngineGonum
}

func (e Gonum) Solve(ctx context.Context, m *Model) (*Solution, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sf := toStandard(m)
	sol := &Solution{Engine: e.Name()}

	a, b, c, keep, status := compact(sf)
	if status != NotSolved {
		sol.Status = status
		if status == Optimal {
			sf.fill(m, sol, make([]float64, sf.cols()))
		}
		return sol, nil
	}

	rows, cols := a.Dims()
	if rows > cols {
		sol.Status = Error
		sol.Message = fmt.Sprintf("gonum simplex needs at least as many columns as rows, got %dx%d", rows, cols)
		return sol, nil
	}

	tol := e.Tol
	if tol <= 0 {
		tol = defaultGonumTol
	}

	x, err := runGonum(c, a, b, tol)
	switch {
	case err == nil:
		y := make([]float64, sf.cols())
		for k, j := range keep {
			y[j] = x[k]
		}
		sol.Status = Optimal
		sf.fill(m, sol, y)
	case isGonumErr(err, gonumlp.ErrInfeasible):
		sol.Status = Infeasible
	case isGonumErr(err, gonumlp.ErrUnbounded):
		sol.Status = Unbounded
	default:
		sol.Status = Error
		sol.Message = err.Error()
	}
	return sol, nil
}

// runGonum turns a gonum panic into an error.
func runGonum(c []float64, a mat.Matrix, b []float64, tol float64) (x []float64, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("gonum simplex panicked: %v", r)
		}
	}()
	_, x, err = gonumlp.Simplex(c, a, b, tol, nil)
	return x, err
}

// Phase I failures come back formatted with %s, so match on the text too.
func isGonumErr(err, target error) bool {
	return errors.Is(err, target) || strings.Contains(err.Error(), target.Error())
}

// compact removes zero columns and zero rows, which gonum rejects. When that
// already decides the problem, the returned status is not NotSolved.
func compact(sf *standardForm) (*mat.Dense, []float64, []float64, []int, Status) {
	if sf.rows() == 0 {
		status, _ := sf.trivial()
		return nil, nil, nil, nil, status
	}

	rows, cols := sf.a.Dims()

	var keepRows []int
	for i := 0; i < rows; i++ {
		zero := true
		for j := 0; j < cols; j++ {
			if sf.a.At(i, j) != 0 {
				zero = false
				break
			}
		}
		switch {
		case !zero:
			keepRows = append(keepRows, i)
		case sf.b[i] != 0:
			return nil, nil, nil, nil, Infeasible
		}
	}

	var keepCols []int
	for j := 0; j < cols; j++ {
		zero := true
		for _, i := range keepRows {
			if sf.a.At(i, j) != 0 {
				zero = false
				break
			}
		}
		switch {
		case !zero:
			keepCols = append(keepCols, j)
		case sf.c[j] < 0:
			return nil, nil, nil, nil, Unbounded
		}
	}

	if len(keepRows) == 0 || len(keepCols) == 0 {
		return nil, nil, nil, nil, Optimal
	}

	a := mat.NewDense(len(keepRows), len(keepCols), nil)
	b := make([]float64, len(keepRows))
	c := make([]float64, len(keepCols))
	for r, i := range keepRows {
		b[r] = sf.b[i]
		for k, j := range keepCols {
			a.Set(r, k, sf.a.At(i, j))
		}
	}
	for k, j := range keepCols {
		c[k] = sf.c[j]
	}
	return a, b, c, keepCols, NotSolved
}
