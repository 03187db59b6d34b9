package lp

import (
	"context"
	"fmt"
	"math"
)

const (
	defaultPivotTol    = 1e-9
	phaseOneTol        = 1e-9
	ratioTieTol        = 1e-12
	baseIterationLimit = 1000
)

// Tableau is a dense two-phase simplex using Bland's rule for both the
// entering and the leaving variable, so it never cycles.
type Tableau struct {
	// Tol is the pivot and reduced-cost tolerance. Zero means 1e-9.
	Tol float64
	// MaxIterations caps the number of pivots over both phases. Zero picks a
	// limit from the problem size.
	MaxIterations int
}

func (Tableau) Name() string {
	return EngineTableau
}

// Solve returns an error only for an invalid model or a done ctx.
func (e Tableau) Solve(ctx context.Context, m *Model) (*Solution, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	sf := toStandard(m)
	sol := &Solution{Engine: e.Name()}

	if sf.rows() == 0 {
		status, y := sf.trivial()
		sol.Status = status
		if status == Optimal {
			sf.fill(m, sol, y)
		}
		return sol, nil
	}

	tol := e.Tol
	if tol <= 0 {
		tol = defaultPivotTol
	}
	limit := e.MaxIterations
	if limit <= 0 {
		limit = baseIterationLimit + 50*(sf.rows()+sf.cols())
	}

	t := newTableau(sf, tol, limit)
	status, err := t.solve(ctx)
	if err != nil {
		return nil, err
	}

	sol.Status = status
	sol.Iterations = t.iterations
	sol.Message = t.message
	if status == Optimal {
		sf.fill(m, sol, t.primal())
	}
	return sol, nil
}

type runResult int

const (
	runOptimal runResult = iota
	runUnbounded
	runLimit
)

type tableau struct {
	rows  [][]float64 // width w+1, rhs last
	obj   []float64
	basis []int
	c     []float64
	n     int // structural + slack columns
	w     int // n + one artificial per row

	tol        float64
	limit      int
	iterations int
	message    string
}

func newTableau(sf *standardForm, tol float64, limit int) *tableau {
	m, n := sf.rows(), sf.cols()
	w := n + m

	t := &tableau{
		rows:  make([][]float64, m),
		obj:   make([]float64, w+1),
		basis: make([]int, m),
		c:     sf.c,
		n:     n,
		w:     w,
		tol:   tol,
		limit: limit,
	}
	for i := range t.rows {
		row := make([]float64, w+1)
		for j := 0; j < n; j++ {
			row[j] = sf.a.At(i, j)
		}
		row[n+i] = 1
		row[w] = sf.b[i]
		t.rows[i] = row
		t.basis[i] = n + i
	}
	return t
}

func (t *tableau) solve(ctx context.Context) (Status, error) {
	// Phase I: minimize the sum of artificials.
	for _, row := range t.rows {
		for j := 0; j < t.n; j++ {
			t.obj[j] -= row[j]
		}
		t.obj[t.w] -= row[t.w]
	}

	res, err := t.run(ctx, t.w)
	if err != nil {
		return Error, err
	}
	switch res {
	case runLimit:
		t.message = fmt.Sprintf("iteration limit %d reached in phase I", t.limit)
		return Error, nil
	case runUnbounded:
		// The phase I objective is bounded below by zero.
		t.message = "phase I reported unbounded"
		return Error, nil
	}

	scale := 1.0
	for _, row := range t.rows {
		scale = math.Max(scale, math.Abs(row[t.w]))
	}
	if -t.obj[t.w] > phaseOneTol*scale {
		return Infeasible, nil
	}

	t.dropArtificials()

	// Phase II: original costs, artificials may no longer enter.
	for j := range t.obj {
		t.obj[j] = 0
	}
	copy(t.obj, t.c)
	for i, row := range t.rows {
		if b := t.basis[i]; b < t.n && t.c[b] != 0 {
			axpy(t.obj, -t.c[b], row)
		}
	}

	res, err = t.run(ctx, t.n)
	if err != nil {
		return Error, err
	}
	switch res {
	case runLimit:
		t.message = fmt.Sprintf("iteration limit %d reached in phase II", t.limit)
		return Error, nil
	case runUnbounded:
		return Unbounded, nil
	}
	return Optimal, nil
}

// run pivots until no column below allowed has a negative reduced cost.
func (t *tableau) run(ctx context.Context, allowed int) (runResult, error) {
	for {
		if err := ctx.Err(); err != nil {
			return runOptimal, err
		}

		enter := -1
		for j := 0; j < allowed; j++ {
			if t.obj[j] < -t.tol {
				enter = j
				break
			}
		}
		if enter < 0 {
			return runOptimal, nil
		}

		leave := -1
		best := math.Inf(1)
		for i, row := range t.rows {
			if row[enter] <= t.tol {
				continue
			}
			q := row[t.w] / row[enter]
			if leave < 0 || q < best-ratioTieTol || (math.Abs(q-best) <= ratioTieTol && t.basis[i] < t.basis[leave]) {
				best = q
				leave = i
			}
		}
		if leave < 0 {
			return runUnbounded, nil
		}

		if t.iterations >= t.limit {
			return runLimit, nil
		}
		t.pivot(leave, enter)
	}
}

func (t *tableau) pivot(r, e int) {
	pr := t.rows[r]
	p := pr[e]
	for j := range pr {
		pr[j] /= p
	}
	for i, row := range t.rows {
		if i == r || row[e] == 0 {
			continue
		}
		axpy(row, -row[e], pr)
	}
	if t.obj[e] != 0 {
		axpy(t.obj, -t.obj[e], pr)
	}
	t.basis[r] = e
	t.iterations++
}

// dropArtificials pivots zero-level artificials out of the basis where a
// real column can replace them. Rows left with an artificial are redundant.
func (t *tableau) dropArtificials() {
	for i, row := range t.rows {
		if t.basis[i] < t.n {
			continue
		}
		for j := 0; j < t.n; j++ {
			if math.Abs(row[j]) > t.tol {
				t.pivot(i, j)
				break
			}
		}
	}
}

func (t *tableau) primal() []float64 {
	y := make([]float64, t.n)
	for i, b := range t.basis {
		if b < t.n {
			y[b] = t.rows[i][t.w]
		}
	}
	return y
}

// axpy computes dst += alpha*x.
func axpy(dst []float64, alpha float64, x []float64) {
	for j, v := range x {
		dst[j] += alpha * v
	}
}
