package lp

import (
	"context"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var inf = math.Inf(1)

type lpCase struct {
	name      string
	model     func() *Model
	status    Status
	objective float64
	cols      []float64 // nil when the optimum is not unique
}

func lpCases() []lpCase {
	return []lpCase{
		{
			name: "two covering rows",
			model: func() *Model {
				m := &Model{ColCosts: []float64{1, 1}}
				m.AddGeRow([]float64{1, 2}, 4)
				m.AddGeRow([]float64{3, 1}, 6)
				return m
			},
			status:    Optimal,
			objective: 2.8,
			cols:      []float64{1.6, 1.2},
		},
		{
			name: "equality with shifted bounds",
			model: func() *Model {
				m := &Model{
					ColCosts: []float64{2, 3},
					ColLower: []float64{2, 1},
					ColUpper: []float64{6, inf},
				}
				m.AddEqRow([]float64{1, 1}, 10)
				return m
			},
			status:    Optimal,
			objective: 24,
			cols:      []float64{6, 4},
		},
		{
			name: "maximize under a cap",
			model: func() *Model {
				m := &Model{ColCosts: []float64{-1, -1}, ColUpper: []float64{3, inf}}
				m.AddLeRow([]float64{1, 1}, 5)
				return m
			},
			status:    Optimal,
			objective: -5,
		},
		{
			name: "ranged row with offset",
			model: func() *Model {
				m := &Model{Offset: 1.5, ColCosts: []float64{-1, 0}}
				m.AddDenseRow(2, []float64{1, 1}, 4)
				return m
			},
			status:    Optimal,
			objective: -2.5,
			cols:      []float64{4, 0},
		},
		{
			name: "negative right-hand side",
			model: func() *Model {
				m := &Model{ColCosts: []float64{-1}}
				m.AddGeRow([]float64{-1}, -3)
				return m
			},
			status:    Optimal,
			objective: -3,
			cols:      []float64{3},
		},
		{
			name: "bounds only",
			model: func() *Model {
				return &Model{ColCosts: []float64{1, -1}, ColLower: []float64{1, 1}, ColUpper: []float64{5, 5}}
			},
			status:    Optimal,
			objective: -4,
			cols:      []float64{1, 5},
		},
		{
			name: "no rows",
			model: func() *Model {
				return &Model{ColCosts: []float64{2}, ColLower: []float64{1.5}}
			},
			status:    Optimal,
			objective: 3,
			cols:      []float64{1.5},
		},
		{
			name: "degenerate cycling example",
			model: func() *Model {
				m := &Model{ColCosts: []float64{-0.75, 20, -0.5, 6}}
				m.AddLeRow([]float64{0.25, -8, -1, 9}, 0)
				m.AddLeRow([]float64{0.5, -12, -0.5, 3}, 0)
				m.AddLeRow([]float64{0, 0, 1, 0}, 1)
				return m
			},
			status:    Optimal,
			objective: -1.25,
		},
		{
			name: "infeasible cover",
			model: func() *Model {
				m := &Model{ColCosts: []float64{1, 1}, ColUpper: []float64{2, 2}}
				m.AddGeRow([]float64{1, 1}, 10)
				return m
			},
			status: Infeasible,
		},
		{
			name: "unbounded ray",
			model: func() *Model {
				m := &Model{ColCosts: []float64{-1, 0}}
				m.AddGeRow([]float64{1, -1}, 0)
				return m
			},
			status: Unbounded,
		},
		{
			name: "unbounded without rows",
			model: func() *Model {
				return &Model{ColCosts: []float64{-1}}
			},
			status: Unbounded,
		},
	}
}

func TestEngines(t *testing.T) {
	for _, engine := range []Engine{Tableau{}, Gonum{}} {
		for _, tc := range lpCases() {
			t.Run(engine.Name()+"/"+tc.name, func(t *testing.T) {
				m := tc.model()
				sol, err := engine.Solve(context.Background(), m)
				require.NoError(t, err)
				require.Equal(t, tc.status, sol.Status, sol.Message)
				assert.Equal(t, engine.Name(), sol.Engine)

				if tc.status != Optimal {
					assert.Nil(t, sol.ColValues)
					return
				}
				assert.InDelta(t, tc.objective, sol.Objective, 1e-9)
				if tc.cols != nil {
					assert.InDeltaSlice(t, tc.cols, sol.ColValues, 1e-9)
				}
				assertFeasible(t, m, sol)
			})
		}
	}
}

func assertFeasible(t *testing.T, m *Model, sol *Solution) {
	t.Helper()
	const tol = 1e-7

	require.Len(t, sol.ColValues, m.NumVars())
	require.Len(t, sol.RowValues, m.NumConstraints())
	for j, x := range sol.ColValues {
		assert.GreaterOrEqual(t, x, m.colLower(j)-tol, "column %d", j)
		assert.LessOrEqual(t, x, m.colUpper(j)+tol, "column %d", j)
	}
	for i, v := range sol.RowValues {
		assert.GreaterOrEqual(t, v, m.RowLower[i]-tol, "row %d", i)
		assert.LessOrEqual(t, v, m.RowUpper[i]+tol, "row %d", i)
	}
}

func TestTableauIterationLimit(t *testing.T) {
	m := lpCases()[0].model()

	sol, err := Tableau{MaxIterations: 1}.Solve(context.Background(), m)
	require.NoError(t, err)
	assert.Equal(t, Error, sol.Status)
	assert.Contains(t, sol.Message, "iteration limit")
	assert.Nil(t, sol.ColValues)
}

func TestTableauHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Tableau{}.Solve(ctx, lpCases()[0].model())
	assert.ErrorIs(t, err, context.Canceled)

	_, err = Gonum{}.Solve(ctx, lpCases()[0].model())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		model *Model
		want  error
	}{
		{name: "no columns", model: &Model{}, want: ErrShape},
		{name: "too many bounds", model: &Model{ColCosts: []float64{1}, ColUpper: []float64{1, 2}}, want: ErrShape},
		{name: "entry outside matrix", model: &Model{
			ColCosts: []float64{1}, RowLower: []float64{0}, RowUpper: []float64{1},
			ConstMatrix: []Nonzero{{Row: 0, Col: 3, Value: 1}},
		}, want: ErrShape},
		{name: "row bound lengths", model: &Model{ColCosts: []float64{1}, RowLower: []float64{0}}, want: ErrShape},
		{name: "nan cost", model: &Model{ColCosts: []float64{math.NaN()}}, want: ErrNaN},
		{name: "infinite coefficient", model: &Model{
			ColCosts: []float64{1}, RowLower: []float64{0}, RowUpper: []float64{1},
			ConstMatrix: []Nonzero{{Row: 0, Col: 0, Value: inf}},
		}, want: ErrNaN},
		{name: "free column", model: &Model{ColCosts: []float64{1}, ColLower: []float64{math.Inf(-1)}}, want: ErrFreeVariable},
		{name: "crossed column bounds", model: &Model{ColCosts: []float64{1}, ColLower: []float64{2}, ColUpper: []float64{1}}, want: ErrInvalidBound},
		{name: "crossed row bounds", model: &Model{ColCosts: []float64{1}, RowLower: []float64{3}, RowUpper: []float64{1}}, want: ErrInvalidBound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.model.Validate(), tt.want)

			_, err := Tableau{}.Solve(context.Background(), tt.model)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestBuilders(t *testing.T) {
	m := &Model{}
	x := m.AddColumn("x", 1, 0, 3)
	y := m.AddColumn("y", 2, 0, inf)
	require.Equal(t, 0, x)
	require.Equal(t, 1, y)

	r0 := m.AddGeRow([]float64{1, 0}, 1)
	r1, err := m.AddSparseRow(0, []int{y}, []float64{2}, 8)
	require.NoError(t, err)
	m.SetRowName(r1, "cap")

	_, err = m.AddSparseRow(0, []int{x, y}, []float64{1}, 1)
	assert.ErrorIs(t, err, ErrShape)

	assert.Equal(t, 2, m.NumVars())
	assert.Equal(t, 2, m.NumConstraints())
	assert.Equal(t, 0, r0)
	assert.Equal(t, []string{"x", "y"}, m.ColNames)
	assert.Equal(t, []string{"", "cap"}, m.RowNames)
	assert.Len(t, m.ConstMatrix, 2)
	require.NoError(t, m.Validate())
}

func TestNewEngine(t *testing.T) {
	for name, want := range map[string]string{"": EngineGonum, "gonum": EngineGonum, " TABLEAU ": EngineTableau} {
		e, err := NewEngine(name)
		require.NoError(t, err)
		assert.Equal(t, want, e.Name())
	}

	_, err := NewEngine("cplex")
	assert.ErrorIs(t, err, ErrUnknownEngine)
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "optimal", Optimal.String())
	assert.Equal(t, "infeasible", Infeasible.String())
	assert.Equal(t, "unbounded", Unbounded.String())
	assert.Equal(t, "error", Error.String())
	assert.Equal(t, "not_solved", NotSolved.String())
}

// Random covering problems with positive costs and finite bounds, feasible
// by construction.
func TestEnginesAgreeOnRandomCoveringProblems(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for k := 0; k < 200; k++ {
		n := 1 + rng.Intn(8)
		rows := 1 + rng.Intn(4)
		m := &Model{}
		upper := make([]float64, n)
		for j := 0; j < n; j++ {
			upper[j] = float64(1 + rng.Intn(6))
			m.AddColumn("", 0.1+rng.Float64()*3, 0, upper[j])
		}
		for i := 0; i < rows; i++ {
			coeffs := make([]float64, n)
			var full float64
			for j := range coeffs {
				coeffs[j] = rng.Float64() * 50
				full += coeffs[j] * upper[j]
			}
			m.AddGeRow(coeffs, full*rng.Float64())
		}

		// every bounded column and every >= row gets its own slack column,
		// so the standard form never has more rows than columns
		sf := toStandard(m)
		require.LessOrEqual(t, sf.rows(), sf.cols(), "instance %d", k)

		ts, err := Tableau{}.Solve(context.Background(), m)
		require.NoError(t, err)
		require.Equal(t, Optimal, ts.Status, "instance %d: %s", k, ts.Message)
		assertFeasible(t, m, ts)

		gs, err := Gonum{}.Solve(context.Background(), m)
		require.NoError(t, err)
		require.Equal(t, Optimal, gs.Status, "instance %d: %s", k, gs.Message)
		assertFeasible(t, m, gs)
		assert.InDelta(t, ts.Objective, gs.Objective, 1e-6*math.Max(1, math.Abs(ts.Objective)), "instance %d", k)
	}
}
