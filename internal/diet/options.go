package diet

import "github.com/fdg312/diet-hub/internal/lp"

const (
	DefaultTolerance   = 1e-6
	DefaultZeroEpsilon = 1e-9
)

type Logger interface {
	Printf(format string, v ...any)
}

type Option func(*Solver)

// WithEngine selects the LP engine. The default is gonum's simplex; the tableau engine serves as a cross-check.
func WithEngine(e lp.Engine) Option {
	return func(s *Solver) {
		if e != nil {
			s.engine = e
		}
	}
}

// WithTolerance sets the feasibility tolerance used to check a returned
// optimum, relative to max(1, |rhs|).
func WithTolerance(tol float64) Option {
	return func(s *Solver) {
		if tol > 0 {
			s.tolerance = tol
		}
	}
}

// WithZeroEpsilon sets the magnitude under which quantities are reported as 0.
func WithZeroEpsilon(eps float64) Option {
	return func(s *Solver) {
		if eps >= 0 {
			s.zeroEpsilon = eps
		}
	}
}

func WithLogger(l Logger) Option {
	return func(s *Solver) {
		s.logger = l
	}
}
