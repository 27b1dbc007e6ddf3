// Package solver provides fixed-budget scalar root finding.
//
// Every routine in this package runs a statically bounded number of
// iterations and reports success through a boolean rather than an error,
// so the cost of a call is data-independent and a non-converged solve is
// an ordinary result the caller can inspect.
package solver

import "math"

// ResidualFunc evaluates the residual of an equation and its derivative
// at x. Implementations may return (0, 0) to signal that x has left the
// valid domain; NewtonRaphson treats a zero derivative as failure to
// converge rather than dividing by it.
type ResidualFunc func(x float64) (residual, derivative float64)

// NewtonRaphson solves fn(x) = 0 starting from guess, running at most
// iterations Newton steps. It returns the last iterate and whether the
// absolute residual dropped below tol. On a false flag the returned
// value is the best estimate so far and must not be trusted.
func NewtonRaphson(fn ResidualFunc, guess, tol float64, iterations int) (float64, bool) {
	x := guess
	for i := 0; i < iterations; i++ {
		residual, derivative := fn(x)
		if derivative == 0 {
			return x, false
		}
		if math.Abs(residual) < tol {
			return x, true
		}
		x -= residual / derivative
	}
	return x, false
}
