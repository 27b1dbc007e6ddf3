package solver

import (
	"go.viam.com/camera/utils"
)

const (
	// rootTolerance is the absolute residual below which a polynomial
	// root is accepted.
	rootTolerance = 1e-10
	// scanSteps is the number of samples in the coarse sign-change scan.
	scanSteps = 64
	// scanSpan scales the caller's guess into the upper end of the scan
	// window when Newton fails to produce a bracket on its own.
	scanSpan = 4.0
)

// polyResidual adapts a coefficient slice (constant term first) to a
// ResidualFunc over the polynomial and its derivative.
func polyResidual(coeffs []float64) ResidualFunc {
	derivative := make([]float64, 0, len(coeffs))
	for i := 1; i < len(coeffs); i++ {
		derivative = append(derivative, float64(i)*coeffs[i])
	}
	return func(x float64) (float64, float64) {
		return utils.EvalPolyHorner(coeffs, x), utils.EvalPolyHorner(derivative, x)
	}
}

// bisect narrows a sign-change bracket [lo, hi] of the polynomial down
// to a root over a fixed number of halvings.
func bisect(coeffs []float64, lo, hi float64, iterations int) float64 {
	pLo := utils.EvalPolyHorner(coeffs, lo)
	for i := 0; i < iterations; i++ {
		mid := 0.5 * (lo + hi)
		pMid := utils.EvalPolyHorner(coeffs, mid)
		if pMid == 0 {
			return mid
		}
		if (pLo < 0) == (pMid < 0) {
			lo, pLo = mid, pMid
		} else {
			hi = mid
		}
	}
	return 0.5 * (lo + hi)
}

// MinimalPositiveRoot finds the smallest root of the polynomial with the
// given coefficients (constant term first) that is strictly greater than
// lower, searching a window scaled from guess. It returns notFound when
// no such root exists within the window. The total cost is bounded by
// the fixed scan resolution and the iteration budget.
//
// The minimality guarantee comes from a coarse sign-change scan below
// any Newton-found root: a bracket found there is refined by bisection
// and wins over the Newton result.
func MinimalPositiveRoot(coeffs []float64, lower, guess, notFound float64, iterations int) float64 {
	fn := polyResidual(coeffs)

	root, converged := NewtonRaphson(fn, guess, rootTolerance, iterations)
	haveRoot := converged && root > lower

	span := guess - lower
	if span <= 0 {
		span = 1
	}
	scanHigh := lower + scanSpan*span
	if haveRoot && root < scanHigh {
		scanHigh = root
	}

	// Look for the first sign change above lower; it brackets the
	// minimal root even when Newton jumped past it.
	pPrev := utils.EvalPolyHorner(coeffs, lower)
	step := (scanHigh - lower) / scanSteps
	for i := 1; i <= scanSteps; i++ {
		x := lower + float64(i)*step
		p := utils.EvalPolyHorner(coeffs, x)
		if (p < 0) != (pPrev < 0) || p == 0 {
			bracketed := bisect(coeffs, x-step, x, iterations)
			if !haveRoot || bracketed < root {
				return bracketed
			}
			break
		}
		pPrev = p
	}

	if haveRoot {
		return root
	}
	return notFound
}
