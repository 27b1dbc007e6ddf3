package fisheye

import (
	"math"

	"github.com/pkg/errors"

	"go.viam.com/camera/solver"
	"go.viam.com/camera/utils"
)

const (
	// DefaultUndistortTolerance is the absolute residual below which the
	// Newton inversion of the distortion polynomial is accepted.
	DefaultUndistortTolerance = 1e-6
	// DefaultNewtonIterations is the fixed iteration budget of the
	// Newton and root-finding solves. A fixed budget keeps per-point
	// cost uniform across parallel callers.
	DefaultNewtonIterations = 20
	// DefaultMaxThetaGuess seeds the monotonic-bound root search, in the
	// theta-squared variable of the derivative polynomial.
	DefaultMaxThetaGuess = 1.57
)

// RadialDistortion is the four-term odd-polynomial radial distortion of the
// Kannala-Brandt fisheye model. It maps the incidence angle theta to its
// distorted counterpart:
//
//	theta_d = theta * (1 + k1*theta² + k2*theta⁴ + k3*theta⁶ + k4*theta⁸)
type RadialDistortion struct {
	K1 float64 `json:"k1"`
	K2 float64 `json:"k2"`
	K3 float64 `json:"k3"`
	K4 float64 `json:"k4"`
}

// NewRadialDistortion takes in a slice of floats that will be passed into the struct in order.
func NewRadialDistortion(inp []float64) (*RadialDistortion, error) {
	if len(inp) > 4 {
		return nil, errors.Errorf("list of parameters too long, expected max 4, got %d", len(inp))
	}
	if len(inp) == 0 {
		return &RadialDistortion{}, nil
	}
	for i := len(inp); i < 4; i++ { // fill missing values with 0.0
		inp = append(inp, 0.0)
	}
	return &RadialDistortion{inp[0], inp[1], inp[2], inp[3]}, nil
}

// CheckValid checks if the fields for RadialDistortion have valid inputs.
func (rd *RadialDistortion) CheckValid() error {
	if rd == nil {
		return InvalidDistortionError("RadialDistortion shaped distortion_parameters not provided")
	}
	return nil
}

// ModelType returns the type of distortion model.
func (rd *RadialDistortion) ModelType() DistortionType {
	return KannalaBrandtDistortionType
}

// Parameters returns the parameters of the distortion model as a list of floats.
func (rd *RadialDistortion) Parameters() []float64 {
	if rd == nil {
		return []float64{}
	}
	return []float64{rd.K1, rd.K2, rd.K3, rd.K4}
}

// Distort maps the incidence angle theta to the distorted angle theta_d.
// The polynomial is evaluated by Horner's scheme in theta² so no high
// power of theta is formed directly.
func (rd *RadialDistortion) Distort(theta float64) float64 {
	if rd == nil {
		return theta
	}
	theta2 := utils.Square(theta)
	return theta * utils.EvalPolyHorner([]float64{1, rd.K1, rd.K2, rd.K3, rd.K4}, theta2)
}

// DistortJacobian returns d(theta_d)/d(theta), the term-by-term derivative
// of the distortion polynomial.
func (rd *RadialDistortion) DistortJacobian(theta float64) float64 {
	if rd == nil {
		return 1
	}
	theta2 := utils.Square(theta)
	return utils.EvalPolyHorner([]float64{1, 3 * rd.K1, 5 * rd.K2, 7 * rd.K3, 9 * rd.K4}, theta2)
}

// Undistort solves theta_d = Distort(theta) for theta by Newton-Raphson
// with a fixed iteration budget, seeded at theta_d. The residual goes
// degenerate once an iterate exceeds maxTheta, which halts progress into
// the non-invertible region and surfaces as converged == false. On a
// false flag the returned angle is the last iterate and must not be
// trusted.
func (rd *RadialDistortion) Undistort(thetaD, maxTheta float64) (float64, bool) {
	fn := func(theta float64) (float64, float64) {
		if theta > maxTheta {
			return 0, 0
		}
		return rd.Distort(theta) - thetaD, rd.DistortJacobian(theta)
	}
	return solver.NewtonRaphson(fn, thetaD, DefaultUndistortTolerance, DefaultNewtonIterations)
}

// MonotonicMaxTheta returns the largest angle up to which the distortion is
// strictly increasing, hence invertible: the square root of the minimal
// positive root of the derivative polynomial in x = theta². The guess is in
// that substituted variable. When the derivative has no positive root the
// distortion is monotonic everywhere and math.MaxFloat64 is returned.
func (rd *RadialDistortion) MonotonicMaxTheta(guess float64) float64 {
	if rd == nil {
		return math.MaxFloat64
	}
	coeffs := []float64{1, 3 * rd.K1, 5 * rd.K2, 7 * rd.K3, 9 * rd.K4}
	x := solver.MinimalPositiveRoot(coeffs, 0, guess, math.MaxFloat64, DefaultNewtonIterations)
	if x == math.MaxFloat64 {
		return math.MaxFloat64
	}
	return math.Sqrt(x)
}

// Transform applies the angular distortion in the normalized image plane.
// The input is an undistorted equidistant-normalized point, whose radius is
// the incidence angle theta; the output radius is the distorted angle.
func (rd *RadialDistortion) Transform(x, y float64) (float64, float64) {
	if rd == nil {
		return x, y
	}
	r := utils.Norm2(x, y)
	if r < DefaultMin2DNorm {
		return x, y
	}
	scale := rd.Distort(r) / r
	return scale * x, scale * y
}
