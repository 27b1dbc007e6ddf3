package fisheye

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"

	"go.viam.com/camera/utils"
)

// Unproject maps a 2D image point back to the ray direction in camera space
// that the undistorted projection would have imaged there. The direction has
// unit norm by construction (xy magnitude sin(theta), z cos(theta)) but is
// not renormalized. The exact image center maps to the forward ray (0,0,1).
func (params *FisheyeCameraIntrinsics) Unproject(pt r2.Point) r3.Vector {
	u := (pt.X - params.Ppx) / params.Fx
	v := (pt.Y - params.Ppy) / params.Fy
	theta := utils.Norm2(u, v)
	if theta < DefaultMin2DNorm {
		return r3.Vector{X: 0, Y: 0, Z: 1}
	}
	s := math.Sin(theta) / theta
	return r3.Vector{X: s * u, Y: s * v, Z: math.Cos(theta)}
}

// Unproject maps a 2D image point back to a camera-space ray direction,
// inverting the model's radial distortion by a fixed-budget Newton solve.
// The flag is false when the inversion does not converge or leaves the
// monotonic domain; the returned vector is then zero.
//
// The normalized point's magnitude is the distorted angle theta_d, so it
// scales the xy component, while the trigonometric terms use the recovered
// undistorted theta.
func (model *FisheyeCameraModel) Unproject(pt r2.Point) (r3.Vector, bool) {
	u := (pt.X - model.Ppx) / model.Fx
	v := (pt.Y - model.Ppy) / model.Fy
	thetaD := utils.Norm2(u, v)
	if thetaD < model.MinNorm {
		return r3.Vector{X: 0, Y: 0, Z: 1}, true
	}
	theta, converged := model.Distortion.Undistort(thetaD, model.MaxTheta)
	if !converged {
		return r3.Vector{}, false
	}
	s := math.Sin(theta) / thetaD
	return r3.Vector{X: s * u, Y: s * v, Z: math.Cos(theta)}, true
}
