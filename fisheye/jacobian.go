package fisheye

import (
	"math"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/mat"

	"go.viam.com/camera/utils"
)

// ProjectJacobian returns the 2x3 derivative of the undistorted projection
// with respect to the camera point, d(pixel)/d(point), composed by chain
// rule through the depth normalization, the radial theta/r remap, and the
// focal scaling. At the image center the remap Jacobian is the identity.
//
// There is no distorted variant; the derivative operators cover the
// undistorted projection only.
func (params *FisheyeCameraIntrinsics) ProjectJacobian(pt r3.Vector) *mat.Dense {
	invz := 1 / pt.Z
	xx := pt.X * invz
	yy := pt.Y * invz
	r := utils.Norm2(xx, yy)

	// J_uv_xy, the 2x2 Jacobian of the radial remap uv = (theta/r)*xy
	j00, j01, j10, j11 := 1.0, 0.0, 0.0, 1.0
	if r >= DefaultMin2DNorm {
		invr := 1 / r
		theta := math.Atan(r)
		s := theta * invr
		jThetaR := 1 / (1 + r*r) // dtheta/dr
		// ds/dxy = (dtheta/dr - s)/r² * xy
		cx := (jThetaR - s) * invr * invr * xx
		cy := (jThetaR - s) * invr * invr * yy
		j00 = s + cx*xx
		j01 = cx * yy
		j10 = cy * xx
		j11 = s + cy*yy
	}

	// focal scaling, then the depth-normalization Jacobian
	// [[1/z, 0, -x/z²], [0, 1/z, -y/z²]]
	return mat.NewDense(2, 3, []float64{
		params.Fx * j00 * invz, params.Fx * j01 * invz, -params.Fx * (j00*xx + j01*yy) * invz,
		params.Fy * j10 * invz, params.Fy * j11 * invz, -params.Fy * (j10*xx + j11*yy) * invz,
	})
}
