package fisheye

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"

	"go.viam.com/camera/utils"
)

// DefaultMin2DNorm is the 2D-norm threshold below which a normalized image
// point is treated as the exact image center, where the equidistant model
// degenerates to the pinhole model and the theta/r ratio would be 0/0.
const DefaultMin2DNorm = 1e-6

// Project maps a 3D point in camera space to 2D image space using the
// equidistant fisheye projection without distortion. The point's Z must be
// nonzero; behavior at Z == 0 is undefined.
func (params *FisheyeCameraIntrinsics) Project(pt r3.Vector) r2.Point {
	xx := pt.X / pt.Z
	yy := pt.Y / pt.Z
	r := utils.Norm2(xx, yy)
	u, v := xx, yy
	if r >= DefaultMin2DNorm {
		s := math.Atan(r) / r
		u, v = s*xx, s*yy
	}
	return r2.Point{X: params.Fx*u + params.Ppx, Y: params.Fy*v + params.Ppy}
}

// Project maps a 3D point in camera space to 2D image space applying the
// model's radial distortion. The flag is false when the incidence angle
// exceeds the monotonic-domain bound, where a later inversion of the
// projection would not be meaningful; the returned point is then zero.
func (model *FisheyeCameraModel) Project(pt r3.Vector) (r2.Point, bool) {
	xx := pt.X / pt.Z
	yy := pt.Y / pt.Z
	r := utils.Norm2(xx, yy)
	u, v := xx, yy
	if r >= model.MinNorm {
		theta := math.Atan(r)
		if theta > model.MaxTheta {
			return r2.Point{}, false
		}
		s := model.Distortion.Distort(theta) / r
		u, v = s*xx, s*yy
	}
	return r2.Point{X: model.Fx*u + model.Ppx, Y: model.Fy*v + model.Ppy}, true
}
