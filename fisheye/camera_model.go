package fisheye

// FisheyeCameraModel is an equidistant fisheye camera with radial distortion.
// MaxTheta is the monotonic-domain bound of the distortion polynomial; the
// distorted projection and unprojection report invalid results past it
// because the distortion cannot be inverted there. MinNorm is the 2D-norm
// threshold below which a point is treated as the exact image center.
type FisheyeCameraModel struct {
	*FisheyeCameraIntrinsics `json:"intrinsic_parameters"`
	Distortion               *RadialDistortion `json:"distortion"`
	MaxTheta                 float64           `json:"-"`
	MinNorm                  float64           `json:"-"`
}

// NewFisheyeCameraModel pairs intrinsics with a radial distortion,
// precomputing the monotonic-domain bound once so the per-point operations
// stay free of root finding.
func NewFisheyeCameraModel(intrinsics *FisheyeCameraIntrinsics, distortion *RadialDistortion) *FisheyeCameraModel {
	return &FisheyeCameraModel{
		FisheyeCameraIntrinsics: intrinsics,
		Distortion:              distortion,
		MaxTheta:                distortion.MonotonicMaxTheta(DefaultMaxThetaGuess),
		MinNorm:                 DefaultMin2DNorm,
	}
}

// DistortionMap is a function that transforms undistorted pixel coordinates
// (u,v) to the distorted pixel coordinates (x,y) according to the model's
// radial distortion.
func (model *FisheyeCameraModel) DistortionMap() func(u, v float64) (float64, float64) {
	return func(u, v float64) (float64, float64) {
		x := (u - model.Ppx) / model.Fx
		y := (v - model.Ppy) / model.Fy
		x, y = model.Distortion.Transform(x, y)
		x = x*model.Fx + model.Ppx
		y = y*model.Fy + model.Ppy
		return x, y
	}
}
