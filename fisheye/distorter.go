// Package fisheye implements an equidistant (Kannala-Brandt style) fisheye
// camera model: projection of 3D camera-space points to pixels, unprojection
// of pixels back to ray directions, and the analytic first and second
// derivatives of the projection used by gradient-based optimization.
//
// Every operation is a pure function of its inputs and may be called
// concurrently for any number of points. Iterative solves run a fixed
// iteration budget and report success through boolean flags rather than
// errors; an invalid result always carries a fully zeroed payload.
package fisheye

import "github.com/pkg/errors"

// DistortionType is the name of the distortion model.
type DistortionType string

// KannalaBrandtDistortionType is for wide-angle and fisheye lens distortion.
const KannalaBrandtDistortionType = DistortionType("kannala_brandt")

// Distorter defines a distortion model over the normalized image plane.
type Distorter interface {
	ModelType() DistortionType
	CheckValid() error
	Parameters() []float64
	Transform(x, y float64) (float64, float64)
}

// InvalidDistortionError is used when the distortion_parameters are invalid.
func InvalidDistortionError(msg string) error {
	return errors.Wrapf(errors.New("invalid distortion_parameters"), msg)
}

// NewDistorter returns a Distorter given a valid DistortionType and its parameters.
func NewDistorter(distortionType DistortionType, parameters []float64) (Distorter, error) {
	switch distortionType {
	case KannalaBrandtDistortionType:
		return NewRadialDistortion(parameters)
	default:
		return nil, errors.Errorf("do not know how to parse %q distortion model", distortionType)
	}
}
