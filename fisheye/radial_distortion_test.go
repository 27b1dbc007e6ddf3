package fisheye

import (
	"math"
	"testing"

	"go.viam.com/test"
)

func TestNewRadialDistortion(t *testing.T) {
	_, err := NewRadialDistortion([]float64{1, 2, 3, 4, 5})
	test.That(t, err, test.ShouldNotBeNil)

	rd, err := NewRadialDistortion(nil)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, rd.Parameters(), test.ShouldResemble, []float64{0, 0, 0, 0})

	// short lists get filled with zeros
	rd, err = NewRadialDistortion([]float64{-0.2, 0.05})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, rd.K1, test.ShouldEqual, -0.2)
	test.That(t, rd.K2, test.ShouldEqual, 0.05)
	test.That(t, rd.K3, test.ShouldEqual, 0)
	test.That(t, rd.K4, test.ShouldEqual, 0)
	test.That(t, rd.ModelType(), test.ShouldEqual, KannalaBrandtDistortionType)
	test.That(t, rd.CheckValid(), test.ShouldBeNil)

	var nilRd *RadialDistortion
	test.That(t, nilRd.CheckValid(), test.ShouldNotBeNil)
	test.That(t, nilRd.Parameters(), test.ShouldResemble, []float64{})
}

func TestNewDistorter(t *testing.T) {
	d, err := NewDistorter(KannalaBrandtDistortionType, []float64{-0.1, 0.01, 0, 0})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, d.ModelType(), test.ShouldEqual, KannalaBrandtDistortionType)

	_, err = NewDistorter(DistortionType("brown_conrady"), []float64{0.1})
	test.That(t, err, test.ShouldNotBeNil)
}

func TestDistort(t *testing.T) {
	rd := &RadialDistortion{K1: -0.2, K2: 0.01, K3: -0.001, K4: 0.0001}

	// zero angle maps to zero, small angles stay near identity
	test.That(t, rd.Distort(0), test.ShouldEqual, 0)
	test.That(t, rd.Distort(1e-4), test.ShouldAlmostEqual, 1e-4, 1e-10)

	// against the written-out polynomial
	theta := 0.8
	t2 := theta * theta
	want := theta * (1 - 0.2*t2 + 0.01*t2*t2 - 0.001*t2*t2*t2 + 0.0001*t2*t2*t2*t2)
	test.That(t, rd.Distort(theta), test.ShouldAlmostEqual, want, 1e-12)
}

func TestDistortJacobian(t *testing.T) {
	rd := &RadialDistortion{K1: -0.2, K2: 0.01, K3: -0.001, K4: 0.0001}

	test.That(t, rd.DistortJacobian(0), test.ShouldEqual, 1)

	// central difference of Distort
	for _, theta := range []float64{0.1, 0.5, 0.9, 1.3} {
		h := 1e-6
		fd := (rd.Distort(theta+h) - rd.Distort(theta-h)) / (2 * h)
		test.That(t, rd.DistortJacobian(theta), test.ShouldAlmostEqual, fd, 1e-6)
	}
}

func TestUndistortRoundTrip(t *testing.T) {
	rd := &RadialDistortion{K1: -0.05, K2: 0.007, K3: -0.0005, K4: 0.00002}
	maxTheta := rd.MonotonicMaxTheta(DefaultMaxThetaGuess)

	for _, theta := range []float64{0.05, 0.3, 0.7, 1.1, 1.5} {
		if theta > maxTheta {
			continue
		}
		thetaD := rd.Distort(theta)
		got, converged := rd.Undistort(thetaD, maxTheta)
		test.That(t, converged, test.ShouldBeTrue)
		test.That(t, got, test.ShouldAlmostEqual, theta, 1e-5)
	}
}

func TestUndistortOutOfDomain(t *testing.T) {
	// strongly negative k1: invertible only up to theta ~1.29
	rd := &RadialDistortion{K1: -0.2}
	maxTheta := rd.MonotonicMaxTheta(DefaultMaxThetaGuess)
	test.That(t, maxTheta, test.ShouldAlmostEqual, math.Sqrt(1.0/0.6), 1e-6)

	// no theta in [0, maxTheta] distorts this far; the solve must fail
	_, converged := rd.Undistort(1.2, maxTheta)
	test.That(t, converged, test.ShouldBeFalse)
}

func TestMonotonicMaxThetaSentinel(t *testing.T) {
	// zero coefficients: the derivative polynomial is constantly 1
	rd := &RadialDistortion{}
	test.That(t, rd.MonotonicMaxTheta(DefaultMaxThetaGuess), test.ShouldEqual, math.MaxFloat64)

	// positive coefficients only strengthen monotonicity
	rd = &RadialDistortion{K1: 0.1, K2: 0.01}
	test.That(t, rd.MonotonicMaxTheta(DefaultMaxThetaGuess), test.ShouldEqual, math.MaxFloat64)
}

func TestTransform(t *testing.T) {
	rd := &RadialDistortion{K1: -0.1, K2: 0.004}

	// center is untouched
	x, y := rd.Transform(0, 0)
	test.That(t, x, test.ShouldEqual, 0)
	test.That(t, y, test.ShouldEqual, 0)

	// the radius follows Distort, the direction is preserved
	x, y = rd.Transform(0.6, -0.8)
	r := math.Hypot(x, y)
	test.That(t, r, test.ShouldAlmostEqual, rd.Distort(1.0), 1e-12)
	test.That(t, y/x, test.ShouldAlmostEqual, -0.8/0.6, 1e-12)

	var nilRd *RadialDistortion
	x, y = nilRd.Transform(0.3, 0.4)
	test.That(t, x, test.ShouldEqual, 0.3)
	test.That(t, y, test.ShouldEqual, 0.4)
}
