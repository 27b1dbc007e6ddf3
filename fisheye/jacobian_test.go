package fisheye

import (
	"math"
	"testing"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"go.viam.com/test"
)

// central finite difference of Project along each camera axis.
func finiteDiffJacobian(params *FisheyeCameraIntrinsics, pt r3.Vector, h float64) [2][3]float64 {
	var fd [2][3]float64
	for c := 0; c < 3; c++ {
		offset := r3.Vector{}
		switch c {
		case 0:
			offset.X = h
		case 1:
			offset.Y = h
		case 2:
			offset.Z = h
		}
		hi := params.Project(pt.Add(offset))
		lo := params.Project(pt.Sub(offset))
		fd[0][c] = (hi.X - lo.X) / (2 * h)
		fd[1][c] = (hi.Y - lo.Y) / (2 * h)
	}
	return fd
}

func TestProjectJacobianFiniteDifference(t *testing.T) {
	points := []r3.Vector{
		{X: 0.2, Y: -0.1, Z: 1.5},
		{X: 1.2, Y: 0.8, Z: 2.0},
		{X: -0.5, Y: 0.3, Z: 0.7},
		{X: 2.5, Y: -1.5, Z: 1.1},
		{X: 0.001, Y: -0.002, Z: 4.0},
	}
	const h = 1e-4
	for _, pt := range points {
		jac := testIntrinsics.ProjectJacobian(pt)
		rows, cols := jac.Dims()
		test.That(t, rows, test.ShouldEqual, 2)
		test.That(t, cols, test.ShouldEqual, 3)

		fd := finiteDiffJacobian(testIntrinsics, pt, h)
		for i := 0; i < 2; i++ {
			for c := 0; c < 3; c++ {
				tol := 1e-3 * math.Max(1, math.Abs(fd[i][c]))
				test.That(t, jac.At(i, c), test.ShouldAlmostEqual, fd[i][c], tol)
			}
		}
	}
}

func TestProjectJacobianCenter(t *testing.T) {
	// on-axis the remap is the identity and only the pinhole part remains:
	// J = [[fx/z, 0, 0], [0, fy/z, 0]]
	z := 2.5
	jac := testIntrinsics.ProjectJacobian(r3.Vector{X: 0, Y: 0, Z: z})
	test.That(t, jac.At(0, 0), test.ShouldAlmostEqual, testIntrinsics.Fx/z, 1e-12)
	test.That(t, jac.At(1, 1), test.ShouldAlmostEqual, testIntrinsics.Fy/z, 1e-12)
	test.That(t, jac.At(0, 1), test.ShouldEqual, 0)
	test.That(t, jac.At(0, 2), test.ShouldEqual, 0)
	test.That(t, jac.At(1, 0), test.ShouldEqual, 0)
	test.That(t, jac.At(1, 2), test.ShouldEqual, 0)
}

func TestProjectJacobianFirstOrderPrediction(t *testing.T) {
	// the Jacobian predicts the pixel motion of a small perturbation
	pt := r3.Vector{X: 0.4, Y: 0.25, Z: 1.8}
	jac := testIntrinsics.ProjectJacobian(pt)
	base := testIntrinsics.Project(pt)

	delta := r3.Vector{X: 2e-5, Y: -1e-5, Z: 3e-5}
	moved := testIntrinsics.Project(pt.Add(delta))

	predicted := r2.Point{
		X: base.X + jac.At(0, 0)*delta.X + jac.At(0, 1)*delta.Y + jac.At(0, 2)*delta.Z,
		Y: base.Y + jac.At(1, 0)*delta.X + jac.At(1, 1)*delta.Y + jac.At(1, 2)*delta.Z,
	}
	test.That(t, predicted.X, test.ShouldAlmostEqual, moved.X, 1e-6)
	test.That(t, predicted.Y, test.ShouldAlmostEqual, moved.Y, 1e-6)
}
