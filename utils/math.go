// Package utils contains shared numeric helpers for the camera model packages.
package utils

import "math"

func DegToRad(degrees float64) float64 {
	return degrees * math.Pi / 180
}

func RadToDeg(radians float64) float64 {
	return radians * 180 / math.Pi
}

// Math.pow( x, 2 ) is slow, this is faster
func Square(n float64) float64 {
	return n * n
}

// Norm2 returns the Euclidean norm of (x, y). The inputs are rescaled by
// their largest magnitude before squaring, so the result does not overflow
// or underflow for extreme inputs the way sqrt(x*x + y*y) does.
func Norm2(x, y float64) float64 {
	ax, ay := math.Abs(x), math.Abs(y)
	m := math.Max(ax, ay)
	if m == 0 {
		return 0
	}
	ax /= m
	ay /= m
	return m * math.Sqrt(ax*ax+ay*ay)
}

// EvalPolyHorner evaluates the polynomial with the given coefficients
// (constant term first) at x using Horner's scheme.
func EvalPolyHorner(coeffs []float64, x float64) float64 {
	result := 0.0
	for i := len(coeffs) - 1; i >= 0; i-- {
		result = result*x + coeffs[i]
	}
	return result
}
