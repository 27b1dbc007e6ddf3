package fisheye

import (
	"math"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/mat"

	"go.viam.com/camera/utils"
)

// ProjectHessians returns, for each pixel output dimension of the
// undistorted projection, the symmetric 3x3 second-derivative matrix with
// respect to the camera point: d²u/d(point)² and d²v/d(point)².
//
// The radial remap uv = s(r)*xy is differentiated in closed form through
// the scalar chain s, ds/dr, d²s/dr² (with theta = atan(r), so
// d²theta/dr² = -2r/(1+r²)²), then contracted with the Jacobian and the
// second derivatives of the depth normalization. At the image center all
// second derivatives of the remap vanish and only the depth-normalization
// curvature remains.
func (params *FisheyeCameraIntrinsics) ProjectHessians(pt r3.Vector) (*mat.SymDense, *mat.SymDense) {
	invz := 1 / pt.Z
	xx := pt.X * invz
	yy := pt.Y * invz
	r2 := xx*xx + yy*yy
	r := utils.Norm2(xx, yy)
	invr := 0.0
	if r > 0 {
		invr = 1 / r
	}

	// s(r) = theta/r and its first two radial derivatives
	s, s1, s2 := 1.0, 0.0, 0.0
	if r >= DefaultMin2DNorm {
		theta := math.Atan(r)
		jtr := 1 / (1 + r2) // dtheta/dr
		s = theta * invr
		s1 = (jtr - s) * invr
		djtr := -2 * r / ((1 + r2) * (1 + r2)) // d²theta/dr²
		s2 = (djtr - s1 - (jtr-s)*invr) * invr
	}

	// gradient and Hessian of s over the normalized plane
	var js [2]float64
	var hs [2][2]float64
	if r >= DefaultMin2DNorm {
		js[0] = s1 * invr * xx
		js[1] = s1 * invr * yy
		invr2 := invr * invr
		c1 := s2 * invr2
		c2 := s1 * invr
		hs[0][0] = c1*xx*xx + c2*(1-xx*xx*invr2)
		hs[0][1] = c1*xx*yy - c2*xx*yy*invr2
		hs[1][0] = hs[0][1]
		hs[1][1] = c1*yy*yy + c2*(1-yy*yy*invr2)
	}

	// Jacobian and second derivatives of the depth normalization
	// xy = (X/Z, Y/Z); the curvature mixes each axis with depth only.
	invz2 := invz * invz
	invz3 := invz2 * invz
	jxy := [2][3]float64{{invz, 0, -xx * invz}, {0, invz, -yy * invz}}
	var hxy [2][3][3]float64
	hxy[0][0][2], hxy[0][2][0] = -invz2, -invz2
	hxy[0][2][2] = 2 * pt.X * invz3
	hxy[1][1][2], hxy[1][2][1] = -invz2, -invz2
	hxy[1][2][2] = 2 * pt.Y * invz3

	// Hessian of uv = s*xy over the normalized plane:
	// Huv[i][j][k] = Js[k]*δij + Js[j]*δik + xy_i*Hs[j][k]
	xy := [2]float64{xx, yy}
	var huv [2][2][2]float64
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			for k := 0; k < 2; k++ {
				v := xy[i] * hs[j][k]
				if i == j {
					v += js[k]
				}
				if i == k {
					v += js[j]
				}
				huv[i][j][k] = v
			}
		}
	}

	// Jacobian of uv over the normalized plane
	juv := [2][2]float64{{s + xx*js[0], xx * js[1]}, {yy * js[0], s + yy*js[1]}}

	// assemble per-output 3x3 Hessians: the second-order chain term
	// contracted over the depth-normalization Jacobian, plus the
	// first-order term against the depth-normalization curvature
	focal := [2]float64{params.Fx, params.Fy}
	out := [2]*mat.SymDense{mat.NewSymDense(3, nil), mat.NewSymDense(3, nil)}
	for i := 0; i < 2; i++ {
		for a := 0; a < 3; a++ {
			for b := a; b < 3; b++ {
				sum := 0.0
				for j := 0; j < 2; j++ {
					for k := 0; k < 2; k++ {
						sum += huv[i][j][k] * jxy[j][a] * jxy[k][b]
					}
					sum += juv[i][j] * hxy[j][a][b]
				}
				out[i].SetSym(a, b, focal[i]*sum)
			}
		}
	}
	return out[0], out[1]
}

// projectHessiansDirect recomputes the projection Hessians by
// differentiating the Jacobian expression a second time, propagating
// d(J_uv_xy)/dx and d(J_uv_xy)/dy explicitly before chaining through the
// depth normalization. It is slower than ProjectHessians and exists as the
// independent derivation the test suite cross-checks against.
func (params *FisheyeCameraIntrinsics) projectHessiansDirect(pt r3.Vector) (hu, hv [3][3]float64) {
	invz := 1 / pt.Z
	invz2 := invz * invz
	xx := pt.X * invz
	yy := pt.Y * invz
	r := utils.Norm2(xx, yy)

	// J_uv_xy and its derivatives along the normalized plane
	juv := [2][2]float64{{1, 0}, {0, 1}}
	var djx, djy [2][2]float64
	if r >= DefaultMin2DNorm {
		invr := 1 / r
		invr2 := invr * invr
		theta := math.Atan(r)
		s := theta * invr
		jtr := 1 / (1 + r*r)
		tmp := (jtr - s) * invr2
		xyOuter := [2][2]float64{{xx * xx, xx * yy}, {xx * yy, yy * yy}}
		for i := 0; i < 2; i++ {
			for j := 0; j < 2; j++ {
				juv[i][j] = tmp * xyOuter[i][j]
			}
			juv[i][i] += s
		}

		drdx, drdy := xx*invr, yy*invr
		dsdr := jtr*invr - theta*invr2
		dtmpdr := invr2 * (-2*jtr*jtr*r - 3*dsdr)

		dsdx, dsdy := dsdr*drdx, dsdr*drdy
		dtmpdx, dtmpdy := dtmpdr*drdx, dtmpdr*drdy

		dOuterDx := [2][2]float64{{2 * xx, yy}, {yy, 0}}
		dOuterDy := [2][2]float64{{0, xx}, {xx, 2 * yy}}
		for i := 0; i < 2; i++ {
			for j := 0; j < 2; j++ {
				djx[i][j] = dtmpdx*xyOuter[i][j] + tmp*dOuterDx[i][j]
				djy[i][j] = dtmpdy*xyOuter[i][j] + tmp*dOuterDy[i][j]
			}
			djx[i][i] += dsdx
			djy[i][i] += dsdy
		}
	}

	// focal-scaled forms
	focal := [2]float64{params.Fx, params.Fy}
	var jim, dJimDx, dJimDy [2][2]float64
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			jim[i][j] = focal[i] * juv[i][j]
			dJimDx[i][j] = focal[i] * djx[i][j]
			dJimDy[i][j] = focal[i] * djy[i][j]
		}
	}

	// derivative of the full 2x3 Jacobian along each camera axis
	var dJ [3][2][3]float64
	for i := 0; i < 2; i++ {
		dJ[0][i][0] = invz2 * dJimDx[i][0]
		dJ[0][i][1] = invz2 * dJimDx[i][1]
		dJ[0][i][2] = invz2 * (-(dJimDx[i][0]*xx + dJimDx[i][1]*yy) - jim[i][0])
		dJ[1][i][0] = invz2 * dJimDy[i][0]
		dJ[1][i][1] = invz2 * dJimDy[i][1]
		dJ[1][i][2] = invz2 * (-(dJimDy[i][0]*xx + dJimDy[i][1]*yy) - jim[i][1])
	}
	// d(J_xy_cam)/dz enters the depth column directly
	for i := 0; i < 2; i++ {
		dJ[2][i][0] = -dJ[0][i][0]*xx - dJ[1][i][0]*yy + jim[i][0]*(-invz2)
		dJ[2][i][1] = -dJ[0][i][1]*xx - dJ[1][i][1]*yy + jim[i][1]*(-invz2)
		dJ[2][i][2] = -dJ[0][i][2]*xx - dJ[1][i][2]*yy + (jim[i][0]*xx+jim[i][1]*yy)*invz2
	}

	for k := 0; k < 3; k++ {
		for c := 0; c < 3; c++ {
			hu[k][c] = dJ[c][0][k]
			hv[k][c] = dJ[c][1][k]
		}
	}
	return hu, hv
}
