// Package main is a command that checks a fisheye calibration file by
// round-tripping every sampled pixel through unprojection and projection
// and reporting the worst pixel error.
package main

import (
	"flag"
	"math"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r2"

	"go.viam.com/camera/fisheye"
	"go.viam.com/camera/utils"
)

func main() {
	k1 := flag.Float64("k1", 0, "radial distortion k1")
	k2 := flag.Float64("k2", 0, "radial distortion k2")
	k3 := flag.Float64("k3", 0, "radial distortion k3")
	k4 := flag.Float64("k4", 0, "radial distortion k4")
	step := flag.Int("step", 20, "pixel grid step")
	flag.Parse()

	logger := golog.NewDevelopmentLogger("roundtrip")
	if flag.NArg() < 1 {
		logger.Fatal("need an intrinsics JSON file argument")
	}

	intrinsics, err := fisheye.NewFisheyeCameraIntrinsicsFromJSONFile(flag.Arg(0))
	if err != nil {
		logger.Fatal(err)
	}
	if err := intrinsics.CheckValid(); err != nil {
		logger.Fatal(err)
	}
	model := fisheye.NewFisheyeCameraModel(intrinsics, &fisheye.RadialDistortion{K1: *k1, K2: *k2, K3: *k3, K4: *k4})
	if model.MaxTheta == math.MaxFloat64 {
		logger.Info("distortion is monotonic over the full angular range")
	} else {
		logger.Infof("monotonic domain bound: %.4f rad (%.2f deg)", model.MaxTheta, utils.RadToDeg(model.MaxTheta))
	}

	var maxErr, sumErr float64
	var count, invalid int
	for y := 0; y < intrinsics.Height; y += *step {
		for x := 0; x < intrinsics.Width; x += *step {
			px := r2.Point{X: float64(x), Y: float64(y)}
			dir, ok := model.Unproject(px)
			if !ok {
				invalid++
				continue
			}
			back, ok := model.Project(dir)
			if !ok {
				invalid++
				continue
			}
			e := utils.Norm2(back.X-px.X, back.Y-px.Y)
			sumErr += e
			if e > maxErr {
				maxErr = e
			}
			count++
		}
	}
	if count == 0 {
		logger.Fatal("no pixel round-tripped successfully")
	}
	logger.Infof("%d pixels checked, %d invalid", count, invalid)
	logger.Infof("round-trip error: max %.3e px, mean %.3e px", maxErr, sumErr/float64(count))
}
