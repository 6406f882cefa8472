// Licensed to NASA JPL under one or more contributor
// license agreements. See the NOTICE file distributed with
// this work for additional information regarding copyright
// ownership. NASA JPL licenses this file to you under
// the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing,
// software distributed under the License is distributed on an
// "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
// KIND, either express or implied.  See the License for the
// specific language governing permissions and limitations
// under the License.

package satimage

import (
	"image"
	"math"

	"github.com/golang/geo/r2"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// DefaultInterpolation - used when no interpolator is specified
var DefaultInterpolation draw.Interpolator = draw.BiLinear

// CropScaled - cuts an outWidth x outHeight crop out of src, centered at
// center (source pixel coordinates), with the sampling frame rotated by yaw
// (radians) and resampled so one output pixel spans outPixelSize meters
// given the source's own srcPixelScale meters per pixel. A source direction
// at pixel angle -yaw lands on the output's +x axis.
//
// Samples falling outside the source image are zero filled, so a crop near
// the edge of the base image comes back with black borders rather than
// failing.
func CropScaled(src *image.NRGBA, outWidth int, outHeight int, center r2.Point, yaw float64, outPixelSize r2.Point, srcPixelScale float64, interp draw.Interpolator) *image.NRGBA {
	if interp == nil {
		interp = DefaultInterpolation
	}

	// Source pixels covered by one output pixel on each axis
	sx := outPixelSize.X / srcPixelScale
	sy := outPixelSize.Y / srcPixelScale

	cosYaw := math.Cos(yaw)
	sinYaw := math.Sin(yaw)

	// Linear part of the source->dest mapping: rotate by yaw then divide
	// out the per axis zoom
	a00 := cosYaw / sx
	a01 := -sinYaw / sx
	a10 := sinYaw / sy
	a11 := cosYaw / sy

	// Translation placing the crop center at the output center
	dx := float64(outWidth) * 0.5
	dy := float64(outHeight) * 0.5
	b0 := dx - a00*center.X - a01*center.Y
	b1 := dy - a10*center.X - a11*center.Y

	// Transform leaves dest pixels whose preimage is outside the source
	// untouched, and a fresh NRGBA is zeroed, which gives us the zero fill
	dst := image.NewNRGBA(image.Rect(0, 0, outWidth, outHeight))
	interp.Transform(dst, f64.Aff3{a00, a01, b0, a10, a11, b1}, src, src.Bounds(), draw.Src, nil)
	return dst
}
