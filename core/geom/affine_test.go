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

package geom

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/assert"

	"github.com/satraster/core/core/errorwithkind"
)

const tolerance = 1e-9

func TestYawFromRotationRoundTrip(t *testing.T) {
	yaws := []float64{0, 0.5, -0.5, math.Pi / 2, -math.Pi / 2, 3, -3}

	for _, yaw := range yaws {
		got := YawFromRotation(RotationFromYaw(yaw))
		assert.InDelta(t, yaw, got, tolerance, "yaw=%v", yaw)
	}
}

func TestTransformPoint2(t *testing.T) {
	// Translate by (10, 20) then check the homogeneous divide with a
	// projective bottom row
	m := mgl64.Translate2D(10, 20)
	pt := TransformPoint2(m, r2.Point{X: 1, Y: 2})
	assert.InDelta(t, 11.0, pt.X, tolerance)
	assert.InDelta(t, 22.0, pt.Y, tolerance)

	proj := mgl64.Ident3()
	proj.Set(2, 2, 2) // w doubles, so coordinates halve
	pt = TransformPoint2(proj, r2.Point{X: 4, Y: 6})
	assert.InDelta(t, 2.0, pt.X, tolerance)
	assert.InDelta(t, 3.0, pt.Y, tolerance)
}

func TestTransformPoint3(t *testing.T) {
	m := mgl64.Translate3D(1, 2, 3)
	pt := TransformPoint3(m, r3.Vector{X: 10, Y: 20, Z: 30})
	assert.InDelta(t, 11.0, pt.X, tolerance)
	assert.InDelta(t, 22.0, pt.Y, tolerance)
	assert.InDelta(t, 33.0, pt.Z, tolerance)
}

// The pose's own position must land exactly at rasterSize * egoCenter, for
// any valid raster configuration
func TestWorldToRasterAnchorsPose(t *testing.T) {
	configs := []struct {
		name          string
		width, height int
		pixelSize     r2.Point
		egoCenter     r2.Point
		translation   r3.Vector
		yaw           float64
	}{
		{"centered", 224, 224, r2.Point{X: 0.5, Y: 0.5}, r2.Point{X: 0.5, Y: 0.5}, r3.Vector{X: 100, Y: 200, Z: 10}, 0},
		{"offset anchor", 224, 224, r2.Point{X: 0.5, Y: 0.5}, r2.Point{X: 0.25, Y: 0.5}, r3.Vector{X: 100, Y: 200, Z: 10}, 0},
		{"rotated", 300, 150, r2.Point{X: 0.25, Y: 0.25}, r2.Point{X: 0.5, Y: 0.75}, r3.Vector{X: -50, Y: 3, Z: 0}, 1.2},
		{"anisotropic pixels", 128, 64, r2.Point{X: 0.1, Y: 0.4}, r2.Point{X: 0, Y: 1}, r3.Vector{X: 7, Y: -9, Z: 2}, -2.5},
	}

	for _, cfg := range configs {
		t.Run(cfg.name, func(t *testing.T) {
			m := WorldToRasterMatrix(cfg.width, cfg.height, cfg.pixelSize, cfg.translation, cfg.yaw, cfg.egoCenter)
			got := TransformPoint2(m, r2.Point{X: cfg.translation.X, Y: cfg.translation.Y})

			assert.InDelta(t, float64(cfg.width)*cfg.egoCenter.X, got.X, tolerance)
			assert.InDelta(t, float64(cfg.height)*cfg.egoCenter.Y, got.Y, tolerance)
		})
	}
}

// With yaw=0 and a centered anchor, a world point ahead of the pose by
// pixelSize.X * width / 2 meters lands on the raster's right edge column
func TestWorldToRasterForwardPointsRight(t *testing.T) {
	width := 224
	height := 224
	pixelSize := r2.Point{X: 0.5, Y: 0.5}
	translation := r3.Vector{X: 100, Y: 200, Z: 10}

	m := WorldToRasterMatrix(width, height, pixelSize, translation, 0, r2.Point{X: 0.5, Y: 0.5})

	aheadM := pixelSize.X * float64(width) / 2
	got := TransformPoint2(m, r2.Point{X: translation.X + aheadM, Y: translation.Y})

	assert.InDelta(t, float64(width), got.X, tolerance)
	assert.InDelta(t, float64(height)*0.5, got.Y, tolerance)
}

// Whatever the heading, the point one meter ahead along it maps to the
// raster +x direction from the anchor
func TestWorldToRasterYawAlignsForward(t *testing.T) {
	yaws := []float64{0, 0.7, -0.7, math.Pi / 2, math.Pi, -2.8}

	for _, yaw := range yaws {
		translation := r3.Vector{X: 12, Y: 34, Z: 0}
		m := WorldToRasterMatrix(100, 100, r2.Point{X: 0.5, Y: 0.5}, translation, yaw, r2.Point{X: 0.5, Y: 0.5})

		ahead := r2.Point{X: translation.X + math.Cos(yaw), Y: translation.Y + math.Sin(yaw)}
		got := TransformPoint2(m, ahead)

		assert.InDelta(t, 50.0+2.0, got.X, tolerance, "yaw=%v", yaw) // 1m / 0.5 m per pixel
		assert.InDelta(t, 50.0, got.Y, tolerance, "yaw=%v", yaw)
	}
}

func TestInvertMat3(t *testing.T) {
	m := WorldToRasterMatrix(224, 224, r2.Point{X: 0.5, Y: 0.5}, r3.Vector{X: 1, Y: 2, Z: 3}, 0.4, r2.Point{X: 0.25, Y: 0.5})

	inv, err := InvertMat3(m)
	assert.NoError(t, err)

	// Round trip a point through forward and inverse
	pt := TransformPoint2(m, r2.Point{X: 5, Y: -3})
	back := TransformPoint2(inv, pt)
	assert.InDelta(t, 5.0, back.X, 1e-6)
	assert.InDelta(t, -3.0, back.Y, 1e-6)
}

func TestInvertMat3Singular(t *testing.T) {
	singular := mgl64.Mat3{} // all zeroes

	_, err := InvertMat3(singular)
	assert.Error(t, err)
	assert.True(t, errorwithkind.IsKind(err, errorwithkind.KindGeometry))
}
