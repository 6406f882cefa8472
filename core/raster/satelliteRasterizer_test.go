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

package raster

import (
	"image"
	"image/color"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/draw"

	"github.com/satraster/core/core/errorwithkind"
	"github.com/satraster/core/core/geom"
)

// Identity calibration: world coordinates == satellite pixels, 1 pixel per
// meter at the origin
func identityCalibration() mgl64.Mat4 {
	return mgl64.Ident4()
}

// Calibration scaled so the satellite image has pixelsPerMeter resolution
func scaledCalibration(pixelsPerMeter float64) mgl64.Mat4 {
	return mgl64.Scale3D(pixelsPerMeter, pixelsPerMeter, 1)
}

// Image where each pixel's R,G channels encode its own x,y coordinates
func makeCoordImage(w int, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 0, A: 255})
		}
	}
	return img
}

func egoHistory(x, y, z, yaw float64) []Frame {
	return []Frame{
		{
			TimestampNS:    1000,
			EgoTranslation: r3.Vector{X: x, Y: y, Z: z},
			EgoRotation:    geom.RotationFromYaw(yaw),
		},
	}
}

// Pins the exact transform composition order: raster 224x224 at 0.5 m/px
// with the ego anchored at (0.25, 0.5), ego at world (100, 200, 10), yaw 0
// and an identity calibration must put the crop center at satellite pixel
// (128, 200): the raster midpoint sits 28m ahead of the ego anchor.
func TestRasterizeCompositionOrder(t *testing.T) {
	satImg := makeCoordImage(256, 256)
	r := MakeSatelliteRasterizer(224, 224, r2.Point{X: 0.5, Y: 0.5}, r2.Point{X: 0.25, Y: 0.5}, satImg, identityCalibration(), draw.NearestNeighbor)

	out, err := r.Rasterize(egoHistory(100, 200, 10, 0), nil, nil)
	require.NoError(t, err)

	// The output midpoint samples source pixel (128, 200). With 0.5 source
	// pixels per output pixel the dest pixel just right of/above center
	// maps to source coordinate (128.25, 200.25), and the vertical flip
	// moves output row 112 to 223-112=111.
	assert.InDelta(t, 128.0/255.0, float64(out.At(112, 111, 0)), 1e-6)
	assert.InDelta(t, 200.0/255.0, float64(out.At(112, 111, 1)), 1e-6)
}

// An agent record at the same position and yaw as the ego must produce the
// identical crop to rasterizing around the ego itself
func TestRasterizeAgentMatchesEgo(t *testing.T) {
	satImg := makeCoordImage(256, 256)
	r := MakeSatelliteRasterizer(64, 64, r2.Point{X: 0.5, Y: 0.5}, r2.Point{X: 0.5, Y: 0.5}, satImg, identityCalibration(), draw.NearestNeighbor)

	history := egoHistory(120, 130, 5, 0.8)

	egoOut, err := r.Rasterize(history, nil, nil)
	require.NoError(t, err)

	agent := Agent{
		TrackID:  7,
		Centroid: r2.Point{X: 120, Y: 130},
		Yaw:      0.8,
	}
	agentOut, err := r.Rasterize(history, [][]Agent{{agent}}, &agent)
	require.NoError(t, err)

	assert.Equal(t, egoOut.Pix, agentOut.Pix)
}

// Two base images of the same world area at different native resolutions
// (with calibrations to match) must produce the same crop content
func TestRasterizeResolutionInvariance(t *testing.T) {
	// Blocky world content, 10m color blocks, so resampling differences
	// can't leak in away from block boundaries
	blockColor := func(wx, wy float64) color.NRGBA {
		bx := int(wx) / 10
		by := int(wy) / 10
		return color.NRGBA{R: uint8(50 + 40*bx), G: uint8(50 + 40*by), B: 0, A: 255}
	}

	// 100x100 at 1 px/m
	imgA := image.NewNRGBA(image.Rect(0, 0, 100, 100))
	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			imgA.SetNRGBA(x, y, blockColor(float64(x), float64(y)))
		}
	}

	// 200x200 at 2 px/m, same world area
	imgB := image.NewNRGBA(image.Rect(0, 0, 200, 200))
	for y := 0; y < 200; y++ {
		for x := 0; x < 200; x++ {
			imgB.SetNRGBA(x, y, blockColor(float64(x)/2, float64(y)/2))
		}
	}

	rA := MakeSatelliteRasterizer(16, 16, r2.Point{X: 1, Y: 1}, r2.Point{X: 0.5, Y: 0.5}, imgA, identityCalibration(), draw.NearestNeighbor)
	rB := MakeSatelliteRasterizer(16, 16, r2.Point{X: 1, Y: 1}, r2.Point{X: 0.5, Y: 0.5}, imgB, scaledCalibration(2), draw.NearestNeighbor)

	assert.InDelta(t, 1.0, rA.MapPixelScale(), 1e-9)
	assert.InDelta(t, 0.5, rB.MapPixelScale(), 1e-9)

	history := egoHistory(45.2, 52.7, 0, 0)

	outA, err := rA.Rasterize(history, nil, nil)
	require.NoError(t, err)
	outB, err := rB.Rasterize(history, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, outA.Pix, outB.Pix)
}

// A pose at the satellite image's edge needs out-of-bounds samples, which
// the crop primitive zero fills - no error from the engine
func TestRasterizeBoundaryZeroFill(t *testing.T) {
	satImg := makeCoordImage(64, 64)
	r := MakeSatelliteRasterizer(32, 32, r2.Point{X: 1, Y: 1}, r2.Point{X: 0.5, Y: 0.5}, satImg, identityCalibration(), draw.NearestNeighbor)

	out, err := r.Rasterize(egoHistory(0, 0, 0, 0), nil, nil)
	require.NoError(t, err)

	// Columns to the left of the image edge are zero filled
	assert.Equal(t, float32(0), out.At(0, 16, 0))
	assert.Equal(t, float32(0), out.At(0, 16, 1))

	// Content exists on the in-bounds side
	foundContent := false
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			if out.At(x, y, 0) != 0 || out.At(x, y, 1) != 0 {
				foundContent = true
			}
		}
	}
	assert.True(t, foundContent)
}

func TestRasterizeNoHistory(t *testing.T) {
	satImg := makeCoordImage(16, 16)
	r := MakeSatelliteRasterizer(8, 8, r2.Point{X: 1, Y: 1}, r2.Point{X: 0.5, Y: 0.5}, satImg, identityCalibration(), nil)

	_, err := r.Rasterize(nil, nil, nil)
	assert.Error(t, err)
}

// A raster configuration whose world-to-raster matrix is numerically
// singular surfaces a geometry-kind error rather than garbage output
func TestRasterizeSingularTransform(t *testing.T) {
	satImg := makeCoordImage(16, 16)

	// Absurd pixel size drives the matrix determinant below the
	// invertibility threshold
	r := MakeSatelliteRasterizer(8, 8, r2.Point{X: 1e7, Y: 1e7}, r2.Point{X: 0.5, Y: 0.5}, satImg, identityCalibration(), nil)

	_, err := r.Rasterize(egoHistory(0, 0, 0, 0), nil, nil)
	assert.Error(t, err)
	assert.True(t, errorwithkind.IsKind(err, errorwithkind.KindGeometry))
}

// The cached satellite pixel scale comes from the calibration's rotational
// block, averaging the two inverted row norms
func TestMapPixelScale(t *testing.T) {
	// Anisotropic calibration: 2 px/m in x, 4 px/m in y
	cal := mgl64.Scale3D(2, 4, 1)
	r := MakeSatelliteRasterizer(8, 8, r2.Point{X: 1, Y: 1}, r2.Point{X: 0.5, Y: 0.5}, makeCoordImage(4, 4), cal, nil)

	// (1/2 + 1/4) / 2
	assert.InDelta(t, 0.375, r.MapPixelScale(), 1e-9)
}
