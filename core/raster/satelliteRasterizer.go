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
	"errors"
	"image"
	"math"

	"github.com/disintegration/imaging"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
	"golang.org/x/image/draw"

	"github.com/satraster/core/core/geom"
	"github.com/satraster/core/core/satimage"
)

// SatelliteRasterizer - crops a satellite base image around an agent of
// interest, with the agent's forward vector pointing right for the current
// timestep. Construction takes the base image and the calibration transform
// from world coordinates into that image's pixel space; both are treated as
// immutable for the rasterizer's lifetime, which is what makes Rasterize
// safe for concurrent use.
type SatelliteRasterizer struct {
	rasterWidth  int
	rasterHeight int
	pixelSize    r2.Point
	egoCenter    r2.Point
	mapImage     *image.NRGBA
	mapToSat     mgl64.Mat4
	interp       draw.Interpolator

	// Meters per satellite image pixel, derived from the calibration
	// transform's rotational block once at construction
	mapPixelScale float64
}

// MakeSatelliteRasterizer - builds a rasterizer producing
// rasterWidth x rasterHeight crops where one output pixel spans pixelSize
// meters. egoCenter is where in the normalized [0,1]x[0,1] raster the pose
// is anchored, (0.5, 0.5) being dead center. mapImage must already be
// resident (see satimage.LoadImageAndMetadata), no I/O happens here. Pass a
// nil interp for the default bilinear filter.
//
// Note: we assume yaw in the satellite image matches yaw in the world
// frame, ie the calibration preserves angles. The sidecar's yaw_convention
// field records this (satimage.YawConventionWorld); it is not validated at
// runtime.
func MakeSatelliteRasterizer(
	rasterWidth int,
	rasterHeight int,
	pixelSize r2.Point,
	egoCenter r2.Point,
	mapImage *image.NRGBA,
	mapToSat mgl64.Mat4,
	interp draw.Interpolator,
) *SatelliteRasterizer {
	if interp == nil {
		interp = satimage.DefaultInterpolation
	}

	// The calibration's first two rows scale world meters to satellite
	// pixels, so their inverted norms are the meters spanned per pixel
	row0 := mapToSat.Row(0)
	row1 := mapToSat.Row(1)
	norm0 := math.Sqrt(row0[0]*row0[0] + row0[1]*row0[1] + row0[2]*row0[2])
	norm1 := math.Sqrt(row1[0]*row1[0] + row1[1]*row1[1] + row1[2]*row1[2])
	mapPixelScale := (1/norm0 + 1/norm1) / 2

	return &SatelliteRasterizer{
		rasterWidth:   rasterWidth,
		rasterHeight:  rasterHeight,
		pixelSize:     pixelSize,
		egoCenter:     egoCenter,
		mapImage:      mapImage,
		mapToSat:      mapToSat,
		interp:        interp,
		mapPixelScale: mapPixelScale,
	}
}

// MapPixelScale - meters per satellite image pixel, as cached at construction
func (r *SatelliteRasterizer) MapPixelScale() float64 {
	return r.mapPixelScale
}

// Rasterize - produces the satellite crop for the most recent history
// frame. With a nil agent the crop is centered per the ego's recorded pose,
// otherwise per the agent's centroid and yaw (using the ego's elevation for
// that frame, agents don't carry one).
func (r *SatelliteRasterizer) Rasterize(history []Frame, historyAgents [][]Agent, agent *Agent) (*FloatImage, error) {
	if len(history) == 0 {
		return nil, errors.New("rasterize requires at least one history frame")
	}

	var translation r3.Vector
	var yaw float64

	if agent == nil {
		translation = history[0].EgoTranslation
		yaw = geom.YawFromRotation(history[0].EgoRotation)
	} else {
		translation = r3.Vector{X: agent.Centroid.X, Y: agent.Centroid.Y, Z: history[0].EgoTranslation.Z}
		yaw = agent.Yaw
	}

	worldToRaster := geom.WorldToRasterMatrix(r.rasterWidth, r.rasterHeight, r.pixelSize, translation, yaw, r.egoCenter)

	// Find the world point that lands at the raster's midpoint. This is the
	// raster center, NOT the ego anchor point - the crop primitive works in
	// center terms while the ego anchor only enters through the matrix, so
	// the two only coincide for egoCenter (0.5, 0.5).
	rasterToWorld, err := geom.InvertMat3(worldToRaster)
	if err != nil {
		return nil, err
	}

	rasterCenter := r2.Point{X: float64(r.rasterWidth) * 0.5, Y: float64(r.rasterHeight) * 0.5}
	worldCenter := geom.TransformPoint2(rasterToWorld, rasterCenter)

	// Take that world point (with the pose's elevation re-appended) into
	// satellite pixel space through the calibration transform
	satCenter := geom.TransformPoint3(r.mapToSat, r3.Vector{X: worldCenter.X, Y: worldCenter.Y, Z: translation.Z})

	// The yaw is negated going into the crop. This compensates for the
	// coordinate frames of the source data and was established empirically,
	// preserve it as-is rather than re-deriving.
	satCrop := satimage.CropScaled(
		r.mapImage,
		r.rasterWidth,
		r.rasterHeight,
		r2.Point{X: satCenter.X, Y: satCenter.Y},
		-yaw,
		r.pixelSize,
		r.mapPixelScale,
		r.interp,
	)

	// Flip the Y axis, world Y+ should sit to the left of the agent. Same
	// story as the yaw negation above: an inherited convention, kept as-is.
	satCrop = imaging.FlipV(satCrop)

	return MakeFloatImageFromNRGBA(satCrop), nil
}

// ToRGB - scales a rasterized [0,1] float image back to 8-bit for
// visualization. Stateless, the inverse of the normalization Rasterize
// applies.
func (r *SatelliteRasterizer) ToRGB(img *FloatImage) *image.NRGBA {
	return ToRGBImage(img)
}
