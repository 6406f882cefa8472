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
	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
)

// Frame - one recorded timestep of the ego vehicle. History slices handed to
// Rasterize are ordered most-recent-first, so index 0 is the current frame.
type Frame struct {
	TimestampNS uint64

	// Ego position in world metric coordinates
	EgoTranslation r3.Vector

	// Ego orientation as a 3x3 rotation matrix (world frame)
	EgoRotation mgl64.Mat3
}

// Agent - one tracked agent observed at a timestep
type Agent struct {
	TrackID uint64

	// 2D centroid in world metric coordinates. Tracked agents carry no
	// elevation of their own, the ego's elevation for the same frame is
	// used when one is needed.
	Centroid r2.Point

	// Bounding box extent in meters (length, width, height)
	Extent r3.Vector

	// Heading, radians, CCW positive about +z
	Yaw float64
}
