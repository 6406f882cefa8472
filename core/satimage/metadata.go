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
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// YawConventionWorld - declares that directions in the satellite image's
// pixel space are at the same yaw angle as the world directions they map
// from, ie the calibration preserves angles (no mirroring). The rasterizer
// assumes this convention; it is recorded in the sidecar so calibration
// fixtures that violate it can be identified rather than silently skewing
// output.
const YawConventionWorld = "world"

// Metadata - parsed from the JSON sidecar file that accompanies every
// satellite base image
type Metadata struct {
	// 4x4 row-major transform taking 3D map/world coordinates to satellite
	// image pixel coordinates
	MapToSat [][]float64 `json:"map_to_sat"`

	// See YawConventionWorld. Empty is treated as "world".
	YawConvention string `json:"yaw_convention,omitempty"`
}

// MapToSatMatrix - Returns the calibration transform as a matrix, checking
// the sidecar actually contained a 4x4
func (m *Metadata) MapToSatMatrix() (mgl64.Mat4, error) {
	if len(m.MapToSat) != 4 {
		return mgl64.Mat4{}, fmt.Errorf("map_to_sat expected 4 rows, got %v", len(m.MapToSat))
	}

	rows := [4]mgl64.Vec4{}
	for i, row := range m.MapToSat {
		if len(row) != 4 {
			return mgl64.Mat4{}, fmt.Errorf("map_to_sat row %v expected 4 values, got %v", i, len(row))
		}
		rows[i] = mgl64.Vec4{row[0], row[1], row[2], row[3]}
	}

	return mgl64.Mat4FromRows(rows[0], rows[1], rows[2], rows[3]), nil
}
