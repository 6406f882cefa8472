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

// Affine helpers shared by the rasterizers. World coordinates are metric,
// right handed, yaw is CCW positive about +z. Raster coordinates are pixels
// with +x right and +y down.
package geom

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"

	"github.com/satraster/core/core/errorwithkind"
)

// YawFromRotation - recovers the yaw angle (radians) of a 3x3 rotation
// matrix, ignoring any roll/pitch components
func YawFromRotation(rot mgl64.Mat3) float64 {
	return math.Atan2(rot.At(1, 0), rot.At(0, 0))
}

// RotationFromYaw - rotation matrix about +z for the given yaw. Mostly used
// by tests and fixtures building ego frames.
func RotationFromYaw(yaw float64) mgl64.Mat3 {
	return mgl64.HomogRotate2D(yaw)
}

// TransformPoint2 - applies a 3x3 homogeneous transform to a 2D point,
// including the projective divide
func TransformPoint2(m mgl64.Mat3, pt r2.Point) r2.Point {
	v := m.Mul3x1(mgl64.Vec3{pt.X, pt.Y, 1})
	return r2.Point{X: v[0] / v[2], Y: v[1] / v[2]}
}

// TransformPoint3 - applies a 4x4 homogeneous transform to a 3D point,
// including the projective divide
func TransformPoint3(m mgl64.Mat4, pt r3.Vector) r3.Vector {
	v := m.Mul4x1(mgl64.Vec4{pt.X, pt.Y, pt.Z, 1})
	return r3.Vector{X: v[0] / v[3], Y: v[1] / v[3], Z: v[2] / v[3]}
}

// WorldToRasterMatrix - builds the transform taking 3D world points (their
// xy, this matrix is 2D homogeneous) into output raster pixels such that:
//   - the given translation lands at rasterWidth*egoCenter.X, rasterHeight*egoCenter.Y
//   - the forward direction at the given yaw points right (+x) in the raster
//   - one raster pixel spans pixelSize meters on each axis
func WorldToRasterMatrix(rasterWidth int, rasterHeight int, pixelSize r2.Point, translation r3.Vector, yaw float64, egoCenter r2.Point) mgl64.Mat3 {
	centerPixels := r2.Point{X: float64(rasterWidth) * egoCenter.X, Y: float64(rasterHeight) * egoCenter.Y}

	toCenter := mgl64.Translate2D(centerPixels.X, centerPixels.Y)
	scale := mgl64.Scale2D(1.0/pixelSize.X, 1.0/pixelSize.Y)
	alignForward := mgl64.HomogRotate2D(-yaw)
	toOrigin := mgl64.Translate2D(-translation.X, -translation.Y)

	return toCenter.Mul3(scale).Mul3(alignForward).Mul3(toOrigin)
}

// We treat determinants below this as singular. Raster matrices scale world
// meters to pixels so legitimate determinants are nowhere near this small.
const minInvertibleDet = 1e-12

// InvertMat3 - inverts a 3x3 matrix, failing with a geometry-kind error on a
// singular (or numerically near-singular) matrix rather than silently
// returning a zero matrix like mgl64's Inv does
func InvertMat3(m mgl64.Mat3) (mgl64.Mat3, error) {
	det := m.Det()
	if math.Abs(det) < minInvertibleDet {
		return mgl64.Mat3{}, errorwithkind.MakeGeometryError("invert matrix", errSingular{det: det})
	}
	return m.Inv(), nil
}

type errSingular struct {
	det float64
}

func (e errSingular) Error() string {
	return fmt.Sprintf("matrix is singular, det=%g", e.det)
}
