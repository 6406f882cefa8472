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

package errorwithkind

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestKindErrors(t *testing.T) {
	err := MakeNotFoundError("maps/area.png")
	assert.Equal(t, "maps/area.png not found", err.Error())
	assert.True(t, IsKind(err, KindNotFound))
	assert.False(t, IsKind(err, KindGeometry))

	geomErr := MakeGeometryError("invert matrix", errors.New("matrix is singular"))
	assert.True(t, IsKind(geomErr, KindGeometry))
	assert.Equal(t, "invert matrix: matrix is singular", geomErr.Error())

	boundsErr := MakeBoundsError("crop center")
	assert.True(t, IsKind(boundsErr, KindBounds))
}

// Kinds must survive being wrapped with extra context on the way up
func TestKindSurvivesWrapping(t *testing.T) {
	err := MakeNotFoundError("maps/area.json")
	wrapped := errors.Wrap(err, "loading calibration")

	assert.True(t, IsKind(wrapped, KindNotFound))
	assert.False(t, IsKind(wrapped, KindBounds))
}

func TestKindName(t *testing.T) {
	assert.Equal(t, "not-found", KindName(KindNotFound))
	assert.Equal(t, "geometry", KindName(KindGeometry))
	assert.Equal(t, "bounds", KindName(KindBounds))
}

func TestIsKindNonKindError(t *testing.T) {
	assert.False(t, IsKind(errors.New("plain"), KindNotFound))
}
