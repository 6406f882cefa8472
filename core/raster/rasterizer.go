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

// Package raster turns recorded scenes into model input rasters. Each
// rasterizer produces one image channel set per timestep, re-centered and
// re-oriented around an agent so the model always sees a pose-invariant
// view: the agent sits at a configured anchor point and its forward heading
// points right.
package raster

import "image"

// Rasterizer - renders one timestep of a scene into a float image. If agent
// is nil the view is centered on the ego vehicle using the most recent
// history frame, otherwise on the given agent. historyAgents carries the
// tracked agents per history frame for rasterizers that draw them; layers
// that only need the pose ignore it.
type Rasterizer interface {
	Rasterize(history []Frame, historyAgents [][]Agent, agent *Agent) (*FloatImage, error)
	ToRGB(img *FloatImage) *image.NRGBA
}
