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
	"math"
)

// FloatImageChannels - rasterized model inputs are 3 channel RGB
const FloatImageChannels = 3

// FloatImage - a raster with float32 channel values in [0, 1], the form
// model input channels are consumed in. Row-major, channel-interleaved.
type FloatImage struct {
	Width  int
	Height int
	Pix    []float32
}

// MakeFloatImage - allocates a zeroed float image
func MakeFloatImage(width int, height int) *FloatImage {
	return &FloatImage{
		Width:  width,
		Height: height,
		Pix:    make([]float32, width*height*FloatImageChannels),
	}
}

// At - reads channel ch (0=R, 1=G, 2=B) at pixel x,y
func (f *FloatImage) At(x int, y int, ch int) float32 {
	return f.Pix[(y*f.Width+x)*FloatImageChannels+ch]
}

// Set - writes channel ch at pixel x,y
func (f *FloatImage) Set(x int, y int, ch int, v float32) {
	f.Pix[(y*f.Width+x)*FloatImageChannels+ch] = v
}

// MakeFloatImageFromNRGBA - normalizes 8-bit channel values to [0, 1]
// floats. Alpha is dropped, crops are opaque imagery (zero-filled border
// pixels normalize to 0 either way).
func MakeFloatImageFromNRGBA(img *image.NRGBA) *FloatImage {
	w := img.Bounds().Dx()
	h := img.Bounds().Dy()
	result := MakeFloatImage(w, h)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			srcIdx := img.PixOffset(img.Bounds().Min.X+x, img.Bounds().Min.Y+y)
			dstIdx := (y*w + x) * FloatImageChannels
			result.Pix[dstIdx] = float32(img.Pix[srcIdx]) / 255
			result.Pix[dstIdx+1] = float32(img.Pix[srcIdx+1]) / 255
			result.Pix[dstIdx+2] = float32(img.Pix[srcIdx+2]) / 255
		}
	}

	return result
}

// ToRGBImage - the inverse of MakeFloatImageFromNRGBA: scales [0, 1] channel
// values back to 8-bit for visualisation. Values are clamped, so images that
// were never normalized (or were modified) still produce something viewable.
func ToRGBImage(img *FloatImage) *image.NRGBA {
	result := image.NewNRGBA(image.Rect(0, 0, img.Width, img.Height))

	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			result.SetNRGBA(x, y, color.NRGBA{
				R: floatTo8Bit(img.At(x, y, 0)),
				G: floatTo8Bit(img.At(x, y, 1)),
				B: floatTo8Bit(img.At(x, y, 2)),
				A: 255,
			})
		}
	}

	return result
}

func floatTo8Bit(v float32) uint8 {
	scaled := math.Round(float64(v) * 255)
	if scaled < 0 {
		return 0
	}
	if scaled > 255 {
		return 255
	}
	return uint8(scaled)
}
