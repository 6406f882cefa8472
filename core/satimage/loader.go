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
	"bytes"
	"image"

	// Register the formats base imagery is delivered in
	_ "image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"

	"github.com/satraster/core/core/errorwithkind"
	"github.com/satraster/core/core/fileaccess"
)

// LoadImageAndMetadata - Loads a satellite base image from the given key and
// its metadata sidecar (same key with a .json extension). Pixels come back
// canonicalized to NRGBA channel order no matter what format the image was
// stored in. Fails with a not-found kind error if either file is absent or
// the image can't be decoded.
func LoadImageAndMetadata(fs fileaccess.FileAccess, bucket string, imageKey string) (*image.NRGBA, *Metadata, error) {
	imgData, err := fs.ReadObject(bucket, imageKey)
	if err != nil {
		if fs.IsNotFoundError(err) {
			return nil, nil, errorwithkind.MakeNotFoundError(imageKey)
		}
		return nil, nil, errors.Wrapf(err, "failed to read image %v", imageKey)
	}

	img, _, err := image.Decode(bytes.NewReader(imgData))
	if err != nil {
		// Undecodable imagery is treated the same as missing imagery
		return nil, nil, errorwithkind.KindError{
			ErrKind: errorwithkind.KindNotFound,
			Err:     errors.Wrapf(err, "failed to decode image %v", imageKey),
		}
	}

	metaKey := fileaccess.SidecarKey(imageKey)
	meta := &Metadata{}
	err = fs.ReadJSON(bucket, metaKey, meta, false)
	if err != nil {
		if fs.IsNotFoundError(err) {
			return nil, nil, errorwithkind.MakeNotFoundError(metaKey)
		}
		return nil, nil, errors.Wrapf(err, "failed to read metadata %v", metaKey)
	}

	return imaging.Clone(img), meta, nil
}
