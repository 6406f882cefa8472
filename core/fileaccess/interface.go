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

package fileaccess

import "path"

// Generic interface for reading/writing map assets. We could have used OS
// level things directly but base imagery lives in AWS S3 in deployed
// pipelines and on local disk in tests and tools, so we code against this
// interface and can implement it any way we like.

// Besides just needing a path, we may need a drive or bucket or account
// id at the start of a path.

type FileAccess interface {
	ListObjects(bucket string, prefix string) ([]string, error)

	ObjectExists(bucket string, path string) (bool, error)

	ReadObject(bucket string, path string) ([]byte, error)
	WriteObject(bucket string, path string, data []byte) error

	ReadJSON(bucket string, jsonPath string, itemsPtr interface{}, emptyIfNotFound bool) error
	WriteJSON(bucket string, jsonPath string, itemsPtr interface{}) error

	IsNotFoundError(err error) bool
}

// SidecarKey - The metadata sidecar for an asset is the same key with the
// extension replaced by .json, eg maps/area51.png -> maps/area51.json
func SidecarKey(assetKey string) string {
	ext := path.Ext(assetKey)
	return assetKey[0:len(assetKey)-len(ext)] + ".json"
}
