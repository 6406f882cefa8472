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

import (
	"encoding/json"
	"fmt"
	"strings"
)

// In-memory implementation of file access for unit tests. Objects are held
// in a map keyed bucket/path. Not safe for concurrent writes, tests are
// single threaded.
type MemoryAccess struct {
	objects map[string][]byte
}

func MakeMemoryAccess() *MemoryAccess {
	return &MemoryAccess{objects: map[string][]byte{}}
}

type memNotFoundError struct {
	key string
}

func (e memNotFoundError) Error() string {
	return fmt.Sprintf("object not found: %v", e.key)
}

func (m *MemoryAccess) ListObjects(bucket string, prefix string) ([]string, error) {
	result := []string{}
	lookFor := bucket + "/" + prefix
	for key := range m.objects {
		if strings.HasPrefix(key, lookFor) {
			result = append(result, strings.TrimPrefix(key, bucket+"/"))
		}
	}
	return result, nil
}

func (m *MemoryAccess) ObjectExists(bucket string, path string) (bool, error) {
	_, ok := m.objects[bucket+"/"+path]
	return ok, nil
}

func (m *MemoryAccess) ReadObject(bucket string, path string) ([]byte, error) {
	data, ok := m.objects[bucket+"/"+path]
	if !ok {
		return nil, memNotFoundError{key: bucket + "/" + path}
	}
	return data, nil
}

func (m *MemoryAccess) WriteObject(bucket string, path string, data []byte) error {
	m.objects[bucket+"/"+path] = data
	return nil
}

func (m *MemoryAccess) ReadJSON(bucket string, jsonPath string, itemsPtr interface{}, emptyIfNotFound bool) error {
	fileData, err := m.ReadObject(bucket, jsonPath)
	if err != nil {
		if emptyIfNotFound && m.IsNotFoundError(err) {
			return nil
		}
		return err
	}

	return json.Unmarshal(fileData, itemsPtr)
}

func (m *MemoryAccess) WriteJSON(bucket string, jsonPath string, itemsPtr interface{}) error {
	fileData, err := json.MarshalIndent(itemsPtr, "", prettyPrintIndentForJSON)
	if err != nil {
		return err
	}

	return m.WriteObject(bucket, jsonPath, fileData)
}

func (m *MemoryAccess) IsNotFoundError(err error) bool {
	_, ok := err.(memNotFoundError)
	return ok
}
