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
	"errors"
	"fmt"
)

////////////////////////////////////////////////////////////////////////////////////////////////////////////
// Neater error handling

// Callers decide whether to skip a sample, substitute a blank raster or abort
// a whole batch, so they need to branch on what went wrong without string
// matching. Each error we hand back carries one of these kinds.

type ErrorKind int

const (
	// KindNotFound - an asset (image or its metadata sidecar) is missing or unreadable
	KindNotFound ErrorKind = iota

	// KindGeometry - a transform computation failed, eg inverting a singular matrix
	KindGeometry ErrorKind = iota

	// KindBounds - a coordinate landed outside the region an operation can service
	KindBounds ErrorKind = iota
)

var kindName = map[ErrorKind]string{
	KindNotFound: "not-found",
	KindGeometry: "geometry",
	KindBounds:   "bounds",
}

// Error represents an error with an associated kind. It embeds the
// built-in error interface.
type Error interface {
	error
	Kind() ErrorKind
}

// KindError represents an error with an associated kind
type KindError struct {
	ErrKind ErrorKind
	Err     error
}

// Allows KindError to satisfy the error interface.
func (ke KindError) Error() string {
	return ke.Err.Error()
}

// Kind - Returns the error kind
func (ke KindError) Kind() ErrorKind {
	return ke.ErrKind
}

func (ke KindError) Unwrap() error {
	return ke.Err
}

// Some common errors
func MakeNotFoundError(ID string) KindError {
	return KindError{
		ErrKind: KindNotFound,
		Err:     fmt.Errorf("%v not found", ID),
	}
}

func MakeGeometryError(what string, err error) KindError {
	return KindError{
		ErrKind: KindGeometry,
		Err:     fmt.Errorf("%v: %v", what, err),
	}
}

func MakeBoundsError(what string) KindError {
	return KindError{
		ErrKind: KindBounds,
		Err:     fmt.Errorf("%v out of bounds", what),
	}
}

// IsKind - checks if err (anywhere in its wrap chain) carries the given kind
func IsKind(err error, kind ErrorKind) bool {
	var ke KindError
	if errors.As(err, &ke) {
		return ke.ErrKind == kind
	}
	return false
}

// KindName - printable name for a kind, for log messages
func KindName(kind ErrorKind) string {
	return kindName[kind]
}
