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

package awsutil

import (
	"errors"
	"fmt"
	"sync"

	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
)

// A nil queued GetObject output replays as the real "no such key" AWS error
// so code being tested sees what S3 would actually send back.
func makeNoSuchKeyError(name string) error {
	return awserr.New(s3.ErrCodeNoSuchKey, ErrReturningError+name, nil)
}

// MockS3Client - mock S3 client for unit tests. Expected requests are checked
// in order against what the code under test sends, and queued outputs are
// replayed one per request. Don't forget to call FinishTest() at the end of
// your test to check that all calls to S3 were made, and there were no
// unexpected calls!
type MockS3Client struct {
	mutex sync.Mutex

	s3iface.S3API

	// Expected requests
	ExpListObjectsV2Input []s3.ListObjectsV2Input
	ExpGetObjectInput     []s3.GetObjectInput
	ExpPutObjectInput     []s3.PutObjectInput
	ExpHeadObjectInput    []s3.HeadObjectInput

	// Responses replayed as each request comes in. A nil entry makes that
	// call return an error, which is how tests simulate missing objects.
	QueuedListObjectsV2Output []*s3.ListObjectsV2Output
	QueuedGetObjectOutput     []*s3.GetObjectOutput
	QueuedPutObjectOutput     []*s3.PutObjectOutput
	QueuedHeadObjectOutput    []*s3.HeadObjectOutput
}

const ErrNoMoreInputsExpected = "No more inputs expected for "
const ErrWrongInput = "Incorrect input in "
const ErrNothingToReturn = "Nothing to return from "
const ErrReturningError = "Returning error from "

// NOTE: This function MUST be called at the end of a unit test/example test. Use defer when declaring MockS3Client!
func (m *MockS3Client) FinishTest() error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	err := m.getFinishTestResult()

	// If we found something unexpected, print an error so any example tests get this in their output
	// Unit tests which aren't example based will still get our return value
	if err != nil {
		fmt.Println(err)
	}

	return err
}

func (m *MockS3Client) getFinishTestResult() error {
	// Expecting no inputs left
	if len(m.ExpListObjectsV2Input) > 0 {
		return errors.New("Test expected more ListObjectsV2 calls to func")
	}
	if len(m.ExpGetObjectInput) > 0 {
		return errors.New("Test expected more GetObject calls to func")
	}
	if len(m.ExpPutObjectInput) > 0 {
		return errors.New("Test expected more PutObject calls to func")
	}
	if len(m.ExpHeadObjectInput) > 0 {
		return errors.New("Test expected more HeadObject calls to func")
	}

	// Expecting nothing left to output
	if len(m.QueuedListObjectsV2Output) > 0 {
		return errors.New("Remaining output ListObjectsV2 for func")
	}
	if len(m.QueuedGetObjectOutput) > 0 {
		return errors.New("Remaining output GetObject for func")
	}
	if len(m.QueuedPutObjectOutput) > 0 {
		return errors.New("Remaining output PutObject for func")
	}
	if len(m.QueuedHeadObjectOutput) > 0 {
		return errors.New("Remaining output HeadObject for func")
	}

	return nil
}

func (m *MockS3Client) ListObjectsV2(input *s3.ListObjectsV2Input) (*s3.ListObjectsV2Output, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	name := "ListObjectsV2"

	if len(m.ExpListObjectsV2Input) <= 0 {
		return nil, errors.New(ErrNoMoreInputsExpected + name)
	}

	expStr := m.ExpListObjectsV2Input[0].String()
	m.ExpListObjectsV2Input = m.ExpListObjectsV2Input[1:]

	inpStr := input.String()
	if expStr != inpStr {
		return nil, fmt.Errorf("%v expected: \"%v\" S3 recvd: \"%v\"", ErrWrongInput+name, expStr, inpStr)
	}

	if len(m.QueuedListObjectsV2Output) <= 0 {
		return nil, errors.New(ErrNothingToReturn + name)
	}

	result := m.QueuedListObjectsV2Output[0]
	m.QueuedListObjectsV2Output = m.QueuedListObjectsV2Output[1:]

	if result == nil {
		return nil, errors.New(ErrReturningError + name)
	}

	return result, nil
}

func (m *MockS3Client) GetObject(input *s3.GetObjectInput) (*s3.GetObjectOutput, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	name := "GetObject"

	if len(m.ExpGetObjectInput) <= 0 {
		return nil, errors.New(ErrNoMoreInputsExpected + name)
	}

	expStr := m.ExpGetObjectInput[0].String()
	m.ExpGetObjectInput = m.ExpGetObjectInput[1:]

	inpStr := input.String()
	if expStr != inpStr {
		return nil, fmt.Errorf("%v expected: \"%v\" S3 recvd: \"%v\"", ErrWrongInput+name, expStr, inpStr)
	}

	if len(m.QueuedGetObjectOutput) <= 0 {
		return nil, errors.New(ErrNothingToReturn + name)
	}

	result := m.QueuedGetObjectOutput[0]
	m.QueuedGetObjectOutput = m.QueuedGetObjectOutput[1:]

	if result == nil {
		return nil, makeNoSuchKeyError(name)
	}

	return result, nil
}

func (m *MockS3Client) PutObject(input *s3.PutObjectInput) (*s3.PutObjectOutput, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	name := "PutObject"

	if len(m.ExpPutObjectInput) <= 0 {
		return nil, errors.New(ErrNoMoreInputsExpected + name)
	}

	expStr := m.ExpPutObjectInput[0].String()
	m.ExpPutObjectInput = m.ExpPutObjectInput[1:]

	inpStr := input.String()
	if expStr != inpStr {
		return nil, fmt.Errorf("%v expected: \"%v\" S3 recvd: \"%v\"", ErrWrongInput+name, expStr, inpStr)
	}

	if len(m.QueuedPutObjectOutput) <= 0 {
		return nil, errors.New(ErrNothingToReturn + name)
	}

	result := m.QueuedPutObjectOutput[0]
	m.QueuedPutObjectOutput = m.QueuedPutObjectOutput[1:]

	if result == nil {
		return nil, errors.New(ErrReturningError + name)
	}

	return result, nil
}

func (m *MockS3Client) HeadObject(input *s3.HeadObjectInput) (*s3.HeadObjectOutput, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	name := "HeadObject"

	if len(m.ExpHeadObjectInput) <= 0 {
		return nil, errors.New(ErrNoMoreInputsExpected + name)
	}

	expStr := m.ExpHeadObjectInput[0].String()
	m.ExpHeadObjectInput = m.ExpHeadObjectInput[1:]

	inpStr := input.String()
	if expStr != inpStr {
		return nil, fmt.Errorf("%v expected: \"%v\" S3 recvd: \"%v\"", ErrWrongInput+name, expStr, inpStr)
	}

	if len(m.QueuedHeadObjectOutput) <= 0 {
		return nil, errors.New(ErrNothingToReturn + name)
	}

	result := m.QueuedHeadObjectOutput[0]
	m.QueuedHeadObjectOutput = m.QueuedHeadObjectOutput[1:]

	if result == nil {
		return nil, errors.New(ErrReturningError + name)
	}

	return result, nil
}
