// Copyright (c) 2013-2017 The btcsuite developers
// Copyright (c) 2021 The utreexo developers
// Copyright (c) 2019-2024 The synxd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package zerocoin

import "fmt"

// AccumulatorError describes an issue with a coin, an accumulator or a
// witness.
//
// This provides a mechanism for the caller to type assert the error to
// differentiate between accumulator failures and general io errors such as
// io.EOF.
type AccumulatorError struct {
	Func        string // Function name
	Description string // Human readable description of the issue
}

// Error satisfies the error interface and prints human-readable errors.
func (e *AccumulatorError) Error() string {
	if e.Func != "" {
		return fmt.Sprintf("%v: %v", e.Func, e.Description)
	}
	return e.Description
}

// accumulatorError creates an error for the given function and description.
func accumulatorError(f string, desc string) *AccumulatorError {
	return &AccumulatorError{Func: f, Description: desc}
}
