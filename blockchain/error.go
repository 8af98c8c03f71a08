// Copyright (c) 2014-2016 The btcsuite developers
// Copyright (c) 2019-2024 The synxd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"fmt"
)

// ErrorCode identifies a kind of error.
type ErrorCode int

// These constants are used to identify a specific RuleError.
const (
	// ErrBadCheckpoint indicates a block that is expected to be at a
	// checkpoint height does not match the expected one.
	ErrBadCheckpoint ErrorCode = iota

	// ErrForkTooOld indicates a block is attempting to fork the block chain
	// before the most recent checkpoint.
	ErrForkTooOld

	// ErrReorgTooDeep indicates a reorganization would disconnect more
	// blocks than the network allows.
	ErrReorgTooDeep

	// ErrStakeTooYoung indicates a staking input has not reached the
	// minimum age or depth required to stake.
	ErrStakeTooYoung

	// ErrZerocoinStakeTooShallow indicates a zerocoin staking input has not
	// reached the depth required to stake.
	ErrZerocoinStakeTooShallow

	// ErrMissingBlockSignature indicates a proof-of-stake block does not
	// carry a signature.
	ErrMissingBlockSignature

	// ErrBadBlockSignature indicates the block signature does not verify
	// against the staking key.
	ErrBadBlockSignature

	// ErrBadStakeKey indicates the staking key of a block cannot be parsed
	// or is not the key paid by its coinstake output.
	ErrBadStakeKey

	// ErrTimeTooNew indicates the time is too far in the future as compared
	// the current time.
	ErrTimeTooNew

	// numErrorCodes is the maximum error code number used in tests.
	numErrorCodes
)

// Map of ErrorCode values back to their constant names for pretty printing.
var errorCodeStrings = map[ErrorCode]string{
	ErrBadCheckpoint:           "ErrBadCheckpoint",
	ErrForkTooOld:              "ErrForkTooOld",
	ErrReorgTooDeep:            "ErrReorgTooDeep",
	ErrStakeTooYoung:           "ErrStakeTooYoung",
	ErrZerocoinStakeTooShallow: "ErrZerocoinStakeTooShallow",
	ErrMissingBlockSignature:   "ErrMissingBlockSignature",
	ErrBadBlockSignature:       "ErrBadBlockSignature",
	ErrBadStakeKey:             "ErrBadStakeKey",
	ErrTimeTooNew:              "ErrTimeTooNew",
}

// String returns the ErrorCode as a human-readable name.
func (e ErrorCode) String() string {
	if s := errorCodeStrings[e]; s != "" {
		return s
	}
	return fmt.Sprintf("Unknown ErrorCode (%d)", int(e))
}

// RuleError identifies a rule violation.  It is used to indicate that
// processing of a block or transaction failed due to one of the many validation
// rules.  The caller can use type assertions to determine if a failure was
// specifically due to a rule violation and access the ErrorCode field to
// ascertain the specific reason for the rule violation.
type RuleError struct {
	ErrorCode   ErrorCode // Describes the kind of error
	Description string    // Human readable description of the issue
}

// Error satisfies the error interface and prints human-readable errors.
func (e RuleError) Error() string {
	return e.Description
}

// ruleError creates an RuleError given a set of arguments.
func ruleError(c ErrorCode, desc string) RuleError {
	return RuleError{ErrorCode: c, Description: desc}
}

// IsErrorCode returns whether err is a RuleError with the given code.
func IsErrorCode(err error, c ErrorCode) bool {
	rerr, ok := err.(RuleError)
	return ok && rerr.ErrorCode == c
}
