// Copyright (c) 2014-2016 The btcsuite developers
// Copyright (c) 2019-2024 The synxd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"errors"
	"testing"
)

// TestErrorCodeStringer tests the stringized output for the ErrorCode type.
func TestErrorCodeStringer(t *testing.T) {
	tests := []struct {
		in   ErrorCode
		want string
	}{
		{ErrBadCheckpoint, "ErrBadCheckpoint"},
		{ErrForkTooOld, "ErrForkTooOld"},
		{ErrReorgTooDeep, "ErrReorgTooDeep"},
		{ErrStakeTooYoung, "ErrStakeTooYoung"},
		{ErrZerocoinStakeTooShallow, "ErrZerocoinStakeTooShallow"},
		{ErrMissingBlockSignature, "ErrMissingBlockSignature"},
		{ErrBadBlockSignature, "ErrBadBlockSignature"},
		{ErrBadStakeKey, "ErrBadStakeKey"},
		{ErrTimeTooNew, "ErrTimeTooNew"},
		{0xffff, "Unknown ErrorCode (65535)"},
	}

	// Detect additional error codes that don't have the stringer added.
	if len(tests)-1 != int(numErrorCodes) {
		t.Errorf("It appears an error code was added without adding an " +
			"associated stringer test")
	}

	t.Logf("Running %d tests", len(tests))
	for i, test := range tests {
		result := test.in.String()
		if result != test.want {
			t.Errorf("String #%d\n got: %s want: %s", i, result,
				test.want)
			continue
		}
	}
}

// TestRuleError tests the error output for the RuleError type.
func TestRuleError(t *testing.T) {
	tests := []struct {
		in   RuleError
		want string
	}{
		{
			RuleError{Description: "duplicate block"},
			"duplicate block",
		},
		{
			RuleError{Description: "human-readable error"},
			"human-readable error",
		},
	}

	t.Logf("Running %d tests", len(tests))
	for i, test := range tests {
		result := test.in.Error()
		if result != test.want {
			t.Errorf("Error #%d\n got: %s want: %s", i, result,
				test.want)
			continue
		}
	}

	if IsErrorCode(errors.New("plain"), ErrBadCheckpoint) {
		t.Errorf("IsErrorCode matched a plain error")
	}
	if !IsErrorCode(ruleError(ErrForkTooOld, "old"), ErrForkTooOld) {
		t.Errorf("IsErrorCode did not match its own code")
	}
}
