// Copyright (c) 2019-2024 The synxd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package lightzerocoin

import (
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/syndicateltd/synxd/zerocoin"
	"github.com/syndicateltd/synxd/zerocoin/mintdb"
)

// ErrorCode identifies why a witness could not be produced.
type ErrorCode int

const (
	// NotEnoughMints indicates too few other coins of the denomination
	// were minted between the mint and target heights for the witness to
	// hide the coin.
	NotEnoughMints ErrorCode = 0

	// NonDetermined indicates the witness could not be computed for any
	// other reason.
	NonDetermined ErrorCode = 1
)

// Map of ErrorCode values back to their constant names for pretty printing.
var errorCodeStrings = map[ErrorCode]string{
	NotEnoughMints: "NOT_ENOUGH_MINTS",
	NonDetermined:  "NON_DETERMINED",
}

// String returns the ErrorCode as a human-readable name.
func (e ErrorCode) String() string {
	if s := errorCodeStrings[e]; s != "" {
		return s
	}
	return fmt.Sprintf("Unknown ErrorCode (%d)", int(e))
}

// WitnessError is the error delivered for a request that could not be
// served.  Height is the block the worker stopped at.
type WitnessError struct {
	Code        ErrorCode
	Height      int32
	Description string
}

// Error satisfies the error interface and prints human-readable errors.
func (e *WitnessError) Error() string {
	return fmt.Sprintf("%v at height %d: %s", e.Code, e.Height,
		e.Description)
}

// witnessError creates a WitnessError given a set of arguments.
func witnessError(c ErrorCode, height int32, desc string) *WitnessError {
	return &WitnessError{Code: c, Height: height, Description: desc}
}

// IsWitnessErrorCode returns whether err is a WitnessError with the given
// code.
func IsWitnessErrorCode(err error, c ErrorCode) bool {
	var werr *WitnessError
	return errors.As(err, &werr) && werr.Code == c
}

// WitnessRequest asks for a membership witness of the coin minted at
// MintHeight, valid against the accumulator after TargetHeight.
type WitnessRequest struct {
	CoinID       chainhash.Hash
	Denomination zerocoin.Denomination
	MintHeight   int32
	TargetHeight int32

	// Seq is the arrival order assigned when the request is enqueued.
	Seq uint64

	queued bool
	result chan *WitnessResult
}

// NewWitnessRequest returns a request ready to be enqueued.  Requests are
// single use.
func NewWitnessRequest(coinID chainhash.Hash, denom zerocoin.Denomination,
	mintHeight, targetHeight int32) *WitnessRequest {

	return &WitnessRequest{
		CoinID:       coinID,
		Denomination: denom,
		MintHeight:   mintHeight,
		TargetHeight: targetHeight,
		result:       make(chan *WitnessResult, 1),
	}
}

// Result returns the channel the result is delivered on.  The channel is
// closed after delivery, or without a value when the request is dropped on
// shutdown.
func (r *WitnessRequest) Result() <-chan *WitnessResult {
	return r.result
}

// String returns the request in a form suitable for logging.
func (r *WitnessRequest) String() string {
	return fmt.Sprintf("witness request %d (coin %v, %v, mint %d, target %d)",
		r.Seq, r.CoinID, r.Denomination, r.MintHeight, r.TargetHeight)
}

// deliver sends the result and closes the channel.
func (r *WitnessRequest) deliver(result *WitnessResult) {
	r.result <- result
	close(r.result)
}

// abandon closes the channel without a result.
func (r *WitnessRequest) abandon() {
	close(r.result)
}

// WitnessResult is the outcome of a request.  Err is nil and Witness is set
// when the witness was computed.
type WitnessResult struct {
	Request *WitnessRequest

	// TargetHeight is the height the witness is valid at.  It is lower
	// than the requested one when the request crossed the accumulator
	// version switch.
	TargetHeight int32

	Witness     *zerocoin.Witness
	Accumulator *zerocoin.Accumulator
	MintProof   *mintdb.MintProof

	// Work is the number of blocks replayed.
	Work int

	Err error
}
