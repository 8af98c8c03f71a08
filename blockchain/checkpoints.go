// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2019-2024 The synxd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"fmt"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/syndicateltd/synxd/chaincfg"
)

// sigCheckVerificationFactor is how much more expensive a transaction after
// the last checkpoint is to verify than one before it, where signatures are
// not checked.
const sigCheckVerificationFactor = 5.0

// CheckCheckpoint returns a rule error when the given height is a checkpoint
// height and the hash does not match it.  Heights that are not checkpoints
// always pass.  A mismatch means the block is on a forged chain or belongs to
// another network and must never be accepted.
func CheckCheckpoint(params *chaincfg.Params, height int32, hash *chainhash.Hash) error {
	cp, ok := params.CheckpointByHeight(height)
	if !ok {
		return nil
	}
	if !cp.Hash.IsEqual(hash) {
		str := fmt.Sprintf("block at height %d does not match checkpoint "+
			"hash: got %s, expected %s", height, hash, cp.Hash)
		return ruleError(ErrBadCheckpoint, str)
	}
	return nil
}

// CheckForkBelowCheckpoint returns a rule error when a chain forking off the
// main chain at forkHeight would replace blocks at or below the latest
// checkpoint.
func CheckForkBelowCheckpoint(params *chaincfg.Params, forkHeight int32) error {
	cp := params.LatestCheckpoint()
	if cp == nil {
		return nil
	}
	if forkHeight < cp.Height {
		str := fmt.Sprintf("block at height %d forks the main chain "+
			"before the previous checkpoint at height %d", forkHeight,
			cp.Height)
		return ruleError(ErrForkTooOld, str)
	}
	return nil
}

// CheckReorganizationDepth returns a rule error when switching to a chain
// forking at forkHeight would disconnect more than MaxReorganizationDepth
// blocks from a main chain whose tip is at tipHeight.
func CheckReorganizationDepth(params *chaincfg.Params, tipHeight, forkHeight int32) error {
	if depth := tipHeight - forkHeight; depth > params.MaxReorganizationDepth {
		str := fmt.Sprintf("reorganization of %d blocks exceeds the "+
			"maximum depth of %d", depth, params.MaxReorganizationDepth)
		return ruleError(ErrReorgTooDeep, str)
	}
	return nil
}

// NextCheckpoint returns the next checkpoint after the passed height.  It
// returns nil when there is not one because the height is already later than
// the final checkpoint.
func NextCheckpoint(params *chaincfg.Params, height int32) *chaincfg.Checkpoint {
	checkpoints := params.Checkpoints
	if len(checkpoints) == 0 {
		return nil
	}

	// There is no next checkpoint if the height is already after the final
	// checkpoint.
	finalCheckpoint := &checkpoints[len(checkpoints)-1]
	if height >= finalCheckpoint.Height {
		return nil
	}

	// Find the next checkpoint.
	nextCheckpoint := finalCheckpoint
	for i := len(checkpoints) - 2; i >= 0; i-- {
		if height >= checkpoints[i].Height {
			break
		}
		nextCheckpoint = &checkpoints[i]
	}
	return nextCheckpoint
}

// GuessVerificationProgress estimates how much of the chain has been verified
// for a tip with the given timestamp and cumulative transaction count.  The
// result is between 0 and 1.  Transactions up to the last checkpoint count as
// one unit of work and later ones as sigCheckVerificationFactor units.
func GuessVerificationProgress(params *chaincfg.Params, tipTime time.Time,
	chainTxCount int64, now time.Time) float64 {

	data := params.CheckpointData
	lastTx := float64(data.TransactionsLastCheckpoint)
	txCount := float64(chainTxCount)
	daysSince := func(t time.Time) float64 {
		return now.Sub(t).Seconds() / 86400.0
	}

	var workBefore, workAfter float64
	if chainTxCount <= data.TransactionsLastCheckpoint {
		cheapAfter := lastTx - txCount
		expensiveAfter := daysSince(data.LastCheckpointTime) *
			data.TransactionsPerDay

		workBefore = txCount
		workAfter = cheapAfter + expensiveAfter*sigCheckVerificationFactor
	} else {
		expensiveBefore := txCount - lastTx
		expensiveAfter := daysSince(tipTime) * data.TransactionsPerDay

		workBefore = lastTx + expensiveBefore*sigCheckVerificationFactor
		workAfter = expensiveAfter * sigCheckVerificationFactor
	}
	if workAfter < 0 {
		workAfter = 0
	}

	total := workBefore + workAfter
	if total <= 0 {
		return 0
	}
	return workBefore / total
}

// Checkpoints applies the checkpoint rules of a network.  Disabled checkpoints
// accept every block, which is what --nocheckpoints selects.
type Checkpoints struct {
	params   *chaincfg.Params
	disabled bool
}

// NewCheckpoints returns the checkpoint rules of the given network.
func NewCheckpoints(params *chaincfg.Params, disabled bool) *Checkpoints {
	if disabled {
		log.Warnf("Checkpoints are disabled")
	}
	return &Checkpoints{params: params, disabled: disabled}
}

// Enabled returns whether the checkpoint rules are applied.
func (c *Checkpoints) Enabled() bool {
	return !c.disabled
}

// Check applies CheckCheckpoint unless checkpoints are disabled.
func (c *Checkpoints) Check(height int32, hash *chainhash.Hash) error {
	if c.disabled {
		return nil
	}
	err := CheckCheckpoint(c.params, height, hash)
	if err != nil {
		log.Errorf("Rejecting block %v: %v", hash, err)
	}
	return err
}

// CheckFork applies CheckForkBelowCheckpoint unless checkpoints are
// disabled.
func (c *Checkpoints) CheckFork(forkHeight int32) error {
	if c.disabled {
		return nil
	}
	return CheckForkBelowCheckpoint(c.params, forkHeight)
}

// Latest returns the most recent checkpoint, or nil when checkpoints are
// disabled or the network has none.
func (c *Checkpoints) Latest() *chaincfg.Checkpoint {
	if c.disabled {
		return nil
	}
	return c.params.LatestCheckpoint()
}

// Next returns the next checkpoint after the passed height.
func (c *Checkpoints) Next(height int32) *chaincfg.Checkpoint {
	if c.disabled {
		return nil
	}
	return NextCheckpoint(c.params, height)
}
