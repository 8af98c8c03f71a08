// Copyright (c) 2019-2024 The synxd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"fmt"
	"time"

	"github.com/syndicateltd/synxd/chaincfg"
)

// stakeMinAge is the age a staking input needs before stake modifier v2.
const stakeMinAge = time.Hour

// HasStakeMinAgeOrDepth returns whether an output created in the block at
// utxoHeight/utxoTime may stake in a block at contextHeight/contextTime.
//
// Before stake modifier v2 the output must be one hour old, except on the
// regression test network where any output may stake.  Once v2 is active the
// output must be at least StakeMinDepth blocks deep and time is ignored.
func HasStakeMinAgeOrDepth(params *chaincfg.Params, contextHeight int32,
	contextTime time.Time, utxoHeight int32, utxoTime time.Time) bool {

	if !params.IsStakeModifierV2(contextHeight) {
		if params.Network == chaincfg.RegTest {
			return true
		}
		return !utxoTime.Add(stakeMinAge).After(contextTime)
	}

	return contextHeight-utxoHeight >= params.StakeMinDepth
}

// CheckStakeInput returns a rule error when the staking input of a block does
// not satisfy HasStakeMinAgeOrDepth.
func CheckStakeInput(params *chaincfg.Params, contextHeight int32,
	contextTime time.Time, utxoHeight int32, utxoTime time.Time) error {

	if HasStakeMinAgeOrDepth(params, contextHeight, contextTime, utxoHeight,
		utxoTime) {

		return nil
	}

	var str string
	if params.IsStakeModifierV2(contextHeight) {
		str = fmt.Sprintf("stake input from height %d has depth %d at "+
			"height %d, minimum is %d", utxoHeight,
			contextHeight-utxoHeight, contextHeight, params.StakeMinDepth)
	} else {
		str = fmt.Sprintf("stake input from %v is younger than %v at %v",
			utxoTime, stakeMinAge, contextTime)
	}
	return ruleError(ErrStakeTooYoung, str)
}

// CheckZerocoinStakeDepth returns a rule error when a zerocoin staking input
// minted at mintHeight is not ZerocoinRequiredStakeDepth deep at
// contextHeight.
func CheckZerocoinStakeDepth(params *chaincfg.Params, contextHeight, mintHeight int32) error {
	depth := contextHeight - mintHeight
	if depth < params.ZerocoinRequiredStakeDepth {
		str := fmt.Sprintf("zerocoin stake minted at height %d has depth "+
			"%d, minimum is %d", mintHeight, depth,
			params.ZerocoinRequiredStakeDepth)
		return ruleError(ErrZerocoinStakeTooShallow, str)
	}
	return nil
}

// CheckBlockTime returns a rule error when a block stamped blockTime is
// further ahead of the adjusted network time than the network allows for
// its kind of block.
func CheckBlockTime(params *chaincfg.Params, height int32, blockTime, adjustedTime time.Time) error {
	drift := params.FutureTimeDrift(params.IsPoS(height))
	maxTime := adjustedTime.Add(drift)
	if blockTime.After(maxTime) {
		str := fmt.Sprintf("block timestamp of %v is too far in the "+
			"future (max %v)", blockTime, maxTime)
		return ruleError(ErrTimeTooNew, str)
	}
	return nil
}
