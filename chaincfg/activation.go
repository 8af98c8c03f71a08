// Copyright (c) 2019-2024 The synxd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"time"

	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// IsPoS returns whether the block at the given height is a proof-of-stake
// block.
func (p *Params) IsPoS(height int32) bool {
	return height > p.LastPoWBlock
}

// IsStakeModifierV2 returns whether stake modifier v2 and depth based stake
// maturity are active at the given height.  The switch is inclusive.
func (p *Params) IsStakeModifierV2(height int32) bool {
	return height >= p.StakeModifierV2Height
}

// IsZerocoinActive returns whether zerocoin mints are accepted at the given
// height.
func (p *Params) IsZerocoinActive(height int32) bool {
	return height >= p.ZerocoinStartHeight
}

// IsZerocoinV2 returns whether the v2 accumulator is in force at the given
// height.
func (p *Params) IsZerocoinV2(height int32) bool {
	return height >= p.ZerocoinV2Height
}

// IsPublicSpendActive returns whether zerocoin spends must be public spends at
// the given height.
func (p *Params) IsPublicSpendActive(height int32) bool {
	return height >= p.PublicZerocoinSpendsHeight
}

// IsSerialRangeEnforced returns whether serials outside the allowed range are
// rejected at the given height.
func (p *Params) IsSerialRangeEnforced(height int32) bool {
	return height >= p.EnforceSerialRangeHeight
}

// IsInvalidUTXOEnforced returns whether the invalid outputs list is enforced
// at the given height.
func (p *Params) IsInvalidUTXOEnforced(height int32) bool {
	return height >= p.EnforceInvalidUTXOHeight
}

// IsFraudWindow returns whether the given height lies between the first block
// carrying bad serials and the accumulator recalculation.
func (p *Params) IsFraudWindow(height int32) bool {
	return height >= p.FirstFraudulentHeight &&
		height < p.RecalculateAccumulatorsHeight
}

// IsFakeSerialAffected returns whether the given height is at or below the
// end of the fake serial attack.  Networks that never saw the attack return
// false for every height.
func (p *Params) IsFakeSerialAffected(height int32) bool {
	return p.FakeSerialHeightEnd >= 0 && height <= p.FakeSerialHeightEnd
}

// MaxZerocoinSpends returns the maximum number of zerocoin inputs a
// transaction may carry at the given height.
func (p *Params) MaxZerocoinSpends(height int32) int {
	if p.IsPublicSpendActive(height) {
		return p.MaxZerocoinPublicSpendsPerTransaction
	}
	return p.MaxZerocoinSpendsPerTransaction
}

// FutureTimeDrift returns how far ahead of the adjusted time a block may be
// stamped.
func (p *Params) FutureTimeDrift(isPoS bool) time.Duration {
	if isPoS {
		return p.FutureTimeDriftPoS
	}
	return p.FutureTimeDriftPoW
}

// AccumulatorModulus returns the RSA modulus of the coin accumulator.  The v1
// accumulator read the modulus digits as hexadecimal, which is kept for
// coins minted before the v2 switch.
func (p *Params) AccumulatorModulus(v1 bool) (*big.Int, error) {
	base := 10
	if v1 {
		base = 16
	}
	modulus, ok := new(big.Int).SetString(p.ZerocoinModulus, base)
	if !ok || modulus.Sign() <= 0 {
		return nil, fmt.Errorf("invalid zerocoin modulus for %s", p.Name)
	}
	return modulus, nil
}

// SporkKeys returns the hex encoded keys that may sign a spork signed at
// signTime.  Once the old key is rejected only the new key is accepted.
// Between the enforcement of the new key and the rejection of the old one,
// sporks signed after the enforcement time must use the new key.
func (p *Params) SporkKeys(signTime time.Time) []string {
	if !signTime.Before(p.RejectOldSporkKeyTime) ||
		!signTime.Before(p.EnforceNewSporkKeyTime) ||
		p.SporkKey == p.SporkKeyOld {

		return []string{p.SporkKey}
	}
	return []string{p.SporkKey, p.SporkKeyOld}
}

// ParseSporkKeys parses the keys returned by SporkKeys.
func (p *Params) ParseSporkKeys(signTime time.Time) ([]*secp256k1.PublicKey, error) {
	keys := p.SporkKeys(signTime)
	parsed := make([]*secp256k1.PublicKey, 0, len(keys))
	for _, key := range keys {
		raw, err := hex.DecodeString(key)
		if err != nil {
			return nil, fmt.Errorf("spork key %q: %v", key, err)
		}
		pub, err := secp256k1.ParsePubKey(raw)
		if err != nil {
			return nil, fmt.Errorf("spork key %q: %v", key, err)
		}
		parsed = append(parsed, pub)
	}
	return parsed, nil
}

// ValidateAddressPrefixes checks that the addresses hard coded into the
// parameters decode with the network's address magics.
func (p *Params) ValidateAddressPrefixes() error {
	if p.ObfuscationPoolDummyAddress == "" {
		return nil
	}

	payload, version, err := base58.CheckDecode(p.ObfuscationPoolDummyAddress)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrBadAddressPrefix,
			p.ObfuscationPoolDummyAddress, err)
	}
	if version != p.PubKeyHashAddrID || len(payload) != 20 {
		return fmt.Errorf("%w: %s has version %d, want %d",
			ErrBadAddressPrefix, p.ObfuscationPoolDummyAddress, version,
			p.PubKeyHashAddrID)
	}
	return nil
}

// LatestCheckpoint returns the most recent checkpoint, or nil when the
// network has none.
func (p *Params) LatestCheckpoint() *Checkpoint {
	if len(p.Checkpoints) == 0 {
		return nil
	}
	return &p.Checkpoints[len(p.Checkpoints)-1]
}

// CheckpointByHeight returns the checkpoint at the given height, if any.
func (p *Params) CheckpointByHeight(height int32) (*Checkpoint, bool) {
	for i := range p.Checkpoints {
		if p.Checkpoints[i].Height == height {
			return &p.Checkpoints[i], true
		}
	}
	return nil, false
}

// CheckpointHeights returns the sorted, distinct heights of the checkpoint
// table.
func (p *Params) CheckpointHeights() []int32 {
	seen := make(map[int32]struct{}, len(p.Checkpoints))
	for _, cp := range p.Checkpoints {
		seen[cp.Height] = struct{}{}
	}
	heights := maps.Keys(seen)
	slices.Sort(heights)
	return heights
}

// checkCheckpoints asserts the checkpoint table is strictly ordered by
// height.
func (p *Params) checkCheckpoints() error {
	heights := make([]int32, 0, len(p.Checkpoints))
	for _, cp := range p.Checkpoints {
		if cp.Hash == nil {
			return fmt.Errorf("%s checkpoint %d has no hash", p.Name,
				cp.Height)
		}
		heights = append(heights, cp.Height)
	}
	if !slices.IsSorted(heights) ||
		!slices.Equal(heights, p.CheckpointHeights()) {

		return fmt.Errorf("%s checkpoints are not strictly ordered", p.Name)
	}
	return nil
}
