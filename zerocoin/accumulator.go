// Copyright (c) 2019-2024 The synxd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package zerocoin

import (
	"fmt"
	"math/big"

	"github.com/syndicateltd/synxd/chaincfg"
)

// accumulatorBase is the value of an empty accumulator.
const accumulatorBase = 961

// Accumulator is an RSA accumulator over the coins of one denomination.
// Accumulating a coin raises the accumulator to the coin value modulo the
// network modulus.
type Accumulator struct {
	modulus *big.Int
	value   *big.Int
	denom   Denomination
}

// NewAccumulator returns an empty accumulator for the given denomination.
func NewAccumulator(modulus *big.Int, denom Denomination) *Accumulator {
	return &Accumulator{
		modulus: modulus,
		value:   big.NewInt(accumulatorBase),
		denom:   denom,
	}
}

// NewAccumulatorFromValue returns an accumulator continuing from a previously
// computed value.
func NewAccumulatorFromValue(modulus *big.Int, denom Denomination,
	value *big.Int) (*Accumulator, error) {

	if value == nil || value.Sign() <= 0 || value.Cmp(modulus) >= 0 {
		return nil, accumulatorError("NewAccumulatorFromValue",
			"accumulator value out of range")
	}
	return &Accumulator{
		modulus: modulus,
		value:   new(big.Int).Set(value),
		denom:   denom,
	}, nil
}

// Accumulate adds the coin to the accumulator.
func (a *Accumulator) Accumulate(coin *PublicCoin) error {
	if coin.Denomination != a.denom {
		return accumulatorError("Accumulator.Accumulate",
			fmt.Sprintf("coin of %v added to %v accumulator",
				coin.Denomination, a.denom))
	}
	if coin.Value.Cmp(a.modulus) >= 0 {
		return accumulatorError("Accumulator.Accumulate",
			"coin value exceeds the accumulator modulus")
	}
	a.value.Exp(a.value, coin.Value, a.modulus)
	return nil
}

// Value returns a copy of the accumulator value.
func (a *Accumulator) Value() *big.Int {
	return new(big.Int).Set(a.value)
}

// Denomination returns the denomination the accumulator collects.
func (a *Accumulator) Denomination() Denomination {
	return a.denom
}

// Modulus returns the modulus of the accumulator.
func (a *Accumulator) Modulus() *big.Int {
	return a.modulus
}

// Copy returns an independent copy of the accumulator.
func (a *Accumulator) Copy() *Accumulator {
	return &Accumulator{
		modulus: a.modulus,
		value:   new(big.Int).Set(a.value),
		denom:   a.denom,
	}
}

// Equal returns whether both accumulators hold the same value for the same
// denomination and modulus.
func (a *Accumulator) Equal(other *Accumulator) bool {
	return other != nil && a.denom == other.denom &&
		a.modulus.Cmp(other.modulus) == 0 && a.value.Cmp(other.value) == 0
}

// ModulusAt returns the accumulator modulus for coins minted at height.  The
// v1 accumulator is used until the v2 switch.
func ModulusAt(params *chaincfg.Params, height int32) (*big.Int, error) {
	return params.AccumulatorModulus(!params.IsZerocoinV2(height))
}

// StartsNewAccumulator returns whether mints at height are added to an empty
// accumulator rather than the one left by the previous block.  That is the
// case for the first zerocoin block and the first v2 block.
func StartsNewAccumulator(params *chaincfg.Params, height int32) bool {
	if !params.IsZerocoinActive(height - 1) {
		return true
	}
	return params.IsZerocoinV2(height) && !params.IsZerocoinV2(height-1)
}
