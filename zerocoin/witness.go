// Copyright (c) 2019-2024 The synxd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package zerocoin

import (
	"math/big"
)

// Witness proves a coin is a member of an accumulator without revealing
// which member it is.  It is the accumulator of every other coin: raising it
// to the coin value yields the full accumulator.
type Witness struct {
	coin     *PublicCoin
	witness  *Accumulator
	elements int
}

// NewWitness returns a witness for coin starting from the accumulator the coin
// was added to.  The start accumulator must not contain the coin.
func NewWitness(start *Accumulator, coin *PublicCoin) (*Witness, error) {
	if start.Denomination() != coin.Denomination {
		return nil, accumulatorError("NewWitness",
			"coin and accumulator denominations differ")
	}
	return &Witness{
		coin:    coin,
		witness: start.Copy(),
	}, nil
}

// AddElement advances the witness with another coin of the accumulator.
// Adding the witnessed coin itself is a no-op.
func (w *Witness) AddElement(coin *PublicCoin) error {
	if coin.Equal(w.coin) {
		return nil
	}
	if err := w.witness.Accumulate(coin); err != nil {
		return err
	}
	w.elements++
	return nil
}

// Coin returns the witnessed coin.
func (w *Witness) Coin() *PublicCoin {
	return w.coin
}

// Value returns the witness value.
func (w *Witness) Value() *big.Int {
	return w.witness.Value()
}

// Elements returns how many other coins were folded into the witness.
func (w *Witness) Elements() int {
	return w.elements
}

// Verify returns whether the witness proves membership of its coin in acc.
func (w *Witness) Verify(acc *Accumulator) bool {
	if acc.Denomination() != w.coin.Denomination ||
		acc.Modulus().Cmp(w.witness.Modulus()) != 0 {

		return false
	}
	check := w.witness.Copy()
	if err := check.Accumulate(w.coin); err != nil {
		return false
	}
	return check.Equal(acc)
}
