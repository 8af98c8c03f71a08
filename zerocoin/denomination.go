// Copyright (c) 2019-2024 The synxd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package zerocoin

import (
	"fmt"

	"github.com/btcsuite/btcd/btcutil"
)

// Denomination is the face value of a zerocoin in whole coins.  Coins are
// only anonymous among coins of the same denomination, so every denomination
// has its own accumulator.
type Denomination uint16

// These constants define the supported denominations.
const (
	DenomError Denomination = 0
	Denom1     Denomination = 1
	Denom5     Denomination = 5
	Denom10    Denomination = 10
	Denom50    Denomination = 50
	Denom100   Denomination = 100
	Denom500   Denomination = 500
	Denom1000  Denomination = 1000
	Denom5000  Denomination = 5000
)

// Denominations lists the supported denominations in ascending order.  It
// also fixes the order accumulators are serialized in.
var Denominations = []Denomination{
	Denom1, Denom5, Denom10, Denom50, Denom100, Denom500, Denom1000, Denom5000,
}

// IsValid returns whether d is a supported denomination.
func (d Denomination) IsValid() bool {
	return d.index() >= 0
}

// index returns the position of d in Denominations, or -1.
func (d Denomination) index() int {
	for i, denom := range Denominations {
		if denom == d {
			return i
		}
	}
	return -1
}

// Amount returns the value of the denomination.
func (d Denomination) Amount() btcutil.Amount {
	return btcutil.Amount(d) * btcutil.SatoshiPerBitcoin
}

// String returns the denomination in a human-readable form.
func (d Denomination) String() string {
	if !d.IsValid() {
		return fmt.Sprintf("invalid denomination (%d)", uint16(d))
	}
	return fmt.Sprintf("z%d", uint16(d))
}

// ParseDenomination returns the denomination with the exact value of amount.
func ParseDenomination(amount btcutil.Amount) (Denomination, error) {
	for _, denom := range Denominations {
		if denom.Amount() == amount {
			return denom, nil
		}
	}
	return DenomError, accumulatorError("ParseDenomination",
		fmt.Sprintf("%v is not a zerocoin denomination", amount))
}
