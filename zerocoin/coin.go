// Copyright (c) 2019-2024 The synxd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package zerocoin

import (
	"bytes"
	"fmt"
	"io"
	"math/big"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
)

// maxCoinValueSize is the largest serialized coin value accepted.  It leaves
// room for the v1 modulus, which is read as hexadecimal and is therefore
// larger than 2048 bits.
const maxCoinValueSize = 512

// PublicCoin is the public commitment of a minted zerocoin.
type PublicCoin struct {
	Value        *big.Int
	Denomination Denomination
}

// NewPublicCoin returns a coin with the given commitment value.
func NewPublicCoin(value *big.Int, denom Denomination) (*PublicCoin, error) {
	coin := &PublicCoin{Value: value, Denomination: denom}
	if err := coin.validate(); err != nil {
		return nil, err
	}
	return coin, nil
}

// validate checks the coin carries a usable value and denomination.  It does
// not check the value against an accumulator modulus.
func (c *PublicCoin) validate() error {
	if !c.Denomination.IsValid() {
		return accumulatorError("PublicCoin.validate",
			fmt.Sprintf("%v", c.Denomination))
	}
	if c.Value == nil || c.Value.Cmp(big.NewInt(1)) <= 0 {
		return accumulatorError("PublicCoin.validate",
			"coin value must be greater than one")
	}
	if len(c.Value.Bytes()) > maxCoinValueSize {
		return accumulatorError("PublicCoin.validate",
			fmt.Sprintf("coin value is %d bytes, max is %d",
				len(c.Value.Bytes()), maxCoinValueSize))
	}
	return nil
}

// ID returns the double-SHA256 of the serialized coin.  It identifies the
// coin in requests and indexes.
func (c *PublicCoin) ID() chainhash.Hash {
	var buf bytes.Buffer
	buf.Grow(c.SerializeSize())
	_ = c.Serialize(&buf)
	return chainhash.DoubleHashH(buf.Bytes())
}

// Copy returns a deep copy of the coin.
func (c *PublicCoin) Copy() *PublicCoin {
	return &PublicCoin{
		Value:        new(big.Int).Set(c.Value),
		Denomination: c.Denomination,
	}
}

// Equal returns whether both coins have the same value and denomination.
func (c *PublicCoin) Equal(other *PublicCoin) bool {
	return other != nil && c.Denomination == other.Denomination &&
		c.Value.Cmp(other.Value) == 0
}

// -----------------------------------------------------------------------------
// The serialized format is:
//
// Field              Type       Size
// denomination       VLQ        variable
// value length       VLQ        variable
// value              []byte     variable, big-endian
// -----------------------------------------------------------------------------

// SerializeSize returns the number of bytes it would take to serialize the
// coin.
func (c *PublicCoin) SerializeSize() int {
	value := c.Value.Bytes()
	return wire.VarIntSerializeSize(uint64(c.Denomination)) +
		wire.VarIntSerializeSize(uint64(len(value))) + len(value)
}

// Serialize encodes the coin to w.
func (c *PublicCoin) Serialize(w io.Writer) error {
	err := wire.WriteVarInt(w, 0, uint64(c.Denomination))
	if err != nil {
		return err
	}
	return wire.WriteVarBytes(w, 0, c.Value.Bytes())
}

// Deserialize decodes a coin from r.
func (c *PublicCoin) Deserialize(r io.Reader) error {
	denom, err := wire.ReadVarInt(r, 0)
	if err != nil {
		return err
	}
	if denom > uint64(Denom5000) {
		return accumulatorError("PublicCoin.Deserialize",
			fmt.Sprintf("invalid denomination %d", denom))
	}
	c.Denomination = Denomination(denom)

	value, err := wire.ReadVarBytes(r, 0, maxCoinValueSize, "coin value")
	if err != nil {
		return err
	}
	c.Value = new(big.Int).SetBytes(value)

	return c.validate()
}
