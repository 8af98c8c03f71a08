// Copyright (c) 2019-2024 The synxd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package mintset keeps an order independent digest of a set of minted
// coins.
package mintset

import (
	"encoding/binary"
	"math/bits"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// DigestSize is the size of a serialized digest.
const DigestSize = 64

// numLimbs is the number of 64-bit limbs of a digest.
const numLimbs = DigestSize / 8

// Digest is the sum of the coin IDs of a set modulo 2^512, kept as
// little-endian limbs.  Adding and removing coins commute, so the digest of a
// set does not depend on the order its coins were minted or disconnected in.
type Digest struct {
	limbs [numLimbs]uint64
}

// IsEmpty returns whether the digest is the digest of the empty set.
func (d *Digest) IsEmpty() bool {
	for _, limb := range d.limbs {
		if limb != 0 {
			return false
		}
	}
	return true
}

// SetBytes loads a digest serialized with Bytes.
func (d *Digest) SetBytes(b [DigestSize]byte) {
	for i := range d.limbs {
		d.limbs[i] = binary.LittleEndian.Uint64(b[i*8:])
	}
}

// Bytes returns the little-endian serialization of the digest.
func (d *Digest) Bytes() [DigestSize]byte {
	var out [DigestSize]byte
	for i, limb := range d.limbs {
		binary.LittleEndian.PutUint64(out[i*8:], limb)
	}
	return out
}

// AddCoin adds the coin ID to the set.
func (d *Digest) AddCoin(id *chainhash.Hash) {
	var carry uint64
	for i := range d.limbs {
		var w uint64
		if i < chainhash.HashSize/8 {
			w = binary.LittleEndian.Uint64(id[i*8:])
		}
		d.limbs[i], carry = bits.Add64(d.limbs[i], w, carry)
	}
}

// RemoveCoin removes a coin ID previously added to the set.
func (d *Digest) RemoveCoin(id *chainhash.Hash) {
	var borrow uint64
	for i := range d.limbs {
		var w uint64
		if i < chainhash.HashSize/8 {
			w = binary.LittleEndian.Uint64(id[i*8:])
		}
		d.limbs[i], borrow = bits.Sub64(d.limbs[i], w, borrow)
	}
}
