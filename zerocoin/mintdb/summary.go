// Copyright (c) 2021 The utreexo developers
// Copyright (c) 2019-2024 The synxd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mintdb

import (
	"crypto/sha512"
	"fmt"
	"io"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/syndicateltd/synxd/zerocoin"
	"github.com/utreexo/utreexo"
)

// maxMintsPerBlock bounds the number of coin IDs read back for one block.
const maxMintsPerBlock = 1 << 16

// MintSummary is the data committed to for every connected block: its height
// and the IDs of the coins minted in it, in block order.
type MintSummary struct {
	Height  int32
	CoinIDs []chainhash.Hash
}

// newMintSummary returns the summary of the mints of a block.
func newMintSummary(height int32, mints []*zerocoin.PublicCoin) *MintSummary {
	ids := make([]chainhash.Hash, 0, len(mints))
	for _, coin := range mints {
		ids = append(ids, coin.ID())
	}
	return &MintSummary{Height: height, CoinIDs: ids}
}

// LeafHash hashes the serialized summary.  It is the leaf committed to in the
// summary accumulator.
func (s *MintSummary) LeafHash() utreexo.Hash {
	digest := sha512.New512_256()
	_ = s.Serialize(digest)

	var hash utreexo.Hash
	copy(hash[:], digest.Sum(nil))
	return hash
}

// String returns the summary in a form suitable for logging.
func (s *MintSummary) String() string {
	return fmt.Sprintf("height %d, %d mints, leaf %x", s.Height,
		len(s.CoinIDs), s.LeafHash())
}

// -----------------------------------------------------------------------------
// The serialized format is:
//
// Field              Type       Size
// height             VLQ        variable
// mint count         VLQ        variable
// coin ids           [32]byte   32 * mint count
// -----------------------------------------------------------------------------

// SerializeSize returns the number of bytes it would take to serialize the
// summary.
func (s *MintSummary) SerializeSize() int {
	return wire.VarIntSerializeSize(uint64(s.Height)) +
		wire.VarIntSerializeSize(uint64(len(s.CoinIDs))) +
		len(s.CoinIDs)*chainhash.HashSize
}

// Serialize encodes the summary to w.
func (s *MintSummary) Serialize(w io.Writer) error {
	err := wire.WriteVarInt(w, 0, uint64(s.Height))
	if err != nil {
		return err
	}
	err = wire.WriteVarInt(w, 0, uint64(len(s.CoinIDs)))
	if err != nil {
		return err
	}
	for i := range s.CoinIDs {
		_, err = w.Write(s.CoinIDs[i][:])
		if err != nil {
			return err
		}
	}
	return nil
}

// Deserialize decodes the summary from r.
func (s *MintSummary) Deserialize(r io.Reader) error {
	height, err := wire.ReadVarInt(r, 0)
	if err != nil {
		return err
	}
	s.Height = int32(height)

	count, err := wire.ReadVarInt(r, 0)
	if err != nil {
		return err
	}
	if count > maxMintsPerBlock {
		return fmt.Errorf("mint summary has %d coins, max is %d", count,
			maxMintsPerBlock)
	}

	s.CoinIDs = make([]chainhash.Hash, count)
	for i := range s.CoinIDs {
		_, err = io.ReadFull(r, s.CoinIDs[i][:])
		if err != nil {
			return err
		}
	}
	return nil
}

// MintProof proves the mints of one block are part of the chain committed to
// by Stump.
type MintProof struct {
	Summary MintSummary
	Proof   utreexo.Proof
	Stump   utreexo.Stump
}

// Verify checks the proof against its stump.
func (p *MintProof) Verify() error {
	return VerifyMintBlock(p.Stump, &p.Summary, p.Proof)
}

// VerifyMintBlock checks that the summary is committed to by the stump.
func VerifyMintBlock(stump utreexo.Stump, summary *MintSummary, proof utreexo.Proof) error {
	_, err := utreexo.Verify(stump, []utreexo.Hash{summary.LeafHash()}, proof)
	if err != nil {
		return fmt.Errorf("mint summary at height %d: %w", summary.Height, err)
	}
	return nil
}
