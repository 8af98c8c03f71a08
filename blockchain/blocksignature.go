// Copyright (c) 2019-2024 The synxd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/btcsuite/btcd/wire"
	"github.com/syndicateltd/synxd/chaincfg"
)

// SignedBlock is the part of a block the block signature covers.  StakeKey is
// the serialized public key of the staking output and Signature the DER
// encoded signature of the header hash by that key.
type SignedBlock struct {
	Header    wire.BlockHeader
	Height    int32
	StakeKey  []byte
	Signature []byte
}

// RequiresBlockSignature returns whether a block at the given height must be
// signed by its staker.  Proof-of-work blocks carry no signature.
func RequiresBlockSignature(params *chaincfg.Params, height int32) bool {
	return params.IsPoS(height)
}

// SignBlock signs the header of the block with the staking key and records the
// public key alongside the signature.
func SignBlock(block *SignedBlock, key *btcec.PrivateKey) error {
	if key == nil {
		return fmt.Errorf("no staking key to sign block %v",
			block.Header.BlockHash())
	}

	hash := block.Header.BlockHash()
	sig := ecdsa.Sign(key, hash[:])

	block.StakeKey = key.PubKey().SerializeCompressed()
	block.Signature = sig.Serialize()
	return nil
}

// CheckBlockSignature verifies the block signature.  coinstakeKey is the
// serialized public key paid by the coinstake output of the block and the
// recorded staking key must match it.  The height of the block is taken from
// its position in the chain, not from the block, and decides whether a
// signature is required.  Proof-of-work blocks must not be signed.
func CheckBlockSignature(params *chaincfg.Params, block *SignedBlock, coinstakeKey []byte) error {
	hash := block.Header.BlockHash()

	if !RequiresBlockSignature(params, block.Height) {
		if len(block.Signature) != 0 {
			str := fmt.Sprintf("proof-of-work block %v at height %d "+
				"carries a signature", hash, block.Height)
			return ruleError(ErrBadBlockSignature, str)
		}
		return nil
	}

	if len(block.Signature) == 0 {
		str := fmt.Sprintf("proof-of-stake block %v at height %d is "+
			"not signed", hash, block.Height)
		return ruleError(ErrMissingBlockSignature, str)
	}

	pubKey, err := btcec.ParsePubKey(block.StakeKey)
	if err != nil {
		str := fmt.Sprintf("block %v has an invalid staking key: %v",
			hash, err)
		return ruleError(ErrBadStakeKey, str)
	}
	expected, err := btcec.ParsePubKey(coinstakeKey)
	if err != nil {
		str := fmt.Sprintf("block %v has an invalid coinstake key: %v",
			hash, err)
		return ruleError(ErrBadStakeKey, str)
	}
	if !pubKey.IsEqual(expected) {
		str := fmt.Sprintf("block %v is signed by %x, coinstake pays %x",
			hash, block.StakeKey, coinstakeKey)
		return ruleError(ErrBadStakeKey, str)
	}

	sig, err := ecdsa.ParseDERSignature(block.Signature)
	if err != nil {
		str := fmt.Sprintf("block %v has a malformed signature: %v",
			hash, err)
		return ruleError(ErrBadBlockSignature, str)
	}

	if !sig.Verify(hash[:], pubKey) {
		str := fmt.Sprintf("block %v signature does not verify", hash)
		return ruleError(ErrBadBlockSignature, str)
	}
	return nil
}
