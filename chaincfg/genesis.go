// Copyright (c) 2014-2016 The btcsuite developers
// Copyright (c) 2019-2024 The synxd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import (
	"encoding/hex"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
)

// genesisTimestamp is the headline committed to by the genesis coinbase.
const genesisTimestamp = "All Funds Are Safe: Binance Denies Crypto Hack Rumors"

// genesisOutputKey is the uncompressed public key paid by the genesis
// coinbase.  The output is not spendable.
const genesisOutputKey = "04678afdb0fe5548271967f1a67130b7105cd6a828e03909a6" +
	"7962e0ea1f61deb649f6bc3f4cef38c4f35504e51ec112de5c384df7ba0b8d578a4c702b6bf11d5f"

// genesisCoinbaseTx is the coinbase transaction for the genesis blocks of
// every network.
var genesisCoinbaseTx = wire.MsgTx{
	Version: 1,
	TxIn: []*wire.TxIn{
		{
			PreviousOutPoint: wire.OutPoint{
				Hash:  chainhash.Hash{},
				Index: 0xffffffff,
			},
			SignatureScript: genesisSignatureScript(),
			Sequence:        0xffffffff,
		},
	},
	TxOut: []*wire.TxOut{
		{
			Value:    0x00,
			PkScript: genesisPkScript(),
		},
	},
	LockTime: 0,
}

// genesisSignatureScript pushes the compact target 0x1d00ffff, the script
// number 4 and the headline.  The pushes are not minimally encoded, so they
// are spelled out rather than built.
func genesisSignatureScript() []byte {
	script, err := hex.DecodeString("04ffff001d010435")
	if err != nil {
		panic(err)
	}
	return append(script, genesisTimestamp...)
}

// genesisPkScript pays the genesis output key with a bare OP_CHECKSIG.
func genesisPkScript() []byte {
	key, err := hex.DecodeString(genesisOutputKey)
	if err != nil {
		panic(err)
	}
	script, err := txscript.NewScriptBuilder().
		AddData(key).
		AddOp(txscript.OP_CHECKSIG).
		Script()
	if err != nil {
		panic(err)
	}
	return script
}

// genesisMerkleRoot is the hash of the first transaction in the genesis block
// for every network.
var genesisMerkleRoot = newHashFromStr("813325b3464787f4ca44cac15ae7b1e4cbe193048086e0e1ef89d9cd2a2afd2a")

// genesisHash is the hash of the first block in the block chain for the main
// and test networks.
var genesisHash = newHashFromStr("53cb7d974370d20671d47efafcfb9f3e47b12c51157e2d6577cf4eebc4ffd15c")

// regTestGenesisHash is the hash of the first block in the block chain for the
// regression test network.
var regTestGenesisHash = newHashFromStr("3e1644ce207b98ba47c879d46da3bd0a52a19d36e9c4a6e860c485b1cb1c22c0")

// newGenesisBlock returns a fresh genesis block with the given nonce.  Each
// network gets its own copy so the block can never be shared between
// parameter tables.
func newGenesisBlock(nonce uint32) *wire.MsgBlock {
	tx := genesisCoinbaseTx.Copy()
	return &wire.MsgBlock{
		Header: wire.BlockHeader{
			Version:    1,
			PrevBlock:  chainhash.Hash{},
			MerkleRoot: tx.TxHash(),
			Timestamp:  time.Unix(152051740, 0),
			Bits:       0x1e0ffff0,
			Nonce:      nonce,
		},
		Transactions: []*wire.MsgTx{tx},
	}
}
