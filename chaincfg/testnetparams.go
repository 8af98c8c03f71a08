// Copyright (c) 2019-2024 The synxd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import (
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/wire"
)

const testSporkKey = "043c24f895d703d1a0837cff95d81c240e9c2a4e66e68ba5d7a607c971e13103" +
	"4b14747d8e7c08b2f3a7a7268eed34ad22b92a97a27eac494bedfbdfee3433959e"

// testNetParams returns the parameters of the public test network: the main
// network table with the overrides below.
func testNetParams() Params {
	p := mainNetParams()

	p.Name = "testnet"
	p.Network = TestNet
	p.Net = wire.BitcoinNet(0x3f4dca2e)
	p.DefaultPort = "25994"
	p.DNSSeeds = []DNSSeed{
		{"seed.synx.online", false},
	}

	p.EnforceBlockUpgradeMajority = 51
	p.RejectBlockOutdatedMajority = 75
	p.ToCheckBlockUpgradeMajority = 100

	p.LastPoWBlock = 128
	p.BadBlockTime = time.Unix(1489001494, 0)
	p.BadBlockBits = 0x1e0a20bd
	p.CoinbaseMaturity = 15
	p.StakeMinDepth = 100
	p.MasternodeCountDrift = 4
	p.MaxMoneyOut = 43199500 * btcutil.SatoshiPerBitcoin

	p.InvalidAmountFiltered = 0
	p.FakeSerialHeightEnd = -1
	p.SupplyBeforeFakeSerial = 0

	p.Checkpoints = []Checkpoint{
		{0, genesisHash},
	}
	p.CheckpointData = CheckpointData{
		LastCheckpointTime:         time.Unix(152051740, 0),
		TransactionsLastCheckpoint: 0,
		TransactionsPerDay:         2000,
	}

	p.PoolMaxTransactions = 2
	p.BudgetCycleBlocks = 144
	p.SporkKey = testSporkKey
	p.SporkKeyOld = testSporkKey
	p.ObfuscationPoolDummyAddress = "gDkRMa4ceYWWN9VYK4ZDnQN21XHjTj45yY"
	p.StartMasternodePayments = time.Unix(1420837558, 0)
	p.BudgetFeeConfirmations = 3
	p.ProposalEstablishmentTime = 5 * time.Minute

	p.AllowMinDifficultyBlocks = true

	p.PubKeyHashAddrID = 97
	p.ScriptHashAddrID = 196
	p.PrivateKeyID = 239
	p.HDPrivateKeyID = [4]byte{0x3a, 0x80, 0x58, 0x37}
	p.HDPublicKeyID = [4]byte{0x3a, 0x80, 0x61, 0xa0}
	p.HDCoinType = 1

	return p
}
