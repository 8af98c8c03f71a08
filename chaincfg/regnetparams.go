// Copyright (c) 2019-2024 The synxd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import (
	"math"
	"time"

	"github.com/btcsuite/btcd/wire"
)

// regTestSporkKey is the spork key of the regression test network.  Its
// private key is bd4960dcbd9e7f2223f24e7164ecb6f1fe96fc3a416f5d3a830ba5720c84b8ca.
const regTestSporkKey = "043969b1b0e6f327de37f297a015d37e2235eaaeeb3933deecd8162c075cee02" +
	"07b13537618bde640879606001a8136091c62ec272dd0133424a178704e6e75bb7"

// regTestParams returns the parameters of the regression test network: the
// test network table with the overrides below.
func regTestParams() Params {
	p := testNetParams()

	p.Name = "regtest"
	p.Network = RegTest
	p.Net = wire.BitcoinNet(0xffa17612)
	p.DefaultPort = "25996"
	p.DNSSeeds = nil

	p.GenesisBlock = newGenesisBlock(671421)
	p.GenesisHash = regTestGenesisHash
	p.PowLimit = regressionPowLimit
	p.PowLimitBits = 0x207fffff

	p.SubsidyReductionInterval = 150
	p.EnforceBlockUpgradeMajority = 750
	p.RejectBlockOutdatedMajority = 950
	p.ToCheckBlockUpgradeMajority = 1000

	p.CoinbaseMaturity = 100
	p.StakeMinDepth = 0
	p.ModifierUpdateBlock = 0
	p.StakeModifierV2Height = math.MaxInt32

	p.EnforceSerialRangeHeight = 1
	p.RecalculateAccumulatorsHeight = 999999999
	p.FirstFraudulentHeight = 999999999
	p.LastGoodCheckpointHeight = 999999999
	p.PublicZerocoinSpendsHeight = 350
	p.FakeSerialHeightEnd = -1

	p.Checkpoints = []Checkpoint{
		{0, regTestGenesisHash},
	}
	p.CheckpointData = CheckpointData{
		LastCheckpointTime:         time.Unix(152051740, 0),
		TransactionsLastCheckpoint: 0,
		TransactionsPerDay:         2000,
	}

	p.SporkKey = regTestSporkKey

	p.MiningRequiresPeers = false
	p.AllowMinDifficultyBlocks = true
	p.DefaultConsistencyChecks = true
	p.RequireStandard = false
	p.MineBlocksOnDemand = true
	p.SkipProofOfWorkCheck = true

	return p
}
