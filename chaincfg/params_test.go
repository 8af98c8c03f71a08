// Copyright (c) 2019-2024 The synxd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import (
	"encoding/hex"
	"errors"
	"testing"
	"time"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slices"
)

var allNetworks = []Network{MainNet, TestNet, RegTest, UnitTest}

func TestGenesisHashes(t *testing.T) {
	tests := []struct {
		net  Network
		hash string
	}{
		{MainNet, "53cb7d974370d20671d47efafcfb9f3e47b12c51157e2d6577cf4eebc4ffd15c"},
		{TestNet, "53cb7d974370d20671d47efafcfb9f3e47b12c51157e2d6577cf4eebc4ffd15c"},
		{RegTest, "3e1644ce207b98ba47c879d46da3bd0a52a19d36e9c4a6e860c485b1cb1c22c0"},
		{UnitTest, "53cb7d974370d20671d47efafcfb9f3e47b12c51157e2d6577cf4eebc4ffd15c"},
	}

	for _, test := range tests {
		params, err := NewParams(test.net)
		require.NoError(t, err, test.net.String())

		hash := params.GenesisBlock.BlockHash()
		require.Equal(t, test.hash, hash.String(), test.net.String())
		require.Equal(t, genesisMerkleRoot.String(),
			params.GenesisBlock.Header.MerkleRoot.String())
	}
}

func TestGenesisMismatch(t *testing.T) {
	params := mainNetParams()
	params.GenesisBlock.Header.Nonce++

	err := params.CheckGenesis()
	require.True(t, errors.Is(err, ErrGenesisMismatch), "got %v", err)

	// The tampered block must not leak into freshly built tables.
	fresh, err := NewParams(MainNet)
	require.NoError(t, err)
	require.Equal(t, uint32(3704342), fresh.GenesisBlock.Header.Nonce)
}

func TestNewParamsUnknownNetwork(t *testing.T) {
	_, err := NewParams(Network(42))
	require.True(t, errors.Is(err, ErrUnknownNetwork))
	require.Equal(t, "Unknown Network (42)", Network(42).String())
}

func TestNetworkOverrides(t *testing.T) {
	main, err := NewParams(MainNet)
	require.NoError(t, err)
	test, err := NewParams(TestNet)
	require.NoError(t, err)
	reg, err := NewParams(RegTest)
	require.NoError(t, err)
	unit, err := NewParams(UnitTest)
	require.NoError(t, err)

	require.Equal(t, "25992", main.DefaultPort)
	require.Equal(t, "25994", test.DefaultPort)
	require.Equal(t, "25996", reg.DefaultPort)
	require.Equal(t, "25998", unit.DefaultPort)

	// Test network overrides.
	require.Equal(t, int32(128), test.LastPoWBlock)
	require.Equal(t, uint16(15), test.CoinbaseMaturity)
	require.Equal(t, int32(100), test.StakeMinDepth)
	require.Equal(t, int32(-1), test.FakeSerialHeightEnd)
	require.True(t, test.AllowMinDifficultyBlocks)
	require.Equal(t, main.SubsidyReductionInterval, test.SubsidyReductionInterval)

	// Regression test inherits from the test network.
	require.Equal(t, test.LastPoWBlock, reg.LastPoWBlock)
	require.Equal(t, test.PubKeyHashAddrID, reg.PubKeyHashAddrID)
	require.Equal(t, int32(150), reg.SubsidyReductionInterval)
	require.Equal(t, int32(0), reg.StakeMinDepth)
	require.Equal(t, int32(350), reg.PublicZerocoinSpendsHeight)
	require.True(t, reg.SkipProofOfWorkCheck)
	require.True(t, reg.DefaultConsistencyChecks)
	require.Empty(t, reg.DNSSeeds)
	require.Equal(t, 255, reg.PowLimit.BitLen())
	require.Equal(t, 236, main.PowLimit.BitLen())

	// Unit test shares the main checkpoints.
	require.Equal(t, main.Checkpoints, unit.Checkpoints)
	require.Equal(t, main.CheckpointData, unit.CheckpointData)
	require.True(t, unit.DefaultConsistencyChecks)
	require.True(t, unit.MineBlocksOnDemand)
	require.False(t, unit.MiningRequiresPeers)

	// Tables are independent values.
	require.NotSame(t, main.GenesisBlock, unit.GenesisBlock)
}

func TestActivationMonotonic(t *testing.T) {
	heights := []int32{0, 1, 127, 128, 129, 349, 350, 511, 512, 513,
		1686229, 1686230, 999999999, 1575158400, neverActive - 1,
		neverActive, neverActive + 1}

	slices.Sort(heights)

	for _, net := range allNetworks {
		params, err := NewParams(net)
		require.NoError(t, err)

		gates := map[string]func(int32) bool{
			"pos":             params.IsPoS,
			"stakemodifierv2": params.IsStakeModifierV2,
			"zerocoin":        params.IsZerocoinActive,
			"zerocoinv2":      params.IsZerocoinV2,
			"publicspend":     params.IsPublicSpendActive,
			"serialrange":     params.IsSerialRangeEnforced,
			"invalidutxo":     params.IsInvalidUTXOEnforced,
		}
		for name, gate := range gates {
			active := false
			for _, h := range heights {
				if active {
					require.True(t, gate(h), "%v %s deactivated at %d",
						net, name, h)
				}
				active = gate(h)
			}
		}
	}
}

func TestActivationThresholds(t *testing.T) {
	params, err := NewParams(MainNet)
	require.NoError(t, err)

	require.False(t, params.IsPoS(512))
	require.True(t, params.IsPoS(513))
	require.False(t, params.IsStakeModifierV2(1575158399))
	require.True(t, params.IsStakeModifierV2(1575158400))
	require.True(t, params.IsFakeSerialAffected(1686229))
	require.False(t, params.IsFakeSerialAffected(1686230))
	require.Equal(t, 7, params.MaxZerocoinSpends(0))
	require.Equal(t, 637, params.MaxZerocoinSpends(neverActive))
	require.Equal(t, 2*time.Hour, params.FutureTimeDrift(false))
	require.Equal(t, 3*time.Minute, params.FutureTimeDrift(true))

	test, err := NewParams(TestNet)
	require.NoError(t, err)
	require.False(t, test.IsFakeSerialAffected(0))

	reg, err := NewParams(RegTest)
	require.NoError(t, err)
	require.True(t, reg.IsSerialRangeEnforced(1))
	require.False(t, reg.IsSerialRangeEnforced(0))
	require.True(t, reg.IsPublicSpendActive(350))
}

func TestCheckpointLookups(t *testing.T) {
	params, err := NewParams(MainNet)
	require.NoError(t, err)

	require.Equal(t, []int32{0, 2, 512, 4559, 5530, 6160, 12588, 14374, 31000},
		params.CheckpointHeights())

	latest := params.LatestCheckpoint()
	require.NotNil(t, latest)
	require.Equal(t, int32(31000), latest.Height)

	cp, ok := params.CheckpointByHeight(512)
	require.True(t, ok)
	require.Equal(t, "000003db9cbd239ab8724c6aa07451c3d975bbb8aa5d89868317714a69a3ef37",
		cp.Hash.String())

	_, ok = params.CheckpointByHeight(513)
	require.False(t, ok)

	// A table out of order is refused.
	bad := mainNetParams()
	bad.Checkpoints[1], bad.Checkpoints[2] = bad.Checkpoints[2], bad.Checkpoints[1]
	require.Error(t, bad.checkCheckpoints())

	bad = mainNetParams()
	bad.Checkpoints = append(bad.Checkpoints, Checkpoint{31000, &chainhash.Hash{}})
	require.Error(t, bad.checkCheckpoints())
}

func TestAddressPrefixes(t *testing.T) {
	for _, net := range allNetworks {
		params, err := NewParams(net)
		require.NoError(t, err)
		require.NoError(t, params.ValidateAddressPrefixes(), net.String())
	}

	params := testNetParams()
	params.ObfuscationPoolDummyAddress = "SXmCHzNQXcgiHsS5fukBf95jxyPzqQP2it"
	err := params.ValidateAddressPrefixes()
	require.True(t, errors.Is(err, ErrBadAddressPrefix), "got %v", err)

	// Corrupt the checksum.
	params.ObfuscationPoolDummyAddress = "gDkRMa4ceYWWN9VYK4ZDnQN21XHjTj45yZ"
	require.True(t, errors.Is(params.ValidateAddressPrefixes(), ErrBadAddressPrefix))
}

func TestSporkKeys(t *testing.T) {
	params := regTestParams()
	params.EnforceNewSporkKeyTime = time.Unix(2000, 0)
	params.RejectOldSporkKeyTime = time.Unix(3000, 0)

	require.Equal(t, []string{params.SporkKey, params.SporkKeyOld},
		params.SporkKeys(time.Unix(1999, 0)))
	require.Equal(t, []string{params.SporkKey}, params.SporkKeys(time.Unix(2000, 0)))
	require.Equal(t, []string{params.SporkKey}, params.SporkKeys(time.Unix(3000, 0)))

	// Identical keys are only reported once.
	main := mainNetParams()
	require.Len(t, main.SporkKeys(time.Unix(0, 0)), 1)
}

func TestParseSporkKeys(t *testing.T) {
	for _, net := range allNetworks {
		params, err := NewParams(net)
		require.NoError(t, err)

		keys, err := params.ParseSporkKeys(time.Unix(0, 0))
		require.NoError(t, err, net.String())
		require.NotEmpty(t, keys)
	}

	// The documented regression test spork key signs for the network key.
	params := regTestParams()
	privBytes, err := hex.DecodeString("bd4960dcbd9e7f2223f24e7164ecb6f1fe96fc3a416f5d3a830ba5720c84b8ca")
	require.NoError(t, err)
	priv, _ := btcec.PrivKeyFromBytes(privBytes)

	keys, err := params.ParseSporkKeys(time.Unix(neverActive, 0))
	require.NoError(t, err)
	require.Len(t, keys, 1)

	msg := chainhash.DoubleHashB([]byte("spork"))
	sig := ecdsa.Sign(priv, msg)
	require.True(t, sig.Verify(msg, keys[0]))

	params.SporkKey = "04deadbeef"
	_, err = params.ParseSporkKeys(time.Unix(0, 0))
	require.Error(t, err)
}

func TestAccumulatorModulus(t *testing.T) {
	params, err := NewParams(MainNet)
	require.NoError(t, err)

	v2, err := params.AccumulatorModulus(false)
	require.NoError(t, err)
	require.Equal(t, 2048, v2.BitLen())

	v1, err := params.AccumulatorModulus(true)
	require.NoError(t, err)
	require.NotEqual(t, 0, v1.Cmp(v2))

	params.ZerocoinModulus = "not a number"
	_, err = params.AccumulatorModulus(false)
	require.Error(t, err)
}

func TestUnitTestParams(t *testing.T) {
	unit, err := NewUnitTestParams()
	require.NoError(t, err)

	before := unit.Params()
	unit.SubsidyReductionInterval = 10
	unit.EnforceBlockUpgradeMajority = 1
	unit.RejectBlockOutdatedMajority = 2
	unit.ToCheckBlockUpgradeMajority = 3
	unit.DefaultConsistencyChecks = false
	unit.AllowMinDifficultyBlocks = true
	unit.SkipProofOfWorkCheck = true

	after := unit.Params()
	require.Equal(t, int32(210000), before.SubsidyReductionInterval)
	require.Equal(t, int32(10), after.SubsidyReductionInterval)
	require.Equal(t, int32(1), after.EnforceBlockUpgradeMajority)
	require.Equal(t, int32(2), after.RejectBlockOutdatedMajority)
	require.Equal(t, int32(3), after.ToCheckBlockUpgradeMajority)
	require.False(t, after.DefaultConsistencyChecks)
	require.True(t, after.AllowMinDifficultyBlocks)
	require.True(t, after.SkipProofOfWorkCheck)
	require.Equal(t, UnitTest, after.Network)
}
