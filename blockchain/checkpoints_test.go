// Copyright (c) 2019-2024 The synxd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"testing"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/stretchr/testify/require"
	"github.com/syndicateltd/synxd/chaincfg"
)

func TestCheckCheckpoint(t *testing.T) {
	for _, net := range []chaincfg.Network{chaincfg.MainNet,
		chaincfg.TestNet, chaincfg.RegTest, chaincfg.UnitTest} {

		params := mustParams(t, net)
		for _, cp := range params.Checkpoints {
			require.NoError(t, CheckCheckpoint(params, cp.Height, cp.Hash))

			// Any other hash at a checkpoint height is rejected.
			var bogus chainhash.Hash
			copy(bogus[:], cp.Hash[:])
			bogus[0] ^= 0x01
			err := CheckCheckpoint(params, cp.Height, &bogus)
			require.True(t, IsErrorCode(err, ErrBadCheckpoint),
				"%v height %d: got %v", net, cp.Height, err)
		}

		// Heights without a checkpoint are never rejected by this check.
		require.NoError(t, CheckCheckpoint(params, 1, &chainhash.Hash{}))
		require.NoError(t, CheckCheckpoint(params, 1<<30, &chainhash.Hash{}))
	}

	// The genesis of one network is not accepted on another.
	main := mustParams(t, chaincfg.MainNet)
	reg := mustParams(t, chaincfg.RegTest)
	err := CheckCheckpoint(main, 0, reg.GenesisHash)
	require.True(t, IsErrorCode(err, ErrBadCheckpoint))
}

func TestCheckForkBelowCheckpoint(t *testing.T) {
	main := mustParams(t, chaincfg.MainNet)

	require.NoError(t, CheckForkBelowCheckpoint(main, 31000))
	require.NoError(t, CheckForkBelowCheckpoint(main, 40000))
	err := CheckForkBelowCheckpoint(main, 30999)
	require.True(t, IsErrorCode(err, ErrForkTooOld))

	// Disabled checkpoints let everything through.
	disabled := NewCheckpoints(main, true)
	require.NoError(t, disabled.CheckFork(0))
	require.NoError(t, disabled.Check(512, &chainhash.Hash{}))
	require.Nil(t, disabled.Latest())
	require.False(t, disabled.Enabled())

	enabled := NewCheckpoints(main, false)
	require.True(t, IsErrorCode(enabled.CheckFork(0), ErrForkTooOld))
	require.True(t, IsErrorCode(enabled.Check(512, &chainhash.Hash{}),
		ErrBadCheckpoint))
	require.Equal(t, int32(31000), enabled.Latest().Height)
}

func TestCheckReorganizationDepth(t *testing.T) {
	main := mustParams(t, chaincfg.MainNet)

	require.NoError(t, CheckReorganizationDepth(main, 1100, 1000))
	err := CheckReorganizationDepth(main, 1101, 1000)
	require.True(t, IsErrorCode(err, ErrReorgTooDeep))
}

func TestNextCheckpoint(t *testing.T) {
	main := mustParams(t, chaincfg.MainNet)
	checkpoints := NewCheckpoints(main, false)

	tests := []struct {
		height int32
		want   int32
	}{
		{0, 2},
		{1, 2},
		{2, 512},
		{6000, 6160},
		{14374, 31000},
	}
	for _, test := range tests {
		next := checkpoints.Next(test.height)
		require.NotNil(t, next, "height %d", test.height)
		require.Equal(t, test.want, next.Height)
	}
	require.Nil(t, checkpoints.Next(31000))
	require.Nil(t, NextCheckpoint(main, 50000))
}

func TestGuessVerificationProgress(t *testing.T) {
	main := mustParams(t, chaincfg.MainNet)
	data := main.CheckpointData

	// Synced exactly to the last checkpoint at its own time.
	progress := GuessVerificationProgress(main, data.LastCheckpointTime,
		data.TransactionsLastCheckpoint, data.LastCheckpointTime)
	require.InDelta(t, 1.0, progress, 1e-9)

	// One day later a day of expensive transactions is outstanding.
	dayLater := data.LastCheckpointTime.Add(24 * time.Hour)
	progress = GuessVerificationProgress(main, data.LastCheckpointTime,
		data.TransactionsLastCheckpoint, dayLater)
	want := 98314.0 / (98314.0 + 2000.0*5)
	require.InDelta(t, want, progress, 1e-9)

	// Half way to the checkpoint.
	progress = GuessVerificationProgress(main, data.LastCheckpointTime,
		data.TransactionsLastCheckpoint/2, data.LastCheckpointTime)
	require.InDelta(t, 0.5, progress, 0.01)

	// Past the checkpoint and caught up with the clock.
	progress = GuessVerificationProgress(main, dayLater,
		data.TransactionsLastCheckpoint+100, dayLater)
	require.InDelta(t, 1.0, progress, 1e-9)

	require.Equal(t, 0.0, GuessVerificationProgress(main,
		data.LastCheckpointTime, 0, data.LastCheckpointTime))
}
