// Copyright (c) 2019-2024 The synxd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/syndicateltd/synxd/chaincfg"
)

func mustParams(t *testing.T, net chaincfg.Network) *chaincfg.Params {
	t.Helper()
	params, err := chaincfg.NewParams(net)
	require.NoError(t, err)
	return params
}

func TestHasStakeMinAgeOrDepthPreV2(t *testing.T) {
	main := mustParams(t, chaincfg.MainNet)
	reg := mustParams(t, chaincfg.RegTest)

	contextTime := time.Unix(1600000000, 0)
	tests := []struct {
		name     string
		utxoTime time.Time
		want     bool
	}{
		{"old enough", contextTime.Add(-2 * time.Hour), true},
		{"exactly one hour", contextTime.Add(-time.Hour), true},
		{"one second short", contextTime.Add(-time.Hour + time.Second), false},
		{"from the future", contextTime.Add(time.Hour), false},
	}

	for _, test := range tests {
		got := HasStakeMinAgeOrDepth(main, 1000, contextTime, 999,
			test.utxoTime)
		require.Equal(t, test.want, got, test.name)

		// Regression test stakes anything before v2.
		require.True(t, HasStakeMinAgeOrDepth(reg, 1000, contextTime,
			999, test.utxoTime), test.name)
	}
}

func TestHasStakeMinAgeOrDepthPostV2(t *testing.T) {
	main := mustParams(t, chaincfg.MainNet)
	height := main.StakeModifierV2Height

	// Time is ignored after the switch.
	now := time.Unix(1600000000, 0)
	require.True(t, HasStakeMinAgeOrDepth(main, height, now,
		height-main.StakeMinDepth, now))
	require.True(t, HasStakeMinAgeOrDepth(main, height, now,
		height-main.StakeMinDepth-1, now.Add(time.Hour)))
	require.False(t, HasStakeMinAgeOrDepth(main, height, now,
		height-main.StakeMinDepth+1, now.Add(-24*time.Hour)))

	// The switch is inclusive: one block earlier still uses time.
	require.True(t, HasStakeMinAgeOrDepth(main, height-1, now, height-2,
		now.Add(-time.Hour)))

	// A modified unit test network at depth zero stakes at its own height.
	unit, err := chaincfg.NewUnitTestParams()
	require.NoError(t, err)
	params := unit.Params()
	params.StakeModifierV2Height = 0
	params.StakeMinDepth = 0
	require.True(t, HasStakeMinAgeOrDepth(params, 10, now, 10, now))
}

func TestCheckStakeInput(t *testing.T) {
	main := mustParams(t, chaincfg.MainNet)
	now := time.Unix(1600000000, 0)

	err := CheckStakeInput(main, 1000, now, 999, now)
	require.True(t, IsErrorCode(err, ErrStakeTooYoung), "got %v", err)

	err = CheckStakeInput(main, 1000, now, 999, now.Add(-time.Hour))
	require.NoError(t, err)

	height := main.StakeModifierV2Height
	err = CheckStakeInput(main, height, now, height-1, now)
	require.True(t, IsErrorCode(err, ErrStakeTooYoung))
}

func TestCheckZerocoinStakeDepth(t *testing.T) {
	main := mustParams(t, chaincfg.MainNet)

	require.NoError(t, CheckZerocoinStakeDepth(main, 1200, 1000))
	err := CheckZerocoinStakeDepth(main, 1199, 1000)
	require.True(t, IsErrorCode(err, ErrZerocoinStakeTooShallow))
}

func TestCheckBlockTime(t *testing.T) {
	main := mustParams(t, chaincfg.MainNet)
	now := time.Unix(1600000000, 0)

	// Proof-of-work blocks may drift two hours, proof-of-stake three
	// minutes.
	require.NoError(t, CheckBlockTime(main, 100, now.Add(2*time.Hour), now))
	require.NoError(t, CheckBlockTime(main, 600, now.Add(3*time.Minute), now))

	err := CheckBlockTime(main, 600, now.Add(3*time.Minute+time.Second), now)
	require.True(t, IsErrorCode(err, ErrTimeTooNew))
}
