// Copyright (c) 2019-2024 The synxd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSelectorBeforeSelection(t *testing.T) {
	s := NewNetSelector()

	_, err := s.Active()
	require.True(t, errors.Is(err, ErrNoNetworkSelected))

	_, ok := s.Selected()
	require.False(t, ok)

	_, err = s.Modifiable()
	require.True(t, errors.Is(err, ErrNoNetworkSelected))

	require.Panics(t, func() { s.MustActive() })
}

func TestSelectorWriteOnce(t *testing.T) {
	s := NewNetSelector()
	require.NoError(t, s.Select(MainNet))

	active, err := s.Active()
	require.NoError(t, err)
	require.Equal(t, "mainnet", active.Name)
	require.NoError(t, active.CheckGenesis())

	// Same network again is a no-op and keeps the same table.
	require.NoError(t, s.Select(MainNet))
	again := s.MustActive()
	require.Same(t, active, again)

	err = s.Select(TestNet)
	require.True(t, errors.Is(err, ErrNetworkAlreadySelected), "got %v", err)

	net, ok := s.Selected()
	require.True(t, ok)
	require.Equal(t, MainNet, net)

	_, err = s.Modifiable()
	require.True(t, errors.Is(err, ErrNotModifiable))
}

func TestSelectorTestNetworksReselect(t *testing.T) {
	s := NewNetSelector()
	require.NoError(t, s.Select(RegTest))
	require.NoError(t, s.Select(UnitTest))
	require.NoError(t, s.Select(RegTest))

	active := s.MustActive()
	require.Equal(t, RegTest, active.Network)

	require.NoError(t, s.Select(TestNet))
	require.True(t, errors.Is(s.Select(MainNet), ErrNetworkAlreadySelected))
}

func TestSelectorModifiable(t *testing.T) {
	s := NewNetSelector()
	require.NoError(t, s.Select(UnitTest))

	unit, err := s.Modifiable()
	require.NoError(t, err)

	unit.SubsidyReductionInterval = 5
	unit.SkipProofOfWorkCheck = true

	active := s.MustActive()
	require.Equal(t, int32(5), active.SubsidyReductionInterval)
	require.True(t, active.SkipProofOfWorkCheck)
}

func TestSelectorConcurrentReads(t *testing.T) {
	s := NewNetSelector()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				params, err := s.Active()
				if err == nil && params.Network != MainNet {
					t.Errorf("unexpected network %v", params.Network)
					return
				}
			}
		}()
	}
	require.NoError(t, s.Select(MainNet))
	wg.Wait()
}
