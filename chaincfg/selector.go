// Copyright (c) 2019-2024 The synxd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// selection is the state held by a NetSelector once a network was chosen.
type selection struct {
	net    Network
	params *Params

	// unit is only set on the unit test network.
	unit *UnitTestParams
}

// NetSelector holds the parameters of the network the node runs on.  The
// daemon creates one selector and hands it to every component that consults
// consensus rules.
//
// A network is selected once.  Selecting the same network again is a no-op and
// selecting a different one fails unless the current network is one of the
// test networks, which may be reselected.  Reads are lock free.
type NetSelector struct {
	mtx      sync.Mutex
	selected atomic.Pointer[selection]
}

// NewNetSelector returns a selector with no network selected.
func NewNetSelector() *NetSelector {
	return &NetSelector{}
}

// Select builds and activates the parameters of the given network.  An error
// is returned when the parameters fail their genesis check or when a
// different network is already active on a production network.
func (s *NetSelector) Select(net Network) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if cur := s.selected.Load(); cur != nil {
		if cur.net == net {
			return nil
		}
		if cur.net != RegTest && cur.net != UnitTest {
			return fmt.Errorf("%w: %v active, %v requested",
				ErrNetworkAlreadySelected, cur.net, net)
		}
	}

	params, err := NewParams(net)
	if err != nil {
		return err
	}

	sel := &selection{net: net, params: params}
	if net == UnitTest {
		sel.unit = newUnitTestParams(*params)
	}
	s.selected.Store(sel)

	log.Infof("Selected %s network (magic %v, port %s)", params.Name,
		params.Net, params.DefaultPort)
	return nil
}

// Selected returns the selected network and whether one was selected.
func (s *NetSelector) Selected() (Network, bool) {
	sel := s.selected.Load()
	if sel == nil {
		return 0, false
	}
	return sel.net, true
}

// Active returns the parameters of the selected network.  On the unit test
// network the returned value is a snapshot including the current overrides.
func (s *NetSelector) Active() (*Params, error) {
	sel := s.selected.Load()
	if sel == nil {
		return nil, ErrNoNetworkSelected
	}
	if sel.unit != nil {
		return sel.unit.Params(), nil
	}
	return sel.params, nil
}

// MustActive is like Active but panics when no network was selected.  It is
// meant for code paths that only run after startup.
func (s *NetSelector) MustActive() *Params {
	params, err := s.Active()
	if err != nil {
		panic(err)
	}
	return params
}

// Modifiable returns the modifiable unit test parameters.  It fails with
// ErrNotModifiable on every other network.
func (s *NetSelector) Modifiable() (*UnitTestParams, error) {
	sel := s.selected.Load()
	if sel == nil {
		return nil, ErrNoNetworkSelected
	}
	if sel.unit == nil {
		return nil, fmt.Errorf("%w: %v", ErrNotModifiable, sel.net)
	}
	return sel.unit, nil
}
