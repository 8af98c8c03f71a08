// Copyright (c) 2025 The utreexo developers
// Copyright (c) 2019-2024 The synxd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"log"
	"os"

	"github.com/syndicateltd/synxd/chaincfg"
	"github.com/syndicateltd/synxd/zerocoin"
	"github.com/syndicateltd/synxd/zerocoin/mintdb"
)

var usage string = "Usage: mintstats <network> <dir_path>. The mint index can be found " +
	"under DATA_DIR/<network>/mints/. Networks are main, test, regtest and unittest. " +
	"synxd must not be running."

// parseNetwork returns the network with the given name.
func parseNetwork(name string) (chaincfg.Network, error) {
	for _, net := range []chaincfg.Network{chaincfg.MainNet,
		chaincfg.TestNet, chaincfg.RegTest, chaincfg.UnitTest} {

		if net.String() == name {
			return net, nil
		}
	}
	return 0, fmt.Errorf("unknown network %q", name)
}

func main() {
	if len(os.Args) < 3 {
		log.Fatal(usage)
	}

	net, err := parseNetwork(os.Args[1])
	if err != nil {
		log.Fatalf("%v\n%v", err, usage)
	}
	params, err := chaincfg.NewParams(net)
	if err != nil {
		log.Fatalf("Failed to load %v parameters: %v", net, err)
	}

	db, err := mintdb.Open(&mintdb.Config{Path: os.Args[2], Params: params})
	if err != nil {
		log.Fatalf("Failed to open mint index: %v\n%v", err, usage)
	}
	defer db.Close()

	first, tip := db.FirstHeight(), db.BestHeight()
	if tip < 0 {
		fmt.Println("mint index is empty")
		return
	}

	counts := make(map[zerocoin.Denomination]int, len(zerocoin.Denominations))
	var total int
	for height := first; height <= tip; height++ {
		mints, err := db.FetchBlockMints(height)
		if err != nil {
			log.Fatalf("Failed to read mints at height %d: %v", height, err)
		}
		for _, coin := range mints {
			counts[coin.Denomination]++
		}
		total += len(mints)
	}

	stump := db.Stump()
	fmt.Printf("heights %d-%d: %d mints, %d summary leaves, %d roots\n",
		first, tip, total, stump.NumLeaves, len(stump.Roots))
	fmt.Printf("coin digest %x\n", db.MintSetDigest())
	for _, denom := range zerocoin.Denominations {
		acc, err := db.FetchAccumulator(tip, denom)
		if err != nil {
			log.Fatalf("Failed to read %v accumulator: %v", denom, err)
		}
		fmt.Printf("%v: %d mints, accumulator %d bits\n", denom,
			counts[denom], acc.Value().BitLen())
	}
}
