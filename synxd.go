// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2019-2024 The synxd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/syndicateltd/synxd/blockchain"
	"github.com/syndicateltd/synxd/chaincfg"
	"github.com/syndicateltd/synxd/lightzerocoin"
	"github.com/syndicateltd/synxd/zerocoin/mintdb"
)

var (
	cfg *config
)

// synxdMain is the real main function for synxd.  It is necessary to work
// around the fact that deferred functions do not run when os.Exit() is called.
func synxdMain() error {
	// Load configuration and parse command line.  This function also
	// initializes logging and configures it accordingly.
	tcfg, _, err := loadConfig()
	if err != nil {
		return err
	}
	cfg = tcfg
	defer func() {
		if logRotator != nil {
			logRotator.Close()
		}
	}()

	// Get a channel that will be closed when a shutdown signal has been
	// triggered either from an OS signal such as SIGINT (Ctrl+C) or from
	// another subsystem such as the RPC server.
	interrupt := interruptListener()
	defer synxLog.Info("Shutdown complete")

	// Show version at startup.
	synxLog.Infof("Version %s", version())

	// Select the network.  The genesis block of the network is checked
	// against its parameters here and a mismatch is fatal.
	selector := chaincfg.NewNetSelector()
	if err := selector.Select(cfg.network); err != nil {
		synxLog.Errorf("Unable to select network %v: %v", cfg.network, err)
		return err
	}
	params := selector.MustActive()
	synxLog.Infof("Genesis block %v", params.GenesisBlock.BlockHash())

	checkpoints := blockchain.NewCheckpoints(params, cfg.DisableCheckpoints)
	if latest := checkpoints.Latest(); latest != nil {
		synxLog.Infof("Latest checkpoint at height %d (%v)",
			latest.Height, latest.Hash)
	} else {
		synxLog.Infof("Checkpoints disabled")
	}

	// Return now if an interrupt signal was triggered.
	if interruptRequested(interrupt) {
		return nil
	}

	// Load the mint index.
	dbPath := filepath.Join(cfg.DataDir, defaultMintDbDirname)
	synxLog.Infof("Loading mint index from '%s'", dbPath)
	db, err := mintdb.Open(&mintdb.Config{Path: dbPath, Params: params})
	if err != nil {
		synxLog.Errorf("%v", err)
		return err
	}
	defer func() {
		// Ensure the database is sync'd and closed on shutdown.
		synxLog.Infof("Gracefully shutting down the mint index...")
		db.Close()
	}()
	synxLog.Infof("Mint index height %d", db.BestHeight())

	// Return now if an interrupt signal was triggered.
	if interruptRequested(interrupt) {
		return nil
	}

	if !cfg.NoWitnessWorker {
		worker, err := lightzerocoin.New(&lightzerocoin.Config{
			Chain:     selector,
			Store:     db,
			Budget:    cfg.WitnessBudget,
			QueueHint: cfg.WitnessQueueHint,
		})
		if err != nil {
			synxLog.Errorf("Unable to create witness worker: %v", err)
			return err
		}
		if err := worker.Start(); err != nil {
			return err
		}
		defer func() {
			synxLog.Infof("Gracefully shutting down the witness worker...")
			worker.Stop()
		}()
		synxLog.Infof("Serving light zerocoin witnesses, budget %d blocks",
			effectiveBudget(params, cfg.WitnessBudget))
	}

	// Wait until the interrupt signal is received from an OS signal or
	// shutdown is requested through one of the subsystems.
	<-interrupt
	return nil
}

// effectiveBudget returns the per request replay budget the worker uses.
func effectiveBudget(params *chaincfg.Params, budget int) int {
	if budget != 0 {
		return budget
	}
	return lightzerocoin.CompMaxAmount(params)
}

func main() {
	// Work around defer not working after os.Exit()
	if err := synxdMain(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
