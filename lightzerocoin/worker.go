// Copyright (c) 2019-2024 The synxd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package lightzerocoin computes zerocoin membership witnesses for light
// clients.
//
// Requests are queued and served in arrival order by a single worker
// goroutine.  For each request the worker replays the mints of every block
// between the mint and target heights from the mint index, producing a
// witness for the coin together with a proof that the mints of its block
// are committed to by the index.
package lightzerocoin

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/syndicateltd/synxd/chaincfg"
	"github.com/syndicateltd/synxd/zerocoin"
	"github.com/syndicateltd/synxd/zerocoin/mintdb"
)

var (
	// ErrWorkerNotRunning is returned when a request is enqueued while the
	// worker is not running.
	ErrWorkerNotRunning = errors.New("light witness worker is not running")

	// ErrWorkerAlreadyStarted is returned when starting a worker that is
	// not stopped.
	ErrWorkerAlreadyStarted = errors.New("light witness worker already started")

	// ErrRequestReused is returned when enqueueing a request that was
	// already enqueued or was not created by NewWitnessRequest.
	ErrRequestReused = errors.New("witness request is single use")

	// errStopRequested aborts the request in progress on shutdown.
	errStopRequested = errors.New("stop requested")
)

// compWindow is the span of chain a single request may replay.
const compWindow = 60 * 24 * time.Hour

// CompMaxAmount returns the number of blocks a single request may replay:
// the blocks of 60 days at the target spacing of the network.
func CompMaxAmount(params *chaincfg.Params) int {
	if params.TargetTimePerBlock <= 0 {
		return 0
	}
	return int(compWindow / params.TargetTimePerBlock)
}

// State is the lifecycle state of a Worker.
type State int32

const (
	// Stopped is the state before Start and after Stop returns.
	Stopped State = iota

	// Running is the state while requests are accepted and served.
	Running

	// StopRequested is the state while Stop waits for the worker
	// goroutine to exit.
	StopRequested
)

// Map of State values back to their names for pretty printing.
var stateStrings = map[State]string{
	Stopped:       "stopped",
	Running:       "running",
	StopRequested: "stop requested",
}

// String returns the State as a human-readable name.
func (s State) String() string {
	if str, ok := stateStrings[s]; ok {
		return str
	}
	return fmt.Sprintf("Unknown State (%d)", int32(s))
}

// ParamsProvider returns the parameters of the selected network.
// chaincfg.NetSelector satisfies it.
type ParamsProvider interface {
	Active() (*chaincfg.Params, error)
}

// MintStore is the read side of the mint index used by the worker.
// mintdb.DB satisfies it.
type MintStore interface {
	BestHeight() int32
	FetchBlockMints(height int32) ([]*zerocoin.PublicCoin, error)
	FetchAccumulator(height int32, denom zerocoin.Denomination) (*zerocoin.Accumulator, error)
	FetchStartAccumulator(height int32, denom zerocoin.Denomination) (*zerocoin.Accumulator, error)
	ProveMintBlock(height int32) (*mintdb.MintProof, error)
}

// Config is a descriptor containing the worker configuration.
type Config struct {
	// Chain resolves the network parameters for every request.
	Chain ParamsProvider

	// Store is the mint index witnesses are computed from.
	Store MintStore

	// Budget overrides the number of blocks a request may replay.  Zero
	// uses CompMaxAmount of the active network.
	Budget int

	// Notify, when set, is called from the worker goroutine with every
	// result in delivery order.
	Notify func(*WitnessResult)

	// QueueHint is the expected number of pending requests.
	QueueHint int64
}

// Worker serves witness requests from a FIFO queue on a single goroutine.
type Worker struct {
	cfg Config

	// mtx guards state and the queue, quit and stopped channels of the
	// current run.  Enqueue holds it for reads so Stop cannot dispose the
	// queue under a push.
	mtx     sync.RWMutex
	state   State
	queue   *witnessQueue
	quit    chan struct{}
	stopped chan struct{}

	// pushMtx orders sequence numbers with queue insertion.
	pushMtx sync.Mutex
	seq     uint64

	wg sync.WaitGroup
}

// New returns a stopped worker.
func New(cfg *Config) (*Worker, error) {
	if cfg.Chain == nil || cfg.Store == nil {
		return nil, errors.New("light witness worker requires params " +
			"and a mint store")
	}
	if cfg.Budget < 0 {
		return nil, fmt.Errorf("negative witness budget %d", cfg.Budget)
	}
	return &Worker{cfg: *cfg}, nil
}

// Start begins serving requests.  A stopped worker may be started again.
func (w *Worker) Start() error {
	w.mtx.Lock()
	defer w.mtx.Unlock()

	if w.state != Stopped {
		return ErrWorkerAlreadyStarted
	}

	log.Trace("Starting light witness worker")
	w.queue = newWitnessQueue(w.cfg.QueueHint)
	w.quit = make(chan struct{})
	w.stopped = make(chan struct{})
	w.state = Running

	w.wg.Add(1)
	go w.witnessHandler(w.queue, w.quit)
	return nil
}

// Stop drops pending requests, aborts the one in progress and waits for the
// worker goroutine to exit.  Dropped requests have their result channel
// closed without a value.  Concurrent callers all return once the worker
// goroutine has exited.
func (w *Worker) Stop() {
	w.mtx.Lock()
	switch w.state {
	case Stopped:
		w.mtx.Unlock()
		log.Warnf("Light witness worker is already %v", w.state)
		return

	case StopRequested:
		stopped := w.stopped
		w.mtx.Unlock()
		<-stopped
		return
	}

	log.Infof("Light witness worker shutting down")
	w.state = StopRequested
	close(w.quit)
	pending := w.queue.dispose()
	w.mtx.Unlock()

	for _, req := range pending {
		log.Debugf("Dropping %v", req)
		req.abandon()
	}
	w.wg.Wait()

	w.mtx.Lock()
	w.state = Stopped
	close(w.stopped)
	w.mtx.Unlock()
}

// State returns the lifecycle state of the worker.
func (w *Worker) State() State {
	w.mtx.RLock()
	defer w.mtx.RUnlock()

	return w.state
}

// Pending returns the number of requests waiting to be served.
func (w *Worker) Pending() int {
	w.mtx.RLock()
	defer w.mtx.RUnlock()

	if w.state != Running {
		return 0
	}
	return w.queue.len()
}

// Enqueue queues the request.  It never blocks.  A request may only be
// enqueued once.
func (w *Worker) Enqueue(req *WitnessRequest) error {
	w.mtx.RLock()
	defer w.mtx.RUnlock()

	if w.state != Running {
		return ErrWorkerNotRunning
	}

	w.pushMtx.Lock()
	defer w.pushMtx.Unlock()

	if req.result == nil || req.queued {
		return ErrRequestReused
	}
	req.Seq = w.seq + 1
	req.queued = true
	if err := w.queue.push(req); err != nil {
		req.Seq, req.queued = 0, false
		if errors.Is(err, errQueueDisposed) {
			return ErrWorkerNotRunning
		}
		return err
	}
	w.seq = req.Seq

	log.Tracef("Queued %v", req)
	return nil
}

// EnqueueWitnessRequest queues a request for a witness of the coin and
// returns the channel its result is delivered on.
func (w *Worker) EnqueueWitnessRequest(coinID chainhash.Hash,
	denom zerocoin.Denomination, mintHeight,
	targetHeight int32) (<-chan *WitnessResult, error) {

	req := NewWitnessRequest(coinID, denom, mintHeight, targetHeight)
	if err := w.Enqueue(req); err != nil {
		return nil, err
	}
	return req.Result(), nil
}

// witnessHandler serves requests until the queue is disposed.
//
// It must be run as a goroutine.
func (w *Worker) witnessHandler(wq *witnessQueue, quit <-chan struct{}) {
	defer w.wg.Done()

out:
	for {
		req, err := wq.pop()
		if err != nil {
			if !errors.Is(err, errQueueDisposed) {
				log.Errorf("Unable to read witness queue: %v", err)
			}
			break out
		}

		result, err := w.computeWitness(req, quit)
		if errors.Is(err, errStopRequested) {
			log.Debugf("Abandoning %v", req)
			req.abandon()
			break out
		}

		if result.Err != nil {
			log.Debugf("Failed %v: %v", req, result.Err)
		} else {
			log.Debugf("Served %v with %d other coins in %d blocks",
				req, result.Witness.Elements(), result.Work)
		}

		req.deliver(result)
		if w.cfg.Notify != nil {
			w.cfg.Notify(result)
		}
	}

	log.Trace("Light witness worker done")
}

// computeWitness serves a single request.  The only error returned is
// errStopRequested; every other failure is reported in the result.
func (w *Worker) computeWitness(req *WitnessRequest, quit <-chan struct{}) (*WitnessResult, error) {
	result := &WitnessResult{
		Request:      req,
		TargetHeight: req.TargetHeight,
	}
	fail := func(code ErrorCode, height int32, format string, args ...interface{}) (*WitnessResult, error) {
		result.Err = witnessError(code, height, fmt.Sprintf(format, args...))
		return result, nil
	}

	params, err := w.cfg.Chain.Active()
	if err != nil {
		return fail(NonDetermined, req.MintHeight, "%v", err)
	}

	mint := req.MintHeight
	if !params.IsZerocoinActive(mint) {
		return fail(NonDetermined, mint, "zerocoin is not active at "+
			"mint height %d", mint)
	}
	if req.TargetHeight < mint {
		return fail(NonDetermined, mint, "target height %d is before "+
			"mint height %d", req.TargetHeight, mint)
	}
	tip := w.cfg.Store.BestHeight()
	if req.TargetHeight > tip {
		return fail(NonDetermined, mint, "target height %d is after "+
			"the best height %d", req.TargetHeight, tip)
	}
	if !req.Denomination.IsValid() {
		return fail(NonDetermined, mint, "%v", req.Denomination)
	}

	// Witnesses do not carry across the accumulator version switch.
	target := req.TargetHeight
	if !params.IsZerocoinV2(mint) && params.IsZerocoinV2(target) {
		target = params.ZerocoinV2Height - 1
		log.Debugf("Clamped %v to height %d", req, target)
	}
	result.TargetHeight = target

	if params.IsFraudWindow(mint) || params.IsFraudWindow(target) {
		log.Debugf("%v overlaps the fraudulent serial window", req)
	}

	budget := w.cfg.Budget
	if budget == 0 {
		budget = CompMaxAmount(params)
	}
	if work := int(target-mint) + 1; work > budget {
		return fail(NonDetermined, mint, "replaying %d blocks exceeds "+
			"the budget of %d", work, budget)
	}

	mints, err := w.cfg.Store.FetchBlockMints(mint)
	if err != nil {
		return fail(NonDetermined, mint, "%v", err)
	}
	var coin *zerocoin.PublicCoin
	for _, c := range mints {
		if c.Denomination == req.Denomination && c.ID() == req.CoinID {
			coin = c
			break
		}
	}
	if coin == nil {
		return fail(NonDetermined, mint, "coin %v not minted in block "+
			"%d", req.CoinID, mint)
	}

	start, err := w.cfg.Store.FetchStartAccumulator(mint, req.Denomination)
	if err != nil {
		return fail(NonDetermined, mint, "%v", err)
	}
	witness, err := zerocoin.NewWitness(start, coin)
	if err != nil {
		return fail(NonDetermined, mint, "%v", err)
	}
	acc := start.Copy()

	for height := mint; height <= target; height++ {
		select {
		case <-quit:
			return nil, errStopRequested
		default:
		}

		if height != mint {
			mints, err = w.cfg.Store.FetchBlockMints(height)
			if err != nil {
				return fail(NonDetermined, height, "%v", err)
			}
		}
		result.Work++

		for _, c := range mints {
			if c.Denomination != req.Denomination {
				continue
			}
			if err := acc.Accumulate(c); err != nil {
				return fail(NonDetermined, height, "%v", err)
			}
			if err := witness.AddElement(c); err != nil {
				return fail(NonDetermined, height, "%v", err)
			}
		}
	}

	if witness.Elements() < int(params.RequiredAccumulation) {
		return fail(NotEnoughMints, target, "%d other %v coins minted, "+
			"%d required", witness.Elements(), req.Denomination,
			params.RequiredAccumulation)
	}

	if params.DefaultConsistencyChecks {
		stored, err := w.cfg.Store.FetchAccumulator(target, req.Denomination)
		if err != nil {
			return fail(NonDetermined, target, "%v", err)
		}
		if !stored.Equal(acc) {
			return fail(NonDetermined, target, "replayed accumulator "+
				"does not match the stored one")
		}
	}

	if !witness.Verify(acc) {
		return fail(NonDetermined, target, "witness does not verify")
	}

	proof, err := w.cfg.Store.ProveMintBlock(mint)
	if err != nil {
		return fail(NonDetermined, mint, "%v", err)
	}

	result.Witness = witness
	result.Accumulator = acc
	result.MintProof = proof
	return result, nil
}
