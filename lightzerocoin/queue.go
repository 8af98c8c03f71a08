// Copyright (c) 2019-2024 The synxd developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package lightzerocoin

import (
	"errors"

	"github.com/Workiva/go-datastructures/queue"
)

// errQueueDisposed is returned by the queue once it has been disposed.
var errQueueDisposed = errors.New("witness queue disposed")

// witnessQueue is an unbounded FIFO of witness requests.  Pushing never
// blocks and popping blocks until a request arrives or the queue is
// disposed.
type witnessQueue struct {
	q *queue.Queue
}

// newWitnessQueue returns an empty queue sized for hint requests.
func newWitnessQueue(hint int64) *witnessQueue {
	return &witnessQueue{q: queue.New(hint)}
}

// push appends the request.
func (wq *witnessQueue) push(req *WitnessRequest) error {
	if err := wq.q.Put(req); err != nil {
		if errors.Is(err, queue.ErrDisposed) {
			return errQueueDisposed
		}
		return err
	}
	return nil
}

// pop removes the oldest request, waiting for one if the queue is empty.
func (wq *witnessQueue) pop() (*WitnessRequest, error) {
	items, err := wq.q.Get(1)
	if err != nil {
		if errors.Is(err, queue.ErrDisposed) {
			return nil, errQueueDisposed
		}
		return nil, err
	}
	if len(items) == 0 {
		return nil, errQueueDisposed
	}
	return items[0].(*WitnessRequest), nil
}

// len returns the number of pending requests.
func (wq *witnessQueue) len() int {
	return int(wq.q.Len())
}

// dispose wakes any waiting pop and returns the requests left in the queue.
func (wq *witnessQueue) dispose() []*WitnessRequest {
	items := wq.q.Dispose()
	reqs := make([]*WitnessRequest, 0, len(items))
	for _, item := range items {
		reqs = append(reqs, item.(*WitnessRequest))
	}
	return reqs
}
