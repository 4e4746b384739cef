// Copyright Loomlab Authors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package sched

import (
	"sync"

	"go.loomlab.io/loom/core"
)

// task binds a strand to its continuation and result handle. The run queue
// and the dispatch loop operate on tasks; user code only ever sees Future.
type task struct {
	strand *core.Strand
	cont   *core.Continuation
	future *Future
}

// runQueue is the ordered collection of runnable tasks awaiting a carrier.
// FIFO for fairness, no priorities.
type runQueue struct {
	mu     sync.Mutex
	cond   *sync.Cond
	items  []*task
	closed bool
}

func newRunQueue() *runQueue {
	q := &runQueue{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

func (q *runQueue) Push(t *task) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return ErrQueueClosed
	}
	q.items = append(q.items, t)
	q.cond.Signal()
	return nil
}

// Pop blocks until a task is available or the queue is closed. It drains
// remaining items before reporting closure.
func (q *runQueue) Pop() (*task, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for len(q.items) == 0 && !q.closed {
		q.cond.Wait()
	}
	if len(q.items) == 0 {
		return nil, false
	}
	t := q.items[0]
	q.items = q.items[1:]
	return t, true
}

func (q *runQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

func (q *runQueue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = true
	q.cond.Broadcast()
}
