// Copyright Loomlab Authors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package sched

import (
	"sync"

	log "github.com/sirupsen/logrus"

	"go.loomlab.io/loom/core"
)

// Future is the result handle of a submitted task. Every terminated strand
// carries either a value or a recorded failure; there is no silent failure.
type Future struct {
	t  *task
	ex *Executor

	gate core.Gate

	mu      sync.Mutex
	done    bool
	value   interface{}
	err     error
	waiters []*Event
}

func newFuture() *Future {
	return &Future{gate: core.NewGate(1)}
}

// stash records the body's return values. Called in-strand; the future is
// not observable as done until the strand reaches Terminated.
func (f *Future) stash(value interface{}, err error) {
	f.mu.Lock()
	f.value = value
	f.err = err
	f.mu.Unlock()
}

// complete seals the future. A non-nil overrideErr replaces the stashed
// result (cancellation, panic wrap). Idempotent.
func (f *Future) complete(overrideErr error) {
	f.mu.Lock()
	if f.done {
		f.mu.Unlock()
		return
	}
	f.done = true
	if overrideErr != nil {
		f.value = nil
		f.err = overrideErr
	}
	waiters := f.waiters
	f.waiters = nil
	f.mu.Unlock()

	if err := f.gate.WalkThrough(); err != nil {
		log.WithError(err).Error("Future result gate integrity violation")
	}
	for _, ev := range waiters {
		ev.Fire()
	}
}

// Done reports whether the task reached a terminal state.
func (f *Future) Done() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.done
}

// Await blocks the calling goroutine until the task terminates. Use Get from
// inside a strand instead, so the wait suspends rather than occupies a
// carrier.
func (f *Future) Await() (interface{}, error) {
	if err := f.gate.AwaitGateCondition(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.value, f.err
}

// Get suspends the calling strand until the task terminates.
func (f *Future) Get(ctx *Ctx) (interface{}, error) {
	f.mu.Lock()
	if f.done {
		defer f.mu.Unlock()
		return f.value, f.err
	}
	ev := NewEvent()
	f.waiters = append(f.waiters, ev)
	f.mu.Unlock()

	if err := ctx.Await(ev); err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	return f.value, f.err
}

// Cancel discards the task when it was never mounted; its body will not
// execute. A task that already ran on a carrier is cancelled cooperatively:
// the flag is observed at its next suspension point or safepoint.
func (f *Future) Cancel() {
	if err := f.t.strand.Cancel(); err == nil {
		f.ex.finishTask(f.t, ErrCancelled)
		return
	}
	f.t.strand.RequestCancel()
}
