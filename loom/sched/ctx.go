// Copyright Loomlab Authors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package sched

import (
	"time"

	"github.com/google/uuid"

	"go.loomlab.io/loom/core"
)

// Ctx is the blocking-operation interceptor surface handed to every strand
// body. Each method that would block an OS thread instead registers a wakeup
// event source, suspends the strand and returns the carrier to the pool.
// Every suspension point doubles as a cancellation safepoint.
//
// A Ctx is owned by exactly one strand and must not escape it.
type Ctx struct {
	strand  *core.Strand
	yielder *core.Yielder
	sched   *Scheduler
	t       *task
}

// ID returns the strand identity. It is stable across any number of
// mount/unmount cycles regardless of which carrier executes the strand, and
// is the identity lock ownership is tracked by.
func (c *Ctx) ID() uuid.UUID {
	return c.strand.ID()
}

// Cancelled reports whether cooperative cancellation was requested.
func (c *Ctx) Cancelled() bool {
	return c.strand.CancelRequested()
}

// Sleep suspends the strand for at least d without occupying a carrier.
func (c *Ctx) Sleep(d time.Duration) error {
	if c.Cancelled() {
		return ErrCancelled
	}
	t := c.t
	sched := c.sched
	c.yielder.Suspend(func() {
		time.AfterFunc(d, func() {
			sched.wake(t)
		})
	})
	if c.Cancelled() {
		return ErrCancelled
	}
	return nil
}

// Await suspends the strand until the event fires. Returns immediately when
// it already has.
func (c *Ctx) Await(ev *Event) error {
	if c.Cancelled() {
		return ErrCancelled
	}
	if ev.Fired() {
		return nil
	}
	t := c.t
	sched := c.sched
	c.yielder.Suspend(func() {
		ev.subscribe(func() {
			sched.wake(t)
		})
	})
	if c.Cancelled() {
		return ErrCancelled
	}
	return nil
}

// Yield gives up the carrier voluntarily and re-enqueues the strand at the
// back of the run queue. Useful as a safepoint in long computations.
func (c *Ctx) Yield() error {
	if c.Cancelled() {
		return ErrCancelled
	}
	t := c.t
	sched := c.sched
	c.yielder.Suspend(func() {
		sched.wake(t)
	})
	if c.Cancelled() {
		return ErrCancelled
	}
	return nil
}
