// Copyright Loomlab Authors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package core

import (
	"fmt"
)

// MountRequest asks a carrier to resume a continuation and report the yield
// back to the scheduler.
type MountRequest struct {
	Cont *Continuation

	// OnYield runs on the carrier worker once the continuation suspends or
	// terminates. It must not block on other carriers.
	OnYield func(carrier *Carrier, yield Yield, err error)
}

// Carrier is a worker that executes mounted strands. At any instant it
// mounts zero or one strand. Carrier identity is the pool slot index and is
// never exposed as a strand's identity.
type Carrier struct {
	slot   int
	thread *ManagedThread

	// guarded by thread's lock
	pending  *MountRequest
	stopping bool
}

func newCarrier(slot int) *Carrier {
	return &Carrier{
		slot:   slot,
		thread: NewManagedThread(),
	}
}

// Slot returns the pool slot index this carrier occupies.
func (c *Carrier) Slot() int {
	return c.slot
}

func (c *Carrier) String() string {
	return fmt.Sprintf("carrier-%d", c.slot)
}

// Mount hands a strand's continuation to the carrier and wakes its worker.
// The caller must own the carrier via CarrierPool.Acquire.
func (c *Carrier) Mount(req *MountRequest) {
	c.thread.Lock()
	c.pending = req
	c.thread.Unlock()
	c.thread.Release()
}

func (c *Carrier) stop() {
	c.thread.Lock()
	c.stopping = true
	c.thread.Unlock()
	c.thread.Release()
}

// workLoop parks on the managed thread between mounts. ready, when non-nil,
// is signalled once before the first park. exited always runs on return,
// with the recovered fault if the worker panicked.
func (c *Carrier) workLoop(ready func(), exited func(c *Carrier, fault interface{})) {
	defer func() {
		exited(c, recover())
	}()

	if ready != nil {
		ready()
	}

	for {
		c.thread.Lock()
		if c.pending == nil && !c.stopping {
			c.thread.SuspendUnsafe()
		}
		req := c.pending
		c.pending = nil
		stopping := c.stopping
		c.thread.Unlock()

		if stopping {
			return
		}
		if req == nil {
			// stale release signal
			continue
		}

		yield, err := req.Cont.Resume()
		req.OnYield(c, yield, err)
	}
}
