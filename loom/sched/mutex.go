// Copyright Loomlab Authors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package sched

import (
	"sync"

	"github.com/google/uuid"
)

// Mutex is a cooperative lock for strands. A contended Lock suspends the
// calling strand instead of blocking its carrier; Unlock hands the lock to
// the longest-waiting strand directly. Ownership is tracked by strand
// identity, which survives mount/unmount cycles.
type Mutex struct {
	mu      sync.Mutex
	owner   uuid.UUID
	waiters []*mutexWaiter
}

type mutexWaiter struct {
	id uuid.UUID
	ev *Event
}

// Lock acquires the mutex, suspending the strand while it is held elsewhere.
// The lock is not reentrant.
func (m *Mutex) Lock(ctx *Ctx) error {
	m.mu.Lock()
	if m.owner == uuid.Nil {
		m.owner = ctx.ID()
		m.mu.Unlock()
		return nil
	}
	if m.owner == ctx.ID() {
		m.mu.Unlock()
		return ErrAlreadyOwner
	}
	w := &mutexWaiter{id: ctx.ID(), ev: NewEvent()}
	m.waiters = append(m.waiters, w)
	m.mu.Unlock()

	if err := ctx.Await(w.ev); err != nil {
		m.withdraw(w)
		return err
	}
	return nil
}

// withdraw removes a cancelled waiter. Ownership may already have been
// handed over concurrently; in that case it is passed straight on.
func (m *Mutex) withdraw(w *mutexWaiter) {
	m.mu.Lock()
	if m.owner == w.id {
		next := m.passLocked()
		m.mu.Unlock()
		if next != nil {
			next.ev.Fire()
		}
		return
	}
	for i, waiter := range m.waiters {
		if waiter == w {
			m.waiters = append(m.waiters[:i], m.waiters[i+1:]...)
			break
		}
	}
	m.mu.Unlock()
}

// Unlock releases the mutex, handing it to the next waiter in FIFO order.
func (m *Mutex) Unlock(ctx *Ctx) error {
	m.mu.Lock()
	if m.owner != ctx.ID() {
		m.mu.Unlock()
		return ErrNotOwner
	}
	next := m.passLocked()
	m.mu.Unlock()
	if next != nil {
		next.ev.Fire()
	}
	return nil
}

func (m *Mutex) passLocked() *mutexWaiter {
	if len(m.waiters) == 0 {
		m.owner = uuid.Nil
		return nil
	}
	next := m.waiters[0]
	m.waiters = m.waiters[1:]
	m.owner = next.id
	return next
}

// Owner returns the identity of the holding strand, or uuid.Nil.
func (m *Mutex) Owner() uuid.UUID {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.owner
}
