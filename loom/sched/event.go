// Copyright Loomlab Authors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package sched

import "sync"

// Event is a one-shot completion source. Blocking operations register a
// wakeup against it instead of blocking a carrier; Fire marks it complete
// and runs all registered wakeups exactly once.
type Event struct {
	mu      sync.Mutex
	fired   bool
	wakeups []func()
}

// NewEvent returns an unfired event.
func NewEvent() *Event {
	return &Event{}
}

// Fire marks the event complete. Subsequent fires are no-ops.
func (e *Event) Fire() {
	e.mu.Lock()
	if e.fired {
		e.mu.Unlock()
		return
	}
	e.fired = true
	wakeups := e.wakeups
	e.wakeups = nil
	e.mu.Unlock()

	for _, wakeup := range wakeups {
		wakeup()
	}
}

// Fired reports whether the event already completed.
func (e *Event) Fired() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.fired
}

// subscribe registers a wakeup, invoking it immediately when the event has
// already fired. Wakeups must not block.
func (e *Event) subscribe(wakeup func()) {
	e.mu.Lock()
	if e.fired {
		e.mu.Unlock()
		wakeup()
		return
	}
	e.wakeups = append(e.wakeups, wakeup)
	e.mu.Unlock()
}
