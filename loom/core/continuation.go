// Copyright Loomlab Authors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package core

import (
	"errors"
	"sync"
)

// ErrInvalidState returned on resuming a continuation that is already running
// or already finished.
var ErrInvalidState = errors.New("InvalidState")

// YieldKind discriminates what a resumed continuation yielded back.
type YieldKind int

const (
	// YieldSuspended: the body parked at a blocking-operation boundary.
	YieldSuspended YieldKind = iota
	// YieldDone: the body returned or panicked.
	YieldDone
)

// Yield is what Resume hands back to the carrier when control returns.
type Yield struct {
	Kind YieldKind

	// Prepare is non-nil for YieldSuspended. It arms the wakeup event source
	// and must be invoked only after the strand has transitioned to Suspended,
	// so the wakeup can never observe a half-unmounted strand.
	Prepare func()

	// PanicValue carries a fault recovered from the body, for YieldDone only.
	// Faults never propagate onto the carrier's stack.
	PanicValue interface{}
}

// Continuation holds the suspended execution state of a strand between
// mounts. The parked body goroutine is the captured stack; its memory grows
// and shrinks with call depth, nothing is preallocated. A continuation is
// exclusively owned by one strand and is never resumed concurrently.
type Continuation struct {
	body func(*Yielder)

	resumeCh chan struct{}
	yieldCh  chan Yield

	mu      sync.Mutex
	started bool
	running bool
	done    bool
}

// NewContinuation wraps body into a resumable continuation. No goroutine is
// started until the first Resume, so a continuation discarded before its
// first mount costs nothing.
func NewContinuation(body func(*Yielder)) *Continuation {
	return &Continuation{
		body:     body,
		resumeCh: make(chan struct{}),
		yieldCh:  make(chan Yield),
	}
}

// Resume restores the captured state onto the calling carrier's stack and
// transfers control to the resume point. It blocks until the body suspends
// or terminates. Resuming a running or finished continuation fails with
// ErrInvalidState.
func (c *Continuation) Resume() (Yield, error) {
	c.mu.Lock()
	if c.done || c.running {
		c.mu.Unlock()
		return Yield{}, ErrInvalidState
	}
	c.running = true
	if !c.started {
		c.started = true
		go c.run()
	}
	c.mu.Unlock()

	c.resumeCh <- struct{}{}
	yield := <-c.yieldCh

	c.mu.Lock()
	c.running = false
	if yield.Kind == YieldDone {
		c.done = true
	}
	c.mu.Unlock()

	return yield, nil
}

// Done reports whether the continuation has finished.
func (c *Continuation) Done() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.done
}

func (c *Continuation) run() {
	<-c.resumeCh

	defer func() {
		c.yieldCh <- Yield{Kind: YieldDone, PanicValue: recover()}
	}()

	c.body(&Yielder{c: c})
}

// Yielder is handed to the continuation body and is its only way to give up
// the carrier.
type Yielder struct {
	c *Continuation
}

// Suspend parks the body until the next Resume. The prepare callback travels
// with the yield and is run by the scheduler after the unmount completes.
func (y *Yielder) Suspend(prepare func()) {
	y.c.yieldCh <- Yield{Kind: YieldSuspended, Prepare: prepare}
	<-y.c.resumeCh
}
