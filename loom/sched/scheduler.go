// Copyright Loomlab Authors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package sched

import (
	log "github.com/sirupsen/logrus"

	"go.loomlab.io/loom/appctx"
	"go.loomlab.io/loom/core"
	"go.loomlab.io/loom/faults"
)

// Scheduler assigns runnable strands to idle carriers and reclaims a carrier
// whenever its strand suspends. A single dispatch loop pops the FIFO run
// queue; yields are handled on the carrier that produced them.
type Scheduler struct {
	queue  *runQueue
	pool   *core.CarrierPool
	appCtx appctx.ApplicationContext

	// finish seals a task's result after its strand terminated. Installed by
	// the executor.
	finish func(t *task, panicValue interface{})

	shutdownCh chan struct{}
	loopDone   chan struct{}
}

// NewScheduler returns a scheduler dispatching onto the given pool.
func NewScheduler(pool *core.CarrierPool, appCtx appctx.ApplicationContext) *Scheduler {
	return &Scheduler{
		queue:      newRunQueue(),
		pool:       pool,
		appCtx:     appCtx,
		shutdownCh: make(chan struct{}),
		loopDone:   make(chan struct{}),
	}
}

// Start launches the dispatch loop.
func (s *Scheduler) Start() {
	go s.dispatchLoop()
}

// Stop terminates the dispatch loop. All submitted tasks must have
// terminated before Stop is called.
func (s *Scheduler) Stop() {
	close(s.shutdownCh)
	s.queue.Close()
	<-s.loopDone
}

// Enqueue makes a freshly submitted strand runnable.
func (s *Scheduler) Enqueue(t *task) error {
	if err := t.strand.Schedule(); err != nil {
		return err
	}
	return s.queue.Push(t)
}

// wake re-enqueues a suspended strand after its awaited event fired. Wakeups
// arrive from timer goroutines, event completions and unlock handoffs.
func (s *Scheduler) wake(t *task) {
	if err := t.strand.Schedule(); err != nil {
		log.WithError(err).Errorf("Dropping wakeup for strand %s", t.strand.ID())
		return
	}
	if err := s.queue.Push(t); err != nil {
		log.WithError(err).Errorf("Failed to re-enqueue strand %s", t.strand.ID())
	}
}

// QueueDepth returns the number of runnable strands awaiting a carrier.
func (s *Scheduler) QueueDepth() int {
	return s.queue.Len()
}

func (s *Scheduler) dispatchLoop() {
	defer close(s.loopDone)
	for {
		t, ok := s.queue.Pop()
		if !ok {
			return
		}

		carrier, ok := s.acquireCarrier()
		if !ok {
			log.Debugf("Shutdown while strand %s was runnable", t.strand.ID())
			return
		}

		if err := t.strand.Mount(); err != nil {
			// Cancelled between pop and mount; its future is already sealed.
			s.pool.Release(carrier)
			log.Debugf("Skipping strand %s: %s", t.strand.ID(), err)
			continue
		}

		carrier.Mount(&core.MountRequest{
			Cont: t.cont,
			OnYield: func(carrier *core.Carrier, yield core.Yield, err error) {
				s.onYield(t, carrier, yield, err)
			},
		})
	}
}

// acquireCarrier waits for a free carrier without spinning. Fails closed on
// shutdown.
func (s *Scheduler) acquireCarrier() (*core.Carrier, bool) {
	for {
		if carrier, ok := s.pool.Acquire(); ok {
			return carrier, true
		}
		select {
		case <-s.pool.ReleaseNotify():
		case <-s.shutdownCh:
			return nil, false
		}
	}
}

// onYield runs on the carrier worker that executed the strand.
func (s *Scheduler) onYield(t *task, carrier *core.Carrier, yield core.Yield, err error) {
	if err != nil {
		// Resuming an owned continuation can only fail if the single-owner
		// invariant was broken.
		s.pool.Release(carrier)
		appctx.StoreFirstFatalError(s.appCtx, faults.SchedulerFault)
		log.WithError(err).Errorf("Failed to resume strand %s", t.strand.ID())
		return
	}

	switch yield.Kind {
	case core.YieldSuspended:
		if err := t.strand.Suspend(); err != nil {
			appctx.StoreFirstFatalError(s.appCtx, faults.SchedulerFault)
			log.WithError(err).Errorf("Failed to suspend strand %s", t.strand.ID())
		}
		s.pool.Release(carrier)
		// Arm the wakeup only after the unmount completed, so the event can
		// never observe a half-unmounted strand.
		yield.Prepare()

	case core.YieldDone:
		if err := t.strand.Complete(); err != nil {
			appctx.StoreFirstFatalError(s.appCtx, faults.SchedulerFault)
			log.WithError(err).Errorf("Failed to complete strand %s", t.strand.ID())
		}
		s.pool.Release(carrier)
		s.finish(t, yield.PanicValue)
	}
}
