// Copyright Loomlab Authors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package core

import (
	"errors"
	"sync"

	log "github.com/sirupsen/logrus"

	"go.loomlab.io/loom/appctx"
)

// ErrPoolStopped returned when acquiring from a stopped pool.
var ErrPoolStopped = errors.New("PoolStopped")

// CarrierPool owns a fixed set of carriers indexed by slot. Acquire is a
// non-blocking attempt; a caller that finds no free carrier must wait on
// ReleaseNotify rather than spin. A carrier fault is fatal to that carrier
// only: its slot gets a replacement worker.
type CarrierPool struct {
	size     int
	watchdog *Watchdog

	readyGate Gate

	mu       sync.Mutex
	slots    []*Carrier
	free     []*Carrier
	replaced int
	stopped  bool

	workersWg sync.WaitGroup
	releaseCh chan struct{}
}

// NewCarrierPool returns a pool of the given size. Carriers are not started
// until Start.
func NewCarrierPool(size int, appCtx appctx.ApplicationContext) *CarrierPool {
	readyGate := NewGate(uint16(size))
	return &CarrierPool{
		size:      size,
		watchdog:  NewWatchdog(appCtx, readyGate),
		readyGate: readyGate,
		slots:     make([]*Carrier, size),
		releaseCh: make(chan struct{}, 1),
	}
}

// Start launches one worker per slot and blocks until all of them report
// ready, or fails if a worker dies during startup.
func (p *CarrierPool) Start() error {
	for slot := 0; slot < p.size; slot++ {
		carrier := newCarrier(slot)
		p.startWorker(carrier, p.readySignal())
	}
	if err := p.readyGate.AwaitGateCondition(); err != nil {
		log.WithError(err).Error("Carrier pool failed to start")
		return err
	}
	log.Debugf("Carrier pool started with %d carriers", p.size)
	return nil
}

func (p *CarrierPool) readySignal() func() {
	return func() {
		if err := p.readyGate.WalkThrough(); err != nil {
			log.WithError(err).Error("Carrier ready gate integrity violation")
		}
	}
}

func (p *CarrierPool) startWorker(carrier *Carrier, ready func()) {
	p.mu.Lock()
	p.slots[carrier.slot] = carrier
	p.free = append(p.free, carrier)
	p.mu.Unlock()

	p.workersWg.Add(1)
	go carrier.workLoop(ready, p.workerExited)
	p.notifyRelease()
}

func (p *CarrierPool) workerExited(carrier *Carrier, fault interface{}) {
	defer p.workersWg.Done()
	if fault == nil {
		return
	}

	p.watchdog.CarrierFault(carrier, fault)

	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.replaced++
	p.mu.Unlock()

	// The faulted carrier was executing and therefore not on the free list;
	// its slot gets a fresh worker.
	p.startWorker(newCarrier(carrier.slot), nil)
}

// Acquire attempts to take a free carrier. It never blocks.
func (p *CarrierPool) Acquire() (*Carrier, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stopped || len(p.free) == 0 {
		return nil, false
	}
	carrier := p.free[0]
	p.free = p.free[1:]
	return carrier, true
}

// Release returns a carrier to the free list and notifies one waiter.
func (p *CarrierPool) Release(carrier *Carrier) {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.free = append(p.free, carrier)
	p.mu.Unlock()
	p.notifyRelease()
}

// ReleaseNotify returns the channel signalled on every release, so callers
// can wait for a free carrier without spinning.
func (p *CarrierPool) ReleaseNotify() <-chan struct{} {
	return p.releaseCh
}

func (p *CarrierPool) notifyRelease() {
	select {
	case p.releaseCh <- struct{}{}:
	default:
	}
}

// Size returns the configured parallelism, the pool's baseline.
func (p *CarrierPool) Size() int {
	return p.size
}

// Idle returns the number of carriers currently free.
func (p *CarrierPool) Idle() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.free)
}

// Replaced returns how many carriers were discarded after a fault.
func (p *CarrierPool) Replaced() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.replaced
}

// Stop shuts down all carrier workers and waits for them to exit. Intended
// to be called once every mounted strand has terminated.
func (p *CarrierPool) Stop() {
	p.watchdog.Mute()

	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	carriers := make([]*Carrier, 0, len(p.slots))
	for _, carrier := range p.slots {
		if carrier != nil {
			carriers = append(carriers, carrier)
		}
	}
	p.mu.Unlock()

	for _, carrier := range carriers {
		carrier.stop()
	}
	p.workersWg.Wait()
	log.Debug("Carrier pool stopped")
}
