// Copyright Loomlab Authors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package sched

import (
	"sync"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/semaphore"

	"go.loomlab.io/loom/appctx"
	"go.loomlab.io/loom/core"
	"go.loomlab.io/loom/core/statejson"
)

// TaskFunc is a strand body. It runs sequentially, suspending only at the
// blocking operations exposed on Ctx.
type TaskFunc func(ctx *Ctx) (interface{}, error)

// Executor is the task submission API over the scheduling core. Build one
// with NewExecutorBuilder.
type Executor struct {
	appCtx   appctx.ApplicationContext
	pool     *core.CarrierPool
	sched    *Scheduler
	registry *strandRegistry

	// sem caps the number of live strands; nil means unbounded.
	sem *semaphore.Weighted

	tasksWg sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

// Submit schedules fn as a new strand and returns its result handle.
// Fails with ErrClosed after Close and ErrCapacityExceeded when the
// configured strand cap is reached.
func (ex *Executor) Submit(fn TaskFunc) (*Future, error) {
	ex.mu.Lock()
	if ex.closed {
		ex.mu.Unlock()
		return nil, ErrClosed
	}
	ex.tasksWg.Add(1)
	ex.mu.Unlock()

	if ex.sem != nil && !ex.sem.TryAcquire(1) {
		ex.tasksWg.Done()
		return nil, ErrCapacityExceeded
	}

	strand := core.NewStrand()
	fut := newFuture()
	t := &task{strand: strand, future: fut}
	fut.t = t
	fut.ex = ex

	t.cont = core.NewContinuation(func(y *core.Yielder) {
		ctx := &Ctx{strand: strand, yielder: y, sched: ex.sched, t: t}
		value, err := fn(ctx)
		fut.stash(value, err)
	})

	ex.registry.add(t)
	if err := ex.sched.Enqueue(t); err != nil {
		ex.registry.remove(t)
		if ex.sem != nil {
			ex.sem.Release(1)
		}
		ex.tasksWg.Done()
		return nil, err
	}

	log.Debugf("Submitted strand %s", strand.ID())
	return fut, nil
}

// finishTask seals a task's result and releases its accounting. termErr
// overrides the stashed result when non-nil (cancellation, panic wrap).
func (ex *Executor) finishTask(t *task, termErr error) {
	t.future.complete(termErr)
	ex.registry.remove(t)
	if ex.sem != nil {
		ex.sem.Release(1)
	}
	ex.tasksWg.Done()
}

// onTerminate adapts the scheduler's terminal callback onto finishTask.
func (ex *Executor) onTerminate(t *task, panicValue interface{}) {
	var termErr error
	if panicValue != nil {
		termErr = &TaskError{PanicValue: panicValue}
	}
	ex.finishTask(t, termErr)
}

// Drain blocks until every submitted task has terminated, without closing
// the executor.
func (ex *Executor) Drain() {
	ex.tasksWg.Wait()
}

// Close stops intake, waits for all submitted tasks to finish and releases
// the carrier pool. Safe against double close.
func (ex *Executor) Close() error {
	ex.mu.Lock()
	if ex.closed {
		ex.mu.Unlock()
		return ErrClosed
	}
	ex.closed = true
	ex.mu.Unlock()

	log.Info("Closing executor, draining submitted tasks")
	ex.tasksWg.Wait()
	ex.sched.Stop()
	ex.pool.Stop()
	log.Info("Executor closed")
	return nil
}

// AppCtx returns the executor-scoped application context, for wiring the
// inspect API.
func (ex *Executor) AppCtx() appctx.ApplicationContext {
	return ex.appCtx
}

// InternalState returns a snapshot of live strands, pool occupancy and queue
// depth for debugging purposes.
func (ex *Executor) InternalState() statejson.InternalStateDescription {
	desc := statejson.InternalStateDescription{
		Strands: ex.registry.descriptions(),
		CarrierPool: statejson.CarrierPoolDescription{
			Size:     ex.pool.Size(),
			Idle:     ex.pool.Idle(),
			Replaced: ex.pool.Replaced(),
		},
		QueueDepth: ex.sched.QueueDepth(),
	}
	if errorType, found := appctx.LoadFirstFatalError(ex.appCtx); found {
		desc.FirstFatalError = string(errorType)
	}
	return desc
}
