// Copyright Loomlab Authors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package sched

import (
	"runtime"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/semaphore"

	"go.loomlab.io/loom/appctx"
	"go.loomlab.io/loom/core"
	"go.loomlab.io/loom/logging"
)

// ExecutorBuilder assembles an Executor. Parallelism defaults to the number
// of CPU cores; the strand cap defaults to unbounded.
type ExecutorBuilder struct {
	parallelism int
	maxStrands  int64
	logLevel    string
}

func NewExecutorBuilder() *ExecutorBuilder {
	return &ExecutorBuilder{
		parallelism: runtime.NumCPU(),
	}
}

// SetParallelism bounds the carrier pool size.
func (b *ExecutorBuilder) SetParallelism(parallelism int) *ExecutorBuilder {
	if parallelism < 1 {
		log.Warnf("Ignoring parallelism %d, must be at least 1", parallelism)
		return b
	}
	b.parallelism = parallelism
	return b
}

// SetMaxStrands configures a hard cap on live strands. Submissions beyond
// the cap fail with ErrCapacityExceeded.
func (b *ExecutorBuilder) SetMaxStrands(maxStrands int64) *ExecutorBuilder {
	b.maxStrands = maxStrands
	return b
}

// SetLogLevel configures internal logging before the executor starts.
func (b *ExecutorBuilder) SetLogLevel(logLevel string) *ExecutorBuilder {
	b.logLevel = logLevel
	return b
}

// Start opens the executor: the carrier pool is launched and the dispatch
// loop begins. The caller owns the returned executor and must Close it.
func (b *ExecutorBuilder) Start() (*Executor, error) {
	if b.logLevel != "" {
		logging.SetLogLevel(b.logLevel)
	}

	appCtx := appctx.NewApplicationContext()
	pool := core.NewCarrierPool(b.parallelism, appCtx)

	ex := &Executor{
		appCtx:   appCtx,
		pool:     pool,
		sched:    NewScheduler(pool, appCtx),
		registry: newStrandRegistry(),
	}
	ex.sched.finish = ex.onTerminate
	if b.maxStrands > 0 {
		ex.sem = semaphore.NewWeighted(b.maxStrands)
	}
	appctx.StoreStateGetter(appCtx, ex.InternalState)
	appctx.StoreShutdownFunc(appCtx, ex.Close)

	if err := pool.Start(); err != nil {
		return nil, err
	}
	ex.sched.Start()

	log.WithFields(log.Fields{
		"parallelism": b.parallelism,
		"maxStrands":  b.maxStrands,
	}).Info("Executor started")
	return ex, nil
}
