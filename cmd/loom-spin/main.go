// Copyright Loomlab Authors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"os"
	"time"

	"github.com/jessevdk/go-flags"
	log "github.com/sirupsen/logrus"

	"go.loomlab.io/loom/logging"
	"go.loomlab.io/loom/sched"
)

type options struct {
	LogLevel    string `long:"log-level" default:"info" description:"log level"`
	Parallelism int    `long:"parallelism" default:"0" description:"carrier pool size, 0 means number of CPU cores"`
	MaxStrands  int64  `long:"max-strands" default:"0" description:"hard cap on live strands, 0 means unbounded"`
	Tasks       int    `long:"tasks" default:"10000" description:"number of strands to spin"`
	SleepMs     int    `long:"sleep-ms" default:"250" description:"per-strand suspend duration in milliseconds"`
	APIAddr     string `long:"api" default:"" description:"serve the inspect API on this address"`
}

func main() {
	opts := getCLIArgs()
	logging.SetLogLevel(opts.LogLevel)

	builder := sched.NewExecutorBuilder()
	if opts.Parallelism > 0 {
		builder.SetParallelism(opts.Parallelism)
	}
	if opts.MaxStrands > 0 {
		builder.SetMaxStrands(opts.MaxStrands)
	}

	executor, err := builder.Start()
	if err != nil {
		log.WithError(err).Fatal("Failed to start executor")
	}

	if opts.APIAddr != "" {
		go startHTTPServer(opts.APIAddr, executor.AppCtx())
	}

	sleep := time.Duration(opts.SleepMs) * time.Millisecond
	elapsed, err := spin(executor, opts.Tasks, sleep)
	if err != nil {
		log.WithError(err).Fatal("Workload failed")
	}

	log.Infof("Completed %d strands sleeping %s each in %s", opts.Tasks, sleep, elapsed)

	if err := executor.Close(); err != nil {
		log.WithError(err).Fatal("Failed to close executor")
	}
}

// spin submits count strands that each suspend for d and produce their
// index, then awaits them all. Wall time stays proportional to d plus
// scheduling overhead, not to count times d.
func spin(executor *sched.Executor, count int, d time.Duration) (time.Duration, error) {
	started := time.Now()

	futures := make([]*sched.TypedFuture[int], 0, count)
	for i := 0; i < count; i++ {
		index := i
		fut, err := sched.Go(executor, func(ctx *sched.Ctx) (int, error) {
			if err := ctx.Sleep(d); err != nil {
				return 0, err
			}
			return index, nil
		})
		if err != nil {
			return 0, err
		}
		futures = append(futures, fut)
	}

	for i, fut := range futures {
		value, err := fut.Await()
		if err != nil {
			return 0, err
		}
		if value != i {
			log.Warnf("Strand %d produced %d", i, value)
		}
	}

	return time.Since(started), nil
}

func getCLIArgs() options {
	var opts options
	parser := flags.NewParser(&opts, flags.IgnoreUnknown)
	if _, err := parser.ParseArgs(os.Args); err != nil {
		log.WithError(err).Fatal("Failed to parse command line arguments:", os.Args)
	}
	return opts
}
