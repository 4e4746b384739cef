// Copyright Loomlab Authors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package sched multiplexes many strands onto a small carrier pool. It owns
// the FIFO run queue, the dispatch loop, the blocking-operation interceptor
// surface (Ctx, Event, Mutex) and the task submission API (Executor, Future).
package sched
