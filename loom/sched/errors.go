// Copyright Loomlab Authors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package sched

import (
	"errors"
	"fmt"
)

var ErrClosed = errors.New("ExecutorClosed")
var ErrCancelled = errors.New("StrandCancelled")
var ErrCapacityExceeded = errors.New("CapacityExceeded")

var ErrNotOwner = errors.New("MutexNotOwner")
var ErrAlreadyOwner = errors.New("MutexAlreadyOwner")

var ErrQueueClosed = errors.New("QueueClosed")

// TaskError wraps a fault raised inside a strand body. It is surfaced only
// via the task's future, never propagated to the carrier or scheduler.
type TaskError struct {
	PanicValue interface{}
}

func (e *TaskError) Error() string {
	return fmt.Sprintf("task panicked: %v", e.PanicValue)
}
