// Copyright Loomlab Authors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package sched

// Go submits a typed strand body and returns a typed view of its future.
func Go[T any](ex *Executor, fn func(ctx *Ctx) (T, error)) (*TypedFuture[T], error) {
	fut, err := ex.Submit(func(ctx *Ctx) (interface{}, error) {
		value, err := fn(ctx)
		return value, err
	})
	if err != nil {
		return nil, err
	}
	return &TypedFuture[T]{fut: fut}, nil
}

// TypedFuture is a typed wrapper over Future.
type TypedFuture[T any] struct {
	fut *Future
}

// Future returns the untyped handle.
func (f *TypedFuture[T]) Future() *Future {
	return f.fut
}

// Await blocks the calling goroutine until the task terminates.
func (f *TypedFuture[T]) Await() (T, error) {
	return typed[T](f.fut.Await())
}

// Get suspends the calling strand until the task terminates.
func (f *TypedFuture[T]) Get(ctx *Ctx) (T, error) {
	return typed[T](f.fut.Get(ctx))
}

// Cancel discards or cooperatively cancels the task.
func (f *TypedFuture[T]) Cancel() {
	f.fut.Cancel()
}

func typed[T any](value interface{}, err error) (T, error) {
	if value == nil {
		var zero T
		return zero, err
	}
	return value.(T), err
}
