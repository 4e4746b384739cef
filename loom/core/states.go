// Copyright Loomlab Authors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package core

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"go.loomlab.io/loom/core/statejson"
)

// ErrNotAllowed returned on illegal state transition
var ErrNotAllowed = errors.New("State transition is not allowed")

// StrandState is the strand state machine interface. A strand moves
// New -> Runnable -> Mounted -> {Suspended -> Runnable | Terminated}.
type StrandState interface {
	Schedule() error
	Mount() error
	Suspend() error
	Complete() error
	Cancel() error
	Name() string
}

type disallowEveryTransitionByDefault struct{}

func (s *disallowEveryTransitionByDefault) Schedule() error { return ErrNotAllowed }
func (s *disallowEveryTransitionByDefault) Mount() error    { return ErrNotAllowed }
func (s *disallowEveryTransitionByDefault) Suspend() error  { return ErrNotAllowed }
func (s *disallowEveryTransitionByDefault) Complete() error { return ErrNotAllowed }
func (s *disallowEveryTransitionByDefault) Cancel() error   { return ErrNotAllowed }

// Strand is a logical thread of execution. Its identity is stable across any
// number of mount/unmount cycles regardless of which carrier executes it.
type Strand struct {
	id uuid.UUID

	mu                sync.Mutex
	currentState      StrandState
	stateLastModified time.Time
	cancelRequested   bool
	everMounted       bool

	StrandNewState        StrandState
	StrandRunnableState   StrandState
	StrandMountedState    StrandState
	StrandSuspendedState  StrandState
	StrandTerminatedState StrandState
}

// ID returns the strand identity. Carrier identity is never exposed here.
func (s *Strand) ID() uuid.UUID {
	return s.id
}

// SetState ...
func (s *Strand) SetState(state StrandState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setStateUnsafe(state)
}

func (s *Strand) setStateUnsafe(state StrandState) {
	s.currentState = state
	s.stateLastModified = time.Now()
}

// GetState ...
func (s *Strand) GetState() StrandState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentState
}

// Schedule delegates to state implementation.
func (s *Strand) Schedule() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentState.Schedule()
}

// Mount delegates to state implementation.
func (s *Strand) Mount() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentState.Mount()
}

// Suspend delegates to state implementation.
func (s *Strand) Suspend() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentState.Suspend()
}

// Complete delegates to state implementation.
func (s *Strand) Complete() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentState.Complete()
}

// Cancel delegates to state implementation. It succeeds only before the
// strand was ever mounted; cancelling a mounted or suspended strand is
// cooperative and goes through RequestCancel instead.
func (s *Strand) Cancel() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentState.Cancel()
}

// RequestCancel marks the strand for cooperative cancellation, observed by
// the strand body at its next suspension point or safepoint.
func (s *Strand) RequestCancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelRequested = true
}

// CancelRequested reports whether cooperative cancellation was requested.
func (s *Strand) CancelRequested() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancelRequested
}

// GetStrandDescription returns a strand description object for debugging purposes
func (s *Strand) GetStrandDescription() statejson.StrandDescription {
	s.mu.Lock()
	defer s.mu.Unlock()
	return statejson.StrandDescription{
		ID: s.id.String(),
		State: statejson.StateDescription{
			Name:         s.currentState.Name(),
			LastModified: s.stateLastModified.UnixNano() / int64(time.Millisecond),
		},
	}
}

// NewStrand returns new Strand instance in the New state.
func NewStrand() *Strand {
	strand := &Strand{
		id: uuid.New(),
	}

	strand.StrandNewState = &StrandNewState{strand: strand}
	strand.StrandRunnableState = &StrandRunnableState{strand: strand}
	strand.StrandMountedState = &StrandMountedState{strand: strand}
	strand.StrandSuspendedState = &StrandSuspendedState{strand: strand}
	strand.StrandTerminatedState = &StrandTerminatedState{}

	strand.setStateUnsafe(strand.StrandNewState)
	return strand
}

// StrandNewState: the strand was created but not submitted yet.
type StrandNewState struct {
	disallowEveryTransitionByDefault
	strand *Strand
}

// Schedule makes the strand runnable on submission.
func (s *StrandNewState) Schedule() error {
	s.strand.setStateUnsafe(s.strand.StrandRunnableState)
	return nil
}

// Cancel discards the strand before it ever ran.
func (s *StrandNewState) Cancel() error {
	s.strand.setStateUnsafe(s.strand.StrandTerminatedState)
	return nil
}

// Name ...
func (s *StrandNewState) Name() string {
	return StrandNewStateName
}

// StrandRunnableState: the strand awaits a free carrier in the run queue.
type StrandRunnableState struct {
	disallowEveryTransitionByDefault
	strand *Strand
}

// Mount binds the strand to an acquired carrier.
func (s *StrandRunnableState) Mount() error {
	s.strand.everMounted = true
	s.strand.setStateUnsafe(s.strand.StrandMountedState)
	return nil
}

// Cancel discards a runnable strand, but only one that was never mounted.
// A strand that already ran holds captured execution state and must be
// cancelled cooperatively.
func (s *StrandRunnableState) Cancel() error {
	if s.strand.everMounted {
		return ErrNotAllowed
	}
	s.strand.setStateUnsafe(s.strand.StrandTerminatedState)
	return nil
}

// Name ...
func (s *StrandRunnableState) Name() string {
	return StrandRunnableStateName
}

// StrandMountedState: the strand executes on a carrier.
type StrandMountedState struct {
	disallowEveryTransitionByDefault
	strand *Strand
}

// Suspend unbinds the strand from its carrier at a blocking-operation yield.
func (s *StrandMountedState) Suspend() error {
	s.strand.setStateUnsafe(s.strand.StrandSuspendedState)
	return nil
}

// Complete terminates the strand; its result is recorded by the scheduler.
func (s *StrandMountedState) Complete() error {
	s.strand.setStateUnsafe(s.strand.StrandTerminatedState)
	return nil
}

// Name ...
func (s *StrandMountedState) Name() string {
	return StrandMountedStateName
}

// StrandSuspendedState: the strand waits for its wakeup event off-carrier.
type StrandSuspendedState struct {
	disallowEveryTransitionByDefault
	strand *Strand
}

// Schedule re-enqueues the strand after its awaited event fired.
func (s *StrandSuspendedState) Schedule() error {
	s.strand.setStateUnsafe(s.strand.StrandRunnableState)
	return nil
}

// Name ...
func (s *StrandSuspendedState) Name() string {
	return StrandSuspendedStateName
}

// StrandTerminatedState is terminal; every transition is disallowed.
type StrandTerminatedState struct {
	disallowEveryTransitionByDefault
}

// Name ...
func (s *StrandTerminatedState) Name() string {
	return StrandTerminatedStateName
}
