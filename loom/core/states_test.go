// Copyright Loomlab Authors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStrandStateTransitionsFromNewState(t *testing.T) {
	strand := NewStrand()
	// New
	assert.Equal(t, strand.StrandNewState, strand.GetState())
	// New -> Runnable
	strand.SetState(strand.StrandNewState)
	assert.NoError(t, strand.Schedule())
	assert.Equal(t, strand.StrandRunnableState, strand.GetState())
	// New -> Terminated (cancel before execution)
	strand.SetState(strand.StrandNewState)
	assert.NoError(t, strand.Cancel())
	assert.Equal(t, strand.StrandTerminatedState, strand.GetState())
	// New -> Mounted
	strand.SetState(strand.StrandNewState)
	assert.Equal(t, ErrNotAllowed, strand.Mount())
	assert.Equal(t, strand.StrandNewState, strand.GetState())
	// New -> Suspended
	strand.SetState(strand.StrandNewState)
	assert.Equal(t, ErrNotAllowed, strand.Suspend())
	assert.Equal(t, strand.StrandNewState, strand.GetState())
	// New -> Terminated via Complete
	strand.SetState(strand.StrandNewState)
	assert.Equal(t, ErrNotAllowed, strand.Complete())
	assert.Equal(t, strand.StrandNewState, strand.GetState())
}

func TestStrandStateTransitionsFromRunnableState(t *testing.T) {
	strand := NewStrand()
	// Runnable -> Mounted
	strand.SetState(strand.StrandRunnableState)
	assert.NoError(t, strand.Mount())
	assert.Equal(t, strand.StrandMountedState, strand.GetState())
	// Runnable -> Terminated (cancel before mount)
	strand.SetState(strand.StrandRunnableState)
	assert.NoError(t, strand.Cancel())
	assert.Equal(t, strand.StrandTerminatedState, strand.GetState())
	// Runnable -> Runnable
	strand.SetState(strand.StrandRunnableState)
	assert.Equal(t, ErrNotAllowed, strand.Schedule())
	assert.Equal(t, strand.StrandRunnableState, strand.GetState())
	// Runnable -> Suspended
	strand.SetState(strand.StrandRunnableState)
	assert.Equal(t, ErrNotAllowed, strand.Suspend())
	assert.Equal(t, strand.StrandRunnableState, strand.GetState())
	// Runnable -> Terminated via Complete
	strand.SetState(strand.StrandRunnableState)
	assert.Equal(t, ErrNotAllowed, strand.Complete())
	assert.Equal(t, strand.StrandRunnableState, strand.GetState())
}

func TestStrandStateTransitionsFromMountedState(t *testing.T) {
	strand := NewStrand()
	// Mounted -> Suspended
	strand.SetState(strand.StrandMountedState)
	assert.NoError(t, strand.Suspend())
	assert.Equal(t, strand.StrandSuspendedState, strand.GetState())
	// Mounted -> Terminated
	strand.SetState(strand.StrandMountedState)
	assert.NoError(t, strand.Complete())
	assert.Equal(t, strand.StrandTerminatedState, strand.GetState())
	// Mounted -> Runnable
	strand.SetState(strand.StrandMountedState)
	assert.Equal(t, ErrNotAllowed, strand.Schedule())
	assert.Equal(t, strand.StrandMountedState, strand.GetState())
	// Mounted -> Mounted
	strand.SetState(strand.StrandMountedState)
	assert.Equal(t, ErrNotAllowed, strand.Mount())
	assert.Equal(t, strand.StrandMountedState, strand.GetState())
	// Mounted -> Terminated via Cancel (must be cooperative instead)
	strand.SetState(strand.StrandMountedState)
	assert.Equal(t, ErrNotAllowed, strand.Cancel())
	assert.Equal(t, strand.StrandMountedState, strand.GetState())
}

func TestStrandStateTransitionsFromSuspendedState(t *testing.T) {
	strand := NewStrand()
	// Suspended -> Runnable
	strand.SetState(strand.StrandSuspendedState)
	assert.NoError(t, strand.Schedule())
	assert.Equal(t, strand.StrandRunnableState, strand.GetState())
	// Suspended -> Mounted
	strand.SetState(strand.StrandSuspendedState)
	assert.Equal(t, ErrNotAllowed, strand.Mount())
	assert.Equal(t, strand.StrandSuspendedState, strand.GetState())
	// Suspended -> Suspended
	strand.SetState(strand.StrandSuspendedState)
	assert.Equal(t, ErrNotAllowed, strand.Suspend())
	assert.Equal(t, strand.StrandSuspendedState, strand.GetState())
	// Suspended -> Terminated via Complete
	strand.SetState(strand.StrandSuspendedState)
	assert.Equal(t, ErrNotAllowed, strand.Complete())
	assert.Equal(t, strand.StrandSuspendedState, strand.GetState())
	// Suspended -> Terminated via Cancel (must be cooperative instead)
	strand.SetState(strand.StrandSuspendedState)
	assert.Equal(t, ErrNotAllowed, strand.Cancel())
	assert.Equal(t, strand.StrandSuspendedState, strand.GetState())
}

func TestStrandStateTransitionsFromTerminatedState(t *testing.T) {
	strand := NewStrand()
	strand.SetState(strand.StrandTerminatedState)
	assert.Equal(t, ErrNotAllowed, strand.Schedule())
	assert.Equal(t, ErrNotAllowed, strand.Mount())
	assert.Equal(t, ErrNotAllowed, strand.Suspend())
	assert.Equal(t, ErrNotAllowed, strand.Complete())
	assert.Equal(t, ErrNotAllowed, strand.Cancel())
	assert.Equal(t, strand.StrandTerminatedState, strand.GetState())
}

func TestStrandCancelDisallowedOnceMounted(t *testing.T) {
	strand := NewStrand()
	assert.NoError(t, strand.Schedule())
	assert.NoError(t, strand.Mount())
	assert.NoError(t, strand.Suspend())
	assert.NoError(t, strand.Schedule())
	// runnable again, but the strand already ran on a carrier
	assert.Equal(t, ErrNotAllowed, strand.Cancel())
	assert.Equal(t, strand.StrandRunnableState, strand.GetState())
}

func TestStrandIdentityStableAcrossTransitions(t *testing.T) {
	strand := NewStrand()
	id := strand.ID()
	assert.NoError(t, strand.Schedule())
	assert.NoError(t, strand.Mount())
	assert.NoError(t, strand.Suspend())
	assert.NoError(t, strand.Schedule())
	assert.NoError(t, strand.Mount())
	assert.NoError(t, strand.Complete())
	assert.Equal(t, id, strand.ID())
}

func TestStrandCancelRequestFlag(t *testing.T) {
	strand := NewStrand()
	assert.False(t, strand.CancelRequested())
	strand.RequestCancel()
	assert.True(t, strand.CancelRequested())
}

func TestStrandDescription(t *testing.T) {
	strand := NewStrand()
	desc := strand.GetStrandDescription()
	assert.Equal(t, strand.ID().String(), desc.ID)
	assert.Equal(t, StrandNewStateName, desc.State.Name)
	assert.NotEqual(t, int64(0), desc.State.LastModified)
}
