// Copyright Loomlab Authors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package core

// String values of possible strand states
const (
	StrandNewStateName      = "New"
	StrandRunnableStateName = "Runnable"
	StrandMountedStateName  = "Mounted"
	// StrandMountedState -> StrandSuspendedState on a blocking-operation yield
	StrandSuspendedStateName  = "Suspended"
	StrandTerminatedStateName = "Terminated"
)
