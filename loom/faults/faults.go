// Copyright Loomlab Authors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package faults

// This package defines constant error types recorded when a component of the
// scheduling core fails in an unrecoverable way.
// Separate package for namespacing.

// ErrorType identifies the kind of the first fatal error observed.
type ErrorType string

const (
	CarrierCrash       ErrorType = "Carrier.Crash"       // carrier worker panicked outside a strand body
	CarrierLaunchError ErrorType = "Carrier.LaunchError" // carrier worker could not be started
	SchedulerFault     ErrorType = "Scheduler.Fault"     // dispatch loop hit an illegal state transition
	Unknown            ErrorType = "Unknown"
)
