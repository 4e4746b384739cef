// Copyright Loomlab Authors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package core

import "sync"

// Suspendable on operator condition.
type Suspendable interface {
	SuspendUnsafe()
	Release()
	Lock()
	Unlock()
}

// ManagedThread is suspendable on operator condition. Carrier workers park on
// it between mounts; the dispatcher resumes them by calling Release.
type ManagedThread struct {
	operatorCondition      *sync.Cond
	operatorConditionValue bool
}

// SuspendUnsafe suspends ManagedThread on operator condition. This allows the
// worker to be suspended and then resumed from the dispatcher.
// It's marked Unsafe because ManagedThread should be locked before SuspendUnsafe is called.
func (s *ManagedThread) SuspendUnsafe() {
	for !s.operatorConditionValue {
		s.operatorCondition.Wait()
	}
	s.operatorConditionValue = false // reset back to false
}

// Release releases operator condition, waking the suspended worker.
func (s *ManagedThread) Release() {
	s.operatorCondition.L.Lock()
	defer s.operatorCondition.L.Unlock()
	s.operatorConditionValue = true
	s.operatorCondition.Signal()
}

// Lock ManagedThread condvar mutex
func (s *ManagedThread) Lock() {
	s.operatorCondition.L.Lock()
}

// Unlock ManagedThread condvar mutex
func (s *ManagedThread) Unlock() {
	s.operatorCondition.L.Unlock()
}

// NewManagedThread returns new ManagedThread instance.
func NewManagedThread() *ManagedThread {
	return &ManagedThread{
		operatorCondition:      sync.NewCond(&sync.Mutex{}),
		operatorConditionValue: false,
	}
}
