// Copyright Loomlab Authors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package core

import (
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"

	"go.loomlab.io/loom/appctx"
	"go.loomlab.io/loom/faults"
)

// Watchdog observes carrier worker exits. A fault escaping a mount is fatal
// to that carrier only; the watchdog records the first fatal error and
// unblocks anything still waiting on pool startup.
type Watchdog struct {
	cancelOnce sync.Once
	startGate  Gate
	appCtx     appctx.ApplicationContext
	mutedMutex sync.Mutex
	muted      bool
}

// Mute suppresses fault recording, used while the pool shuts down
// intentionally.
func (w *Watchdog) Mute() {
	w.mutedMutex.Lock()
	defer w.mutedMutex.Unlock()
	w.muted = true
}

func (w *Watchdog) Unmute() {
	w.mutedMutex.Lock()
	defer w.mutedMutex.Unlock()
	w.muted = false
}

func (w *Watchdog) Muted() bool {
	w.mutedMutex.Lock()
	defer w.mutedMutex.Unlock()
	return w.muted
}

// CarrierFault handles a fault recovered from a carrier worker.
func (w *Watchdog) CarrierFault(carrier *Carrier, fault interface{}) {
	if !w.Muted() {
		appctx.StoreFirstFatalError(w.appCtx, faults.CarrierCrash)
		log.Warnf("Carrier %s crashed: %v", carrier, fault)
	}

	w.cancelGates(fmt.Errorf("carrier %s crashed: %v", carrier, fault))
}

// cancelGates cancels the startup gate with error. The following block
// protects us from overwriting the error which was first used to cancel.
func (w *Watchdog) cancelGates(err error) {
	w.cancelOnce.Do(func() {
		w.startGate.CancelWithError(err)
	})
}

// Clear watchdog state
func (w *Watchdog) Clear() {
	w.cancelOnce = sync.Once{}
}

// NewWatchdog returns new instance of a Watchdog.
func NewWatchdog(appCtx appctx.ApplicationContext, startGate Gate) *Watchdog {
	return &Watchdog{
		appCtx:     appCtx,
		startGate:  startGate,
		mutedMutex: sync.Mutex{},
	}
}
