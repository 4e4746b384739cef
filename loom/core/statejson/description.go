// Copyright Loomlab Authors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package statejson

import (
	"encoding/json"

	log "github.com/sirupsen/logrus"
)

// StateDescription ...
type StateDescription struct {
	Name         string `json:"name"`
	LastModified int64  `json:"lastModified"`
}

// StrandDescription describes a single logical thread of execution.
type StrandDescription struct {
	ID    string           `json:"id"`
	State StateDescription `json:"state"`
}

// CarrierPoolDescription describes the carrier pool occupancy.
type CarrierPoolDescription struct {
	Size     int `json:"size"`
	Idle     int `json:"idle"`
	Replaced int `json:"replaced"`
}

// InternalStateDescription describes internal state of the scheduling core
// for debugging purposes.
type InternalStateDescription struct {
	Strands         []StrandDescription    `json:"strands"`
	CarrierPool     CarrierPoolDescription `json:"carrierPool"`
	QueueDepth      int                    `json:"queueDepth"`
	FirstFatalError string                 `json:"firstFatalError"`
}

// InternalStateGetter returns a snapshot of the executor's internal state.
type InternalStateGetter func() InternalStateDescription

func (s *InternalStateDescription) AsJSON() []byte {
	bytes, err := json.Marshal(s)
	if err != nil {
		log.Panicf("Failed to marshall internal states: %s", err)
	}
	return bytes
}
