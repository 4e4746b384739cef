// Copyright Loomlab Authors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package sched

import (
	"sync"

	"github.com/google/uuid"

	"go.loomlab.io/loom/core/statejson"
)

// strandRegistry tracks live tasks by strand identity. Terminated strands
// are removed once their result is sealed, so a state snapshot only lists
// strands that still hold resources.
type strandRegistry struct {
	mu    sync.Mutex
	tasks map[uuid.UUID]*task
}

func newStrandRegistry() *strandRegistry {
	return &strandRegistry{tasks: make(map[uuid.UUID]*task)}
}

func (r *strandRegistry) add(t *task) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tasks[t.strand.ID()] = t
}

func (r *strandRegistry) remove(t *task) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.tasks, t.strand.ID())
}

func (r *strandRegistry) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.tasks)
}

func (r *strandRegistry) descriptions() []statejson.StrandDescription {
	r.mu.Lock()
	defer r.mu.Unlock()
	descs := make([]statejson.StrandDescription, 0, len(r.tasks))
	for _, t := range r.tasks {
		descs = append(descs, t.strand.GetStrandDescription())
	}
	return descs
}
