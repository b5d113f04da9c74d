// Copyright 2025 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package queue

import (
	"context"
	"sync"

	"github.com/stratastor/adminevents/pkg/adminevent"
	"github.com/stratastor/adminevents/pkg/errors"
)

// MemoryQueue is an in-process FIFO of admin events
type MemoryQueue struct {
	mu     sync.Mutex
	events []*adminevent.AdminEvent
}

func NewMemoryQueue() *MemoryQueue {
	return &MemoryQueue{}
}

// Push appends an event to the tail of the queue
func (q *MemoryQueue) Push(event *adminevent.AdminEvent) error {
	if event == nil {
		return errors.New(errors.QueuePushFailed, "nil event")
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	q.events = append(q.events, event)
	return nil
}

func (q *MemoryQueue) Clear(ctx context.Context) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.events = nil
	return nil
}

func (q *MemoryQueue) Poll(ctx context.Context) (*adminevent.AdminEvent, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.events) == 0 {
		return nil, nil
	}
	event := q.events[0]
	q.events[0] = nil
	q.events = q.events[1:]
	return event, nil
}

// Len returns the number of queued events
func (q *MemoryQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events)
}
