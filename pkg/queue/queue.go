// Copyright 2025 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

// Package queue gives access to the admin event queue kept by the identity
// provider's testing endpoints.
package queue

import (
	"context"

	"github.com/stratastor/adminevents/pkg/adminevent"
)

// Queue is the admin event queue of the system under test
type Queue interface {
	// Clear discards every queued event
	Clear(ctx context.Context) error

	// Poll removes and returns the oldest event, or nil when the queue is empty
	Poll(ctx context.Context) (*adminevent.AdminEvent, error)
}
