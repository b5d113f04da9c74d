// Copyright 2025 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package queue

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stratastor/adminevents/pkg/adminevent"
	"github.com/stratastor/adminevents/pkg/assertevents"
	"github.com/stratastor/adminevents/pkg/credentials"
	eventqueue "github.com/stratastor/adminevents/pkg/queue"
	"github.com/stratastor/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestStartTail(t *testing.T) {
	l, err := logger.New(logger.Config{LogLevel: "debug"})
	require.NoError(t, err)

	q := eventqueue.NewMemoryQueue()
	require.NoError(t, q.Push(&adminevent.AdminEvent{OperationType: "CREATE", ResourcePath: "users/1"}))
	require.NoError(t, q.Push(&adminevent.AdminEvent{OperationType: "DELETE", ResourcePath: "users/1"}))
	events := assertevents.New(q, credentials.Static(""), l)

	out := &syncBuffer{}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	scheduler, err := startTail(ctx, events, 20*time.Millisecond, out, l)
	require.NoError(t, err)
	defer func() { _ = scheduler.Shutdown() }()

	assert.Eventually(t, func() bool {
		return strings.Count(out.String(), `"resourcePath"`) == 2
	}, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, q.Push(&adminevent.AdminEvent{OperationType: "UPDATE", ResourcePath: "users/2"}))
	assert.Eventually(t, func() bool {
		return strings.Contains(out.String(), `"users/2"`)
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, 0, q.Len())
}
