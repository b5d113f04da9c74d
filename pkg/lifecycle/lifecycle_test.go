// Copyright 2025 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package lifecycle

import (
	"context"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestShutdownRunsHooksInReverse(t *testing.T) {
	var order []int
	ctx, c := context.WithCancel(context.Background())

	RegisterContextCanceller(c)
	RegisterShutdownHook(func() { order = append(order, 1) })
	RegisterShutdownHook(func() { order = append(order, 2) })

	Shutdown()
	assert.Equal(t, []int{2, 1}, order)
	assert.Error(t, ctx.Err())

	Shutdown()
	assert.Equal(t, []int{2, 1}, order, "hooks run once")
}

func TestHandleSignalsContextDone(t *testing.T) {
	ctx, c := context.WithCancel(context.Background())
	c()
	assert.Nil(t, HandleSignals(ctx))
}

func TestHandleSignalsSIGTERM(t *testing.T) {
	ran := make(chan struct{})
	RegisterShutdownHook(func() { close(ran) })

	go func() {
		time.Sleep(200 * time.Millisecond)
		_ = syscall.Kill(syscall.Getpid(), syscall.SIGTERM)
	}()

	sig := HandleSignals(context.Background())
	assert.Equal(t, syscall.SIGTERM, sig)

	select {
	case <-ran:
	case <-time.After(time.Second):
		t.Fatal("shutdown hook did not run")
	}
}
