// Copyright 2025 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

// Package lifecycle runs registered shutdown hooks when the process is asked
// to stop.
package lifecycle

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

var (
	mu            sync.Mutex
	shutdownHooks []func()
	cancel        context.CancelFunc
)

// RegisterShutdownHook adds a hook. Hooks run in reverse registration order.
func RegisterShutdownHook(hook func()) {
	mu.Lock()
	defer mu.Unlock()
	shutdownHooks = append(shutdownHooks, hook)
}

// RegisterContextCanceller sets the cancel func called before the hooks run
func RegisterContextCanceller(c context.CancelFunc) {
	mu.Lock()
	defer mu.Unlock()
	cancel = c
}

// HandleSignals blocks until SIGINT or SIGTERM arrives, then shuts down, or
// until ctx is done. It returns the signal received, or nil.
func HandleSignals(ctx context.Context) os.Signal {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGTERM, syscall.SIGINT)
	defer signal.Stop(stop)

	select {
	case sig := <-stop:
		Shutdown()
		return sig
	case <-ctx.Done():
		return nil
	}
}

// Shutdown cancels the registered context and runs every hook once
func Shutdown() {
	mu.Lock()
	hooks := shutdownHooks
	shutdownHooks = nil
	c := cancel
	cancel = nil
	mu.Unlock()

	if c != nil {
		c()
	}
	for i := len(hooks) - 1; i >= 0; i-- {
		hooks[i]()
	}
}
