// Copyright 2025 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package fakeserver

import (
	"context"
	"time"

	"github.com/spf13/cobra"
	"github.com/stratastor/adminevents/config"
	"github.com/stratastor/adminevents/internal/common"
	"github.com/stratastor/adminevents/pkg/fakeidp"
	"github.com/stratastor/adminevents/pkg/lifecycle"
)

func NewFakeServerCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "fake-server",
		Short: "Serve the testing endpoints over an in-memory admin event queue",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.GetConfig()
			if addr == "" {
				addr = cfg.FakeServer.Addr
			}

			l, err := common.NewLogger("fakeserver")
			if err != nil {
				return err
			}

			srv := fakeidp.New(fakeidp.Config{
				SigningKey: cfg.FakeServer.SigningKey,
				UserID:     cfg.FakeServer.UserID,
				Username:   cfg.FakeServer.Username,
				Password:   cfg.FakeServer.Password,
				TokenTTL:   cfg.FakeServerTokenTTL(),
				Release:    cfg.Environment != "dev",
			}, nil, l)

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()
			lifecycle.RegisterContextCanceller(cancel)

			if err := srv.Start(ctx, addr); err != nil {
				return err
			}
			lifecycle.RegisterShutdownHook(func() {
				l.Info("Shutting down fake server...")
				shutdownCtx, done := context.WithTimeout(context.Background(), 5*time.Second)
				defer done()
				if err := srv.Shutdown(shutdownCtx); err != nil {
					l.Error("Error during fake server shutdown", "err", err)
				}
			})
			defer lifecycle.Shutdown()

			lifecycle.HandleSignals(ctx)
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from fakeServer.addr)")
	return cmd
}
