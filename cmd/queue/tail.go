// Copyright 2025 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package queue

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/spf13/cobra"
	"github.com/stratastor/adminevents/config"
	"github.com/stratastor/adminevents/internal/common"
	"github.com/stratastor/adminevents/pkg/assertevents"
	"github.com/stratastor/adminevents/pkg/lifecycle"
	"github.com/stratastor/logger"
)

func NewTailCmd() *cobra.Command {
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "tail",
		Short: "Poll the admin event queue periodically and print events until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			if interval == 0 {
				interval = config.GetConfig().TailInterval()
			}
			if interval <= 0 {
				return fmt.Errorf("--interval must be positive")
			}

			l, err := common.NewLogger("tail")
			if err != nil {
				return err
			}
			events, err := common.NewAdminEvents()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()
			lifecycle.RegisterContextCanceller(cancel)

			scheduler, err := startTail(ctx, events, interval, cmd.OutOrStdout(), l)
			if err != nil {
				return err
			}
			lifecycle.RegisterShutdownHook(func() {
				if err := scheduler.Shutdown(); err != nil {
					l.Warn("Failed to stop tail scheduler", "err", err)
				}
			})
			defer lifecycle.Shutdown()

			lifecycle.HandleSignals(ctx)
			return nil
		},
	}

	cmd.Flags().DurationVarP(&interval, "interval", "i", 0, "Polling interval (default from tail.interval)")
	return cmd
}

// startTail schedules a job that drains the queue every interval and writes
// each event as JSON to out.
func startTail(ctx context.Context, events *assertevents.AdminEvents, interval time.Duration, out io.Writer, l logger.Logger) (gocron.Scheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() { drain(ctx, events, out, l) }),
		gocron.WithName("tail-admin-events"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		_ = scheduler.Shutdown()
		return nil, fmt.Errorf("failed to schedule tail job: %w", err)
	}

	scheduler.Start()
	l.Info("Tailing admin events", "interval", interval.String())
	return scheduler, nil
}

func drain(ctx context.Context, events *assertevents.AdminEvents, out io.Writer, l logger.Logger) {
	for ctx.Err() == nil {
		event, err := events.Next(ctx)
		if err != nil {
			l.Warn("Failed to poll admin event", "err", err)
			return
		}
		if event == nil {
			return
		}
		if err := common.PrintJSON(out, event); err != nil {
			l.Warn("Failed to print admin event", "err", err)
			return
		}
	}
}
