// Copyright 2025 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

// Package queue holds the commands that operate on the admin event queue.
package queue

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/stratastor/adminevents/internal/common"
	"github.com/stratastor/adminevents/pkg/adminevent"
)

func NewClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear the admin event queue",
		RunE: func(cmd *cobra.Command, args []string) error {
			events, err := common.NewAdminEvents()
			if err != nil {
				return err
			}
			if err := events.Clear(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Admin event queue cleared")
			return nil
		},
	}
}

func NewPollCmd() *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "poll",
		Short: "Poll queued admin events and print them as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			if count < 1 {
				return fmt.Errorf("--count must be at least 1")
			}
			events, err := common.NewAdminEvents()
			if err != nil {
				return err
			}

			polled := make([]*adminevent.AdminEvent, 0, count)
			for len(polled) < count {
				event, err := events.Next(cmd.Context())
				if err != nil {
					return err
				}
				if event == nil {
					break
				}
				polled = append(polled, event)
			}

			if len(polled) == 0 {
				fmt.Fprintln(cmd.ErrOrStderr(), "Admin event queue is empty")
				return nil
			}
			return common.PrintJSON(cmd.OutOrStdout(), polled)
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 1, "Maximum number of events to poll")
	return cmd
}
