// Copyright 2025 Raamsri Kumar <raam@tinkershack.in>
// Copyright 2025 The StrataSTOR Authors and Contributors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"github.com/spf13/cobra"
	"github.com/stratastor/adminevents/cmd/config"
	"github.com/stratastor/adminevents/cmd/expect"
	"github.com/stratastor/adminevents/cmd/fakeserver"
	"github.com/stratastor/adminevents/cmd/health"
	"github.com/stratastor/adminevents/cmd/queue"
	"github.com/stratastor/adminevents/cmd/version"
	appconfig "github.com/stratastor/adminevents/config"
)

func NewRootCmd() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:           "adminevents",
		Short:         "AdminEvents: inspect and assert identity provider admin events",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			appconfig.LoadConfig(configPath)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to configuration file")

	rootCmd.AddCommand(queue.NewClearCmd())
	rootCmd.AddCommand(queue.NewPollCmd())
	rootCmd.AddCommand(queue.NewTailCmd())
	rootCmd.AddCommand(expect.NewExpectCmd())
	rootCmd.AddCommand(fakeserver.NewFakeServerCmd())
	rootCmd.AddCommand(health.NewHealthCmd())
	rootCmd.AddCommand(config.NewConfigCmd())
	rootCmd.AddCommand(version.NewVersionCmd())

	return rootCmd
}
