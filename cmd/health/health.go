package health

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/stratastor/adminevents/config"
	"github.com/stratastor/adminevents/internal/common"
	"github.com/stratastor/adminevents/pkg/assertevents"
	"github.com/stratastor/adminevents/pkg/health"
)

func NewHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the configured server is up",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.GetConfig() // cfg shoudln't be nil
			l, err := common.NewLogger("health")
			if err != nil {
				return err
			}
			checker := health.NewHealthChecker(assertevents.NewHTTPClient(cfg, l), cfg.Server.HealthPath, l)
			ret, err := checker.CheckHealth(cmd.Context())
			if err != nil {
				return fmt.Errorf("health check failed: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), ret)
			return nil
		},
	}
}
