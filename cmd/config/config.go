package config

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/stratastor/adminevents/config"
	"gopkg.in/yaml.v2"
)

func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage AdminEvents configuration",
	}

	cmd.AddCommand(NewLoadConfigCmd())
	cmd.AddCommand(NewPrintConfigCmd())
	cmd.AddCommand(NewSaveConfigCmd())
	return cmd
}

func NewLoadConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "load",
		Short: "Load the configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("config")
			_, used, err := config.Load(path)
			if err != nil {
				return err
			}
			if used == "" {
				fmt.Fprintln(cmd.OutOrStdout(), "No configuration file found, using defaults")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Configuration loaded from: %s\n", used)
			return nil
		},
	}
}

func NewPrintConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "print",
		Short: "Print the currently loaded configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.GetConfig()
			if cfg == nil {
				return fmt.Errorf("no configuration loaded")
			}

			// Convert the config to YAML format
			ymlData, err := yaml.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("failed to marshal config to YAML: %v", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Current Configuration:\n%s\n", string(ymlData))
			return nil
		},
	}

	return cmd
}

func NewSaveConfigCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "save",
		Short: "Write the current configuration to a file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.SaveConfig(output); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Configuration saved to: %s\n", config.GetLoadedConfigPath())
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Destination path (default ~/.adminevents/adminevents.yml)")
	return cmd
}
