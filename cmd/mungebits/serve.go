package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mungebits/internal/config"
	"mungebits/internal/engine"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Train the configured pipeline and serve predictions over gRPC",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, _ := cmd.Flags().GetString("config")
			cfg, err := config.LoadEngineConfig(path)
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}
			e, err := engine.Bootstrap(cmd.Context(), cfg)
			if err != nil {
				return fmt.Errorf("bootstrap: %w", err)
			}
			return e.Run(cmd.Context())
		},
	}
	cmd.Flags().StringP("config", "c", "mungebits.yml", "Engine config file")
	return cmd
}
