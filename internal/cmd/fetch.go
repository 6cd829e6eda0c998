package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/meteolog/almanac/internal/config"
)

func newFetchCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetches the configured forecasts once and persists them",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger, _ := zap.NewDevelopment()
			defer logger.Sync()
			l := logger.Named("almanac.fetch")
			l.Info("starting almanac!")

			c := config.Default()
			if configPath != "" {
				var err error
				c, err = config.NewAlmanacFromFile(configPath)
				if err != nil {
					return err
				}
			}

			r, err := config.InitializeRunner(c, l)
			if err != nil {
				return err
			}

			cat := r.Run(ctx)

			if cat.Failed > 0 {
				cmd.SilenceUsage = true
				return fmt.Errorf("%d of %d forecasts failed", cat.Failed, cat.Attempted)
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config file")

	return cmd
}
