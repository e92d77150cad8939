package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the niches, campaigns, and leads tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if err := cfg.Validate("store"); err != nil {
			return err
		}

		s, err := initStores(ctx)
		if err != nil {
			return err
		}
		defer s.cleanup()

		// Campaigns first: leads reference campaigns(id).
		if err := s.campaigns.Migrate(ctx); err != nil {
			return err
		}
		if err := s.leads.Migrate(ctx); err != nil {
			return err
		}

		zap.L().Info("migrations applied", zap.String("driver", cfg.Store.Driver))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
