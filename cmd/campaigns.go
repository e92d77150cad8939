package main

import (
	"encoding/json"
	"os"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/berinia/export-cli/internal/campaign"
)

var campaignsCmd = &cobra.Command{
	Use:   "campaigns",
	Short: "Inspect and manage CRM campaigns",
}

var campaignsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List campaigns, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Validate("store"); err != nil {
			return err
		}

		s, err := initStores(cmd.Context())
		if err != nil {
			return err
		}
		defer s.cleanup()

		list, err := s.campaigns.ListRecentFirst(cmd.Context())
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(list)
	},
}

var (
	campaignName        string
	campaignDescription string
	campaignTarget      int
)

var campaignsCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a campaign under the default niche",
	RunE: func(cmd *cobra.Command, args []string) error {
		if campaignName == "" {
			return eris.New("--name is required")
		}
		if err := cfg.Validate("store"); err != nil {
			return err
		}

		s, err := initStores(cmd.Context())
		if err != nil {
			return err
		}
		defer s.cleanup()

		nicheID, err := s.campaigns.FindOrCreateDefaultNiche(cmd.Context())
		if err != nil {
			return err
		}

		target := campaignTarget
		if target <= 0 {
			target = cfg.Export.TargetLeads
		}

		id, err := s.campaigns.Create(cmd.Context(), campaign.Record{
			Name:        campaignName,
			Description: campaignDescription,
			Status:      campaign.StatusActive,
			TargetLeads: target,
			Agent:       cfg.Export.Agent,
			NicheID:     nicheID,
			CreatedAt:   time.Now().UTC(),
		})
		if err != nil {
			return err
		}

		return json.NewEncoder(os.Stdout).Encode(map[string]int64{"id": id})
	},
}

func init() {
	campaignsCreateCmd.Flags().StringVar(&campaignName, "name", "", "campaign name")
	campaignsCreateCmd.Flags().StringVar(&campaignDescription, "description", "", "campaign description")
	campaignsCreateCmd.Flags().IntVar(&campaignTarget, "target-leads", 0, "lead target (default from config)")
	campaignsCmd.AddCommand(campaignsListCmd, campaignsCreateCmd)
	rootCmd.AddCommand(campaignsCmd)
}
