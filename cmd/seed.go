package main

import (
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/berinia/export-cli/internal/campaign"
	"github.com/berinia/export-cli/internal/db"
	"github.com/berinia/export-cli/internal/lead"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load sample niches, campaigns, and leads for local development",
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

		if err := s.campaigns.Migrate(ctx); err != nil {
			return err
		}
		if err := s.leads.Migrate(ctx); err != nil {
			return err
		}

		now := time.Now().UTC()

		if s.pool != nil {
			// Upsert keeps seeding idempotent on re-runs.
			if _, err := db.BulkUpsert(ctx, s.pool, db.UpsertConfig{
				Table:        "niches",
				Columns:      []string{"nom", "description"},
				ConflictKeys: []string{"nom"},
			}, [][]any{
				{"Plomberie", "Artisans plombiers"},
				{"Toiture", "Couvreurs et charpentiers"},
			}); err != nil {
				return err
			}
		}

		nicheID, err := s.campaigns.FindOrCreateDefaultNiche(ctx)
		if err != nil {
			return err
		}

		campaignID, err := s.campaigns.Create(ctx, campaign.Record{
			Name:        "Campagne Démo",
			Description: "Campagne de démonstration",
			Status:      campaign.StatusActive,
			TargetLeads: cfg.Export.TargetLeads,
			Agent:       cfg.Export.Agent,
			NicheID:     nicheID,
			CreatedAt:   now,
		})
		if err != nil {
			return err
		}

		samples := []lead.Normalized{
			{Name: "Jean Dupont", Email: "jean.dupont@example.fr", Phone: "+33612345678", Company: "Dupont Plomberie", Status: lead.StatusNew, CampaignID: &campaignID, CreatedAt: now},
			{Name: "Marie Martin", Email: "marie@martin-toiture.fr", Phone: "+33698765432", Company: "Martin Toiture", Status: lead.StatusNew, CampaignID: &campaignID, CreatedAt: now},
			{Name: lead.DefaultName, Email: lead.PlaceholderEmail("seed-3", "Garage Bernard", "+33611223344"), Phone: "+33611223344", Company: "Garage Bernard", Status: lead.StatusNew, CampaignID: &campaignID, CreatedAt: now},
		}

		if s.pool != nil {
			rows := make([][]any, len(samples))
			for i, n := range samples {
				rows[i] = []any{n.Name, n.Email, n.Phone, n.Company, n.Status, n.CampaignID, n.CreatedAt}
			}
			n, err := db.CopyFrom(ctx, s.pool, "leads",
				[]string{"nom", "email", "telephone", "entreprise", "statut", "campagne_id", "date_creation"},
				rows,
			)
			if err != nil {
				return err
			}
			zap.L().Info("seeded", zap.Int64("leads", n), zap.Int64("campaign_id", campaignID))
			return nil
		}

		for _, n := range samples {
			if _, err := s.leads.Insert(ctx, n); err != nil {
				return err
			}
		}
		zap.L().Info("seeded", zap.Int("leads", len(samples)), zap.Int64("campaign_id", campaignID))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
