package main

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/berinia/export-cli/internal/campaign"
	"github.com/berinia/export-cli/internal/db"
	"github.com/berinia/export-cli/internal/export"
	"github.com/berinia/export-cli/internal/lead"
)

// stores bundles both domain stores over one database handle. pool is nil
// for the sqlite driver.
type stores struct {
	leads     lead.Store
	campaigns campaign.Store
	pool      db.Pool
	cleanup   func()
}

func initStores(ctx context.Context) (*stores, error) {
	switch cfg.Store.Driver {
	case "sqlite":
		dsn := cfg.Store.DatabaseURL
		if dsn == "" {
			dsn = "berinia.db"
		}
		sqlDB, err := db.OpenSQLite(dsn)
		if err != nil {
			return nil, err
		}
		return &stores{
			leads:     lead.NewSQLiteStore(sqlDB),
			campaigns: campaign.NewSQLiteStore(sqlDB),
			cleanup:   func() { _ = sqlDB.Close() },
		}, nil
	case "postgres":
		pool, err := db.NewPgxPool(ctx, cfg.Store.DatabaseURL, cfg.Store.Pool.MaxConns, cfg.Store.Pool.MinConns)
		if err != nil {
			return nil, err
		}
		return &stores{
			leads:     lead.NewPostgresStore(pool),
			campaigns: campaign.NewPostgresStore(pool),
			pool:      pool,
			cleanup:   pool.Close,
		}, nil
	default:
		return nil, eris.Errorf("unsupported store driver: %s", cfg.Store.Driver)
	}
}

func newExporter(s *stores) *export.Exporter {
	resolver := campaign.NewResolver(s.campaigns, campaign.ResolverOptions{
		Agent:       cfg.Export.Agent,
		TargetLeads: cfg.Export.TargetLeads,
	})
	return export.NewExporter(s.leads, resolver)
}
