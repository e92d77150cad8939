package campaign

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/rotisserie/eris"

	"github.com/berinia/export-cli/internal/db"
)

// PostgresStore implements Store over a pgx pool or transaction.
type PostgresStore struct {
	pool db.Pool
}

// NewPostgresStore returns a Store backed by the given pool.
func NewPostgresStore(pool db.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

var _ Store = (*PostgresStore)(nil)

const campaignCols = `id, nom, description, statut, target_leads, agent, niche_id, date_creation`

func campaignDests(c *Record) []any {
	return []any{&c.ID, &c.Name, &c.Description, &c.Status, &c.TargetLeads, &c.Agent, &c.NicheID, &c.CreatedAt}
}

func (s *PostgresStore) ListRecentFirst(ctx context.Context) ([]Record, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+campaignCols+` FROM campaigns ORDER BY date_creation DESC, id DESC`)
	if err != nil {
		return nil, eris.Wrap(err, "campaign: list")
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var c Record
		if err := rows.Scan(campaignDests(&c)...); err != nil {
			return nil, eris.Wrap(err, "campaign: scan")
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "campaign: rows")
	}
	return out, nil
}

func (s *PostgresStore) Create(ctx context.Context, c Record) (int64, error) {
	var id int64
	err := s.pool.QueryRow(ctx,
		`INSERT INTO campaigns (nom, description, statut, target_leads, agent, niche_id, date_creation)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id`,
		c.Name, c.Description, c.Status, c.TargetLeads, c.Agent, c.NicheID, c.CreatedAt,
	).Scan(&id)
	if err != nil {
		return 0, eris.Wrap(err, "campaign: create")
	}
	return id, nil
}

func (s *PostgresStore) FindOrCreateDefaultNiche(ctx context.Context) (int64, error) {
	var id int64
	err := s.pool.QueryRow(ctx,
		`SELECT id FROM niches WHERE nom = $1`, DefaultNicheName,
	).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, eris.Wrap(err, "campaign: find default niche")
	}

	err = s.pool.QueryRow(ctx,
		`INSERT INTO niches (nom, description) VALUES ($1, $2) RETURNING id`,
		DefaultNicheName, DefaultNicheDescription,
	).Scan(&id)
	if err != nil {
		return 0, eris.Wrap(err, "campaign: create default niche")
	}
	return id, nil
}

const campaignsMigration = `
CREATE TABLE IF NOT EXISTS niches (
	id          BIGSERIAL PRIMARY KEY,
	nom         TEXT NOT NULL UNIQUE,
	description TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS campaigns (
	id            BIGSERIAL PRIMARY KEY,
	nom           TEXT NOT NULL,
	description   TEXT NOT NULL DEFAULT '',
	statut        TEXT NOT NULL DEFAULT 'active',
	target_leads  INTEGER NOT NULL DEFAULT 100,
	agent         TEXT NOT NULL DEFAULT '',
	niche_id      BIGINT NOT NULL REFERENCES niches(id),
	date_creation TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_campaigns_date_creation ON campaigns (date_creation DESC);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, campaignsMigration); err != nil {
		return eris.Wrap(err, "campaign: migrate")
	}
	return nil
}
