package campaign

import (
	"context"
	"database/sql"
	"errors"

	"github.com/rotisserie/eris"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore returns a Store backed by the given SQLite handle.
func NewSQLiteStore(sqlDB *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: sqlDB}
}

var _ Store = (*SQLiteStore)(nil)

const campaignColsSQLite = `id, nom, description, statut, target_leads, agent, niche_id, date_creation`

func (s *SQLiteStore) ListRecentFirst(ctx context.Context) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+campaignColsSQLite+` FROM campaigns ORDER BY date_creation DESC, id DESC`)
	if err != nil {
		return nil, eris.Wrap(err, "campaign: sqlite list")
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var c Record
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.Status, &c.TargetLeads, &c.Agent, &c.NicheID, &c.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "campaign: sqlite scan")
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "campaign: sqlite rows")
	}
	return out, nil
}

func (s *SQLiteStore) Create(ctx context.Context, c Record) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO campaigns (nom, description, statut, target_leads, agent, niche_id, date_creation)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		c.Name, c.Description, c.Status, c.TargetLeads, c.Agent, c.NicheID, c.CreatedAt,
	)
	if err != nil {
		return 0, eris.Wrap(err, "campaign: sqlite create")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, eris.Wrap(err, "campaign: sqlite last insert id")
	}
	return id, nil
}

func (s *SQLiteStore) FindOrCreateDefaultNiche(ctx context.Context) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx,
		`SELECT id FROM niches WHERE nom = ?`, DefaultNicheName,
	).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, eris.Wrap(err, "campaign: sqlite find default niche")
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO niches (nom, description) VALUES (?, ?)`,
		DefaultNicheName, DefaultNicheDescription,
	)
	if err != nil {
		return 0, eris.Wrap(err, "campaign: sqlite create default niche")
	}
	id, err = res.LastInsertId()
	if err != nil {
		return 0, eris.Wrap(err, "campaign: sqlite last insert id")
	}
	return id, nil
}

const campaignsMigrationSQLite = `
CREATE TABLE IF NOT EXISTS niches (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	nom         TEXT NOT NULL UNIQUE,
	description TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS campaigns (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	nom           TEXT NOT NULL,
	description   TEXT NOT NULL DEFAULT '',
	statut        TEXT NOT NULL DEFAULT 'active',
	target_leads  INTEGER NOT NULL DEFAULT 100,
	agent         TEXT NOT NULL DEFAULT '',
	niche_id      INTEGER NOT NULL REFERENCES niches(id),
	date_creation DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_campaigns_date_creation ON campaigns (date_creation DESC);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, campaignsMigrationSQLite); err != nil {
		return eris.Wrap(err, "campaign: sqlite migrate")
	}
	return nil
}
