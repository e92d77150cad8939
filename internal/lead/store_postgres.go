package lead

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

const leadCols = `id, nom, email, telephone, entreprise, statut, campagne_id, date_creation`

func leadDests(r *Record) []any {
	return []any{&r.ID, &r.Name, &r.Email, &r.Phone, &r.Company, &r.Status, &r.CampaignID, &r.CreatedAt}
}

func (s *PostgresStore) FindByPhone(ctx context.Context, phone string) (*Record, error) {
	var r Record
	err := s.pool.QueryRow(ctx,
		`SELECT `+leadCols+` FROM leads WHERE telephone = $1 ORDER BY id LIMIT 1`,
		phone,
	).Scan(leadDests(&r)...)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "lead: find by phone")
	}
	return &r, nil
}

func (s *PostgresStore) FindByEmail(ctx context.Context, email string) (*Record, error) {
	var r Record
	err := s.pool.QueryRow(ctx,
		`SELECT `+leadCols+` FROM leads WHERE email = $1 ORDER BY id LIMIT 1`,
		email,
	).Scan(leadDests(&r)...)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "lead: find by email")
	}
	return &r, nil
}

func (s *PostgresStore) Insert(ctx context.Context, n Normalized) (int64, error) {
	var id int64
	err := s.pool.QueryRow(ctx,
		`INSERT INTO leads (nom, email, telephone, entreprise, statut, campagne_id, date_creation)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id`,
		n.Name, n.Email, n.Phone, n.Company, n.Status, n.CampaignID, n.CreatedAt,
	).Scan(&id)
	if err != nil {
		return 0, eris.Wrap(err, "lead: insert")
	}
	return id, nil
}

// Update overwrites a lead row. Empty incoming email or phone keeps the
// stored value so a duplicate hit never erases a known contact channel.
func (s *PostgresStore) Update(ctx context.Context, id int64, n Normalized) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE leads SET
			nom = $2,
			email = CASE WHEN $3 = '' THEN email ELSE $3 END,
			telephone = CASE WHEN $4 = '' THEN telephone ELSE $4 END,
			entreprise = $5,
			statut = $6,
			campagne_id = $7
		 WHERE id = $1`,
		id, n.Name, n.Email, n.Phone, n.Company, n.Status, n.CampaignID,
	)
	if err != nil {
		return eris.Wrapf(err, "lead: update %d", id)
	}
	return nil
}

func (s *PostgresStore) InTx(ctx context.Context, fn func(Store) error) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return eris.Wrap(err, "lead: begin tx")
	}
	defer tx.Rollback(ctx)

	if err := fn(&PostgresStore{pool: tx}); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return eris.Wrap(err, "lead: commit tx")
	}
	return nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	var one int
	if err := s.pool.QueryRow(ctx, `SELECT 1`).Scan(&one); err != nil {
		return eris.Wrap(err, "lead: ping")
	}
	return nil
}

const leadsMigration = `
CREATE TABLE IF NOT EXISTS leads (
	id            BIGSERIAL PRIMARY KEY,
	nom           TEXT NOT NULL DEFAULT '',
	email         TEXT NOT NULL DEFAULT '',
	telephone     TEXT NOT NULL DEFAULT '',
	entreprise    TEXT NOT NULL DEFAULT '',
	statut        TEXT NOT NULL DEFAULT 'new',
	campagne_id   BIGINT REFERENCES campaigns(id),
	date_creation TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_leads_telephone ON leads (telephone);
CREATE INDEX IF NOT EXISTS idx_leads_email ON leads (email);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, leadsMigration); err != nil {
		return eris.Wrap(err, "lead: migrate")
	}
	return nil
}
