package lead

import (
	"context"
	"database/sql"
	"errors"

	"github.com/rotisserie/eris"
)

// sqliteDB is the querying surface shared by *sql.DB and *sql.Tx.
type sqliteDB interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// SQLiteStore implements Store using modernc.org/sqlite, for local runs
// without a Postgres instance.
type SQLiteStore struct {
	db *sql.DB
	q  sqliteDB
}

// NewSQLiteStore returns a Store backed by the given SQLite handle.
func NewSQLiteStore(sqlDB *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: sqlDB, q: sqlDB}
}

var _ Store = (*SQLiteStore)(nil)

func (s *SQLiteStore) findOne(ctx context.Context, query string, arg any) (*Record, error) {
	var (
		r          Record
		campaignID sql.NullInt64
	)
	err := s.q.QueryRowContext(ctx, query, arg).Scan(
		&r.ID, &r.Name, &r.Email, &r.Phone, &r.Company, &r.Status, &campaignID, &r.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "lead: sqlite scan")
	}
	if campaignID.Valid {
		r.CampaignID = &campaignID.Int64
	}
	return &r, nil
}

func (s *SQLiteStore) FindByPhone(ctx context.Context, phone string) (*Record, error) {
	return s.findOne(ctx,
		`SELECT id, nom, email, telephone, entreprise, statut, campagne_id, date_creation
		 FROM leads WHERE telephone = ? ORDER BY id LIMIT 1`, phone)
}

func (s *SQLiteStore) FindByEmail(ctx context.Context, email string) (*Record, error) {
	return s.findOne(ctx,
		`SELECT id, nom, email, telephone, entreprise, statut, campagne_id, date_creation
		 FROM leads WHERE email = ? ORDER BY id LIMIT 1`, email)
}

func (s *SQLiteStore) Insert(ctx context.Context, n Normalized) (int64, error) {
	res, err := s.q.ExecContext(ctx,
		`INSERT INTO leads (nom, email, telephone, entreprise, statut, campagne_id, date_creation)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		n.Name, n.Email, n.Phone, n.Company, n.Status, n.CampaignID, n.CreatedAt,
	)
	if err != nil {
		return 0, eris.Wrap(err, "lead: sqlite insert")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, eris.Wrap(err, "lead: sqlite last insert id")
	}
	return id, nil
}

func (s *SQLiteStore) Update(ctx context.Context, id int64, n Normalized) error {
	_, err := s.q.ExecContext(ctx,
		`UPDATE leads SET
			nom = ?,
			email = CASE WHEN ? = '' THEN email ELSE ? END,
			telephone = CASE WHEN ? = '' THEN telephone ELSE ? END,
			entreprise = ?,
			statut = ?,
			campagne_id = ?
		 WHERE id = ?`,
		n.Name, n.Email, n.Email, n.Phone, n.Phone, n.Company, n.Status, n.CampaignID, id,
	)
	if err != nil {
		return eris.Wrapf(err, "lead: sqlite update %d", id)
	}
	return nil
}

func (s *SQLiteStore) InTx(ctx context.Context, fn func(Store) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "lead: sqlite begin tx")
	}
	defer tx.Rollback()

	if err := fn(&SQLiteStore{db: s.db, q: tx}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return eris.Wrap(err, "lead: sqlite commit tx")
	}
	return nil
}

func (s *SQLiteStore) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return eris.Wrap(err, "lead: sqlite ping")
	}
	return nil
}

const leadsMigrationSQLite = `
CREATE TABLE IF NOT EXISTS leads (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	nom           TEXT NOT NULL DEFAULT '',
	email         TEXT NOT NULL DEFAULT '',
	telephone     TEXT NOT NULL DEFAULT '',
	entreprise    TEXT NOT NULL DEFAULT '',
	statut        TEXT NOT NULL DEFAULT 'new',
	campagne_id   INTEGER REFERENCES campaigns(id),
	date_creation DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_leads_telephone ON leads (telephone);
CREATE INDEX IF NOT EXISTS idx_leads_email ON leads (email);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, leadsMigrationSQLite); err != nil {
		return eris.Wrap(err, "lead: sqlite migrate")
	}
	return nil
}
