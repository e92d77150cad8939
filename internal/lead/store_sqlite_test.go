package lead

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/berinia/export-cli/internal/db"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	sqlDB, err := db.OpenSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() }) //nolint:errcheck
	st := NewSQLiteStore(sqlDB)
	require.NoError(t, st.Migrate(context.Background()))
	return st
}

func testNormalized() Normalized {
	cid := int64(7)
	return Normalized{
		Name:       "Jean Dupont",
		Email:      "jean@dupont.fr",
		Phone:      "+33612345678",
		Company:    "Dupont SARL",
		Status:     StatusNew,
		CampaignID: &cid,
		CreatedAt:  time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC),
	}
}

func TestSQLite_InsertAndFindByPhone(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()
	n := testNormalized()

	id, err := st.Insert(ctx, n)
	require.NoError(t, err)
	assert.Positive(t, id)

	got, err := st.FindByPhone(ctx, n.Phone)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, n.Name, got.Name)
	assert.Equal(t, n.Email, got.Email)
	assert.Equal(t, n.Company, got.Company)
	assert.Equal(t, n.Status, got.Status)
	require.NotNil(t, got.CampaignID)
	assert.Equal(t, *n.CampaignID, *got.CampaignID)
	assert.WithinDuration(t, n.CreatedAt, got.CreatedAt, time.Second)
}

func TestSQLite_FindByEmail(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()
	n := testNormalized()

	id, err := st.Insert(ctx, n)
	require.NoError(t, err)

	got, err := st.FindByEmail(ctx, n.Email)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, n.Phone, got.Phone)
}

func TestSQLite_FindMissing(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	got, err := st.FindByPhone(ctx, "+33600000000")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = st.FindByEmail(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSQLite_UpdatePreservesContactChannels(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()
	n := testNormalized()

	id, err := st.Insert(ctx, n)
	require.NoError(t, err)

	// An update with empty email and phone must keep the stored values.
	upd := n
	upd.Name = "Jean Dupont (maj)"
	upd.Email = ""
	upd.Phone = ""
	upd.Company = "Dupont & Fils"
	require.NoError(t, st.Update(ctx, id, upd))

	got, err := st.FindByPhone(ctx, n.Phone)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Jean Dupont (maj)", got.Name)
	assert.Equal(t, "Dupont & Fils", got.Company)
	assert.Equal(t, n.Email, got.Email)
	assert.Equal(t, n.Phone, got.Phone)
}

func TestSQLite_UpdateOverwritesNonEmptyChannels(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()
	n := testNormalized()

	id, err := st.Insert(ctx, n)
	require.NoError(t, err)

	upd := n
	upd.Email = "nouveau@dupont.fr"
	upd.Phone = "+33687654321"
	require.NoError(t, st.Update(ctx, id, upd))

	got, err := st.FindByEmail(ctx, "nouveau@dupont.fr")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "+33687654321", got.Phone)
}

func TestSQLite_InTxCommit(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()
	n := testNormalized()

	err := st.InTx(ctx, func(tx Store) error {
		_, err := tx.Insert(ctx, n)
		return err
	})
	require.NoError(t, err)

	got, err := st.FindByPhone(ctx, n.Phone)
	require.NoError(t, err)
	assert.NotNil(t, got)
}

func TestSQLite_InTxRollback(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()
	n := testNormalized()

	boom := eris.New("boom")
	err := st.InTx(ctx, func(tx Store) error {
		if _, err := tx.Insert(ctx, n); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, err := st.FindByPhone(ctx, n.Phone)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSQLite_Ping(t *testing.T) {
	st := newTestSQLiteStore(t)
	assert.NoError(t, st.Ping(context.Background()))
}
