package export

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/berinia/export-cli/internal/campaign"
	"github.com/berinia/export-cli/internal/lead"
)

type mockCampaignStore struct {
	campaigns []campaign.Record
	listErr   error
	created   int64
}

var _ campaign.Store = (*mockCampaignStore)(nil)

func (m *mockCampaignStore) ListRecentFirst(ctx context.Context) ([]campaign.Record, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.campaigns, nil
}

func (m *mockCampaignStore) Create(ctx context.Context, c campaign.Record) (int64, error) {
	m.created++
	return 100 + m.created, nil
}

func (m *mockCampaignStore) FindOrCreateDefaultNiche(ctx context.Context) (int64, error) {
	return 1, nil
}

func (m *mockCampaignStore) Migrate(ctx context.Context) error { return nil }

func newTestExporter(leads lead.Store, campaigns campaign.Store) *Exporter {
	resolver := campaign.NewResolver(campaigns, campaign.ResolverOptions{Agent: "test-agent"})
	e := NewExporter(leads, resolver)
	e.now = func() time.Time { return time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC) }
	return e
}

func TestExportBatch_Empty(t *testing.T) {
	e := newTestExporter(newMockLeadStore(), &mockCampaignStore{})

	result := e.ExportBatch(context.Background(), nil, nil)

	assert.True(t, result.Success)
	assert.Equal(t, 0, result.TotalAttempted)
	assert.Equal(t, 0, result.LeadsCount)
	assert.Empty(t, result.Errors)
	assert.Empty(t, result.LeadsExported)
	_, err := uuid.Parse(result.BatchID)
	assert.NoError(t, err)
}

func TestExportBatch_AllExported(t *testing.T) {
	leads := newMockLeadStore()
	campaigns := &mockCampaignStore{campaigns: []campaign.Record{{ID: 7}}}
	e := newTestExporter(leads, campaigns)

	result := e.ExportBatch(context.Background(), []lead.Raw{
		{ID: "a", ContactName: "Jean", Phone: "06 12 34 56 78"},
		{ID: "b", ContactName: "Marie", Email: "marie@martin.fr"},
	}, nil)

	assert.True(t, result.Success)
	assert.Equal(t, 2, result.TotalAttempted)
	assert.Equal(t, 2, result.LeadsCount)
	assert.Equal(t, 0, result.ErrorCount)
	assert.Equal(t, []string{"a", "b"}, result.LeadsExported)
	require.Len(t, leads.inserted, 2)
	require.NotNil(t, leads.inserted[0].CampaignID)
	assert.Equal(t, int64(7), *leads.inserted[0].CampaignID)
}

func TestExportBatch_PartialFailure(t *testing.T) {
	leads := newMockLeadStore()
	campaigns := &mockCampaignStore{campaigns: []campaign.Record{{ID: 7}}}
	e := newTestExporter(leads, campaigns)

	result := e.ExportBatch(context.Background(), []lead.Raw{
		{ID: "good", Phone: "0612345678"},
		{ID: "bad"}, // no phone, no email
	}, nil)

	assert.True(t, result.Success)
	assert.Equal(t, 2, result.TotalAttempted)
	assert.Equal(t, 1, result.LeadsCount)
	assert.Equal(t, 1, result.ErrorCount)
	assert.Equal(t, []string{"good"}, result.LeadsExported)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "missing_contact_channel")
}

func TestExportBatch_ResolutionFailureAbortsBatch(t *testing.T) {
	leads := newMockLeadStore()
	campaigns := &mockCampaignStore{listErr: errors.New("db down")}
	e := newTestExporter(leads, campaigns)

	result := e.ExportBatch(context.Background(), []lead.Raw{
		{ID: "a", Phone: "0612345678"},
	}, nil)

	assert.False(t, result.Success)
	assert.Equal(t, 0, result.LeadsCount)
	assert.Equal(t, 1, result.ErrorCount)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "resolution failed")
	assert.Equal(t, 0, leads.txStarted)
}

func TestExportBatch_ExplicitCampaign(t *testing.T) {
	leads := newMockLeadStore()
	campaigns := &mockCampaignStore{campaigns: []campaign.Record{{ID: 7}, {ID: 3}}}
	e := newTestExporter(leads, campaigns)

	id3 := int64(3)
	result := e.ExportBatch(context.Background(), []lead.Raw{
		{ID: "a", Phone: "0612345678"},
	}, &id3)

	assert.True(t, result.Success)
	require.Len(t, leads.inserted, 1)
	assert.Equal(t, int64(3), *leads.inserted[0].CampaignID)
}

func TestExportBatch_ReExportUpdates(t *testing.T) {
	leads := newMockLeadStore()
	campaigns := &mockCampaignStore{campaigns: []campaign.Record{{ID: 7}}}
	e := newTestExporter(leads, campaigns)

	raws := []lead.Raw{{ID: "a", Phone: "0612345678"}}

	first := e.ExportBatch(context.Background(), raws, nil)
	require.True(t, first.Success)
	require.Len(t, leads.inserted, 1)

	// The lead now exists in the CRM; a re-export must update, not duplicate.
	leads.byPhone["0612345678"] = &lead.Record{ID: 1, Phone: "0612345678"}

	second := e.ExportBatch(context.Background(), raws, nil)
	assert.True(t, second.Success)
	assert.Equal(t, 1, second.LeadsCount)
	assert.Len(t, leads.inserted, 1)
	assert.Contains(t, leads.updated, int64(1))
}

func TestExportBatch_DistinctBatchIDs(t *testing.T) {
	e := newTestExporter(newMockLeadStore(), &mockCampaignStore{})

	a := e.ExportBatch(context.Background(), nil, nil)
	b := e.ExportBatch(context.Background(), nil, nil)
	assert.NotEqual(t, a.BatchID, b.BatchID)
}
