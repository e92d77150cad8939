package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeInput(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "batch.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestReadBatch_BareArray(t *testing.T) {
	path := writeInput(t, `[{"id":"a","phone":"0612345678"},{"id":"b"}]`)

	raws, decision, err := readBatch(path)
	require.NoError(t, err)
	assert.Nil(t, decision)
	require.Len(t, raws, 2)
	assert.Equal(t, "a", raws[0].ID)
	assert.Equal(t, "0612345678", raws[0].Phone)
}

func TestReadBatch_Envelope(t *testing.T) {
	path := writeInput(t, `{
		"classified_leads": [{"id":"a","gpt_temperature":"WARM"}],
		"export_decision": {"leads_to_export_now": [{"id":"a","qualite":"WARM"}]}
	}`)

	raws, decision, err := readBatch(path)
	require.NoError(t, err)
	require.Len(t, raws, 1)
	require.NotNil(t, decision)
	require.Len(t, decision.LeadsToExportNow, 1)
	assert.Equal(t, "a", decision.LeadsToExportNow[0].ID)
}

func TestReadBatch_EnvelopeWithoutDecision(t *testing.T) {
	path := writeInput(t, `{"classified_leads": [{"id":"a"}]}`)

	raws, decision, err := readBatch(path)
	require.NoError(t, err)
	assert.Len(t, raws, 1)
	assert.Nil(t, decision)
}

func TestReadBatch_Empty(t *testing.T) {
	path := writeInput(t, "  \n")

	_, _, err := readBatch(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty")
}

func TestReadBatch_BadJSON(t *testing.T) {
	path := writeInput(t, `{"classified_leads": [`)

	_, _, err := readBatch(path)
	assert.Error(t, err)
}

func TestReadBatch_MissingFile(t *testing.T) {
	_, _, err := readBatch(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}
