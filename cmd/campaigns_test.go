package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/berinia/export-cli/internal/config"
)

func withInvalidStoreConfig(t *testing.T) {
	t.Helper()
	prev := cfg
	cfg = &config.Config{}
	cfg.Store.Driver = "postgres"
	t.Cleanup(func() { cfg = prev })
}

func TestCampaignsList_RejectsInvalidStoreConfig(t *testing.T) {
	withInvalidStoreConfig(t)

	err := campaignsListCmd.RunE(campaignsListCmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "store.database_url is required")
}

func TestCampaignsCreate_RejectsInvalidStoreConfig(t *testing.T) {
	withInvalidStoreConfig(t)

	prevName := campaignName
	campaignName = "Campagne Test"
	t.Cleanup(func() { campaignName = prevName })

	err := campaignsCreateCmd.RunE(campaignsCreateCmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "store.database_url is required")
}
