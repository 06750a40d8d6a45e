package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseConfigAppliesHarvestDefaults(t *testing.T) {
	cfg, err := ParseConfig([]byte(`{
		"elasticsearch": {"index": "linkedin_applicant"},
		"harvest": {"max_load_attempts": 100}
	}`))

	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	require.Equal(t, 100, cfg.Harvest.MaxLoadAttempts)
	// 没配置的预算项回落到默认值
	require.Equal(t, 10, cfg.Harvest.MaxLoadFailures)
	require.Equal(t, 50, cfg.Harvest.NoProgressLimit)
	require.Equal(t, 200, cfg.Harvest.ScrollIncrement)
	require.Equal(t, 4, cfg.Harvest.LandingSettleSeconds)
	require.Equal(t, 5, cfg.Harvest.ExtendedSettleSeconds)
	require.Equal(t, 400, cfg.Harvest.PanelSettleMillis)
	require.Equal(t, 500, cfg.Harvest.LoadMoreSettleMillis)
	// 省略embedder段时批大小也要有默认值, 0会卡死向量化分批循环
	require.Equal(t, 10, cfg.Embedder.BatchSize)
}

func TestParseConfigResolvesUserDataDirs(t *testing.T) {
	cfg, err := ParseConfig([]byte(`{
		"elasticsearch": {"index": "linkedin_applicant"},
		"chromedp": {"user_data_dir": "./userdata/chromedp"},
		"rod": {"user_data_dir": "./userdata/rod"}
	}`))

	require.NoError(t, err)
	require.True(t, filepath.IsAbs(cfg.Chromedp.UserDataDir))
	require.True(t, filepath.IsAbs(cfg.Rod.UserDataDir))
}

func TestParseConfigRejectsBadJSON(t *testing.T) {
	_, err := ParseConfig([]byte(`{"elasticsearch":`))
	require.Error(t, err)
}

func TestValidateRequiresIndex(t *testing.T) {
	cfg, err := ParseConfig([]byte(`{}`))
	require.NoError(t, err)
	require.Error(t, cfg.Validate())
}
