package config

import (
	"encoding/json"
	"fmt"
	"path/filepath"
)

func ParseConfig(byteConfig []byte) (*Config, error) {
	var cfg Config
	err := json.Unmarshal(byteConfig, &cfg)
	if err != nil {
		return nil, err
	}
	if cfg.Chromedp.UserDataDir != "" {
		absPath, err := filepath.Abs(cfg.Chromedp.UserDataDir)
		if err != nil {
			return nil, err
		}
		cfg.Chromedp.UserDataDir = absPath
	}
	if cfg.Rod.UserDataDir != "" {
		absPath, err := filepath.Abs(cfg.Rod.UserDataDir)
		if err != nil {
			return nil, err
		}
		cfg.Rod.UserDataDir = absPath
	}
	applyHarvestDefaults(&cfg)
	return &cfg, nil
}

// applyHarvestDefaults 未配置的预算项回落到默认值
// 默认值标定自实际站点上千名候选人列表的表现
func applyHarvestDefaults(cfg *Config) {
	h := &cfg.Harvest
	if h.MaxLoadAttempts <= 0 {
		h.MaxLoadAttempts = 500
	}
	if h.MaxLoadFailures <= 0 {
		h.MaxLoadFailures = 10
	}
	if h.NoProgressLimit <= 0 {
		h.NoProgressLimit = 50
	}
	if h.ScrollIncrement <= 0 {
		h.ScrollIncrement = 200
	}
	if h.LandingSettleSeconds <= 0 {
		h.LandingSettleSeconds = 4
	}
	if h.ExtendedSettleSeconds <= 0 {
		h.ExtendedSettleSeconds = 5
	}
	if h.PanelSettleMillis <= 0 {
		h.PanelSettleMillis = 400
	}
	if h.RevealSettleMillis <= 0 {
		h.RevealSettleMillis = 400
	}
	if h.LoadMoreSettleMillis <= 0 {
		h.LoadMoreSettleMillis = 500
	}
	if h.ScrollSettleMillis <= 0 {
		h.ScrollSettleMillis = 200
	}
	if h.FailedScrollPauseMills <= 0 {
		h.FailedScrollPauseMills = 300
	}
	// batch_size为0会让向量化分批循环原地踏步
	if cfg.Embedder.BatchSize <= 0 {
		cfg.Embedder.BatchSize = 10
	}
}

func (c *Config) Validate() error {
	if c.Elasticsearch.Index == "" {
		return fmt.Errorf("配置缺少elasticsearch.index")
	}
	return nil
}
