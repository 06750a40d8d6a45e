package config

type Config struct {
	Elasticsearch struct {
		Username string `json:"username"`
		Password string `json:"password"`
		Address  string `json:"address"`
		Index    string `json:"index"`
	} `json:"elasticsearch"`

	Rod struct {
		UserDataDir          string `json:"user_data_dir"`
		Headless             bool   `json:"headless"`
		DisableBlinkFeatures string `json:"disable_blink_features"`
		Incognito            bool   `json:"incognito"`
		DisableDevShmUsage   bool   `json:"disable_dev_shm_usage"`
		NoSandbox            bool   `json:"no_sandbox"`
		UserAgent            string `json:"user_agent"`
		Leakless             bool   `json:"leakless"`
		Bin                  string `json:"bin"`
	} `json:"rod"`

	Chromedp struct {
		LifeTime             int    `json:"life_time"`
		UserDataDir          string `json:"user_data_dir"`
		Headless             bool   `json:"headless"`
		DisableBlinkFeatures string `json:"disable_blink_features"`
		Incognito            bool   `json:"incognito"`
		DisableDevShmUsage   bool   `json:"disable_dev_shm_usage"`
		NoSandbox            bool   `json:"no_sandbox"`
		UserAgent            string `json:"user_agent"`
	} `json:"chromedp"`

	Colly struct {
		AllowedDomains  []string `json:"allowed_domains"`
		UserAgent       string   `json:"user_agent"`
		IgnoreRobotsTxt bool     `json:"ignore_robots_txt"`
		Parallelism     int      `json:"parallelism"`
		Delay           int      `json:"delay"`
		RandomDelay     int      `json:"random_delay"`
	} `json:"colly"`

	Embedder struct {
		Host      string `json:"host"`
		Port      int    `json:"port"`
		Model     string `json:"model"`
		BatchSize int    `json:"batch_size"`
	} `json:"embedder"`

	LLM struct {
		Host  string `json:"host"`
		Port  int    `json:"port"`
		Model string `json:"model"`
	} `json:"llm"`

	// Harvest 采集引擎的节奏与预算上限,这些上限是运行收敛的唯一手段,
	// 与目标站点无关,站点相关的选择器在harvest.Profile里
	Harvest struct {
		MaxLoadAttempts        int `json:"max_load_attempts"`
		MaxLoadFailures        int `json:"max_load_failures"`
		NoProgressLimit        int `json:"no_progress_limit"`
		ScrollIncrement        int `json:"scroll_increment"`
		LandingSettleSeconds   int `json:"landing_settle_seconds"`
		ExtendedSettleSeconds  int `json:"extended_settle_seconds"`
		PanelSettleMillis      int `json:"panel_settle_millis"`
		RevealSettleMillis     int `json:"reveal_settle_millis"`
		LoadMoreSettleMillis   int `json:"load_more_settle_millis"`
		ScrollSettleMillis     int `json:"scroll_settle_millis"`
		FailedScrollPauseMills int `json:"failed_scroll_pause_millis"`
	} `json:"harvest"`
}
