package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/neodize/rsi-grid-alert-bot/internal/model"
	"github.com/neodize/rsi-grid-alert-bot/internal/strategy"
)

// Config holds all application configuration.
type Config struct {
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Exchange struct {
		BaseURL string `yaml:"base_url"`
	} `yaml:"exchange"`
	Scanner struct {
		TopCandidates       int     `yaml:"top_candidates"`
		MinNotional         float64 `yaml:"min_notional"`
		MinPrice            float64 `yaml:"min_price"`
		QuickLimit          int     `yaml:"quick_limit"`
		CoarseLimit         int     `yaml:"coarse_limit"`
		FineLimit           int     `yaml:"fine_limit"`
		VolThreshold        float64 `yaml:"vol_threshold"`
		VotingPolicy        string  `yaml:"voting_policy"`
		RSIOversold         float64 `yaml:"rsi_oversold"`
		RSIOverbought       float64 `yaml:"rsi_overbought"`
		PositionThreshold   float64 `yaml:"position_threshold"`
		SpacingTarget       float64 `yaml:"spacing_target"`
		SpacingMin          float64 `yaml:"spacing_min"`
		SpacingMax          float64 `yaml:"spacing_max"`
		CycleMax            float64 `yaml:"cycle_max"`
		StopBuffer          float64 `yaml:"stop_buffer"`
		CooldownBaseSeconds float64 `yaml:"cooldown_base_seconds"`
	} `yaml:"scanner"`
	State struct {
		File string `yaml:"file"`
	} `yaml:"state"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Schedule struct {
		ScanCron string `yaml:"scan_cron"`
	} `yaml:"schedule"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("PIONEX_BASE_URL"); v != "" {
		cfg.Exchange.BaseURL = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("SCAN_CRON"); v != "" {
		cfg.Schedule.ScanCron = v
	}
	if v := os.Getenv("STATE_FILE"); v != "" {
		cfg.State.File = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}

	// Defaults
	if cfg.Scanner.TopCandidates == 0 {
		cfg.Scanner.TopCandidates = 30
	}
	if cfg.Scanner.MinNotional == 0 {
		cfg.Scanner.MinNotional = 100_000
	}
	if cfg.Scanner.MinPrice == 0 {
		cfg.Scanner.MinPrice = 0.005
	}
	if cfg.Scanner.QuickLimit == 0 {
		cfg.Scanner.QuickLimit = 50
	}
	if cfg.Scanner.CoarseLimit == 0 {
		cfg.Scanner.CoarseLimit = 200
	}
	if cfg.Scanner.FineLimit == 0 {
		cfg.Scanner.FineLimit = 400
	}
	if cfg.Schedule.ScanCron == "" {
		cfg.Schedule.ScanCron = "0 0 * * * *" // hourly
	}
	if cfg.State.File == "" {
		cfg.State.File = "data/grid_state.json"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/grid_scanner.db"
	}

	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("telegram.bot_token is required")
	}
	if c.Telegram.ChatID == "" {
		return fmt.Errorf("telegram.chat_id is required")
	}
	if p := c.Scanner.VotingPolicy; p != "" && p != string(model.VotingRelaxed) && p != string(model.VotingStrict) {
		return fmt.Errorf("scanner.voting_policy must be %q or %q", model.VotingRelaxed, model.VotingStrict)
	}
	return nil
}

// Params maps the scanner section onto strategy parameters; unset fields fall
// back to the strategy defaults.
func (c *Config) Params() strategy.Params {
	p := strategy.Params{
		VolThreshold:        c.Scanner.VolThreshold,
		VotingPolicy:        model.VotingPolicy(c.Scanner.VotingPolicy),
		RSIOversold:         c.Scanner.RSIOversold,
		RSIOverbought:       c.Scanner.RSIOverbought,
		PositionThreshold:   c.Scanner.PositionThreshold,
		SpacingTarget:       c.Scanner.SpacingTarget,
		SpacingMin:          c.Scanner.SpacingMin,
		SpacingMax:          c.Scanner.SpacingMax,
		CycleMax:            c.Scanner.CycleMax,
		StopBuffer:          c.Scanner.StopBuffer,
		CooldownBaseSeconds: c.Scanner.CooldownBaseSeconds,
	}
	return p
}
