package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type RuntimeConfig struct {
	Dev bool
}

type BotConfig struct {
	Token   string `yaml:"token"`
	Workers int    `yaml:"workers"` // polling workers
}

type LogConfig struct {
	Level    string `yaml:"level"`    // trace|debug|info|warn|error
	Format   string `yaml:"format"`   // json|console
	Sampling bool   `yaml:"sampling"` // enable sampling in prod
	Retain   int    `yaml:"retain"`   // log lines kept for the admin view
}

type StoreConfig struct {
	Path           string `yaml:"path"`
	PrimaryAdminID int64  `yaml:"primary_admin_id"`
}

type GateConfig struct {
	RequiredChannel string        `yaml:"required_channel"` // @handle checked on top of stored ids
	DownloadPageURL string        `yaml:"download_page_url"`
	SiteURL         string        `yaml:"site_url"`
	FetchTimeout    time.Duration `yaml:"fetch_timeout"`
	AssetsDir       string        `yaml:"assets_dir"`
}

type APIConfig struct {
	Addr string `yaml:"addr"`
}

type Config struct {
	Bot   BotConfig   `yaml:"bot"`
	Log   LogConfig   `yaml:"log"`
	Store StoreConfig `yaml:"store"`
	Gate  GateConfig  `yaml:"gate"`
	API   APIConfig   `yaml:"api"`

	Runtime RuntimeConfig `yaml:"-"`
}

// LoadConfig reads the yaml file named by -config, then lets a .env
// file and process environment override the secrets: BOT_TOKEN,
// PRIMARY_ADMIN_ID and SITE_URL.
func LoadConfig() (*Config, error) {
	var configPath string
	var dev bool
	flag.StringVar(&configPath, "config", "config.yaml", "path to config yaml")
	flag.BoolVar(&dev, "dev", false, "development mode")
	flag.Parse()

	// Missing .env is fine; the environment may already be populated.
	_ = godotenv.Load()

	b, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if v := os.Getenv("BOT_TOKEN"); v != "" {
		cfg.Bot.Token = v
	}
	if v := os.Getenv("PRIMARY_ADMIN_ID"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse PRIMARY_ADMIN_ID: %w", err)
		}
		cfg.Store.PrimaryAdminID = id
	}
	if v := os.Getenv("SITE_URL"); v != "" {
		cfg.Gate.SiteURL = v
	}

	// defaults
	if cfg.Bot.Workers <= 0 {
		cfg.Bot.Workers = 8
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if cfg.Log.Retain <= 0 {
		cfg.Log.Retain = 50
	}
	if cfg.Store.Path == "" {
		cfg.Store.Path = "bot_data.json"
	}
	if cfg.Gate.FetchTimeout <= 0 {
		cfg.Gate.FetchTimeout = 2 * time.Minute
	}
	if cfg.Gate.AssetsDir == "" {
		cfg.Gate.AssetsDir = "assets"
	}
	if cfg.API.Addr == "" {
		cfg.API.Addr = ":8080"
	}

	// Minimal validation
	if cfg.Bot.Token == "" {
		return nil, errors.New("bot.token is required")
	}
	if cfg.Store.PrimaryAdminID == 0 {
		return nil, errors.New("store.primary_admin_id is required")
	}

	cfg.Runtime.Dev = dev
	return &cfg, nil
}
