package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the server configuration.
// Priority: env vars > settings file (WFGRAPH_CONFIG) > defaults.
type Config struct {
	ListenAddr  string `yaml:"listen_addr"`
	Store       string `yaml:"store"`
	DatabaseURL string `yaml:"database_url"`
	LogLevel    string `yaml:"log_level"`
	LogFormat   string `yaml:"log_format"`
	BodyLimit   int    `yaml:"body_limit"`
}

const (
	storePostgres = "postgres"
	storeMemory   = "memory"
)

func defaultConfig() Config {
	return Config{
		ListenAddr: ":3000",
		Store:      storePostgres,
		LogLevel:   "info",
		LogFormat:  "text",
		BodyLimit:  4 << 20,
	}
}

// loadConfig layers the settings file and the environment over the defaults.
func loadConfig(getenv func(string) string) (Config, error) {
	cfg := defaultConfig()

	if path := getenv("WFGRAPH_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read settings: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse settings %s: %w", path, err)
		}
	}

	if v := getenv("WFGRAPH_LISTEN_ADDR"); v != "" {
		cfg.ListenAddr = v
	}
	if v := getenv("WFGRAPH_STORE"); v != "" {
		cfg.Store = v
	}
	if v := getenv("DATABASE_URL"); v != "" {
		cfg.DatabaseURL = v
	}
	if v := getenv("WFGRAPH_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := getenv("WFGRAPH_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
	if v := getenv("WFGRAPH_BODY_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("WFGRAPH_BODY_LIMIT: %w", err)
		}
		cfg.BodyLimit = n
	}

	return cfg, cfg.validate()
}

func (c Config) validate() error {
	switch c.Store {
	case storePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is not set")
		}
	case storeMemory:
	default:
		return fmt.Errorf("unknown store %q (want %s or %s)", c.Store, storePostgres, storeMemory)
	}
	if c.BodyLimit <= 0 {
		return fmt.Errorf("body_limit must be positive, got %d", c.BodyLimit)
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

func parseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return lvl, fmt.Errorf("log_level: %w", err)
	}
	return lvl, nil
}

func newLogger(cfg Config) *slog.Logger {
	lvl, _ := parseLevel(cfg.LogLevel)
	opts := &slog.HandlerOptions{Level: lvl}
	if strings.EqualFold(cfg.LogFormat, "json") {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
