package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

// Config locates the on-disk layout: three JSON snapshot files, the SQLite
// history database, the session journal, and the plugin manifest directory,
// all under a single data dir.
type Config struct {
	DataDir     string `env:"HEALTHQUEST_HOME"`
	ProfilePath string
	LevelsPath  string
	LedgerPath  string
	DBPath      string
	JournalDir  string
	PluginsDir  string
}

// New builds a Config from dataDir. An empty dataDir falls back to the
// HEALTHQUEST_HOME environment variable, then to ~/.healthquest.
func New(dataDir string) (Config, error) {
	cfg := Config{DataDir: dataDir}
	if cfg.DataDir == "" {
		if err := env.Parse(&cfg); err != nil {
			return Config{}, fmt.Errorf("parse env: %w", err)
		}
	}
	if cfg.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Config{}, fmt.Errorf("resolve home dir: %w", err)
		}
		cfg.DataDir = filepath.Join(home, ".healthquest")
	}
	cfg.ProfilePath = filepath.Join(cfg.DataDir, "profile.json")
	cfg.LevelsPath = filepath.Join(cfg.DataDir, "levels.json")
	cfg.LedgerPath = filepath.Join(cfg.DataDir, "activity.json")
	cfg.DBPath = filepath.Join(cfg.DataDir, "history.db")
	cfg.JournalDir = filepath.Join(cfg.DataDir, "journal")
	cfg.PluginsDir = filepath.Join(cfg.DataDir, "plugins")
	return cfg, nil
}
