// Package config loads tasklist settings from defaults, a TOML file, the
// environment and command-line flags, in that order of precedence.
package config

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/idilsaglam/tasklist/internal/store"
)

// Store backends.
const (
	StoreJSON   = "json"
	StoreSQLite = "sqlite"
	StoreMemory = "memory"
)

const (
	DefaultAddr     = "127.0.0.1:8080"
	DefaultTheme    = "classic"
	DefaultLogLevel = "warn"
	configFileName  = "tasklist.toml"
)

// Config holds every tunable.
type Config struct {
	Store    string `toml:"store"`
	DataDir  string `toml:"data_dir"`
	Key      string `toml:"key"`
	Addr     string `toml:"addr"`
	Theme    string `toml:"theme"`
	LogLevel string `toml:"log_level"`
	LogFile  string `toml:"log_file"`

	// File is the config file that was read, if any.
	File string `toml:"-"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Store:    StoreJSON,
		Key:      store.DefaultKey,
		Addr:     DefaultAddr,
		Theme:    DefaultTheme,
		LogLevel: DefaultLogLevel,
	}
}

// Load registers the config flags on fs, parses args and layers:
// defaults, config file, environment, then flags that were set explicitly.
// Positional arguments remain available through fs.Args().
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	cfg := Default()

	var flagVals Config
	configPath := fs.String("config", "", "path to a tasklist.toml config file")
	fs.StringVar(&flagVals.Store, "store", "", "storage backend: json, sqlite or memory")
	fs.StringVar(&flagVals.DataDir, "data", "", "directory holding the task data")
	fs.StringVar(&flagVals.Key, "key", "", "storage key for the task list")
	fs.StringVar(&flagVals.Addr, "addr", "", "listen address for serve")
	fs.StringVar(&flagVals.Theme, "theme", "", "color theme: classic, neon or mono")
	fs.StringVar(&flagVals.LogLevel, "log-level", "", "log level: debug, info, warn or error")
	fs.StringVar(&flagVals.LogFile, "log-file", "", "append logs to this file")
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parsing flags: %w", err)
	}

	path := *configPath
	if path == "" {
		path = findConfigFile()
	}
	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
		cfg.File = path
	}

	loadFromEnv(cfg)

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "store":
			cfg.Store = flagVals.Store
		case "data":
			cfg.DataDir = flagVals.DataDir
		case "key":
			cfg.Key = flagVals.Key
		case "addr":
			cfg.Addr = flagVals.Addr
		case "theme":
			cfg.Theme = flagVals.Theme
		case "log-level":
			cfg.LogLevel = flagVals.LogLevel
		case "log-file":
			cfg.LogFile = flagVals.LogFile
		}
	})

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects unknown enum values and normalizes case.
func (c *Config) Validate() error {
	c.Store = strings.ToLower(strings.TrimSpace(c.Store))
	c.Theme = strings.ToLower(strings.TrimSpace(c.Theme))
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))

	switch c.Store {
	case StoreJSON, StoreSQLite, StoreMemory:
	default:
		return fmt.Errorf("invalid store %q (want json, sqlite or memory)", c.Store)
	}
	switch c.Theme {
	case "classic", "neon", "mono":
	default:
		return fmt.Errorf("invalid theme %q (want classic, neon or mono)", c.Theme)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.LogLevel)
	}
	if strings.TrimSpace(c.Key) == "" {
		return fmt.Errorf("storage key is empty")
	}
	return nil
}

// SQLitePath is the database file used by the sqlite backend.
func (c *Config) SQLitePath() string {
	return filepath.Join(c.DataDir, "tasklist.db")
}

func loadFromEnv(cfg *Config) {
	for env, dst := range map[string]*string{
		"TASKLIST_STORE":     &cfg.Store,
		"TASKLIST_DATA_DIR":  &cfg.DataDir,
		"TASKLIST_KEY":       &cfg.Key,
		"TASKLIST_ADDR":      &cfg.Addr,
		"TASKLIST_THEME":     &cfg.Theme,
		"TASKLIST_LOG_LEVEL": &cfg.LogLevel,
		"TASKLIST_LOG_FILE":  &cfg.LogFile,
	} {
		if v := os.Getenv(env); v != "" {
			*dst = v
		}
	}
}

// findConfigFile prefers ./tasklist.toml, then the user config dir.
func findConfigFile() string {
	if _, err := os.Stat(configFileName); err == nil {
		return configFileName
	}
	if dir, err := os.UserConfigDir(); err == nil {
		p := filepath.Join(dir, "tasklist", configFileName)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
