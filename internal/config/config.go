// Package config resolves quizpath settings from flags, QUIZPATH_*
// environment variables, an optional config file and defaults, in that
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/abhisek/quizpath/internal/recommend"
	"github.com/abhisek/quizpath/internal/store"
)

// Setting keys. Each doubles as the cobra flag name and, upper-cased with
// '-' replaced by '_', as the environment variable suffix.
const (
	KeyDataDir        = "data-dir"
	KeyUser           = "user"
	KeyBackend        = "backend"
	KeyCatalog        = "catalog"
	KeyGraph          = "graph"
	KeyRecommendCount = "recommend-count"
	KeyLogLevel       = "log-level"
)

const (
	EnvPrefix = "QUIZPATH"

	BackendCSV    = "csv"
	BackendSQLite = "sqlite"

	CatalogFile = "questions.csv"
	GraphFile   = "knowledge_graph.txt"
	DBFile      = "quizpath.db"
)

// Config is the resolved configuration.
type Config struct {
	DataDir        string `mapstructure:"data-dir"`
	User           string `mapstructure:"user"`
	Backend        string `mapstructure:"backend"`
	Catalog        string `mapstructure:"catalog"`
	Graph          string `mapstructure:"graph"`
	RecommendCount int    `mapstructure:"recommend-count"`
	LogLevel       string `mapstructure:"log-level"`
}

// Load resolves the configuration. configPath may be empty. flags may be
// nil; only flags the user set override lower layers.
func Load(configPath string, flags *pflag.FlagSet) (*Config, error) {
	// A missing .env is normal.
	_ = godotenv.Load()

	vip := viper.New()

	dataDir, err := store.DefaultDataDir()
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}
	vip.SetDefault(KeyDataDir, dataDir)
	vip.SetDefault(KeyUser, "")
	vip.SetDefault(KeyBackend, BackendCSV)
	vip.SetDefault(KeyCatalog, "")
	vip.SetDefault(KeyGraph, "")
	vip.SetDefault(KeyRecommendCount, recommend.DefaultK)
	vip.SetDefault(KeyLogLevel, "warn")

	vip.SetEnvPrefix(EnvPrefix)
	vip.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	vip.AutomaticEnv()

	if configPath != "" {
		vip.SetConfigFile(configPath)
		if err := vip.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", configPath, err)
		}
	}

	if flags != nil {
		for _, key := range []string{KeyDataDir, KeyUser, KeyBackend, KeyCatalog, KeyGraph, KeyRecommendCount, KeyLogLevel} {
			f := flags.Lookup(key)
			if f == nil {
				continue
			}
			if err := vip.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("bind flag %s: %w", key, err)
			}
		}
	}

	var cfg Config
	if err := vip.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings no command can work with.
func (c *Config) Validate() error {
	var errs []error
	if c.DataDir == "" {
		errs = append(errs, errors.New("data-dir must not be empty"))
	}
	switch c.Backend {
	case BackendCSV, BackendSQLite:
	default:
		errs = append(errs, fmt.Errorf("backend %q: want %s or %s", c.Backend, BackendCSV, BackendSQLite))
	}
	if err := store.ValidateUserID(c.User); err != nil {
		errs = append(errs, fmt.Errorf("user: %w", err))
	}
	if c.RecommendCount <= 0 {
		errs = append(errs, fmt.Errorf("recommend-count %d must be positive", c.RecommendCount))
	}
	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// Level parses LogLevel.
func (c *Config) Level() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("log-level %q: %w", c.LogLevel, err)
	}
	return lvl, nil
}

// CatalogPath returns the catalog file, defaulting inside the data dir.
func (c *Config) CatalogPath() string {
	if c.Catalog != "" {
		return c.Catalog
	}
	return filepath.Join(c.DataDir, CatalogFile)
}

// GraphPath returns the knowledge graph file, defaulting inside the data dir.
func (c *Config) GraphPath() string {
	if c.Graph != "" {
		return c.Graph
	}
	return filepath.Join(c.DataDir, GraphFile)
}

// DBPath returns the SQLite database used by the sqlite backend.
func (c *Config) DBPath() string {
	return filepath.Join(c.DataDir, DBFile)
}
