package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/abhisek/quizpath/internal/config"
	"github.com/abhisek/quizpath/internal/session"
	"github.com/abhisek/quizpath/internal/store"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "quizpath",
	Short:         "Adaptive quiz practice for data structures",
	Long:          "quizpath records every answer, recommends what to practise next and plans prerequisite-first review paths.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
	}
	return err
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Path to a config file (yaml, toml or json)")
	pf.String(config.KeyDataDir, "", "Data directory (overrides QUIZPATH_DATA_DIR)")
	pf.String(config.KeyUser, "", "User scope; empty selects the default scope")
	pf.String(config.KeyBackend, "", "Attempt log backend: csv or sqlite")
	pf.String(config.KeyCatalog, "", "Question catalog file (default <data-dir>/questions.csv)")
	pf.String(config.KeyGraph, "", "Knowledge graph file (default <data-dir>/knowledge_graph.txt)")
	pf.String(config.KeyLogLevel, "", "Log level: debug, info, warn or error")

	rootCmd.AddCommand(answerCmd)
	rootCmd.AddCommand(recommendCmd)
	rootCmd.AddCommand(topicsCmd)
	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(wrongCmd)
	rootCmd.AddCommand(practiceCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig resolves settings for cmd: flags, then QUIZPATH_* env, then
// the config file, then defaults.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	return config.Load(path, cmd.Flags())
}

func newLogger(cfg *config.Config) *slog.Logger {
	lvl, err := cfg.Level()
	if err != nil {
		lvl = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

func openBackend(cfg *config.Config) (store.Backend, error) {
	switch cfg.Backend {
	case config.BackendSQLite:
		path := cfg.DBPath()
		if err := store.EnsureDir(path); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
		return store.OpenSQLite(path)
	default:
		return store.NewCSVBackend(cfg.DataDir), nil
	}
}

// openSession builds a session with the catalog, the knowledge graph and
// the configured user's history loaded. A missing or broken graph only
// disables review. The returned close func releases the backend.
func openSession(cmd *cobra.Command) (*session.Session, *config.Config, func(), error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, nil, err
	}
	logger := newLogger(cfg)

	backend, err := openBackend(cfg)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("open %s backend: %w", cfg.Backend, err)
	}
	closeFn := func() {
		if err := backend.Close(); err != nil {
			logger.Warn("close backend", "error", err)
		}
	}

	s := session.New(session.Options{Backend: backend, Logger: logger})
	if err := s.LoadCatalog(cfg.CatalogPath()); err != nil {
		closeFn()
		return nil, nil, nil, err
	}
	if err := s.LoadKnowledgeGraph(cfg.GraphPath()); err != nil {
		fmt.Fprintln(os.Stderr, "warning: review paths unavailable:", err)
	}
	if err := s.SwitchUser(cmd.Context(), cfg.User); err != nil {
		closeFn()
		return nil, nil, nil, err
	}
	return s, cfg, closeFn, nil
}

// errUsage marks argument errors.
var errUsage = errors.New("usage")
