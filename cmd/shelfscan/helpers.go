package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/catalogflow/shelfscan/internal/common"
	"github.com/catalogflow/shelfscan/internal/dupe"
	"github.com/catalogflow/shelfscan/internal/engine"
	"github.com/catalogflow/shelfscan/internal/extract"
	"github.com/catalogflow/shelfscan/internal/score"
	"github.com/catalogflow/shelfscan/internal/service"
	"github.com/catalogflow/shelfscan/internal/storage"
)

// initStorage initializes the storage service with proper path expansion.
func initStorage(ctx context.Context) (service.Storage, error) {
	dbPath := viper.GetString("storage.database_path")
	if dbPath == "" {
		dbPath = "$HOME/.local/share/shelfscan/shelfscan.db"
	}
	dbPath = expandPath(dbPath)

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, common.NewUserError("database schema migration failed", err)
	}

	return store, nil
}

// initExtractor builds the AI collaborator when an API key is configured.
// Without one the pipeline runs with local keyword categorization only.
func initExtractor() (engine.Extractor, error) {
	apiKey := viper.GetString("extractor.api_key")
	if apiKey == "" {
		return nil, nil
	}

	return extract.NewExtractor(extract.Config{
		Provider:          viper.GetString("extractor.provider"),
		APIKey:            apiKey,
		Model:             viper.GetString("extractor.model"),
		RequestsPerMinute: viper.GetInt("extractor.rate_limit"),
	})
}

// initEngine wires storage and the optional extractor into a pipeline engine.
func initEngine(ctx context.Context) (*engine.Engine, service.Storage, error) {
	store, err := initStorage(ctx)
	if err != nil {
		return nil, nil, err
	}

	extractor, err := initExtractor()
	if err != nil {
		_ = store.Close()
		return nil, nil, err
	}

	cfg := engine.Config{
		ReviewThreshold:    viper.GetFloat64("pipeline.review_threshold"),
		DuplicateThreshold: viper.GetFloat64("pipeline.duplicate_threshold"),
	}
	if cfg.ReviewThreshold <= 0 {
		cfg.ReviewThreshold = score.DefaultReviewThreshold
	}
	if cfg.DuplicateThreshold <= 0 {
		cfg.DuplicateThreshold = dupe.DefaultSimilarityThreshold
	}

	return engine.NewWithConfig(store, extractor, cfg), store, nil
}

// expandPath expands $HOME, environment variables, and a leading tilde.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	}
	return os.ExpandEnv(path)
}

// readLines loads a text file into trimmed-right lines.
func readLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	raw := strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		lines = append(lines, strings.TrimRight(l, " \t"))
	}
	return lines, nil
}
