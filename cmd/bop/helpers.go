package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/himynameismarvin/budget-bop/internal/categorizer"
	"github.com/himynameismarvin/budget-bop/internal/mapper"
	"github.com/himynameismarvin/budget-bop/internal/model"
	"github.com/himynameismarvin/budget-bop/internal/normalizer"
	"github.com/himynameismarvin/budget-bop/internal/pipeline"
	"github.com/himynameismarvin/budget-bop/internal/storage"
)

// dbPath resolves the database location from config, defaulting to the
// XDG-ish data directory.
func dbPath() (string, error) {
	if path := viper.GetString("database.path"); path != "" {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".local", "share", "bop", "bop.db"), nil
}

// openStorage opens and migrates the database.
func openStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	path, err := dbPath()
	if err != nil {
		return nil, err
	}
	store, err := storage.NewSQLiteStorage(path)
	if err != nil {
		return nil, err
	}
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, err
	}
	return store, nil
}

// buildPipeline assembles the engines from config and stored rules. On first
// run the seed rules are persisted so later learning updates them in place.
func buildPipeline(ctx context.Context, store *storage.SQLiteStorage) (*pipeline.Pipeline, error) {
	rules, err := store.LoadRules(ctx)
	if err != nil {
		return nil, err
	}

	seeded := false
	if len(rules.Normalization) == 0 {
		rules.Normalization = normalizer.DefaultRules()
		seeded = true
	}
	if len(rules.Categorization) == 0 {
		rules.Categorization = categorizer.DefaultRules()
		seeded = true
	}
	if seeded {
		if err := store.SaveRules(ctx, rules); err != nil {
			return nil, err
		}
	}

	categories, err := store.GetCategories(ctx)
	if err != nil {
		return nil, err
	}

	norm := normalizer.New(normalizerConfig(), rules.Normalization)
	cat := categorizer.New(categorizerConfig(), rules.Categorization)
	return pipeline.New(norm, cat, model.CategoryNames(categories)), nil
}

func normalizerConfig() normalizer.Config {
	cfg := normalizer.DefaultConfig()
	cfg.MinScore = viper.GetFloat64("normalizer.min_score")
	cfg.ReviewThreshold = viper.GetFloat64("normalizer.review_threshold")
	cfg.SimilarityThreshold = viper.GetFloat64("normalizer.similarity_threshold")
	cfg.WordMatchThreshold = viper.GetFloat64("normalizer.word_match_threshold")
	return cfg
}

func categorizerConfig() categorizer.Config {
	cfg := categorizer.DefaultConfig()
	cfg.MinScore = viper.GetFloat64("categorizer.min_score")
	cfg.ReviewThreshold = viper.GetFloat64("categorizer.review_threshold")
	cfg.SimilarityThreshold = viper.GetFloat64("categorizer.similarity_threshold")
	cfg.WordMatchThreshold = viper.GetFloat64("categorizer.word_match_threshold")
	return cfg
}

// parseMappingFlags converts --map field=Header pairs into a mapper.Mapping.
func parseMappingFlags(pairs []string) (mapper.Mapping, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	mapping := make(mapper.Mapping, len(pairs))
	for _, pair := range pairs {
		field, header, found := strings.Cut(pair, "=")
		if !found || field == "" || header == "" {
			return nil, fmt.Errorf("invalid mapping %q, expected field=Header", pair)
		}
		mapping[mapper.Field(field)] = header
	}
	return mapping, nil
}

// printSummary reports partial success: N good rows, M flagged rows.
func printSummary(summary model.ReviewSummary) {
	fmt.Printf("Processed %d transactions: %d ready, %d flagged, %d duplicates\n",
		summary.Total, summary.Ready, summary.Flagged, summary.Duplicates)
}
