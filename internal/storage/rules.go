package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/himynameismarvin/budget-bop/internal/model"
)

// LoadRules reads both rule sets from the database.
func (s *SQLiteStorage) LoadRules(ctx context.Context) (model.RuleSet, error) {
	var rules model.RuleSet
	if err := validateContext(ctx); err != nil {
		return rules, err
	}

	norm, err := s.loadNormalizationRules(ctx)
	if err != nil {
		return rules, err
	}
	cat, err := s.loadCategoryRules(ctx)
	if err != nil {
		return rules, err
	}

	rules.Normalization = norm
	rules.Categorization = cat
	return rules, nil
}

func (s *SQLiteStorage) loadNormalizationRules(ctx context.Context) ([]model.NormalizationRule, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, pattern, normalized_name, confidence, is_regex, is_user_defined, use_count, created_at, last_used
		FROM normalization_rules
		ORDER BY created_at, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query normalization rules: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var rules []model.NormalizationRule
	for rows.Next() {
		var rule model.NormalizationRule
		var lastUsed sql.NullTime
		if err := rows.Scan(
			&rule.ID,
			&rule.Pattern,
			&rule.NormalizedName,
			&rule.Confidence,
			&rule.IsRegex,
			&rule.IsUserDefined,
			&rule.UseCount,
			&rule.CreatedAt,
			&lastUsed,
		); err != nil {
			return nil, fmt.Errorf("failed to scan normalization rule: %w", err)
		}
		if lastUsed.Valid {
			rule.LastUsed = lastUsed.Time
		}
		rules = append(rules, rule)
	}

	return rules, rows.Err()
}

func (s *SQLiteStorage) loadCategoryRules(ctx context.Context) ([]model.CategoryRule, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, category, patterns, confidence, is_regex, is_active, is_user_defined, use_count, last_used
		FROM category_rules
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query category rules: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var rules []model.CategoryRule
	for rows.Next() {
		var rule model.CategoryRule
		var patterns string
		var lastUsed sql.NullTime
		if err := rows.Scan(
			&rule.ID,
			&rule.Name,
			&rule.Category,
			&patterns,
			&rule.Confidence,
			&rule.IsRegex,
			&rule.IsActive,
			&rule.IsUserDefined,
			&rule.UseCount,
			&lastUsed,
		); err != nil {
			return nil, fmt.Errorf("failed to scan category rule: %w", err)
		}
		if err := json.Unmarshal([]byte(patterns), &rule.Patterns); err != nil {
			return nil, fmt.Errorf("failed to decode patterns for rule %s: %w", rule.ID, err)
		}
		if lastUsed.Valid {
			rule.LastUsed = lastUsed.Time
		}
		rules = append(rules, rule)
	}

	return rules, rows.Err()
}

// SaveRules upserts both rule sets. Rules are never deleted here: the engines
// only ever add or strengthen rules, so an upsert keeps storage in step.
func (s *SQLiteStorage) SaveRules(ctx context.Context, rules model.RuleSet) error {
	if err := validateContext(ctx); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, rule := range rules.Normalization {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO normalization_rules
				(id, pattern, normalized_name, confidence, is_regex, is_user_defined, use_count, created_at, last_used)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				pattern = excluded.pattern,
				normalized_name = excluded.normalized_name,
				confidence = excluded.confidence,
				use_count = excluded.use_count,
				last_used = excluded.last_used
		`, rule.ID, rule.Pattern, rule.NormalizedName, rule.Confidence,
			rule.IsRegex, rule.IsUserDefined, rule.UseCount, rule.CreatedAt, nullableTime(rule.LastUsed)); err != nil {
			return fmt.Errorf("failed to save normalization rule %s: %w", rule.ID, err)
		}
	}

	for _, rule := range rules.Categorization {
		patterns, err := json.Marshal(rule.Patterns)
		if err != nil {
			return fmt.Errorf("failed to encode patterns for rule %s: %w", rule.ID, err)
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO category_rules
				(id, name, category, patterns, confidence, is_regex, is_active, is_user_defined, use_count, last_used)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				name = excluded.name,
				category = excluded.category,
				patterns = excluded.patterns,
				confidence = excluded.confidence,
				is_active = excluded.is_active,
				use_count = excluded.use_count,
				last_used = excluded.last_used
		`, rule.ID, rule.Name, rule.Category, string(patterns), rule.Confidence,
			rule.IsRegex, rule.IsActive, rule.IsUserDefined, rule.UseCount, nullableTime(rule.LastUsed)); err != nil {
			return fmt.Errorf("failed to save category rule %s: %w", rule.ID, err)
		}
	}

	return tx.Commit()
}
