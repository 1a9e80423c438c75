package model

import "time"

// NormalizationRule maps noisy vendor text to a clean canonical name.
// Rules are created from seed data or learned from user corrections; repeated
// confirmation strengthens them. They are never deleted automatically.
type NormalizationRule struct {
	CreatedAt      time.Time `json:"created_at"`
	LastUsed       time.Time `json:"last_used"`
	ID             string    `json:"id"`
	Pattern        string    `json:"pattern"`
	NormalizedName string    `json:"normalized_name"`
	Confidence     float64   `json:"confidence"`
	UseCount       int       `json:"use_count"`
	IsRegex        bool      `json:"is_regex"`
	IsUserDefined  bool      `json:"is_user_defined"`
}

// CategoryRule maps description patterns to a spending category.
// A rule matches if any of its patterns match (many-to-one).
type CategoryRule struct {
	LastUsed      time.Time `json:"last_used"`
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Category      string    `json:"category"`
	Patterns      []string  `json:"patterns"`
	Confidence    float64   `json:"confidence"`
	UseCount      int       `json:"use_count"`
	IsRegex       bool      `json:"is_regex"`
	IsActive      bool      `json:"is_active"`
	IsUserDefined bool      `json:"is_user_defined"`
}

// RuleSet bundles both rule kinds for export/import across the persistence
// boundary. The engines hold rules in memory for the duration of a batch and
// never assume a particular storage engine.
type RuleSet struct {
	Normalization  []NormalizationRule `json:"normalization"`
	Categorization []CategoryRule      `json:"categorization"`
}
