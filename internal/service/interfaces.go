// Package service defines the interfaces for the application's collaborators.
package service

import (
	"context"

	"github.com/himynameismarvin/budget-bop/internal/model"
)

// RuleRepository is the persistence boundary for learned and seed rules. The
// engines hold rules in memory per batch; the host loads and saves them here.
type RuleRepository interface {
	LoadRules(ctx context.Context) (model.RuleSet, error)
	SaveRules(ctx context.Context, rules model.RuleSet) error
}

// TransactionFilter defines filtering options for transaction queries.
type TransactionFilter struct {
	Category string
	Limit    int
	Offset   int
}

// Storage defines the contract for the persistence layer.
type Storage interface {
	RuleRepository

	// Transaction operations. SaveTransactions is the commit sink: it only
	// ever receives review records that passed validation.
	SaveTransactions(ctx context.Context, transactions []model.Transaction) error
	GetTransactions(ctx context.Context, filter TransactionFilter) ([]model.Transaction, error)
	GetKnownHashes(ctx context.Context) (map[string]bool, error)

	// Category operations back the known-category set that gates suggestions.
	GetCategories(ctx context.Context) ([]model.Category, error)
	CreateCategory(ctx context.Context, name, description string) (*model.Category, error)

	// Database management.
	Migrate(ctx context.Context) error
	Close() error
}
