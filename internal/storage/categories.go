package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/himynameismarvin/budget-bop/internal/common"
	"github.com/himynameismarvin/budget-bop/internal/model"
)

// GetCategories retrieves all categories ordered by name.
func (s *SQLiteStorage) GetCategories(ctx context.Context) ([]model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, description, is_active, created_at
		FROM categories
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var categories []model.Category
	for rows.Next() {
		var cat model.Category
		if err := rows.Scan(&cat.ID, &cat.Name, &cat.Description, &cat.IsActive, &cat.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, cat)
	}

	return categories, rows.Err()
}

// CreateCategory adds a new category. Names are unique; recreating an
// existing category is an error.
func (s *SQLiteStorage) CreateCategory(ctx context.Context, name, description string) (*model.Category, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("category name must not be empty")
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO categories (name, description) VALUES (?, ?)
	`, name, description)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return nil, fmt.Errorf("%w: category %q", common.ErrDuplicateEntry, name)
		}
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get category id: %w", err)
	}

	return &model.Category{
		ID:          int(id),
		Name:        name,
		Description: description,
		IsActive:    true,
	}, nil
}
