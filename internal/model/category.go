package model

import "time"

// Category represents a spending category the user has defined.
// The categorizer only suggests categories present in the caller's known set.
type Category struct {
	CreatedAt   time.Time `json:"created_at"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	ID          int       `json:"id"`
	IsActive    bool      `json:"is_active"`
}

// CategoryNames extracts the active category names from a category list.
func CategoryNames(categories []Category) []string {
	names := make([]string, 0, len(categories))
	for _, c := range categories {
		if c.IsActive {
			names = append(names, c.Name)
		}
	}
	return names
}
