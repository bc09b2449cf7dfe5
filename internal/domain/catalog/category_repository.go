package catalog

import (
	"context"

	"github.com/google/uuid"
)

// CategoryRepository defines the interface for category persistence
type CategoryRepository interface {
	// FindByID returns shared.ErrNotFound when the category does not exist
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)

	// FindByName matches the name exactly
	FindByName(ctx context.Context, name string) (*Category, error)

	// FindAll returns every category ordered by name ascending
	FindAll(ctx context.Context) ([]Category, error)

	// Save creates or updates a category
	Save(ctx context.Context, category *Category) error

	// Delete hard-deletes a category
	Delete(ctx context.Context, id uuid.UUID) error
}
