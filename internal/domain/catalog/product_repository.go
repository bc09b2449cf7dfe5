package catalog

import (
	"context"

	"github.com/dotmart/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ProductQuery is the filter for storefront listings. Disabled products are never returned.
type ProductQuery struct {
	// Search is a case-insensitive substring matched against the name
	Search string
	// CategoryID filters by category id
	CategoryID *uuid.UUID
	// CategoryName filters by exact, case-insensitive category name when CategoryID is nil
	CategoryName string
	SortOrder    shared.SortOrder
	Pagination   shared.Pagination
}

// ProductRepository defines the interface for product persistence.
// Reads populate Product.Category.
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindBySlug returns only enabled products
	FindBySlug(ctx context.Context, slug string) (*Product, error)

	ExistsBySlug(ctx context.Context, slug string) (bool, error)

	// List returns one page sorted by category name and the total match count
	List(ctx context.Context, q ProductQuery) ([]Product, int64, error)

	// FindByIDs returns the products that exist among ids, in no particular order
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Product, error)

	// CountByCategory counts products of any status referencing the category
	CountByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error)

	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error
}
