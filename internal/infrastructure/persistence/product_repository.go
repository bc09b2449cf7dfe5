package persistence

import (
	"context"
	"strings"

	"github.com/dotmart/backend/internal/domain/catalog"
	"github.com/dotmart/backend/internal/domain/shared"
	"github.com/dotmart/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormProductRepository implements catalog.ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByID finds a product of any status and loads its category
func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	var m models.ProductModel
	if err := r.db.WithContext(ctx).Preload("Category").First(&m, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "Product")
	}
	return m.ToDomain(), nil
}

// FindBySlug finds an enabled product by slug
func (r *GormProductRepository) FindBySlug(ctx context.Context, slug string) (*catalog.Product, error) {
	var m models.ProductModel
	if err := r.db.WithContext(ctx).
		Preload("Category").
		Where("slug = ? AND status = ?", strings.ToLower(slug), catalog.ProductStatusEnable).
		First(&m).Error; err != nil {
		return nil, notFound(err, "Product")
	}
	return m.ToDomain(), nil
}

// ExistsBySlug reports whether any product, enabled or not, uses slug
func (r *GormProductRepository) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ProductModel{}).
		Where("slug = ?", slug).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// List returns one page of enabled products sorted by category name
func (r *GormProductRepository) List(ctx context.Context, q catalog.ProductQuery) ([]catalog.Product, int64, error) {
	filtered := func() *gorm.DB {
		tx := r.db.WithContext(ctx).
			Model(&models.ProductModel{}).
			Joins("JOIN categories ON categories.id = products.category_id").
			Where("products.status = ?", catalog.ProductStatusEnable)
		if q.Search != "" {
			pattern := "%" + escapeLike(strings.ToLower(q.Search)) + "%"
			tx = tx.Where(`LOWER(products.name) LIKE ? ESCAPE '\'`, pattern)
		}
		if q.CategoryID != nil {
			tx = tx.Where("products.category_id = ?", *q.CategoryID)
		} else if q.CategoryName != "" {
			tx = tx.Where("LOWER(categories.name) = ?", strings.ToLower(q.CategoryName))
		}
		return tx
	}

	var total int64
	if err := filtered().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := shared.NewPagination(q.Pagination.Page, q.Pagination.Limit)
	direction := "ASC"
	if q.SortOrder == shared.SortDesc {
		direction = "DESC"
	}

	var rows []models.ProductModel
	if err := filtered().
		Select("products.*").
		Preload("Category").
		Order("categories.name " + direction).
		Order("products.created_at DESC").
		Offset(page.Offset()).
		Limit(page.Limit).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return toProducts(rows), total, nil
}

// FindByIDs loads the products that exist among ids, with categories
func (r *GormProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	if len(ids) == 0 {
		return []catalog.Product{}, nil
	}
	var rows []models.ProductModel
	if err := r.db.WithContext(ctx).Preload("Category").Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	return toProducts(rows), nil
}

// CountByCategory counts products of any status in a category
func (r *GormProductRepository) CountByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ProductModel{}).
		Where("category_id = ?", categoryID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a product. The category association is never written.
func (r *GormProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	var m models.ProductModel
	m.FromDomain(product)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(&m).Error; err != nil {
		return translateError(err, "Product", "slug", product.Slug)
	}
	product.UpdatedAt = m.UpdatedAt
	return nil
}

func toProducts(rows []models.ProductModel) []catalog.Product {
	products := make([]catalog.Product, 0, len(rows))
	for i := range rows {
		products = append(products, *rows[i].ToDomain())
	}
	return products
}

var _ catalog.ProductRepository = (*GormProductRepository)(nil)
