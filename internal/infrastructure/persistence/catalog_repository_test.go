package persistence

import (
	"context"
	"math"
	"testing"

	"github.com/dotmart/backend/internal/domain/catalog"
	"github.com/dotmart/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormCategoryRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("saves and finds by id and name", func(t *testing.T) {
		repo := NewGormCategoryRepository(newTestDB(t))
		c := seedCategory(t, repo, "Shoes")

		byID, err := repo.FindByID(ctx, c.ID)
		require.NoError(t, err)
		assert.Equal(t, "Shoes", byID.Name)
		assert.True(t, byID.IsActive)

		byName, err := repo.FindByName(ctx, "Shoes")
		require.NoError(t, err)
		assert.Equal(t, c.ID, byName.ID)
	})

	t.Run("duplicate name is a conflict", func(t *testing.T) {
		repo := NewGormCategoryRepository(newTestDB(t))
		seedCategory(t, repo, "Shoes")

		dup, err := catalog.NewCategory("Shoes", "https://cdn.example.com/other.png")
		require.NoError(t, err)
		err = repo.Save(ctx, dup)
		require.Error(t, err)
		assert.True(t, shared.IsAlreadyExists(err))

		var de *shared.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, "name", de.Field)
		assert.Equal(t, "Shoes", de.Value)
	})

	t.Run("lists by name", func(t *testing.T) {
		repo := NewGormCategoryRepository(newTestDB(t))
		seedCategory(t, repo, "Toys")
		seedCategory(t, repo, "Books")
		seedCategory(t, repo, "Gifts")

		all, err := repo.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, []string{"Books", "Gifts", "Toys"}, []string{all[0].Name, all[1].Name, all[2].Name})
	})

	t.Run("update keeps id", func(t *testing.T) {
		repo := NewGormCategoryRepository(newTestDB(t))
		c := seedCategory(t, repo, "Shoes")
		name := "Sneakers"
		require.NoError(t, c.Apply(catalog.CategoryPatch{Name: &name}))
		require.NoError(t, repo.Save(ctx, c))

		got, err := repo.FindByID(ctx, c.ID)
		require.NoError(t, err)
		assert.Equal(t, "Sneakers", got.Name)
	})

	t.Run("delete missing is not found", func(t *testing.T) {
		repo := NewGormCategoryRepository(newTestDB(t))
		err := repo.Delete(ctx, uuid.New())
		assert.True(t, shared.IsNotFound(err))
		assert.EqualError(t, err, "Category not found")
	})
}

func TestGormProductRepository_SaveAndFind(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	categories := NewGormCategoryRepository(db)
	repo := NewGormProductRepository(db)

	cat := seedCategory(t, categories, "Gadgets")
	p := seedProduct(t, repo, cat.ID, "Wireless Mouse", "25")

	got, err := repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "wireless-mouse", got.Slug)
	assert.True(t, got.Price.Equal(decimal.NewFromInt(25)))
	assert.Equal(t, int64(50), got.Discount)
	assert.Equal(t, []string{"https://cdn.example.com/p.png"}, got.Images)
	assert.Equal(t, []string{"gift"}, got.Meta.Keywords)
	require.NotNil(t, got.Category)
	assert.Equal(t, "Gadgets", got.Category.Name)

	bySlug, err := repo.FindBySlug(ctx, "Wireless-Mouse")
	require.NoError(t, err)
	assert.Equal(t, p.ID, bySlug.ID)

	exists, err := repo.ExistsBySlug(ctx, "wireless-mouse")
	require.NoError(t, err)
	assert.True(t, exists)

	t.Run("disabled product is hidden by slug but found by id", func(t *testing.T) {
		p.Disable()
		require.NoError(t, repo.Save(ctx, p))

		_, err := repo.FindBySlug(ctx, "wireless-mouse")
		assert.True(t, shared.IsNotFound(err))

		got, err := repo.FindByID(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, catalog.ProductStatusDisable, got.Status)

		count, err := repo.CountByCategory(ctx, cat.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("duplicate slug is a conflict", func(t *testing.T) {
		dup, err := catalog.NewProduct(catalog.ProductDetails{
			Name:        "Wireless Mouse",
			Description: "another",
			CategoryID:  cat.ID,
			Images:      []string{"https://cdn.example.com/p.png"},
			Meta:        catalog.Meta{Title: "t", Description: "d"},
		})
		require.NoError(t, err)
		err = repo.Save(ctx, dup)
		assert.True(t, shared.IsAlreadyExists(err))
	})

	t.Run("missing id is not found", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.EqualError(t, err, "Product not found")
	})
}

func TestGormProductRepository_List(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	categories := NewGormCategoryRepository(db)
	repo := NewGormProductRepository(db)

	books := seedCategory(t, categories, "Books")
	toys := seedCategory(t, categories, "Toys")
	seedProduct(t, repo, toys.ID, "Teddy Bear", "20")
	seedProduct(t, repo, books.ID, "Go Programming", "45")
	seedProduct(t, repo, books.ID, "100% Cotton Bookmark", "5")
	hidden := seedProduct(t, repo, toys.ID, "Hidden Toy", "9")
	hidden.Disable()
	require.NoError(t, repo.Save(ctx, hidden))

	page := shared.NewPagination(1, 20)

	t.Run("excludes disabled and sorts by category name", func(t *testing.T) {
		products, total, err := repo.List(ctx, catalog.ProductQuery{Pagination: page, SortOrder: shared.SortAsc})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		require.Len(t, products, 3)
		assert.Equal(t, "Books", products[0].Category.Name)
		assert.Equal(t, "Toys", products[2].Category.Name)

		desc, _, err := repo.List(ctx, catalog.ProductQuery{Pagination: page, SortOrder: shared.SortDesc})
		require.NoError(t, err)
		assert.Equal(t, "Toys", desc[0].Category.Name)
	})

	t.Run("search is case-insensitive and escapes wildcards", func(t *testing.T) {
		products, total, err := repo.List(ctx, catalog.ProductQuery{Search: "TEDDY", Pagination: page})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Equal(t, "Teddy Bear", products[0].Name)

		products, total, err = repo.List(ctx, catalog.ProductQuery{Search: "100%", Pagination: page})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Equal(t, "100% Cotton Bookmark", products[0].Name)

		_, total, err = repo.List(ctx, catalog.ProductQuery{Search: "%", Pagination: page})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
	})

	t.Run("filters by category id or name", func(t *testing.T) {
		_, total, err := repo.List(ctx, catalog.ProductQuery{CategoryID: &books.ID, Pagination: page})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)

		products, total, err := repo.List(ctx, catalog.ProductQuery{CategoryName: "toys", Pagination: page})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Equal(t, "Teddy Bear", products[0].Name)
	})

	t.Run("paginates", func(t *testing.T) {
		products, total, err := repo.List(ctx, catalog.ProductQuery{Pagination: shared.NewPagination(2, 2)})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		assert.Len(t, products, 1)
	})

	t.Run("a page past the end is empty", func(t *testing.T) {
		products, total, err := repo.List(ctx, catalog.ProductQuery{Pagination: shared.NewPagination(math.MaxInt, 20)})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		assert.Empty(t, products)
	})

	t.Run("finds by ids", func(t *testing.T) {
		all, _, err := repo.List(ctx, catalog.ProductQuery{Pagination: page})
		require.NoError(t, err)
		found, err := repo.FindByIDs(ctx, []uuid.UUID{all[0].ID, uuid.New()})
		require.NoError(t, err)
		assert.Len(t, found, 1)

		none, err := repo.FindByIDs(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("products of a removed category are not listed", func(t *testing.T) {
		garden := seedCategory(t, categories, "Garden")
		seedProduct(t, repo, garden.ID, "Orphan Rake", "12")
		require.NoError(t, db.Exec("DELETE FROM categories WHERE id = ?", garden.ID).Error)

		products, total, err := repo.List(ctx, catalog.ProductQuery{Pagination: page})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
		for _, p := range products {
			assert.NotEqual(t, "Orphan Rake", p.Name)
		}
	})
}
