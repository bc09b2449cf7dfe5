package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/dotmart/backend/internal/domain/catalog"
	"github.com/dotmart/backend/internal/domain/shared"
	"github.com/dotmart/backend/internal/infrastructure/search"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func decimalPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func newTestProduct(t *testing.T, categoryID uuid.UUID, name string) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(catalog.ProductDetails{
		Name:          name,
		Description:   "Lightweight running shoe",
		CategoryID:    categoryID,
		Price:         decimal.RequireFromString("80"),
		OriginalPrice: decimal.RequireFromString("100"),
		Images:        []string{"https://cdn.example.com/p/1.jpg"},
		Meta:          catalog.Meta{Title: name, Description: "shoe"},
	})
	require.NoError(t, err)
	p.PullDomainEvents()
	return p
}

func createProductRequest(categoryID string) CreateProductRequest {
	return CreateProductRequest{
		Name:          "Trail Runner",
		Description:   "Lightweight running shoe",
		Category:      categoryID,
		Price:         decimalPtr("75"),
		OriginalPrice: decimalPtr("100"),
		Images:        []string{"https://cdn.example.com/p/1.jpg"},
		Badge:         "Sale",
		Meta:          ProductMeta{Title: "Trail Runner", Description: "Shoe", Keyword: []string{"running"}},
	}
}

type productFixture struct {
	productRepo  *MockProductRepository
	categoryRepo *MockCategoryRepository
	publisher    *MockEventPublisher
	svc          *ProductService
}

func newProductFixture(searcher ProductSearcher) *productFixture {
	f := &productFixture{
		productRepo:  new(MockProductRepository),
		categoryRepo: new(MockCategoryRepository),
		publisher:    new(MockEventPublisher),
	}
	f.svc = NewProductService(f.productRepo, f.categoryRepo, f.publisher, searcher, nil)
	return f
}

func TestProductService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("derives slug and discount and publishes", func(t *testing.T) {
		f := newProductFixture(nil)
		shoes := newTestCategory(t, "Shoes")

		f.categoryRepo.On("FindByID", mock.Anything, shoes.ID).Return(shoes, nil)
		f.productRepo.On("ExistsBySlug", mock.Anything, "trail-runner").Return(true, nil)
		f.productRepo.On("ExistsBySlug", mock.Anything, "trail-runner-2").Return(false, nil)
		f.productRepo.On("Save", mock.Anything, mock.AnythingOfType("*catalog.Product")).Return(nil)
		f.publisher.On("Publish", mock.Anything, mock.MatchedBy(func(events []shared.DomainEvent) bool {
			return len(events) == 1 && events[0].EventType() == catalog.EventTypeProductSaved
		})).Return(nil)

		resp, err := f.svc.Create(ctx, createProductRequest(shoes.ID.String()))
		require.NoError(t, err)
		assert.Equal(t, "trail-runner-2", resp.Slug)
		assert.Equal(t, int64(25), resp.Discount)
		assert.Equal(t, 75.0, resp.Price)
		assert.Equal(t, "enable", resp.Status)
		require.NotNil(t, resp.Category)
		assert.Equal(t, "Shoes", resp.Category.Name)
		f.productRepo.AssertExpectations(t)
		f.publisher.AssertExpectations(t)
	})

	t.Run("malformed category id", func(t *testing.T) {
		f := newProductFixture(nil)

		_, err := f.svc.Create(ctx, createProductRequest("not-a-uuid"))
		var de *shared.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, shared.CodeInvalidID, de.Code)
		assert.Equal(t, "category", de.Field)
	})

	t.Run("unknown category", func(t *testing.T) {
		f := newProductFixture(nil)
		id := uuid.New()
		f.categoryRepo.On("FindByID", mock.Anything, id).Return(nil, shared.NotFound("Category"))

		_, err := f.svc.Create(ctx, createProductRequest(id.String()))
		assert.EqualError(t, err, "Category not found")
	})

	t.Run("explicit slug already taken", func(t *testing.T) {
		f := newProductFixture(nil)
		shoes := newTestCategory(t, "Shoes")
		f.categoryRepo.On("FindByID", mock.Anything, shoes.ID).Return(shoes, nil)
		f.productRepo.On("ExistsBySlug", mock.Anything, "runner").Return(true, nil)

		req := createProductRequest(shoes.ID.String())
		req.Slug = "Runner"
		_, err := f.svc.Create(ctx, req)
		assert.True(t, shared.IsAlreadyExists(err))
	})
}

func TestProductService_List(t *testing.T) {
	ctx := context.Background()
	categoryID := uuid.New()

	t.Run("category id filter", func(t *testing.T) {
		f := newProductFixture(nil)
		p := newTestProduct(t, categoryID, "Runner")

		f.productRepo.On("List", mock.Anything, mock.MatchedBy(func(q catalog.ProductQuery) bool {
			return q.CategoryID != nil && *q.CategoryID == categoryID && q.CategoryName == "" &&
				q.SortOrder == shared.SortDesc && q.Pagination == shared.Pagination{Page: 2, Limit: 5}
		})).Return([]catalog.Product{*p}, int64(6), nil)

		resp, err := f.svc.List(ctx, ProductListQuery{Category: categoryID.String(), Page: 2, Limit: 5, SortOrder: "desc"})
		require.NoError(t, err)
		assert.Equal(t, ListMeta{Page: 2, Limit: 5, Total: 6, TotalPages: 2, SortOrder: "desc"}, resp.Meta)
		assert.Len(t, resp.Data, 1)
	})

	t.Run("category name filter and defaults", func(t *testing.T) {
		f := newProductFixture(nil)

		f.productRepo.On("List", mock.Anything, mock.MatchedBy(func(q catalog.ProductQuery) bool {
			return q.CategoryID == nil && q.CategoryName == "shoes" && q.SortOrder == shared.SortAsc &&
				q.Pagination.Page == 1 && q.Pagination.Limit == 20
		})).Return([]catalog.Product{}, int64(0), nil)

		resp, err := f.svc.List(ctx, ProductListQuery{Category: "shoes", SortOrder: "sideways"})
		require.NoError(t, err)
		assert.Equal(t, "asc", resp.Meta.SortOrder)
		assert.Equal(t, 0, resp.Meta.TotalPages)
		assert.NotNil(t, resp.Data)
	})
}

func TestProductService_Search(t *testing.T) {
	ctx := context.Background()
	categoryID := uuid.New()

	t.Run("uses index order and drops disabled hits", func(t *testing.T) {
		searcher := new(MockSearcher)
		f := newProductFixture(searcher)

		first := newTestProduct(t, categoryID, "Alpha")
		second := newTestProduct(t, categoryID, "Beta")
		gone := newTestProduct(t, categoryID, "Gamma")
		gone.Status = catalog.ProductStatusDisable
		ids := []uuid.UUID{second.ID, gone.ID, first.ID}

		searcher.On("Search", mock.Anything, "runner", shared.NewPagination(0, 0)).
			Return(&search.Result{IDs: ids, Total: 3}, nil)
		f.productRepo.On("FindByIDs", mock.Anything, ids).
			Return([]catalog.Product{*first, *gone, *second}, nil)

		resp, err := f.svc.Search(ctx, ProductSearchQuery{Q: "runner"})
		require.NoError(t, err)
		require.Len(t, resp.Data, 2)
		assert.Equal(t, "Beta", resp.Data[0].Name)
		assert.Equal(t, "Alpha", resp.Data[1].Name)
		assert.Equal(t, int64(3), resp.Meta.Total)
	})

	t.Run("falls back to database when index fails", func(t *testing.T) {
		searcher := new(MockSearcher)
		f := newProductFixture(searcher)

		searcher.On("Search", mock.Anything, "runner", mock.Anything).Return(nil, errors.New("cluster down"))
		f.productRepo.On("List", mock.Anything, mock.MatchedBy(func(q catalog.ProductQuery) bool {
			return q.Search == "runner"
		})).Return([]catalog.Product{*newTestProduct(t, categoryID, "Runner")}, int64(1), nil)

		resp, err := f.svc.Search(ctx, ProductSearchQuery{Q: "runner"})
		require.NoError(t, err)
		assert.Len(t, resp.Data, 1)
		f.productRepo.AssertExpectations(t)
	})

	t.Run("without index uses database", func(t *testing.T) {
		f := newProductFixture(nil)
		f.productRepo.On("List", mock.Anything, mock.Anything).Return([]catalog.Product{}, int64(0), nil)

		_, err := f.svc.Search(ctx, ProductSearchQuery{Q: "x"})
		require.NoError(t, err)
		f.productRepo.AssertNumberOfCalls(t, "List", 1)
	})
}

func TestProductService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("price change recomputes discount", func(t *testing.T) {
		f := newProductFixture(nil)
		p := newTestProduct(t, uuid.New(), "Runner")
		f.productRepo.On("FindByID", mock.Anything, p.ID).Return(p, nil)
		f.productRepo.On("Save", mock.Anything, p).Return(nil)
		f.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

		resp, err := f.svc.Update(ctx, p.ID, UpdateProductRequest{Price: decimalPtr("50")})
		require.NoError(t, err)
		assert.Equal(t, int64(50), resp.Discount)
		assert.Equal(t, "Runner", resp.Name)
	})

	t.Run("raising price above original clears discount", func(t *testing.T) {
		f := newProductFixture(nil)
		p := newTestProduct(t, uuid.New(), "Runner")
		f.productRepo.On("FindByID", mock.Anything, p.ID).Return(p, nil)
		f.productRepo.On("Save", mock.Anything, p).Return(nil)
		f.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

		resp, err := f.svc.Update(ctx, p.ID, UpdateProductRequest{Price: decimalPtr("120")})
		require.NoError(t, err)
		assert.Equal(t, int64(0), resp.Discount)
	})

	t.Run("publish failure does not fail the update", func(t *testing.T) {
		f := newProductFixture(nil)
		p := newTestProduct(t, uuid.New(), "Runner")
		f.productRepo.On("FindByID", mock.Anything, p.ID).Return(p, nil)
		f.productRepo.On("Save", mock.Anything, p).Return(nil)
		f.publisher.On("Publish", mock.Anything, mock.Anything).Return(errors.New("bus closed"))

		name := "Runner Pro"
		resp, err := f.svc.Update(ctx, p.ID, UpdateProductRequest{Name: &name})
		require.NoError(t, err)
		assert.Equal(t, "Runner Pro", resp.Name)
	})

	t.Run("missing product", func(t *testing.T) {
		f := newProductFixture(nil)
		id := uuid.New()
		f.productRepo.On("FindByID", mock.Anything, id).Return(nil, shared.NotFound("Product"))

		_, err := f.svc.Update(ctx, id, UpdateProductRequest{})
		assert.True(t, shared.IsNotFound(err))
	})
}

func TestProductService_Delete(t *testing.T) {
	ctx := context.Background()
	f := newProductFixture(nil)
	p := newTestProduct(t, uuid.New(), "Runner")

	f.productRepo.On("FindByID", mock.Anything, p.ID).Return(p, nil)
	f.productRepo.On("Save", mock.Anything, p).Return(nil)
	f.publisher.On("Publish", mock.Anything, mock.MatchedBy(func(events []shared.DomainEvent) bool {
		return len(events) == 1 && events[0].EventType() == catalog.EventTypeProductDisabled
	})).Return(nil)

	resp, err := f.svc.Delete(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "disable", resp.Status)
	f.publisher.AssertExpectations(t)
}
