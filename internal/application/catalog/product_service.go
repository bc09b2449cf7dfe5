package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/dotmart/backend/internal/domain/catalog"
	"github.com/dotmart/backend/internal/domain/shared"
	"github.com/dotmart/backend/internal/infrastructure/search"
	"github.com/dotmart/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// maxSlugAttempts bounds the numeric suffixes tried for a derived slug
const maxSlugAttempts = 50

// ProductSearcher is the full-text index consulted by Search
type ProductSearcher interface {
	Search(ctx context.Context, query string, page shared.Pagination) (*search.Result, error)
}

// ProductService handles product-related business operations
type ProductService struct {
	productRepo    catalog.ProductRepository
	categoryRepo   catalog.CategoryRepository
	eventPublisher shared.EventPublisher
	searcher       ProductSearcher
	logger         *zap.Logger
}

// NewProductService creates a new ProductService.
// searcher may be nil; Search then falls back to the database name filter.
func NewProductService(
	productRepo catalog.ProductRepository,
	categoryRepo catalog.CategoryRepository,
	eventPublisher shared.EventPublisher,
	searcher ProductSearcher,
	logger *zap.Logger,
) *ProductService {
	if eventPublisher == nil {
		eventPublisher = shared.NopPublisher{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProductService{
		productRepo:    productRepo,
		categoryRepo:   categoryRepo,
		eventPublisher: eventPublisher,
		searcher:       searcher,
		logger:         logger,
	}
}

// Create creates a new product under an existing category
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "product", "create")
	defer span.End()

	category, err := s.resolveCategory(ctx, req.Category)
	if err != nil {
		return nil, err
	}

	slug, err := s.allocateSlug(ctx, req.Slug, req.Name)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	details := catalog.ProductDetails{
		Name:          req.Name,
		Slug:          slug,
		Description:   req.Description,
		CategoryID:    category.ID,
		Images:        req.Images,
		Badge:         catalog.Badge(req.Badge),
		FreeShipping:  req.FreeShipping,
		FreeGift:      req.FreeGift,
		IsNewArrivals: req.IsNewArrivals,
		IsBestDeal:    req.IsBestDeal,
		Stock:         req.Stock,
		Status:        catalog.ProductStatus(req.Status),
		Meta:          req.Meta.toDomain(),
	}
	if req.Price != nil {
		details.Price = *req.Price
	}
	if req.OriginalPrice != nil {
		details.OriginalPrice = *req.OriginalPrice
	}

	product, err := catalog.NewProduct(details)
	if err != nil {
		return nil, err
	}
	product.Category = category.Ref()

	if err := s.productRepo.Save(ctx, product); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	telemetry.SetAttributes(span, telemetry.SpanAttrProductID, product.ID.String())
	s.publish(ctx, product)

	resp := ToProductResponse(product)
	return &resp, nil
}

// List returns one page of enabled products sorted by category name
func (s *ProductService) List(ctx context.Context, query ProductListQuery) (*ProductListResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "product", "list")
	defer span.End()

	q := catalog.ProductQuery{
		Search:     query.Search,
		SortOrder:  shared.ParseSortOrder(query.SortOrder),
		Pagination: shared.NewPagination(query.Page, query.Limit),
	}
	if query.Category != "" {
		if id, err := uuid.Parse(query.Category); err == nil {
			q.CategoryID = &id
		} else {
			q.CategoryName = query.Category
		}
	}

	products, total, err := s.productRepo.List(ctx, q)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	return &ProductListResponse{
		Meta: ListMeta{
			Page:       q.Pagination.Page,
			Limit:      q.Pagination.Limit,
			Total:      total,
			TotalPages: q.Pagination.TotalPages(total),
			SortOrder:  string(q.SortOrder),
		},
		Data: ToProductResponses(products),
	}, nil
}

// Search runs a full-text query against the search index, falling back to a
// name filter when no index is configured or the index fails.
func (s *ProductService) Search(ctx context.Context, query ProductSearchQuery) (*ProductListResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "product", "search")
	defer span.End()

	page := shared.NewPagination(query.Page, query.Limit)

	if s.searcher != nil && query.Q != "" {
		resp, err := s.searchIndex(ctx, query.Q, page)
		if err == nil {
			return resp, nil
		}
		s.logger.Warn("product search index failed, falling back to database",
			zap.String("query", query.Q), zap.Error(err))
	}

	return s.List(ctx, ProductListQuery{Search: query.Q, Page: page.Page, Limit: page.Limit})
}

func (s *ProductService) searchIndex(ctx context.Context, q string, page shared.Pagination) (*ProductListResponse, error) {
	result, err := s.searcher.Search(ctx, q, page)
	if err != nil {
		return nil, err
	}

	products, err := s.productRepo.FindByIDs(ctx, result.IDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*catalog.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	// Keep the index's relevance order and drop anything disabled since indexing.
	data := make([]ProductResponse, 0, len(result.IDs))
	for _, id := range result.IDs {
		if p, ok := byID[id]; ok && p.IsEnabled() {
			data = append(data, ToProductResponse(p))
		}
	}

	return &ProductListResponse{
		Meta: ListMeta{
			Page:       page.Page,
			Limit:      page.Limit,
			Total:      result.Total,
			TotalPages: page.TotalPages(result.Total),
		},
		Data: data,
	}, nil
}

// GetByID retrieves a product of any status with its category
func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToProductResponse(product)
	return &resp, nil
}

// GetBySlug retrieves an enabled product by slug
func (s *ProductService) GetBySlug(ctx context.Context, slug string) (*ProductResponse, error) {
	product, err := s.productRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	resp := ToProductResponse(product)
	return &resp, nil
}

// Update applies a partial update; the discount is rederived by the domain
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "product", "update",
		telemetry.WithAttribute(telemetry.SpanAttrProductID, id.String()))
	defer span.End()

	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	patch := catalog.ProductPatch{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		OriginalPrice: req.OriginalPrice,
		Images:        req.Images,
		FreeShipping:  req.FreeShipping,
		FreeGift:      req.FreeGift,
		IsNewArrivals: req.IsNewArrivals,
		IsBestDeal:    req.IsBestDeal,
		Stock:         req.Stock,
	}

	var category *catalog.Category
	if req.Category != nil {
		category, err = s.resolveCategory(ctx, *req.Category)
		if err != nil {
			return nil, err
		}
		patch.CategoryID = &category.ID
	}
	if req.Slug != nil && *req.Slug != product.Slug {
		slug := catalog.Slugify(*req.Slug)
		if err := s.ensureSlugFree(ctx, slug); err != nil {
			return nil, err
		}
		patch.Slug = &slug
	}
	if req.Badge != nil {
		badge := catalog.Badge(*req.Badge)
		patch.Badge = &badge
	}
	if req.Status != nil {
		status := catalog.ProductStatus(*req.Status)
		patch.Status = &status
	}
	if req.Meta != nil {
		meta := req.Meta.toDomain()
		patch.Meta = &meta
	}

	if err := product.ApplyPatch(patch); err != nil {
		return nil, err
	}
	if category != nil {
		product.Category = category.Ref()
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	s.publish(ctx, product)

	resp := ToProductResponse(product)
	return &resp, nil
}

// Delete disables a product. Products are never hard-deleted.
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "product", "delete",
		telemetry.WithAttribute(telemetry.SpanAttrProductID, id.String()))
	defer span.End()

	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	product.Disable()
	if err := s.productRepo.Save(ctx, product); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	s.publish(ctx, product)

	resp := ToProductResponse(product)
	return &resp, nil
}

func (s *ProductService) resolveCategory(ctx context.Context, raw string) (*catalog.Category, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, shared.InvalidID("category", raw)
	}
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NotFound("Category")
		}
		return nil, err
	}
	return category, nil
}

// allocateSlug honours an explicit slug as-is and suffixes a derived one until it is free
func (s *ProductService) allocateSlug(ctx context.Context, explicit, name string) (string, error) {
	if explicit != "" {
		slug := catalog.Slugify(explicit)
		if err := s.ensureSlugFree(ctx, slug); err != nil {
			return "", err
		}
		return slug, nil
	}

	base := catalog.Slugify(name)
	if base == "" {
		return "", shared.Validation("Product name is required")
	}
	candidate := base
	for n := 2; n <= maxSlugAttempts+1; n++ {
		exists, err := s.productRepo.ExistsBySlug(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, n)
	}
	return "", shared.Duplicate("slug", base)
}

func (s *ProductService) ensureSlugFree(ctx context.Context, slug string) error {
	exists, err := s.productRepo.ExistsBySlug(ctx, slug)
	if err != nil {
		return err
	}
	if exists {
		return shared.Duplicate("slug", slug)
	}
	return nil
}

func (s *ProductService) publish(ctx context.Context, product *catalog.Product) {
	events := product.PullDomainEvents()
	if len(events) == 0 {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		s.logger.Warn("failed to publish product events",
			zap.String("product_id", product.ID.String()), zap.Error(err))
	}
}
