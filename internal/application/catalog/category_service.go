package catalog

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dotmart/backend/internal/domain/catalog"
	"github.com/dotmart/backend/internal/domain/shared"
	"github.com/dotmart/backend/internal/infrastructure/cache"
	"github.com/dotmart/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CategoryService handles category-related business operations
type CategoryService struct {
	categoryRepo catalog.CategoryRepository
	productRepo  catalog.ProductRepository
	cache        cache.Store
	cacheTTL     time.Duration
	logger       *zap.Logger
}

// NewCategoryService creates a new CategoryService.
// store may be nil, in which case listings always hit the repository.
func NewCategoryService(
	categoryRepo catalog.CategoryRepository,
	productRepo catalog.ProductRepository,
	store cache.Store,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *CategoryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CategoryService{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
		cache:        store,
		cacheTTL:     cacheTTL,
		logger:       logger,
	}
}

// Create creates a new category
func (s *CategoryService) Create(ctx context.Context, req CreateCategoryRequest) (*CategoryResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "category", "create")
	defer span.End()

	if err := s.ensureNameFree(ctx, req.Name, uuid.Nil); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	category, err := catalog.NewCategory(req.Name, req.Photo)
	if err != nil {
		return nil, err
	}
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}

	if err := s.categoryRepo.Save(ctx, category); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	telemetry.SetAttributes(span, telemetry.SpanAttrCategoryID, category.ID.String())
	s.invalidate(ctx)

	resp := ToCategoryResponse(category)
	return &resp, nil
}

// List returns every category ordered by name, served from cache when possible
func (s *CategoryService) List(ctx context.Context) ([]CategoryResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "category", "list")
	defer span.End()

	return cache.Remember(ctx, s.cache, cache.KeyCategoryList, s.cacheTTL, func(ctx context.Context) ([]CategoryResponse, error) {
		categories, err := s.categoryRepo.FindAll(ctx)
		if err != nil {
			return nil, err
		}
		return ToCategoryResponses(categories), nil
	})
}

// GetByID retrieves a category by ID
func (s *CategoryService) GetByID(ctx context.Context, id uuid.UUID) (*CategoryResponse, error) {
	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToCategoryResponse(category)
	return &resp, nil
}

// Update applies a partial update. Renaming onto an existing name is a conflict.
func (s *CategoryService) Update(ctx context.Context, id uuid.UUID, req UpdateCategoryRequest) (*CategoryResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "category", "update",
		telemetry.WithAttribute(telemetry.SpanAttrCategoryID, id.String()))
	defer span.End()

	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && strings.TrimSpace(*req.Name) != category.Name {
		if err := s.ensureNameFree(ctx, *req.Name, category.ID); err != nil {
			return nil, err
		}
	}

	if err := category.Apply(catalog.CategoryPatch{
		Name:     req.Name,
		Photo:    req.Photo,
		IsActive: req.IsActive,
	}); err != nil {
		return nil, err
	}

	if err := s.categoryRepo.Save(ctx, category); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	s.invalidate(ctx)

	resp := ToCategoryResponse(category)
	return &resp, nil
}

// Delete removes a category that no product references
func (s *CategoryService) Delete(ctx context.Context, id uuid.UUID) error {
	ctx, span := telemetry.StartServiceSpan(ctx, "category", "delete",
		telemetry.WithAttribute(telemetry.SpanAttrCategoryID, id.String()))
	defer span.End()

	if _, err := s.categoryRepo.FindByID(ctx, id); err != nil {
		return err
	}

	count, err := s.productRepo.CountByCategory(ctx, id)
	if err != nil {
		telemetry.RecordError(span, err)
		return err
	}
	if count > 0 {
		return shared.BusinessRule("This category cannot be deleted because it is associated with existing products.")
	}

	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		telemetry.RecordError(span, err)
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *CategoryService) ensureNameFree(ctx context.Context, name string, self uuid.UUID) error {
	existing, err := s.categoryRepo.FindByName(ctx, strings.TrimSpace(name))
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil
		}
		return err
	}
	if existing.ID == self {
		return nil
	}
	return shared.NewDomainError(shared.CodeAlreadyExists, "Category already exists")
}

func (s *CategoryService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, cache.KeyCategoryList); err != nil {
		s.logger.Warn("failed to invalidate category cache", zap.Error(err))
	}
}
