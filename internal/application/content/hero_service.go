package content

import (
	"context"
	"time"

	"github.com/dotmart/backend/internal/domain/content"
	"github.com/dotmart/backend/internal/domain/shared"
	"github.com/dotmart/backend/internal/infrastructure/cache"
	"github.com/dotmart/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var errHeroExists = shared.BusinessRule("Hero already exists")

// HeroService manages the single home page hero section
type HeroService struct {
	heroRepo content.HeroRepository
	cache    cache.Store
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewHeroService creates a new HeroService. store may be nil.
func NewHeroService(heroRepo content.HeroRepository, store cache.Store, cacheTTL time.Duration, logger *zap.Logger) *HeroService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HeroService{heroRepo: heroRepo, cache: store, cacheTTL: cacheTTL, logger: logger}
}

// Create stores the hero section. Only one may exist.
func (s *HeroService) Create(ctx context.Context, req CreateHeroRequest) (*HeroResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "hero", "create")
	defer span.End()

	count, err := s.heroRepo.Count(ctx)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if count > 0 {
		return nil, errHeroExists
	}

	hero, err := content.NewHero(toHeroImages(req.CarouselImages), toHeroImages(req.SideImages), req.IsActive)
	if err != nil {
		return nil, err
	}
	if err := s.heroRepo.Save(ctx, hero); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	s.invalidate(ctx)

	resp := ToHeroResponse(hero)
	return &resp, nil
}

// List returns the hero sections, served from cache when possible
func (s *HeroService) List(ctx context.Context) ([]HeroResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "hero", "list")
	defer span.End()

	return cache.Remember(ctx, s.cache, cache.KeyHeroList, s.cacheTTL, func(ctx context.Context) ([]HeroResponse, error) {
		heroes, err := s.heroRepo.FindAll(ctx)
		if err != nil {
			return nil, err
		}
		out := make([]HeroResponse, len(heroes))
		for i := range heroes {
			out[i] = ToHeroResponse(&heroes[i])
		}
		return out, nil
	})
}

// Update replaces the supplied image lists
func (s *HeroService) Update(ctx context.Context, id uuid.UUID, req UpdateHeroRequest) (*HeroResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "hero", "update")
	defer span.End()

	hero, err := s.heroRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := hero.Apply(toHeroImages(req.CarouselImages), toHeroImages(req.SideImages), req.IsActive); err != nil {
		return nil, err
	}
	if err := s.heroRepo.Save(ctx, hero); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	s.invalidate(ctx)

	resp := ToHeroResponse(hero)
	return &resp, nil
}

// Delete removes the hero section and returns it
func (s *HeroService) Delete(ctx context.Context, id uuid.UUID) (*HeroResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "hero", "delete")
	defer span.End()

	hero, err := s.heroRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.heroRepo.Delete(ctx, id); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	s.invalidate(ctx)

	resp := ToHeroResponse(hero)
	return &resp, nil
}

func (s *HeroService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, cache.KeyHeroList); err != nil {
		s.logger.Warn("failed to invalidate hero cache", zap.Error(err))
	}
}
