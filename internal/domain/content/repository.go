package content

import (
	"context"

	"github.com/dotmart/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ReviewRepository defines the interface for review persistence
type ReviewRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Review, error)
	// List returns one page newest first and the total count
	List(ctx context.Context, page shared.Pagination) ([]Review, int64, error)
	Save(ctx context.Context, review *Review) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// HeroRepository defines the interface for hero section persistence
type HeroRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Hero, error)
	FindAll(ctx context.Context) ([]Hero, error)
	Count(ctx context.Context) (int64, error)
	Save(ctx context.Context, hero *Hero) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// TrendingOfferRepository defines the interface for trending offer persistence
type TrendingOfferRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*TrendingOffer, error)
	// FindAll returns offers by priority descending, newest first within a priority
	FindAll(ctx context.Context) ([]TrendingOffer, error)
	Save(ctx context.Context, offer *TrendingOffer) error
}
