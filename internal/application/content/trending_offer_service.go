package content

import (
	"context"

	"github.com/dotmart/backend/internal/domain/catalog"
	"github.com/dotmart/backend/internal/domain/content"
	"github.com/dotmart/backend/internal/domain/shared"
	"github.com/dotmart/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TrendingOfferService manages promoted product tiles
type TrendingOfferService struct {
	offerRepo   content.TrendingOfferRepository
	productRepo catalog.ProductRepository
	logger      *zap.Logger
}

// NewTrendingOfferService creates a new TrendingOfferService
func NewTrendingOfferService(
	offerRepo content.TrendingOfferRepository,
	productRepo catalog.ProductRepository,
	logger *zap.Logger,
) *TrendingOfferService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TrendingOfferService{offerRepo: offerRepo, productRepo: productRepo, logger: logger}
}

// Create stores an offer pointing at an existing product
func (s *TrendingOfferService) Create(ctx context.Context, req CreateTrendingOfferRequest) (*TrendingOfferResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "trending_offer", "create")
	defer span.End()

	productID, err := s.resolveProduct(ctx, req.CTALink)
	if err != nil {
		return nil, err
	}

	offer, err := content.NewTrendingOffer(content.TrendingOfferFields{
		Title:       &req.Title,
		Description: &req.Description,
		Image:       &req.Image,
		CTALink:     &productID,
		IsActive:    req.IsActive,
		Priority:    req.Priority,
	})
	if err != nil {
		return nil, err
	}
	if err := s.offerRepo.Save(ctx, offer); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	resp := ToTrendingOfferResponse(offer)
	return &resp, nil
}

// List returns every offer by priority, highest first
func (s *TrendingOfferService) List(ctx context.Context) ([]TrendingOfferResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "trending_offer", "list")
	defer span.End()

	offers, err := s.offerRepo.FindAll(ctx)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	out := make([]TrendingOfferResponse, len(offers))
	for i := range offers {
		out[i] = ToTrendingOfferResponse(&offers[i])
	}
	return out, nil
}

// GetByID returns one offer
func (s *TrendingOfferService) GetByID(ctx context.Context, id uuid.UUID) (*TrendingOfferResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "trending_offer", "get")
	defer span.End()

	offer, err := s.offerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToTrendingOfferResponse(offer)
	return &resp, nil
}

// Update applies a partial update. A new ctaLink must name an existing product.
func (s *TrendingOfferService) Update(ctx context.Context, id uuid.UUID, req UpdateTrendingOfferRequest) (*TrendingOfferResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "trending_offer", "update")
	defer span.End()

	offer, err := s.offerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	fields := content.TrendingOfferFields{
		Title:       req.Title,
		Description: req.Description,
		Image:       req.Image,
		IsActive:    req.IsActive,
		Priority:    req.Priority,
	}
	if req.CTALink != nil {
		productID, err := s.resolveProduct(ctx, *req.CTALink)
		if err != nil {
			return nil, err
		}
		fields.CTALink = &productID
	}
	if err := offer.Apply(fields); err != nil {
		return nil, err
	}
	if err := s.offerRepo.Save(ctx, offer); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	resp := ToTrendingOfferResponse(offer)
	return &resp, nil
}

// Delete deactivates the offer. The row is kept.
func (s *TrendingOfferService) Delete(ctx context.Context, id uuid.UUID) (*TrendingOfferResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "trending_offer", "delete")
	defer span.End()

	offer, err := s.offerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	offer.Deactivate()
	if err := s.offerRepo.Save(ctx, offer); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	resp := ToTrendingOfferResponse(offer)
	return &resp, nil
}

func (s *TrendingOfferService) resolveProduct(ctx context.Context, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, shared.InvalidID("ctaLink", raw)
	}
	if _, err := s.productRepo.FindByID(ctx, id); err != nil {
		return uuid.Nil, err
	}
	return id, nil
}
