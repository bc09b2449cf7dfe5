package content

import (
	"context"

	"github.com/dotmart/backend/internal/domain/content"
	"github.com/dotmart/backend/internal/domain/shared"
	"github.com/dotmart/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ReviewService manages home page testimonials
type ReviewService struct {
	reviewRepo content.ReviewRepository
	logger     *zap.Logger
}

// NewReviewService creates a new ReviewService
func NewReviewService(reviewRepo content.ReviewRepository, logger *zap.Logger) *ReviewService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReviewService{reviewRepo: reviewRepo, logger: logger}
}

// Create validates and stores a review
func (s *ReviewService) Create(ctx context.Context, req CreateReviewRequest) (*ReviewResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "review", "create")
	defer span.End()

	platform := content.SocialPlatform(req.Social.Platform)
	review, err := content.NewReview(content.ReviewFields{
		Name:       &req.Name,
		UserImage:  &req.UserImage,
		Platform:   &platform,
		Rating:     &req.Rating,
		Text:       &req.Text,
		IsApproved: req.IsApproved,
	})
	if err != nil {
		return nil, err
	}
	if err := s.reviewRepo.Save(ctx, review); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	resp := ToReviewResponse(review)
	return &resp, nil
}

// List returns one page of reviews newest first
func (s *ReviewService) List(ctx context.Context, q ListQuery) (*ReviewListResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "review", "list")
	defer span.End()

	page := shared.NewPagination(q.Page, q.Limit)
	reviews, total, err := s.reviewRepo.List(ctx, page)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	data := make([]ReviewResponse, len(reviews))
	for i := range reviews {
		data[i] = ToReviewResponse(&reviews[i])
	}
	return &ReviewListResponse{Meta: metaOf(page, total), Data: data}, nil
}

// GetByID returns one review
func (s *ReviewService) GetByID(ctx context.Context, id uuid.UUID) (*ReviewResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "review", "get")
	defer span.End()

	review, err := s.reviewRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToReviewResponse(review)
	return &resp, nil
}

// Update applies a partial update
func (s *ReviewService) Update(ctx context.Context, id uuid.UUID, req UpdateReviewRequest) (*ReviewResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "review", "update")
	defer span.End()

	review, err := s.reviewRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	fields := content.ReviewFields{
		Name:       req.Name,
		UserImage:  req.UserImage,
		Rating:     req.Rating,
		Text:       req.Text,
		IsApproved: req.IsApproved,
	}
	if req.Social != nil {
		platform := content.SocialPlatform(req.Social.Platform)
		fields.Platform = &platform
	}
	if err := review.Apply(fields); err != nil {
		return nil, err
	}
	if err := s.reviewRepo.Save(ctx, review); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	resp := ToReviewResponse(review)
	return &resp, nil
}

// Approve publishes a review on the home page
func (s *ReviewService) Approve(ctx context.Context, id uuid.UUID) (*ReviewResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "review", "approve")
	defer span.End()

	review, err := s.reviewRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	review.Approve()
	if err := s.reviewRepo.Save(ctx, review); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	resp := ToReviewResponse(review)
	return &resp, nil
}

// Delete removes a review and returns it
func (s *ReviewService) Delete(ctx context.Context, id uuid.UUID) (*ReviewResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "review", "delete")
	defer span.End()

	review, err := s.reviewRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.reviewRepo.Delete(ctx, id); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	resp := ToReviewResponse(review)
	return &resp, nil
}

func metaOf(page shared.Pagination, total int64) ListMeta {
	return ListMeta{
		Page:       page.Page,
		Limit:      page.Limit,
		Skip:       page.Offset(),
		Total:      total,
		TotalPages: page.TotalPages(total),
	}
}
