package persistence

import (
	"context"

	"github.com/dotmart/backend/internal/domain/content"
	"github.com/dotmart/backend/internal/domain/shared"
	"github.com/dotmart/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormReviewRepository implements content.ReviewRepository using GORM
type GormReviewRepository struct {
	db *gorm.DB
}

// NewGormReviewRepository creates a new GormReviewRepository
func NewGormReviewRepository(db *gorm.DB) *GormReviewRepository {
	return &GormReviewRepository{db: db}
}

// FindByID finds a review by ID
func (r *GormReviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*content.Review, error) {
	var m models.ReviewModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "Review")
	}
	return m.ToDomain(), nil
}

// List returns one page of reviews newest first
func (r *GormReviewRepository) List(ctx context.Context, page shared.Pagination) ([]content.Review, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.ReviewModel{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []models.ReviewModel
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(page.Offset()).
		Limit(page.Limit).
		Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	reviews := make([]content.Review, 0, len(rows))
	for i := range rows {
		reviews = append(reviews, *rows[i].ToDomain())
	}
	return reviews, total, nil
}

// Save creates or updates a review
func (r *GormReviewRepository) Save(ctx context.Context, review *content.Review) error {
	var m models.ReviewModel
	m.FromDomain(review)
	return r.db.WithContext(ctx).Save(&m).Error
}

// Delete hard-deletes a review
func (r *GormReviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.db, &models.ReviewModel{}, id, "Review")
}

// GormHeroRepository implements content.HeroRepository using GORM
type GormHeroRepository struct {
	db *gorm.DB
}

// NewGormHeroRepository creates a new GormHeroRepository
func NewGormHeroRepository(db *gorm.DB) *GormHeroRepository {
	return &GormHeroRepository{db: db}
}

// FindByID finds the hero section by ID
func (r *GormHeroRepository) FindByID(ctx context.Context, id uuid.UUID) (*content.Hero, error) {
	var m models.HeroModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "Hero section")
	}
	return m.ToDomain(), nil
}

// FindAll returns every hero section
func (r *GormHeroRepository) FindAll(ctx context.Context) ([]content.Hero, error) {
	var rows []models.HeroModel
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	heroes := make([]content.Hero, 0, len(rows))
	for i := range rows {
		heroes = append(heroes, *rows[i].ToDomain())
	}
	return heroes, nil
}

// Count counts hero sections
func (r *GormHeroRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.HeroModel{}).Count(&count).Error
	return count, err
}

// Save creates or updates a hero section
func (r *GormHeroRepository) Save(ctx context.Context, hero *content.Hero) error {
	var m models.HeroModel
	m.FromDomain(hero)
	return r.db.WithContext(ctx).Save(&m).Error
}

// Delete hard-deletes a hero section
func (r *GormHeroRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID(ctx, r.db, &models.HeroModel{}, id, "Hero section")
}

// GormTrendingOfferRepository implements content.TrendingOfferRepository using GORM
type GormTrendingOfferRepository struct {
	db *gorm.DB
}

// NewGormTrendingOfferRepository creates a new GormTrendingOfferRepository
func NewGormTrendingOfferRepository(db *gorm.DB) *GormTrendingOfferRepository {
	return &GormTrendingOfferRepository{db: db}
}

// FindByID finds an offer by ID
func (r *GormTrendingOfferRepository) FindByID(ctx context.Context, id uuid.UUID) (*content.TrendingOffer, error) {
	var m models.TrendingOfferModel
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, notFound(err, "Trending offer")
	}
	return m.ToDomain(), nil
}

// FindAll returns every offer by priority, newest first within a priority
func (r *GormTrendingOfferRepository) FindAll(ctx context.Context) ([]content.TrendingOffer, error) {
	var rows []models.TrendingOfferModel
	if err := r.db.WithContext(ctx).
		Order("priority DESC").
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	offers := make([]content.TrendingOffer, 0, len(rows))
	for i := range rows {
		offers = append(offers, *rows[i].ToDomain())
	}
	return offers, nil
}

// Save creates or updates an offer
func (r *GormTrendingOfferRepository) Save(ctx context.Context, offer *content.TrendingOffer) error {
	var m models.TrendingOfferModel
	m.FromDomain(offer)
	return r.db.WithContext(ctx).Save(&m).Error
}

func deleteByID(ctx context.Context, db *gorm.DB, model any, id uuid.UUID, resource string) error {
	result := db.WithContext(ctx).Delete(model, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return notFound(gorm.ErrRecordNotFound, resource)
	}
	return nil
}

var (
	_ content.ReviewRepository        = (*GormReviewRepository)(nil)
	_ content.HeroRepository          = (*GormHeroRepository)(nil)
	_ content.TrendingOfferRepository = (*GormTrendingOfferRepository)(nil)
)
