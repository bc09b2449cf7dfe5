package models

import (
	"github.com/dotmart/backend/internal/domain/content"
	"github.com/google/uuid"
)

// ReviewModel is the persistence model for a testimonial.
type ReviewModel struct {
	BaseModel
	Name           string `gorm:"type:varchar(50);not null"`
	UserImage      string `gorm:"type:text;not null"`
	SocialPlatform string `gorm:"type:varchar(20);not null"`
	Rating         int    `gorm:"not null"`
	Review         string `gorm:"type:varchar(500);not null"`
	IsApproved     bool   `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ReviewModel) TableName() string {
	return "reviews"
}

// ToDomain converts the persistence model to a domain Review.
func (m *ReviewModel) ToDomain() *content.Review {
	return &content.Review{
		BaseEntity: m.BaseModel.ToDomain(),
		Name:       m.Name,
		UserImage:  m.UserImage,
		Platform:   content.SocialPlatform(m.SocialPlatform),
		Rating:     m.Rating,
		Text:       m.Review,
		IsApproved: m.IsApproved,
	}
}

// FromDomain populates the persistence model from a domain Review.
func (m *ReviewModel) FromDomain(r *content.Review) {
	m.FromDomainBaseEntity(r.BaseEntity)
	m.Name = r.Name
	m.UserImage = r.UserImage
	m.SocialPlatform = string(r.Platform)
	m.Rating = r.Rating
	m.Review = r.Text
	m.IsApproved = r.IsApproved
}

// HeroModel is the persistence model for the home page hero section.
type HeroModel struct {
	BaseModel
	CarouselImages JSONList[content.HeroImage] `gorm:"not null"`
	SideImages     JSONList[content.HeroImage] `gorm:"not null"`
	IsActive       bool                        `gorm:"not null"`
}

// TableName returns the table name for GORM
func (HeroModel) TableName() string {
	return "heroes"
}

// ToDomain converts the persistence model to a domain Hero.
func (m *HeroModel) ToDomain() *content.Hero {
	return &content.Hero{
		BaseEntity:     m.BaseModel.ToDomain(),
		CarouselImages: []content.HeroImage(m.CarouselImages),
		SideImages:     []content.HeroImage(m.SideImages),
		IsActive:       m.IsActive,
	}
}

// FromDomain populates the persistence model from a domain Hero.
func (m *HeroModel) FromDomain(h *content.Hero) {
	m.FromDomainBaseEntity(h.BaseEntity)
	m.CarouselImages = JSONList[content.HeroImage](h.CarouselImages)
	m.SideImages = JSONList[content.HeroImage](h.SideImages)
	m.IsActive = h.IsActive
}

// TrendingOfferModel is the persistence model for a promoted product tile.
type TrendingOfferModel struct {
	BaseModel
	Title       string    `gorm:"type:varchar(50);not null"`
	Description string    `gorm:"type:varchar(100)"`
	Image       string    `gorm:"type:text;not null"`
	CTALink     uuid.UUID `gorm:"column:cta_link;type:uuid;not null"`
	IsActive    bool      `gorm:"not null"`
	Priority    int       `gorm:"not null;default:0;index"`
}

// TableName returns the table name for GORM
func (TrendingOfferModel) TableName() string {
	return "trending_offers"
}

// ToDomain converts the persistence model to a domain TrendingOffer.
func (m *TrendingOfferModel) ToDomain() *content.TrendingOffer {
	return &content.TrendingOffer{
		BaseEntity:  m.BaseModel.ToDomain(),
		Title:       m.Title,
		Description: m.Description,
		Image:       m.Image,
		CTALink:     m.CTALink,
		IsActive:    m.IsActive,
		Priority:    m.Priority,
	}
}

// FromDomain populates the persistence model from a domain TrendingOffer.
func (m *TrendingOfferModel) FromDomain(o *content.TrendingOffer) {
	m.FromDomainBaseEntity(o.BaseEntity)
	m.Title = o.Title
	m.Description = o.Description
	m.Image = o.Image
	m.CTALink = o.CTALink
	m.IsActive = o.IsActive
	m.Priority = o.Priority
}

// AllModels lists every model in migration order
func AllModels() []any {
	return []any{
		&CategoryModel{},
		&ProductModel{},
		&UserModel{},
		&CartItemModel{},
		&OrderModel{},
		&ReviewModel{},
		&HeroModel{},
		&TrendingOfferModel{},
	}
}
