package content

import (
	"time"

	"github.com/dotmart/backend/internal/domain/content"
	"github.com/google/uuid"
)

// SocialRequest names where a reviewer can be found
type SocialRequest struct {
	Platform string `json:"platform" binding:"required,oneof=twitter facebook linkedin instagram Youtube"`
}

// CreateReviewRequest represents a request to create a review
type CreateReviewRequest struct {
	Name       string        `json:"name" binding:"required,min=2,max=50"`
	UserImage  string        `json:"userImage" binding:"required,imageurl"`
	Social     SocialRequest `json:"social" binding:"required"`
	Rating     int           `json:"rating" binding:"required,min=1,max=5"`
	Text       string        `json:"text" binding:"required,min=10,max=500"`
	IsApproved *bool         `json:"isApproved"`
}

// UpdateReviewRequest represents a partial review update
type UpdateReviewRequest struct {
	Name       *string        `json:"name" binding:"omitempty,min=2,max=50"`
	UserImage  *string        `json:"userImage" binding:"omitempty,imageurl"`
	Social     *SocialRequest `json:"social"`
	Rating     *int           `json:"rating" binding:"omitempty,min=1,max=5"`
	Text       *string        `json:"text" binding:"omitempty,min=10,max=500"`
	IsApproved *bool          `json:"isApproved"`
}

// ListQuery holds page and limit query parameters
type ListQuery struct {
	Page  int `form:"page"`
	Limit int `form:"limit"`
}

// ListMeta is the pagination block of paged listings
type ListMeta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Skip       int   `json:"skip"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// SocialResponse is the social block of a review
type SocialResponse struct {
	Platform string `json:"platform"`
}

// ReviewResponse represents a review in API responses
type ReviewResponse struct {
	ID         uuid.UUID      `json:"id"`
	Name       string         `json:"name"`
	UserImage  string         `json:"userImage"`
	Social     SocialResponse `json:"social"`
	Rating     int            `json:"rating"`
	Text       string         `json:"text"`
	IsApproved bool           `json:"isApproved"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
}

// ReviewListResponse is one page of reviews
type ReviewListResponse struct {
	Meta ListMeta         `json:"meta"`
	Data []ReviewResponse `json:"data"`
}

// HeroImageRequest is one image of the hero section
type HeroImageRequest struct {
	Image string `json:"image" binding:"required,imageurl"`
	Alt   string `json:"alt" binding:"required"`
	Link  string `json:"link"`
}

// CreateHeroRequest represents a request to create the hero section
type CreateHeroRequest struct {
	CarouselImages []HeroImageRequest `json:"carouselImages" binding:"required,min=1,dive"`
	SideImages     []HeroImageRequest `json:"sideImages" binding:"required,min=1,dive"`
	IsActive       *bool              `json:"isActive"`
}

// UpdateHeroRequest replaces the image lists that are present
type UpdateHeroRequest struct {
	CarouselImages []HeroImageRequest `json:"carouselImages" binding:"omitempty,min=1,dive"`
	SideImages     []HeroImageRequest `json:"sideImages" binding:"omitempty,min=1,dive"`
	IsActive       *bool              `json:"isActive"`
}

// HeroResponse represents the hero section in API responses
type HeroResponse struct {
	ID             uuid.UUID           `json:"id"`
	CarouselImages []content.HeroImage `json:"carouselImages"`
	SideImages     []content.HeroImage `json:"sideImages"`
	IsActive       bool                `json:"isActive"`
	CreatedAt      time.Time           `json:"createdAt"`
	UpdatedAt      time.Time           `json:"updatedAt"`
}

// CreateTrendingOfferRequest represents a request to create a trending offer
type CreateTrendingOfferRequest struct {
	Title       string `json:"title" binding:"required,min=5,max=50"`
	Description string `json:"description" binding:"max=100"`
	Image       string `json:"image" binding:"required,imageurl"`
	CTALink     string `json:"ctaLink" binding:"required"`
	IsActive    *bool  `json:"isActive"`
	Priority    *int   `json:"priority" binding:"omitempty,min=0"`
}

// UpdateTrendingOfferRequest represents a partial trending offer update
type UpdateTrendingOfferRequest struct {
	Title       *string `json:"title" binding:"omitempty,min=5,max=50"`
	Description *string `json:"description" binding:"omitempty,max=100"`
	Image       *string `json:"image" binding:"omitempty,imageurl"`
	CTALink     *string `json:"ctaLink"`
	IsActive    *bool   `json:"isActive"`
	Priority    *int    `json:"priority" binding:"omitempty,min=0"`
}

// TrendingOfferResponse represents a trending offer in API responses
type TrendingOfferResponse struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Image       string    `json:"image"`
	CTALink     uuid.UUID `json:"ctaLink"`
	IsActive    bool      `json:"isActive"`
	Priority    int       `json:"priority"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ToReviewResponse converts a domain review to a response DTO
func ToReviewResponse(r *content.Review) ReviewResponse {
	return ReviewResponse{
		ID:         r.ID,
		Name:       r.Name,
		UserImage:  r.UserImage,
		Social:     SocialResponse{Platform: string(r.Platform)},
		Rating:     r.Rating,
		Text:       r.Text,
		IsApproved: r.IsApproved,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

// ToHeroResponse converts a domain hero to a response DTO
func ToHeroResponse(h *content.Hero) HeroResponse {
	return HeroResponse{
		ID:             h.ID,
		CarouselImages: h.CarouselImages,
		SideImages:     h.SideImages,
		IsActive:       h.IsActive,
		CreatedAt:      h.CreatedAt,
		UpdatedAt:      h.UpdatedAt,
	}
}

// ToTrendingOfferResponse converts a domain offer to a response DTO
func ToTrendingOfferResponse(o *content.TrendingOffer) TrendingOfferResponse {
	return TrendingOfferResponse{
		ID:          o.ID,
		Title:       o.Title,
		Description: o.Description,
		Image:       o.Image,
		CTALink:     o.CTALink,
		IsActive:    o.IsActive,
		Priority:    o.Priority,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
}

func toHeroImages(in []HeroImageRequest) []content.HeroImage {
	if in == nil {
		return nil
	}
	out := make([]content.HeroImage, len(in))
	for i, img := range in {
		out[i] = content.HeroImage{Image: img.Image, Alt: img.Alt, Link: img.Link}
	}
	return out
}
