package handler

import (
	contentapp "github.com/dotmart/backend/internal/application/content"
	"github.com/gin-gonic/gin"
)

// ReviewHandler handles testimonial endpoints
type ReviewHandler struct {
	BaseHandler
	reviewService *contentapp.ReviewService
}

// NewReviewHandler creates a new ReviewHandler
func NewReviewHandler(reviewService *contentapp.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// Create godoc
// @Summary      Submit a review
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Param        request body contentapp.CreateReviewRequest true "Review"
// @Success      201 {object} dto.Response{data=contentapp.ReviewResponse}
// @Failure      400 {object} dto.Response
// @Security     BearerAuth
// @Router       /reviews [post]
func (h *ReviewHandler) Create(c *gin.Context) {
	var req contentapp.CreateReviewRequest
	if !h.BindJSON(c, &req) {
		return
	}
	review, err := h.reviewService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, "Review submitted successfully", review)
}

// List godoc
// @Summary      List reviews, newest first
// @Tags         reviews
// @Produce      json
// @Param        page  query int false "Page (default 1)"
// @Param        limit query int false "Page size (default 10)"
// @Success      200 {object} dto.Response{data=contentapp.ReviewListResponse}
// @Router       /reviews [get]
func (h *ReviewHandler) List(c *gin.Context) {
	var query contentapp.ListQuery
	if !h.BindQuery(c, &query) {
		return
	}
	reviews, err := h.reviewService.List(c.Request.Context(), query)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Reviews fetched successfully", reviews)
}

// GetByID godoc
// @Summary      Get a review
// @Tags         reviews
// @Produce      json
// @Param        reviewId path string true "Review ID"
// @Success      200 {object} dto.Response{data=contentapp.ReviewResponse}
// @Failure      404 {object} dto.Response
// @Router       /reviews/{reviewId} [get]
func (h *ReviewHandler) GetByID(c *gin.Context) {
	id, ok := h.PathID(c, "reviewId", "")
	if !ok {
		return
	}
	review, err := h.reviewService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Review fetched successfully", review)
}

// Update godoc
// @Summary      Update a review
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Param        reviewId path string true "Review ID"
// @Param        request body contentapp.UpdateReviewRequest true "Fields to change"
// @Success      200 {object} dto.Response{data=contentapp.ReviewResponse}
// @Failure      404 {object} dto.Response
// @Security     BearerAuth
// @Router       /reviews/{reviewId} [put]
func (h *ReviewHandler) Update(c *gin.Context) {
	id, ok := h.PathID(c, "reviewId", "")
	if !ok {
		return
	}
	var req contentapp.UpdateReviewRequest
	if !h.BindJSON(c, &req) {
		return
	}
	review, err := h.reviewService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Review updated successfully", review)
}

// Approve godoc
// @Summary      Approve a review
// @Tags         reviews
// @Produce      json
// @Param        reviewId path string true "Review ID"
// @Success      200 {object} dto.Response{data=contentapp.ReviewResponse}
// @Failure      404 {object} dto.Response
// @Security     BearerAuth
// @Router       /reviews/{reviewId}/approve [put]
func (h *ReviewHandler) Approve(c *gin.Context) {
	id, ok := h.PathID(c, "reviewId", "")
	if !ok {
		return
	}
	review, err := h.reviewService.Approve(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Review approved successfully", review)
}

// Delete godoc
// @Summary      Delete a review
// @Tags         reviews
// @Produce      json
// @Param        reviewId path string true "Review ID"
// @Success      200 {object} dto.Response{data=contentapp.ReviewResponse}
// @Failure      404 {object} dto.Response
// @Security     BearerAuth
// @Router       /reviews/{reviewId} [delete]
func (h *ReviewHandler) Delete(c *gin.Context) {
	id, ok := h.PathID(c, "reviewId", "")
	if !ok {
		return
	}
	review, err := h.reviewService.Delete(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Review deleted successfully", review)
}

// HeroHandler handles hero banner endpoints
type HeroHandler struct {
	BaseHandler
	heroService *contentapp.HeroService
}

// NewHeroHandler creates a new HeroHandler
func NewHeroHandler(heroService *contentapp.HeroService) *HeroHandler {
	return &HeroHandler{heroService: heroService}
}

// Create godoc
// @Summary      Create a hero section
// @Tags         hero
// @Accept       json
// @Produce      json
// @Param        request body contentapp.CreateHeroRequest true "Hero section"
// @Success      201 {object} dto.Response{data=contentapp.HeroResponse}
// @Failure      400 {object} dto.Response
// @Security     BearerAuth
// @Router       /hero [post]
func (h *HeroHandler) Create(c *gin.Context) {
	var req contentapp.CreateHeroRequest
	if !h.BindJSON(c, &req) {
		return
	}
	hero, err := h.heroService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, "Hero section created successfully", hero)
}

// List godoc
// @Summary      List hero sections
// @Tags         hero
// @Produce      json
// @Success      200 {object} dto.Response{data=[]contentapp.HeroResponse}
// @Router       /hero [get]
func (h *HeroHandler) List(c *gin.Context) {
	heroes, err := h.heroService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Hero section fetched successfully", heroes)
}

// Update godoc
// @Summary      Update a hero section
// @Tags         hero
// @Accept       json
// @Produce      json
// @Param        heroId path string true "Hero ID"
// @Param        request body contentapp.UpdateHeroRequest true "Fields to change"
// @Success      200 {object} dto.Response{data=contentapp.HeroResponse}
// @Failure      404 {object} dto.Response
// @Security     BearerAuth
// @Router       /hero/{heroId} [put]
func (h *HeroHandler) Update(c *gin.Context) {
	id, ok := h.PathID(c, "heroId", "")
	if !ok {
		return
	}
	var req contentapp.UpdateHeroRequest
	if !h.BindJSON(c, &req) {
		return
	}
	hero, err := h.heroService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Hero section updated successfully", hero)
}

// Delete godoc
// @Summary      Delete a hero section
// @Tags         hero
// @Produce      json
// @Param        heroId path string true "Hero ID"
// @Success      200 {object} dto.Response{data=contentapp.HeroResponse}
// @Failure      404 {object} dto.Response
// @Security     BearerAuth
// @Router       /hero/{heroId} [delete]
func (h *HeroHandler) Delete(c *gin.Context) {
	id, ok := h.PathID(c, "heroId", "")
	if !ok {
		return
	}
	hero, err := h.heroService.Delete(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Hero section deleted successfully", hero)
}

// TrendingOfferHandler handles trending offer endpoints
type TrendingOfferHandler struct {
	BaseHandler
	offerService *contentapp.TrendingOfferService
}

// NewTrendingOfferHandler creates a new TrendingOfferHandler
func NewTrendingOfferHandler(offerService *contentapp.TrendingOfferService) *TrendingOfferHandler {
	return &TrendingOfferHandler{offerService: offerService}
}

// Create godoc
// @Summary      Create a trending offer
// @Description  ctaLink must be the id of an existing product.
// @Tags         trending-offers
// @Accept       json
// @Produce      json
// @Param        request body contentapp.CreateTrendingOfferRequest true "Offer"
// @Success      201 {object} dto.Response{data=contentapp.TrendingOfferResponse}
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response "product not found"
// @Security     BearerAuth
// @Router       /trending-offers [post]
func (h *TrendingOfferHandler) Create(c *gin.Context) {
	var req contentapp.CreateTrendingOfferRequest
	if !h.BindJSON(c, &req) {
		return
	}
	offer, err := h.offerService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, "Trending offer created successfully", offer)
}

// List godoc
// @Summary      List trending offers
// @Tags         trending-offers
// @Produce      json
// @Success      200 {object} dto.Response{data=[]contentapp.TrendingOfferResponse}
// @Router       /trending-offers [get]
func (h *TrendingOfferHandler) List(c *gin.Context) {
	offers, err := h.offerService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Trending offers fetched successfully", offers)
}

// GetByID godoc
// @Summary      Get a trending offer
// @Tags         trending-offers
// @Produce      json
// @Param        offerId path string true "Offer ID"
// @Success      200 {object} dto.Response{data=contentapp.TrendingOfferResponse}
// @Failure      404 {object} dto.Response
// @Security     BearerAuth
// @Router       /trending-offers/{offerId} [get]
func (h *TrendingOfferHandler) GetByID(c *gin.Context) {
	id, ok := h.PathID(c, "offerId", "")
	if !ok {
		return
	}
	offer, err := h.offerService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Trending offer fetched successfully", offer)
}

// Update godoc
// @Summary      Update a trending offer
// @Tags         trending-offers
// @Accept       json
// @Produce      json
// @Param        offerId path string true "Offer ID"
// @Param        request body contentapp.UpdateTrendingOfferRequest true "Fields to change"
// @Success      200 {object} dto.Response{data=contentapp.TrendingOfferResponse}
// @Failure      404 {object} dto.Response
// @Security     BearerAuth
// @Router       /trending-offers/{offerId} [put]
func (h *TrendingOfferHandler) Update(c *gin.Context) {
	id, ok := h.PathID(c, "offerId", "")
	if !ok {
		return
	}
	var req contentapp.UpdateTrendingOfferRequest
	if !h.BindJSON(c, &req) {
		return
	}
	offer, err := h.offerService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Trending offer updated successfully", offer)
}

// Delete godoc
// @Summary      Delete a trending offer
// @Tags         trending-offers
// @Produce      json
// @Param        offerId path string true "Offer ID"
// @Success      200 {object} dto.Response{data=contentapp.TrendingOfferResponse}
// @Failure      404 {object} dto.Response
// @Security     BearerAuth
// @Router       /trending-offers/{offerId} [delete]
func (h *TrendingOfferHandler) Delete(c *gin.Context) {
	id, ok := h.PathID(c, "offerId", "")
	if !ok {
		return
	}
	offer, err := h.offerService.Delete(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Trending offer deleted successfully", offer)
}
