package handler

import (
	cartapp "github.com/dotmart/backend/internal/application/cart"
	"github.com/gin-gonic/gin"
)

// CartHandler handles cart endpoints
type CartHandler struct {
	BaseHandler
	cartService *cartapp.CartService
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(cartService *cartapp.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// AddToCart godoc
// @Summary      Add a product to a cart
// @Description  Increments the existing line for the same product. user defaults to the caller.
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        request body cartapp.AddToCartRequest true "Cart line"
// @Success      201 {object} dto.Response{data=cartapp.CartItemResponse}
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response "product not found"
// @Security     BearerAuth
// @Router       /cart [post]
func (h *CartHandler) AddToCart(c *gin.Context) {
	actor, ok := h.ActingUser(c)
	if !ok {
		return
	}
	var req cartapp.AddToCartRequest
	if !h.BindJSON(c, &req) || !h.requireBodyUser(c, req.User) {
		return
	}
	item, err := h.cartService.AddToCart(c.Request.Context(), actor, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, "Product added to cart", item)
}

// GetUserCart godoc
// @Summary      Get a user's cart with totals
// @Tags         cart
// @Produce      json
// @Param        userId path string true "User ID"
// @Success      200 {object} dto.Response{data=cartapp.CartResponse}
// @Security     BearerAuth
// @Router       /cart/user/{userId} [get]
func (h *CartHandler) GetUserCart(c *gin.Context) {
	userID, ok := h.PathID(c, "userId", "")
	if !ok || !h.RequireSelfOrAdmin(c, userID) {
		return
	}
	cart, err := h.cartService.GetUserCart(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Cart fetched successfully", cart)
}

// UpdateCartItem godoc
// @Summary      Replace the quantity of a cart line
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        cartId path string true "Cart line ID"
// @Param        request body cartapp.UpdateCartItemRequest true "Quantity"
// @Success      200 {object} dto.Response{data=cartapp.CartItemResponse}
// @Failure      400 {object} dto.Response
// @Failure      404 {object} dto.Response
// @Security     BearerAuth
// @Router       /cart/{cartId} [put]
func (h *CartHandler) UpdateCartItem(c *gin.Context) {
	id, ok := h.PathID(c, "cartId", "")
	if !ok {
		return
	}
	var req cartapp.UpdateCartItemRequest
	if !h.BindJSON(c, &req) {
		return
	}
	item, err := h.cartService.UpdateCartItem(c.Request.Context(), id, *req.Quantity)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Cart item updated successfully", item)
}

// RemoveCartItem godoc
// @Summary      Remove a cart line
// @Tags         cart
// @Produce      json
// @Param        cartId path string true "Cart line ID"
// @Success      200 {object} dto.Response{data=cartapp.CartItemResponse}
// @Failure      404 {object} dto.Response
// @Security     BearerAuth
// @Router       /cart/{cartId} [delete]
func (h *CartHandler) RemoveCartItem(c *gin.Context) {
	id, ok := h.PathID(c, "cartId", "")
	if !ok {
		return
	}
	item, err := h.cartService.RemoveCartItem(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Cart item removed successfully", item)
}

// ClearUserCart godoc
// @Summary      Remove every line of a user's cart
// @Tags         cart
// @Produce      json
// @Param        userId path string true "User ID"
// @Success      200 {object} dto.Response
// @Security     BearerAuth
// @Router       /cart/user/{userId} [delete]
func (h *CartHandler) ClearUserCart(c *gin.Context) {
	userID, ok := h.PathID(c, "userId", "")
	if !ok || !h.RequireSelfOrAdmin(c, userID) {
		return
	}
	if err := h.cartService.ClearUserCart(c.Request.Context(), userID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, "Cart cleared successfully", nil)
}
