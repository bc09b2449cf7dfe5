package cart

import (
	"time"

	"github.com/dotmart/backend/internal/domain/cart"
	"github.com/google/uuid"
)

// AddToCartRequest represents a request to add a product to a cart.
// User defaults to the authenticated subject; Quantity defaults to 1.
type AddToCartRequest struct {
	User     string `json:"user"`
	Product  string `json:"product" binding:"required"`
	Quantity *int   `json:"quantity"`
}

// UpdateCartItemRequest replaces the quantity of one line
type UpdateCartItemRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// CartItemResponse represents a stored cart line
type CartItemResponse struct {
	ID        uuid.UUID `json:"id"`
	User      uuid.UUID `json:"user"`
	Product   uuid.UUID `json:"product"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CartProductResponse is the product summary joined onto a cart line
type CartProductResponse struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Images []string  `json:"images"`
	Price  float64   `json:"price"`
	Stock  bool      `json:"stock"`
}

// CartLineResponse is a cart line with its product and line total
type CartLineResponse struct {
	ID        uuid.UUID           `json:"id"`
	User      uuid.UUID           `json:"user"`
	Product   CartProductResponse `json:"product"`
	Quantity  int                 `json:"quantity"`
	ItemTotal float64             `json:"itemTotal"`
	CreatedAt time.Time           `json:"createdAt"`
	UpdatedAt time.Time           `json:"updatedAt"`
}

// CartResponse is the user's cart view. CartTotal is formatted with two decimals.
type CartResponse struct {
	Items     []CartLineResponse `json:"items"`
	CartTotal string             `json:"cartTotal"`
}

// ToCartItemResponse converts a domain cart line to a response DTO
func ToCartItemResponse(item *cart.CartItem) CartItemResponse {
	return CartItemResponse{
		ID:        item.ID,
		User:      item.UserID,
		Product:   item.ProductID,
		Quantity:  item.Quantity,
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}
}
