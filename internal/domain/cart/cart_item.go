package cart

import (
	"time"

	"github.com/dotmart/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CartItem is one (user, product) line in a shopping cart.
// The database holds at most one line per pair.
type CartItem struct {
	shared.BaseEntity
	UserID    uuid.UUID
	ProductID uuid.UUID
	Quantity  int
}

// NewCartItem creates a cart line
func NewCartItem(userID, productID uuid.UUID, quantity int) (*CartItem, error) {
	if userID == uuid.Nil {
		return nil, shared.Validation("User is required")
	}
	if productID == uuid.Nil {
		return nil, shared.Validation("Product is required")
	}
	if err := ValidateQuantity(quantity); err != nil {
		return nil, err
	}
	return &CartItem{
		BaseEntity: shared.NewBaseEntity(),
		UserID:     userID,
		ProductID:  productID,
		Quantity:   quantity,
	}, nil
}

// SetQuantity replaces the line quantity
func (i *CartItem) SetQuantity(quantity int) error {
	if err := ValidateQuantity(quantity); err != nil {
		return err
	}
	i.Quantity = quantity
	i.UpdatedAt = time.Now()
	return nil
}

// ValidateQuantity rejects quantities below one
func ValidateQuantity(quantity int) error {
	if quantity < 1 {
		return shared.Validation("Quantity must be at least 1")
	}
	return nil
}
