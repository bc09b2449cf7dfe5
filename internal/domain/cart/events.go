package cart

import (
	"github.com/dotmart/backend/internal/domain/shared"
	"github.com/google/uuid"
)

const (
	AggregateTypeCart = "Cart"

	EventTypeCartItemAdded = "cart.item_added"
	EventTypeCartCleared   = "cart.cleared"
)

// CartItemAddedEvent is raised after an add-to-cart, whether it inserted or incremented a line
type CartItemAddedEvent struct {
	shared.BaseDomainEvent
	CartItemID uuid.UUID `json:"cartItemId"`
	UserID     uuid.UUID `json:"userId"`
	ProductID  uuid.UUID `json:"productId"`
	Added      int       `json:"added"`
	Quantity   int       `json:"quantity"`
}

// NewCartItemAddedEvent creates a CartItemAddedEvent. The aggregate is the user's cart.
func NewCartItemAddedEvent(item *CartItem, added int) *CartItemAddedEvent {
	return &CartItemAddedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCartItemAdded, AggregateTypeCart, item.UserID),
		CartItemID:      item.ID,
		UserID:          item.UserID,
		ProductID:       item.ProductID,
		Added:           added,
		Quantity:        item.Quantity,
	}
}

// CartClearedEvent is raised when all lines of a user are removed
type CartClearedEvent struct {
	shared.BaseDomainEvent
	UserID  uuid.UUID `json:"userId"`
	Removed int64     `json:"removed"`
}

// NewCartClearedEvent creates a CartClearedEvent
func NewCartClearedEvent(userID uuid.UUID, removed int64) *CartClearedEvent {
	return &CartClearedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCartCleared, AggregateTypeCart, userID),
		UserID:          userID,
		Removed:         removed,
	}
}
