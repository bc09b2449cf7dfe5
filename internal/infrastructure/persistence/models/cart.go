package models

import (
	"github.com/dotmart/backend/internal/domain/cart"
	"github.com/google/uuid"
)

// CartItemModel is the persistence model for a cart line.
// The composite unique index holds at most one line per (user, product).
type CartItemModel struct {
	BaseModel
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_items_user_product,priority:1"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_items_user_product,priority:2"`
	Quantity  int       `gorm:"not null;default:1"`
}

// TableName returns the table name for GORM
func (CartItemModel) TableName() string {
	return "cart_items"
}

// ToDomain converts the persistence model to a domain CartItem.
func (m *CartItemModel) ToDomain() *cart.CartItem {
	return &cart.CartItem{
		BaseEntity: m.BaseModel.ToDomain(),
		UserID:     m.UserID,
		ProductID:  m.ProductID,
		Quantity:   m.Quantity,
	}
}

// FromDomain populates the persistence model from a domain CartItem.
func (m *CartItemModel) FromDomain(i *cart.CartItem) {
	m.FromDomainBaseEntity(i.BaseEntity)
	m.UserID = i.UserID
	m.ProductID = i.ProductID
	m.Quantity = i.Quantity
}
