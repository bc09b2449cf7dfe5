package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderItemRequest is one checkout line. Price is the unit price shown to the client.
type OrderItemRequest struct {
	Product  string           `json:"product" binding:"required"`
	Quantity int              `json:"quantity" binding:"required,min=1"`
	Price    *decimal.Decimal `json:"price" binding:"required"`
}

// CreateOrderRequest represents a checkout. Totals are accepted as sent.
type CreateOrderRequest struct {
	User          string             `json:"user"`
	Items         []OrderItemRequest `json:"items" binding:"dive"`
	TotalAmount   *decimal.Decimal   `json:"totalAmount" binding:"required"`
	PaymentStatus string             `json:"paymentStatus" binding:"omitempty,oneof=pending paid failed"`
	OrderStatus   string             `json:"orderStatus" binding:"omitempty,oneof=processing shipped delivered cancelled"`
}

// UpdateStatusRequest carries a new order or payment status
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// OrderUserResponse is the user reference of an order, populated on reads
type OrderUserResponse struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name,omitempty"`
	Email string    `json:"email,omitempty"`
}

// OrderProductResponse is the product reference of an order line, populated on reads
type OrderProductResponse struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name,omitempty"`
	Images []string  `json:"images,omitempty"`
	Price  *float64  `json:"price,omitempty"`
}

// OrderItemResponse is one order line. Price is the snapshot taken at checkout.
type OrderItemResponse struct {
	Product  OrderProductResponse `json:"product"`
	Quantity int                  `json:"quantity"`
	Price    float64              `json:"price"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID            uuid.UUID           `json:"id"`
	User          OrderUserResponse   `json:"user"`
	Items         []OrderItemResponse `json:"items"`
	TotalAmount   float64             `json:"totalAmount"`
	PaymentStatus string              `json:"paymentStatus"`
	OrderStatus   string              `json:"orderStatus"`
	CreatedAt     time.Time           `json:"createdAt"`
	UpdatedAt     time.Time           `json:"updatedAt"`
}
