package order

import (
	"github.com/dotmart/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	AggregateTypeOrder = "Order"

	EventTypeOrderPlaced               = "order.placed"
	EventTypeOrderStatusChanged        = "order.status_changed"
	EventTypeOrderPaymentStatusChanged = "order.payment_status_changed"
)

// OrderPlacedEvent is raised when an order is created
type OrderPlacedEvent struct {
	shared.BaseDomainEvent
	OrderID     uuid.UUID       `json:"orderId"`
	UserID      uuid.UUID       `json:"userId"`
	ItemCount   int             `json:"itemCount"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
}

// NewOrderPlacedEvent creates an OrderPlacedEvent
func NewOrderPlacedEvent(o *Order) *OrderPlacedEvent {
	return &OrderPlacedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderPlaced, AggregateTypeOrder, o.ID),
		OrderID:         o.ID,
		UserID:          o.UserID,
		ItemCount:       o.ItemCount(),
		TotalAmount:     o.TotalAmount,
	}
}

// OrderStatusChangedEvent is raised when the fulfilment status is written
type OrderStatusChangedEvent struct {
	shared.BaseDomainEvent
	OrderID uuid.UUID `json:"orderId"`
	From    Status    `json:"from"`
	To      Status    `json:"to"`
}

// NewOrderStatusChangedEvent creates an OrderStatusChangedEvent
func NewOrderStatusChangedEvent(o *Order, from Status) *OrderStatusChangedEvent {
	return &OrderStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderStatusChanged, AggregateTypeOrder, o.ID),
		OrderID:         o.ID,
		From:            from,
		To:              o.OrderStatus,
	}
}

// PaymentStatusChangedEvent is raised when the payment status is written
type PaymentStatusChangedEvent struct {
	shared.BaseDomainEvent
	OrderID uuid.UUID     `json:"orderId"`
	From    PaymentStatus `json:"from"`
	To      PaymentStatus `json:"to"`
}

// NewPaymentStatusChangedEvent creates a PaymentStatusChangedEvent
func NewPaymentStatusChangedEvent(o *Order, from PaymentStatus) *PaymentStatusChangedEvent {
	return &PaymentStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderPaymentStatusChanged, AggregateTypeOrder, o.ID),
		OrderID:         o.ID,
		From:            from,
		To:              o.PaymentStatus,
	}
}
