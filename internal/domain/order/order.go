package order

import (
	"time"

	"github.com/dotmart/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentStatus is the payment state of an order
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"
)

// IsValid reports whether s is a known payment status
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusFailed:
		return true
	}
	return false
}

// Status is the fulfilment state of an order
type Status string

const (
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

// IsValid reports whether s is a known order status
func (s Status) IsValid() bool {
	switch s {
	case StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// Item is a product snapshot taken at checkout. Price is the unit price the client saw.
type Item struct {
	ProductID uuid.UUID
	Quantity  int
	Price     decimal.Decimal
}

// Order is a placed order. Only the two status fields change after creation.
type Order struct {
	shared.BaseAggregateRoot
	UserID        uuid.UUID
	Items         []Item
	TotalAmount   decimal.Decimal
	PaymentStatus PaymentStatus
	OrderStatus   Status
}

// NewOrder validates and creates an order. Totals are taken as given and not recomputed.
// Empty statuses default to pending and processing.
func NewOrder(userID uuid.UUID, items []Item, total decimal.Decimal, payment PaymentStatus, status Status) (*Order, error) {
	if userID == uuid.Nil {
		return nil, shared.Validation("User is required")
	}
	if len(items) == 0 {
		return nil, shared.Validation("Order must contain at least one item")
	}
	for _, it := range items {
		if it.ProductID == uuid.Nil {
			return nil, shared.Validation("Product is required")
		}
		if it.Quantity < 1 {
			return nil, shared.Validation("Quantity must be at least 1")
		}
		if it.Price.IsNegative() {
			return nil, shared.Validation("Price must be a positive number")
		}
	}
	if total.IsNegative() {
		return nil, shared.Validation("Total amount must be a positive number")
	}
	if payment == "" {
		payment = PaymentStatusPending
	}
	if status == "" {
		status = StatusProcessing
	}
	if !payment.IsValid() {
		return nil, shared.Validation("Invalid payment status")
	}
	if !status.IsValid() {
		return nil, shared.Validation("Invalid order status")
	}

	o := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		UserID:            userID,
		Items:             items,
		TotalAmount:       total,
		PaymentStatus:     payment,
		OrderStatus:       status,
	}
	o.AddDomainEvent(NewOrderPlacedEvent(o))
	return o, nil
}

// ChangeStatus sets the order status. Any status may follow any other.
func (o *Order) ChangeStatus(status Status) error {
	if !status.IsValid() {
		return shared.Validation("Invalid order status")
	}
	from := o.OrderStatus
	o.OrderStatus = status
	o.UpdatedAt = time.Now()
	o.AddDomainEvent(NewOrderStatusChangedEvent(o, from))
	return nil
}

// ChangePaymentStatus sets the payment status. Any status may follow any other.
func (o *Order) ChangePaymentStatus(status PaymentStatus) error {
	if !status.IsValid() {
		return shared.Validation("Invalid payment status")
	}
	from := o.PaymentStatus
	o.PaymentStatus = status
	o.UpdatedAt = time.Now()
	o.AddDomainEvent(NewPaymentStatusChangedEvent(o, from))
	return nil
}

// ItemCount returns the total number of units across all items
func (o *Order) ItemCount() int {
	n := 0
	for _, it := range o.Items {
		n += it.Quantity
	}
	return n
}

// ProductIDs returns the distinct product ids referenced by the order
func (o *Order) ProductIDs() []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(o.Items))
	ids := make([]uuid.UUID, 0, len(o.Items))
	for _, it := range o.Items {
		if _, ok := seen[it.ProductID]; ok {
			continue
		}
		seen[it.ProductID] = struct{}{}
		ids = append(ids, it.ProductID)
	}
	return ids
}
