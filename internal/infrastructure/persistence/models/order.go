package models

import (
	"github.com/dotmart/backend/internal/domain/order"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderItemModel is one embedded order line, stored inside the items JSON column.
type OrderItemModel struct {
	Product  uuid.UUID       `json:"product"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// OrderModel is the persistence model for the Order aggregate.
type OrderModel struct {
	BaseModel
	UserID        uuid.UUID                `gorm:"type:uuid;not null;index"`
	Items         JSONList[OrderItemModel] `gorm:"not null"`
	TotalAmount   decimal.Decimal          `gorm:"type:decimal(12,2);not null"`
	PaymentStatus order.PaymentStatus      `gorm:"type:varchar(10);not null;default:'pending'"`
	OrderStatus   order.Status             `gorm:"type:varchar(12);not null;default:'processing'"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// ToDomain converts the persistence model to a domain Order.
func (m *OrderModel) ToDomain() *order.Order {
	items := make([]order.Item, 0, len(m.Items))
	for _, it := range m.Items {
		items = append(items, order.Item{ProductID: it.Product, Quantity: it.Quantity, Price: it.Price})
	}
	return &order.Order{
		BaseAggregateRoot: m.aggregateRoot(),
		UserID:            m.UserID,
		Items:             items,
		TotalAmount:       m.TotalAmount,
		PaymentStatus:     m.PaymentStatus,
		OrderStatus:       m.OrderStatus,
	}
}

// FromDomain populates the persistence model from a domain Order.
func (m *OrderModel) FromDomain(o *order.Order) {
	m.FromDomainBaseEntity(o.BaseEntity)
	m.UserID = o.UserID
	m.Items = make(JSONList[OrderItemModel], 0, len(o.Items))
	for _, it := range o.Items {
		m.Items = append(m.Items, OrderItemModel{Product: it.ProductID, Quantity: it.Quantity, Price: it.Price})
	}
	m.TotalAmount = o.TotalAmount
	m.PaymentStatus = o.PaymentStatus
	m.OrderStatus = o.OrderStatus
}
