package catalog

import (
	"github.com/dotmart/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	AggregateTypeProduct = "Product"

	EventTypeProductSaved    = "product.saved"
	EventTypeProductDisabled = "product.disabled"
)

// ProductSavedEvent is raised whenever a product is created or updated.
// It carries enough of the product for the search index to rebuild its document.
type ProductSavedEvent struct {
	shared.BaseDomainEvent
	ProductID   uuid.UUID       `json:"productId"`
	Name        string          `json:"name"`
	Slug        string          `json:"slug"`
	Description string          `json:"description"`
	CategoryID  uuid.UUID       `json:"categoryId"`
	Price       decimal.Decimal `json:"price"`
	Discount    int64           `json:"discount"`
	Images      []string        `json:"images"`
	Status      ProductStatus   `json:"status"`
	Keywords    []string        `json:"keywords"`
}

// NewProductSavedEvent creates a ProductSavedEvent
func NewProductSavedEvent(p *Product) *ProductSavedEvent {
	return &ProductSavedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductSaved, AggregateTypeProduct, p.ID),
		ProductID:       p.ID,
		Name:            p.Name,
		Slug:            p.Slug,
		Description:     p.Description,
		CategoryID:      p.CategoryID,
		Price:           p.Price,
		Discount:        p.Discount,
		Images:          p.Images,
		Status:          p.Status,
		Keywords:        p.Meta.Keywords,
	}
}

// ProductDisabledEvent is raised when a product is soft-deleted
type ProductDisabledEvent struct {
	shared.BaseDomainEvent
	ProductID uuid.UUID `json:"productId"`
	Slug      string    `json:"slug"`
}

// NewProductDisabledEvent creates a ProductDisabledEvent
func NewProductDisabledEvent(p *Product) *ProductDisabledEvent {
	return &ProductDisabledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductDisabled, AggregateTypeProduct, p.ID),
		ProductID:       p.ID,
		Slug:            p.Slug,
	}
}
