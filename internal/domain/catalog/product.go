package catalog

import (
	"strings"
	"time"

	"github.com/dotmart/backend/internal/domain/shared"
	"github.com/dotmart/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductStatus controls storefront visibility. Products are never hard-deleted.
type ProductStatus string

const (
	ProductStatusEnable  ProductStatus = "enable"
	ProductStatusDisable ProductStatus = "disable"
)

// IsValid reports whether s is a known status
func (s ProductStatus) IsValid() bool {
	return s == ProductStatusEnable || s == ProductStatusDisable
}

// Badge is the promotional label shown on a product card
type Badge string

const (
	BadgeHotDeal      Badge = "Hot Deal"
	BadgeNew          Badge = "New"
	BadgeSale         Badge = "Sale"
	BadgeFeatured     Badge = "Featured"
	BadgeLimitedOffer Badge = "Limited Offer"
)

// IsValid reports whether b is empty or one of the known badges
func (b Badge) IsValid() bool {
	switch b {
	case "", BadgeHotDeal, BadgeNew, BadgeSale, BadgeFeatured, BadgeLimitedOffer:
		return true
	}
	return false
}

// Meta holds the SEO fields of a product page
type Meta struct {
	Title       string
	Description string
	Keywords    []string
}

// CategoryRef is the category summary joined onto a product
type CategoryRef struct {
	ID    uuid.UUID
	Name  string
	Photo string
}

// Product is a sellable item in the catalog
type Product struct {
	shared.BaseAggregateRoot
	Name          string
	Slug          string
	Description   string
	CategoryID    uuid.UUID
	Price         decimal.Decimal
	OriginalPrice decimal.Decimal
	Discount      int64
	Images        []string
	Badge         Badge
	FreeShipping  bool
	FreeGift      bool
	IsNewArrivals bool
	IsBestDeal    bool
	Stock         bool
	Status        ProductStatus
	Meta          Meta

	// Category is populated by reads that join the category table
	Category *CategoryRef
}

// ProductDetails is the input for NewProduct
type ProductDetails struct {
	Name          string
	Slug          string
	Description   string
	CategoryID    uuid.UUID
	Price         decimal.Decimal
	OriginalPrice decimal.Decimal
	Images        []string
	Badge         Badge
	FreeShipping  bool
	FreeGift      bool
	IsNewArrivals bool
	IsBestDeal    bool
	Stock         bool
	Status        ProductStatus
	Meta          Meta
}

// NewProduct validates details and returns an enabled product with its discount derived.
// When Slug is empty it is derived from the name.
func NewProduct(d ProductDetails) (*Product, error) {
	p := &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(d.Name),
		Slug:              strings.ToLower(strings.TrimSpace(d.Slug)),
		Description:       d.Description,
		CategoryID:        d.CategoryID,
		Price:             d.Price,
		OriginalPrice:     d.OriginalPrice,
		Images:            d.Images,
		Badge:             d.Badge,
		FreeShipping:      d.FreeShipping,
		FreeGift:          d.FreeGift,
		IsNewArrivals:     d.IsNewArrivals,
		IsBestDeal:        d.IsBestDeal,
		Stock:             d.Stock,
		Status:            d.Status,
		Meta:              d.Meta,
	}
	if p.Status == "" {
		p.Status = ProductStatusEnable
	}
	if p.Slug == "" {
		p.Slug = Slugify(p.Name)
	}
	if p.Meta.Keywords == nil {
		p.Meta.Keywords = []string{}
	}
	if err := p.validate(); err != nil {
		return nil, err
	}
	p.recalculateDiscount()
	p.AddDomainEvent(NewProductSavedEvent(p))
	return p, nil
}

// ProductPatch carries the fields an update may change. Nil fields are left untouched.
type ProductPatch struct {
	Name          *string
	Slug          *string
	Description   *string
	CategoryID    *uuid.UUID
	Price         *decimal.Decimal
	OriginalPrice *decimal.Decimal
	Images        []string
	Badge         *Badge
	FreeShipping  *bool
	FreeGift      *bool
	IsNewArrivals *bool
	IsBestDeal    *bool
	Stock         *bool
	Status        *ProductStatus
	Meta          *Meta
}

// ApplyPatch applies a partial update and rederives the discount
func (p *Product) ApplyPatch(patch ProductPatch) error {
	next := *p
	if patch.Name != nil {
		next.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Slug != nil {
		next.Slug = strings.ToLower(strings.TrimSpace(*patch.Slug))
	}
	if patch.Description != nil {
		next.Description = *patch.Description
	}
	if patch.CategoryID != nil {
		next.CategoryID = *patch.CategoryID
		next.Category = nil
	}
	if patch.Price != nil {
		next.Price = *patch.Price
	}
	if patch.OriginalPrice != nil {
		next.OriginalPrice = *patch.OriginalPrice
	}
	if patch.Images != nil {
		next.Images = patch.Images
	}
	if patch.Badge != nil {
		next.Badge = *patch.Badge
	}
	if patch.FreeShipping != nil {
		next.FreeShipping = *patch.FreeShipping
	}
	if patch.FreeGift != nil {
		next.FreeGift = *patch.FreeGift
	}
	if patch.IsNewArrivals != nil {
		next.IsNewArrivals = *patch.IsNewArrivals
	}
	if patch.IsBestDeal != nil {
		next.IsBestDeal = *patch.IsBestDeal
	}
	if patch.Stock != nil {
		next.Stock = *patch.Stock
	}
	if patch.Status != nil {
		next.Status = *patch.Status
	}
	if patch.Meta != nil {
		next.Meta = *patch.Meta
	}
	if err := next.validate(); err != nil {
		return err
	}

	*p = next
	p.recalculateDiscount()
	p.UpdatedAt = time.Now()
	p.AddDomainEvent(NewProductSavedEvent(p))
	return nil
}

// Disable soft-deletes the product
func (p *Product) Disable() {
	p.Status = ProductStatusDisable
	p.UpdatedAt = time.Now()
	p.AddDomainEvent(NewProductDisabledEvent(p))
}

// IsEnabled reports whether the product is visible in the storefront
func (p *Product) IsEnabled() bool {
	return p.Status == ProductStatusEnable
}

// recalculateDiscount derives the whole-percent discount from the two prices.
// decimal.Round rounds half away from zero, which matches Math.round for positive values.
func (p *Product) recalculateDiscount() {
	p.Discount = CalculateDiscount(p.Price, p.OriginalPrice)
}

// CalculateDiscount returns round((original-price)/original*100) when original > price, else 0
func CalculateDiscount(price, original decimal.Decimal) int64 {
	if !original.GreaterThan(price) || !original.IsPositive() {
		return 0
	}
	return original.Sub(price).Div(original).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

func (p *Product) validate() error {
	if p.Name == "" {
		return shared.Validation("Product name is required")
	}
	if p.Slug == "" {
		return shared.Validation("Product slug is required")
	}
	if strings.TrimSpace(p.Description) == "" {
		return shared.Validation("Product description is required")
	}
	if p.CategoryID == uuid.Nil {
		return shared.Validation("Category is required")
	}
	if p.Price.IsNegative() {
		return shared.Validation("Price must be a positive number")
	}
	if p.OriginalPrice.IsNegative() {
		return shared.Validation("Original price must be a positive number")
	}
	if len(p.Images) == 0 {
		return shared.Validation("At least one image is required")
	}
	for _, img := range p.Images {
		if !valueobject.IsURL(img) {
			return shared.Validation("Image must be a valid URL")
		}
	}
	if !p.Badge.IsValid() {
		return shared.Validation("Invalid badge")
	}
	if !p.Status.IsValid() {
		return shared.Validation("Status must be enable or disable")
	}
	if strings.TrimSpace(p.Meta.Title) == "" {
		return shared.Validation("Meta title is required")
	}
	if strings.TrimSpace(p.Meta.Description) == "" {
		return shared.Validation("Meta description is required")
	}
	return nil
}
