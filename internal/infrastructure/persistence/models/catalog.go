package models

import (
	"github.com/dotmart/backend/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CategoryModel is the persistence model for the Category domain entity.
type CategoryModel struct {
	BaseModel
	Name     string `gorm:"type:varchar(50);not null;uniqueIndex:idx_categories_name"`
	Photo    string `gorm:"type:text;not null"`
	IsActive bool   `gorm:"not null"`
}

// TableName returns the table name for GORM
func (CategoryModel) TableName() string {
	return "categories"
}

// ToDomain converts the persistence model to a domain Category entity.
func (m *CategoryModel) ToDomain() *catalog.Category {
	return &catalog.Category{
		BaseAggregateRoot: m.aggregateRoot(),
		Name:              m.Name,
		Photo:             m.Photo,
		IsActive:          m.IsActive,
	}
}

// FromDomain populates the persistence model from a domain Category entity.
func (m *CategoryModel) FromDomain(c *catalog.Category) {
	m.FromDomainBaseEntity(c.BaseEntity)
	m.Name = c.Name
	m.Photo = c.Photo
	m.IsActive = c.IsActive
}

// ProductModel is the persistence model for the Product domain entity.
type ProductModel struct {
	BaseModel
	Name            string                `gorm:"type:varchar(200);not null"`
	Slug            string                `gorm:"type:varchar(220);not null;uniqueIndex:idx_products_slug"`
	Description     string                `gorm:"type:text;not null"`
	CategoryID      uuid.UUID             `gorm:"type:uuid;not null;index"`
	Price           decimal.Decimal       `gorm:"type:decimal(12,2);not null;default:0"`
	OriginalPrice   decimal.Decimal       `gorm:"type:decimal(12,2);not null;default:0"`
	Discount        int64                 `gorm:"not null;default:0"`
	Images          JSONList[string]      `gorm:"not null"`
	Badge           string                `gorm:"type:varchar(20)"`
	FreeShipping    bool                  `gorm:"not null;default:false"`
	FreeGift        bool                  `gorm:"not null;default:false"`
	IsNewArrivals   bool                  `gorm:"not null;default:false"`
	IsBestDeal      bool                  `gorm:"not null;default:false"`
	Stock           bool                  `gorm:"not null"`
	Status          catalog.ProductStatus `gorm:"type:varchar(10);not null;default:'enable';index"`
	MetaTitle       string                `gorm:"type:varchar(200);not null"`
	MetaDescription string                `gorm:"type:text;not null"`
	MetaKeywords    JSONList[string]      `gorm:"not null"`

	Category *CategoryModel `gorm:"foreignKey:CategoryID;constraint:OnDelete:RESTRICT"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product entity.
// Category is set only when the association was loaded.
func (m *ProductModel) ToDomain() *catalog.Product {
	p := &catalog.Product{
		BaseAggregateRoot: m.aggregateRoot(),
		Name:              m.Name,
		Slug:              m.Slug,
		Description:       m.Description,
		CategoryID:        m.CategoryID,
		Price:             m.Price,
		OriginalPrice:     m.OriginalPrice,
		Discount:          m.Discount,
		Images:            []string(m.Images),
		Badge:             catalog.Badge(m.Badge),
		FreeShipping:      m.FreeShipping,
		FreeGift:          m.FreeGift,
		IsNewArrivals:     m.IsNewArrivals,
		IsBestDeal:        m.IsBestDeal,
		Stock:             m.Stock,
		Status:            m.Status,
		Meta: catalog.Meta{
			Title:       m.MetaTitle,
			Description: m.MetaDescription,
			Keywords:    []string(m.MetaKeywords),
		},
	}
	if m.Category != nil && m.Category.ID != uuid.Nil {
		p.Category = &catalog.CategoryRef{ID: m.Category.ID, Name: m.Category.Name, Photo: m.Category.Photo}
	}
	return p
}

// FromDomain populates the persistence model from a domain Product entity.
// The category association is never written through the product.
func (m *ProductModel) FromDomain(p *catalog.Product) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.Name = p.Name
	m.Slug = p.Slug
	m.Description = p.Description
	m.CategoryID = p.CategoryID
	m.Price = p.Price
	m.OriginalPrice = p.OriginalPrice
	m.Discount = p.Discount
	m.Images = JSONList[string](p.Images)
	m.Badge = string(p.Badge)
	m.FreeShipping = p.FreeShipping
	m.FreeGift = p.FreeGift
	m.IsNewArrivals = p.IsNewArrivals
	m.IsBestDeal = p.IsBestDeal
	m.Stock = p.Stock
	m.Status = p.Status
	m.MetaTitle = p.Meta.Title
	m.MetaDescription = p.Meta.Description
	m.MetaKeywords = JSONList[string](p.Meta.Keywords)
	m.Category = nil
}
