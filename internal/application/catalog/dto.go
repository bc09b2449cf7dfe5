package catalog

import (
	"time"

	"github.com/dotmart/backend/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateCategoryRequest represents a request to create a category
type CreateCategoryRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=50"`
	Photo    string `json:"photo" binding:"required,imageurl"`
	IsActive *bool  `json:"isActive"`
}

// UpdateCategoryRequest represents a partial category update
type UpdateCategoryRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=2,max=50"`
	Photo    *string `json:"photo" binding:"omitempty,imageurl"`
	IsActive *bool   `json:"isActive"`
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Photo     string    `json:"photo"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CategoryRefResponse is the category summary embedded in products
type CategoryRefResponse struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Photo string    `json:"photo"`
}

// ToCategoryResponse converts a domain category to a response DTO
func ToCategoryResponse(c *catalog.Category) CategoryResponse {
	return CategoryResponse{
		ID:        c.ID,
		Name:      c.Name,
		Photo:     c.Photo,
		IsActive:  c.IsActive,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// ToCategoryResponses converts a slice of categories
func ToCategoryResponses(categories []catalog.Category) []CategoryResponse {
	out := make([]CategoryResponse, len(categories))
	for i := range categories {
		out[i] = ToCategoryResponse(&categories[i])
	}
	return out
}

// ProductMeta is the SEO block of a product, shared by requests and responses
type ProductMeta struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description" binding:"required"`
	Keyword     []string `json:"keyword"`
}

// CreateProductRequest represents a request to create a product.
// Category is a raw id string so a malformed value reports "Invalid ID format".
type CreateProductRequest struct {
	Name          string           `json:"name" binding:"required"`
	Slug          string           `json:"slug"`
	Description   string           `json:"description" binding:"required"`
	Category      string           `json:"category" binding:"required"`
	Price         *decimal.Decimal `json:"price" binding:"required"`
	OriginalPrice *decimal.Decimal `json:"originalPrice" binding:"required"`
	Images        []string         `json:"images" binding:"required,min=1,dive,url"`
	Badge         string           `json:"badge" binding:"omitempty,oneof='Hot Deal' New Sale Featured 'Limited Offer'"`
	FreeShipping  bool             `json:"freeShipping"`
	FreeGift      bool             `json:"freeGift"`
	IsNewArrivals bool             `json:"isNewArrivals"`
	IsBestDeal    bool             `json:"isBestDeal"`
	Stock         bool             `json:"stock"`
	Status        string           `json:"status" binding:"omitempty,oneof=enable disable"`
	Meta          ProductMeta      `json:"meta"`
}

// UpdateProductRequest represents a partial product update
type UpdateProductRequest struct {
	Name          *string          `json:"name" binding:"omitempty,min=1"`
	Slug          *string          `json:"slug" binding:"omitempty,min=1"`
	Description   *string          `json:"description" binding:"omitempty,min=1"`
	Category      *string          `json:"category"`
	Price         *decimal.Decimal `json:"price"`
	OriginalPrice *decimal.Decimal `json:"originalPrice"`
	Images        []string         `json:"images" binding:"omitempty,min=1,dive,url"`
	Badge         *string          `json:"badge" binding:"omitempty,oneof='Hot Deal' New Sale Featured 'Limited Offer'"`
	FreeShipping  *bool            `json:"freeShipping"`
	FreeGift      *bool            `json:"freeGift"`
	IsNewArrivals *bool            `json:"isNewArrivals"`
	IsBestDeal    *bool            `json:"isBestDeal"`
	Stock         *bool            `json:"stock"`
	Status        *string          `json:"status" binding:"omitempty,oneof=enable disable"`
	Meta          *ProductMeta     `json:"meta"`
}

// ProductListQuery holds the query string of the storefront listing
type ProductListQuery struct {
	Search    string `form:"search"`
	Category  string `form:"category"`
	Page      int    `form:"page"`
	Limit     int    `form:"limit"`
	SortOrder string `form:"sortOrder"`
}

// ProductSearchQuery holds the query string of the full-text search endpoint
type ProductSearchQuery struct {
	Q     string `form:"q"`
	Page  int    `form:"page"`
	Limit int    `form:"limit"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID            uuid.UUID            `json:"id"`
	Name          string               `json:"name"`
	Slug          string               `json:"slug"`
	Description   string               `json:"description"`
	CategoryID    uuid.UUID            `json:"categoryId"`
	Category      *CategoryRefResponse `json:"category,omitempty"`
	Price         float64              `json:"price"`
	OriginalPrice float64              `json:"originalPrice"`
	Discount      int64                `json:"discount"`
	Images        []string             `json:"images"`
	Badge         string               `json:"badge,omitempty"`
	FreeShipping  bool                 `json:"freeShipping"`
	FreeGift      bool                 `json:"freeGift"`
	IsNewArrivals bool                 `json:"isNewArrivals"`
	IsBestDeal    bool                 `json:"isBestDeal"`
	Stock         bool                 `json:"stock"`
	Status        string               `json:"status"`
	Meta          ProductMeta          `json:"meta"`
	CreatedAt     time.Time            `json:"createdAt"`
	UpdatedAt     time.Time            `json:"updatedAt"`
}

// ListMeta is the pagination block of a product listing
type ListMeta struct {
	Page       int    `json:"page"`
	Limit      int    `json:"limit"`
	Total      int64  `json:"total"`
	TotalPages int    `json:"totalPages"`
	SortOrder  string `json:"sortOrder,omitempty"`
}

// ProductListResponse is the paginated listing payload
type ProductListResponse struct {
	Meta ListMeta          `json:"meta"`
	Data []ProductResponse `json:"data"`
}

// ToProductResponse converts a domain product to a response DTO
func ToProductResponse(p *catalog.Product) ProductResponse {
	resp := ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		Slug:          p.Slug,
		Description:   p.Description,
		CategoryID:    p.CategoryID,
		Price:         p.Price.InexactFloat64(),
		OriginalPrice: p.OriginalPrice.InexactFloat64(),
		Discount:      p.Discount,
		Images:        p.Images,
		Badge:         string(p.Badge),
		FreeShipping:  p.FreeShipping,
		FreeGift:      p.FreeGift,
		IsNewArrivals: p.IsNewArrivals,
		IsBestDeal:    p.IsBestDeal,
		Stock:         p.Stock,
		Status:        string(p.Status),
		Meta: ProductMeta{
			Title:       p.Meta.Title,
			Description: p.Meta.Description,
			Keyword:     p.Meta.Keywords,
		},
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	if resp.Images == nil {
		resp.Images = []string{}
	}
	if resp.Meta.Keyword == nil {
		resp.Meta.Keyword = []string{}
	}
	if p.Category != nil {
		resp.Category = &CategoryRefResponse{ID: p.Category.ID, Name: p.Category.Name, Photo: p.Category.Photo}
	}
	return resp
}

// ToProductResponses converts a slice of products
func ToProductResponses(products []catalog.Product) []ProductResponse {
	out := make([]ProductResponse, len(products))
	for i := range products {
		out[i] = ToProductResponse(&products[i])
	}
	return out
}

func (m ProductMeta) toDomain() catalog.Meta {
	keywords := m.Keyword
	if keywords == nil {
		keywords = []string{}
	}
	return catalog.Meta{Title: m.Title, Description: m.Description, Keywords: keywords}
}
