package catalog

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dotmart/backend/internal/domain/shared"
	"github.com/dotmart/backend/internal/domain/shared/valueobject"
)

const (
	MinCategoryNameLength = 2
	MaxCategoryNameLength = 50
)

// Category groups products in the storefront
type Category struct {
	shared.BaseAggregateRoot
	Name     string
	Photo    string
	IsActive bool
}

// NewCategory creates an active category
func NewCategory(name, photo string) (*Category, error) {
	name = strings.TrimSpace(name)
	if err := validateCategoryName(name); err != nil {
		return nil, err
	}
	if err := validateCategoryPhoto(photo); err != nil {
		return nil, err
	}

	return &Category{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Photo:             photo,
		IsActive:          true,
	}, nil
}

// CategoryPatch carries the fields an update may change. Nil fields are left untouched.
type CategoryPatch struct {
	Name     *string
	Photo    *string
	IsActive *bool
}

// Apply validates and applies a patch
func (c *Category) Apply(p CategoryPatch) error {
	if p.Name != nil {
		name := strings.TrimSpace(*p.Name)
		if err := validateCategoryName(name); err != nil {
			return err
		}
		c.Name = name
	}
	if p.Photo != nil {
		if err := validateCategoryPhoto(*p.Photo); err != nil {
			return err
		}
		c.Photo = *p.Photo
	}
	if p.IsActive != nil {
		c.IsActive = *p.IsActive
	}
	c.UpdatedAt = time.Now()
	return nil
}

// Ref returns the summary embedded in product responses
func (c *Category) Ref() *CategoryRef {
	return &CategoryRef{ID: c.ID, Name: c.Name, Photo: c.Photo}
}

func validateCategoryName(name string) error {
	n := utf8.RuneCountInString(name)
	if n == 0 {
		return shared.Validation("Category name is required")
	}
	if n < MinCategoryNameLength {
		return shared.Validation("Category name must be at least 2 characters")
	}
	if n > MaxCategoryNameLength {
		return shared.Validation("Category name cannot exceed 50 characters")
	}
	return nil
}

func validateCategoryPhoto(photo string) error {
	if photo == "" {
		return shared.Validation("Category photo is required")
	}
	if !valueobject.IsImageURL(photo) {
		return shared.Validation("Photo must be a valid image URL (jpg, jpeg, png, webp)")
	}
	return nil
}
