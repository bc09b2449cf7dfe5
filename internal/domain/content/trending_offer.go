package content

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dotmart/backend/internal/domain/shared"
	"github.com/dotmart/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// TrendingOffer is a promoted product tile. CTALink points at a product.
type TrendingOffer struct {
	shared.BaseEntity
	Title       string
	Description string
	Image       string
	CTALink     uuid.UUID
	IsActive    bool
	Priority    int
}

// TrendingOfferFields is the input for NewTrendingOffer and the patch for Apply
type TrendingOfferFields struct {
	Title       *string
	Description *string
	Image       *string
	CTALink     *uuid.UUID
	IsActive    *bool
	Priority    *int
}

// NewTrendingOffer validates and creates an active offer
func NewTrendingOffer(f TrendingOfferFields) (*TrendingOffer, error) {
	o := &TrendingOffer{BaseEntity: shared.NewBaseEntity(), IsActive: true}
	if err := o.Apply(f); err != nil {
		return nil, err
	}
	return o, nil
}

// Apply validates and applies the non-nil fields
func (o *TrendingOffer) Apply(f TrendingOfferFields) error {
	next := *o
	if f.Title != nil {
		next.Title = strings.TrimSpace(*f.Title)
	}
	if f.Description != nil {
		next.Description = strings.TrimSpace(*f.Description)
	}
	if f.Image != nil {
		next.Image = *f.Image
	}
	if f.CTALink != nil {
		next.CTALink = *f.CTALink
	}
	if f.IsActive != nil {
		next.IsActive = *f.IsActive
	}
	if f.Priority != nil {
		next.Priority = *f.Priority
	}
	if err := next.validate(); err != nil {
		return err
	}
	*o = next
	o.UpdatedAt = time.Now()
	return nil
}

// Deactivate hides the offer. Offers are never hard-deleted.
func (o *TrendingOffer) Deactivate() {
	o.IsActive = false
	o.UpdatedAt = time.Now()
}

func (o *TrendingOffer) validate() error {
	n := utf8.RuneCountInString(o.Title)
	switch {
	case n == 0:
		return shared.Validation("Trending offer title is required")
	case n < 5:
		return shared.Validation("Title must be at least 5 characters")
	case n > 50:
		return shared.Validation("Title cannot exceed 50 characters")
	}
	if utf8.RuneCountInString(o.Description) > 100 {
		return shared.Validation("Description cannot exceed 100 characters")
	}
	if !valueobject.IsImageURL(o.Image) {
		return shared.Validation("Please provide a valid image URL")
	}
	if o.CTALink == uuid.Nil {
		return shared.Validation("CTA product id is required")
	}
	if o.Priority < 0 {
		return shared.Validation("Priority cannot be negative")
	}
	return nil
}
