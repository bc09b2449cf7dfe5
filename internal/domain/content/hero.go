package content

import (
	"strings"
	"time"

	"github.com/dotmart/backend/internal/domain/shared"
	"github.com/dotmart/backend/internal/domain/shared/valueobject"
)

// HeroImage is one slide or side banner of the hero section
type HeroImage struct {
	Image string `json:"image"`
	Alt   string `json:"alt"`
	Link  string `json:"link,omitempty"`
}

// Hero is the home page banner section. At most one exists.
type Hero struct {
	shared.BaseEntity
	CarouselImages []HeroImage
	SideImages     []HeroImage
	IsActive       bool
}

// NewHero validates and creates an active hero section
func NewHero(carousel, side []HeroImage, isActive *bool) (*Hero, error) {
	h := &Hero{BaseEntity: shared.NewBaseEntity(), IsActive: true}
	if err := h.Apply(carousel, side, isActive); err != nil {
		return nil, err
	}
	return h, nil
}

// Apply replaces the image lists that are non-nil and validates the result
func (h *Hero) Apply(carousel, side []HeroImage, isActive *bool) error {
	next := *h
	if carousel != nil {
		next.CarouselImages = normalizeHeroImages(carousel)
	}
	if side != nil {
		next.SideImages = normalizeHeroImages(side)
	}
	if isActive != nil {
		next.IsActive = *isActive
	}
	if len(next.CarouselImages) == 0 {
		return shared.Validation("Carousel images are required")
	}
	if len(next.SideImages) == 0 {
		return shared.Validation("Side images are required")
	}
	for _, img := range append(append([]HeroImage{}, next.CarouselImages...), next.SideImages...) {
		if !valueobject.IsImageURL(img.Image) {
			return shared.Validation("Invalid image URL")
		}
		if img.Alt == "" {
			return shared.Validation("Image alt text is required")
		}
	}
	*h = next
	h.UpdatedAt = time.Now()
	return nil
}

func normalizeHeroImages(in []HeroImage) []HeroImage {
	out := make([]HeroImage, len(in))
	for i, img := range in {
		out[i] = HeroImage{
			Image: img.Image,
			Alt:   strings.TrimSpace(img.Alt),
			Link:  strings.TrimSpace(img.Link),
		}
	}
	return out
}
