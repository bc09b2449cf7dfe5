package content

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dotmart/backend/internal/domain/shared"
	"github.com/dotmart/backend/internal/domain/shared/valueobject"
)

// SocialPlatform is where a reviewer can be found
type SocialPlatform string

const (
	PlatformTwitter   SocialPlatform = "twitter"
	PlatformFacebook  SocialPlatform = "facebook"
	PlatformLinkedIn  SocialPlatform = "linkedin"
	PlatformInstagram SocialPlatform = "instagram"
	PlatformYoutube   SocialPlatform = "Youtube"
)

// IsValid reports whether p is a supported platform
func (p SocialPlatform) IsValid() bool {
	switch p {
	case PlatformTwitter, PlatformFacebook, PlatformLinkedIn, PlatformInstagram, PlatformYoutube:
		return true
	}
	return false
}

// Review is a customer testimonial shown on the home page
type Review struct {
	shared.BaseEntity
	Name       string
	UserImage  string
	Platform   SocialPlatform
	Rating     int
	Text       string
	IsApproved bool
}

// ReviewFields is the input for NewReview and the patch for Review.Apply
type ReviewFields struct {
	Name       *string
	UserImage  *string
	Platform   *SocialPlatform
	Rating     *int
	Text       *string
	IsApproved *bool
}

// NewReview validates and creates an approved review unless IsApproved says otherwise
func NewReview(f ReviewFields) (*Review, error) {
	r := &Review{BaseEntity: shared.NewBaseEntity(), IsApproved: true}
	if err := r.Apply(f); err != nil {
		return nil, err
	}
	return r, nil
}

// Apply validates and applies the non-nil fields
func (r *Review) Apply(f ReviewFields) error {
	next := *r
	if f.Name != nil {
		next.Name = strings.TrimSpace(*f.Name)
	}
	if f.UserImage != nil {
		next.UserImage = *f.UserImage
	}
	if f.Platform != nil {
		next.Platform = *f.Platform
	}
	if f.Rating != nil {
		next.Rating = *f.Rating
	}
	if f.Text != nil {
		next.Text = strings.TrimSpace(*f.Text)
	}
	if f.IsApproved != nil {
		next.IsApproved = *f.IsApproved
	}
	if err := next.validate(); err != nil {
		return err
	}
	*r = next
	r.UpdatedAt = time.Now()
	return nil
}

// Approve marks the review as approved
func (r *Review) Approve() {
	r.IsApproved = true
	r.UpdatedAt = time.Now()
}

func (r *Review) validate() error {
	n := utf8.RuneCountInString(r.Name)
	switch {
	case n == 0:
		return shared.Validation("Reviewer name is required")
	case n < 2:
		return shared.Validation("Name must be at least 2 characters")
	case n > 50:
		return shared.Validation("Name cannot exceed 50 characters")
	}
	if !valueobject.IsImageURL(r.UserImage) {
		return shared.Validation("Please provide a valid image URL")
	}
	if !r.Platform.IsValid() {
		return shared.Validation("Social platform is required")
	}
	if r.Rating < 1 {
		return shared.Validation("Rating must be at least 1")
	}
	if r.Rating > 5 {
		return shared.Validation("Rating cannot exceed 5")
	}
	t := utf8.RuneCountInString(r.Text)
	if t < 10 {
		return shared.Validation("Review must be at least 10 characters")
	}
	if t > 500 {
		return shared.Validation("Review cannot exceed 500 characters")
	}
	return nil
}
