package identity

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dotmart/backend/internal/domain/shared"
	"github.com/dotmart/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// DefaultPhotoURL is assigned when a user registers without a photo
const DefaultPhotoURL = "https://i.ibb.co.com/1fyRdSjb/demo-user-logo.png"

const (
	MinNameLength     = 3
	MaxNameLength     = 50
	MinPasswordLength = 6
)

// Role is the authorization role of a user
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// IsValid reports whether r is a known role
func (r Role) IsValid() bool {
	return r == RoleUser || r == RoleAdmin
}

// Status is the account status of a user. INACTIVE users are blocked.
type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusInactive Status = "INACTIVE"
)

// IsValid reports whether s is a known status
func (s Status) IsValid() bool {
	return s == StatusActive || s == StatusInactive
}

// PasswordHasher hashes and verifies passwords
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) bool
}

// User is a storefront account
type User struct {
	shared.BaseAggregateRoot
	Name         string
	Email        string
	PasswordHash string
	PhoneNumber  string
	PhotoURL     string
	Role         Role
	Status       Status

	// Cart and OrderHistory are denormalized back-references and may drift from the cart and order tables
	Cart         []uuid.UUID
	OrderHistory []uuid.UUID
}

// Profile is the input for NewUser
type Profile struct {
	Name        string
	Email       string
	Password    string
	PhoneNumber string
	PhotoURL    string
	Role        Role
	Status      Status
}

// NewUser validates the profile, hashes the password and returns the user.
// Role defaults to USER and status to ACTIVE.
func NewUser(p Profile, hasher PasswordHasher) (*User, error) {
	u := &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              strings.TrimSpace(p.Name),
		Email:             valueobject.NormalizeEmail(p.Email),
		PhoneNumber:       strings.TrimSpace(p.PhoneNumber),
		PhotoURL:          p.PhotoURL,
		Role:              p.Role,
		Status:            p.Status,
		Cart:              []uuid.UUID{},
		OrderHistory:      []uuid.UUID{},
	}
	if u.PhotoURL == "" {
		u.PhotoURL = DefaultPhotoURL
	}
	if u.Role == "" {
		u.Role = RoleUser
	}
	if u.Status == "" {
		u.Status = StatusActive
	}
	if err := u.validate(); err != nil {
		return nil, err
	}
	if err := u.SetPassword(p.Password, hasher); err != nil {
		return nil, err
	}
	u.ClearDomainEvents()
	u.AddDomainEvent(NewUserCreatedEvent(u))
	return u, nil
}

// ProfilePatch carries the fields a profile update may change. Role and status are not patchable.
type ProfilePatch struct {
	Name        *string
	Email       *string
	Password    *string
	PhoneNumber *string
	PhotoURL    *string
}

// ApplyPatch validates and applies a profile update. A new password is re-hashed.
func (u *User) ApplyPatch(p ProfilePatch, hasher PasswordHasher) error {
	next := *u
	if p.Name != nil {
		next.Name = strings.TrimSpace(*p.Name)
	}
	if p.Email != nil {
		next.Email = valueobject.NormalizeEmail(*p.Email)
	}
	if p.PhoneNumber != nil {
		next.PhoneNumber = strings.TrimSpace(*p.PhoneNumber)
	}
	if p.PhotoURL != nil {
		next.PhotoURL = *p.PhotoURL
	}
	if err := next.validate(); err != nil {
		return err
	}
	if p.Password != nil {
		if err := next.SetPassword(*p.Password, hasher); err != nil {
			return err
		}
	}
	*u = next
	u.UpdatedAt = time.Now()
	return nil
}

// SetPassword validates and hashes a new password
func (u *User) SetPassword(password string, hasher PasswordHasher) error {
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return shared.Validation("Password must be at least 6 characters")
	}
	hash, err := hasher.Hash(password)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	u.UpdatedAt = time.Now()
	return nil
}

// VerifyPassword reports whether password matches the stored hash
func (u *User) VerifyPassword(password string, hasher PasswordHasher) bool {
	return hasher.Compare(u.PasswordHash, password)
}

// Block marks the user INACTIVE. Admins cannot be blocked.
func (u *User) Block() error {
	if u.Role == RoleAdmin {
		return shared.Forbidden("Admin users cannot be blocked")
	}
	if u.Status == StatusInactive {
		return shared.BusinessRule("User is already blocked")
	}
	u.Status = StatusInactive
	u.UpdatedAt = time.Now()
	u.AddDomainEvent(NewUserBlockedEvent(u))
	return nil
}

// Unblock marks the user ACTIVE
func (u *User) Unblock() {
	u.Status = StatusActive
	u.UpdatedAt = time.Now()
	u.AddDomainEvent(NewUserUnblockedEvent(u))
}

// IsActive reports whether the user may log in
func (u *User) IsActive() bool {
	return u.Status == StatusActive
}

// AddCartItem appends a cart line id unless it is already present
func (u *User) AddCartItem(id uuid.UUID) bool {
	for _, existing := range u.Cart {
		if existing == id {
			return false
		}
	}
	u.Cart = append(u.Cart, id)
	return true
}

// ClearCart empties the cart back-reference list
func (u *User) ClearCart() {
	u.Cart = []uuid.UUID{}
}

// AddOrder appends an order id to the order history
func (u *User) AddOrder(id uuid.UUID) {
	u.OrderHistory = append(u.OrderHistory, id)
}

func (u *User) validate() error {
	n := utf8.RuneCountInString(u.Name)
	if n < MinNameLength {
		return shared.Validation("Name must be at least 3 characters")
	}
	if n > MaxNameLength {
		return shared.Validation("Name cannot exceed 50 characters")
	}
	if !valueobject.IsEmail(u.Email) {
		return shared.Validation("Invalid email address")
	}
	if !valueobject.IsPhoneNumber(u.PhoneNumber) {
		return shared.Validation("Phone number must be between 10 and 15 digits")
	}
	if !valueobject.IsImageURL(u.PhotoURL) {
		return shared.Validation("Photo must be a valid image URL (jpg, jpeg, png, webp)")
	}
	if !u.Role.IsValid() {
		return shared.Validation("Invalid role")
	}
	if !u.Status.IsValid() {
		return shared.Validation("Invalid user status")
	}
	return nil
}
