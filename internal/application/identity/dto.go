package identity

import (
	"time"

	"github.com/dotmart/backend/internal/domain/identity"
	"github.com/google/uuid"
)

// CreateUserRequest represents a public sign-up. Role and status take their defaults.
type CreateUserRequest struct {
	Name        string `json:"name" binding:"required,min=3,max=50"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=6"`
	PhoneNumber string `json:"phoneNumber" binding:"required,phone"`
	PhotoURL    string `json:"photoUrl" binding:"omitempty,imageurl"`
}

// UpdateUserRequest represents a partial profile update
type UpdateUserRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=3,max=50"`
	Email       *string `json:"email" binding:"omitempty,email"`
	Password    *string `json:"password" binding:"omitempty,min=6"`
	PhoneNumber *string `json:"phoneNumber" binding:"omitempty,phone"`
	PhotoURL    *string `json:"photoUrl" binding:"omitempty,imageurl"`
}

// UserListQuery holds the pagination query of the user listing
type UserListQuery struct {
	Page  int `form:"page"`
	Limit int `form:"limit"`
}

// UserResponse represents a user in API responses. The password hash is never included.
type UserResponse struct {
	ID           uuid.UUID   `json:"id"`
	Name         string      `json:"name"`
	Email        string      `json:"email"`
	PhoneNumber  string      `json:"phoneNumber"`
	PhotoURL     string      `json:"photoUrl"`
	Role         string      `json:"role"`
	UserStatus   string      `json:"userStatus"`
	Cart         []uuid.UUID `json:"cart"`
	OrderHistory []uuid.UUID `json:"orderHistory"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

// UserCartProduct is the product summary of a populated cart line
type UserCartProduct struct {
	ID     uuid.UUID `json:"id"`
	Name   string    `json:"name"`
	Images []string  `json:"images"`
	Price  float64   `json:"price"`
	Stock  bool      `json:"stock"`
}

// UserCartLine is a cart line populated onto a user profile
type UserCartLine struct {
	ID       uuid.UUID        `json:"id"`
	Product  *UserCartProduct `json:"product"`
	Quantity int              `json:"quantity"`
}

// UserDetailResponse is a user profile with its cart lines resolved
type UserDetailResponse struct {
	ID           uuid.UUID      `json:"id"`
	Name         string         `json:"name"`
	Email        string         `json:"email"`
	PhoneNumber  string         `json:"phoneNumber"`
	PhotoURL     string         `json:"photoUrl"`
	Role         string         `json:"role"`
	UserStatus   string         `json:"userStatus"`
	Cart         []UserCartLine `json:"cart"`
	OrderHistory []uuid.UUID    `json:"orderHistory"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

// UserListMeta is the pagination block of the user listing
type UserListMeta struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Skip       int   `json:"skip"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// UserListResponse is one page of users
type UserListResponse struct {
	Meta UserListMeta   `json:"meta"`
	Data []UserResponse `json:"data"`
}

// LoginRequest represents a credentials login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResult contains the token pair of a successful login
type LoginResult struct {
	AccessToken           string
	RefreshToken          string
	AccessTokenExpiresAt  time.Time
	RefreshTokenExpiresAt time.Time
}

// RefreshResult contains a freshly issued access token
type RefreshResult struct {
	AccessToken string
	ExpiresAt   time.Time
}

// ToUserResponse converts a domain user to a response DTO
func ToUserResponse(u *identity.User) UserResponse {
	return UserResponse{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		PhoneNumber:  u.PhoneNumber,
		PhotoURL:     u.PhotoURL,
		Role:         string(u.Role),
		UserStatus:   string(u.Status),
		Cart:         nonNilIDs(u.Cart),
		OrderHistory: nonNilIDs(u.OrderHistory),
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func nonNilIDs(ids []uuid.UUID) []uuid.UUID {
	if ids == nil {
		return []uuid.UUID{}
	}
	return ids
}
