package identity

import (
	"context"

	"github.com/dotmart/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// UserRepository defines the interface for user persistence
type UserRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindByEmail expects a normalized email
	FindByEmail(ctx context.Context, email string) (*User, error)

	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// List returns one page newest first and the total count
	List(ctx context.Context, page shared.Pagination) ([]User, int64, error)

	Save(ctx context.Context, user *User) error

	Delete(ctx context.Context, id uuid.UUID) error

	// AddCartItem appends a cart line id to the user's cart list if absent
	AddCartItem(ctx context.Context, userID, cartItemID uuid.UUID) error

	// ClearCart empties the user's cart list
	ClearCart(ctx context.Context, userID uuid.UUID) error

	// AddOrder appends an order id to the user's order history
	AddOrder(ctx context.Context, userID, orderID uuid.UUID) error
}
