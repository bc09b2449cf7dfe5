package cart

import (
	"context"

	"github.com/google/uuid"
)

// CartRepository defines the interface for cart line persistence
type CartRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*CartItem, error)

	// FindByUser returns the user's lines oldest first
	FindByUser(ctx context.Context, userID uuid.UUID) ([]CartItem, error)

	// AddOrIncrement inserts a line for (user, product) or adds quantity to the existing one.
	// It returns the resulting line.
	AddOrIncrement(ctx context.Context, userID, productID uuid.UUID, quantity int) (*CartItem, error)

	UpdateQuantity(ctx context.Context, id uuid.UUID, quantity int) (*CartItem, error)

	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteByUser removes every line of the user and returns how many were removed
	DeleteByUser(ctx context.Context, userID uuid.UUID) (int64, error)
}
