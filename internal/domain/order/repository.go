package order

import (
	"context"

	"github.com/google/uuid"
)

// OrderRepository defines the interface for order persistence
type OrderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// FindAll returns every order newest first
	FindAll(ctx context.Context) ([]Order, error)

	// FindByUser returns the user's orders newest first
	FindByUser(ctx context.Context, userID uuid.UUID) ([]Order, error)

	Create(ctx context.Context, order *Order) error

	// UpdateStatuses writes only the two status fields
	UpdateStatuses(ctx context.Context, order *Order) error
}
