package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/dotmart/backend/internal/domain/order"
	"github.com/dotmart/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrder(t *testing.T, userID uuid.UUID, createdAt time.Time) *order.Order {
	t.Helper()
	o, err := order.NewOrder(userID, []order.Item{
		{ProductID: uuid.New(), Quantity: 2, Price: decimal.RequireFromString("25.50")},
		{ProductID: uuid.New(), Quantity: 1, Price: decimal.NewFromInt(45)},
	}, decimal.RequireFromString("96.00"), "", "")
	require.NoError(t, err)
	o.CreatedAt = createdAt
	return o
}

func TestGormOrderRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewGormOrderRepository(newTestDB(t))
	userID := uuid.New()
	base := time.Now().Add(-time.Hour)

	older := newTestOrder(t, userID, base)
	newer := newTestOrder(t, userID, base.Add(time.Minute))
	other := newTestOrder(t, uuid.New(), base.Add(2*time.Minute))
	for _, o := range []*order.Order{older, newer, other} {
		require.NoError(t, repo.Create(ctx, o))
	}

	t.Run("round-trips embedded items", func(t *testing.T) {
		got, err := repo.FindByID(ctx, older.ID)
		require.NoError(t, err)
		require.Len(t, got.Items, 2)
		assert.True(t, got.Items[0].Price.Equal(decimal.RequireFromString("25.5")))
		assert.Equal(t, 2, got.Items[0].Quantity)
		assert.True(t, got.TotalAmount.Equal(decimal.NewFromInt(96)))
		assert.Equal(t, order.PaymentStatusPending, got.PaymentStatus)
		assert.Equal(t, order.StatusProcessing, got.OrderStatus)
	})

	t.Run("lists newest first", func(t *testing.T) {
		mine, err := repo.FindByUser(ctx, userID)
		require.NoError(t, err)
		require.Len(t, mine, 2)
		assert.Equal(t, newer.ID, mine[0].ID)

		all, err := repo.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, other.ID, all[0].ID)
	})

	t.Run("updates statuses only", func(t *testing.T) {
		got, err := repo.FindByID(ctx, newer.ID)
		require.NoError(t, err)
		require.NoError(t, got.ChangeStatus(order.StatusDelivered))
		require.NoError(t, got.ChangePaymentStatus(order.PaymentStatusPaid))
		require.NoError(t, repo.UpdateStatuses(ctx, got))

		reloaded, err := repo.FindByID(ctx, newer.ID)
		require.NoError(t, err)
		assert.Equal(t, order.StatusDelivered, reloaded.OrderStatus)
		assert.Equal(t, order.PaymentStatusPaid, reloaded.PaymentStatus)
		assert.Len(t, reloaded.Items, 2)
	})

	t.Run("missing order", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.EqualError(t, err, "Order not found")

		ghost := newTestOrder(t, userID, time.Now())
		assert.True(t, shared.IsNotFound(repo.UpdateStatuses(ctx, ghost)))
	})
}
