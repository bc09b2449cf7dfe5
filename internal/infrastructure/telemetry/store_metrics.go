package telemetry

import (
	"context"
	"fmt"

	"github.com/dotmart/backend/internal/domain/cart"
	"github.com/dotmart/backend/internal/domain/order"
	"github.com/dotmart/backend/internal/domain/shared"
	"go.opentelemetry.io/otel/metric"
)

// StoreMetrics counts storefront activity. It subscribes to the event bus
// so services never call it directly.
type StoreMetrics struct {
	ordersPlaced   *Counter
	revenue        metric.Float64Counter
	cartAdds       *Counter
	statusChanges  *Counter
	paymentChanges *Counter
}

// NewStoreMetrics creates the storefront instruments on meter.
func NewStoreMetrics(meter metric.Meter) (*StoreMetrics, error) {
	m := &StoreMetrics{}
	var err error
	if m.ordersPlaced, err = NewCounter(meter, "store.orders.placed", "Orders placed", "{order}"); err != nil {
		return nil, err
	}
	if m.revenue, err = meter.Float64Counter("store.orders.revenue",
		metric.WithDescription("Order total amounts as submitted at checkout"),
		metric.WithUnit("{currency}"),
	); err != nil {
		return nil, fmt.Errorf("failed to create counter store.orders.revenue: %w", err)
	}
	if m.cartAdds, err = NewCounter(meter, "store.cart.items_added", "Units added to carts", "{item}"); err != nil {
		return nil, err
	}
	if m.statusChanges, err = NewCounter(meter, "store.orders.status_changes", "Order status writes", "{change}"); err != nil {
		return nil, err
	}
	if m.paymentChanges, err = NewCounter(meter, "store.orders.payment_changes", "Payment status writes", "{change}"); err != nil {
		return nil, err
	}
	return m, nil
}

// EventTypes implements shared.EventHandler.
func (m *StoreMetrics) EventTypes() []string {
	return []string{
		order.EventTypeOrderPlaced,
		order.EventTypeOrderStatusChanged,
		order.EventTypeOrderPaymentStatusChanged,
		cart.EventTypeCartItemAdded,
	}
}

// Handle implements shared.EventHandler.
func (m *StoreMetrics) Handle(ctx context.Context, event shared.DomainEvent) error {
	switch e := event.(type) {
	case *order.OrderPlacedEvent:
		m.ordersPlaced.Inc(ctx)
		amount, _ := e.TotalAmount.Float64()
		m.revenue.Add(ctx, amount)
	case *order.OrderStatusChangedEvent:
		m.statusChanges.Inc(ctx, AttrOrderStatus.String(string(e.To)))
	case *order.PaymentStatusChangedEvent:
		m.paymentChanges.Inc(ctx, AttrPaymentStatus.String(string(e.To)))
	case *cart.CartItemAddedEvent:
		m.cartAdds.Add(ctx, int64(e.Added))
	}
	return nil
}
