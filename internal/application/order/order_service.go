package order

import (
	"context"
	"errors"

	"github.com/dotmart/backend/internal/domain/catalog"
	"github.com/dotmart/backend/internal/domain/identity"
	"github.com/dotmart/backend/internal/domain/order"
	"github.com/dotmart/backend/internal/domain/shared"
	"github.com/dotmart/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// OrderService handles checkout and order administration
type OrderService struct {
	orderRepo      order.OrderRepository
	userRepo       identity.UserRepository
	productRepo    catalog.ProductRepository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewOrderService creates a new OrderService
func NewOrderService(
	orderRepo order.OrderRepository,
	userRepo identity.UserRepository,
	productRepo catalog.ProductRepository,
	eventPublisher shared.EventPublisher,
	logger *zap.Logger,
) *OrderService {
	if eventPublisher == nil {
		eventPublisher = shared.NopPublisher{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderService{
		orderRepo:      orderRepo,
		userRepo:       userRepo,
		productRepo:    productRepo,
		eventPublisher: eventPublisher,
		logger:         logger,
	}
}

// Create persists the order as sent and appends it to the user's order history.
// Prices and the total are not re-checked against the catalog and stock is not reserved.
func (s *OrderService) Create(ctx context.Context, actingUser uuid.UUID, req CreateOrderRequest) (*OrderResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "order", "create")
	defer span.End()

	userID := actingUser
	if req.User != "" {
		id, err := uuid.Parse(req.User)
		if err != nil {
			return nil, shared.InvalidID("user", req.User)
		}
		userID = id
	}

	items := make([]order.Item, 0, len(req.Items))
	for _, it := range req.Items {
		productID, err := uuid.Parse(it.Product)
		if err != nil {
			return nil, shared.InvalidID("items.product", it.Product)
		}
		item := order.Item{ProductID: productID, Quantity: it.Quantity}
		if it.Price != nil {
			item.Price = *it.Price
		}
		items = append(items, item)
	}

	total := decimal.Zero
	if req.TotalAmount != nil {
		total = *req.TotalAmount
	}

	o, err := order.NewOrder(userID, items, total,
		order.PaymentStatus(req.PaymentStatus), order.Status(req.OrderStatus))
	if err != nil {
		return nil, err
	}

	if err := s.orderRepo.Create(ctx, o); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if err := s.userRepo.AddOrder(ctx, userID, o.ID); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	telemetry.SetAttributes(span,
		telemetry.SpanAttrOrderID, o.ID.String(),
		telemetry.SpanAttrUserID, userID.String(),
		telemetry.SpanAttrAmount, o.TotalAmount.String(),
	)
	s.publish(ctx, o)

	resp := toOrderResponse(o, nil, nil)
	return &resp, nil
}

// List returns every order newest first (admin)
func (s *OrderService) List(ctx context.Context) ([]OrderResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "order", "list")
	defer span.End()

	orders, err := s.orderRepo.FindAll(ctx)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	return s.populate(ctx, orders)
}

// GetByID returns one order with its user and products
func (s *OrderService) GetByID(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "order", "get",
		telemetry.WithAttribute(telemetry.SpanAttrOrderID, id.String()))
	defer span.End()

	o, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp, err := s.populate(ctx, []order.Order{*o})
	if err != nil {
		return nil, err
	}
	return &resp[0], nil
}

// GetUserOrders returns the user's orders newest first
func (s *OrderService) GetUserOrders(ctx context.Context, userID uuid.UUID) ([]OrderResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "order", "list_by_user",
		telemetry.WithAttribute(telemetry.SpanAttrUserID, userID.String()))
	defer span.End()

	orders, err := s.orderRepo.FindByUser(ctx, userID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	return s.populate(ctx, orders)
}

// UpdateOrderStatus writes the fulfilment status. Any status may follow any other.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status string) (*OrderResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "order", "update_status",
		telemetry.WithAttribute(telemetry.SpanAttrOrderID, id.String()),
		telemetry.WithAttribute(telemetry.SpanAttrStatus, status))
	defer span.End()

	return s.updateStatuses(ctx, id, func(o *order.Order) error {
		return o.ChangeStatus(order.Status(status))
	})
}

// UpdatePaymentStatus writes the payment status. Any status may follow any other.
func (s *OrderService) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status string) (*OrderResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "order", "update_payment_status",
		telemetry.WithAttribute(telemetry.SpanAttrOrderID, id.String()),
		telemetry.WithAttribute(telemetry.SpanAttrStatus, status))
	defer span.End()

	return s.updateStatuses(ctx, id, func(o *order.Order) error {
		return o.ChangePaymentStatus(order.PaymentStatus(status))
	})
}

func (s *OrderService) updateStatuses(ctx context.Context, id uuid.UUID, change func(*order.Order) error) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := change(o); err != nil {
		return nil, err
	}
	if err := s.orderRepo.UpdateStatuses(ctx, o); err != nil {
		return nil, err
	}
	s.publish(ctx, o)

	resp := toOrderResponse(o, nil, nil)
	return &resp, nil
}

// populate joins users and products onto orders. Missing references are left as bare ids.
func (s *OrderService) populate(ctx context.Context, orders []order.Order) ([]OrderResponse, error) {
	users := make(map[uuid.UUID]*identity.User)
	productIDs := make([]uuid.UUID, 0)
	seenProducts := make(map[uuid.UUID]struct{})

	for i := range orders {
		uid := orders[i].UserID
		if _, ok := users[uid]; !ok {
			u, err := s.userRepo.FindByID(ctx, uid)
			if err != nil && !errors.Is(err, shared.ErrNotFound) {
				return nil, err
			}
			users[uid] = u
		}
		for _, pid := range orders[i].ProductIDs() {
			if _, ok := seenProducts[pid]; ok {
				continue
			}
			seenProducts[pid] = struct{}{}
			productIDs = append(productIDs, pid)
		}
	}

	products := make(map[uuid.UUID]*catalog.Product, len(productIDs))
	if len(productIDs) > 0 {
		found, err := s.productRepo.FindByIDs(ctx, productIDs)
		if err != nil {
			return nil, err
		}
		for i := range found {
			products[found[i].ID] = &found[i]
		}
	}

	out := make([]OrderResponse, len(orders))
	for i := range orders {
		out[i] = toOrderResponse(&orders[i], users[orders[i].UserID], products)
	}
	return out, nil
}

func (s *OrderService) publish(ctx context.Context, o *order.Order) {
	events := o.PullDomainEvents()
	if len(events) == 0 {
		return
	}
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		s.logger.Warn("failed to publish order events",
			zap.String("order_id", o.ID.String()), zap.Error(err))
	}
}

func toOrderResponse(o *order.Order, user *identity.User, products map[uuid.UUID]*catalog.Product) OrderResponse {
	resp := OrderResponse{
		ID:            o.ID,
		User:          OrderUserResponse{ID: o.UserID},
		Items:         make([]OrderItemResponse, len(o.Items)),
		TotalAmount:   o.TotalAmount.InexactFloat64(),
		PaymentStatus: string(o.PaymentStatus),
		OrderStatus:   string(o.OrderStatus),
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
	if user != nil {
		resp.User.Name = user.Name
		resp.User.Email = user.Email
	}
	for i, it := range o.Items {
		ref := OrderProductResponse{ID: it.ProductID}
		if p, ok := products[it.ProductID]; ok {
			price := p.Price.InexactFloat64()
			ref.Name = p.Name
			ref.Images = p.Images
			ref.Price = &price
		}
		resp.Items[i] = OrderItemResponse{
			Product:  ref,
			Quantity: it.Quantity,
			Price:    it.Price.InexactFloat64(),
		}
	}
	return resp
}
