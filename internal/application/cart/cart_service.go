package cart

import (
	"context"

	"github.com/dotmart/backend/internal/domain/cart"
	"github.com/dotmart/backend/internal/domain/catalog"
	"github.com/dotmart/backend/internal/domain/identity"
	"github.com/dotmart/backend/internal/domain/shared"
	"github.com/dotmart/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CartService handles cart line operations
type CartService struct {
	cartRepo       cart.CartRepository
	productRepo    catalog.ProductRepository
	userRepo       identity.UserRepository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewCartService creates a new CartService
func NewCartService(
	cartRepo cart.CartRepository,
	productRepo catalog.ProductRepository,
	userRepo identity.UserRepository,
	eventPublisher shared.EventPublisher,
	logger *zap.Logger,
) *CartService {
	if eventPublisher == nil {
		eventPublisher = shared.NopPublisher{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CartService{
		cartRepo:       cartRepo,
		productRepo:    productRepo,
		userRepo:       userRepo,
		eventPublisher: eventPublisher,
		logger:         logger,
	}
}

// AddToCart inserts a line for (user, product) or increments the existing one,
// then records the line id on the user's cart list.
func (s *CartService) AddToCart(ctx context.Context, actingUser uuid.UUID, req AddToCartRequest) (*CartItemResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "cart", "add")
	defer span.End()

	userID := actingUser
	if req.User != "" {
		id, err := uuid.Parse(req.User)
		if err != nil {
			return nil, shared.InvalidID("user", req.User)
		}
		userID = id
	}
	productID, err := uuid.Parse(req.Product)
	if err != nil {
		return nil, shared.InvalidID("product", req.Product)
	}
	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}
	if err := cart.ValidateQuantity(quantity); err != nil {
		return nil, err
	}

	telemetry.SetAttributes(span,
		telemetry.SpanAttrUserID, userID.String(),
		telemetry.SpanAttrProductID, productID.String(),
		telemetry.SpanAttrQuantity, quantity,
	)

	if _, err := s.productRepo.FindByID(ctx, productID); err != nil {
		return nil, err
	}

	item, err := s.cartRepo.AddOrIncrement(ctx, userID, productID, quantity)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if err := s.userRepo.AddCartItem(ctx, userID, item.ID); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.publish(ctx, cart.NewCartItemAddedEvent(item, quantity))

	resp := ToCartItemResponse(item)
	return &resp, nil
}

// GetUserCart returns the user's lines joined with their products and the cart total.
// Lines whose product no longer exists are skipped.
func (s *CartService) GetUserCart(ctx context.Context, userID uuid.UUID) (*CartResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "cart", "get",
		telemetry.WithAttribute(telemetry.SpanAttrUserID, userID.String()))
	defer span.End()

	items, err := s.cartRepo.FindByUser(ctx, userID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	resp := &CartResponse{Items: make([]CartLineResponse, 0, len(items)), CartTotal: decimal.Zero.StringFixed(2)}
	if len(items) == 0 {
		return resp, nil
	}

	ids := make([]uuid.UUID, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ProductID)
	}
	products, err := s.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	byID := make(map[uuid.UUID]*catalog.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	total := decimal.Zero
	for _, it := range items {
		p, ok := byID[it.ProductID]
		if !ok {
			s.logger.Debug("skipping cart line with missing product",
				zap.String("cart_item_id", it.ID.String()), zap.String("product_id", it.ProductID.String()))
			continue
		}
		lineTotal := p.Price.Mul(decimal.NewFromInt(int64(it.Quantity)))
		total = total.Add(lineTotal)

		images := p.Images
		if images == nil {
			images = []string{}
		}
		resp.Items = append(resp.Items, CartLineResponse{
			ID:   it.ID,
			User: it.UserID,
			Product: CartProductResponse{
				ID:     p.ID,
				Name:   p.Name,
				Images: images,
				Price:  p.Price.InexactFloat64(),
				Stock:  p.Stock,
			},
			Quantity:  it.Quantity,
			ItemTotal: lineTotal.InexactFloat64(),
			CreatedAt: it.CreatedAt,
			UpdatedAt: it.UpdatedAt,
		})
	}
	resp.CartTotal = total.StringFixed(2)
	telemetry.SetAttributes(span, telemetry.SpanAttrAmount, resp.CartTotal)
	return resp, nil
}

// UpdateCartItem replaces the quantity of one line
func (s *CartService) UpdateCartItem(ctx context.Context, id uuid.UUID, quantity int) (*CartItemResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "cart", "update",
		telemetry.WithAttribute(telemetry.SpanAttrCartItemID, id.String()),
		telemetry.WithAttribute(telemetry.SpanAttrQuantity, quantity))
	defer span.End()

	if err := cart.ValidateQuantity(quantity); err != nil {
		return nil, err
	}
	item, err := s.cartRepo.UpdateQuantity(ctx, id, quantity)
	if err != nil {
		return nil, err
	}
	resp := ToCartItemResponse(item)
	return &resp, nil
}

// RemoveCartItem deletes one line and returns it.
// The owner's cart list keeps the stale id.
func (s *CartService) RemoveCartItem(ctx context.Context, id uuid.UUID) (*CartItemResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "cart", "remove",
		telemetry.WithAttribute(telemetry.SpanAttrCartItemID, id.String()))
	defer span.End()

	item, err := s.cartRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.cartRepo.Delete(ctx, id); err != nil {
		return nil, err
	}
	resp := ToCartItemResponse(item)
	return &resp, nil
}

// ClearUserCart deletes every line of the user and empties the user's cart list
func (s *CartService) ClearUserCart(ctx context.Context, userID uuid.UUID) error {
	ctx, span := telemetry.StartServiceSpan(ctx, "cart", "clear",
		telemetry.WithAttribute(telemetry.SpanAttrUserID, userID.String()))
	defer span.End()

	removed, err := s.cartRepo.DeleteByUser(ctx, userID)
	if err != nil {
		telemetry.RecordError(span, err)
		return err
	}
	if err := s.userRepo.ClearCart(ctx, userID); err != nil {
		telemetry.RecordError(span, err)
		return err
	}

	s.publish(ctx, cart.NewCartClearedEvent(userID, removed))
	return nil
}

func (s *CartService) publish(ctx context.Context, events ...shared.DomainEvent) {
	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		s.logger.Warn("failed to publish cart events", zap.Error(err))
	}
}
