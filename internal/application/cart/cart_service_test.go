package cart

import (
	"context"
	"testing"

	"github.com/dotmart/backend/internal/domain/cart"
	"github.com/dotmart/backend/internal/domain/catalog"
	"github.com/dotmart/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type cartFixture struct {
	cartRepo    *MockCartRepository
	productRepo *MockProductRepository
	userRepo    *MockUserRepository
	publisher   *MockEventPublisher
	svc         *CartService
}

func newCartFixture() *cartFixture {
	f := &cartFixture{
		cartRepo:    new(MockCartRepository),
		productRepo: new(MockProductRepository),
		userRepo:    new(MockUserRepository),
		publisher:   new(MockEventPublisher),
	}
	f.svc = NewCartService(f.cartRepo, f.productRepo, f.userRepo, f.publisher, nil)
	return f
}

func newProduct(t *testing.T, name, price string) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(catalog.ProductDetails{
		Name:          name,
		Description:   name + " description",
		CategoryID:    uuid.New(),
		Price:         decimal.RequireFromString(price),
		OriginalPrice: decimal.RequireFromString(price),
		Images:        []string{"https://cdn.example.com/" + name + ".jpg"},
		Stock:         true,
		Meta:          catalog.Meta{Title: name, Description: name},
	})
	require.NoError(t, err)
	return p
}

func newLine(t *testing.T, userID, productID uuid.UUID, qty int) *cart.CartItem {
	t.Helper()
	item, err := cart.NewCartItem(userID, productID, qty)
	require.NoError(t, err)
	return item
}

func TestCartService_AddToCart(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults quantity and user", func(t *testing.T) {
		f := newCartFixture()
		userID := uuid.New()
		product := newProduct(t, "mug", "12")
		line := newLine(t, userID, product.ID, 1)

		f.productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
		f.cartRepo.On("AddOrIncrement", mock.Anything, userID, product.ID, 1).Return(line, nil)
		f.userRepo.On("AddCartItem", mock.Anything, userID, line.ID).Return(nil)
		f.publisher.On("Publish", mock.Anything, mock.MatchedBy(func(events []shared.DomainEvent) bool {
			return len(events) == 1 && events[0].EventType() == cart.EventTypeCartItemAdded
		})).Return(nil)

		resp, err := f.svc.AddToCart(ctx, userID, AddToCartRequest{Product: product.ID.String()})
		require.NoError(t, err)
		assert.Equal(t, line.ID, resp.ID)
		assert.Equal(t, 1, resp.Quantity)
		f.cartRepo.AssertExpectations(t)
		f.userRepo.AssertExpectations(t)
		f.publisher.AssertExpectations(t)
	})

	t.Run("repeated add returns the incremented line", func(t *testing.T) {
		f := newCartFixture()
		userID := uuid.New()
		product := newProduct(t, "mug", "12")
		line := newLine(t, userID, product.ID, 5)

		f.productRepo.On("FindByID", mock.Anything, product.ID).Return(product, nil)
		f.cartRepo.On("AddOrIncrement", mock.Anything, userID, product.ID, 3).Return(line, nil)
		f.userRepo.On("AddCartItem", mock.Anything, userID, line.ID).Return(nil)
		f.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

		qty := 3
		resp, err := f.svc.AddToCart(ctx, uuid.New(), AddToCartRequest{
			User: userID.String(), Product: product.ID.String(), Quantity: &qty,
		})
		require.NoError(t, err)
		assert.Equal(t, 5, resp.Quantity)
		assert.Equal(t, userID, resp.User)
	})

	t.Run("rejects zero quantity", func(t *testing.T) {
		f := newCartFixture()
		qty := 0
		_, err := f.svc.AddToCart(ctx, uuid.New(), AddToCartRequest{Product: uuid.NewString(), Quantity: &qty})
		assert.EqualError(t, err, "Quantity must be at least 1")
		f.cartRepo.AssertNotCalled(t, "AddOrIncrement", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("malformed product id", func(t *testing.T) {
		f := newCartFixture()
		_, err := f.svc.AddToCart(ctx, uuid.New(), AddToCartRequest{Product: "abc"})
		var de *shared.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, shared.CodeInvalidID, de.Code)
		assert.Equal(t, "product", de.Field)
	})

	t.Run("unknown product", func(t *testing.T) {
		f := newCartFixture()
		id := uuid.New()
		f.productRepo.On("FindByID", mock.Anything, id).Return(nil, shared.NotFound("Product"))

		_, err := f.svc.AddToCart(ctx, uuid.New(), AddToCartRequest{Product: id.String()})
		assert.EqualError(t, err, "Product not found")
	})
}

func TestCartService_GetUserCart(t *testing.T) {
	ctx := context.Background()

	t.Run("computes line and cart totals", func(t *testing.T) {
		f := newCartFixture()
		userID := uuid.New()
		shirt := newProduct(t, "shirt", "25")
		jacket := newProduct(t, "jacket", "45")
		lines := []cart.CartItem{
			*newLine(t, userID, shirt.ID, 2),
			*newLine(t, userID, jacket.ID, 1),
		}

		f.cartRepo.On("FindByUser", mock.Anything, userID).Return(lines, nil)
		f.productRepo.On("FindByIDs", mock.Anything, []uuid.UUID{shirt.ID, jacket.ID}).
			Return([]catalog.Product{*jacket, *shirt}, nil)

		resp, err := f.svc.GetUserCart(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, "95.00", resp.CartTotal)
		require.Len(t, resp.Items, 2)
		assert.Equal(t, "shirt", resp.Items[0].Product.Name)
		assert.Equal(t, 50.0, resp.Items[0].ItemTotal)
		assert.Equal(t, 45.0, resp.Items[1].ItemTotal)
		assert.True(t, resp.Items[1].Product.Stock)
	})

	t.Run("skips lines whose product vanished", func(t *testing.T) {
		f := newCartFixture()
		userID := uuid.New()
		shirt := newProduct(t, "shirt", "19.99")
		lines := []cart.CartItem{
			*newLine(t, userID, shirt.ID, 3),
			*newLine(t, userID, uuid.New(), 1),
		}

		f.cartRepo.On("FindByUser", mock.Anything, userID).Return(lines, nil)
		f.productRepo.On("FindByIDs", mock.Anything, mock.Anything).Return([]catalog.Product{*shirt}, nil)

		resp, err := f.svc.GetUserCart(ctx, userID)
		require.NoError(t, err)
		assert.Len(t, resp.Items, 1)
		assert.Equal(t, "59.97", resp.CartTotal)
	})

	t.Run("empty cart", func(t *testing.T) {
		f := newCartFixture()
		userID := uuid.New()
		f.cartRepo.On("FindByUser", mock.Anything, userID).Return([]cart.CartItem{}, nil)

		resp, err := f.svc.GetUserCart(ctx, userID)
		require.NoError(t, err)
		assert.Empty(t, resp.Items)
		assert.Equal(t, "0.00", resp.CartTotal)
		f.productRepo.AssertNotCalled(t, "FindByIDs", mock.Anything, mock.Anything)
	})
}

func TestCartService_UpdateCartItem(t *testing.T) {
	ctx := context.Background()

	for _, qty := range []int{0, -1} {
		f := newCartFixture()
		_, err := f.svc.UpdateCartItem(ctx, uuid.New(), qty)
		assert.EqualError(t, err, "Quantity must be at least 1")
		f.cartRepo.AssertNotCalled(t, "UpdateQuantity", mock.Anything, mock.Anything, mock.Anything)
	}

	t.Run("missing line", func(t *testing.T) {
		f := newCartFixture()
		id := uuid.New()
		f.cartRepo.On("UpdateQuantity", mock.Anything, id, 2).Return(nil, shared.NotFound("Cart item"))

		_, err := f.svc.UpdateCartItem(ctx, id, 2)
		assert.EqualError(t, err, "Cart item not found")
	})

	t.Run("updates quantity", func(t *testing.T) {
		f := newCartFixture()
		line := newLine(t, uuid.New(), uuid.New(), 4)
		f.cartRepo.On("UpdateQuantity", mock.Anything, line.ID, 4).Return(line, nil)

		resp, err := f.svc.UpdateCartItem(ctx, line.ID, 4)
		require.NoError(t, err)
		assert.Equal(t, 4, resp.Quantity)
	})
}

func TestCartService_RemoveCartItem(t *testing.T) {
	ctx := context.Background()
	f := newCartFixture()
	line := newLine(t, uuid.New(), uuid.New(), 1)

	f.cartRepo.On("FindByID", mock.Anything, line.ID).Return(line, nil)
	f.cartRepo.On("Delete", mock.Anything, line.ID).Return(nil)

	resp, err := f.svc.RemoveCartItem(ctx, line.ID)
	require.NoError(t, err)
	assert.Equal(t, line.ID, resp.ID)
	f.userRepo.AssertNotCalled(t, "ClearCart", mock.Anything, mock.Anything)

	missing := uuid.New()
	f.cartRepo.On("FindByID", mock.Anything, missing).Return(nil, shared.NotFound("Cart item"))
	_, err = f.svc.RemoveCartItem(ctx, missing)
	assert.True(t, shared.IsNotFound(err))
}

func TestCartService_ClearUserCart(t *testing.T) {
	ctx := context.Background()
	f := newCartFixture()
	userID := uuid.New()

	f.cartRepo.On("DeleteByUser", mock.Anything, userID).Return(int64(2), nil)
	f.userRepo.On("ClearCart", mock.Anything, userID).Return(nil)
	f.publisher.On("Publish", mock.Anything, mock.MatchedBy(func(events []shared.DomainEvent) bool {
		e, ok := events[0].(*cart.CartClearedEvent)
		return ok && e.Removed == 2 && e.UserID == userID
	})).Return(nil)

	require.NoError(t, f.svc.ClearUserCart(ctx, userID))
	f.cartRepo.AssertExpectations(t)
	f.userRepo.AssertExpectations(t)
	f.publisher.AssertExpectations(t)
}
