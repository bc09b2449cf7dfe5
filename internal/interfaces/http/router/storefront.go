package router

import (
	"github.com/dotmart/backend/internal/domain/identity"
	"github.com/dotmart/backend/internal/interfaces/http/handler"
	"github.com/dotmart/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// Handlers bundles the storefront REST handlers
type Handlers struct {
	Category      *handler.CategoryHandler
	Product       *handler.ProductHandler
	Cart          *handler.CartHandler
	Order         *handler.OrderHandler
	User          *handler.UserHandler
	Auth          *handler.AuthHandler
	Review        *handler.ReviewHandler
	Hero          *handler.HeroHandler
	TrendingOffer *handler.TrendingOfferHandler
}

// Guards holds the authentication and abuse controls applied per route
type Guards struct {
	Verifier middleware.AccessTokenVerifier
	// AuthLimiter throttles login and sign-up; nil disables it
	AuthLimiter *middleware.RateLimiter
}

func (g Guards) admin() gin.HandlerFunc {
	return middleware.Authenticate(g.Verifier, string(identity.RoleAdmin))
}

func (g Guards) member() gin.HandlerFunc {
	return middleware.Authenticate(g.Verifier, string(identity.RoleAdmin), string(identity.RoleUser))
}

func (g Guards) throttle(next gin.HandlerFunc) []gin.HandlerFunc {
	if g.AuthLimiter == nil {
		return []gin.HandlerFunc{next}
	}
	return []gin.HandlerFunc{middleware.RateLimit(g.AuthLimiter), next}
}

// Storefront returns the route groups of the /api/v{n} surface
func Storefront(h Handlers, g Guards) []RouteRegistrar {
	admin, member := g.admin(), g.member()

	categories := NewDomainGroup("categories", "/categories").
		GET("", h.Category.List).
		GET("/:categoryId", h.Category.GetByID).
		POST("", admin, h.Category.Create).
		PUT("/:categoryId", admin, h.Category.Update).
		DELETE("/:categoryId", admin, h.Category.Delete)

	products := NewDomainGroup("products", "").
		GET("/products", h.Product.List).
		GET("/products/search", h.Product.Search).
		GET("/products/:slug", h.Product.GetBySlug).
		GET("/product/:id", h.Product.GetByID).
		POST("/products", admin, h.Product.Create).
		PUT("/products/:productId", admin, h.Product.Update).
		DELETE("/products/:productId", admin, h.Product.Delete)

	cart := NewDomainGroup("cart", "/cart").
		Use(member).
		POST("", h.Cart.AddToCart).
		GET("/user/:userId", h.Cart.GetUserCart).
		DELETE("/user/:userId", h.Cart.ClearUserCart).
		PUT("/:cartId", h.Cart.UpdateCartItem).
		DELETE("/:cartId", h.Cart.RemoveCartItem)

	orders := NewDomainGroup("orders", "/orders").
		POST("", member, h.Order.Create).
		GET("", admin, h.Order.List).
		GET("/user/:userId", member, h.Order.GetUserOrders).
		GET("/:orderId", member, h.Order.GetByID).
		PATCH("/:orderId/status", admin, h.Order.UpdateOrderStatus).
		PATCH("/:orderId/payment", admin, h.Order.UpdatePaymentStatus)

	users := NewDomainGroup("users", "").
		POST("/create-user", g.throttle(h.User.Create)...).
		GET("/users", admin, h.User.List).
		GET("/users/:email", member, h.User.GetByEmail).
		GET("/user/:userId", member, h.User.GetByID).
		PUT("/user/:userId", member, h.User.Update).
		PUT("/user/block/:userId", admin, h.User.Block).
		PUT("/user/unblock/:userId", admin, h.User.Unblock).
		DELETE("/user/:userId", admin, h.User.Delete)

	auth := NewDomainGroup("auth", "/auth").
		POST("/login", g.throttle(h.Auth.Login)...).
		POST("/refresh-token", h.Auth.RefreshToken).
		POST("/logout", member, h.Auth.Logout)

	reviews := NewDomainGroup("reviews", "/reviews").
		GET("", h.Review.List).
		GET("/:reviewId", h.Review.GetByID).
		POST("", admin, h.Review.Create).
		PUT("/:reviewId", admin, h.Review.Update).
		PUT("/:reviewId/approve", admin, h.Review.Approve).
		DELETE("/:reviewId", admin, h.Review.Delete)

	hero := NewDomainGroup("hero", "/hero").
		GET("", h.Hero.List).
		POST("", admin, h.Hero.Create).
		PUT("/:heroId", admin, h.Hero.Update).
		DELETE("/:heroId", admin, h.Hero.Delete)

	offers := NewDomainGroup("trending-offers", "/trending-offers").
		GET("", h.TrendingOffer.List).
		GET("/:offerId", admin, h.TrendingOffer.GetByID).
		POST("", admin, h.TrendingOffer.Create).
		PUT("/:offerId", admin, h.TrendingOffer.Update).
		DELETE("/:offerId", admin, h.TrendingOffer.Delete)

	return []RouteRegistrar{categories, products, cart, orders, users, auth, reviews, hero, offers}
}
