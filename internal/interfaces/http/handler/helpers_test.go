package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	cartapp "github.com/dotmart/backend/internal/application/cart"
	catalogapp "github.com/dotmart/backend/internal/application/catalog"
	contentapp "github.com/dotmart/backend/internal/application/content"
	identityapp "github.com/dotmart/backend/internal/application/identity"
	orderapp "github.com/dotmart/backend/internal/application/order"
	"github.com/dotmart/backend/internal/domain/catalog"
	"github.com/dotmart/backend/internal/domain/identity"
	"github.com/dotmart/backend/internal/infrastructure/auth"
	"github.com/dotmart/backend/internal/infrastructure/cache"
	"github.com/dotmart/backend/internal/infrastructure/config"
	"github.com/dotmart/backend/internal/infrastructure/persistence"
	"github.com/dotmart/backend/internal/interfaces/http/dto"
	"github.com/dotmart/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
	if err := middleware.SetupValidator(); err != nil {
		panic(err)
	}
}

// testApp wires real services over an in-memory SQLite database
type testApp struct {
	db         *gorm.DB
	jwt        *auth.JWTService
	verifier   *auth.TokenVerifier
	hasher     identity.PasswordHasher
	users      *persistence.GormUserRepository
	categories *persistence.GormCategoryRepository
	products   *persistence.GormProductRepository

	category *CategoryHandler
	product  *ProductHandler
	cart     *CartHandler
	order    *OrderHandler
	user     *UserHandler
	auth     *AuthHandler
	review   *ReviewHandler
	hero     *HeroHandler
	offer    *TrendingOfferHandler
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, persistence.AutoMigrate(db))

	jwtSvc := auth.NewJWTService(config.JWTConfig{
		AccessSecret:           "access-secret-for-tests-0123456789",
		RefreshSecret:          "refresh-secret-for-tests-0123456789",
		AccessTokenExpiration:  time.Hour,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "dotmart-test",
	})
	verifier := auth.NewTokenVerifier(jwtSvc, auth.NewInMemoryTokenBlacklist())
	hasher := auth.NewBcryptHasher(bcrypt.MinCost)
	store := cache.NewInMemoryStore()

	categoryRepo := persistence.NewGormCategoryRepository(db)
	productRepo := persistence.NewGormProductRepository(db)
	cartRepo := persistence.NewGormCartRepository(db)
	orderRepo := persistence.NewGormOrderRepository(db)
	userRepo := persistence.NewGormUserRepository(db)

	app := &testApp{
		db:         db,
		jwt:        jwtSvc,
		verifier:   verifier,
		hasher:     hasher,
		users:      userRepo,
		categories: categoryRepo,
		products:   productRepo,
	}
	app.category = NewCategoryHandler(catalogapp.NewCategoryService(categoryRepo, productRepo, store, time.Minute, nil))
	app.product = NewProductHandler(catalogapp.NewProductService(productRepo, categoryRepo, nil, nil, nil))
	app.cart = NewCartHandler(cartapp.NewCartService(cartRepo, productRepo, userRepo, nil, nil))
	app.order = NewOrderHandler(orderapp.NewOrderService(orderRepo, userRepo, productRepo, nil, nil))
	app.user = NewUserHandler(identityapp.NewUserService(userRepo, cartRepo, productRepo, hasher, verifier, nil, nil))
	app.auth = NewAuthHandler(
		identityapp.NewAuthService(userRepo, jwtSvc, verifier, hasher, nil),
		config.CookieConfig{Path: "/", SameSite: "lax", MaxAge: 2160 * time.Hour},
	)
	app.review = NewReviewHandler(contentapp.NewReviewService(persistence.NewGormReviewRepository(db), nil))
	app.hero = NewHeroHandler(contentapp.NewHeroService(persistence.NewGormHeroRepository(db), store, time.Minute, nil))
	app.offer = NewTrendingOfferHandler(contentapp.NewTrendingOfferService(persistence.NewGormTrendingOfferRepository(db), productRepo, nil))
	return app
}

func (a *testApp) seedUser(t *testing.T, email string, role identity.Role) *identity.User {
	t.Helper()
	u, err := identity.NewUser(identity.Profile{
		Name:        "Test " + string(role),
		Email:       email,
		Password:    "secret123",
		PhoneNumber: "01700000000",
		Role:        role,
	}, a.hasher)
	require.NoError(t, err)
	require.NoError(t, a.users.Save(t.Context(), u))
	return u
}

func (a *testApp) seedCategory(t *testing.T, name string) *catalog.Category {
	t.Helper()
	c, err := catalog.NewCategory(name, "https://cdn.example.com/"+uuid.NewString()+".png")
	require.NoError(t, err)
	require.NoError(t, a.categories.Save(t.Context(), c))
	return c
}

func (a *testApp) seedProduct(t *testing.T, categoryID uuid.UUID, name, price string) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(catalog.ProductDetails{
		Name:          name,
		Description:   name + " description",
		CategoryID:    categoryID,
		Price:         decimal.RequireFromString(price),
		OriginalPrice: decimal.RequireFromString(price).Mul(decimal.NewFromInt(2)),
		Images:        []string{"https://cdn.example.com/p.png"},
		Stock:         true,
		Meta:          catalog.Meta{Title: name, Description: name, Keywords: []string{"gift"}},
	})
	require.NoError(t, err)
	require.NoError(t, a.products.Save(t.Context(), p))
	return p
}

// as simulates an authenticated request without a signed token
func as(u *identity.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := &auth.Claims{
			RegisteredClaims: jwt.RegisteredClaims{Subject: u.ID.String(), ID: uuid.NewString()},
			Email:            u.Email,
			Role:             string(u.Role),
			TokenType:        auth.TokenTypeAccess,
		}
		c.Set(middleware.ClaimsKey, claims)
		c.Set(middleware.UserIDKey, claims.Subject)
		c.Set(middleware.UserRoleKey, claims.Role)
		c.Next()
	}
}

func newEngine() *gin.Engine {
	engine := gin.New()
	engine.Use(middleware.RequestID())
	return engine
}

func doJSON(engine http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, _ := json.Marshal(b)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

// envelope mirrors dto.Response with a raw data payload
type envelope struct {
	Success      bool            `json:"success"`
	Message      string          `json:"message"`
	Data         json.RawMessage `json:"data"`
	Error        *dto.ErrorInfo  `json:"error"`
	Issues       []dto.Issue     `json:"issues"`
	ErrorDetails map[string]any  `json:"errorDetails"`
	RequestID    string          `json:"requestId"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

func decodeData[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &out))
	return out
}
