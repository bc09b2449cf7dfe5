package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	cartapp "github.com/dotmart/backend/internal/application/cart"
	catalogapp "github.com/dotmart/backend/internal/application/catalog"
	contentapp "github.com/dotmart/backend/internal/application/content"
	identityapp "github.com/dotmart/backend/internal/application/identity"
	orderapp "github.com/dotmart/backend/internal/application/order"
	"github.com/dotmart/backend/internal/infrastructure/auth"
	"github.com/dotmart/backend/internal/infrastructure/cache"
	"github.com/dotmart/backend/internal/infrastructure/config"
	"github.com/dotmart/backend/internal/infrastructure/event"
	"github.com/dotmart/backend/internal/infrastructure/logger"
	"github.com/dotmart/backend/internal/infrastructure/persistence"
	"github.com/dotmart/backend/internal/infrastructure/search"
	"github.com/dotmart/backend/internal/infrastructure/telemetry"
	"github.com/dotmart/backend/internal/interfaces/http/handler"
	"github.com/dotmart/backend/internal/interfaces/http/middleware"
	"github.com/dotmart/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

//	@title			Dotmart API
//	@version		1.0
//	@description	Storefront backend for a gift shop: catalog, carts, orders, users and marketing content.

//	@host		localhost:5000
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Access token. Either the raw token or "Bearer {token}".

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	rootCtx, stop := context.WithCancel(context.Background())
	defer stop()

	// Telemetry providers are no-ops unless enabled
	tel := setupTelemetry(rootCtx, cfg, log)
	defer tel.shutdown(log)
	log = tel.logger

	log.Info("Starting Dotmart backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level), cfg.Database.SlowThreshold)
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	if err := telemetry.RegisterDBTracing(db.DB, telemetry.DBTracingConfig{
		Enabled: cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled,
		DBName:  cfg.Database.DBName,
	}, log); err != nil {
		log.Warn("Failed to register database tracing", zap.Error(err))
	}

	if cfg.Database.AutoMigrate {
		if err := db.AutoMigrate(); err != nil {
			log.Fatal("Failed to migrate database", zap.Error(err))
		}
		log.Info("Database schema migrated")
	}

	// Redis backs the cache and the token blacklist; without it both stay in-process
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = auth.NewRedisClient(rootCtx, cfg.Redis)
		if err != nil {
			log.Warn("Redis unavailable, using in-memory stores", zap.Error(err))
			redisClient = nil
		} else {
			defer func() {
				_ = redisClient.Close()
			}()
		}
	}

	store := cache.NewStoreFactory(redisClient, cache.WithLogger(log)).CreateStore()
	defer func() {
		_ = store.Close()
	}()

	var blacklist auth.TokenBlacklist
	if redisClient != nil {
		blacklist = auth.NewRedisTokenBlacklist(redisClient)
	} else {
		blacklist = auth.NewInMemoryTokenBlacklist()
	}

	// Repositories
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	cartRepo := persistence.NewGormCartRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)
	reviewRepo := persistence.NewGormReviewRepository(db.DB)
	heroRepo := persistence.NewGormHeroRepository(db.DB)
	offerRepo := persistence.NewGormTrendingOfferRepository(db.DB)

	// Domain events fan out to metrics, kafka and the search index off the request path
	eventBus := event.NewInMemoryEventBus(log, event.WithAsyncDispatch())

	storeMetrics, err := telemetry.NewStoreMetrics(tel.meter)
	if err != nil {
		log.Fatal("Failed to create store metrics", zap.Error(err))
	}
	eventBus.Subscribe(storeMetrics)

	if cfg.Kafka.Enabled {
		kafkaPublisher := event.NewKafkaPublisher(event.NewKafkaWriter(cfg.Kafka), cfg.Kafka.TopicPrefix, log)
		eventBus.Subscribe(kafkaPublisher)
		defer func() {
			if err := kafkaPublisher.Close(); err != nil {
				log.Error("Error closing kafka publisher", zap.Error(err))
			}
		}()
		log.Info("Kafka event publishing enabled", zap.Strings("brokers", cfg.Kafka.Brokers))
	}

	var searcher catalogapp.ProductSearcher
	if cfg.Search.Enabled {
		productIndex, err := newProductIndex(rootCtx, cfg.Search, log)
		if err != nil {
			log.Warn("Product search index unavailable, falling back to name filter", zap.Error(err))
		} else {
			eventBus.Subscribe(productIndex)
			searcher = productIndex
		}
	}

	if err := eventBus.Start(rootCtx); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		if err := eventBus.Stop(context.Background()); err != nil {
			log.Error("Error stopping event bus", zap.Error(err))
		}
	}()

	// Application services
	jwtService := auth.NewJWTService(cfg.JWT)
	verifier := auth.NewTokenVerifier(jwtService, blacklist)
	hasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)

	categoryService := catalogapp.NewCategoryService(categoryRepo, productRepo, store, cfg.Redis.CacheTTL, log)
	productService := catalogapp.NewProductService(productRepo, categoryRepo, eventBus, searcher, log)
	cartService := cartapp.NewCartService(cartRepo, productRepo, userRepo, eventBus, log)
	orderService := orderapp.NewOrderService(orderRepo, userRepo, productRepo, eventBus, log)
	userService := identityapp.NewUserService(userRepo, cartRepo, productRepo, hasher, verifier, eventBus, log)
	authService := identityapp.NewAuthService(userRepo, jwtService, verifier, hasher, log)
	reviewService := contentapp.NewReviewService(reviewRepo, log)
	heroService := contentapp.NewHeroService(heroRepo, store, cfg.Redis.CacheTTL, log)
	offerService := contentapp.NewTrendingOfferService(offerRepo, productRepo, log)

	handlers := router.Handlers{
		Category:      handler.NewCategoryHandler(categoryService),
		Product:       handler.NewProductHandler(productService),
		Cart:          handler.NewCartHandler(cartService),
		Order:         handler.NewOrderHandler(orderService),
		User:          handler.NewUserHandler(userService),
		Auth:          handler.NewAuthHandler(authService, cfg.Cookie),
		Review:        handler.NewReviewHandler(reviewService),
		Hero:          handler.NewHeroHandler(heroService),
		TrendingOffer: handler.NewTrendingOfferHandler(offerService),
	}
	systemHandler := handler.NewSystemHandler(db)

	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := middleware.SetupValidator(); err != nil {
		log.Fatal("Failed to register validators", zap.Error(err))
	}

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     cfg.Telemetry.Enabled,
	})...)
	engine.Use(logger.GinMiddleware(log))

	httpMetrics, err := middleware.HTTPMetrics(tel.meter)
	if err != nil {
		log.Fatal("Failed to create HTTP metrics", zap.Error(err))
	}
	engine.Use(httpMetrics)
	engine.Use(middleware.ProfilingWithConfig(middleware.ProfilingConfig{
		Enabled:   cfg.Telemetry.ProfilingEnabled,
		SkipPaths: []string{"/health"},
	}))

	corsConfig := middleware.DefaultCORSConfig()
	if len(cfg.HTTP.CORSAllowOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	}
	if len(cfg.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = cfg.HTTP.CORSAllowMethods
	}
	if len(cfg.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))
	engine.Use(middleware.SecureWithConfig(middleware.SecurityConfig{HSTSEnabled: cfg.App.IsProduction()}))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	var authLimiter *middleware.RateLimiter
	if cfg.HTTP.AuthRateLimit > 0 {
		authLimiter = middleware.NewRateLimiter(cfg.HTTP.AuthRateLimit, cfg.HTTP.AuthRateWindow)
		go authLimiter.Run(rootCtx)
	}

	engine.GET("/", systemHandler.Welcome)
	engine.GET("/health", systemHandler.Health)

	router.NewRouter(engine,
		router.WithAPIVersion("v1"),
		router.WithNoRoute(systemHandler.NotFound),
	).
		Register(router.Storefront(handlers, router.Guards{
			Verifier:    verifier,
			AuthLimiter: authLimiter,
		})...).
		Setup()

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      engine,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")
	stop()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
		return
	}

	log.Info("Server exited gracefully")
}

func newProductIndex(ctx context.Context, cfg config.SearchConfig, log *zap.Logger) (*search.ElasticProductIndex, error) {
	client, err := search.NewClient(ctx, cfg)
	if err != nil {
		return nil, err
	}
	index := search.NewElasticProductIndex(client, cfg.Index, log)
	if err := index.EnsureIndex(ctx); err != nil {
		return nil, err
	}
	log.Info("Product search index ready", zap.String("index", cfg.Index))
	return index, nil
}
