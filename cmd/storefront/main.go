package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"gorm.io/gorm"

	_ "github.com/machbazar/storefront/docs"
	"github.com/machbazar/storefront/internal/admin"
	admincommand "github.com/machbazar/storefront/internal/admin/usecase/command"
	"github.com/machbazar/storefront/internal/cart"
	cartdomain "github.com/machbazar/storefront/internal/cart/domain"
	cartrepo "github.com/machbazar/storefront/internal/cart/repository"
	"github.com/machbazar/storefront/internal/catalog"
	"github.com/machbazar/storefront/internal/catalog/cache"
	cataloghttp "github.com/machbazar/storefront/internal/catalog/delivery/http"
	catalogdomain "github.com/machbazar/storefront/internal/catalog/domain"
	catalogrepo "github.com/machbazar/storefront/internal/catalog/repository"
	"github.com/machbazar/storefront/internal/order"
	orderrepo "github.com/machbazar/storefront/internal/order/repository"
	ordercommand "github.com/machbazar/storefront/internal/order/usecase/command"
	"github.com/machbazar/storefront/kafka"
	"github.com/machbazar/storefront/pkg/auth"
	"github.com/machbazar/storefront/pkg/config"
	"github.com/machbazar/storefront/pkg/database"
	"github.com/machbazar/storefront/pkg/httpx"
	"github.com/machbazar/storefront/pkg/logger"
	"github.com/machbazar/storefront/pkg/tracing"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Initialize logger
	logger.Init(logger.Options{
		ServiceName:   cfg.ServiceName,
		IsDevelopment: cfg.IsDevelopment(),
		FilePath:      cfg.LogFile,
	})
	logger.SetLevel(cfg.LogLevel)

	logger.Logger.Info().
		Str("service", cfg.ServiceName).
		Str("environment", cfg.Environment).
		Str("log_level", cfg.LogLevel).
		Msg("Starting storefront")

	// Initialize tracer
	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(cfg.ServiceName, cfg.Tracing.Endpoint)
		if err != nil {
			logger.Logger.Error().Err(err).Msg("Failed to initialize tracer")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := tracing.Shutdown(ctx, tp); err != nil {
					logger.Logger.Error().Err(err).Msg("Failed to shutdown tracer")
				}
			}()
		}
	}

	// Connect to database
	db, err := database.NewGormConnection(cfg.Database)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to get database instance")
	}
	defer sqlDB.Close()

	if err := migrate(db); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to run migrations")
	}
	logger.Logger.Info().Msg("Database initialized successfully")

	// Redis backs the response cache and, when configured, the cart slots.
	// The catalog keeps working uncached without it.
	rdb, err := database.NewRedisClient(cfg.Redis)
	if err != nil {
		logger.Logger.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("Redis unavailable, catalog responses will not be cached")
	} else {
		defer rdb.Close()
	}

	var (
		responseCache cataloghttp.ResponseCache = cataloghttp.NoCache{}
		invalidator   catalogdomain.Invalidator = catalogdomain.NopInvalidator{}
	)
	if rdb != nil {
		c := cache.NewResponseCache(rdb, cache.DefaultTTL)
		responseCache, invalidator = c, c
	}

	storage, closeStorage, err := openCartStorage(cfg, rdb)
	if err != nil {
		logger.Logger.Fatal().Err(err).Str("storage", cfg.Cart.Storage).Msg("Failed to open cart storage")
	}
	defer closeStorage()

	// Order events go through kafka when enabled, otherwise they are
	// dispatched in process so verified orders still reach the stock.
	dispatcher := kafka.NewDispatcher()
	var events ordercommand.EventPublisher
	if cfg.Kafka.Enabled {
		publisher, err := kafka.NewPublisher(cfg.Kafka.Brokers)
		if err != nil {
			logger.Logger.Fatal().Err(err).Strs("brokers", cfg.Kafka.Brokers).Msg("Failed to create kafka publisher")
		}
		defer publisher.Close()
		events = publisher
	} else {
		events = kafka.NewInProcessPublisher(dispatcher)
	}

	applyStock := order.InitializeApplyStockHandler(db, catalog.InitializeRecordSaleHandler(db, invalidator))
	dispatcher.RegisterHandler(kafka.EventTypeOrderVerified, kafka.OrderVerifiedHandler(applyStock.HandleOrderVerified))
	dispatcher.RegisterHandler(kafka.EventTypeOrderPlaced, kafka.OrderPlacedHandler(logOrderPlaced))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Kafka.Enabled {
		consumer, err := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, kafka.Topics, dispatcher)
		if err != nil {
			logger.Logger.Fatal().Err(err).Msg("Failed to create kafka consumer")
		}
		defer consumer.Close()
		go consumer.Start(ctx)
	}

	// Expire mobile-payment orders nobody verified in time
	scheduler := cron.New()
	expire := order.InitializeExpireOrdersHandler(db, cfg.Orders.Expiry)
	if _, err := scheduler.AddFunc(cfg.Orders.ExpirySchedule, expire.Run); err != nil {
		logger.Logger.Fatal().Err(err).Str("schedule", cfg.Orders.ExpirySchedule).Msg("Invalid order expiry schedule")
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Initialize handlers with Wire DI
	tokens := auth.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	reg := prometheus.DefaultRegisterer
	products := catalog.ProvideProductRepository(db)
	packages := catalog.ProvidePackageRepository(db)
	sessions := cart.ProvideSessions(storage)

	catalogHandler, err := catalog.InitializeHTTPHandler(db, responseCache, invalidator, tokens, reg)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize catalog handler")
	}
	cartHandler := cart.InitializeHTTPHandler(sessions, products, packages, reg)
	orderHandler := order.InitializeHTTPHandler(db, sessions, products, events, cfg.Orders.Expiry, tokens, reg)
	adminHandler := admin.InitializeHTTPHandler(db, admincommand.Credentials{
		Username:     cfg.Auth.AdminUsername,
		PasswordHash: cfg.Auth.AdminPasswordHash,
	}, tokens, reg)
	if cfg.Auth.AdminPasswordHash == "" {
		logger.Logger.Warn().Msg("ADMIN_PASSWORD_HASH not set, admin login is disabled")
	}

	// Setup router
	router := mux.NewRouter()
	router.Use(httpx.LoggingMiddleware)
	if cfg.Tracing.Enabled {
		router.Use(httpx.TracingMiddleware("http-request"))
	}

	catalogHandler.RegisterRoutes(router)
	cartHandler.RegisterRoutes(router)
	orderHandler.RegisterRoutes(router)
	adminHandler.RegisterRoutes(router)

	checks := map[string]httpx.HealthCheck{"database": sqlDB.PingContext}
	if rdb != nil {
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}
	httpx.RegisterHealthCheck(router, checks)

	// Prometheus metrics endpoint
	router.Handle("/metrics", promhttp.Handler())

	cataloghttp.RegisterSwaggerDocs(router, httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// CORS middleware
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           c.Handler(router),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Logger.Info().
			Str("port", cfg.HTTPPort).
			Str("metrics_endpoint", "/metrics").
			Str("swagger", "/swagger/index.html").
			Bool("kafka", cfg.Kafka.Enabled).
			Str("cart_storage", cfg.Cart.Storage).
			Msg("HTTP server started")

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Logger.Fatal().Err(err).Msg("Failed to start HTTP server")
		}
	}()

	// Wait for interrupt signal
	<-ctx.Done()
	logger.Logger.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Logger.Error().Err(err).Msg("HTTP server shutdown failed")
	}
}

func migrate(db *gorm.DB) error {
	if err := catalogrepo.NewGormProductRepository(db).AutoMigrate(); err != nil {
		return err
	}
	return orderrepo.NewGormOrderRepository(db).AutoMigrate()
}

// openCartStorage returns the configured cart slot store and its closer
func openCartStorage(cfg *config.Config, rdb *redis.Client) (cartdomain.Storage, func(), error) {
	if cfg.Cart.Storage == config.CartStorageBolt {
		if err := os.MkdirAll(filepath.Dir(cfg.Cart.BoltPath), 0o755); err != nil {
			return nil, nil, err
		}
		storage, err := cartrepo.OpenBoltStorage(cfg.Cart.BoltPath)
		if err != nil {
			return nil, nil, err
		}
		return storage, func() { storage.Close() }, nil
	}

	if rdb == nil {
		return nil, nil, errors.New("redis cart storage configured but redis is unavailable")
	}
	return cartrepo.NewRedisStorage(rdb, cfg.Cart.TTL), func() {}, nil
}

func logOrderPlaced(ctx context.Context, event kafka.OrderPlacedEvent) error {
	logger.Info(ctx).
		Str("order_id", event.OrderID).
		Str("payment_method", event.PaymentMethod).
		Float64("total", event.Total).
		Msg("Order awaiting payment verification")
	return nil
}
