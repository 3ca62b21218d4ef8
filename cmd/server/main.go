package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/jswan/mercantile/internal"
	"github.com/jswan/mercantile/internal/auth"
	"github.com/jswan/mercantile/internal/handler"
	"github.com/jswan/mercantile/internal/middleware"
	"github.com/jswan/mercantile/internal/postgres"
	"github.com/jswan/mercantile/internal/router"
	"github.com/jswan/mercantile/internal/routes"
	"github.com/jswan/mercantile/internal/service"
	"github.com/jswan/mercantile/internal/tax"
)

func run() error {
	ctx := context.Background()

	// Load configuration
	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	// Configure logger
	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel)

	// Initialize database/sql connection for migrations
	logger.Info("Connecting to database...")
	sqlDB, err := sql.Open("pgx", cfg.DatabaseUrl)
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	defer sqlDB.Close()

	// Verify database connection
	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	logger.Info("Database connection established")

	// Run migrations
	logger.Info("Running database migrations...")
	if err := internal.RunMigrations(sqlDB); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	logger.Info("Database migrations completed successfully")

	// Initialize pgx connection pool for application
	pool, err := pgxpool.New(ctx, cfg.DatabaseUrl)
	if err != nil {
		return fmt.Errorf("failed to create connection pool: %w", err)
	}
	defer pool.Close()

	// Initialize store
	store := postgres.NewStore(pool)

	// Initialize services
	taxCalculator := tax.NewPercentageCalculator(cfg.Pricing.TaxRate)

	userService := service.NewUserService(store)
	productService := service.NewProductService(store)
	cartService := service.NewCartService(store)
	orderService := service.NewOrderService(store, taxCalculator, cfg.Pricing.ShippingCost)
	returnService := service.NewReturnService(store)
	accountService := service.NewAccountService(store)
	activityService := service.NewActivityService(store)

	// Initialize token manager
	tokens := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.TokenExpiry)

	// Initialize Prometheus metrics
	metrics := middleware.NewMetrics("mercantile")

	// Configure rate limiting
	rateLimiterConfig := middleware.DefaultRateLimiterConfig()
	rateLimiterConfig.RequestsPerSecond = cfg.RateLimit.RequestsPerSecond
	rateLimiterConfig.BurstSize = cfg.RateLimit.BurstSize
	rateLimiter := middleware.NewRateLimiter(rateLimiterConfig)
	authRateLimiter := middleware.NewRateLimiter(middleware.StrictRateLimiterConfig())

	// Configure security headers
	securityConfig := middleware.DefaultSecurityHeadersConfig()
	if cfg.Env == "dev" {
		securityConfig.HSTSMaxAge = 0 // Disable HSTS in development
	}

	// Build route dependencies
	deps := routes.Deps{
		Auth:      handler.NewAuthHandler(userService, tokens, logger),
		Cart:      handler.NewCartHandler(cartService),
		Order:     handler.NewOrderHandler(orderService),
		Return:    handler.NewReturnHandler(returnService),
		Product:   handler.NewProductHandler(productService),
		Account:   handler.NewAccountHandler(accountService),
		Activity:  handler.NewActivityHandler(activityService),
		AuthLimit: []router.Middleware{authRateLimiter.Middleware},
	}

	// Create router and register routes
	r := router.New(
		router.Recovery(logger),
		middleware.RequestID,
		middleware.WithClientIP(),
		middleware.WithRequestLogger(logger),
		metrics.Middleware,
		middleware.SecurityHeaders(securityConfig),
		middleware.MaxBodySize(middleware.SmallMaxBodySize),
		middleware.Timeout(middleware.DefaultTimeout),
		rateLimiter.Middleware,
		router.Logger(logger),
		middleware.WithUser(tokens, store),
	)

	// Metrics endpoint (no auth required, but should be protected in production via firewall)
	r.Get("/metrics", func(w http.ResponseWriter, req *http.Request) {
		metrics.Handler().ServeHTTP(w, req)
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	routes.Register(r, deps)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logger.Info("Starting server", "address", addr)

	if err := http.ListenAndServe(addr, r); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
