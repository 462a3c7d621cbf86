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

	"github.com/eliteshop/eliteshop/internal"
	"github.com/eliteshop/eliteshop/internal/auth"
	"github.com/eliteshop/eliteshop/internal/events"
	"github.com/eliteshop/eliteshop/internal/handler"
	"github.com/eliteshop/eliteshop/internal/middleware"
	"github.com/eliteshop/eliteshop/internal/repository"
	"github.com/eliteshop/eliteshop/internal/router"
	"github.com/eliteshop/eliteshop/internal/service"
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

	store := repository.NewStore(pool)

	// Initialize event publisher
	var publisher events.Publisher = events.NoopPublisher{}
	if cfg.NatsUrl != "" {
		natsPublisher, err := events.NewNATSPublisher(cfg.NatsUrl)
		if err != nil {
			return fmt.Errorf("failed to initialize event publisher: %w", err)
		}
		publisher = natsPublisher
		logger.Info("Event publisher initialized", "url", cfg.NatsUrl)
	}
	defer publisher.Close()

	// Initialize services
	cartService := service.NewCartService(store, logger)
	orderService := service.NewOrderService(store, publisher, logger)
	userService := service.NewUserService(store)
	catalogService := service.NewCatalogService(store)

	tokens := auth.NewTokenIssuer(cfg.JWTSecret)
	secureCookies := cfg.Env == "prod"

	// Initialize handlers
	cartHandler := handler.NewCartHandler(cartService, secureCookies)
	orderHandler := handler.NewOrderHandler(orderService)
	catalogHandler := handler.NewCatalogHandler(catalogService)
	authHandler := handler.NewAuthHandler(userService, cartService, tokens, logger)

	// Initialize Prometheus metrics
	metrics := middleware.NewMetrics("eliteshop")

	r := router.New(
		router.Recovery(logger),
		middleware.RequestID,
		metrics.Middleware,
		router.CORS(cfg.CORSOrigins),
		router.Logger(logger),
		middleware.Authenticate(tokens),
	)

	// Metrics endpoint (protect via firewall in production)
	r.Get("/metrics", func(w http.ResponseWriter, req *http.Request) {
		metrics.Handler().ServeHTTP(w, req)
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Catalog
	r.Get("/api/products", catalogHandler.ListProducts)
	r.Get("/api/products/{productID}", catalogHandler.GetProduct)
	r.Get("/api/categories", catalogHandler.ListCategories)

	// Cart
	r.Get("/api/cart", cartHandler.Get)
	r.Post("/api/cart/add", cartHandler.Add)
	r.Put("/api/cart/update", cartHandler.Update)
	r.Delete("/api/cart/remove/{productID}", cartHandler.Remove)
	r.Delete("/api/cart/clear", cartHandler.Clear)
	r.Post("/api/cart/merge", cartHandler.Merge)

	// Orders
	r.Post("/api/orders", orderHandler.Create)
	r.Get("/api/orders/{orderID}", orderHandler.Get)
	r.Get("/api/orders/user/{userID}", orderHandler.ListUser)
	r.Patch("/api/orders/{orderID}/status", orderHandler.UpdateStatus)

	// Auth
	r.Post("/api/auth/register", authHandler.Register)
	r.Post("/api/auth/login", authHandler.Login)
	r.Get("/api/auth/me", authHandler.Me)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logger.Info("Starting server", "address", addr, "env", cfg.Env)

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
