package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/modishwear/modish-backend/internal/api/handlers"
	"github.com/modishwear/modish-backend/internal/api/middleware"
	"github.com/modishwear/modish-backend/internal/cache"
	"github.com/modishwear/modish-backend/internal/config"
	"github.com/modishwear/modish-backend/internal/health"
	"github.com/modishwear/modish-backend/internal/metrics"
	repository "github.com/modishwear/modish-backend/internal/repositories"
	service "github.com/modishwear/modish-backend/internal/services"
	"github.com/redis/go-redis/v9"
)

func main() {

	// Logger setup
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load config
	cfg := config.MustLoad()

	// Database setup
	db, err := repository.NewDatabase(context.Background(), &cfg.Mongo)
	if err != nil {
		slog.Error("❌ Error accessing the database", "error", err.Error())
		os.Exit(1)
	}

	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := db.Close(closeCtx); err != nil {
			slog.Error("⚠️ Error closing database connection", slog.String("error", err.Error()))
		} else {
			slog.Info("✅ Database connection closed")
		}
	}()

	// Redis setup
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisConnect.Host + ":" + cfg.RedisConnect.Port,
		Username: cfg.RedisConnect.Username,
		Password: cfg.RedisConnect.Password,
		DB:       cfg.RedisConnect.DB,
	})
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		slog.Error("❌ Error accessing the redis instance", "error", err.Error())
		os.Exit(1)
	}

	defer func() {
		if err := redisClient.Close(); err != nil {
			slog.Error("⚠️ Error closing redis connection", slog.String("error", err.Error()))
		}
	}()

	redisCache := cache.NewRedisCache(redisClient, &cfg.Cache)

	cartRepo := repository.NewCartRepo(db)
	productRepo := repository.NewProductRepo(db)
	catalogRepo := repository.NewCatalogRepo(db)

	productService := service.NewProductService(productRepo, redisCache)
	productHandler := handlers.NewProductHandler(productService)
	cartService := service.NewCartService(cartRepo, productRepo, redisCache)
	cartHandler := handlers.NewCartHandler(cartService)
	catalogService := service.NewCatalogService(catalogRepo)
	searchHandler := handlers.NewSearchHandler(catalogService)
	authMiddleware := middleware.NewAuthMiddleware([]byte(cfg.Security.JWTKey))

	healthHandler, err := health.NewHealthHandler(cfg, &health.Endpoints{
		MongoClient: db.Client,
		RedisClient: redisClient,
	})
	if err != nil {
		slog.Error("❌ Error creating health handler", "error", err.Error())
		os.Exit(1)
	}

	slog.Info("storage initialized", slog.String("env", cfg.Env), slog.String("version", "1.0.0"))

	// Setup router
	routerMux := http.NewServeMux()
	routerMux.HandleFunc("GET /api/v1/cart", authMiddleware.Authenticate(cartHandler.GetCart()))
	routerMux.HandleFunc("POST /api/v1/cart", authMiddleware.Authenticate(cartHandler.AddToCart()))
	routerMux.HandleFunc("PATCH /api/v1/cart/{id}", authMiddleware.Authenticate(cartHandler.UpdateQuantity()))
	routerMux.HandleFunc("DELETE /api/v1/cart/{id}", authMiddleware.Authenticate(cartHandler.RemoveFromCart()))
	routerMux.HandleFunc("POST /api/v1/products", authMiddleware.Authenticate(productHandler.CreateProduct()))
	routerMux.HandleFunc("GET /api/v1/products/{id}", productHandler.GetProduct())
	routerMux.HandleFunc("POST /api/v1/products/{id}/variants", authMiddleware.Authenticate(productHandler.CreateVariant()))
	routerMux.HandleFunc("GET /api/v1/variants/{id}", productHandler.GetVariant())
	routerMux.HandleFunc("PUT /api/v1/variants/{id}/stock", authMiddleware.Authenticate(productHandler.UpdateStock()))
	routerMux.HandleFunc("PATCH /api/v1/variants/{id}/sale", authMiddleware.Authenticate(productHandler.UpdateSale()))
	routerMux.HandleFunc("GET /api/v1/admin/search/products", authMiddleware.Authenticate(searchHandler.SearchProducts()))
	routerMux.HandleFunc("GET /api/v1/admin/search/orders", authMiddleware.Authenticate(searchHandler.SearchOrders()))
	routerMux.Handle("GET /metrics", metrics.Handler())
	routerMux.Handle("GET /health", healthHandler.Handler())

	// Middleware chaining
	var handler http.Handler = routerMux
	handler = metrics.Middleware(handler)
	handler = middleware.Logging(handler)

	// Setup http server
	server := http.Server{
		Addr:    cfg.Addr,
		Handler: handler,
	}

	slog.Info("🚀 Server is starting...", slog.String("address", cfg.Addr))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("❌ Failed to start server", slog.Any("error", err.Error()))
		}
	}()

	<-done

	slog.Warn("🛑 Shutdown signal received. Preparing to stop the server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("⚠️ Server shutdown encountered an issue", slog.String("error", err.Error()))
	} else {
		slog.Info("✅ Server shut down gracefully. All connections closed.")
	}

}
