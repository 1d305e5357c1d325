package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"appstore-pricing-service/internal/auth"
	"appstore-pricing-service/internal/clients/appstore"
	"appstore-pricing-service/internal/config"
	"appstore-pricing-service/internal/handlers"
	"appstore-pricing-service/internal/middleware"
	"appstore-pricing-service/internal/services"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)
	logger.SetLevel(logrus.InfoLevel)

	// Load environment variables
	if err := godotenv.Load(); err != nil {
		logger.Info("No .env file found, using system environment variables")
	}

	// Initialize configuration
	cfg := config.Load()
	if cfg.Environment != "production" {
		logger.SetLevel(logrus.DebugLevel)
	}
	if cfg.AppID == "" {
		logger.Fatal("ASC_APP_ID is required")
	}

	// Initialize token provider: a pre-minted bearer token wins,
	// otherwise mint ES256 tokens from the configured signing key.
	var tokens appstore.TokenProvider
	if cfg.BearerToken != "" {
		tokens = &auth.StaticTokenProvider{Token: cfg.BearerToken}
		logger.Info("Using pre-minted bearer token")
	} else {
		provider, err := auth.NewConnectTokenProvider(cfg.IssuerID, cfg.KeyID, cfg.PrivateKeyPath, cfg.TokenTTL)
		if err != nil {
			logger.Fatalf("Failed to initialize token provider: %v", err)
		}
		tokens = provider
	}

	// Initialize vendor client
	api := appstore.NewClient(cfg.APIBaseURL, tokens, cfg.RequestRateLimit)

	// Initialize services
	resolverService := services.NewResolverService(api, cfg.AppID, logger)
	pricePointService := services.NewPricePointService(api, cfg.PricePointPageSize, logger)
	priceUpdateService := services.NewPriceUpdateService(api)
	pricingService := services.NewPricingService(api, resolverService, pricePointService, priceUpdateService, cfg.PriceListPageSize, logger)
	bulkService := services.NewBulkService(resolverService, pricePointService, priceUpdateService, cfg.BulkPacingInterval, logger)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	pricingHandler := handlers.NewPricingHandler(pricingService, bulkService)

	// Setup router
	router := setupRouter(cfg, logger, healthHandler, pricingHandler)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Infof("App Store pricing service starting on port %s (env: %s)", cfg.Port, cfg.Environment)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Fatalf("Server forced to shutdown: %v", err)
	}
	logger.Info("Server exited")
}

// setupRouter configures the HTTP router
func setupRouter(cfg *config.Config, logger *logrus.Logger, healthHandler *handlers.HealthHandler, pricingHandler *handlers.PricingHandler) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	// Security headers middleware
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(logger))

	// CORS middleware
	corsConfig := cors.DefaultConfig()
	allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
	if allowedOrigins != "" {
		corsConfig.AllowOrigins = strings.Split(allowedOrigins, ",")
	} else {
		corsConfig.AllowOrigins = []string{"http://localhost:3000", "http://localhost:3001"}
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization", "X-Request-ID")
	router.Use(cors.New(corsConfig))

	// Health check
	router.GET("/health", healthHandler.Health)
	router.GET("/ready", healthHandler.Ready)

	// API routes
	v1 := router.Group("/api/v1")
	{
		products := v1.Group("/products")
		{
			products.GET("/:id/prices", pricingHandler.ListPrices)
			products.GET("/:id/price-points", pricingHandler.ListPricePoints)
			products.POST("/:id/price", pricingHandler.UpdatePrice)
			products.POST("/:id/prices/bulk", pricingHandler.BulkEdit)
		}
	}

	return router
}
