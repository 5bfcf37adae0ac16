package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/andrewcharlwood/HighCostDrugsPathways-sub001/internal/adapters/cache"
	"github.com/andrewcharlwood/HighCostDrugsPathways-sub001/internal/adapters/database"
	"github.com/andrewcharlwood/HighCostDrugsPathways-sub001/internal/api/handlers"
	"github.com/andrewcharlwood/HighCostDrugsPathways-sub001/internal/api/middleware"
	"github.com/andrewcharlwood/HighCostDrugsPathways-sub001/internal/api/routes"
	"github.com/andrewcharlwood/HighCostDrugsPathways-sub001/internal/application/services"
	"github.com/andrewcharlwood/HighCostDrugsPathways-sub001/internal/domain/providers"
	"github.com/andrewcharlwood/HighCostDrugsPathways-sub001/internal/infrastructure/clients/redis"
	"github.com/andrewcharlwood/HighCostDrugsPathways-sub001/internal/infrastructure/clients/sqlite"
	"github.com/andrewcharlwood/HighCostDrugsPathways-sub001/internal/infrastructure/observability"
	"github.com/andrewcharlwood/HighCostDrugsPathways-sub001/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Env)

	// Set up context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	var shutdown func(context.Context) error
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err = observability.Setup(
			ctx,
			cfg.OTEL.ServiceName,
			cfg.OTEL.ServiceVersion,
			cfg.OTEL.Endpoint,
		)
		if err != nil {
			log.Printf("Warning: Failed to set up OpenTelemetry: %v", err)
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Printf("Error shutting down OpenTelemetry: %v", err)
				}
			}()
			log.Println("OpenTelemetry initialized successfully")
		}
	}

	// Initialize metrics
	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatalf("Failed to initialize metrics: %v", err)
	}

	// The pathway store may not exist yet on first boot; the nightly refresh
	// creates it. Every query degrades gracefully until then, so a failed
	// probe is only worth a warning.
	if probe, err := sqlite.Open(cfg.Store.Path); err != nil {
		log.Printf("Warning: pathway store not available at %s: %v", cfg.Store.Path, err)
	} else {
		probe.Close()
		log.Printf("Pathway store found at %s", cfg.Store.Path)
	}

	// Initialize Redis client
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Printf("Warning: Failed to initialize Redis client: %v", err)
		// Continue without Redis - the application can work without caching
	} else {
		defer redisClient.Close()
		log.Println("Redis client initialized successfully")
	}

	var cacheProvider providers.CacheProvider
	if redisClient != nil {
		cacheProvider = cache.NewRedisAdapter(redisClient)
	}

	// Initialize adapters
	pathwayAdapter := database.NewPathwayAdapter(cfg.Store.Path)
	refreshLogAdapter := database.NewRefreshLogAdapter(cfg.Store.Path)
	drugIndicationAdapter := database.NewDrugIndicationAdapter(cfg.Store.Path)

	// Initialize services
	analyticsService := services.NewAnalyticsService(
		pathwayAdapter,
		refreshLogAdapter,
		drugIndicationAdapter,
	)

	// Initialize handlers
	pathwayHandler := handlers.NewPathwayHandler(analyticsService)
	costHandler := handlers.NewCostHandler(analyticsService)
	graphHandler := handlers.NewGraphHandler(analyticsService)
	usageHandler := handlers.NewUsageHandler(analyticsService)
	funnelHandler := handlers.NewFunnelHandler(analyticsService)
	refreshHandler := handlers.NewRefreshHandler(analyticsService)

	// Initialize cache middleware
	var cacheMiddleware *middleware.CacheMiddleware
	if cacheProvider != nil {
		cacheMiddleware = middleware.NewCacheMiddleware(cacheProvider, metrics)
		log.Println("Cache middleware initialized successfully")
	}

	// Set up router
	router := routes.NewRouter(
		pathwayHandler,
		costHandler,
		graphHandler,
		usageHandler,
		funnelHandler,
		refreshHandler,
		cacheMiddleware,
		metrics,
	)

	handler := router.SetupRoutes()

	// Create HTTP server
	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on %s", serverAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during server shutdown: %v", err)
	}

	log.Println("Server stopped")
}
