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

	"github.com/gin-gonic/gin"
	"github.com/kwatts/networth/config"
	"github.com/kwatts/networth/internal/cache"
	"github.com/kwatts/networth/internal/coingecko"
	"github.com/kwatts/networth/internal/database"
	"github.com/kwatts/networth/internal/gnews"
	"github.com/kwatts/networth/internal/handlers"
	"github.com/kwatts/networth/internal/middleware"
	"github.com/kwatts/networth/internal/repository"
	"github.com/kwatts/networth/internal/services"
	"github.com/kwatts/networth/internal/stooq"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Create context for initialization
	ctx := context.Background()

	// Initialize database connection
	db, err := database.New(ctx, cfg.PGURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.EnsureSchema(ctx); err != nil {
		log.Fatalf("Failed to ensure schema: %v", err)
	}

	// Initialize provider clients
	stooqClient := stooq.NewClient()
	cgClient := coingecko.NewClient()
	gnewsClient := gnews.NewClient()

	// Initialize caches
	memCache := cache.NewMemoryCache(cfg.QuoteTTL, cfg.NewsTTL)

	// Initialize repositories
	stateRepo := repository.NewStateRepository(db.Pool)

	// Initialize services
	pricingSvc := services.NewPricingService(memCache, stooqClient, cgClient)
	newsSvc := services.NewNewsService(memCache, gnewsClient, cfg.NewsLimit)
	overviewSvc := services.NewOverviewService(pricingSvc, newsSvc, cfg.LookupTimeout)
	assetSvc := services.NewAssetService(stateRepo)
	goalSvc := services.NewGoalService(stateRepo)

	// Initialize handlers
	assetHandler := handlers.NewAssetHandler(assetSvc)
	goalHandler := handlers.NewGoalHandler(goalSvc)
	overviewHandler := handlers.NewOverviewHandler(overviewSvc, assetSvc)

	// Setup Gin router
	router := gin.Default()

	// Apply global middleware
	router.Use(middleware.RequestLogger())

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Asset routes
	router.GET("/assets", assetHandler.List)
	router.POST("/assets", assetHandler.Create)
	router.PUT("/assets", assetHandler.ReplaceAll)
	router.DELETE("/assets", assetHandler.DeleteAll)
	router.GET("/assets/:id", assetHandler.Get)
	router.PUT("/assets/:id", assetHandler.Replace)
	router.DELETE("/assets/:id", assetHandler.Delete)

	// Goal routes
	router.GET("/goals", goalHandler.Get)
	router.PUT("/goals", goalHandler.Put)
	router.DELETE("/goals", goalHandler.Delete)

	// Portfolio routes
	router.POST("/portfolio/overview", overviewHandler.Compute)
	router.GET("/portfolio/overview", overviewHandler.ComputeStored)

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Give outstanding requests 5 seconds to complete
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	fmt.Println("Server exited")
}
