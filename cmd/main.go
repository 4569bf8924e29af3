package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"taxonomy-service/internal/config"
	"taxonomy-service/internal/events"
	"taxonomy-service/internal/handlers"
	"taxonomy-service/internal/middleware"
	"taxonomy-service/internal/models"
	"taxonomy-service/internal/repository"
)

// @title Product Taxonomy & SKU API
// @version 1.0.0
// @description Product taxonomy, reference vocabularies, POM catalog and SKU materialization service

// @contact.name Taxonomy API Support
// @contact.url http://www.example.com/support
// @contact.email support@example.com

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8084
// @BasePath /api/v1

// @securityDefinitions.bearer BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Initialize configuration
	cfg := config.Load()

	// Initialize database
	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	handlers.SetDB(db)

	// Initialize Redis client
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}
	redisOpts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Printf("WARNING: Failed to parse Redis URL: %v (continuing without Redis)", err)
		redisOpts = &redis.Options{
			Addr: "localhost:6379",
		}
	}
	redisClient := redis.NewClient(redisOpts)

	// Test Redis connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Printf("WARNING: Failed to connect to Redis: %v (caching will be disabled)", err)
		redisClient = nil
	} else {
		log.Println("✓ Redis connected successfully")
	}
	cancel()

	// Structured logger shared by events and handlers
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetLevel(logrus.InfoLevel)

	// Initialize NATS events publisher
	eventsPublisher, err := events.NewPublisher(logger)
	if err != nil {
		log.Printf("WARNING: Failed to initialize events publisher: %v (events won't be published)", err)
	} else {
		log.Println("✓ NATS events publisher initialized")
	}

	// Initialize repositories
	categoryRepo := repository.NewCategoryRepository(db, redisClient)
	vocabularyRepo := repository.NewVocabularyRepository(db)
	pomRepo := repository.NewPOMRepository(db)
	skuRepo := repository.NewSKURepository(db, redisClient, cfg.DefaultPageSize, cfg.MaxPageSize)

	// Seed the attribute-type registry. Idempotent, runs on every boot.
	if created, err := categoryRepo.EnsureAttributeTypes(models.DefaultAttributeTypes); err != nil {
		log.Printf("WARNING: Failed to seed attribute types: %v", err)
	} else if created > 0 {
		log.Printf("✓ Seeded %d attribute types", created)
	}

	// Initialize handlers
	categoryHandler := handlers.NewCategoryHandler(categoryRepo, eventsPublisher)
	vocabularyHandler := handlers.NewVocabularyHandler(vocabularyRepo)
	pomHandler := handlers.NewPOMHandler(pomRepo)
	skuHandler := handlers.NewSKUHandler(skuRepo, vocabularyRepo, categoryRepo, eventsPublisher, logger)

	// Initialize Gin router
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Add CORS middleware
	router.Use(middleware.CORS())

	// Health check endpoints (no auth required)
	router.GET("/health", handlers.HealthCheck)
	router.GET("/ready", handlers.ReadinessCheck)

	// Protected API routes
	api := router.Group("/api/v1")
	api.Use(middleware.AdminAuth(cfg.JWTSecret))

	v1 := api.Group("")
	{
		categories := v1.Group("/categories")
		{
			categories.GET("", categoryHandler.ListCategories)
			categories.GET("/:id/children", categoryHandler.GetCategoryChildren)
			categories.POST("", categoryHandler.CreateCategory)
			categories.PUT("/:id", categoryHandler.RenameCategory)
			categories.DELETE("/:id", categoryHandler.DeleteCategory)

			categories.PUT("/:id/attributes/:slug", categoryHandler.SetCategoryAttribute)
		}
		v1.GET("/category-attributes", categoryHandler.GetAllCategoryAttributes)

		attributeTypes := v1.Group("/attribute-types")
		{
			attributeTypes.GET("", categoryHandler.ListAttributeTypes)
			attributeTypes.POST("", categoryHandler.CreateAttributeType)
			attributeTypes.POST("/ensure", categoryHandler.EnsureAttributeTypes)
		}

		v1.GET("/sizes", vocabularyHandler.ListSizes)
		v1.POST("/sizes", vocabularyHandler.CreateSize)
		v1.GET("/colors", vocabularyHandler.ListColors)
		v1.POST("/colors", vocabularyHandler.CreateColor)
		v1.GET("/fits", vocabularyHandler.ListFits)
		v1.POST("/fits", vocabularyHandler.CreateFit)
		v1.GET("/patterns", vocabularyHandler.ListPatterns)
		v1.POST("/patterns", vocabularyHandler.CreatePattern)
		v1.GET("/materials", vocabularyHandler.ListMaterials)
		v1.POST("/materials", vocabularyHandler.CreateMaterial)
		v1.GET("/genders", vocabularyHandler.ListGenders)
		v1.POST("/genders", vocabularyHandler.CreateGender)

		v1.GET("/pom-categories", pomHandler.ListPOMCategories)
		v1.POST("/pom-categories", pomHandler.CreatePOMCategory)
		v1.GET("/pom-definitions", pomHandler.ListPOMDefinitions)
		v1.POST("/pom-definitions", pomHandler.CreatePOMDefinition)
		v1.GET("/categories/:id/pom-links", pomHandler.GetApparelPOMs)
		v1.PUT("/categories/:id/pom-links", pomHandler.SetApparelPOMs)

		skus := v1.Group("/skus")
		{
			skus.GET("", skuHandler.ListActiveSKUs)
			skus.GET("/trash", skuHandler.ListTrashedSKUs)
			skus.POST("/generate", skuHandler.GenerateSKUs)
			skus.POST("/export", skuHandler.ExportSKUs)
			skus.PUT("/:id", skuHandler.UpdateSKU)
			skus.DELETE("/:id", skuHandler.DeleteSKU)
			skus.POST("/:id/restore", skuHandler.RestoreSKU)
			skus.DELETE("/:id/permanent", skuHandler.PermanentDeleteSKU)
		}
	}

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Start server
	port := cfg.Port

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("Taxonomy service starting on port %s", port)
		if err := router.Run(":" + port); err != nil {
			log.Fatal("Failed to start server:", err)
		}
	}()

	// Wait for interrupt signal
	<-quit
	log.Println("Shutting down taxonomy-service...")

	if eventsPublisher != nil {
		eventsPublisher.Close()
		log.Println("✓ Events publisher closed")
	}

	log.Println("Taxonomy service stopped")
}
