package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"smartfinance/internal/analytics"
	"smartfinance/internal/config"
	"smartfinance/internal/database"
	"smartfinance/internal/handlers"
	"smartfinance/internal/logger"
	"smartfinance/internal/market"
	"smartfinance/internal/metrics"
	"smartfinance/internal/middleware"
	"smartfinance/internal/repository"
	"smartfinance/internal/services"
	"smartfinance/internal/session"
	"smartfinance/internal/validator"

	_ "smartfinance/internal/docs" // Import swagger docs
)

// @title           SmartFinance API
// @version         1.0
// @description     SmartFinance is a personal finance application combining a transactional ledger, budget tracking, and investment analytics.
// @termsOfService  http://swagger.io/terms/

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Register custom request validators
	validator.Register()

	// Create database manager and run migrations
	dbManager, err := database.NewManager(appConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Initialize shared infrastructure
	ledger := repository.NewLedger(dbManager.DB())
	sess := session.New()
	collector := metrics.NewCollector()
	marketClient := market.NewHTTPClient(appConfig.MarketBaseURL, appConfig.MarketAPIKey, appConfig.MarketTimeout)
	engine := analytics.NewEngine(marketClient, appConfig.PriceCacheLimit)

	// Initialize services
	transferService := services.NewTransferService(ledger, collector)
	budgetService := services.NewBudgetService(ledger, sess)
	clientService := services.NewClientService(ledger, sess, budgetService)
	investmentService := services.NewInvestmentService(ledger)
	recommendationService := services.NewRecommendationService(marketClient, engine, collector, appConfig.SuggestionPeriod)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(transferService, clientService)
	transferHandler := handlers.NewTransferHandler(transferService, clientService)
	budgetHandler := handlers.NewBudgetHandler(budgetService)
	investmentHandler := handlers.NewInvestmentHandler(investmentService)
	recommendationHandler := handlers.NewRecommendationHandler(recommendationService)
	adminHandler := handlers.NewAdminHandler(clientService, transferService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Prometheus metrics
	router.GET("/metrics", gin.WrapH(collector.Handler()))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	protected.GET("/auth/me", authHandler.Me)

	// Transfer routes
	protected.POST("/transfers", transferHandler.Transfer)
	protected.GET("/transactions", transferHandler.Transactions)
	protected.GET("/transactions/spending", transferHandler.SpendingByCategory)

	// Budget routes
	budgets := protected.Group("/budgets")
	budgets.PUT("", budgetHandler.SaveBudget)
	budgets.GET("", budgetHandler.GetBudgets)
	budgets.GET("/categories", budgetHandler.Categories)
	budgets.GET("/:category/remaining", budgetHandler.RemainingBudget)
	budgets.DELETE("/:category", budgetHandler.DeleteBudget)

	// Investment routes
	investments := protected.Group("/investments")
	investments.POST("", investmentHandler.AddInvestment)
	investments.GET("", investmentHandler.GetInvestments)
	investments.PATCH("/:id", investmentHandler.UpdateInvestment)

	// Recommendation routes
	recommendations := protected.Group("/recommendations")
	recommendations.GET("/suggestions", recommendationHandler.Suggestions)
	recommendations.GET("/trending", recommendationHandler.Trending)
	recommendations.GET("/history/:symbol", recommendationHandler.History)

	// Admin client management
	admin := protected.Group("/admin")
	admin.GET("/clients", adminHandler.ListClients)
	admin.GET("/clients/:address", adminHandler.GetClient)
	admin.DELETE("/clients/:address", adminHandler.DeleteClient)

	log.Infof("Starting SmartFinance backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
