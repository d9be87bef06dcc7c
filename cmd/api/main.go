package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"groupledger/internal/config"
	"groupledger/internal/database"
	"groupledger/internal/handlers"
	"groupledger/internal/logger"
	"groupledger/internal/middleware"
	"groupledger/internal/services"
	"groupledger/internal/validator"

	_ "groupledger/internal/docs" // Import swagger docs
)

// @title           GroupLedger API
// @version         1.0
// @description     GroupLedger keeps a shared fund's transactions and member payments in step and derives balances, payment status and member stats from them.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

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
	if appConfig.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize database configuration
	dbConfig, err := database.NewConfig(appConfig)
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer func() {
		if err := dbManager.Close(); err != nil {
			log.Warnw("failed to close database", "error", err)
		}
	}()

	// Run migrations
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	validator.Register()

	// Initialize services
	db := dbManager.DB()
	userService := services.NewUserService(db)
	groupService := services.NewGroupService(db)
	transactionService := services.NewTransactionService(db)
	paymentService := services.NewPaymentService(db)
	dashboardService := services.NewDashboardService(db)
	reportService := services.NewReportService(db)
	auditService := services.NewAuditService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService, auditService)
	groupHandler := handlers.NewGroupHandler(groupService, auditService)
	transactionHandler := handlers.NewTransactionHandler(transactionService, auditService)
	paymentHandler := handlers.NewPaymentHandler(paymentService, auditService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	reportHandler := handlers.NewReportHandler(reportService, auditService)
	reconcileHandler := handlers.NewReconcileHandler(paymentService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())

	// New Relic is optional; without a license key the agent is not started.
	if appConfig.NewRelicLicenseKey != "" {
		nrApp, err := newrelic.NewApplication(
			newrelic.ConfigAppName(appConfig.NewRelicAppName),
			newrelic.ConfigLicense(appConfig.NewRelicLicenseKey),
			newrelic.ConfigDistributedTracerEnabled(true),
		)
		if err != nil {
			log.Warnw("failed to initialize New Relic", "error", err)
		} else {
			router.Use(nrgin.Middleware(nrApp))
		}
	}

	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())
	router.Use(cors.New(cors.Config{
		AllowOrigins:  appConfig.CORSOrigins,
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders: []string{"Content-Length", "Content-Disposition", "X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}))

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Prometheus metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Scheduled jobs
	internal := router.Group("/internal")
	internal.Use(middleware.JobAuthMiddleware(appConfig.PipelineAPIKey))
	internal.POST("/groups/:id/reconcile", reconcileHandler.RepairGroup)

	// API v1 group
	v1 := router.Group("/api/v1")
	v1.Use(middleware.NewRateLimiter(appConfig.RateLimitRPS, appConfig.RateLimitBurst, 10*time.Minute).Middleware())

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	// User profile
	protected.GET("/profile", authHandler.GetProfile)
	protected.PUT("/profile/active-group", authHandler.SetActiveGroup)

	// Group routes
	groups := protected.Group("/groups")
	groups.POST("", groupHandler.CreateGroup)
	groups.GET("", groupHandler.ListGroups)
	groups.POST("/join", groupHandler.JoinGroup)
	groups.GET("/:id", groupHandler.GetGroup)
	groups.PUT("/:id/settings", groupHandler.UpdateSettings)
	groups.DELETE("/:id/membership", groupHandler.LeaveGroup)
	groups.DELETE("/:id/members/:memberId", groupHandler.RemoveMember)
	groups.PUT("/:id/members/:memberId/role", groupHandler.UpdateMemberRole)
	groups.PUT("/:id/members/:memberId/amount", groupHandler.SetMemberAmount)

	// Transaction routes
	groups.POST("/:id/transactions", transactionHandler.CreateTransaction)
	groups.GET("/:id/transactions", transactionHandler.ListTransactions)
	groups.GET("/:id/transactions/:txId", transactionHandler.GetTransaction)
	groups.PUT("/:id/transactions/:txId", transactionHandler.UpdateTransaction)
	groups.DELETE("/:id/transactions/:txId", transactionHandler.DeleteTransaction)

	// Payment routes
	groups.GET("/:id/members/:memberId/payments", paymentHandler.ListMemberPayments)
	groups.GET("/:id/members/:memberId/status", paymentHandler.GetPaymentStatus)
	groups.GET("/:id/members/:memberId/stats", paymentHandler.GetMemberStats)
	groups.POST("/:id/payments", paymentHandler.CreatePayment)
	groups.GET("/:id/payments/flagged", paymentHandler.ListFlaggedPayments)
	groups.DELETE("/:id/payments/:paymentId", paymentHandler.DeletePayment)
	groups.DELETE("/:id/payments/:paymentId/flag", paymentHandler.ClearReviewFlag)

	// Derived views
	groups.GET("/:id/dashboard", dashboardHandler.GetDashboard)
	groups.GET("/:id/balances", dashboardHandler.GetBalanceHistory)
	groups.GET("/:id/export", reportHandler.ExportLedger)

	log.Infof("Starting GroupLedger server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
