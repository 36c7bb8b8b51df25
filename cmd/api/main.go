package main

import (
	"fmt"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"sentinel/internal/config"
	"sentinel/internal/database"
	"sentinel/internal/handlers"
	"sentinel/internal/logger"
	"sentinel/internal/middleware"
	"sentinel/internal/services"
	"sentinel/internal/validator"
)

// @title           Sentinel Agency API
// @version         1.0
// @description     Sentinel is an insurance agency management platform covering accounts, policies, prospects, service work, and sales tracking with a full audit trail.
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

	// Initialize database configuration
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Initialize services
	db := dbManager.DB()
	userService := services.NewUserService(db)
	accountService := services.NewAccountService(db)
	contactService := services.NewContactService(db)
	carrierService := services.NewCarrierService(db)
	policyService := services.NewPolicyService(db)
	prospectService := services.NewProspectService(db)
	serviceItemService := services.NewServiceItemService(db)
	taskService := services.NewTaskService(db)
	salesService := services.NewSalesService(db, appConfig.MonthlyAutoQuota)
	noteService := services.NewNoteService(db)
	documentService := services.NewDocumentService(db)
	dashboardService := services.NewDashboardService(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	accountHandler := handlers.NewAccountHandler(accountService)
	contactHandler := handlers.NewContactHandler(contactService)
	carrierHandler := handlers.NewCarrierHandler(carrierService)
	policyHandler := handlers.NewPolicyHandler(policyService)
	prospectHandler := handlers.NewProspectHandler(prospectService)
	serviceItemHandler := handlers.NewServiceItemHandler(serviceItemService)
	taskHandler := handlers.NewTaskHandler(taskService)
	salesHandler := handlers.NewSalesHandler(salesService)
	noteHandler := handlers.NewNoteHandler(noteService)
	documentHandler := handlers.NewDocumentHandler(documentService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/setup", authHandler.Setup)
	auth.POST("/login", authHandler.Login)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	// Current user
	protected.POST("/auth/register", authHandler.Register)
	protected.GET("/auth/me", authHandler.Me)

	// Account routes
	accounts := protected.Group("/accounts")
	accounts.GET("", accountHandler.ListAccounts)
	accounts.POST("", accountHandler.CreateAccount)
	accounts.GET("/:id", accountHandler.GetAccount)
	accounts.PUT("/:id", accountHandler.UpdateAccount)
	accounts.DELETE("/:id", accountHandler.DeleteAccount)
	accounts.GET("/:id/contacts", accountHandler.GetAccountContacts)

	// Contact routes
	contacts := protected.Group("/contacts")
	contacts.POST("", contactHandler.CreateContact)
	contacts.GET("/:id", contactHandler.GetContact)
	contacts.PUT("/:id", contactHandler.UpdateContact)

	// Carrier routes
	carriers := protected.Group("/carriers")
	carriers.GET("", carrierHandler.ListCarriers)
	carriers.POST("", carrierHandler.CreateCarrier)
	carriers.GET("/:id", carrierHandler.GetCarrier)
	carriers.GET("/:id/contacts", carrierHandler.ListCarrierContacts)
	carriers.POST("/:id/contacts", carrierHandler.CreateCarrierContact)

	// Policy routes
	policies := protected.Group("/policies")
	policies.GET("", policyHandler.ListPolicies)
	policies.POST("", policyHandler.CreatePolicy)
	policies.GET("/:id", policyHandler.GetPolicy)
	policies.PUT("/:id", policyHandler.UpdatePolicy)
	policies.GET("/:id/installments", policyHandler.ListInstallments)
	policies.POST("/:id/installments", policyHandler.CreateInstallment)
	protected.PUT("/installments/:id", policyHandler.UpdateInstallment)

	// Prospect routes
	prospects := protected.Group("/prospects")
	prospects.GET("", prospectHandler.ListProspects)
	prospects.POST("", prospectHandler.CreateProspect)
	prospects.GET("/pipeline", prospectHandler.GetPipeline)
	prospects.GET("/:id", prospectHandler.GetProspect)
	prospects.PUT("/:id", prospectHandler.UpdateProspect)
	prospects.PUT("/:id/stage", prospectHandler.UpdateStage)
	prospects.POST("/:id/convert", prospectHandler.ConvertProspect)

	// Service board routes
	serviceBoard := protected.Group("/service-board")
	serviceBoard.GET("", serviceItemHandler.ListServiceItems)
	serviceBoard.POST("", serviceItemHandler.CreateServiceItem)
	serviceBoard.GET("/:id", serviceItemHandler.GetServiceItem)
	serviceBoard.PUT("/:id", serviceItemHandler.UpdateServiceItem)

	// Task routes
	tasks := protected.Group("/tasks")
	tasks.GET("", taskHandler.ListTasks)
	tasks.GET("/my", taskHandler.ListMyTasks)
	tasks.POST("", taskHandler.CreateTask)
	tasks.PUT("/:id", taskHandler.UpdateTask)

	// Sales log routes
	salesLog := protected.Group("/sales-log")
	salesLog.GET("", salesHandler.ListSales)
	salesLog.POST("", salesHandler.CreateSale)
	salesLog.GET("/summary", salesHandler.GetSummary)
	salesLog.GET("/trends", salesHandler.GetTrends)

	// Note and communication log routes
	notes := protected.Group("/notes")
	notes.GET("", noteHandler.ListNotes)
	notes.POST("", noteHandler.CreateNote)
	commLogs := protected.Group("/comm-logs")
	commLogs.GET("", noteHandler.ListCommLogs)
	commLogs.POST("", noteHandler.CreateCommLog)

	// Document routes
	documents := protected.Group("/documents")
	documents.GET("", documentHandler.ListDocuments)
	documents.POST("", documentHandler.CreateDocument)

	// Dashboard
	protected.GET("/dashboard", dashboardHandler.GetDashboard)

	log.Infof("Starting %s server on port %s", appConfig.AppName, appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
