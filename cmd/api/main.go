package main

import (
	"fmt"
	"net/http"
	"os"

	"parishbooks/internal/config"
	"parishbooks/internal/database"
	"parishbooks/internal/handlers"
	"parishbooks/internal/logger"
	"parishbooks/internal/middleware"
	"parishbooks/internal/services"
	"parishbooks/internal/validator"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "parishbooks/internal/docs" // Import swagger docs
)

// @title           ParishBooks API
// @version         1.0
// @description     ParishBooks is a church management backend covering finances (accounts, income, expenditure, liabilities with loan reconciliation), members, events, attendance, and messaging.

// @host      localhost:8080
// @BasePath  /api/v1

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

	// Register custom request validators
	validator.Register()

	// Initialize services
	db := dbManager.DB()
	auditService := services.NewAuditService(db)
	accountService := services.NewAccountService(db)
	categoryService := services.NewCategoryService(db)
	incomeService := services.NewIncomeService(db, accountService)
	expenditureService := services.NewExpenditureService(db, accountService)
	reconcileService := services.NewReconcileService(db, accountService, categoryService, appConfig.DefaultAccountID)
	liabilityService := services.NewLiabilityService(db, accountService, reconcileService)
	memberService := services.NewMemberService(db)
	eventService := services.NewEventService(db)
	attendanceService := services.NewAttendanceService(db, memberService, eventService)
	messageService := services.NewMessageService(db, services.NewLogSender(), appConfig.SenderName)

	// Initialize handlers
	accountHandler := handlers.NewAccountHandler(accountService, auditService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	incomeHandler := handlers.NewIncomeHandler(incomeService, auditService)
	expenditureHandler := handlers.NewExpenditureHandler(expenditureService, auditService)
	liabilityHandler := handlers.NewLiabilityHandler(liabilityService, auditService)
	memberHandler := handlers.NewMemberHandler(memberService, auditService)
	eventHandler := handlers.NewEventHandler(eventService)
	attendanceHandler := handlers.NewAttendanceHandler(attendanceService)
	messageHandler := handlers.NewMessageHandler(messageService, auditService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type")

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

	// Account routes
	accounts := v1.Group("/accounts")
	accounts.POST("", accountHandler.CreateAccount)
	accounts.GET("", accountHandler.GetAccounts)
	accounts.GET("/:id", accountHandler.GetAccountByID)
	accounts.PUT("/:id", accountHandler.UpdateAccount)

	// Category routes
	categories := v1.Group("/categories")
	categories.POST("", categoryHandler.CreateCategory)
	categories.GET("", categoryHandler.GetCategories)
	categories.GET("/:id", categoryHandler.GetCategoryByID)
	categories.PUT("/:id", categoryHandler.UpdateCategory)
	categories.DELETE("/:id", categoryHandler.DeleteCategory)

	// Income routes
	income := v1.Group("/income")
	income.POST("", incomeHandler.CreateIncome)
	income.GET("", incomeHandler.GetIncomes)
	income.GET("/:id", incomeHandler.GetIncomeByID)
	income.PUT("/:id", incomeHandler.UpdateIncome)
	income.DELETE("/:id", incomeHandler.DeleteIncome)

	// Expenditure routes
	expenditure := v1.Group("/expenditure")
	expenditure.POST("", expenditureHandler.CreateExpenditure)
	expenditure.GET("", expenditureHandler.GetExpenditures)
	expenditure.GET("/:id", expenditureHandler.GetExpenditureByID)
	expenditure.PUT("/:id", expenditureHandler.UpdateExpenditure)
	expenditure.DELETE("/:id", expenditureHandler.DeleteExpenditure)

	// Liability routes
	liabilities := v1.Group("/liabilities")
	liabilities.POST("", liabilityHandler.CreateLiability)
	liabilities.GET("", liabilityHandler.GetLiabilities)
	liabilities.GET("/:id", liabilityHandler.GetLiabilityByID)
	liabilities.PUT("/:id", liabilityHandler.UpdateLiability)
	liabilities.POST("/:id/payments", liabilityHandler.MakePayment)
	liabilities.DELETE("/:id", liabilityHandler.DeleteLiability)

	// Member routes
	members := v1.Group("/members")
	members.POST("", memberHandler.CreateMember)
	members.GET("", memberHandler.GetMembers)
	members.GET("/:id", memberHandler.GetMemberByID)
	members.PUT("/:id", memberHandler.UpdateMember)
	members.DELETE("/:id", memberHandler.DeleteMember)
	members.GET("/:id/attendance", attendanceHandler.GetMemberAttendance)

	// Event and attendance routes
	events := v1.Group("/events")
	events.POST("", eventHandler.CreateEvent)
	events.GET("", eventHandler.GetEvents)
	events.GET("/:id", eventHandler.GetEventByID)
	events.PUT("/:id", eventHandler.UpdateEvent)
	events.DELETE("/:id", eventHandler.DeleteEvent)
	events.POST("/:id/attendance", attendanceHandler.RecordAttendance)
	events.GET("/:id/attendance", attendanceHandler.GetEventAttendance)
	events.GET("/:id/attendance/summary", attendanceHandler.GetEventSummary)

	v1.DELETE("/attendance/:id", attendanceHandler.DeleteAttendance)

	// Message routes
	messages := v1.Group("/messages")
	messages.POST("", messageHandler.SendMessage)
	messages.GET("", messageHandler.GetMessages)
	messages.GET("/:id", messageHandler.GetMessageByID)

	log.Infof("Starting ParishBooks backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
