package main

import (
	"fmt"
	"net/http"
	"os"

	"securecare/internal/config"
	"securecare/internal/database"
	"securecare/internal/handlers"
	"securecare/internal/logger"
	"securecare/internal/middleware"
	"securecare/internal/services"
	"securecare/internal/validator"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "securecare/internal/docs" // Import swagger docs
)

// @title           SecureCare API
// @version         1.0
// @description     SecureCare tracks employee progress through the five-level training certification pipeline: Level 1, Level 2, Level 3, Consultant, and Coach.

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

	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	if err := dbManager.Migrate(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	validator.Register()

	// Initialize services
	db := dbManager.DB()
	userService := services.NewUserService(db)
	employeeService := services.NewEmployeeService(db)
	advisorService := services.NewAdvisorService(db)
	trainingService := services.NewTrainingService(db, employeeService)
	auditService := services.NewAuditService(db)
	statsCache := cache.New(appConfig.StatsCacheTTL, 2*appConfig.StatsCacheTTL)
	statsService := services.NewStatsService(db, statsCache, appConfig.StatsCacheTTL)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	employeeHandler := handlers.NewEmployeeHandler(employeeService, auditService, statsService)
	advisorHandler := handlers.NewAdvisorHandler(advisorService, auditService)
	trainingHandler := handlers.NewTrainingHandler(trainingService, auditService, statsService)
	auditHandler := handlers.NewAuditHandler(auditService)
	statsHandler := handlers.NewStatsHandler(statsService)

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
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	// User profile
	protected.GET("/profile", authHandler.GetProfile)

	// Employee routes
	employees := protected.Group("/employees")
	employees.POST("", employeeHandler.CreateEmployee)
	employees.GET("", employeeHandler.GetEmployees)
	employees.GET("/:id", employeeHandler.GetEmployee)
	employees.PUT("/:id", employeeHandler.UpdateEmployee)
	employees.GET("/:id/progress", employeeHandler.GetProgress)

	// Training mutation routes
	training := employees.Group("/:id/training/:level")
	training.POST("/assign", trainingHandler.Assign)
	training.POST("/schedule", trainingHandler.Schedule)
	training.PUT("/reschedule", trainingHandler.Reschedule)
	training.POST("/complete", trainingHandler.Complete)
	training.POST("/conference/approve", trainingHandler.ApproveConference)
	training.POST("/conference/reject", trainingHandler.RejectConference)
	training.POST("/award", trainingHandler.Award)
	training.PUT("/notes", trainingHandler.UpdateNotes)
	training.PUT("/advisor", trainingHandler.SetAdvisor)

	// Advisor routes
	advisors := protected.Group("/advisors")
	advisors.POST("", advisorHandler.CreateAdvisor)
	advisors.GET("", advisorHandler.GetAdvisors)
	advisors.GET("/:id", advisorHandler.GetAdvisor)

	// Audit and stats
	protected.GET("/audit", auditHandler.GetAuditLog)
	protected.GET("/stats/levels", statsHandler.GetLevelStats)

	log.Infof("Starting SecureCare backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
