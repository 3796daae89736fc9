package main

import (
	"context"                                    // context package is needed for Redis operations
	"fintrack/internal/api"                      // Custom package for API handlers
	"fintrack/internal/config"                   // Custom package for configuration
	"fintrack/internal/domain"                   // Custom package for domain models
	"fintrack/internal/events"                   // Event publisher contract
	eventskafka "fintrack/internal/events/kafka" // Kafka publisher
	"fintrack/internal/middleware"               // Custom package for middleware
	"fintrack/internal/repository"               // Custom package for repositories
	"fintrack/internal/service"                  // Custom package for use-case services
	"log"                                        // log package is needed for logging

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
	"gorm.io/driver/mysql"         // MySQL driver for GORM
	"gorm.io/gorm"                 // GORM ORM library
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Connect to the database
	db, err := gorm.Open(mysql.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}

	// Setup Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr, // Redis server address
		Password: cfg.RedisPass, // Redis password
		DB:       cfg.RedisDB,   // Redis database number
	})

	// Test Redis connection
	_, err = redisClient.Ping(context.Background()).Result()
	if err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
	}

	// Setup the event publisher; without brokers events are discarded
	var publisher events.Publisher = events.NopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		publisher = eventskafka.NewPublisher(cfg.KafkaBrokers)
	}

	// Repositories and services
	userRepo := repository.NewGormUserRepository(db)
	statementRepo := repository.NewGormStatementRepository(db)
	userService := service.NewUserService(userRepo, cfg.JWTSecret)
	statementService := service.NewStatementService(userRepo, statementRepo, publisher)

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup Gin
	r := gin.Default() // Gin router instance

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	// Auth routes
	r.POST("/users", api.RegisterHandler(userService)) // Registration endpoint
	r.POST("/sessions", api.LoginHandler(userService)) // Login endpoint

	// Authenticated routes (protected by JWT)
	authGroup := r.Group("")
	authGroup.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	authGroup.GET("/profile", api.ProfileHandler(userService)) // Profile endpoint

	// Statement routes
	statementGroup := authGroup.Group("/statements")
	statementGroup.POST("/deposit", api.CreateStatementHandler(statementService, redisClient, domain.OperationDeposit))   // Deposit endpoint
	statementGroup.POST("/withdraw", api.CreateStatementHandler(statementService, redisClient, domain.OperationWithdraw)) // Withdraw endpoint
	statementGroup.GET("/balance", api.GetBalanceHandler(statementService, redisClient))                                  // Balance endpoint
	statementGroup.GET("/:statement_id", api.GetStatementOperationHandler(statementService))                              // Single statement endpoint

	// Admin routes (protected, admin only)
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret), middleware.AdminOnlyMiddleware(userRepo))
	adminGroup.GET("/users", api.ListUsersHandler(userRepo, redisClient))                // List users endpoint
	adminGroup.GET("/statements", api.ListStatementsHandler(statementRepo, redisClient)) // List statements endpoint

	log.Println("Server running on " + cfg.AppPort) // Log server start
	r.Run(":" + cfg.AppPort)                        // Start the server on port cfg.AppPort
}
