package main

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"

	"finance-core/internal/database"
	"finance-core/internal/handlers"
	"finance-core/internal/logger"
	"finance-core/internal/services"
	"finance-core/internal/storage"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found in current directory, trying parent")
		if err := godotenv.Load("../.env"); err != nil {
			log.Println("No .env file found, using system environment variables")
		}
	}

	if mode := os.Getenv("GIN_MODE"); mode != "" {
		gin.SetMode(mode)
	}

	appLog := logger.New()

	// Initialize Database
	database.Connect()
	database.Migrate()
	db := database.DB

	// Persistence port + core services
	store := storage.NewGormStore(db)
	transactionService := services.NewTransactionService(store, os.Getenv("BASE_CURRENCY"), appLog)
	batchService := services.NewBatchService(store, transactionService, services.BatchConfig{
		BatchSize:     envInt("BATCH_SIZE", services.DefaultBatchSize),
		RetryAttempts: envInt("RETRY_ATTEMPTS", services.DefaultRetryAttempts),
		RetryDelay:    time.Duration(envInt("RETRY_DELAY_MS", 1000)) * time.Millisecond,
	}, appLog)

	// Redis/Asynq client for async imports
	redisAddr := os.Getenv("REDIS_URL")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{Addr: redisAddr})
	defer asynqClient.Close()

	importService := services.NewImportService(asynqClient, appLog)

	// Handlers
	transactionHandler := handlers.NewTransactionHandler(transactionService, batchService, importService)
	accountHandler := handlers.NewAccountHandler(db)

	// Initialize Gin
	r := gin.Default()

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "finance-core is up",
		})
	})

	r.POST("/transactions", transactionHandler.CreateTransaction)
	r.GET("/transactions/:id", transactionHandler.GetTransaction)
	r.POST("/transactions/batch", transactionHandler.ProcessBatch)
	r.POST("/transactions/batch/async", transactionHandler.EnqueueBatch)
	r.GET("/accounts/:accountId/transactions", transactionHandler.GetAccountTransactions)
	r.POST("/accounts", accountHandler.CreateAccount)
	r.GET("/accounts/:accountId", accountHandler.GetAccount)

	// Start Cron Schedulers
	archiveService := services.NewArchiveService(db, envInt("ARCHIVE_RETENTION_MONTHS", 4), appLog)
	archiveService.StartScheduler()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("HTTP Server starting on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		log.Printf("Invalid %s value %q, using %d", key, v, fallback)
	}
	return fallback
}
