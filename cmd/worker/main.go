package main

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"

	"finance-core/internal/consumers"
	"finance-core/internal/database"
	"finance-core/internal/logger"
	"finance-core/internal/services"
	"finance-core/internal/storage"
	"finance-core/internal/worker"
)

func main() {
	// Load env
	if err := godotenv.Load("../../.env"); err != nil {
		log.Println("No .env file found in ../../.env, trying .env")
		if err := godotenv.Load(".env"); err != nil {
			log.Println("No .env file found, using system env")
		}
	}

	appLog := logger.New()

	// Connect DB
	database.Connect()
	db := database.DB

	// Core services
	store := storage.NewGormStore(db)
	transactionService := services.NewTransactionService(store, os.Getenv("BASE_CURRENCY"), appLog)
	batchService := services.NewBatchService(store, transactionService, services.BatchConfig{
		BatchSize:     envInt("BATCH_SIZE", services.DefaultBatchSize),
		RetryAttempts: envInt("RETRY_ATTEMPTS", services.DefaultRetryAttempts),
		RetryDelay:    time.Duration(envInt("RETRY_DELAY_MS", 1000)) * time.Millisecond,
	}, appLog)

	processor := consumers.NewBatchProcessor(batchService, appLog)

	// Redis
	redisAddr := os.Getenv("REDIS_URL")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	redisOpt := asynq.RedisClientOpt{Addr: redisAddr}

	log.Println("Starting Asynq Worker...")
	worker.StartWorker(redisOpt, processor)
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
