package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jiwpark00/what-to-cook-backend/config"
	"github.com/jiwpark00/what-to-cook-backend/internal/database"
	"github.com/jiwpark00/what-to-cook-backend/internal/server"
	"github.com/jiwpark00/what-to-cook-backend/internal/service"
)

func main() {
	logger := log.New(os.Stdout, "[what-to-cook] ", log.LstdFlags)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.NewConnection(cfg)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	redisClient, err := database.NewRedisClient(cfg)
	if err != nil {
		// The feed works without its cache; log and continue.
		logger.Printf("Redis unavailable, feed caching disabled: %v", err)
		redisClient = nil
	}

	llm, err := service.NewLLMService()
	if err != nil {
		logger.Fatalf("Failed to initialize AI client: %v", err)
	}

	srv := server.New(cfg, db, redisClient, llm, logger)

	errChan := make(chan error, 1)
	go func() {
		logger.Printf("Starting server on %s:%s", cfg.ServerHost, cfg.ServerPort)
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			logger.Fatalf("Server error: %v", err)
		}
	case sig := <-quit:
		logger.Printf("Received signal: %v", sig)
	}

	logger.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatalf("Server shutdown error: %v", err)
	}
	logger.Println("Server stopped")
}
