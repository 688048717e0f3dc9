package main

import (
	"UnicornGolang/internal/config"
	"UnicornGolang/pkg/log"
	"UnicornGolang/pkg/redis"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
)

func main() {
	logger := log.NewLogger()
	if err := godotenv.Load(); err != nil {
		logger.Fatalf("Error loading .env file: %v", err)
	}

	fiberApp := config.NewFiber(logger)
	validator := config.NewValidator()
	redisServer := redis.New()

	server, err := config.NewServer(
		config.WithFiber(fiberApp),
		config.WithLogger(logger),
		config.WithValidator(validator),
		config.WithDatabase(),
		config.WithRedisServer(redisServer),
		config.WithMiddleware(),
		config.WithS3Client(),
		config.WithWhatsappClient(),
		config.WithSynthesis(),
		config.WithDecisionEngine(),
		config.WithCompletion(),
		config.WithUtils(),
	)
	if err != nil {
		logger.Fatal(err)
	}

	server.RegisterHandler()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.Run(); err != nil {
			logger.Fatalf("Error starting server: %v", err)
		}
	}()

	logger.Info("Server started successfully")

	<-sigChan
	logger.Info("Shutting down server...")
	server.Shutdown()
}
