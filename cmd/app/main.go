package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"BatiDetect/internal/config"
	"BatiDetect/pkg/asset"
	"BatiDetect/pkg/detector"
	"BatiDetect/pkg/log"
	"BatiDetect/pkg/session"

	"github.com/joho/godotenv"
)

func main() {
	logger := log.NewLogger()
	if err := godotenv.Load(); err != nil {
		logger.Warnf("No .env file loaded, using process environment: %v", err)
	}

	fiberApp := config.NewFiber(logger)
	validator := config.NewValidator()
	sessionStore := session.New()

	assetStore, err := asset.New()
	if err != nil {
		logger.Fatalf("Failed to create asset store: %v", err)
	}

	detectionBackend, err := detector.New()
	if err != nil {
		logger.Fatalf("Failed to create detection backend: %v", err)
	}

	if checker, ok := detectionBackend.(detector.HealthChecker); ok {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := checker.CheckHealth(ctx); err != nil {
			logger.Warnf("Detection backend %s is not healthy yet: %v", detectionBackend.Name(), err)
		}
		cancel()
	}

	server, err := config.NewServer(
		config.WithFiber(fiberApp),
		config.WithLogger(logger),
		config.WithValidator(validator),
		config.WithUtils(),
		config.WithMiddleware(),
		config.WithSessionStore(sessionStore),
		config.WithAssetStore(assetStore),
		config.WithDetector(detectionBackend),
		config.WithJournal(),
		config.WithHTMLView(),
	)
	if err != nil {
		logger.Fatal(err)
	}

	if err := server.RegisterHandler(); err != nil {
		logger.Fatal(err)
	}

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

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Errorf("Error during shutdown: %v", err)
	}
}
