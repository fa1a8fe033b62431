package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	_ "github.com/Kamar-Folarin/github-release-tracker/docs"
	"github.com/Kamar-Folarin/github-release-tracker/internal/api"
	"github.com/Kamar-Folarin/github-release-tracker/internal/app"
	"github.com/Kamar-Folarin/github-release-tracker/internal/config"
	"github.com/Kamar-Folarin/github-release-tracker/internal/scheduler"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found")
	}

	// Load configuration with defaults
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	logger := app.NewLogger(cfg.LogLevel)
	if logger.GetLevel() < logrus.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}

	application, err := app.New(cfg, logger)
	if err != nil {
		logger.Fatalf("Failed to initialize application: %v", err)
	}
	defer application.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Run migrations with retry logic
	if err := application.Migrate(ctx, 3, 5*time.Second); err != nil {
		logger.Fatalf("Failed to run migrations after retries: %v", err)
	}

	handler := api.NewHandler(
		application.Service,
		application.Service,
		application.Service,
		application.Store,
		logger,
	)
	router := api.SetupRouter(handler, logger)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.WithFields(logrus.Fields{
			"port":   cfg.Port,
			"driver": cfg.Database.Driver,
		}).Info("Server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Server failed: %v", err)
		}
	}()

	sched := scheduler.New(application.Service, &cfg.Sync, logger)
	sched.Start(ctx)
	if cfg.Sync.OnStartup {
		go sched.RunOnce(ctx)
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	cancel()
	sched.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Server shutdown failed: %v", err)
	}
	logger.Info("Server exited properly")
}
