package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sisventas/separata-backend/internal/database"
	"github.com/sisventas/separata-backend/internal/database/repository"
	"github.com/sisventas/separata-backend/internal/router"
	"github.com/sisventas/separata-backend/internal/services"
	"github.com/sisventas/separata-backend/internal/services/excel"
	"github.com/sisventas/separata-backend/internal/services/export"
	"github.com/sisventas/separata-backend/internal/utils"

	_ "github.com/sisventas/separata-backend/docs"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Configure logging
	configureLogging()

	// Initialize Sentry
	utils.InitSentry()

	// Initialize database connection
	db, err := database.InitDB()
	if err != nil {
		logrus.Fatalf("Failed to initialize database: %v", err)
	}

	// Initialize mutation event publisher (optional: mutations work without it)
	var eventPublisher services.EventPublisher
	eventService, err := services.NewEventService()
	if err != nil {
		logrus.Warnf("Failed to initialize event service: %v", err)
	} else {
		defer eventService.Close()
		eventPublisher = eventService
	}

	// Create SSE hub for refresh signals
	sseHub := services.NewSSEHub()

	// Start the revision poller (bounded staleness for concurrent editors)
	separataRepo := repository.NewSeparataRepository(db)
	poller := services.NewRevisionPoller(separataRepo, sseHub)
	if seconds := getEnvAsInt("POLL_INTERVAL_SECONDS", 5); seconds > 0 {
		poller.SetInterval(time.Duration(seconds) * time.Second)
	}
	poller.Start()
	defer poller.Stop()

	// Export services
	exportsDir := getEnv("EXPORTS_DIR", "./exports")
	priceFileName := getEnv("PRICE_FILE_NAME", "UN00316B.TXT")
	priceFileSvc := export.NewService(exportsDir, priceFileName)
	spreadsheetSvc := excel.NewService(exportsDir)

	// Initialize router
	r := router.SetupRouter(db, eventPublisher, sseHub, priceFileSvc, spreadsheetSvc)

	// Configure HTTP server
	port := getEnv("PORT", "8080")
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", port),
		Handler: r,
	}

	// Start server in a goroutine
	go func() {
		logrus.Infof("Server starting on port %s", port)
		logrus.Infof("API Health Check: http://localhost:%s/api/v1/health", port)
		logrus.Infof("Swagger UI: http://localhost:%s/swagger/index.html", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down server...")

	// Create a deadline for server shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown the server. In-flight mutations are allowed to complete or
	// fail on their own inside the shutdown window.
	if err := srv.Shutdown(ctx); err != nil {
		logrus.Fatalf("Server forced to shutdown: %v", err)
	}

	logrus.Info("Server exited properly")
}

func configureLogging() {
	logLevel := getEnv("LOG_LEVEL", "info")
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, fmt.Sprintf("%d", defaultValue))
	var value int
	if _, err := fmt.Sscanf(valueStr, "%d", &value); err != nil {
		return defaultValue
	}
	return value
}
