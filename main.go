// File: skybook/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"skybook/config"
	"skybook/handlers"
	"skybook/middleware"
	"skybook/routes"
	"skybook/services/booking"
	"skybook/services/duffel"
	ai "skybook/services/intelligence"
	"skybook/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	if config.AppConfig.DuffelAPIKey == "" {
		logger.Sugar().Fatal("main: DUFFEL_API_KEY is required")
	}

	utils.InitChatCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// Provider gateway and booking workflow.
	gateway := duffel.NewClient(config.AppConfig.DuffelBaseURL, config.AppConfig.DuffelAPIKey, logger)
	bookingService := &booking.DefaultBookingService{
		Gateway:              gateway,
		Logger:               logger,
		ReferenceCarrierName: config.AppConfig.ReferenceCarrierName,
		ReferenceCarrierCode: config.AppConfig.ReferenceCarrierCode,
	}

	// Conversation loop.
	ctxStore := ai.NewRedisContextStore(utils.GetChatCacheClient(), 30*time.Minute)
	aiSvc := ai.NewDefaultAIService(config.AppConfig.GeminiAPIKey, ctxStore, bookingService, logger)

	bookingHandler := handlers.NewBookingHandler(bookingService, logger)
	aiHandler := handlers.NewAIHandler(aiSvc)

	routes.RegisterRoutes(router, bookingHandler, aiHandler)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
