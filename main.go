package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"courtbook/config"
	"courtbook/database"
	courtRepoPkg "courtbook/database/repository/court"
	reservationRepoPkg "courtbook/database/repository/reservation"
	"courtbook/handlers"
	"courtbook/middleware"
	"courtbook/routes"
	"courtbook/services/booking"
	"courtbook/services/notification"
	"courtbook/services/tasks"
	"courtbook/utils"
	"courtbook/workers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	router.Use(cors.Default())

	// repositories.
	courtRepo := courtRepoPkg.NewMongoCourtRepo()
	reservationRepo := reservationRepoPkg.NewMongoReservationRepo()

	if err := courtRepo.EnsureIndexes(); err != nil {
		logger.Warn("failed to ensure court indexes", zap.Error(err))
	}
	if err := reservationRepo.EnsureIndexes(); err != nil {
		logger.Warn("failed to ensure reservation indexes", zap.Error(err))
	}

	// services.
	dispatcher := tasks.NewAsynqDispatcher()
	defer dispatcher.Close()

	reservationService := booking.NewDefaultReservationService(
		reservationRepo,
		courtRepo,
		dispatcher,
		utils.GetCacheClient(),
	)

	// Background worker delivering queued notices.
	workers.InitNotifyWorker(notification.NewSMSGatewaySender())

	// handlers and routes.
	reservationHandler := handlers.NewReservationHandler(reservationService, logger)
	courtHandler := handlers.NewCourtHandler(courtRepo, logger)

	routes.RegisterReservationRoutes(router, reservationHandler)
	routes.RegisterCourtRoutes(router, courtHandler, reservationHandler)
	routes.RegisterHealthRoute(router)

	utils.StartHealthMonitor([]*redis.Client{utils.GetCacheClient()}, database.MongoClient)

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
