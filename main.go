// File: sparklewash/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sparklewash/config"
	"sparklewash/cron"
	"sparklewash/database"
	bookingRepoPkg "sparklewash/database/repository/booking"
	scheduleRepoPkg "sparklewash/database/repository/schedule"
	shopRepoPkg "sparklewash/database/repository/shop"
	userRepoPkg "sparklewash/database/repository/user"
	"sparklewash/handlers"
	"sparklewash/middleware"
	"sparklewash/routes"
	"sparklewash/services/booking"
	"sparklewash/services/shop"
	"sparklewash/services/tasks"
	"sparklewash/services/user"
	"sparklewash/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitSessionCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	stripe.Key = config.AppConfig.StripeKey

	// repositories.
	shopRepo := shopRepoPkg.NewMongoShopRepo()
	scheduleRepo := scheduleRepoPkg.NewMongoScheduleRepo()
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	userRepo := userRepoPkg.NewMongoUserRepo()

	// services.
	sessionStore := booking.NewSessionStore(
		utils.GetSessionCacheClient(),
		time.Duration(config.AppConfig.SessionTTLMinutes)*time.Minute,
	)

	availabilityService := &booking.AvailabilityService{
		Schedules:   scheduleRepo,
		Bookings:    bookingRepo,
		Sessions:    sessionStore,
		StepMinutes: config.AppConfig.SlotStepMinutes,
	}

	var gateway booking.PaymentGateway
	if config.AppConfig.Gateway == "stripe" {
		gateway = booking.NewStripeGateway()
	} else {
		gateway = booking.NewCheckoutGateway(
			config.AppConfig.GatewayBaseURL,
			config.AppConfig.GatewayKeyID,
			config.AppConfig.GatewaySecret,
		)
	}

	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	defer asynqClient.Close()

	orchestrator := &booking.Orchestrator{
		Sessions:      sessionStore,
		Gateway:       gateway,
		Bookings:      bookingRepo,
		Schedules:     scheduleRepo,
		Reconciler:    &tasks.AsynqReconciler{Client: asynqClient},
		DepositAmount: config.AppConfig.DepositAmount,
		Currency:      config.AppConfig.Currency,
	}

	shopService := &shop.DefaultShopService{
		Shops:     shopRepo,
		Schedules: scheduleRepo,
	}
	userService := &user.DefaultUserService{
		Repo: userRepo,
	}

	// handlers.
	handlerBundle := &handlers.HandlerBundle{
		Booking: handlers.NewBookingHandler(sessionStore, availabilityService, orchestrator, bookingRepo, logger),
		Shop:    handlers.NewShopHandler(shopService, logger),
		User:    handlers.NewUserHandler(userService, logger),
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Background worker for post-payment reconciliation.
	cron.InitReconcileWorker(bookingRepo)

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
