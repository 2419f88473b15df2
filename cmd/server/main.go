package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gym-management-api/internal/api"
	"gym-management-api/internal/config"
	"gym-management-api/internal/repository/mongo"
	"gym-management-api/internal/service"
	"gym-management-api/internal/storage"

	"github.com/gin-gonic/gin"
)

// @title Gym Management API
// @version 1.0
// @description API for managing gym members, trainers, plans, subscriptions, and payments.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	logger.Info("starting gym management server")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		logger.Error("could not load config", "error", err)
		os.Exit(1)
	}

	// --- Database Connection ---
	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		logger.Error("could not connect to MongoDB", "error", err)
		os.Exit(1)
	}
	defer func() {
		logger.Info("disconnecting MongoDB")
		if err := mongo.DisconnectDB(dbClient); err != nil {
			logger.Error("failed to disconnect MongoDB", "error", err)
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	logger.Info("database connection established", "database", cfg.Database.Name)

	// --- Ensure Indexes ---
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		mongo.EnsureUserIndexes(ctx, appDB.Collection("users"))
		mongo.EnsureMemberIndexes(ctx, appDB.Collection("members"))
		mongo.EnsureTrainerIndexes(ctx, appDB.Collection("trainers"))
		mongo.EnsureSubscriptionIndexes(ctx, appDB.Collection("subscriptions"))
		mongo.EnsurePaymentIndexes(ctx, appDB.Collection("payments"))
		mongo.EnsureScheduleIndexes(ctx, appDB.Collection("schedules"))
		logger.Info("index creation process completed")
	}()

	// --- Initialize Storage ---
	fileStorage, err := storage.NewS3Storage(cfg.S3, logger)
	if err != nil {
		logger.Error("failed to initialize S3 storage", "error", err)
		os.Exit(1)
	}

	// --- Initialize Repositories ---
	userRepo := mongo.NewMongoUserRepository(appDB)
	memberRepo := mongo.NewMongoMemberRepository(appDB)
	trainerRepo := mongo.NewMongoTrainerRepository(appDB)
	planRepo := mongo.NewMongoPlanRepository(appDB)
	subscriptionRepo := mongo.NewMongoSubscriptionRepository(appDB)
	paymentRepo := mongo.NewMongoPaymentRepository(appDB)
	scheduleRepo := mongo.NewMongoScheduleRepository(appDB)

	// --- Initialize Services ---
	authService := service.NewAuthService(userRepo, memberRepo, trainerRepo, cfg.JWT.Secret, cfg.JWT.Expiration)
	userService := service.NewUserService(userRepo, fileStorage)
	memberService := service.NewMemberService(memberRepo, userRepo, trainerRepo)
	trainerService := service.NewTrainerService(trainerRepo, memberRepo, userRepo)
	planService := service.NewPlanService(planRepo, service.DefaultPlanTiers())
	subscriptionService := service.NewSubscriptionService(subscriptionRepo, paymentRepo, memberRepo, planService, service.NewIDGenerator(), logger)
	paymentService := service.NewPaymentService(paymentRepo)
	scheduleService := service.NewScheduleService(scheduleRepo, memberRepo)

	// --- Seed Plan Catalog ---
	{
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := planService.SeedDefaults(ctx); err != nil {
			logger.Error("failed to seed plan catalog", "error", err)
		}
		cancel()
	}

	// --- Expiration Sweeper ---
	sweeperCtx, stopSweeper := context.WithCancel(context.Background())
	defer stopSweeper()
	sweeper := service.NewExpirationSweeper(subscriptionService, cfg.Sweeper.Interval, logger)
	go sweeper.Run(sweeperCtx)

	// --- Initialize Gin Engine ---
	router := gin.Default()

	api.SetupRoutes(
		router,
		cfg.JWT.Secret,
		authService,
		userService,
		memberService,
		trainerService,
		planService,
		subscriptionService,
		paymentService,
		scheduleService,
	)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("server listening", "address", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("listen and serve failed", "error", err)
			os.Exit(1)
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	stopSweeper()

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server exiting")
}
