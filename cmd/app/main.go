package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Metafyzik/tennis-club/internal/auth"
	"github.com/Metafyzik/tennis-club/internal/config"
	"github.com/Metafyzik/tennis-club/internal/court"
	"github.com/Metafyzik/tennis-club/internal/db"
	"github.com/Metafyzik/tennis-club/internal/logger"
	"github.com/Metafyzik/tennis-club/internal/reservation"
	"github.com/Metafyzik/tennis-club/internal/seed"
	"github.com/Metafyzik/tennis-club/internal/server"
	"github.com/Metafyzik/tennis-club/internal/surface"
	"github.com/Metafyzik/tennis-club/internal/user"

	"github.com/redis/go-redis/v9"
)

// @title Tennis Club API
// @version 1.0
// @description API for tennis court reservations.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger.Init()
	logger.Info("Starting Tennis Club application")

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	logger.Info("Connecting to database...")
	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()
	logger.Info("Database connected")

	if err := db.RunMigrations(database, "migrations"); err != nil {
		logger.Fatalf("Failed to run migrations: %v", err)
	}
	logger.Info("Migrations completed")

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	defer redisClient.Close()

	userRepo := user.NewRepository(database)
	tokenRepo := auth.NewRefreshTokenRepository(database)
	surfaceRepo := surface.NewRepository(database)
	courtRepo := court.NewCachedRepository(court.NewRepository(database), redisClient)
	reservationRepo := reservation.NewRepository(database)

	userService := user.NewService(userRepo, tokenRepo, cfg.JWTSecret)
	surfaceService := surface.NewService(surfaceRepo)
	courtService := court.NewService(courtRepo, surfaceRepo)
	reservationService := reservation.NewService(reservationRepo, courtRepo, userRepo, cfg.DoublesMultiplier)

	if cfg.SeedData {
		seeder := seed.New(surfaceRepo, courtRepo, userRepo, reservationService)
		if err := seeder.Run(context.Background()); err != nil {
			logger.Fatalf("Failed to seed data: %v", err)
		}
	}

	srv := server.New(cfg, server.Handlers{
		User:        user.NewHandler(userService),
		Surface:     surface.NewHandler(surfaceService),
		Court:       court.NewHandler(courtService),
		Reservation: reservation.NewHandler(reservationService),
	})

	serverErrChan := make(chan error, 1)
	go func() {
		logger.Infof("Server starting on port %s", cfg.Port)
		if err := srv.Start(cfg.Port); err != nil && err != http.ErrServerClosed {
			serverErrChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Infof("Received signal: %v", sig)
	case err := <-serverErrChan:
		logger.Errorf("Server error: %v", err)
	}

	logger.Info("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Errorf("Error during server shutdown: %v", err)
	}

	logger.Info("Server stopped")
}
