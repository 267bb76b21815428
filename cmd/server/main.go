package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/progressclasses/classes-backend/internal/config"
	"github.com/progressclasses/classes-backend/internal/database"
	"github.com/progressclasses/classes-backend/internal/handler"
	"github.com/progressclasses/classes-backend/internal/logger"
	"github.com/progressclasses/classes-backend/internal/middleware"
	"github.com/progressclasses/classes-backend/internal/repository"
	"github.com/progressclasses/classes-backend/internal/router"
	"github.com/progressclasses/classes-backend/internal/service"
	"github.com/rs/zerolog"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting Progress Classes Backend")

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Initialize Repositories ───────────────────────────────────────
	courseRepo := repository.NewCourseRepository(pool)
	facultyRepo := repository.NewFacultyRepository(pool)
	facultyCourseRepo := repository.NewFacultyCourseRepository(pool)
	enquiryRepo := repository.NewEnquiryRepository(pool)
	adminAuthRepo := repository.NewAdminAuthRepository(pool)

	// ─── Initialize Services ──────────────────────────────────────────
	authService := service.NewAuthService(cfg, adminAuthRepo, log)
	courseService := service.NewCourseService(courseRepo, log)
	facultyService := service.NewFacultyService(facultyRepo, facultyCourseRepo, log)
	enquiryService := service.NewEnquiryService(enquiryRepo, log)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:    handler.NewAuthHandler(authService),
		Course:  handler.NewCourseHandler(courseService),
		Faculty: handler.NewFacultyHandler(facultyService),
		Enquiry: handler.NewEnquiryHandler(enquiryService),
	}

	limiters := router.Limiters{
		Login:   middleware.NewRateLimiter(rdb, "admin_login", cfg.LoginRateLimit, cfg.RateLimitWindow, log),
		Enquiry: middleware.NewRateLimiter(rdb, "enquiry", cfg.EnquiryRateLimit, cfg.RateLimitWindow, log),
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(authService, handlers, limiters, cfg, log)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	// Stop accepting new requests and let in-flight ones finish (5s timeout).
	// Pool and Redis are closed by the deferred calls afterwards.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
