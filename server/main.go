package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ihor-shnaider2/cinema-api/api/routes"
	"github.com/ihor-shnaider2/cinema-api/internal/shared/config"
	"github.com/ihor-shnaider2/cinema-api/internal/shared/middleware"
	"github.com/ihor-shnaider2/cinema-api/internal/showtimes"
	"github.com/ihor-shnaider2/cinema-api/pkg/cache"
	"github.com/ihor-shnaider2/cinema-api/pkg/logger"
	"github.com/ihor-shnaider2/cinema-api/pkg/ratelimit"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	appLogger := logger.GetDefault()

	// Smart environment loading
	if err := godotenv.Load(); err != nil {
		if os.Getenv("GIN_MODE") == "release" || os.Getenv("DOCKER_CONTAINER") == "true" {
			appLogger.Info("Production environment: using container environment variables")
		} else {
			appLogger.Info("No .env file found, using system environment variables")
		}
	} else {
		appLogger.Info("Development environment: loaded .env file")
	}

	// Load config
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		appLogger.Error("Invalid configuration", slog.Any("error", err))
		os.Exit(1)
	}

	// Set Gin mode (debug/release)
	gin.SetMode(cfg.GinMode)

	// Initialize Rate Limiter (Redis-backed, optional)
	var rateLimiter *ratelimit.RateLimiter
	if cfg.RateLimit.Enabled {
		redisClient, err := cache.Connect(cache.Config{
			Address:  cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			appLogger.Error("Failed to connect to Redis, rate limiting disabled", slog.Any("error", err))
		} else {
			rateLimiter = ratelimit.NewRateLimiter(redisClient, &ratelimit.Config{
				Enabled:         cfg.RateLimit.Enabled,
				WindowDuration:  cfg.RateLimit.WindowDuration,
				DefaultRequests: cfg.RateLimit.DefaultRequests,
				PublicRequests:  cfg.RateLimit.PublicRequests,
				HealthRequests:  cfg.RateLimit.HealthRequests,
				WhitelistedIPs:  cfg.RateLimit.WhitelistedIPs,
			})
			appLogger.Info("Rate limiter initialized",
				slog.Duration("window", cfg.RateLimit.WindowDuration),
				slog.Int("default_requests", cfg.RateLimit.DefaultRequests),
			)
			defer redisClient.Close()
		}
	} else {
		appLogger.Info("Rate limiting disabled")
	}

	// Initialize the showtime fetch engine
	client := showtimes.NewHTTPClient(cfg.Upstream.URL, cfg.Upstream.Timeout)
	fetcher := showtimes.NewFetcher(client, cfg.Upstream, appLogger)

	appLogger.Info("Showtime fetcher initialized",
		slog.String("upstream_url", cfg.Upstream.URL),
		slog.Duration("cache_ttl", cfg.Upstream.CacheTTL),
		slog.Int("retry_attempts", cfg.Upstream.RetryAttempts),
		slog.Int("breaker_threshold", cfg.Upstream.BreakerThreshold),
		slog.Duration("breaker_open_for", cfg.Upstream.BreakerOpenFor),
	)

	// Setup router with rate limiter
	router := setupRouter(cfg, fetcher, rateLimiter)

	// HTTP server
	srv := &http.Server{
		Addr:           cfg.GetServerAddress(),
		Handler:        router,
		ReadTimeout:    cfg.ReadTimeout,
		WriteTimeout:   cfg.WriteTimeout,
		IdleTimeout:    cfg.IdleTimeout,
		MaxHeaderBytes: cfg.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		appLogger.Info("🚀 Server running",
			slog.String("address", cfg.GetServerAddress()),
			slog.String("health_check", fmt.Sprintf("http://localhost:%s/health", cfg.Port)),
			slog.String("seat_plan", fmt.Sprintf("http://localhost:%s%s/showtimes/current/seats", cfg.Port, cfg.GetAPIBasePath())),
			slog.String("version", cfg.APIVersion),
			slog.Bool("rate_limiting", rateLimiter != nil),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("Server failed", slog.Any("error", err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Error("Forced shutdown", slog.Any("error", err))
	}

	appLogger.Info("Server exited gracefully")
}

func setupRouter(cfg *config.Config, fetcher *showtimes.Fetcher, rateLimiter *ratelimit.RateLimiter) *gin.Engine {
	engine := gin.New()
	appLogger := logger.GetDefault()

	// Built-in middleware: request IDs, request logging, panic recovery
	engine.Use(middleware.RequestID(), middleware.RequestLogger(appLogger), gin.Recovery())

	// CORS configuration
	engine.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			return true // allow every origin dynamically
		},
		AllowMethods:     []string{"GET", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	// Global rate limiting middleware (applied to all routes)
	if rateLimiter != nil {
		engine.Use(ratelimit.Middleware(rateLimiter))
		appLogger.Info("Rate limiting middleware applied to all routes")
	}

	// Initialize and setup routes
	appRouter := routes.NewRouter(cfg, fetcher)
	appRouter.SetupRoutes(engine)

	return engine
}
