// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"github.com/ihor-shnaider2/cinema-api/internal/shared/config"
	"github.com/ihor-shnaider2/cinema-api/internal/showtimes"
	"github.com/ihor-shnaider2/cinema-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Router holds all route dependencies
type Router struct {
	config  *config.Config
	fetcher *showtimes.Fetcher
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, fetcher *showtimes.Fetcher) *Router {
	return &Router{
		config:  cfg,
		fetcher: fetcher,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	// Health check and basic info endpoints
	r.setupHealthRoutes(engine)

	// API routes
	api := engine.Group(r.config.GetAPIBasePath())
	{
		r.setupShowtimeRoutes(api)
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		snap := r.fetcher.Snapshot()

		body := gin.H{
			"status":        "healthy",
			"timestamp":     time.Now(),
			"service":       "cinema-api",
			"breaker_state": r.fetcher.BreakerState(),
			"has_snapshot":  snap.Document != nil,
		}
		if snap.Document != nil {
			body["snapshot_age_seconds"] = int(snap.Age(time.Now()).Seconds())
		}

		c.JSON(http.StatusOK, body)
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "operational",
			"api_version": r.config.APIVersion,
			"timestamp":   time.Now(),
		})
	})
}

// setupShowtimeRoutes configures the seat availability routes
func (r *Router) setupShowtimeRoutes(rg *gin.RouterGroup) {
	controller := showtimes.NewController(r.fetcher)
	showtimes.SetupShowtimeRoutes(rg, controller)
	logger.GetDefault().Info("Showtime routes registered")
}
