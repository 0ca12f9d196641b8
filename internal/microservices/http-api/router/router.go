package router

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"giphyexplorer/internal/catalog"
	"giphyexplorer/internal/config"
	"giphyexplorer/internal/metrics"
	"giphyexplorer/internal/microservices/http-api/handler"
	"giphyexplorer/internal/microservices/http-api/middleware"
	"giphyexplorer/internal/microservices/http-api/repository"
	"giphyexplorer/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

// Pinger reports whether the database is reachable. *sql.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Deps struct {
	Config   *config.Config
	Logger   *slog.Logger
	Users    repository.UserRepository
	Ratings  repository.RatingRepository
	Comments repository.CommentRepository
	Catalog  catalog.Catalog
	DB       Pinger

	// Limiter is optional; the caller owns its cleanup loop.
	Limiter *middleware.RateLimiter
}

// New builds the HTTP engine with every route and middleware wired.
func New(deps Deps) *gin.Engine {
	cfg, logger := deps.Config, deps.Logger
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	authService := service.NewAuthService(deps.Users, cfg)
	ratingService := service.NewRatingService(deps.Ratings)
	commentService := service.NewCommentService(deps.Comments)
	gifService := service.NewGifService(deps.Catalog)

	limiter := deps.Limiter
	if limiter == nil {
		limiter = middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	}

	r := gin.New()
	// Forwarded headers count only from configured proxies
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		logger.Warn("trusted_proxies_rejected", "error", err)
		r.ForwardedByClientIP = false
	}
	r.Use(
		middleware.Recovery(logger),
		middleware.RequestLogger(logger),
	)
	if cfg.MetricsEnabled {
		r.Use(metrics.Middleware())
	}
	r.Use(
		middleware.CORS(cfg.FrontendURL),
		middleware.ErrorHandler(logger),
		middleware.BodyLimit(cfg.BodyLimit),
	)
	r.NoRoute(middleware.NoRoute)

	r.GET("/healthz", healthz(deps.DB))
	if cfg.MetricsEnabled {
		r.GET("/metrics", gin.WrapH(metrics.Handler()))
	}

	requireAuth := middleware.AuthMiddleware(authService, logger)

	api := r.Group("/api", limiter.Handler())
	handler.NewAuthHandler(authService).RegisterRoutes(api, requireAuth)
	handler.NewGifHandler(gifService).RegisterRoutes(api)
	handler.NewRatingHandler(ratingService).RegisterRoutes(api, requireAuth)
	handler.NewCommentHandler(commentService).RegisterRoutes(api, requireAuth)

	return r
}

func healthz(db Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := db.PingContext(ctx); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
