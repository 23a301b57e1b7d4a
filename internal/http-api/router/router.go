package router

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"bookhub/internal/http-api/handler"
	"bookhub/internal/http-api/middleware"
	"bookhub/internal/http-api/service"
	"bookhub/internal/middleware/auth"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Pinger reports whether the database is reachable. *pgxpool.Pool satisfies it.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Dependencies struct {
	Logger         *slog.Logger
	Guard          *auth.Guard
	DB             Pinger
	RequestTimeout time.Duration
	MetricsEnabled bool

	Books           service.BookService
	Reviews         service.ReviewService
	Recommendations service.RecommendationService
	Summaries       service.SummaryService
}

// New builds the gin engine. Everything except /check-conn sits behind
// basic auth.
func New(deps Dependencies) *gin.Engine {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID(logger))
	r.Use(middleware.RequestLog())
	r.Use(middleware.Metrics())

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not Found"})
	})

	r.GET("/check-conn", checkConn(deps.DB, deps.RequestTimeout))

	api := r.Group("", middleware.BasicAuth(deps.Guard))

	handler.NewBookHandler(deps.Books, deps.RequestTimeout).RegisterRoutes(api)
	handler.NewReviewHandler(deps.Reviews, deps.RequestTimeout).RegisterRoutes(api)
	handler.NewSummaryHandler(deps.Summaries).RegisterRoutes(api)
	handler.NewRecommendationHandler(deps.Recommendations, deps.RequestTimeout).RegisterRoutes(api)

	if deps.MetricsEnabled {
		api.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	return r
}

func checkConn(db Pinger, timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db != nil {
			ctx := c.Request.Context()
			if timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}
			if err := db.Ping(ctx); err != nil {
				middleware.Logger(c).Error("database_ping_failed", "error", err)
				c.JSON(http.StatusServiceUnavailable, gin.H{"detail": "database unreachable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"message": "API is alive and database connected"})
	}
}
