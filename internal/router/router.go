package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/noah-isme/course-conflict-checker/internal/handler"
	"github.com/noah-isme/course-conflict-checker/internal/middleware"
	"github.com/noah-isme/course-conflict-checker/internal/models"
	"github.com/noah-isme/course-conflict-checker/internal/service"
	"github.com/noah-isme/course-conflict-checker/pkg/logger"
	corsmiddleware "github.com/noah-isme/course-conflict-checker/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/course-conflict-checker/pkg/middleware/requestid"
)

// Options carries everything the HTTP surface needs.
type Options struct {
	APIPrefix      string
	AllowedOrigins []string
	EnableDocs     bool
	EnableMetrics  bool

	Logger    *zap.Logger
	Metrics   *service.MetricsService
	Tokens    middleware.TokenValidator
	Conflicts *handler.ConflictHandler
	Probes    *handler.MetricsHandler
}

// New builds the gin engine with middleware and every route.
func New(opts Options) *gin.Engine {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.APIPrefix == "" {
		opts.APIPrefix = "/api/v1"
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(opts.Logger, "/health", "/ready", "/metrics"))
	r.Use(corsmiddleware.New(opts.AllowedOrigins))
	if opts.EnableMetrics && opts.Metrics != nil {
		r.Use(middleware.Metrics(opts.Metrics))
	}

	if opts.Probes != nil {
		r.GET("/health", opts.Probes.Health)
		r.GET("/ready", opts.Probes.Ready)
		if opts.EnableMetrics {
			r.GET("/metrics", opts.Probes.Prometheus)
		}
	}
	if opts.EnableDocs {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	if opts.Conflicts == nil || opts.Tokens == nil {
		return r
	}

	api := r.Group(opts.APIPrefix)
	api.Use(middleware.WithResponseMeta(), middleware.JWT(opts.Tokens))

	checkers := middleware.RequireRoles(models.RoleAdmin, models.RoleScheduler)
	api.POST("/conflicts/check", checkers, opts.Conflicts.Check)
	api.GET("/terms/:termId/conflicts", checkers, opts.Conflicts.CheckTerm)
	api.GET("/terms/:termId/conflicts/constraints/:constraintId", checkers, opts.Conflicts.ConstraintConflicts)
	api.DELETE("/terms/:termId/constraints/cache",
		middleware.RequireRoles(models.RoleAdmin),
		middleware.Audit(opts.Logger, "invalidate_constraint_cache"),
		opts.Conflicts.InvalidateConstraints,
	)

	return r
}
