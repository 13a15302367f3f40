package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/gitfit/gitfit-backend/internal/http/handlers"
	httpMW "github.com/gitfit/gitfit-backend/internal/http/middleware"
	"github.com/gitfit/gitfit-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log *logger.Logger

	AuthMiddleware *httpMW.AuthMiddleware

	HealthHandler     *httpH.HealthHandler
	IntensityHandler  *httpH.IntensityHandler
	CoachingHandler   *httpH.CoachingHandler
	AdjustmentHandler *httpH.AdjustmentHandler
	TelemetryHandler  *httpH.TelemetryHandler
	RealtimeHandler   *httpH.RealtimeHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.Default()
	r.Use(otelgin.Middleware("gitfit-backend"))
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS())

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")

	protected := api.Group("/")
	{
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		// Realtime (SSE)
		if cfg.RealtimeHandler != nil {
			protected.GET("/sse/stream", cfg.RealtimeHandler.Stream)
		}

		// Intensity scoring
		if cfg.IntensityHandler != nil {
			protected.POST("/intensity/score", cfg.IntensityHandler.ScoreSet)
			protected.GET("/intensity/history", cfg.IntensityHandler.GetScoreHistory)
		}

		// Strain coaching
		if cfg.CoachingHandler != nil {
			protected.POST("/coaching/classify", cfg.CoachingHandler.ClassifyStrain)
			protected.GET("/coaching/context", cfg.CoachingHandler.GetContext)
		}

		// Adjustment policy
		if cfg.AdjustmentHandler != nil {
			protected.GET("/adjustments/reward", cfg.AdjustmentHandler.ComputeReward)
			protected.POST("/adjustments/choose", cfg.AdjustmentHandler.Choose)
			protected.POST("/adjustments/outcome", cfg.AdjustmentHandler.RecordOutcome)
			protected.POST("/adjustments/achievement", cfg.AdjustmentHandler.LogAchievement)
			protected.GET("/adjustments/policy", cfg.AdjustmentHandler.GetPolicy)
		}

		// Telemetry ingest
		if cfg.TelemetryHandler != nil {
			protected.POST("/performance", cfg.TelemetryHandler.IngestPerformance)
			protected.POST("/strain", cfg.TelemetryHandler.IngestStrain)
		}
	}

	return r
}
