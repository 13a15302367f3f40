package app

import (
	httpx "github.com/gitfit/gitfit-backend/internal/http"
	"github.com/gitfit/gitfit-backend/internal/platform/logger"
)

func wireServer(log *logger.Logger, handlerset Handlers, mw Middleware) *httpx.Server {
	return httpx.NewServer(httpx.RouterConfig{
		Log:               log,
		AuthMiddleware:    mw.Auth,
		HealthHandler:     handlerset.Health,
		IntensityHandler:  handlerset.Intensity,
		CoachingHandler:   handlerset.Coaching,
		AdjustmentHandler: handlerset.Adjustment,
		TelemetryHandler:  handlerset.Telemetry,
		RealtimeHandler:   handlerset.Realtime,
	})
}
