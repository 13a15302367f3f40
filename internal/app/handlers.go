package app

import (
	httpH "github.com/gitfit/gitfit-backend/internal/http/handlers"
	"github.com/gitfit/gitfit-backend/internal/platform/logger"
	"github.com/gitfit/gitfit-backend/internal/realtime"
)

type Handlers struct {
	Health     *httpH.HealthHandler
	Intensity  *httpH.IntensityHandler
	Coaching   *httpH.CoachingHandler
	Adjustment *httpH.AdjustmentHandler
	Telemetry  *httpH.TelemetryHandler
	Realtime   *httpH.RealtimeHandler
}

func wireHandlers(log *logger.Logger, serviceset Services, hub *realtime.Hub) Handlers {
	return Handlers{
		Health:     httpH.NewHealthHandler(),
		Intensity:  httpH.NewIntensityHandler(serviceset.Intensity),
		Coaching:   httpH.NewCoachingHandler(serviceset.Coaching),
		Adjustment: httpH.NewAdjustmentHandler(serviceset.Policy, serviceset.Reward),
		Telemetry:  httpH.NewTelemetryHandler(serviceset.Telemetry),
		Realtime:   httpH.NewRealtimeHandler(log, hub),
	}
}
