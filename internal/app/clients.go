package app

import (
	"os"
	"strings"

	redisbus "github.com/gitfit/gitfit-backend/internal/clients/redis"
	"github.com/gitfit/gitfit-backend/internal/platform/logger"
	"github.com/gitfit/gitfit-backend/internal/services"
)

type Clients struct {
	// DirectiveBus is nil when REDIS_ADDR is unset (single-instance mode).
	DirectiveBus redisbus.DirectiveBus
	Readiness    services.ReadinessClient
}

func wireClients(log *logger.Logger) (Clients, error) {
	clients := Clients{
		Readiness: services.NewReadinessClient(log),
	}

	if strings.TrimSpace(os.Getenv("REDIS_ADDR")) != "" {
		bus, err := redisbus.NewDirectiveBus(log)
		if err != nil {
			return Clients{}, err
		}
		clients.DirectiveBus = bus
	}

	return clients, nil
}
