package app

import (
	httpMW "github.com/gitfit/gitfit-backend/internal/http/middleware"
	"github.com/gitfit/gitfit-backend/internal/platform/logger"
)

type Middleware struct {
	Auth *httpMW.AuthMiddleware
}

func wireMiddleware(log *logger.Logger, cfg Config) Middleware {
	return Middleware{
		Auth: httpMW.NewAuthMiddleware(log, cfg.JWTSecretKey),
	}
}
