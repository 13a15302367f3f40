package app

import (
	"time"

	"github.com/gitfit/gitfit-backend/internal/platform/logger"
	"github.com/gitfit/gitfit-backend/internal/utils"
)

type Config struct {
	Port           string
	JWTSecretKey   string
	DefaultEpsilon float64
	PolicySeed     int64
	VoicepackPath  string
	Environment    string
	Version        string
}

func LoadConfig(log *logger.Logger) Config {
	return Config{
		Port:           utils.GetEnv("PORT", "8080", log),
		JWTSecretKey:   utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log),
		DefaultEpsilon: utils.GetEnvAsFloat("POLICY_EPSILON", 0.1, log),
		PolicySeed:     int64(utils.GetEnvAsInt("POLICY_SEED", int(time.Now().UnixNano()), log)),
		VoicepackPath:  utils.GetEnv("VOICEPACK_PATH", "", log),
		Environment:    utils.GetEnv("ENVIRONMENT", "development", log),
		Version:        utils.GetEnv("SERVICE_VERSION", "dev", log),
	}
}
