package app

import (
	"time"

	redisclient "github.com/yungbote/foodgram-backend/internal/clients/redis"
	"github.com/yungbote/foodgram-backend/internal/data/db"
	"github.com/yungbote/foodgram-backend/internal/platform/envutil"
	"github.com/yungbote/foodgram-backend/internal/platform/logger"
)

const defaultJWTSecret = "defaultsecret"

type Config struct {
	Port        string
	ServiceName string
	Environment string
	Version     string

	JWTSecretKey   string
	AccessTokenTTL time.Duration

	DownloadRatePerMinute int
	DownloadRateBurst     int
	CORSAllowedOrigins    []string

	MetricsAddr string

	DB    db.Config
	Redis redisclient.Config
}

func LoadConfig(log *logger.Logger) Config {
	cfg := Config{
		Port:        envutil.String("PORT", "8080"),
		ServiceName: envutil.String("OTEL_SERVICE_NAME", "foodgram-backend"),
		Environment: envutil.String("APP_ENV", "development"),
		Version:     envutil.String("APP_VERSION", "dev"),

		JWTSecretKey:   envutil.String("JWT_SECRET_KEY", defaultJWTSecret),
		AccessTokenTTL: envutil.Seconds("ACCESS_TOKEN_TTL", 24*time.Hour),

		DownloadRatePerMinute: envutil.Int("DOWNLOAD_RATE_PER_MINUTE", 30),
		DownloadRateBurst:     envutil.Int("DOWNLOAD_RATE_BURST", 5),
		CORSAllowedOrigins:    envutil.List("CORS_ALLOWED_ORIGINS", nil),

		MetricsAddr: envutil.String("METRICS_ADDR", ":9090"),

		DB:    db.ConfigFromEnv(),
		Redis: redisclient.ConfigFromEnv(),
	}
	if cfg.JWTSecretKey == defaultJWTSecret {
		log.Warn("JWT_SECRET_KEY not set, using the development default")
	}
	return cfg
}
