package redis

import (
	"context"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/foodgram-backend/internal/platform/envutil"
	"github.com/yungbote/foodgram-backend/internal/platform/logger"
)

type Config struct {
	Addr     string
	Password string
	DB       int
}

// ConfigFromEnv reads REDIS_ADDR, REDIS_PASSWORD and REDIS_DB.
func ConfigFromEnv() Config {
	return Config{
		Addr:     strings.TrimSpace(envutil.String("REDIS_ADDR", "")),
		Password: envutil.String("REDIS_PASSWORD", ""),
		DB:       envutil.Int("REDIS_DB", 0),
	}
}

func (c Config) Enabled() bool { return c.Addr != "" }

// NewClient dials redis and pings it once. Callers should check cfg.Enabled
// first; an empty address is an error here.
func NewClient(ctx context.Context, log *logger.Logger, cfg Config) (goredis.UniversalClient, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	if !cfg.Enabled() {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: 5 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	log.With("service", "RedisClient").Info("Redis connected", "addr", cfg.Addr, "db", cfg.DB)
	return rdb, nil
}
