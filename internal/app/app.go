package app

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	redisclient "github.com/yungbote/foodgram-backend/internal/clients/redis"
	"github.com/yungbote/foodgram-backend/internal/data/db"
	apphttp "github.com/yungbote/foodgram-backend/internal/http"
	"github.com/yungbote/foodgram-backend/internal/observability"
	"github.com/yungbote/foodgram-backend/internal/platform/envutil"
	"github.com/yungbote/foodgram-backend/internal/platform/logger"
)

type App struct {
	Log      *logger.Logger
	DB       *gorm.DB
	Redis    goredis.UniversalClient
	Router   *gin.Engine
	Cfg      Config
	Repos    Repos
	Services Services
	Metrics  *observability.Metrics

	server       *apphttp.Server
	dbService    *db.Service
	otelShutdown func(context.Context) error
	cancel       context.CancelFunc
}

func New(ctx context.Context) (*App, error) {
	log, err := logger.New(envutil.String("LOG_MODE", "development"))
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	log.Info("Loading environment variables...")
	cfg := LoadConfig(log)

	otelShutdown := observability.InitOTel(ctx, log, observability.OtelConfig{
		ServiceName: cfg.ServiceName,
		Environment: cfg.Environment,
		Version:     cfg.Version,
	})
	metrics := observability.Init(log)

	dbService, err := db.NewService(log, cfg.DB)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("init db: %w", err)
	}
	if err := dbService.AutoMigrateAll(); err != nil {
		_ = dbService.Close()
		log.Sync()
		return nil, fmt.Errorf("automigrate: %w", err)
	}
	theDB := dbService.DB()

	var rdb goredis.UniversalClient
	if cfg.Redis.Enabled() {
		rdb, err = redisclient.NewClient(ctx, log, cfg.Redis)
		if err != nil {
			log.Warn("redis unavailable, download limiter stays in-process", "error", err)
			rdb = nil
		}
	}

	reposet := wireRepos(theDB, log)
	serviceset := wireServices(theDB, log, cfg, reposet, metrics)
	middleware := wireMiddleware(log, cfg, serviceset, rdb, metrics)
	handlerset := wireHandlers(log, serviceset)
	server := apphttp.NewServer(log, wireRouterConfig(log, cfg, handlerset, middleware, metrics))

	return &App{
		Log:          log,
		DB:           theDB,
		Redis:        rdb,
		Router:       server.Engine,
		Cfg:          cfg,
		Repos:        reposet,
		Services:     serviceset,
		Metrics:      metrics,
		server:       server,
		dbService:    dbService,
		otelShutdown: otelShutdown,
	}, nil
}

// Start launches the background collectors. It is a no-op on a second call.
func (a *App) Start(ctx context.Context) {
	if a == nil || a.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	a.cancel = cancel

	if a.Metrics != nil {
		a.Metrics.StartServer(ctx, a.Log, a.Cfg.MetricsAddr)
		a.Metrics.StartDBCollector(ctx, a.Log, a.DB)
		a.Metrics.StartSLOEvaluator(ctx, a.Log)
		if a.Redis != nil {
			a.Metrics.StartRedisCollector(ctx, a.Log, a.Redis)
		}
	}
}

// Run serves HTTP until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.server == nil {
		return fmt.Errorf("app not initialized")
	}
	a.Start(ctx)
	return a.server.Run(ctx, ":"+a.Cfg.Port)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
	if a.otelShutdown != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := a.otelShutdown(shutdownCtx); err != nil {
			a.Log.Warn("otel shutdown failed", "error", err)
		}
		cancel()
		a.otelShutdown = nil
	}
	if a.Redis != nil {
		_ = a.Redis.Close()
		a.Redis = nil
	}
	if a.dbService != nil {
		if err := a.dbService.Close(); err != nil {
			a.Log.Warn("db close failed", "error", err)
		}
		a.dbService = nil
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
