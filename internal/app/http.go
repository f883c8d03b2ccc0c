package app

import (
	goredis "github.com/redis/go-redis/v9"

	apphttp "github.com/yungbote/foodgram-backend/internal/http"
	httpH "github.com/yungbote/foodgram-backend/internal/http/handlers"
	httpMW "github.com/yungbote/foodgram-backend/internal/http/middleware"
	"github.com/yungbote/foodgram-backend/internal/observability"
	"github.com/yungbote/foodgram-backend/internal/platform/logger"
)

type Middleware struct {
	Auth            *httpMW.AuthMiddleware
	DownloadLimiter httpMW.Limiter
}

type Handlers struct {
	Health   *httpH.HealthHandler
	Auth     *httpH.AuthHandler
	User     *httpH.UserHandler
	Catalog  *httpH.CatalogHandler
	Recipe   *httpH.RecipeHandler
	Shopping *httpH.ShoppingHandler
}

// wireMiddleware backs the download limiter with redis when a client is
// available and keeps a per-process limiter as the fallback.
func wireMiddleware(log *logger.Logger, cfg Config, services Services, rdb goredis.UniversalClient, metrics *observability.Metrics) Middleware {
	log.Info("Wiring middleware...")
	local := httpMW.NewLocalLimiter(cfg.DownloadRatePerMinute, cfg.DownloadRateBurst)
	var limiter httpMW.Limiter = local
	if rdb != nil {
		limiter = httpMW.FallbackLimiter{
			Primary:   httpMW.NewRedisLimiter(rdb, "foodgram:ratelimit", cfg.DownloadRatePerMinute),
			Secondary: local,
			Log:       log,
		}
	}
	return Middleware{
		Auth:            httpMW.NewAuthMiddleware(log, services.Auth, metrics),
		DownloadLimiter: limiter,
	}
}

func wireHandlers(log *logger.Logger, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:   httpH.NewHealthHandler(),
		Auth:     httpH.NewAuthHandler(services.Auth),
		User:     httpH.NewUserHandler(services.Social),
		Catalog:  httpH.NewCatalogHandler(services.Recipes),
		Recipe:   httpH.NewRecipeHandler(services.Recipes),
		Shopping: httpH.NewShoppingHandler(services.Shopping),
	}
}

func wireRouterConfig(log *logger.Logger, cfg Config, handlers Handlers, middleware Middleware, metrics *observability.Metrics) apphttp.RouterConfig {
	return apphttp.RouterConfig{
		Log:                log,
		Metrics:            metrics,
		ServiceName:        cfg.ServiceName,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		DownloadLimiter:    middleware.DownloadLimiter,
		AuthMiddleware:     middleware.Auth,
		HealthHandler:      handlers.Health,
		AuthHandler:        handlers.Auth,
		UserHandler:        handlers.User,
		CatalogHandler:     handlers.Catalog,
		RecipeHandler:      handlers.Recipe,
		ShoppingHandler:    handlers.Shopping,
	}
}
