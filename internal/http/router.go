package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	domainagg "github.com/yungbote/foodgram-backend/internal/domain/aggregates"
	httpH "github.com/yungbote/foodgram-backend/internal/http/handlers"
	httpMW "github.com/yungbote/foodgram-backend/internal/http/middleware"
	"github.com/yungbote/foodgram-backend/internal/observability"
	"github.com/yungbote/foodgram-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log     *logger.Logger
	Metrics *observability.Metrics

	ServiceName        string
	CORSAllowedOrigins []string
	DownloadLimiter    httpMW.Limiter

	AuthMiddleware *httpMW.AuthMiddleware

	HealthHandler   *httpH.HealthHandler
	AuthHandler     *httpH.AuthHandler
	UserHandler     *httpH.UserHandler
	CatalogHandler  *httpH.CatalogHandler
	RecipeHandler   *httpH.RecipeHandler
	ShoppingHandler *httpH.ShoppingHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.CORS(cfg.CORSAllowedOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	optional := api.Group("/")
	protected := api.Group("/")
	if cfg.AuthMiddleware != nil {
		optional.Use(cfg.AuthMiddleware.OptionalAuth())
		protected.Use(cfg.AuthMiddleware.RequireAuth())
	}

	// Auth (public)
	if cfg.AuthHandler != nil {
		api.POST("/users", cfg.AuthHandler.Register)
		api.POST("/auth/token/login", cfg.AuthHandler.Login)
		protected.POST("/users/set_password", cfg.AuthHandler.SetPassword)
	}

	// Users and subscriptions
	if cfg.UserHandler != nil {
		optional.GET("/users", cfg.UserHandler.List)
		protected.GET("/users/me", cfg.UserHandler.GetMe)
		protected.GET("/users/subscriptions", cfg.UserHandler.Subscriptions)
		optional.GET("/users/:id", cfg.UserHandler.Get)
		protected.POST("/users/:id/subscribe", cfg.UserHandler.Subscribe)
		protected.DELETE("/users/:id/subscribe", cfg.UserHandler.Unsubscribe)
	}

	// Catalog
	if cfg.CatalogHandler != nil {
		api.GET("/ingredients", cfg.CatalogHandler.ListIngredients)
		api.GET("/ingredients/:id", cfg.CatalogHandler.GetIngredient)
		api.GET("/tags", cfg.CatalogHandler.ListTags)
		api.GET("/tags/:id", cfg.CatalogHandler.GetTag)
	}

	// Shopping list
	if cfg.ShoppingHandler != nil {
		protected.GET("/recipes/shopping_list", cfg.ShoppingHandler.List)
		protected.GET(
			"/recipes/download_shopping_cart",
			httpMW.RateLimit(cfg.Log, "download", cfg.DownloadLimiter, cfg.Metrics),
			cfg.ShoppingHandler.Download,
		)
	}

	// Recipes
	if cfg.RecipeHandler != nil {
		optional.GET("/recipes", cfg.RecipeHandler.List)
		optional.GET("/recipes/:id", cfg.RecipeHandler.Get)
		protected.POST("/recipes", cfg.RecipeHandler.Create)
		protected.PATCH("/recipes/:id", cfg.RecipeHandler.Update)
		protected.DELETE("/recipes/:id", cfg.RecipeHandler.Delete)
		protected.POST("/recipes/:id/shopping_cart", cfg.RecipeHandler.AddMembership(domainagg.MembershipCart))
		protected.DELETE("/recipes/:id/shopping_cart", cfg.RecipeHandler.RemoveMembership(domainagg.MembershipCart))
		protected.POST("/recipes/:id/favorite", cfg.RecipeHandler.AddMembership(domainagg.MembershipFavorite))
		protected.DELETE("/recipes/:id/favorite", cfg.RecipeHandler.RemoveMembership(domainagg.MembershipFavorite))
	}

	return r
}
