package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/foodgram-backend/internal/data/aggregates"
	domainagg "github.com/yungbote/foodgram-backend/internal/domain/aggregates"
	"github.com/yungbote/foodgram-backend/internal/modules/recipes"
	"github.com/yungbote/foodgram-backend/internal/modules/shopping"
	"github.com/yungbote/foodgram-backend/internal/modules/social"
	"github.com/yungbote/foodgram-backend/internal/observability"
	"github.com/yungbote/foodgram-backend/internal/platform/logger"
	"github.com/yungbote/foodgram-backend/internal/report"
	"github.com/yungbote/foodgram-backend/internal/services"
)

type Services struct {
	Auth     services.AuthService
	Recipes  recipes.Usecases
	Social   social.Usecases
	Shopping *shopping.Engine

	RecipeAgg     domainagg.RecipeAggregate
	MembershipAgg domainagg.MembershipAggregate
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, r Repos, metrics *observability.Metrics) Services {
	log.Info("Wiring services...")

	base := aggregates.BaseDeps{
		DB:     db,
		Log:    log,
		Runner: aggregates.NewGormTxRunner(db),
		Hooks:  aggregates.NewObservabilityHooks(metrics),
	}
	recipeAgg := aggregates.NewRecipeAggregate(aggregates.RecipeAggregateDeps{
		Base:        base,
		Recipes:     r.Recipe,
		LineItems:   r.LineItem,
		RecipeTags:  r.RecipeTag,
		Ingredients: r.Ingredient,
		Tags:        r.Tag,
	})
	membershipAgg := aggregates.NewMembershipAggregate(aggregates.MembershipAggregateDeps{
		Base:      base,
		Recipes:   r.Recipe,
		Cart:      r.Cart,
		Favorites: r.Favorite,
	})

	return Services{
		Auth: services.NewAuthService(log, r.User, services.AuthConfig{
			JWTSecretKey: cfg.JWTSecretKey,
			AccessTTL:    cfg.AccessTokenTTL,
		}),
		Recipes: recipes.New(recipes.UsecasesDeps{
			Log:           log,
			Recipes:       r.Recipe,
			LineItems:     r.LineItem,
			RecipeTags:    r.RecipeTag,
			Ingredients:   r.Ingredient,
			Tags:          r.Tag,
			Users:         r.User,
			Subscriptions: r.Subscription,
			Cart:          r.Cart,
			Favorites:     r.Favorite,
			RecipeAgg:     recipeAgg,
			MembershipAgg: membershipAgg,
		}),
		Social: social.New(social.UsecasesDeps{
			Log:           log,
			Users:         r.User,
			Subscriptions: r.Subscription,
			Recipes:       r.Recipe,
		}),
		Shopping: shopping.NewEngine(shopping.EngineDeps{
			Log:         log,
			Cart:        r.Cart,
			Composition: r.LineItem,
			Metrics:     metrics,
			Reports:     report.DefaultRegistry(),
		}),
		RecipeAgg:     recipeAgg,
		MembershipAgg: membershipAgg,
	}
}
