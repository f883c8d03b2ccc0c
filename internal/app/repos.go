package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/foodgram-backend/internal/data/repos"
	"github.com/yungbote/foodgram-backend/internal/platform/logger"
)

type Repos struct {
	User         repos.UserRepo
	Subscription repos.SubscriptionRepo
	Ingredient   repos.IngredientRepo
	Tag          repos.TagRepo
	Recipe       repos.RecipeRepo
	LineItem     repos.LineItemRepo
	RecipeTag    repos.RecipeTagRepo
	Cart         repos.CartRepo
	Favorite     repos.FavoriteRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:         repos.NewUserRepo(db, log),
		Subscription: repos.NewSubscriptionRepo(db, log),
		Ingredient:   repos.NewIngredientRepo(db, log),
		Tag:          repos.NewTagRepo(db, log),
		Recipe:       repos.NewRecipeRepo(db, log),
		LineItem:     repos.NewLineItemRepo(db, log),
		RecipeTag:    repos.NewRecipeTagRepo(db, log),
		Cart:         repos.NewCartRepo(db, log),
		Favorite:     repos.NewFavoriteRepo(db, log),
	}
}
