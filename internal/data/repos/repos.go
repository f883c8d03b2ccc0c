package repos

import (
	"gorm.io/gorm"

	"github.com/yungbote/foodgram-backend/internal/data/repos/catalog"
	"github.com/yungbote/foodgram-backend/internal/data/repos/membership"
	"github.com/yungbote/foodgram-backend/internal/data/repos/recipes"
	"github.com/yungbote/foodgram-backend/internal/data/repos/user"
	"github.com/yungbote/foodgram-backend/internal/platform/logger"
)

type UserRepo = user.UserRepo
type SubscriptionRepo = user.SubscriptionRepo

type IngredientRepo = catalog.IngredientRepo
type TagRepo = catalog.TagRepo

type RecipeRepo = recipes.RecipeRepo
type RecipeFilter = recipes.RecipeFilter
type LineItemRepo = recipes.LineItemRepo
type RecipeTagRepo = recipes.RecipeTagRepo

type PairRepo = membership.PairRepo
type CartRepo = membership.CartRepo
type FavoriteRepo = membership.FavoriteRepo

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo { return user.NewUserRepo(db, baseLog) }
func NewSubscriptionRepo(db *gorm.DB, baseLog *logger.Logger) SubscriptionRepo {
	return user.NewSubscriptionRepo(db, baseLog)
}

func NewIngredientRepo(db *gorm.DB, baseLog *logger.Logger) IngredientRepo {
	return catalog.NewIngredientRepo(db, baseLog)
}
func NewTagRepo(db *gorm.DB, baseLog *logger.Logger) TagRepo { return catalog.NewTagRepo(db, baseLog) }

func NewRecipeRepo(db *gorm.DB, baseLog *logger.Logger) RecipeRepo {
	return recipes.NewRecipeRepo(db, baseLog)
}
func NewLineItemRepo(db *gorm.DB, baseLog *logger.Logger) LineItemRepo {
	return recipes.NewLineItemRepo(db, baseLog)
}
func NewRecipeTagRepo(db *gorm.DB, baseLog *logger.Logger) RecipeTagRepo {
	return recipes.NewRecipeTagRepo(db, baseLog)
}

func NewCartRepo(db *gorm.DB, baseLog *logger.Logger) CartRepo {
	return membership.NewCartRepo(db, baseLog)
}
func NewFavoriteRepo(db *gorm.DB, baseLog *logger.Logger) FavoriteRepo {
	return membership.NewFavoriteRepo(db, baseLog)
}
