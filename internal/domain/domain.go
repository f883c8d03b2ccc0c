package domain

import (
	"github.com/yungbote/foodgram-backend/internal/domain/recipes"
	"github.com/yungbote/foodgram-backend/internal/domain/user"
)

type (
	User         = user.User
	Subscription = user.Subscription

	Ingredient    = recipes.Ingredient
	Tag           = recipes.Tag
	Recipe        = recipes.Recipe
	RecipeTag     = recipes.RecipeTag
	LineItem      = recipes.LineItem
	LineItemRow   = recipes.LineItemRow
	RecipeTagRow  = recipes.RecipeTagRow
	CartEntry     = recipes.CartEntry
	FavoriteEntry = recipes.FavoriteEntry
)
