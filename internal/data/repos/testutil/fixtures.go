package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/foodgram-backend/internal/domain"
)

func SeedUser(tb testing.TB, ctx context.Context, tx *gorm.DB, username string) *types.User {
	tb.Helper()
	now := time.Now().UTC()
	u := &types.User{
		ID:        uuid.New(),
		Email:     username + "@example.com",
		Username:  username,
		Password:  "pw",
		FirstName: "A",
		LastName:  "B",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := tx.WithContext(ctx).Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedIngredient(tb testing.TB, ctx context.Context, tx *gorm.DB, name, unit string) *types.Ingredient {
	tb.Helper()
	ing := &types.Ingredient{ID: uuid.New(), Name: name, MeasurementUnit: unit}
	if err := tx.WithContext(ctx).Create(ing).Error; err != nil {
		tb.Fatalf("seed ingredient: %v", err)
	}
	return ing
}

func SeedTag(tb testing.TB, ctx context.Context, tx *gorm.DB, name, color, slug string) *types.Tag {
	tb.Helper()
	tag := &types.Tag{ID: uuid.New(), Name: name, Color: color, Slug: slug}
	if err := tx.WithContext(ctx).Create(tag).Error; err != nil {
		tb.Fatalf("seed tag: %v", err)
	}
	return tag
}

// SeedRecipe inserts a recipe owned by authorID with the given
// ingredientID -> amount line items.
func SeedRecipe(tb testing.TB, ctx context.Context, tx *gorm.DB, authorID uuid.UUID, name string, items map[uuid.UUID]int) *types.Recipe {
	tb.Helper()
	now := time.Now().UTC()
	r := &types.Recipe{
		ID:          uuid.New(),
		AuthorID:    authorID,
		Name:        name,
		Text:        "text",
		CookingTime: 10,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := tx.WithContext(ctx).Omit("Author").Create(r).Error; err != nil {
		tb.Fatalf("seed recipe: %v", err)
	}
	for ingID, amount := range items {
		li := &types.LineItem{ID: uuid.New(), RecipeID: r.ID, IngredientID: ingID, Amount: amount}
		if err := tx.WithContext(ctx).Omit("Recipe", "Ingredient").Create(li).Error; err != nil {
			tb.Fatalf("seed line item: %v", err)
		}
	}
	return r
}

func SeedCartEntry(tb testing.TB, ctx context.Context, tx *gorm.DB, userID, recipeID uuid.UUID) {
	tb.Helper()
	e := &types.CartEntry{ID: uuid.New(), UserID: userID, RecipeID: recipeID, CreatedAt: time.Now().UTC()}
	if err := tx.WithContext(ctx).Omit("User", "Recipe").Create(e).Error; err != nil {
		tb.Fatalf("seed cart entry: %v", err)
	}
}
