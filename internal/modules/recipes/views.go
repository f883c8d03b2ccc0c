package recipes

import (
	"github.com/google/uuid"

	types "github.com/yungbote/foodgram-backend/internal/domain"
)

type IngredientView struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	MeasurementUnit string    `json:"measurement_unit"`
}

type TagView struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Color string    `json:"color"`
	Slug  string    `json:"slug"`
}

type UserView struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	IsSubscribed bool      `json:"is_subscribed"`
}

type RecipeIngredientView struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	MeasurementUnit string    `json:"measurement_unit"`
	Amount          int       `json:"amount"`
}

type RecipeView struct {
	ID               uuid.UUID              `json:"id"`
	Tags             []TagView              `json:"tags"`
	Author           UserView               `json:"author"`
	Ingredients      []RecipeIngredientView `json:"ingredients"`
	IsFavorited      bool                   `json:"is_favorited"`
	IsInShoppingCart bool                   `json:"is_in_shopping_cart"`
	Name             string                 `json:"name"`
	ImageRef         string                 `json:"image"`
	Text             string                 `json:"text"`
	CookingTime      int                    `json:"cooking_time"`
}

// RecipeShortView is what cart, favorite and subscription responses embed.
type RecipeShortView struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	ImageRef    string    `json:"image"`
	CookingTime int       `json:"cooking_time"`
}

func NewIngredientView(i *types.Ingredient) IngredientView {
	return IngredientView{ID: i.ID, Name: i.Name, MeasurementUnit: i.MeasurementUnit}
}

func NewTagView(t *types.Tag) TagView {
	return TagView{ID: t.ID, Name: t.Name, Color: t.Color, Slug: t.Slug}
}

func NewUserView(u *types.User, subscribed bool) UserView {
	return UserView{
		ID:           u.ID,
		Email:        u.Email,
		Username:     u.Username,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		IsSubscribed: subscribed,
	}
}

func NewRecipeShortView(r *types.Recipe) RecipeShortView {
	return RecipeShortView{ID: r.ID, Name: r.Name, ImageRef: r.ImageRef, CookingTime: r.CookingTime}
}

func tagViewFromRow(row *types.RecipeTagRow) TagView {
	return TagView{ID: row.TagID, Name: row.Name, Color: row.Color, Slug: row.Slug}
}

func ingredientViewFromRow(row *types.LineItemRow) RecipeIngredientView {
	return RecipeIngredientView{
		ID:              row.IngredientID,
		Name:            row.Name,
		MeasurementUnit: row.MeasurementUnit,
		Amount:          row.Amount,
	}
}
