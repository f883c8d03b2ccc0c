package recipes

import (
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/foodgram-backend/internal/domain/user"
)

type Recipe struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	AuthorID    uuid.UUID  `gorm:"type:uuid;not null;index;column:author_id" json:"author_id"`
	Author      *user.User `gorm:"foreignKey:AuthorID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	Name        string     `gorm:"size:200;not null;column:name" json:"name"`
	ImageRef    string     `gorm:"column:image_ref" json:"image_ref"`
	Text        string     `gorm:"not null;column:text" json:"text"`
	CookingTime int        `gorm:"not null;column:cooking_time" json:"cooking_time"`

	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Recipe) TableName() string { return "recipe" }

// RecipeTag is the explicit recipe <-> tag join row.
type RecipeTag struct {
	RecipeID uuid.UUID `gorm:"type:uuid;primaryKey;column:recipe_id" json:"recipe_id"`
	Recipe   *Recipe   `gorm:"foreignKey:RecipeID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	TagID    uuid.UUID `gorm:"type:uuid;primaryKey;index;column:tag_id" json:"tag_id"`
	Tag      *Tag      `gorm:"foreignKey:TagID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
}

func (RecipeTag) TableName() string { return "recipe_tag" }

// LineItem is one (recipe, ingredient, amount) row. A recipe lists each
// ingredient at most once.
type LineItem struct {
	ID           uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	RecipeID     uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:idx_recipe_ingredient_pair,priority:1;column:recipe_id" json:"recipe_id"`
	Recipe       *Recipe     `gorm:"foreignKey:RecipeID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	IngredientID uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:idx_recipe_ingredient_pair,priority:2;index;column:ingredient_id" json:"ingredient_id"`
	Ingredient   *Ingredient `gorm:"foreignKey:IngredientID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	Amount       int         `gorm:"not null;check:chk_recipe_ingredient_amount,amount >= 1;column:amount" json:"amount"`
}

func (LineItem) TableName() string { return "recipe_ingredient" }

// LineItemRow is a line item joined with its catalog entry.
type LineItemRow struct {
	RecipeID        uuid.UUID `json:"recipe_id"`
	IngredientID    uuid.UUID `json:"ingredient_id"`
	Name            string    `json:"name"`
	MeasurementUnit string    `json:"measurement_unit"`
	Amount          int       `json:"amount"`
}

// RecipeTagRow is a recipe tag joined with the tag row.
type RecipeTagRow struct {
	RecipeID uuid.UUID `json:"recipe_id"`
	TagID    uuid.UUID `json:"tag_id"`
	Name     string    `json:"name"`
	Color    string    `json:"color"`
	Slug     string    `json:"slug"`
}
