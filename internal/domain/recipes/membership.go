package recipes

import (
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/foodgram-backend/internal/domain/user"
)

// CartEntry marks a recipe as part of a user's shopping cart.
type CartEntry struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_cart_user_recipe,priority:1;column:user_id" json:"user_id"`
	User      *user.User `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	RecipeID  uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_cart_user_recipe,priority:2;index;column:recipe_id" json:"recipe_id"`
	Recipe    *Recipe    `gorm:"foreignKey:RecipeID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time  `gorm:"not null" json:"created_at"`
}

func (CartEntry) TableName() string { return "shopping_cart_entry" }

// FavoriteEntry has the same shape as CartEntry but lives in its own table.
type FavoriteEntry struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_favorite_user_recipe,priority:1;column:user_id" json:"user_id"`
	User      *user.User `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	RecipeID  uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_favorite_user_recipe,priority:2;index;column:recipe_id" json:"recipe_id"`
	Recipe    *Recipe    `gorm:"foreignKey:RecipeID;references:ID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time  `gorm:"not null" json:"created_at"`
}

func (FavoriteEntry) TableName() string { return "favorite_entry" }
