package db

import (
	"gorm.io/gorm"

	types "github.com/yungbote/foodgram-backend/internal/domain"
)

// Models lists every table in foreign-key dependency order.
func Models() []any {
	return []any{
		// =========================
		// Identity
		// =========================
		&types.User{},
		&types.Subscription{},

		// =========================
		// Catalog
		// =========================
		&types.Ingredient{},
		&types.Tag{},

		// =========================
		// Recipe composition
		// =========================
		&types.Recipe{},
		&types.RecipeTag{},
		&types.LineItem{},

		// =========================
		// Membership
		// =========================
		&types.CartEntry{},
		&types.FavoriteEntry{},
	}
}

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
