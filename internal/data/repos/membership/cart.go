package membership

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/foodgram-backend/internal/domain"
	"github.com/yungbote/foodgram-backend/internal/platform/logger"
)

type CartRepo interface {
	PairRepo
}

func NewCartRepo(db *gorm.DB, baseLog *logger.Logger) CartRepo {
	return newPairRepo(db, baseLog.With("repo", "CartRepo"), func(userID, recipeID uuid.UUID) *types.CartEntry {
		return &types.CartEntry{ID: uuid.New(), UserID: userID, RecipeID: recipeID, CreatedAt: now()}
	})
}
