package membership

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/foodgram-backend/internal/domain"
	"github.com/yungbote/foodgram-backend/internal/platform/logger"
)

type FavoriteRepo interface {
	PairRepo
}

func NewFavoriteRepo(db *gorm.DB, baseLog *logger.Logger) FavoriteRepo {
	return newPairRepo(db, baseLog.With("repo", "FavoriteRepo"), func(userID, recipeID uuid.UUID) *types.FavoriteEntry {
		return &types.FavoriteEntry{ID: uuid.New(), UserID: userID, RecipeID: recipeID, CreatedAt: now()}
	})
}
