package recipes

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/foodgram-backend/internal/domain"
	"github.com/yungbote/foodgram-backend/internal/platform/dbctx"
	"github.com/yungbote/foodgram-backend/internal/platform/logger"
)

type RecipeTagRepo interface {
	// ReplaceForRecipe must run inside the caller's transaction.
	ReplaceForRecipe(dbc dbctx.Context, recipeID uuid.UUID, tagIDs []uuid.UUID) error
	ListByRecipeIDs(dbc dbctx.Context, recipeIDs []uuid.UUID) ([]*types.RecipeTagRow, error)
}

type recipeTagRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRecipeTagRepo(db *gorm.DB, baseLog *logger.Logger) RecipeTagRepo {
	return &recipeTagRepo{db: db, log: baseLog.With("repo", "RecipeTagRepo")}
}

func (r *recipeTagRepo) ReplaceForRecipe(dbc dbctx.Context, recipeID uuid.UUID, tagIDs []uuid.UUID) error {
	if recipeID == uuid.Nil {
		return nil
	}
	t := dbc.DB(r.db)
	if err := t.Where("recipe_id = ?", recipeID).Delete(&types.RecipeTag{}).Error; err != nil {
		return err
	}
	if len(tagIDs) == 0 {
		return nil
	}
	rows := make([]*types.RecipeTag, 0, len(tagIDs))
	seen := map[uuid.UUID]bool{}
	for _, id := range tagIDs {
		if id == uuid.Nil || seen[id] {
			continue
		}
		seen[id] = true
		rows = append(rows, &types.RecipeTag{RecipeID: recipeID, TagID: id})
	}
	return t.Omit("Recipe", "Tag").Create(&rows).Error
}

func (r *recipeTagRepo) ListByRecipeIDs(dbc dbctx.Context, recipeIDs []uuid.UUID) ([]*types.RecipeTagRow, error) {
	out := []*types.RecipeTagRow{}
	if len(recipeIDs) == 0 {
		return out, nil
	}
	if err := dbc.DB(r.db).
		Table("recipe_tag AS rt").
		Select("rt.recipe_id AS recipe_id, t.id AS tag_id, t.name AS name, t.color AS color, t.slug AS slug").
		Joins("JOIN tag AS t ON t.id = rt.tag_id").
		Where("rt.recipe_id IN ?", recipeIDs).
		Order("t.name ASC").
		Scan(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
