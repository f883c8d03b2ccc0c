package recipes

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/foodgram-backend/internal/domain"
	"github.com/yungbote/foodgram-backend/internal/platform/dbctx"
	"github.com/yungbote/foodgram-backend/internal/platform/logger"
)

type LineItemRepo interface {
	CreateMany(dbc dbctx.Context, rows []*types.LineItem) error
	DeleteByRecipeIDs(dbc dbctx.Context, recipeIDs []uuid.UUID) error
	LineItemsFor(dbc dbctx.Context, recipeIDs []uuid.UUID) ([]*types.LineItemRow, error)
}

type lineItemRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLineItemRepo(db *gorm.DB, baseLog *logger.Logger) LineItemRepo {
	return &lineItemRepo{db: db, log: baseLog.With("repo", "LineItemRepo")}
}

func (r *lineItemRepo) CreateMany(dbc dbctx.Context, rows []*types.LineItem) error {
	if len(rows) == 0 {
		return nil
	}
	for _, row := range rows {
		if row.ID == uuid.Nil {
			row.ID = uuid.New()
		}
	}
	return dbc.DB(r.db).Omit("Recipe", "Ingredient").Create(&rows).Error
}

func (r *lineItemRepo) DeleteByRecipeIDs(dbc dbctx.Context, recipeIDs []uuid.UUID) error {
	if len(recipeIDs) == 0 {
		return nil
	}
	return dbc.DB(r.db).
		Where("recipe_id IN ?", recipeIDs).
		Delete(&types.LineItem{}).Error
}

// LineItemsFor loads the line items of every given recipe joined with their
// catalog entries in one query, whatever the number of recipes.
func (r *lineItemRepo) LineItemsFor(dbc dbctx.Context, recipeIDs []uuid.UUID) ([]*types.LineItemRow, error) {
	out := []*types.LineItemRow{}
	if len(recipeIDs) == 0 {
		return out, nil
	}
	if err := dbc.DB(r.db).
		Table("recipe_ingredient AS ri").
		Select("ri.recipe_id AS recipe_id, ri.ingredient_id AS ingredient_id, i.name AS name, i.measurement_unit AS measurement_unit, ri.amount AS amount").
		Joins("JOIN ingredient AS i ON i.id = ri.ingredient_id").
		Where("ri.recipe_id IN ?", recipeIDs).
		Order("ri.recipe_id ASC, i.name ASC, ri.ingredient_id ASC").
		Scan(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
