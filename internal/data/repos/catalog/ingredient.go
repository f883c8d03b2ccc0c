package catalog

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/foodgram-backend/internal/domain"
	"github.com/yungbote/foodgram-backend/internal/platform/dbctx"
	"github.com/yungbote/foodgram-backend/internal/platform/logger"
)

type IngredientRepo interface {
	Create(dbc dbctx.Context, rows []*types.Ingredient) ([]*types.Ingredient, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Ingredient, error)
	GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.Ingredient, error)
	ExistingIDs(dbc dbctx.Context, ids []uuid.UUID) (map[uuid.UUID]bool, error)
	ListByNamePrefix(dbc dbctx.Context, prefix string) ([]*types.Ingredient, error)
	FindByNameAndUnit(dbc dbctx.Context, name, unit string) (*types.Ingredient, error)
}

type ingredientRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewIngredientRepo(db *gorm.DB, baseLog *logger.Logger) IngredientRepo {
	return &ingredientRepo{db: db, log: baseLog.With("repo", "IngredientRepo")}
}

func (r *ingredientRepo) Create(dbc dbctx.Context, rows []*types.Ingredient) ([]*types.Ingredient, error) {
	if len(rows) == 0 {
		return []*types.Ingredient{}, nil
	}
	for _, row := range rows {
		if row.ID == uuid.Nil {
			row.ID = uuid.New()
		}
	}
	if err := dbc.DB(r.db).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *ingredientRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Ingredient, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	rows, err := r.GetByIDs(dbc, []uuid.UUID{id})
	if err != nil || len(rows) == 0 {
		return nil, err
	}
	return rows[0], nil
}

func (r *ingredientRepo) GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.Ingredient, error) {
	var out []*types.Ingredient
	if len(ids) == 0 {
		return out, nil
	}
	if err := dbc.DB(r.db).
		Where("id IN ?", ids).
		Order("name ASC, id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// ExistingIDs answers membership for the whole batch with a single query.
func (r *ingredientRepo) ExistingIDs(dbc dbctx.Context, ids []uuid.UUID) (map[uuid.UUID]bool, error) {
	out := map[uuid.UUID]bool{}
	if len(ids) == 0 {
		return out, nil
	}
	var found []uuid.UUID
	if err := dbc.DB(r.db).
		Model(&types.Ingredient{}).
		Where("id IN ?", ids).
		Pluck("id", &found).Error; err != nil {
		return nil, err
	}
	for _, id := range found {
		out[id] = true
	}
	return out, nil
}

// ListByNamePrefix matches names case-insensitively; an empty prefix lists the
// whole catalog.
func (r *ingredientRepo) ListByNamePrefix(dbc dbctx.Context, prefix string) ([]*types.Ingredient, error) {
	var out []*types.Ingredient
	q := dbc.DB(r.db).Model(&types.Ingredient{})
	if prefix = strings.TrimSpace(prefix); prefix != "" {
		q = q.Where("LOWER(name) LIKE ? ESCAPE '\\'", escapeLike(strings.ToLower(prefix))+"%")
	}
	if err := q.Order("name ASC, id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ingredientRepo) FindByNameAndUnit(dbc dbctx.Context, name, unit string) (*types.Ingredient, error) {
	var out []*types.Ingredient
	if err := dbc.DB(r.db).
		Where("name = ? AND measurement_unit = ?", name, unit).
		Limit(1).
		Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
