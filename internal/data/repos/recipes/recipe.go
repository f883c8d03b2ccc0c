package recipes

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/foodgram-backend/internal/domain"
	"github.com/yungbote/foodgram-backend/internal/platform/dbctx"
	"github.com/yungbote/foodgram-backend/internal/platform/logger"
)

// RecipeFilter narrows List. Zero values disable a filter.
type RecipeFilter struct {
	AuthorID    uuid.UUID
	TagSlugs    []string
	FavoritedBy uuid.UUID
	InCartOf    uuid.UUID
}

type RecipeRepo interface {
	Create(dbc dbctx.Context, rows []*types.Recipe) ([]*types.Recipe, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Recipe, error)
	GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.Recipe, error)
	ExistingIDs(dbc dbctx.Context, ids []uuid.UUID) (map[uuid.UUID]bool, error)
	List(dbc dbctx.Context, filter RecipeFilter) ([]*types.Recipe, error)
	ListByAuthorIDs(dbc dbctx.Context, authorIDs []uuid.UUID) ([]*types.Recipe, error)
	CountByAuthorIDs(dbc dbctx.Context, authorIDs []uuid.UUID) (map[uuid.UUID]int64, error)
	UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error
	DeleteByID(dbc dbctx.Context, id uuid.UUID) (bool, error)
}

type recipeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRecipeRepo(db *gorm.DB, baseLog *logger.Logger) RecipeRepo {
	return &recipeRepo{db: db, log: baseLog.With("repo", "RecipeRepo")}
}

func (r *recipeRepo) Create(dbc dbctx.Context, rows []*types.Recipe) ([]*types.Recipe, error) {
	if len(rows) == 0 {
		return []*types.Recipe{}, nil
	}
	for _, row := range rows {
		if row.ID == uuid.Nil {
			row.ID = uuid.New()
		}
	}
	if err := dbc.DB(r.db).Omit("Author").Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *recipeRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Recipe, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	rows, err := r.GetByIDs(dbc, []uuid.UUID{id})
	if err != nil || len(rows) == 0 {
		return nil, err
	}
	return rows[0], nil
}

func (r *recipeRepo) GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.Recipe, error) {
	var out []*types.Recipe
	if len(ids) == 0 {
		return out, nil
	}
	if err := dbc.DB(r.db).
		Where("id IN ?", ids).
		Order("created_at DESC, id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *recipeRepo) ExistingIDs(dbc dbctx.Context, ids []uuid.UUID) (map[uuid.UUID]bool, error) {
	out := map[uuid.UUID]bool{}
	if len(ids) == 0 {
		return out, nil
	}
	var found []uuid.UUID
	if err := dbc.DB(r.db).
		Model(&types.Recipe{}).
		Where("id IN ?", ids).
		Pluck("id", &found).Error; err != nil {
		return nil, err
	}
	for _, id := range found {
		out[id] = true
	}
	return out, nil
}

func (r *recipeRepo) List(dbc dbctx.Context, filter RecipeFilter) ([]*types.Recipe, error) {
	base := dbc.DB(r.db)
	q := base.Model(&types.Recipe{})
	if filter.AuthorID != uuid.Nil {
		q = q.Where("author_id = ?", filter.AuthorID)
	}
	if len(filter.TagSlugs) > 0 {
		tagged := base.Model(&types.RecipeTag{}).
			Select("recipe_tag.recipe_id").
			Joins("JOIN tag ON tag.id = recipe_tag.tag_id").
			Where("tag.slug IN ?", filter.TagSlugs)
		q = q.Where("id IN (?)", tagged)
	}
	if filter.FavoritedBy != uuid.Nil {
		q = q.Where("id IN (?)", base.Model(&types.FavoriteEntry{}).
			Select("recipe_id").
			Where("user_id = ?", filter.FavoritedBy))
	}
	if filter.InCartOf != uuid.Nil {
		q = q.Where("id IN (?)", base.Model(&types.CartEntry{}).
			Select("recipe_id").
			Where("user_id = ?", filter.InCartOf))
	}
	var out []*types.Recipe
	if err := q.Order("created_at DESC, id ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *recipeRepo) ListByAuthorIDs(dbc dbctx.Context, authorIDs []uuid.UUID) ([]*types.Recipe, error) {
	var out []*types.Recipe
	if len(authorIDs) == 0 {
		return out, nil
	}
	if err := dbc.DB(r.db).
		Where("author_id IN ?", authorIDs).
		Order("created_at DESC, id ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *recipeRepo) CountByAuthorIDs(dbc dbctx.Context, authorIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	out := map[uuid.UUID]int64{}
	if len(authorIDs) == 0 {
		return out, nil
	}
	var rows []struct {
		AuthorID uuid.UUID
		N        int64
	}
	if err := dbc.DB(r.db).
		Model(&types.Recipe{}).
		Select("author_id, COUNT(*) AS n").
		Where("author_id IN ?", authorIDs).
		Group("author_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.AuthorID] = row.N
	}
	return out, nil
}

func (r *recipeRepo) UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error {
	if id == uuid.Nil || len(updates) == 0 {
		return nil
	}
	if _, ok := updates["updated_at"]; !ok {
		updates["updated_at"] = time.Now().UTC()
	}
	return dbc.DB(r.db).
		Model(&types.Recipe{}).
		Where("id = ?", id).
		Updates(updates).Error
}

// DeleteByID reports whether a row was removed. Dependent rows go with it via
// ON DELETE CASCADE.
func (r *recipeRepo) DeleteByID(dbc dbctx.Context, id uuid.UUID) (bool, error) {
	if id == uuid.Nil {
		return false, nil
	}
	res := dbc.DB(r.db).Where("id = ?", id).Delete(&types.Recipe{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
