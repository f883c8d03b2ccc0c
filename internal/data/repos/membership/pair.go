package membership

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/foodgram-backend/internal/platform/dbctx"
	"github.com/yungbote/foodgram-backend/internal/platform/logger"
)

// PairRepo stores (user, recipe) membership rows. Cart and favorites share
// this behavior and differ only in the backing table.
type PairRepo interface {
	// Add inserts the pair. A duplicate surfaces as the driver's unique violation.
	Add(dbc dbctx.Context, userID, recipeID uuid.UUID) error
	// Remove reports whether a row was deleted.
	Remove(dbc dbctx.Context, userID, recipeID uuid.UUID) (bool, error)
	Exists(dbc dbctx.Context, userID, recipeID uuid.UUID) (bool, error)
	// RecipeIDs lists the user's recipes, oldest membership first.
	RecipeIDs(dbc dbctx.Context, userID uuid.UUID) ([]uuid.UUID, error)
	// ExistingRecipeIDs returns the subset of recipeIDs the user holds.
	ExistingRecipeIDs(dbc dbctx.Context, userID uuid.UUID, recipeIDs []uuid.UUID) (map[uuid.UUID]bool, error)
}

type pairRow interface {
	TableName() string
}

type pairRepo[T pairRow] struct {
	db    *gorm.DB
	log   *logger.Logger
	build func(userID, recipeID uuid.UUID) *T
}

func newPairRepo[T pairRow](db *gorm.DB, log *logger.Logger, build func(userID, recipeID uuid.UUID) *T) *pairRepo[T] {
	return &pairRepo[T]{db: db, log: log, build: build}
}

func (r *pairRepo[T]) Add(dbc dbctx.Context, userID, recipeID uuid.UUID) error {
	row := r.build(userID, recipeID)
	return dbc.DB(r.db).Omit("User", "Recipe").Create(row).Error
}

func (r *pairRepo[T]) Remove(dbc dbctx.Context, userID, recipeID uuid.UUID) (bool, error) {
	var zero T
	res := dbc.DB(r.db).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&zero)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *pairRepo[T]) Exists(dbc dbctx.Context, userID, recipeID uuid.UUID) (bool, error) {
	if userID == uuid.Nil || recipeID == uuid.Nil {
		return false, nil
	}
	var zero T
	var n int64
	if err := dbc.DB(r.db).
		Model(&zero).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *pairRepo[T]) RecipeIDs(dbc dbctx.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	out := []uuid.UUID{}
	if userID == uuid.Nil {
		return out, nil
	}
	var zero T
	if err := dbc.DB(r.db).
		Model(&zero).
		Where("user_id = ?", userID).
		Order("created_at ASC, recipe_id ASC").
		Pluck("recipe_id", &out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *pairRepo[T]) ExistingRecipeIDs(dbc dbctx.Context, userID uuid.UUID, recipeIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	out := map[uuid.UUID]bool{}
	if userID == uuid.Nil || len(recipeIDs) == 0 {
		return out, nil
	}
	var zero T
	var found []uuid.UUID
	if err := dbc.DB(r.db).
		Model(&zero).
		Where("user_id = ? AND recipe_id IN ?", userID, recipeIDs).
		Pluck("recipe_id", &found).Error; err != nil {
		return nil, err
	}
	for _, id := range found {
		out[id] = true
	}
	return out, nil
}

func now() time.Time { return time.Now().UTC() }
