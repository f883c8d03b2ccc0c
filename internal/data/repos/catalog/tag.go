package catalog

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/foodgram-backend/internal/domain"
	"github.com/yungbote/foodgram-backend/internal/platform/dbctx"
	"github.com/yungbote/foodgram-backend/internal/platform/logger"
)

type TagRepo interface {
	Create(dbc dbctx.Context, rows []*types.Tag) ([]*types.Tag, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Tag, error)
	GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.Tag, error)
	GetBySlugs(dbc dbctx.Context, slugs []string) ([]*types.Tag, error)
	List(dbc dbctx.Context) ([]*types.Tag, error)
}

type tagRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTagRepo(db *gorm.DB, baseLog *logger.Logger) TagRepo {
	return &tagRepo{db: db, log: baseLog.With("repo", "TagRepo")}
}

func (r *tagRepo) Create(dbc dbctx.Context, rows []*types.Tag) ([]*types.Tag, error) {
	if len(rows) == 0 {
		return []*types.Tag{}, nil
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

func (r *tagRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Tag, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	rows, err := r.GetByIDs(dbc, []uuid.UUID{id})
	if err != nil || len(rows) == 0 {
		return nil, err
	}
	return rows[0], nil
}

func (r *tagRepo) GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.Tag, error) {
	var out []*types.Tag
	if len(ids) == 0 {
		return out, nil
	}
	if err := dbc.DB(r.db).Where("id IN ?", ids).Order("name ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *tagRepo) GetBySlugs(dbc dbctx.Context, slugs []string) ([]*types.Tag, error) {
	var out []*types.Tag
	if len(slugs) == 0 {
		return out, nil
	}
	if err := dbc.DB(r.db).Where("slug IN ?", slugs).Order("name ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *tagRepo) List(dbc dbctx.Context) ([]*types.Tag, error) {
	var out []*types.Tag
	if err := dbc.DB(r.db).Order("name ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
