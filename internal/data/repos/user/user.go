package user

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/foodgram-backend/internal/domain"
	"github.com/yungbote/foodgram-backend/internal/platform/dbctx"
	"github.com/yungbote/foodgram-backend/internal/platform/logger"
)

type UserRepo interface {
	Create(dbc dbctx.Context, users []*types.User) ([]*types.User, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.User, error)
	GetByIDs(dbc dbctx.Context, userIDs []uuid.UUID) ([]*types.User, error)
	GetByEmail(dbc dbctx.Context, email string) (*types.User, error)
	EmailExists(dbc dbctx.Context, email string) (bool, error)
	UsernameExists(dbc dbctx.Context, username string) (bool, error)
	List(dbc dbctx.Context, limit, offset int) ([]*types.User, int64, error)
	UpdatePassword(dbc dbctx.Context, userID uuid.UUID, passwordHash string) error
}

type userRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserRepo(db *gorm.DB, baseLog *logger.Logger) UserRepo {
	repoLog := baseLog.With("repo", "UserRepo")
	return &userRepo{db: db, log: repoLog}
}

func (ur *userRepo) Create(dbc dbctx.Context, users []*types.User) ([]*types.User, error) {
	if len(users) == 0 {
		return []*types.User{}, nil
	}
	for _, u := range users {
		if u.ID == uuid.Nil {
			u.ID = uuid.New()
		}
		u.Email = normalizeEmail(u.Email)
	}
	if err := dbc.DB(ur.db).Create(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (ur *userRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.User, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	rows, err := ur.GetByIDs(dbc, []uuid.UUID{id})
	if err != nil || len(rows) == 0 {
		return nil, err
	}
	return rows[0], nil
}

func (ur *userRepo) GetByIDs(dbc dbctx.Context, userIDs []uuid.UUID) ([]*types.User, error) {
	var results []*types.User
	if len(userIDs) == 0 {
		return results, nil
	}
	if err := dbc.DB(ur.db).
		Where("id IN ?", userIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ur *userRepo) GetByEmail(dbc dbctx.Context, email string) (*types.User, error) {
	email = normalizeEmail(email)
	if email == "" {
		return nil, nil
	}
	var results []*types.User
	if err := dbc.DB(ur.db).
		Where("email = ?", email).
		Limit(1).
		Find(&results).Error; err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return results[0], nil
}

func (ur *userRepo) EmailExists(dbc dbctx.Context, email string) (bool, error) {
	return ur.exists(dbc, "email", normalizeEmail(email))
}

func (ur *userRepo) UsernameExists(dbc dbctx.Context, username string) (bool, error) {
	return ur.exists(dbc, "username", strings.TrimSpace(username))
}

func (ur *userRepo) exists(dbc dbctx.Context, column, value string) (bool, error) {
	if value == "" {
		return false, nil
	}
	var count int64
	if err := dbc.DB(ur.db).
		Model(&types.User{}).
		Where(column+" = ?", value).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// List pages users ordered by username and also returns the total count.
func (ur *userRepo) List(dbc dbctx.Context, limit, offset int) ([]*types.User, int64, error) {
	t := dbc.DB(ur.db)
	var total int64
	if err := t.Model(&types.User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if limit <= 0 {
		limit = 6
	}
	if offset < 0 {
		offset = 0
	}
	var results []*types.User
	if err := t.Order("username ASC").Limit(limit).Offset(offset).Find(&results).Error; err != nil {
		return nil, 0, err
	}
	return results, total, nil
}

func (ur *userRepo) UpdatePassword(dbc dbctx.Context, userID uuid.UUID, passwordHash string) error {
	return dbc.DB(ur.db).
		Model(&types.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"password":   passwordHash,
			"updated_at": time.Now().UTC(),
		}).Error
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
