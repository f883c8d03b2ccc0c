package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/yungbote/foodgram-backend/internal/domain"
	"github.com/yungbote/foodgram-backend/internal/platform/dbctx"
	"github.com/yungbote/foodgram-backend/internal/platform/logger"
)

type SubscriptionRepo interface {
	Add(dbc dbctx.Context, userID, authorID uuid.UUID) error
	Remove(dbc dbctx.Context, userID, authorID uuid.UUID) (bool, error)
	// AuthorIDs lists who userID follows, newest subscription first.
	AuthorIDs(dbc dbctx.Context, userID uuid.UUID) ([]uuid.UUID, error)
	// FollowedAmong returns the subset of authorIDs that userID follows.
	FollowedAmong(dbc dbctx.Context, userID uuid.UUID, authorIDs []uuid.UUID) (map[uuid.UUID]bool, error)
}

type subscriptionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSubscriptionRepo(db *gorm.DB, baseLog *logger.Logger) SubscriptionRepo {
	return &subscriptionRepo{db: db, log: baseLog.With("repo", "SubscriptionRepo")}
}

func (r *subscriptionRepo) Add(dbc dbctx.Context, userID, authorID uuid.UUID) error {
	row := &types.Subscription{
		ID:        uuid.New(),
		UserID:    userID,
		AuthorID:  authorID,
		CreatedAt: time.Now().UTC(),
	}
	return dbc.DB(r.db).Omit("User", "Author").Create(row).Error
}

func (r *subscriptionRepo) Remove(dbc dbctx.Context, userID, authorID uuid.UUID) (bool, error) {
	res := dbc.DB(r.db).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Delete(&types.Subscription{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *subscriptionRepo) AuthorIDs(dbc dbctx.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	out := []uuid.UUID{}
	if userID == uuid.Nil {
		return out, nil
	}
	if err := dbc.DB(r.db).
		Model(&types.Subscription{}).
		Where("user_id = ?", userID).
		Order("created_at DESC, author_id ASC").
		Pluck("author_id", &out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *subscriptionRepo) FollowedAmong(dbc dbctx.Context, userID uuid.UUID, authorIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	out := map[uuid.UUID]bool{}
	if userID == uuid.Nil || len(authorIDs) == 0 {
		return out, nil
	}
	var found []uuid.UUID
	if err := dbc.DB(r.db).
		Model(&types.Subscription{}).
		Where("user_id = ? AND author_id IN ?", userID, authorIDs).
		Pluck("author_id", &found).Error; err != nil {
		return nil, err
	}
	for _, id := range found {
		out[id] = true
	}
	return out, nil
}
