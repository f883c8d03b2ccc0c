package social

import (
	"context"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/yungbote/foodgram-backend/internal/data/aggregates"
	"github.com/yungbote/foodgram-backend/internal/data/repos"
	types "github.com/yungbote/foodgram-backend/internal/domain"
	domainagg "github.com/yungbote/foodgram-backend/internal/domain/aggregates"
	recipemod "github.com/yungbote/foodgram-backend/internal/modules/recipes"
	"github.com/yungbote/foodgram-backend/internal/platform/dbctx"
	"github.com/yungbote/foodgram-backend/internal/platform/logger"
)

type UsecasesDeps struct {
	Log *logger.Logger

	Users         repos.UserRepo
	Subscriptions repos.SubscriptionRepo
	Recipes       repos.RecipeRepo
}

type Usecases struct {
	deps UsecasesDeps
}

func New(deps UsecasesDeps) Usecases {
	if deps.Log == nil {
		deps.Log = logger.NewNop()
	}
	deps.Log = deps.Log.With("module", "social")
	return Usecases{deps: deps}
}

// SubscriptionView is an author as seen by a follower.
type SubscriptionView struct {
	recipemod.UserView
	Recipes      []recipemod.RecipeShortView `json:"recipes"`
	RecipesCount int64                       `json:"recipes_count"`
}

type UserPage struct {
	Count   int64                `json:"count"`
	Results []recipemod.UserView `json:"results"`
}

func (u Usecases) Me(ctx context.Context, userID uuid.UUID) (recipemod.UserView, error) {
	if userID == uuid.Nil {
		return recipemod.UserView{}, domainagg.NewError(domainagg.CodeUnauthorized, "Social.Me", "authentication required", nil)
	}
	row, err := u.deps.Users.GetByID(dbctx.Context{Ctx: ctx}, userID)
	if err != nil {
		return recipemod.UserView{}, err
	}
	if row == nil {
		return recipemod.UserView{}, domainagg.NewError(domainagg.CodeNotFound, "Social.Me", "user not found", nil)
	}
	return recipemod.NewUserView(row, false), nil
}

func (u Usecases) GetUser(ctx context.Context, viewerID, userID uuid.UUID) (recipemod.UserView, error) {
	dbc := dbctx.Context{Ctx: ctx}
	row, err := u.deps.Users.GetByID(dbc, userID)
	if err != nil {
		return recipemod.UserView{}, err
	}
	if row == nil {
		return recipemod.UserView{}, domainagg.NewError(domainagg.CodeNotFound, "Social.GetUser", "user not found", nil)
	}
	followed, err := u.followed(dbc, viewerID, []uuid.UUID{row.ID})
	if err != nil {
		return recipemod.UserView{}, err
	}
	return recipemod.NewUserView(row, followed[row.ID]), nil
}

func (u Usecases) ListUsers(ctx context.Context, viewerID uuid.UUID, limit, offset int) (UserPage, error) {
	dbc := dbctx.Context{Ctx: ctx}
	rows, total, err := u.deps.Users.List(dbc, limit, offset)
	if err != nil {
		return UserPage{}, err
	}
	ids := make([]uuid.UUID, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.ID)
	}
	followed, err := u.followed(dbc, viewerID, ids)
	if err != nil {
		return UserPage{}, err
	}
	page := UserPage{Count: total, Results: make([]recipemod.UserView, 0, len(rows))}
	for _, r := range rows {
		page.Results = append(page.Results, recipemod.NewUserView(r, followed[r.ID]))
	}
	return page, nil
}

func (u Usecases) followed(dbc dbctx.Context, viewerID uuid.UUID, ids []uuid.UUID) (map[uuid.UUID]bool, error) {
	if viewerID == uuid.Nil || len(ids) == 0 {
		return map[uuid.UUID]bool{}, nil
	}
	return u.deps.Subscriptions.FollowedAmong(dbc, viewerID, ids)
}

// Subscribe makes userID follow authorID and returns the author view.
// recipesLimit <= 0 means every recipe.
func (u Usecases) Subscribe(ctx context.Context, userID, authorID uuid.UUID, recipesLimit int) (SubscriptionView, error) {
	const op = "Social.Subscribe"
	if userID == uuid.Nil {
		return SubscriptionView{}, domainagg.NewError(domainagg.CodeUnauthorized, op, "authentication required", nil)
	}
	dbc := dbctx.Context{Ctx: ctx}
	author, err := u.deps.Users.GetByID(dbc, authorID)
	if err != nil {
		return SubscriptionView{}, aggregates.MapError(op, err)
	}
	if author == nil {
		return SubscriptionView{}, domainagg.NewError(domainagg.CodeNotFound, op, "author not found", nil)
	}
	if author.ID == userID {
		return SubscriptionView{}, domainagg.NewError(domainagg.CodeValidation, op, "cannot subscribe to yourself", nil)
	}
	if err := u.deps.Subscriptions.Add(dbc, userID, authorID); err != nil {
		mapped := aggregates.MapError(op, err)
		if domainagg.IsCode(mapped, domainagg.CodeConflict) {
			return SubscriptionView{}, domainagg.NewError(domainagg.CodeConflict, op, "already subscribed", err)
		}
		return SubscriptionView{}, mapped
	}
	u.deps.Log.Info("subscribed", "user_id", userID, "author_id", authorID)

	views, err := u.subscriptionViews(ctx, []*types.User{author}, recipesLimit)
	if err != nil {
		return SubscriptionView{}, err
	}
	return views[0], nil
}

func (u Usecases) Unsubscribe(ctx context.Context, userID, authorID uuid.UUID) error {
	const op = "Social.Unsubscribe"
	if userID == uuid.Nil {
		return domainagg.NewError(domainagg.CodeUnauthorized, op, "authentication required", nil)
	}
	removed, err := u.deps.Subscriptions.Remove(dbctx.Context{Ctx: ctx}, userID, authorID)
	if err != nil {
		return aggregates.MapError(op, err)
	}
	if !removed {
		return domainagg.NewError(domainagg.CodeNotFound, op, "subscription not found", nil)
	}
	return nil
}

// ListSubscriptions returns the authors userID follows, newest subscription first.
func (u Usecases) ListSubscriptions(ctx context.Context, userID uuid.UUID, recipesLimit int) ([]SubscriptionView, error) {
	if userID == uuid.Nil {
		return nil, domainagg.NewError(domainagg.CodeUnauthorized, "Social.ListSubscriptions", "authentication required", nil)
	}
	dbc := dbctx.Context{Ctx: ctx}
	authorIDs, err := u.deps.Subscriptions.AuthorIDs(dbc, userID)
	if err != nil {
		return nil, err
	}
	if len(authorIDs) == 0 {
		return []SubscriptionView{}, nil
	}
	users, err := u.deps.Users.GetByIDs(dbc, authorIDs)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*types.User, len(users))
	for _, usr := range users {
		byID[usr.ID] = usr
	}
	ordered := make([]*types.User, 0, len(authorIDs))
	for _, id := range authorIDs {
		if usr := byID[id]; usr != nil {
			ordered = append(ordered, usr)
		}
	}
	return u.subscriptionViews(ctx, ordered, recipesLimit)
}

func (u Usecases) subscriptionViews(ctx context.Context, authors []*types.User, recipesLimit int) ([]SubscriptionView, error) {
	ids := make([]uuid.UUID, 0, len(authors))
	for _, a := range authors {
		ids = append(ids, a.ID)
	}

	var (
		recipes []*types.Recipe
		counts  map[uuid.UUID]int64
	)
	g, gctx := errgroup.WithContext(ctx)
	dbc := dbctx.Context{Ctx: gctx}
	g.Go(func() error {
		var err error
		recipes, err = u.deps.Recipes.ListByAuthorIDs(dbc, ids)
		return err
	})
	g.Go(func() error {
		var err error
		counts, err = u.deps.Recipes.CountByAuthorIDs(dbc, ids)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	byAuthor := map[uuid.UUID][]recipemod.RecipeShortView{}
	for _, r := range recipes {
		if recipesLimit > 0 && len(byAuthor[r.AuthorID]) >= recipesLimit {
			continue
		}
		byAuthor[r.AuthorID] = append(byAuthor[r.AuthorID], recipemod.NewRecipeShortView(r))
	}

	out := make([]SubscriptionView, 0, len(authors))
	for _, a := range authors {
		short := byAuthor[a.ID]
		if short == nil {
			short = []recipemod.RecipeShortView{}
		}
		out = append(out, SubscriptionView{
			UserView:     recipemod.NewUserView(a, true),
			Recipes:      short,
			RecipesCount: counts[a.ID],
		})
	}
	return out, nil
}
