package recipes

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	types "github.com/yungbote/foodgram-backend/internal/domain"
	"github.com/yungbote/foodgram-backend/internal/platform/dbctx"
)

// viewBatch holds everything needed to render a page of recipes for one viewer.
type viewBatch struct {
	tags       map[uuid.UUID][]TagView
	items      map[uuid.UUID][]RecipeIngredientView
	authors    map[uuid.UUID]*types.User
	favorited  map[uuid.UUID]bool
	inCart     map[uuid.UUID]bool
	subscribed map[uuid.UUID]bool
}

// loadViews builds RecipeViews in input order. Related rows are fetched with
// one query per relation, concurrently.
func (u Usecases) loadViews(ctx context.Context, viewerID uuid.UUID, rows []*types.Recipe) ([]RecipeView, error) {
	if len(rows) == 0 {
		return []RecipeView{}, nil
	}
	recipeIDs := make([]uuid.UUID, 0, len(rows))
	authorIDs := make([]uuid.UUID, 0, len(rows))
	seenAuthor := map[uuid.UUID]bool{}
	for _, r := range rows {
		recipeIDs = append(recipeIDs, r.ID)
		if !seenAuthor[r.AuthorID] {
			seenAuthor[r.AuthorID] = true
			authorIDs = append(authorIDs, r.AuthorID)
		}
	}

	b := viewBatch{
		tags:       map[uuid.UUID][]TagView{},
		items:      map[uuid.UUID][]RecipeIngredientView{},
		authors:    map[uuid.UUID]*types.User{},
		favorited:  map[uuid.UUID]bool{},
		inCart:     map[uuid.UUID]bool{},
		subscribed: map[uuid.UUID]bool{},
	}

	g, gctx := errgroup.WithContext(ctx)
	dbc := dbctx.Context{Ctx: gctx}

	g.Go(func() error {
		tagRows, err := u.deps.RecipeTags.ListByRecipeIDs(dbc, recipeIDs)
		if err != nil {
			return err
		}
		for _, row := range tagRows {
			b.tags[row.RecipeID] = append(b.tags[row.RecipeID], tagViewFromRow(row))
		}
		return nil
	})
	g.Go(func() error {
		itemRows, err := u.deps.LineItems.LineItemsFor(dbc, recipeIDs)
		if err != nil {
			return err
		}
		for _, row := range itemRows {
			b.items[row.RecipeID] = append(b.items[row.RecipeID], ingredientViewFromRow(row))
		}
		return nil
	})
	g.Go(func() error {
		users, err := u.deps.Users.GetByIDs(dbc, authorIDs)
		if err != nil {
			return err
		}
		for _, usr := range users {
			b.authors[usr.ID] = usr
		}
		return nil
	})
	if viewerID != uuid.Nil {
		g.Go(func() error {
			m, err := u.deps.Favorites.ExistingRecipeIDs(dbc, viewerID, recipeIDs)
			if err != nil {
				return err
			}
			b.favorited = m
			return nil
		})
		g.Go(func() error {
			m, err := u.deps.Cart.ExistingRecipeIDs(dbc, viewerID, recipeIDs)
			if err != nil {
				return err
			}
			b.inCart = m
			return nil
		})
		g.Go(func() error {
			m, err := u.deps.Subscriptions.FollowedAmong(dbc, viewerID, authorIDs)
			if err != nil {
				return err
			}
			b.subscribed = m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]RecipeView, 0, len(rows))
	for _, r := range rows {
		out = append(out, b.view(r))
	}
	return out, nil
}

func (b viewBatch) view(r *types.Recipe) RecipeView {
	v := RecipeView{
		ID:               r.ID,
		Tags:             b.tags[r.ID],
		Ingredients:      b.items[r.ID],
		IsFavorited:      b.favorited[r.ID],
		IsInShoppingCart: b.inCart[r.ID],
		Name:             r.Name,
		ImageRef:         r.ImageRef,
		Text:             r.Text,
		CookingTime:      r.CookingTime,
	}
	if v.Tags == nil {
		v.Tags = []TagView{}
	}
	if v.Ingredients == nil {
		v.Ingredients = []RecipeIngredientView{}
	}
	sort.SliceStable(v.Ingredients, func(i, j int) bool { return v.Ingredients[i].Name < v.Ingredients[j].Name })
	if a := b.authors[r.AuthorID]; a != nil {
		v.Author = NewUserView(a, b.subscribed[a.ID])
	} else {
		v.Author = UserView{ID: r.AuthorID}
	}
	return v
}
