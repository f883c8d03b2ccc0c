package recipes

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/yungbote/foodgram-backend/internal/data/repos"
	types "github.com/yungbote/foodgram-backend/internal/domain"
	domainagg "github.com/yungbote/foodgram-backend/internal/domain/aggregates"
	"github.com/yungbote/foodgram-backend/internal/platform/dbctx"
	"github.com/yungbote/foodgram-backend/internal/platform/logger"
)

type UsecasesDeps struct {
	Log *logger.Logger

	Recipes       repos.RecipeRepo
	LineItems     repos.LineItemRepo
	RecipeTags    repos.RecipeTagRepo
	Ingredients   repos.IngredientRepo
	Tags          repos.TagRepo
	Users         repos.UserRepo
	Subscriptions repos.SubscriptionRepo
	Cart          repos.CartRepo
	Favorites     repos.FavoriteRepo

	RecipeAgg     domainagg.RecipeAggregate
	MembershipAgg domainagg.MembershipAggregate
}

type Usecases struct {
	deps UsecasesDeps
}

func New(deps UsecasesDeps) Usecases {
	if deps.Log == nil {
		deps.Log = logger.NewNop()
	}
	deps.Log = deps.Log.With("module", "recipes")
	return Usecases{deps: deps}
}

// ---- catalog ----

func (u Usecases) ListIngredients(ctx context.Context, namePrefix string) ([]IngredientView, error) {
	rows, err := u.deps.Ingredients.ListByNamePrefix(dbctx.Context{Ctx: ctx}, strings.TrimSpace(namePrefix))
	if err != nil {
		return nil, err
	}
	out := make([]IngredientView, 0, len(rows))
	for _, r := range rows {
		out = append(out, NewIngredientView(r))
	}
	return out, nil
}

func (u Usecases) GetIngredient(ctx context.Context, id uuid.UUID) (IngredientView, error) {
	row, err := u.deps.Ingredients.GetByID(dbctx.Context{Ctx: ctx}, id)
	if err != nil {
		return IngredientView{}, err
	}
	if row == nil {
		return IngredientView{}, domainagg.NewError(domainagg.CodeNotFound, "Recipes.GetIngredient", "ingredient not found", nil)
	}
	return NewIngredientView(row), nil
}

func (u Usecases) ListTags(ctx context.Context) ([]TagView, error) {
	rows, err := u.deps.Tags.List(dbctx.Context{Ctx: ctx})
	if err != nil {
		return nil, err
	}
	out := make([]TagView, 0, len(rows))
	for _, r := range rows {
		out = append(out, NewTagView(r))
	}
	return out, nil
}

func (u Usecases) GetTag(ctx context.Context, id uuid.UUID) (TagView, error) {
	row, err := u.deps.Tags.GetByID(dbctx.Context{Ctx: ctx}, id)
	if err != nil {
		return TagView{}, err
	}
	if row == nil {
		return TagView{}, domainagg.NewError(domainagg.CodeNotFound, "Recipes.GetTag", "tag not found", nil)
	}
	return NewTagView(row), nil
}

// ---- recipes ----

// ListRecipesInput filters the recipe feed. Favorited and InCart restrict to
// the viewer's own lists; an anonymous viewer asking for either gets nothing.
type ListRecipesInput struct {
	ViewerID  uuid.UUID
	AuthorID  uuid.UUID
	TagSlugs  []string
	Favorited bool
	InCart    bool
}

func (u Usecases) ListRecipes(ctx context.Context, in ListRecipesInput) ([]RecipeView, error) {
	if (in.Favorited || in.InCart) && in.ViewerID == uuid.Nil {
		return []RecipeView{}, nil
	}
	filter := repos.RecipeFilter{AuthorID: in.AuthorID, TagSlugs: in.TagSlugs}
	if in.Favorited {
		filter.FavoritedBy = in.ViewerID
	}
	if in.InCart {
		filter.InCartOf = in.ViewerID
	}
	rows, err := u.deps.Recipes.List(dbctx.Context{Ctx: ctx}, filter)
	if err != nil {
		return nil, err
	}
	return u.loadViews(ctx, in.ViewerID, rows)
}

func (u Usecases) GetRecipe(ctx context.Context, viewerID, recipeID uuid.UUID) (RecipeView, error) {
	row, err := u.deps.Recipes.GetByID(dbctx.Context{Ctx: ctx}, recipeID)
	if err != nil {
		return RecipeView{}, err
	}
	if row == nil {
		return RecipeView{}, domainagg.NewError(domainagg.CodeNotFound, "Recipes.GetRecipe", "recipe not found", nil)
	}
	views, err := u.loadViews(ctx, viewerID, []*types.Recipe{row})
	if err != nil {
		return RecipeView{}, err
	}
	return views[0], nil
}

type IngredientAmount struct {
	ID     uuid.UUID `json:"id"`
	Amount int       `json:"amount"`
}

type CreateRecipeInput struct {
	ActorID     uuid.UUID
	Name        string
	ImageRef    string
	Text        string
	CookingTime int
	TagIDs      []uuid.UUID
	Ingredients []IngredientAmount
}

func (u Usecases) CreateRecipe(ctx context.Context, in CreateRecipeInput) (RecipeView, error) {
	res, err := u.deps.RecipeAgg.CreateRecipe(ctx, domainagg.CreateRecipeInput{
		AuthorID:    in.ActorID,
		Name:        in.Name,
		ImageRef:    in.ImageRef,
		Text:        in.Text,
		CookingTime: in.CookingTime,
		TagIDs:      in.TagIDs,
		Ingredients: lineItemInputs(in.Ingredients),
	})
	if err != nil {
		return RecipeView{}, err
	}
	u.deps.Log.Info("recipe created", "recipe_id", res.RecipeID, "user_id", in.ActorID)
	return u.GetRecipe(ctx, in.ActorID, res.RecipeID)
}

// UpdateRecipeInput leaves nil fields untouched. Nil TagIDs or Ingredients keep
// the current set.
type UpdateRecipeInput struct {
	ActorID     uuid.UUID
	RecipeID    uuid.UUID
	Name        *string
	ImageRef    *string
	Text        *string
	CookingTime *int
	TagIDs      []uuid.UUID
	Ingredients []IngredientAmount
}

func (u Usecases) UpdateRecipe(ctx context.Context, in UpdateRecipeInput) (RecipeView, error) {
	err := u.deps.RecipeAgg.UpdateRecipe(ctx, domainagg.UpdateRecipeInput{
		RecipeID:    in.RecipeID,
		ActorID:     in.ActorID,
		Name:        in.Name,
		ImageRef:    in.ImageRef,
		Text:        in.Text,
		CookingTime: in.CookingTime,
		TagIDs:      in.TagIDs,
		Ingredients: lineItemInputs(in.Ingredients),
	})
	if err != nil {
		return RecipeView{}, err
	}
	return u.GetRecipe(ctx, in.ActorID, in.RecipeID)
}

func (u Usecases) DeleteRecipe(ctx context.Context, actorID, recipeID uuid.UUID) error {
	if err := u.deps.RecipeAgg.DeleteRecipe(ctx, domainagg.DeleteRecipeInput{RecipeID: recipeID, ActorID: actorID}); err != nil {
		return err
	}
	u.deps.Log.Info("recipe deleted", "recipe_id", recipeID, "user_id", actorID)
	return nil
}

// ---- cart and favorites ----

// AddMembership puts the recipe in the user's cart or favorites and returns its
// short view.
func (u Usecases) AddMembership(ctx context.Context, kind domainagg.MembershipKind, userID, recipeID uuid.UUID) (RecipeShortView, error) {
	if err := u.deps.MembershipAgg.Add(ctx, domainagg.MembershipInput{Kind: kind, UserID: userID, RecipeID: recipeID}); err != nil {
		return RecipeShortView{}, err
	}
	row, err := u.deps.Recipes.GetByID(dbctx.Context{Ctx: ctx}, recipeID)
	if err != nil {
		return RecipeShortView{}, err
	}
	if row == nil {
		return RecipeShortView{}, domainagg.NewError(domainagg.CodeNotFound, "Recipes.AddMembership", "recipe not found", nil)
	}
	return NewRecipeShortView(row), nil
}

func (u Usecases) RemoveMembership(ctx context.Context, kind domainagg.MembershipKind, userID, recipeID uuid.UUID) error {
	return u.deps.MembershipAgg.Remove(ctx, domainagg.MembershipInput{Kind: kind, UserID: userID, RecipeID: recipeID})
}

func lineItemInputs(in []IngredientAmount) []domainagg.LineItemInput {
	if in == nil {
		return nil
	}
	out := make([]domainagg.LineItemInput, 0, len(in))
	for _, it := range in {
		out = append(out, domainagg.LineItemInput{IngredientID: it.ID, Amount: it.Amount})
	}
	return out
}
