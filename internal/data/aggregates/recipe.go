package aggregates

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/foodgram-backend/internal/data/repos"
	types "github.com/yungbote/foodgram-backend/internal/domain"
	domainagg "github.com/yungbote/foodgram-backend/internal/domain/aggregates"
	"github.com/yungbote/foodgram-backend/internal/platform/dbctx"
)

type RecipeAggregateDeps struct {
	Base BaseDeps

	Recipes     repos.RecipeRepo
	LineItems   repos.LineItemRepo
	RecipeTags  repos.RecipeTagRepo
	Ingredients repos.IngredientRepo
	Tags        repos.TagRepo
}

type recipeAggregate struct {
	deps RecipeAggregateDeps
}

func NewRecipeAggregate(deps RecipeAggregateDeps) domainagg.RecipeAggregate {
	deps.Base = deps.Base.withDefaults()
	deps.Base.Log = deps.Base.Log.With("aggregate", "RecipeAggregate")
	return &recipeAggregate{deps: deps}
}

func (a *recipeAggregate) configured() bool {
	d := a.deps
	return d.Recipes != nil && d.LineItems != nil && d.RecipeTags != nil && d.Ingredients != nil && d.Tags != nil
}

func (a *recipeAggregate) CreateRecipe(ctx context.Context, in domainagg.CreateRecipeInput) (domainagg.CreateRecipeResult, error) {
	const op = "Recipes.Recipe.CreateRecipe"
	var out domainagg.CreateRecipeResult
	if err := RequireCaller(op, in.AuthorID); err != nil {
		return out, err
	}
	name, err := validateName(op, in.Name)
	if err != nil {
		return out, err
	}
	text, err := validateText(op, in.Text)
	if err != nil {
		return out, err
	}
	if err := validateCookingTime(op, in.CookingTime); err != nil {
		return out, err
	}
	if err := ValidateTagIDs(op, in.TagIDs); err != nil {
		return out, err
	}
	if err := ValidateLineItems(op, in.Ingredients); err != nil {
		return out, err
	}
	if !a.configured() {
		return out, domainagg.NewError(domainagg.CodeInternal, op, "recipe aggregate repos not configured", nil)
	}

	now := time.Now().UTC()
	row := &types.Recipe{
		ID:          uuid.New(),
		AuthorID:    in.AuthorID,
		Name:        name,
		ImageRef:    in.ImageRef,
		Text:        text,
		CookingTime: in.CookingTime,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	err = executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		if err := a.requireTags(dbc, op, in.TagIDs); err != nil {
			return err
		}
		if _, err := a.deps.Recipes.Create(dbc, []*types.Recipe{row}); err != nil {
			return err
		}
		if err := a.deps.RecipeTags.ReplaceForRecipe(dbc, row.ID, in.TagIDs); err != nil {
			return err
		}
		return a.replaceLineItems(dbc, op, row.ID, in.Ingredients)
	})
	if err != nil {
		return out, err
	}
	out.RecipeID = row.ID
	return out, nil
}

func (a *recipeAggregate) UpdateRecipe(ctx context.Context, in domainagg.UpdateRecipeInput) error {
	const op = "Recipes.Recipe.UpdateRecipe"
	if err := RequireCaller(op, in.ActorID); err != nil {
		return err
	}
	if in.RecipeID == uuid.Nil {
		return domainagg.NewError(domainagg.CodeNotFound, op, "recipe not found", nil)
	}

	updates := map[string]interface{}{}
	if in.Name != nil {
		name, err := validateName(op, *in.Name)
		if err != nil {
			return err
		}
		updates["name"] = name
	}
	if in.Text != nil {
		text, err := validateText(op, *in.Text)
		if err != nil {
			return err
		}
		updates["text"] = text
	}
	if in.CookingTime != nil {
		if err := validateCookingTime(op, *in.CookingTime); err != nil {
			return err
		}
		updates["cooking_time"] = *in.CookingTime
	}
	if in.ImageRef != nil {
		updates["image_ref"] = *in.ImageRef
	}
	if in.TagIDs != nil {
		if err := ValidateTagIDs(op, in.TagIDs); err != nil {
			return err
		}
	}
	if in.Ingredients != nil {
		if err := ValidateLineItems(op, in.Ingredients); err != nil {
			return err
		}
	}
	if !a.configured() {
		return domainagg.NewError(domainagg.CodeInternal, op, "recipe aggregate repos not configured", nil)
	}

	return executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		if err := a.requireOwnedRecipe(dbc, op, in.RecipeID, in.ActorID); err != nil {
			return err
		}
		if in.TagIDs != nil {
			if err := a.requireTags(dbc, op, in.TagIDs); err != nil {
				return err
			}
			if err := a.deps.RecipeTags.ReplaceForRecipe(dbc, in.RecipeID, in.TagIDs); err != nil {
				return err
			}
		}
		if in.Ingredients != nil {
			if err := a.replaceLineItems(dbc, op, in.RecipeID, in.Ingredients); err != nil {
				return err
			}
		}
		// Touch updated_at even when only the tag or ingredient set changed.
		updates["updated_at"] = time.Now().UTC()
		return a.deps.Recipes.UpdateFields(dbc, in.RecipeID, updates)
	})
}

func (a *recipeAggregate) ReplaceLineItems(ctx context.Context, in domainagg.ReplaceLineItemsInput) error {
	const op = "Recipes.Recipe.ReplaceLineItems"
	if in.RecipeID == uuid.Nil {
		return domainagg.NewError(domainagg.CodeNotFound, op, "recipe not found", nil)
	}
	if err := ValidateLineItems(op, in.Ingredients); err != nil {
		return err
	}
	if !a.configured() {
		return domainagg.NewError(domainagg.CodeInternal, op, "recipe aggregate repos not configured", nil)
	}

	return executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		found, err := a.deps.Recipes.ExistingIDs(dbc, []uuid.UUID{in.RecipeID})
		if err != nil {
			return err
		}
		if !found[in.RecipeID] {
			return domainagg.NewError(domainagg.CodeNotFound, op, "recipe not found", nil)
		}
		return a.replaceLineItems(dbc, op, in.RecipeID, in.Ingredients)
	})
}

func (a *recipeAggregate) DeleteRecipe(ctx context.Context, in domainagg.DeleteRecipeInput) error {
	const op = "Recipes.Recipe.DeleteRecipe"
	if err := RequireCaller(op, in.ActorID); err != nil {
		return err
	}
	if !a.configured() {
		return domainagg.NewError(domainagg.CodeInternal, op, "recipe aggregate repos not configured", nil)
	}
	return executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		if err := a.requireOwnedRecipe(dbc, op, in.RecipeID, in.ActorID); err != nil {
			return err
		}
		deleted, err := a.deps.Recipes.DeleteByID(dbc, in.RecipeID)
		if err != nil {
			return err
		}
		if !deleted {
			return domainagg.NewError(domainagg.CodeNotFound, op, "recipe not found", nil)
		}
		return nil
	})
}

func (a *recipeAggregate) requireOwnedRecipe(dbc dbctx.Context, op string, recipeID, actorID uuid.UUID) error {
	recipe, err := a.deps.Recipes.GetByID(dbc, recipeID)
	if err != nil {
		return err
	}
	if recipe == nil {
		return domainagg.NewError(domainagg.CodeNotFound, op, "recipe not found", nil)
	}
	return RequireOwner(op, recipe.AuthorID, actorID)
}

func (a *recipeAggregate) requireTags(dbc dbctx.Context, op string, tagIDs []uuid.UUID) error {
	rows, err := a.deps.Tags.GetByIDs(dbc, tagIDs)
	if err != nil {
		return err
	}
	found := make(map[uuid.UUID]bool, len(rows))
	for _, t := range rows {
		found[t.ID] = true
	}
	return requireAllExist(op, "tags", tagIDs, found)
}

// replaceLineItems is the replace-all step. It must run inside the caller's
// transaction: the catalog check, the delete and the insert commit together.
func (a *recipeAggregate) replaceLineItems(dbc dbctx.Context, op string, recipeID uuid.UUID, items []domainagg.LineItemInput) error {
	ids := make([]uuid.UUID, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.IngredientID)
	}
	found, err := a.deps.Ingredients.ExistingIDs(dbc, ids)
	if err != nil {
		return err
	}
	if err := requireAllExist(op, "ingredients", ids, found); err != nil {
		return err
	}

	if err := a.deps.LineItems.DeleteByRecipeIDs(dbc, []uuid.UUID{recipeID}); err != nil {
		return err
	}
	rows := make([]*types.LineItem, 0, len(items))
	for _, it := range items {
		rows = append(rows, &types.LineItem{
			ID:           uuid.New(),
			RecipeID:     recipeID,
			IngredientID: it.IngredientID,
			Amount:       it.Amount,
		})
	}
	return a.deps.LineItems.CreateMany(dbc, rows)
}
