package aggregates

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/yungbote/foodgram-backend/internal/data/repos"
	domainagg "github.com/yungbote/foodgram-backend/internal/domain/aggregates"
	"github.com/yungbote/foodgram-backend/internal/platform/dbctx"
)

type MembershipAggregateDeps struct {
	Base BaseDeps

	Recipes   repos.RecipeRepo
	Cart      repos.CartRepo
	Favorites repos.FavoriteRepo
}

type membershipAggregate struct {
	deps MembershipAggregateDeps
}

func NewMembershipAggregate(deps MembershipAggregateDeps) domainagg.MembershipAggregate {
	deps.Base = deps.Base.withDefaults()
	deps.Base.Log = deps.Base.Log.With("aggregate", "MembershipAggregate")
	return &membershipAggregate{deps: deps}
}

func (a *membershipAggregate) store(op string, kind domainagg.MembershipKind) (repos.PairRepo, error) {
	var store repos.PairRepo
	switch kind {
	case domainagg.MembershipCart:
		store = a.deps.Cart
	case domainagg.MembershipFavorite:
		store = a.deps.Favorites
	default:
		return nil, domainagg.Errorf(domainagg.CodeValidation, op, "unknown membership kind %q", kind)
	}
	if store == nil || a.deps.Recipes == nil {
		return nil, domainagg.NewError(domainagg.CodeInternal, op, "membership aggregate repos not configured", nil)
	}
	return store, nil
}

// Add inserts the pair. Uniqueness is left to the (user_id, recipe_id) index
// so two concurrent adds cannot both succeed.
func (a *membershipAggregate) Add(ctx context.Context, in domainagg.MembershipInput) error {
	op := fmt.Sprintf("Recipes.Membership.Add.%s", in.Kind)
	if err := RequireCaller(op, in.UserID); err != nil {
		return err
	}
	store, err := a.store(op, in.Kind)
	if err != nil {
		return err
	}
	err = executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		if err := a.requireRecipe(dbc, op, in.RecipeID); err != nil {
			return err
		}
		return store.Add(dbc, in.UserID, in.RecipeID)
	})
	if domainagg.IsCode(err, domainagg.CodeConflict) {
		return domainagg.NewError(domainagg.CodeConflict, op, fmt.Sprintf("recipe is already in %s", in.Kind), err)
	}
	return err
}

func (a *membershipAggregate) Remove(ctx context.Context, in domainagg.MembershipInput) error {
	op := fmt.Sprintf("Recipes.Membership.Remove.%s", in.Kind)
	if err := RequireCaller(op, in.UserID); err != nil {
		return err
	}
	store, err := a.store(op, in.Kind)
	if err != nil {
		return err
	}
	return executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		if err := a.requireRecipe(dbc, op, in.RecipeID); err != nil {
			return err
		}
		removed, err := store.Remove(dbc, in.UserID, in.RecipeID)
		if err != nil {
			return err
		}
		if !removed {
			return domainagg.NewError(domainagg.CodeNotFound, op, fmt.Sprintf("recipe is not in %s", in.Kind), nil)
		}
		return nil
	})
}

func (a *membershipAggregate) requireRecipe(dbc dbctx.Context, op string, recipeID uuid.UUID) error {
	if recipeID == uuid.Nil {
		return domainagg.NewError(domainagg.CodeNotFound, op, "recipe not found", nil)
	}
	found, err := a.deps.Recipes.ExistingIDs(dbc, []uuid.UUID{recipeID})
	if err != nil {
		return err
	}
	if !found[recipeID] {
		return domainagg.NewError(domainagg.CodeNotFound, op, "recipe not found", nil)
	}
	return nil
}
