package aggregates

import (
	"context"

	"github.com/google/uuid"
)

// RecipeAggregate owns recipe composition invariants.
//
// Write method failures return *aggregates.Error with codes:
// CodeValidation, CodeUnauthorized, CodeForbidden, CodeNotFound, CodeConflict,
// CodePreconditionFailed, CodeRetryable, CodeInternal.
type RecipeAggregate interface {
	// CreateRecipe inserts the recipe, its tags and its line items in one transaction.
	CreateRecipe(ctx context.Context, in CreateRecipeInput) (CreateRecipeResult, error)

	// UpdateRecipe patches recipe fields and, when given, replaces tags and line items atomically.
	UpdateRecipe(ctx context.Context, in UpdateRecipeInput) error

	// ReplaceLineItems deletes every line item of the recipe and inserts the given set.
	// Readers observe either the old or the new set.
	ReplaceLineItems(ctx context.Context, in ReplaceLineItemsInput) error

	// DeleteRecipe removes the recipe. Line items, tags, cart and favorite rows cascade.
	DeleteRecipe(ctx context.Context, in DeleteRecipeInput) error
}

type LineItemInput struct {
	IngredientID uuid.UUID
	Amount       int
}

type CreateRecipeInput struct {
	AuthorID    uuid.UUID
	Name        string
	ImageRef    string
	Text        string
	CookingTime int
	TagIDs      []uuid.UUID
	Ingredients []LineItemInput
}

type CreateRecipeResult struct {
	RecipeID uuid.UUID
}

// UpdateRecipeInput leaves nil fields untouched. A nil TagIDs or Ingredients
// keeps the current set.
type UpdateRecipeInput struct {
	RecipeID    uuid.UUID
	ActorID     uuid.UUID
	Name        *string
	ImageRef    *string
	Text        *string
	CookingTime *int
	TagIDs      []uuid.UUID
	Ingredients []LineItemInput
}

type ReplaceLineItemsInput struct {
	RecipeID    uuid.UUID
	Ingredients []LineItemInput
}

type DeleteRecipeInput struct {
	RecipeID uuid.UUID
	ActorID  uuid.UUID
}
