package aggregates

import (
	"context"

	"github.com/google/uuid"
)

// MembershipKind names one of the (user, recipe) relations.
type MembershipKind string

const (
	MembershipCart     MembershipKind = "shopping_cart"
	MembershipFavorite MembershipKind = "favorite"
)

// MembershipAggregate owns cart and favorite pair invariants.
//
// Add fails with CodeConflict when the pair already exists and Remove fails
// with CodeNotFound when it does not. A missing recipe is CodeNotFound and a
// nil user is CodeUnauthorized.
type MembershipAggregate interface {
	Add(ctx context.Context, in MembershipInput) error
	Remove(ctx context.Context, in MembershipInput) error
}

type MembershipInput struct {
	Kind     MembershipKind
	UserID   uuid.UUID
	RecipeID uuid.UUID
}
