package aggregates

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	domainagg "github.com/yungbote/foodgram-backend/internal/domain/aggregates"
)

func TestMapErrorClassifies(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want domainagg.ErrorCode
	}{
		{"record not found", gorm.ErrRecordNotFound, domainagg.CodeNotFound},
		{"gorm duplicate", fmt.Errorf("insert: %w", gorm.ErrDuplicatedKey), domainagg.CodeConflict},
		{"deadline", context.DeadlineExceeded, domainagg.CodeRetryable},
		{"pg unique", &pgconn.PgError{Code: "23505"}, domainagg.CodeConflict},
		{"pg fk", &pgconn.PgError{Code: "23503"}, domainagg.CodePreconditionFailed},
		{"pg serialization", &pgconn.PgError{Code: "40001"}, domainagg.CodeRetryable},
		{"sqlite unique", errors.New("UNIQUE constraint failed: shopping_cart_entry.user_id, shopping_cart_entry.recipe_id"), domainagg.CodeConflict},
		{"sqlite fk", errors.New("FOREIGN KEY constraint failed"), domainagg.CodePreconditionFailed},
		{"sqlite check", errors.New("CHECK constraint failed: chk_recipe_ingredient_amount"), domainagg.CodeValidation},
		{"sqlite busy", errors.New("database is locked"), domainagg.CodeRetryable},
		{"unknown", errors.New("disk I/O error"), domainagg.CodeInternal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := MapError("Recipes.CreateRecipe", tc.err)
			if got := domainagg.CodeOf(err); got != tc.want {
				t.Fatalf("code=%q want %q (%v)", got, tc.want, err)
			}
			if !errors.Is(err, tc.err) {
				t.Fatalf("mapped error should wrap the cause")
			}
		})
	}
}

func TestMapErrorKeepsAggregateErrors(t *testing.T) {
	in := domainagg.NewError(domainagg.CodeForbidden, "Recipes.DeleteRecipe", "not the author", nil)
	if out := MapError("other", in); out != in {
		t.Fatalf("expected the same error back, got %v", out)
	}
	if MapError("op", nil) != nil {
		t.Fatalf("nil should stay nil")
	}
}
