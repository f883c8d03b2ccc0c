package aggregates

import (
	"strings"
	"testing"

	"github.com/google/uuid"

	domainagg "github.com/yungbote/foodgram-backend/internal/domain/aggregates"
)

func TestValidateLineItems(t *testing.T) {
	a, b := uuid.New(), uuid.New()

	cases := []struct {
		name  string
		items []domainagg.LineItemInput
		ok    bool
	}{
		{name: "empty", items: nil},
		{name: "zero amount", items: []domainagg.LineItemInput{{IngredientID: a, Amount: 0}}},
		{name: "negative amount", items: []domainagg.LineItemInput{{IngredientID: a, Amount: -3}}},
		{name: "nil id", items: []domainagg.LineItemInput{{Amount: 1}}},
		{name: "duplicate", items: []domainagg.LineItemInput{{IngredientID: a, Amount: 1}, {IngredientID: a, Amount: 2}}},
		{name: "valid", items: []domainagg.LineItemInput{{IngredientID: a, Amount: 1}, {IngredientID: b, Amount: 500}}, ok: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateLineItems("op", tc.items)
			if tc.ok {
				if err != nil {
					t.Fatalf("unexpected err: %v", err)
				}
				return
			}
			if !domainagg.IsCode(err, domainagg.CodeValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestValidateTagIDs(t *testing.T) {
	id := uuid.New()
	if err := ValidateTagIDs("op", []uuid.UUID{id}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if err := ValidateTagIDs("op", nil); !domainagg.IsCode(err, domainagg.CodeValidation) {
		t.Fatalf("expected validation error for empty tags, got %v", err)
	}
	if err := ValidateTagIDs("op", []uuid.UUID{id, id}); !domainagg.IsCode(err, domainagg.CodeValidation) {
		t.Fatalf("expected validation error for repeated tag, got %v", err)
	}
}

func TestRequireOwner(t *testing.T) {
	author := uuid.New()
	if err := RequireOwner("op", author, author); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if err := RequireOwner("op", author, uuid.New()); !domainagg.IsCode(err, domainagg.CodeForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if err := RequireOwner("op", author, uuid.Nil); !domainagg.IsCode(err, domainagg.CodeUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestValidateName(t *testing.T) {
	if _, err := validateName("op", "   "); err == nil {
		t.Fatalf("expected error for blank name")
	}
	if _, err := validateName("op", strings.Repeat("щ", maxRecipeNameRunes)); err != nil {
		t.Fatalf("multibyte name at the limit should pass: %v", err)
	}
	if _, err := validateName("op", strings.Repeat("a", maxRecipeNameRunes+1)); err == nil {
		t.Fatalf("expected error for long name")
	}
}

func TestRequireAllExistListsMissing(t *testing.T) {
	known, unknown := uuid.New(), uuid.New()
	err := requireAllExist("op", "ingredients", []uuid.UUID{known, unknown}, map[uuid.UUID]bool{known: true})
	if !domainagg.IsCode(err, domainagg.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if !strings.Contains(err.Error(), unknown.String()) {
		t.Fatalf("expected missing id in message, got %q", err.Error())
	}
}
