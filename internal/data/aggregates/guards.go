package aggregates

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	domainagg "github.com/yungbote/foodgram-backend/internal/domain/aggregates"
)

const (
	maxRecipeNameRunes = 200
	minAmount          = 1
	minCookingTime     = 1
)

// RequireCaller rejects anonymous writes.
func RequireCaller(op string, userID uuid.UUID) error {
	if userID == uuid.Nil {
		return domainagg.NewError(domainagg.CodeUnauthorized, op, "authentication required", nil)
	}
	return nil
}

// RequireOwner allows a write only by the recipe's author.
func RequireOwner(op string, authorID, actorID uuid.UUID) error {
	if err := RequireCaller(op, actorID); err != nil {
		return err
	}
	if authorID != actorID {
		return domainagg.NewError(domainagg.CodeForbidden, op, "only the author may change this recipe", nil)
	}
	return nil
}

// ValidateLineItems checks the shape of a replacement set: non-empty, every
// amount at least one, no ingredient listed twice. Catalog existence is
// checked separately inside the transaction.
func ValidateLineItems(op string, items []domainagg.LineItemInput) error {
	if len(items) == 0 {
		return domainagg.NewError(domainagg.CodeValidation, op, "at least one ingredient is required", nil)
	}
	seen := make(map[uuid.UUID]bool, len(items))
	for i, it := range items {
		if it.IngredientID == uuid.Nil {
			return domainagg.Errorf(domainagg.CodeValidation, op, "ingredients[%d]: missing ingredient id", i)
		}
		if it.Amount < minAmount {
			return domainagg.Errorf(domainagg.CodeValidation, op, "ingredients[%d]: amount must be >= %d", i, minAmount)
		}
		if seen[it.IngredientID] {
			return domainagg.Errorf(domainagg.CodeValidation, op, "ingredient %s is listed more than once", it.IngredientID)
		}
		seen[it.IngredientID] = true
	}
	return nil
}

// ValidateTagIDs requires a non-empty set without repeats.
func ValidateTagIDs(op string, tagIDs []uuid.UUID) error {
	if len(tagIDs) == 0 {
		return domainagg.NewError(domainagg.CodeValidation, op, "at least one tag is required", nil)
	}
	seen := make(map[uuid.UUID]bool, len(tagIDs))
	for _, id := range tagIDs {
		if id == uuid.Nil {
			return domainagg.NewError(domainagg.CodeValidation, op, "missing tag id", nil)
		}
		if seen[id] {
			return domainagg.Errorf(domainagg.CodeValidation, op, "tag %s is listed more than once", id)
		}
		seen[id] = true
	}
	return nil
}

func validateName(op, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", domainagg.NewError(domainagg.CodeValidation, op, "name is required", nil)
	}
	if utf8.RuneCountInString(name) > maxRecipeNameRunes {
		return "", domainagg.Errorf(domainagg.CodeValidation, op, "name must be at most %d characters", maxRecipeNameRunes)
	}
	return name, nil
}

func validateText(op, text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", domainagg.NewError(domainagg.CodeValidation, op, "text is required", nil)
	}
	return text, nil
}

func validateCookingTime(op string, minutes int) error {
	if minutes < minCookingTime {
		return domainagg.Errorf(domainagg.CodeValidation, op, "cooking_time must be >= %d", minCookingTime)
	}
	return nil
}

// requireAllExist fails with a validation error naming the ids missing from found.
func requireAllExist(op, kind string, ids []uuid.UUID, found map[uuid.UUID]bool) error {
	var missing []string
	for _, id := range ids {
		if !found[id] {
			missing = append(missing, id.String())
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)
	return domainagg.NewError(domainagg.CodeValidation, op, fmt.Sprintf("unknown %s: %s", kind, strings.Join(missing, ", ")), nil)
}
