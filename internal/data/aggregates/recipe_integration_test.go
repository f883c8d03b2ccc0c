package aggregates_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/foodgram-backend/internal/data/aggregates"
	aggtest "github.com/yungbote/foodgram-backend/internal/data/aggregates/testutil"
	"github.com/yungbote/foodgram-backend/internal/data/repos"
	repotest "github.com/yungbote/foodgram-backend/internal/data/repos/testutil"
	types "github.com/yungbote/foodgram-backend/internal/domain"
	domainagg "github.com/yungbote/foodgram-backend/internal/domain/aggregates"
	"github.com/yungbote/foodgram-backend/internal/platform/dbctx"
)

type recipeFixture struct {
	db     *gorm.DB
	author *types.User
	flour  *types.Ingredient
	milk   *types.Ingredient
	tag    *types.Tag
	recipe *types.Recipe
	deps   aggregates.RecipeAggregateDeps
}

func newRecipeFixture(t *testing.T) recipeFixture {
	t.Helper()
	db := repotest.DB(t)
	ctx := context.Background()
	log := repotest.Logger(t)

	f := recipeFixture{db: db}
	f.author = repotest.SeedUser(t, ctx, db, "author")
	f.flour = repotest.SeedIngredient(t, ctx, db, "Flour", "g")
	f.milk = repotest.SeedIngredient(t, ctx, db, "Milk", "ml")
	f.tag = repotest.SeedTag(t, ctx, db, "Breakfast", "#FF0000", "breakfast")
	f.recipe = repotest.SeedRecipe(t, ctx, db, f.author.ID, "Bread", map[uuid.UUID]int{f.flour.ID: 500})
	f.deps = aggregates.RecipeAggregateDeps{
		Base:        aggregates.BaseDeps{DB: db, Log: log},
		Recipes:     repos.NewRecipeRepo(db, log),
		LineItems:   repos.NewLineItemRepo(db, log),
		RecipeTags:  repos.NewRecipeTagRepo(db, log),
		Ingredients: repos.NewIngredientRepo(db, log),
		Tags:        repos.NewTagRepo(db, log),
	}
	return f
}

func (f recipeFixture) lineItems(t *testing.T) []*types.LineItemRow {
	t.Helper()
	rows, err := f.deps.LineItems.LineItemsFor(dbctx.Context{Ctx: context.Background()}, []uuid.UUID{f.recipe.ID})
	if err != nil {
		t.Fatalf("LineItemsFor: %v", err)
	}
	return rows
}

func (f recipeFixture) requireOriginalItems(t *testing.T) {
	t.Helper()
	rows := f.lineItems(t)
	if len(rows) != 1 || rows[0].IngredientID != f.flour.ID || rows[0].Amount != 500 {
		t.Fatalf("expected original line items to survive, got %+v", rows)
	}
}

// failingLineItems deletes normally and then fails the insert.
type failingLineItems struct {
	repos.LineItemRepo
	err error
}

func (f failingLineItems) CreateMany(dbctx.Context, []*types.LineItem) error { return f.err }

func TestReplaceLineItemsSwapsTheWholeSet(t *testing.T) {
	f := newRecipeFixture(t)
	agg := aggregates.NewRecipeAggregate(f.deps)

	err := agg.ReplaceLineItems(context.Background(), domainagg.ReplaceLineItemsInput{
		RecipeID:    f.recipe.ID,
		Ingredients: []domainagg.LineItemInput{{IngredientID: f.milk.ID, Amount: 250}},
	})
	if err != nil {
		t.Fatalf("ReplaceLineItems: %v", err)
	}
	rows := f.lineItems(t)
	if len(rows) != 1 || rows[0].IngredientID != f.milk.ID || rows[0].Amount != 250 {
		t.Fatalf("unexpected line items after replace: %+v", rows)
	}
}

func TestReplaceLineItemsRollsBackWhenInsertFails(t *testing.T) {
	f := newRecipeFixture(t)
	f.deps.LineItems = failingLineItems{LineItemRepo: f.deps.LineItems, err: errors.New("insert failed")}
	hooks := &aggtest.HooksRecorder{}
	f.deps.Base.Hooks = hooks
	agg := aggregates.NewRecipeAggregate(f.deps)

	err := agg.ReplaceLineItems(context.Background(), domainagg.ReplaceLineItemsInput{
		RecipeID:    f.recipe.ID,
		Ingredients: []domainagg.LineItemInput{{IngredientID: f.milk.ID, Amount: 250}},
	})
	if !domainagg.IsCode(err, domainagg.CodeInternal) {
		t.Fatalf("expected internal error, got %v", err)
	}
	f.requireOriginalItems(t)

	if len(hooks.Operations) != 1 || hooks.Operations[0].Status != string(domainagg.CodeInternal) {
		t.Fatalf("unexpected hook events: %+v", hooks.Operations)
	}
}

func TestReplaceLineItemsRollsBackOnCommitFailure(t *testing.T) {
	f := newRecipeFixture(t)
	runner := &aggtest.InjectedTxRunner{DB: f.db, FailCommit: errors.New("commit failed")}
	f.deps.Base.Runner = runner
	agg := aggregates.NewRecipeAggregate(f.deps)

	err := agg.ReplaceLineItems(context.Background(), domainagg.ReplaceLineItemsInput{
		RecipeID:    f.recipe.ID,
		Ingredients: []domainagg.LineItemInput{{IngredientID: f.milk.ID, Amount: 250}},
	})
	if err == nil {
		t.Fatalf("expected commit failure to surface")
	}
	if runner.BeginCalls != 1 || runner.RollbackCalls != 1 || runner.CommitCalls != 0 {
		t.Fatalf("unexpected counters begin=%d commit=%d rollback=%d", runner.BeginCalls, runner.CommitCalls, runner.RollbackCalls)
	}
	f.requireOriginalItems(t)
}

func TestReplaceLineItemsValidation(t *testing.T) {
	f := newRecipeFixture(t)
	runner := &aggtest.InjectedTxRunner{DB: f.db}
	f.deps.Base.Runner = runner
	agg := aggregates.NewRecipeAggregate(f.deps)
	ctx := context.Background()

	cases := []struct {
		name  string
		items []domainagg.LineItemInput
		tx    bool
	}{
		{name: "empty", items: []domainagg.LineItemInput{}},
		{name: "zero amount", items: []domainagg.LineItemInput{{IngredientID: f.milk.ID, Amount: 0}}},
		{name: "duplicate ingredient", items: []domainagg.LineItemInput{{IngredientID: f.milk.ID, Amount: 1}, {IngredientID: f.milk.ID, Amount: 2}}},
		{name: "unknown ingredient", items: []domainagg.LineItemInput{{IngredientID: uuid.New(), Amount: 1}}, tx: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			before := runner.BeginCalls
			err := agg.ReplaceLineItems(ctx, domainagg.ReplaceLineItemsInput{RecipeID: f.recipe.ID, Ingredients: tc.items})
			if !domainagg.IsCode(err, domainagg.CodeValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if opened := runner.BeginCalls > before; opened != tc.tx {
				t.Fatalf("transaction opened=%v, want %v", opened, tc.tx)
			}
			f.requireOriginalItems(t)
		})
	}

	err := agg.ReplaceLineItems(ctx, domainagg.ReplaceLineItemsInput{
		RecipeID:    uuid.New(),
		Ingredients: []domainagg.LineItemInput{{IngredientID: f.milk.ID, Amount: 1}},
	})
	if !domainagg.IsCode(err, domainagg.CodeNotFound) {
		t.Fatalf("expected not found for missing recipe, got %v", err)
	}
}

func TestCreateUpdateDeleteRecipe(t *testing.T) {
	f := newRecipeFixture(t)
	agg := aggregates.NewRecipeAggregate(f.deps)
	ctx := context.Background()

	created, err := agg.CreateRecipe(ctx, domainagg.CreateRecipeInput{
		AuthorID:    f.author.ID,
		Name:        "  Pancakes ",
		Text:        "Mix and fry.",
		CookingTime: 15,
		TagIDs:      []uuid.UUID{f.tag.ID},
		Ingredients: []domainagg.LineItemInput{{IngredientID: f.flour.ID, Amount: 200}, {IngredientID: f.milk.ID, Amount: 300}},
	})
	if err != nil {
		t.Fatalf("CreateRecipe: %v", err)
	}
	dbc := dbctx.Context{Ctx: ctx}
	got, err := f.deps.Recipes.GetByID(dbc, created.RecipeID)
	if err != nil || got == nil || got.Name != "Pancakes" {
		t.Fatalf("GetByID: got=%+v err=%v", got, err)
	}
	items, err := f.deps.LineItems.LineItemsFor(dbc, []uuid.UUID{created.RecipeID})
	if err != nil || len(items) != 2 {
		t.Fatalf("LineItemsFor: got=%+v err=%v", items, err)
	}

	_, err = agg.CreateRecipe(ctx, domainagg.CreateRecipeInput{
		AuthorID:    f.author.ID,
		Name:        "Ghost",
		Text:        "x",
		CookingTime: 1,
		TagIDs:      []uuid.UUID{uuid.New()},
		Ingredients: []domainagg.LineItemInput{{IngredientID: f.flour.ID, Amount: 1}},
	})
	if !domainagg.IsCode(err, domainagg.CodeValidation) {
		t.Fatalf("expected validation error for unknown tag, got %v", err)
	}

	stranger := repotest.SeedUser(t, ctx, f.db, "stranger")
	name := "Stolen"
	err = agg.UpdateRecipe(ctx, domainagg.UpdateRecipeInput{RecipeID: created.RecipeID, ActorID: stranger.ID, Name: &name})
	if !domainagg.IsCode(err, domainagg.CodeForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}

	minutes := 20
	err = agg.UpdateRecipe(ctx, domainagg.UpdateRecipeInput{
		RecipeID:    created.RecipeID,
		ActorID:     f.author.ID,
		CookingTime: &minutes,
		Ingredients: []domainagg.LineItemInput{{IngredientID: f.milk.ID, Amount: 1}},
	})
	if err != nil {
		t.Fatalf("UpdateRecipe: %v", err)
	}
	items, err = f.deps.LineItems.LineItemsFor(dbc, []uuid.UUID{created.RecipeID})
	if err != nil || len(items) != 1 || items[0].IngredientID != f.milk.ID {
		t.Fatalf("LineItemsFor after update: got=%+v err=%v", items, err)
	}

	if err := agg.DeleteRecipe(ctx, domainagg.DeleteRecipeInput{RecipeID: created.RecipeID, ActorID: stranger.ID}); !domainagg.IsCode(err, domainagg.CodeForbidden) {
		t.Fatalf("expected forbidden delete, got %v", err)
	}
	if err := agg.DeleteRecipe(ctx, domainagg.DeleteRecipeInput{RecipeID: created.RecipeID, ActorID: f.author.ID}); err != nil {
		t.Fatalf("DeleteRecipe: %v", err)
	}
	if err := agg.DeleteRecipe(ctx, domainagg.DeleteRecipeInput{RecipeID: created.RecipeID, ActorID: f.author.ID}); !domainagg.IsCode(err, domainagg.CodeNotFound) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}
