package recipes

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/foodgram-backend/internal/data/repos/testutil"
	types "github.com/yungbote/foodgram-backend/internal/domain"
	"github.com/yungbote/foodgram-backend/internal/platform/dbctx"
)

func TestLineItemsForBatchesAcrossRecipes(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	author := testutil.SeedUser(t, ctx, tx, "author")
	flour := testutil.SeedIngredient(t, ctx, tx, "Flour", "g")
	sugar := testutil.SeedIngredient(t, ctx, tx, "Sugar", "g")
	egg := testutil.SeedIngredient(t, ctx, tx, "Egg", "pcs")

	pancakes := testutil.SeedRecipe(t, ctx, tx, author.ID, "Pancakes", map[uuid.UUID]int{flour.ID: 200, egg.ID: 2})
	cake := testutil.SeedRecipe(t, ctx, tx, author.ID, "Cake", map[uuid.UUID]int{flour.ID: 300, sugar.ID: 100})
	other := testutil.SeedRecipe(t, ctx, tx, author.ID, "Other", map[uuid.UUID]int{sugar.ID: 5})

	repo := NewLineItemRepo(db, testutil.Logger(t))
	rows, err := repo.LineItemsFor(dbc, []uuid.UUID{pancakes.ID, cake.ID})
	if err != nil {
		t.Fatalf("LineItemsFor: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("LineItemsFor: expected 4 rows, got %d", len(rows))
	}
	for _, row := range rows {
		if row.RecipeID == other.ID {
			t.Fatalf("LineItemsFor: leaked row from unrequested recipe")
		}
		if row.Name == "" || row.MeasurementUnit == "" {
			t.Fatalf("LineItemsFor: missing catalog columns: %+v", row)
		}
	}

	empty, err := repo.LineItemsFor(dbc, nil)
	if err != nil || len(empty) != 0 {
		t.Fatalf("LineItemsFor(nil): got=%+v err=%v", empty, err)
	}
}

func TestLineItemRepoReplace(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	author := testutil.SeedUser(t, ctx, tx, "author")
	flour := testutil.SeedIngredient(t, ctx, tx, "Flour", "g")
	milk := testutil.SeedIngredient(t, ctx, tx, "Milk", "ml")
	r := testutil.SeedRecipe(t, ctx, tx, author.ID, "Bread", map[uuid.UUID]int{flour.ID: 500})

	repo := NewLineItemRepo(db, testutil.Logger(t))
	if err := repo.DeleteByRecipeIDs(dbc, []uuid.UUID{r.ID}); err != nil {
		t.Fatalf("DeleteByRecipeIDs: %v", err)
	}
	if err := repo.CreateMany(dbc, []*types.LineItem{{RecipeID: r.ID, IngredientID: milk.ID, Amount: 250}}); err != nil {
		t.Fatalf("CreateMany: %v", err)
	}
	rows, err := repo.LineItemsFor(dbc, []uuid.UUID{r.ID})
	if err != nil {
		t.Fatalf("LineItemsFor: %v", err)
	}
	if len(rows) != 1 || rows[0].IngredientID != milk.ID || rows[0].Amount != 250 {
		t.Fatalf("LineItemsFor: unexpected %+v", rows)
	}

	dup := []*types.LineItem{{RecipeID: r.ID, IngredientID: milk.ID, Amount: 1}}
	if err := repo.CreateMany(dbc, dup); err == nil {
		t.Fatalf("CreateMany: expected unique violation for duplicate pair")
	}
}

func TestRecipeRepoListFilters(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	alice := testutil.SeedUser(t, ctx, tx, "alice")
	bob := testutil.SeedUser(t, ctx, tx, "bob")
	lunch := testutil.SeedTag(t, ctx, tx, "Lunch", "#00FF00", "lunch")

	r1 := testutil.SeedRecipe(t, ctx, tx, alice.ID, "Soup", nil)
	r2 := testutil.SeedRecipe(t, ctx, tx, bob.ID, "Salad", nil)
	testutil.SeedCartEntry(t, ctx, tx, alice.ID, r2.ID)

	tags := NewRecipeTagRepo(db, testutil.Logger(t))
	if err := tags.ReplaceForRecipe(dbc, r1.ID, []uuid.UUID{lunch.ID, lunch.ID}); err != nil {
		t.Fatalf("ReplaceForRecipe: %v", err)
	}
	tagRows, err := tags.ListByRecipeIDs(dbc, []uuid.UUID{r1.ID})
	if err != nil || len(tagRows) != 1 || tagRows[0].Slug != "lunch" {
		t.Fatalf("ListByRecipeIDs: got=%+v err=%v", tagRows, err)
	}

	repo := NewRecipeRepo(db, testutil.Logger(t))

	byAuthor, err := repo.List(dbc, RecipeFilter{AuthorID: bob.ID})
	if err != nil || len(byAuthor) != 1 || byAuthor[0].ID != r2.ID {
		t.Fatalf("List(author): got=%+v err=%v", byAuthor, err)
	}
	byTag, err := repo.List(dbc, RecipeFilter{TagSlugs: []string{"lunch"}})
	if err != nil || len(byTag) != 1 || byTag[0].ID != r1.ID {
		t.Fatalf("List(tags): got=%+v err=%v", byTag, err)
	}
	inCart, err := repo.List(dbc, RecipeFilter{InCartOf: alice.ID})
	if err != nil || len(inCart) != 1 || inCart[0].ID != r2.ID {
		t.Fatalf("List(cart): got=%+v err=%v", inCart, err)
	}
	all, err := repo.List(dbc, RecipeFilter{})
	if err != nil || len(all) != 2 {
		t.Fatalf("List(all): got=%d err=%v", len(all), err)
	}

	counts, err := repo.CountByAuthorIDs(dbc, []uuid.UUID{alice.ID, bob.ID})
	if err != nil || counts[alice.ID] != 1 || counts[bob.ID] != 1 {
		t.Fatalf("CountByAuthorIDs: got=%+v err=%v", counts, err)
	}

	if err := repo.UpdateFields(dbc, r1.ID, map[string]interface{}{"name": "Borscht"}); err != nil {
		t.Fatalf("UpdateFields: %v", err)
	}
	got, err := repo.GetByID(dbc, r1.ID)
	if err != nil || got == nil || got.Name != "Borscht" {
		t.Fatalf("GetByID: got=%+v err=%v", got, err)
	}
}

func TestRecipeRepoDeleteCascades(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	author := testutil.SeedUser(t, ctx, tx, "author")
	flour := testutil.SeedIngredient(t, ctx, tx, "Flour", "g")
	r := testutil.SeedRecipe(t, ctx, tx, author.ID, "Bread", map[uuid.UUID]int{flour.ID: 500})
	testutil.SeedCartEntry(t, ctx, tx, author.ID, r.ID)

	repo := NewRecipeRepo(db, testutil.Logger(t))
	deleted, err := repo.DeleteByID(dbc, r.ID)
	if err != nil || !deleted {
		t.Fatalf("DeleteByID: deleted=%v err=%v", deleted, err)
	}

	var n int64
	if err := tx.WithContext(ctx).Model(&types.LineItem{}).Where("recipe_id = ?", r.ID).Count(&n).Error; err != nil {
		t.Fatalf("count line items: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected line items to cascade, found %d", n)
	}
	if err := tx.WithContext(ctx).Model(&types.CartEntry{}).Where("recipe_id = ?", r.ID).Count(&n).Error; err != nil {
		t.Fatalf("count cart entries: %v", err)
	}
	if n != 0 {
		t.Fatalf("expected cart entries to cascade, found %d", n)
	}

	again, err := repo.DeleteByID(dbc, r.ID)
	if err != nil || again {
		t.Fatalf("DeleteByID (again): deleted=%v err=%v", again, err)
	}
}
