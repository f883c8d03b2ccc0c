package membership

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/foodgram-backend/internal/data/repos/testutil"
	"github.com/yungbote/foodgram-backend/internal/platform/dbctx"
)

func TestCartAndFavoriteAreIndependent(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	u := testutil.SeedUser(t, ctx, tx, "shopper")
	r1 := testutil.SeedRecipe(t, ctx, tx, u.ID, "One", nil)
	r2 := testutil.SeedRecipe(t, ctx, tx, u.ID, "Two", nil)

	cart := NewCartRepo(db, testutil.Logger(t))
	fav := NewFavoriteRepo(db, testutil.Logger(t))

	if err := cart.Add(dbc, u.ID, r1.ID); err != nil {
		t.Fatalf("cart.Add: %v", err)
	}
	if err := cart.Add(dbc, u.ID, r2.ID); err != nil {
		t.Fatalf("cart.Add: %v", err)
	}
	if err := fav.Add(dbc, u.ID, r2.ID); err != nil {
		t.Fatalf("fav.Add: %v", err)
	}

	ids, err := cart.RecipeIDs(dbc, u.ID)
	if err != nil || len(ids) != 2 {
		t.Fatalf("cart.RecipeIDs: got=%v err=%v", ids, err)
	}
	favIDs, err := fav.RecipeIDs(dbc, u.ID)
	if err != nil || len(favIDs) != 1 || favIDs[0] != r2.ID {
		t.Fatalf("fav.RecipeIDs: got=%v err=%v", favIDs, err)
	}

	held, err := fav.ExistingRecipeIDs(dbc, u.ID, []uuid.UUID{r1.ID, r2.ID})
	if err != nil || held[r1.ID] || !held[r2.ID] {
		t.Fatalf("fav.ExistingRecipeIDs: got=%v err=%v", held, err)
	}

	removed, err := cart.Remove(dbc, u.ID, r1.ID)
	if err != nil || !removed {
		t.Fatalf("cart.Remove: removed=%v err=%v", removed, err)
	}
	removed, err = cart.Remove(dbc, u.ID, r1.ID)
	if err != nil || removed {
		t.Fatalf("cart.Remove (again): removed=%v err=%v", removed, err)
	}
	ok, err := cart.Exists(dbc, u.ID, r2.ID)
	if err != nil || !ok {
		t.Fatalf("cart.Exists: ok=%v err=%v", ok, err)
	}
}

func TestPairRepoRejectsDuplicates(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	u := testutil.SeedUser(t, ctx, tx, "shopper")
	r := testutil.SeedRecipe(t, ctx, tx, u.ID, "One", nil)

	cart := NewCartRepo(db, testutil.Logger(t))
	if err := cart.Add(dbc, u.ID, r.ID); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := cart.Add(dbc, u.ID, r.ID); err == nil {
		t.Fatalf("Add: expected duplicate pair to fail")
	}
}
