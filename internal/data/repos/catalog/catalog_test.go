package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/foodgram-backend/internal/data/repos/testutil"
	types "github.com/yungbote/foodgram-backend/internal/domain"
	"github.com/yungbote/foodgram-backend/internal/platform/dbctx"
)

func TestIngredientRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	repo := NewIngredientRepo(db, testutil.Logger(t))

	created, err := repo.Create(dbc, []*types.Ingredient{
		{Name: "Flour", MeasurementUnit: "g"},
		{Name: "Flour", MeasurementUnit: "kg"},
		{Name: "fl_x%", MeasurementUnit: "pcs"},
		{Name: "Sugar", MeasurementUnit: "g"},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	for _, row := range created {
		if row.ID == uuid.Nil {
			t.Fatalf("Create: expected id to be assigned")
		}
	}

	got, err := repo.GetByID(dbc, created[0].ID)
	if err != nil || got == nil || got.Name != "Flour" {
		t.Fatalf("GetByID: got=%+v err=%v", got, err)
	}
	missing, err := repo.GetByID(dbc, uuid.New())
	if err != nil || missing != nil {
		t.Fatalf("GetByID (missing): got=%+v err=%v", missing, err)
	}

	existing, err := repo.ExistingIDs(dbc, []uuid.UUID{created[1].ID, uuid.New()})
	if err != nil {
		t.Fatalf("ExistingIDs: %v", err)
	}
	if len(existing) != 1 || !existing[created[1].ID] {
		t.Fatalf("ExistingIDs: unexpected %+v", existing)
	}

	byPrefix, err := repo.ListByNamePrefix(dbc, "FL")
	if err != nil {
		t.Fatalf("ListByNamePrefix: %v", err)
	}
	if len(byPrefix) != 3 {
		t.Fatalf("ListByNamePrefix: expected 3 rows, got %d", len(byPrefix))
	}

	escaped, err := repo.ListByNamePrefix(dbc, "fl_")
	if err != nil {
		t.Fatalf("ListByNamePrefix (escaped): %v", err)
	}
	if len(escaped) != 1 || escaped[0].Name != "fl_x%" {
		t.Fatalf("ListByNamePrefix (escaped): unexpected %+v", escaped)
	}

	found, err := repo.FindByNameAndUnit(dbc, "Flour", "kg")
	if err != nil || found == nil || found.ID != created[1].ID {
		t.Fatalf("FindByNameAndUnit: got=%+v err=%v", found, err)
	}
}

func TestTagRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	dbc := dbctx.Context{Ctx: context.Background(), Tx: tx}

	repo := NewTagRepo(db, testutil.Logger(t))

	created, err := repo.Create(dbc, []*types.Tag{
		{Name: "Lunch", Color: "#00FF00", Slug: "lunch"},
		{Name: "Breakfast", Color: "#FF0000", Slug: "breakfast"},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	all, err := repo.List(dbc)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 2 || all[0].Slug != "breakfast" {
		t.Fatalf("List: expected name order, got %+v", all)
	}

	bySlug, err := repo.GetBySlugs(dbc, []string{"lunch"})
	if err != nil || len(bySlug) != 1 || bySlug[0].ID != created[0].ID {
		t.Fatalf("GetBySlugs: got=%+v err=%v", bySlug, err)
	}
}
