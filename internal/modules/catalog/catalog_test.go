package catalog

import (
	"context"
	"testing"

	"github.com/yungbote/foodgram-backend/internal/data/aggregates"
	"github.com/yungbote/foodgram-backend/internal/data/repos"
	"github.com/yungbote/foodgram-backend/internal/data/repos/testutil"
	domainagg "github.com/yungbote/foodgram-backend/internal/domain/aggregates"
	"github.com/yungbote/foodgram-backend/internal/platform/dbctx"
)

func TestParseFormats(t *testing.T) {
	cases := []struct {
		name string
		ext  string
		raw  string
		want int
	}{
		{"json list", ".json", `[{"name":"Flour","measurement_unit":"g"},{"name":"Egg","measurement_unit":"pcs"}]`, 2},
		{"json object", "json", `{"ingredients":[{"name":"Flour","measurement_unit":"g"}],"tags":[{"name":"Lunch","color":"#49B64E","slug":"lunch"}]}`, 1},
		{"yaml object", ".yaml", "ingredients:\n  - name: Flour\n    measurement_unit: g\ntags:\n  - name: Lunch\n    color: \"#49B64E\"\n    slug: lunch\n", 1},
		{"yml list", ".yml", "- name: Flour\n  measurement_unit: g\n- name: Salt\n  measurement_unit: pinch\n", 2},
		{"csv header", ".csv", "name,measurement_unit\nFlour,g\nSalt,pinch\n", 2},
		{"csv no header", ".CSV", "Flour,g\n\"Sugar, brown\",g\n", 2},
		{"empty json", ".json", "  ", 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f, err := Parse(tc.ext, []byte(tc.raw))
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if len(f.Ingredients) != tc.want {
				t.Fatalf("ingredients=%d want %d (%+v)", len(f.Ingredients), tc.want, f.Ingredients)
			}
		})
	}
}

func TestParseYAMLTags(t *testing.T) {
	f, err := Parse("yaml", []byte("tags:\n  - name: Dinner\n    color: \"#8775D2\"\n    slug: dinner\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(f.Tags) != 1 || f.Tags[0].Slug != "dinner" || f.Tags[0].Color != "#8775D2" {
		t.Fatalf("unexpected tags: %+v", f.Tags)
	}
}

func TestParseRejectsUnknownExtension(t *testing.T) {
	if _, err := Parse(".xml", []byte("<x/>")); err == nil {
		t.Fatalf("expected error for xml")
	}
	if _, err := Parse(".csv", []byte("Flour,g,extra\n")); err == nil {
		t.Fatalf("expected error for a three-column csv row")
	}
}

func newSeeder(t *testing.T) (*Seeder, repos.IngredientRepo, repos.TagRepo) {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)
	ingredients := repos.NewIngredientRepo(db, log)
	tags := repos.NewTagRepo(db, log)
	s := NewSeeder(SeederDeps{
		Log:         log,
		Runner:      aggregates.NewGormTxRunner(db),
		Ingredients: ingredients,
		Tags:        tags,
	})
	return s, ingredients, tags
}

func TestSeedSkipsExisting(t *testing.T) {
	ctx := context.Background()
	s, ingredients, tags := newSeeder(t)
	f := Fixture{
		Ingredients: []IngredientFixture{
			{Name: "Flour", MeasurementUnit: "g"},
			{Name: "Flour", MeasurementUnit: "kg"},
			{Name: " Flour ", MeasurementUnit: "g"},
		},
		Tags: []TagFixture{{Name: "Breakfast", Color: "#e26c2d", Slug: "breakfast"}},
	}

	res, err := s.Seed(ctx, f)
	if err != nil {
		t.Fatalf("Seed: %v", err)
	}
	if res.IngredientsCreated != 2 || res.TagsCreated != 1 {
		t.Fatalf("first run: %+v", res)
	}

	res, err = s.Seed(ctx, f)
	if err != nil {
		t.Fatalf("Seed again: %v", err)
	}
	if res.IngredientsCreated != 0 || res.IngredientsSkipped != 2 || res.TagsCreated != 0 || res.TagsSkipped != 1 {
		t.Fatalf("second run: %+v", res)
	}

	dbc := dbctx.Context{Ctx: ctx}
	rows, err := ingredients.ListByNamePrefix(dbc, "fl")
	if err != nil {
		t.Fatalf("ListByNamePrefix: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("ingredients=%d want 2", len(rows))
	}
	all, err := tags.List(dbc)
	if err != nil {
		t.Fatalf("List tags: %v", err)
	}
	if len(all) != 1 || all[0].Color != "#E26C2D" {
		t.Fatalf("unexpected tags: %+v", all)
	}
}

func TestSeedValidatesBeforeWriting(t *testing.T) {
	ctx := context.Background()
	s, ingredients, _ := newSeeder(t)
	_, err := s.Seed(ctx, Fixture{
		Ingredients: []IngredientFixture{{Name: "Flour", MeasurementUnit: "g"}},
		Tags:        []TagFixture{{Name: "Bad", Color: "red", Slug: "bad"}},
	})
	if !domainagg.IsCode(err, domainagg.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	rows, err := ingredients.ListByNamePrefix(dbctx.Context{Ctx: ctx}, "")
	if err != nil {
		t.Fatalf("ListByNamePrefix: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("nothing should be written, got %d ingredients", len(rows))
	}
}
