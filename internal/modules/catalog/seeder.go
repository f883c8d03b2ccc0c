package catalog

import (
	"context"
	"regexp"
	"strings"

	"github.com/yungbote/foodgram-backend/internal/data/aggregates"
	"github.com/yungbote/foodgram-backend/internal/data/repos"
	types "github.com/yungbote/foodgram-backend/internal/domain"
	domainagg "github.com/yungbote/foodgram-backend/internal/domain/aggregates"
	"github.com/yungbote/foodgram-backend/internal/platform/dbctx"
	"github.com/yungbote/foodgram-backend/internal/platform/logger"
)

var colorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

type SeederDeps struct {
	Log         *logger.Logger
	Runner      aggregates.TxRunner
	Ingredients repos.IngredientRepo
	Tags        repos.TagRepo
}

// Seeder inserts catalog fixtures. Rows that already exist are skipped, so
// running it twice is harmless.
type Seeder struct {
	deps SeederDeps
}

type SeedResult struct {
	IngredientsCreated int
	IngredientsSkipped int
	TagsCreated        int
	TagsSkipped        int
}

func NewSeeder(deps SeederDeps) *Seeder {
	if deps.Log == nil {
		deps.Log = logger.NewNop()
	}
	deps.Log = deps.Log.With("module", "CatalogSeeder")
	return &Seeder{deps: deps}
}

func (s *Seeder) Seed(ctx context.Context, f Fixture) (SeedResult, error) {
	const op = "catalog.seed"
	ingredients, err := normalizeIngredients(op, f.Ingredients)
	if err != nil {
		return SeedResult{}, err
	}
	tags, err := normalizeTags(op, f.Tags)
	if err != nil {
		return SeedResult{}, err
	}

	var res SeedResult
	err = s.deps.Runner.InTx(ctx, func(dbc dbctx.Context) error {
		res = SeedResult{}
		var newIngredients []*types.Ingredient
		for _, in := range ingredients {
			existing, err := s.deps.Ingredients.FindByNameAndUnit(dbc, in.Name, in.MeasurementUnit)
			if err != nil {
				return err
			}
			if existing != nil {
				res.IngredientsSkipped++
				continue
			}
			newIngredients = append(newIngredients, &types.Ingredient{Name: in.Name, MeasurementUnit: in.MeasurementUnit})
		}
		if _, err := s.deps.Ingredients.Create(dbc, newIngredients); err != nil {
			return err
		}
		res.IngredientsCreated = len(newIngredients)

		slugs := make([]string, 0, len(tags))
		for _, t := range tags {
			slugs = append(slugs, t.Slug)
		}
		existing, err := s.deps.Tags.GetBySlugs(dbc, slugs)
		if err != nil {
			return err
		}
		known := make(map[string]bool, len(existing))
		for _, t := range existing {
			known[t.Slug] = true
		}
		var newTags []*types.Tag
		for _, t := range tags {
			if known[t.Slug] {
				res.TagsSkipped++
				continue
			}
			newTags = append(newTags, &types.Tag{Name: t.Name, Color: t.Color, Slug: t.Slug})
		}
		if _, err := s.deps.Tags.Create(dbc, newTags); err != nil {
			return err
		}
		res.TagsCreated = len(newTags)
		return nil
	})
	if err != nil {
		return SeedResult{}, aggregates.MapError(op, err)
	}
	s.deps.Log.Info("catalog seeded",
		"ingredients_created", res.IngredientsCreated,
		"ingredients_skipped", res.IngredientsSkipped,
		"tags_created", res.TagsCreated,
		"tags_skipped", res.TagsSkipped,
	)
	return res, nil
}

// normalizeIngredients trims fields and drops in-file duplicates.
func normalizeIngredients(op string, in []IngredientFixture) ([]IngredientFixture, error) {
	type key struct{ name, unit string }
	seen := make(map[key]bool, len(in))
	out := make([]IngredientFixture, 0, len(in))
	for i, it := range in {
		it.Name = strings.TrimSpace(it.Name)
		it.MeasurementUnit = strings.TrimSpace(it.MeasurementUnit)
		if it.Name == "" || it.MeasurementUnit == "" {
			return nil, domainagg.Errorf(domainagg.CodeValidation, op, "ingredients[%d]: name and measurement_unit are required", i)
		}
		k := key{it.Name, it.MeasurementUnit}
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, it)
	}
	return out, nil
}

func normalizeTags(op string, in []TagFixture) ([]TagFixture, error) {
	seen := make(map[string]bool, len(in))
	out := make([]TagFixture, 0, len(in))
	for i, t := range in {
		t.Name = strings.TrimSpace(t.Name)
		t.Slug = strings.TrimSpace(t.Slug)
		t.Color = strings.ToUpper(strings.TrimSpace(t.Color))
		if t.Name == "" || t.Slug == "" {
			return nil, domainagg.Errorf(domainagg.CodeValidation, op, "tags[%d]: name and slug are required", i)
		}
		if !colorPattern.MatchString(t.Color) {
			return nil, domainagg.Errorf(domainagg.CodeValidation, op, "tags[%d]: color %q is not #RRGGBB", i, t.Color)
		}
		if seen[t.Slug] {
			continue
		}
		seen[t.Slug] = true
		out = append(out, t)
	}
	return out, nil
}
