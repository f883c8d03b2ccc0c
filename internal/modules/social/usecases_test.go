package social

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/foodgram-backend/internal/data/repos"
	"github.com/yungbote/foodgram-backend/internal/data/repos/testutil"
	domainagg "github.com/yungbote/foodgram-backend/internal/domain/aggregates"
)

type fixture struct {
	uc Usecases
	db *gorm.DB
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)
	return fixture{
		db: db,
		uc: New(UsecasesDeps{
			Log:           log,
			Users:         repos.NewUserRepo(db, log),
			Subscriptions: repos.NewSubscriptionRepo(db, log),
			Recipes:       repos.NewRecipeRepo(db, log),
		}),
	}
}

func (f fixture) user(t *testing.T, name string, recipes int) uuid.UUID {
	t.Helper()
	ctx := context.Background()
	id := testutil.SeedUser(t, ctx, f.db, name).ID
	for i := 0; i < recipes; i++ {
		testutil.SeedRecipe(t, ctx, f.db, id, "Dish", nil)
	}
	return id
}

func TestSubscribe(t *testing.T) {
	f := newFixture(t)
	uc, ctx := f.uc, context.Background()
	fan, chef := f.user(t, "fan", 0), f.user(t, "chef", 3)

	view, err := uc.Subscribe(ctx, fan, chef, 2)
	if err != nil {
		t.Fatalf("Subscribe: %v", err)
	}
	if !view.IsSubscribed || view.RecipesCount != 3 || len(view.Recipes) != 2 {
		t.Fatalf("unexpected view %+v", view)
	}

	if _, err := uc.Subscribe(ctx, fan, chef, 0); !domainagg.IsCode(err, domainagg.CodeConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if _, err := uc.Subscribe(ctx, fan, fan, 0); !domainagg.IsCode(err, domainagg.CodeValidation) {
		t.Fatalf("expected validation, got %v", err)
	}
	if _, err := uc.Subscribe(ctx, fan, uuid.New(), 0); !domainagg.IsCode(err, domainagg.CodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := uc.Subscribe(ctx, uuid.Nil, chef, 0); !domainagg.IsCode(err, domainagg.CodeUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestListSubscriptionsAndUnsubscribe(t *testing.T) {
	f := newFixture(t)
	uc, ctx := f.uc, context.Background()
	fan, chef, baker := f.user(t, "fan", 0), f.user(t, "chef", 3), f.user(t, "baker", 0)

	if _, err := uc.Subscribe(ctx, fan, chef, 0); err != nil {
		t.Fatalf("Subscribe chef: %v", err)
	}
	if _, err := uc.Subscribe(ctx, fan, baker, 0); err != nil {
		t.Fatalf("Subscribe baker: %v", err)
	}

	subs, err := uc.ListSubscriptions(ctx, fan, 1)
	if err != nil {
		t.Fatalf("ListSubscriptions: %v", err)
	}
	if len(subs) != 2 {
		t.Fatalf("expected 2 subscriptions, got %d", len(subs))
	}
	for _, s := range subs {
		if s.ID == chef && (len(s.Recipes) != 1 || s.RecipesCount != 3) {
			t.Fatalf("recipes_limit not applied: %+v", s)
		}
		if s.ID == baker && (len(s.Recipes) != 0 || s.RecipesCount != 0) {
			t.Fatalf("unexpected baker view: %+v", s)
		}
	}

	user, err := uc.GetUser(ctx, fan, chef)
	if err != nil || !user.IsSubscribed {
		t.Fatalf("GetUser: %+v err=%v", user, err)
	}

	if err := uc.Unsubscribe(ctx, fan, chef); err != nil {
		t.Fatalf("Unsubscribe: %v", err)
	}
	if err := uc.Unsubscribe(ctx, fan, chef); !domainagg.IsCode(err, domainagg.CodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	subs, err = uc.ListSubscriptions(ctx, fan, 0)
	if err != nil || len(subs) != 1 || subs[0].ID != baker {
		t.Fatalf("after unsubscribe: %+v err=%v", subs, err)
	}
}

func TestListUsers(t *testing.T) {
	f := newFixture(t)
	uc, ctx := f.uc, context.Background()
	fan := f.user(t, "fan", 0)
	f.user(t, "chef", 0)

	page, err := uc.ListUsers(ctx, fan, 10, 0)
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if page.Count != 2 || len(page.Results) != 2 || page.Results[0].Username != "chef" {
		t.Fatalf("unexpected page %+v", page)
	}

	me, err := uc.Me(ctx, fan)
	if err != nil || me.Username != "fan" {
		t.Fatalf("Me: %+v err=%v", me, err)
	}
}
