package app

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yungbote/foodgram-backend/internal/data/repos/testutil"
	apphttp "github.com/yungbote/foodgram-backend/internal/http"
)

type testServer struct {
	router *gin.Engine
	db     *gorm.DB
}

func newTestServer(t *testing.T) testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.DB(t)
	log := testutil.Logger(t)
	cfg := Config{
		JWTSecretKey:          "test-secret",
		AccessTokenTTL:        time.Hour,
		DownloadRatePerMinute: 100,
		DownloadRateBurst:     100,
	}
	r := wireRepos(db, log)
	svcs := wireServices(db, log, cfg, r, nil)
	mw := wireMiddleware(log, cfg, svcs, nil, nil)
	h := wireHandlers(log, svcs)
	return testServer{router: apphttp.NewRouter(wireRouterConfig(log, cfg, h, mw, nil)), db: db}
}

func (s testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Token "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
}

func (s testServer) login(t *testing.T, username string) string {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/users", "", map[string]string{
		"email":      username + "@example.com",
		"username":   username,
		"first_name": "Test",
		"last_name":  "User",
		"password":   "correct-horse",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("register: status=%d body=%s", w.Code, w.Body.String())
	}
	w = s.do(t, http.MethodPost, "/api/auth/token/login", "", map[string]string{
		"email":    username + "@example.com",
		"password": "correct-horse",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login: status=%d body=%s", w.Code, w.Body.String())
	}
	var out struct {
		Token string `json:"auth_token"`
	}
	decode(t, w, &out)
	if out.Token == "" {
		t.Fatalf("login returned no token: %s", w.Body.String())
	}
	return out.Token
}

func TestShoppingListFlow(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()
	token := s.login(t, "alice")

	flour := testutil.SeedIngredient(t, ctx, s.db, "Flour", "g")
	tag := testutil.SeedTag(t, ctx, s.db, "Breakfast", "#E26C2D", "breakfast")

	w := s.do(t, http.MethodPost, "/api/recipes", token, map[string]any{
		"name":         "Pancakes",
		"image":        "pancakes.png",
		"text":         "Mix and fry.",
		"cooking_time": 15,
		"tags":         []string{tag.ID.String()},
		"ingredients":  []map[string]any{{"id": flour.ID.String(), "amount": 200}},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create recipe: status=%d body=%s", w.Code, w.Body.String())
	}
	var recipe struct {
		ID string `json:"id"`
	}
	decode(t, w, &recipe)

	if w := s.do(t, http.MethodPost, "/api/recipes/"+recipe.ID+"/shopping_cart", token, nil); w.Code != http.StatusCreated {
		t.Fatalf("add to cart: status=%d body=%s", w.Code, w.Body.String())
	}
	if w := s.do(t, http.MethodPost, "/api/recipes/"+recipe.ID+"/shopping_cart", token, nil); w.Code != http.StatusConflict {
		t.Fatalf("second add: status=%d body=%s", w.Code, w.Body.String())
	}

	w = s.do(t, http.MethodGet, "/api/recipes/shopping_list", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("shopping list: status=%d body=%s", w.Code, w.Body.String())
	}
	var list struct {
		Ingredients []struct {
			Name   string `json:"name"`
			Amount int64  `json:"amount"`
		} `json:"ingredients"`
	}
	decode(t, w, &list)
	if len(list.Ingredients) != 1 || list.Ingredients[0].Name != "Flour" || list.Ingredients[0].Amount != 200 {
		t.Fatalf("unexpected shopping list: %s", w.Body.String())
	}

	w = s.do(t, http.MethodGet, "/api/recipes/download_shopping_cart?format=txt", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("download: status=%d body=%s", w.Code, w.Body.String())
	}
	if got := w.Header().Get("Content-Disposition"); !strings.Contains(got, "shopping_list.txt") {
		t.Fatalf("Content-Disposition=%q", got)
	}
	if got, want := w.Body.String(), "1. Flour — 200 g\n"; got != want {
		t.Fatalf("body=%q want %q", got, want)
	}

	if w := s.do(t, http.MethodGet, "/api/recipes/download_shopping_cart?format=docx", token, nil); w.Code != http.StatusBadRequest {
		t.Fatalf("unknown format: status=%d body=%s", w.Code, w.Body.String())
	}

	if w := s.do(t, http.MethodDelete, "/api/recipes/"+recipe.ID+"/shopping_cart", token, nil); w.Code != http.StatusNoContent {
		t.Fatalf("remove from cart: status=%d body=%s", w.Code, w.Body.String())
	}
	w = s.do(t, http.MethodGet, "/api/recipes/shopping_list", token, nil)
	decode(t, w, &list)
	if len(list.Ingredients) != 0 {
		t.Fatalf("expected empty list after removal, got %s", w.Body.String())
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	s := newTestServer(t)
	for _, path := range []string{
		"/api/recipes/shopping_list",
		"/api/recipes/download_shopping_cart",
		"/api/users/me",
	} {
		w := s.do(t, http.MethodGet, path, "", nil)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("%s: status=%d want 401", path, w.Code)
		}
	}
}

func TestAnonymousCanBrowseRecipes(t *testing.T) {
	s := newTestServer(t)
	w := s.do(t, http.MethodGet, "/api/recipes", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	w = s.do(t, http.MethodGet, "/api/recipes?is_in_shopping_cart=1", "", nil)
	if w.Code != http.StatusOK || strings.TrimSpace(w.Body.String()) != "[]" {
		t.Fatalf("anonymous cart filter: status=%d body=%s", w.Code, w.Body.String())
	}
}

func TestHealthcheck(t *testing.T) {
	s := newTestServer(t)
	w := s.do(t, http.MethodGet, "/healthcheck", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
}
