package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func preflight(r *gin.Engine, origin string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodOptions, "/api/recipes", nil)
	req.Header.Set("Origin", origin)
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestCORSAllowsLocalDevOrigins(t *testing.T) {
	t.Parallel()
	gin.SetMode(gin.TestMode)

	for _, origin := range []string{"http://localhost:3000", "http://127.0.0.1"} {
		origin := origin
		t.Run(origin, func(t *testing.T) {
			t.Parallel()
			r := gin.New()
			r.Use(CORS(nil))
			r.OPTIONS("/api/recipes", func(c *gin.Context) { c.Status(http.StatusNoContent) })

			rec := preflight(r, origin)
			if rec.Code != http.StatusNoContent {
				t.Fatalf("unexpected status: got=%d want=%d", rec.Code, http.StatusNoContent)
			}
			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != origin {
				t.Fatalf("unexpected allow-origin header: got=%q want=%q", got, origin)
			}
		})
	}
}

func TestCORSConfiguredOrigins(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORS([]string{"https://foodgram.example"}))
	r.OPTIONS("/api/recipes", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	if got := preflight(r, "https://foodgram.example").Header().Get("Access-Control-Allow-Origin"); got != "https://foodgram.example" {
		t.Fatalf("configured origin rejected: %q", got)
	}
	rec := preflight(r, "http://localhost:3000")
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("default origin should not be allowed once configured: %q", got)
	}
}
