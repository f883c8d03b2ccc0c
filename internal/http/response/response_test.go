package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	domainagg "github.com/yungbote/foodgram-backend/internal/domain/aggregates"
)

func respond(t *testing.T, err error) (*httptest.ResponseRecorder, ErrorEnvelope) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	RespondErr(c, err, "request_failed")

	var env ErrorEnvelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return rec, env
}

func TestRespondErr_AggregateCode(t *testing.T) {
	rec, env := respond(t, domainagg.NewError(domainagg.CodeConflict, "op", "recipe is already in shopping_cart", nil))
	if rec.Code != http.StatusConflict || env.Error.Code != "conflict" {
		t.Fatalf("unexpected response %d %+v", rec.Code, env)
	}
	if env.Error.Message == "" || env.Error.Message == "unknown error" {
		t.Fatalf("expected message, got %q", env.Error.Message)
	}
}

func TestRespondErr_HidesInternalMessage(t *testing.T) {
	rec, env := respond(t, errors.New("pq: connection refused on 10.0.0.3"))
	if rec.Code != http.StatusInternalServerError || env.Error.Code != "request_failed" {
		t.Fatalf("unexpected response %d %+v", rec.Code, env)
	}
	if env.Error.Message != "unknown error" {
		t.Fatalf("internal detail leaked: %q", env.Error.Message)
	}
}
