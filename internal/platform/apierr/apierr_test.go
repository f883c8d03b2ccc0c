package apierr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	domainagg "github.com/yungbote/foodgram-backend/internal/domain/aggregates"
)

func TestFrom_AggregateCodes(t *testing.T) {
	cases := map[domainagg.ErrorCode]int{
		domainagg.CodeValidation:   http.StatusBadRequest,
		domainagg.CodeUnauthorized: http.StatusUnauthorized,
		domainagg.CodeForbidden:    http.StatusForbidden,
		domainagg.CodeNotFound:     http.StatusNotFound,
		domainagg.CodeConflict:     http.StatusConflict,
		domainagg.CodeRetryable:    http.StatusServiceUnavailable,
		domainagg.CodeInternal:     http.StatusInternalServerError,
	}
	for code, status := range cases {
		err := fmt.Errorf("wrapped: %w", domainagg.NewError(code, "op", "msg", nil))
		ae := From(err, "fallback")
		if ae.Status != status || ae.Code != string(code) {
			t.Fatalf("code %s: got status=%d code=%s", code, ae.Status, ae.Code)
		}
	}
}

func TestFrom_Passthrough(t *testing.T) {
	in := New(http.StatusTeapot, "teapot", nil)
	if got := From(fmt.Errorf("x: %w", in), "fallback"); got != in {
		t.Fatalf("expected passthrough")
	}
}

func TestFrom_Fallback(t *testing.T) {
	ae := From(errors.New("boom"), "load_failed")
	if ae.Status != http.StatusInternalServerError || ae.Code != "load_failed" {
		t.Fatalf("unexpected: %+v", ae)
	}
	if From(nil, "x") != nil {
		t.Fatalf("expected nil")
	}
}
