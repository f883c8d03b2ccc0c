package ctxutil

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

func TestRequestDataRoundTrip(t *testing.T) {
	id := uuid.New()
	ctx := WithRequestData(context.Background(), &RequestData{UserID: id})
	if got := UserID(ctx); got != id {
		t.Fatalf("UserID: got %s want %s", got, id)
	}
	if got := UserID(context.Background()); got != uuid.Nil {
		t.Fatalf("UserID without data: got %s", got)
	}
}

func TestRequestID(t *testing.T) {
	ctx := WithTraceData(context.Background(), &TraceData{TraceID: "t1", RequestID: "r1"})
	if got := RequestID(ctx); got != "r1" {
		t.Fatalf("RequestID: got %q", got)
	}
	if got := RequestID(nil); got != "" {
		t.Fatalf("RequestID(nil): got %q", got)
	}
}

func TestDefault(t *testing.T) {
	if Default(nil) == nil {
		t.Fatalf("expected background context")
	}
}
