package ctxutil

import (
	"context"

	"github.com/google/uuid"
)

type requestDataKey struct{}

// RequestData carries the authenticated caller. UserID is uuid.Nil for
// anonymous requests.
type RequestData struct {
	TokenString string
	UserID      uuid.UUID
}

func WithRequestData(ctx context.Context, rd *RequestData) context.Context {
	return context.WithValue(ctx, requestDataKey{}, rd)
}

func GetRequestData(ctx context.Context) *RequestData {
	if ctx == nil {
		return nil
	}
	if rd, ok := ctx.Value(requestDataKey{}).(*RequestData); ok {
		return rd
	}
	return nil
}

// UserID returns the authenticated user id or uuid.Nil.
func UserID(ctx context.Context) uuid.UUID {
	rd := GetRequestData(ctx)
	if rd == nil {
		return uuid.Nil
	}
	return rd.UserID
}
