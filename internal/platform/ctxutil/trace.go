package ctxutil

import "context"

type traceDataKey struct{}

type TraceData struct {
	TraceID   string
	RequestID string
}

func WithTraceData(ctx context.Context, td *TraceData) context.Context {
	return context.WithValue(ctx, traceDataKey{}, td)
}

func GetTraceData(ctx context.Context) *TraceData {
	if ctx == nil {
		return nil
	}
	if td, ok := ctx.Value(traceDataKey{}).(*TraceData); ok {
		return td
	}
	return nil
}

// RequestID returns the request correlation id, or "" when none was attached.
func RequestID(ctx context.Context) string {
	if td := GetTraceData(ctx); td != nil {
		return td.RequestID
	}
	return ""
}
