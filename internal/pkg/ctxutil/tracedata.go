package ctxutil

import "context"

type traceDataKey struct{}

// TraceData carries the request/trace correlation ids attached by middleware.
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
	td, ok := ctx.Value(traceDataKey{}).(*TraceData)
	if !ok {
		return nil
	}
	return td
}
