// Package scontext carries per-call values on a context.Context. All values
// live in one CallContext struct under a single key, so adding a value never
// nests another context layer lookup.
package scontext

import (
	"context"
	"net/http"
)

// callContextKey is a private type for the context key to avoid collisions
type callContextKey struct{}

// CallContext holds the values the client attaches to the context of each call.
type CallContext struct {
	// TraceID correlates the log lines and the X-Request-ID header of one call.
	TraceID string

	// Operation names the call for logs and metric labels, e.g. "send".
	Operation string

	// BatchSize is the number of items of a batch call.
	BatchSize int

	TraceIDSet   bool
	OperationSet bool
	BatchSizeSet bool
}

// GetCallContext retrieves the call context from ctx.
func GetCallContext(ctx context.Context) (*CallContext, bool) {
	cc, ok := ctx.Value(callContextKey{}).(*CallContext)
	return cc, ok
}

// WithCallContext stores cc in ctx.
func WithCallContext(ctx context.Context, cc *CallContext) context.Context {
	return context.WithValue(ctx, callContextKey{}, cc)
}

// update copies the current call context, applies fn and stores the copy.
// Contexts are shared across goroutines, so values are never modified in place.
func update(ctx context.Context, fn func(cc *CallContext)) context.Context {
	next := &CallContext{}
	if cc, ok := GetCallContext(ctx); ok {
		*next = *cc
	}
	fn(next)
	return WithCallContext(ctx, next)
}

// WithTraceID adds a trace ID to the context. An existing trace ID is kept.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	if cc, ok := GetCallContext(ctx); ok && cc.TraceIDSet {
		return ctx
	}
	return update(ctx, func(cc *CallContext) {
		cc.TraceID = traceID
		cc.TraceIDSet = true
	})
}

// GetTraceID extracts the trace ID from the context.
func GetTraceID(ctx context.Context) (string, bool) {
	cc, ok := GetCallContext(ctx)
	if !ok || !cc.TraceIDSet {
		return "", false
	}
	return cc.TraceID, true
}

// GetTraceIDFromRequest is a convenience function to get the trace ID from a request.
func GetTraceIDFromRequest(r *http.Request) (string, bool) {
	return GetTraceID(r.Context())
}

// WithOperation names the call.
func WithOperation(ctx context.Context, operation string) context.Context {
	return update(ctx, func(cc *CallContext) {
		cc.Operation = operation
		cc.OperationSet = true
	})
}

// GetOperation retrieves the operation name.
func GetOperation(ctx context.Context) (string, bool) {
	cc, ok := GetCallContext(ctx)
	if !ok || !cc.OperationSet {
		return "", false
	}
	return cc.Operation, true
}

// GetOperationFromRequest is a convenience function to get the operation from a request.
func GetOperationFromRequest(r *http.Request) (string, bool) {
	return GetOperation(r.Context())
}

// WithBatchSize records the item count of a batch call.
func WithBatchSize(ctx context.Context, n int) context.Context {
	return update(ctx, func(cc *CallContext) {
		cc.BatchSize = n
		cc.BatchSizeSet = true
	})
}

// GetBatchSize retrieves the item count of a batch call.
func GetBatchSize(ctx context.Context) (int, bool) {
	cc, ok := GetCallContext(ctx)
	if !ok || !cc.BatchSizeSet {
		return 0, false
	}
	return cc.BatchSize, true
}
