// Package tracing instruments the registry's command pipeline with
// OpenTelemetry spans: one span per processed command, propagated through
// follow-up commands so a submission and everything it triggers share a
// trace.
package tracing

import (
	"context"
	"crypto/rand"
	"encoding/hex"
)

type contextKey string

const traceIDKey contextKey = "trace_id"

// TraceIDFromContext returns the trace ID carried by ctx, or "" when none
// is present.
func TraceIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	traceID, _ := ctx.Value(traceIDKey).(string)
	return traceID
}

// ContextWithTraceID attaches a trace ID to ctx. An empty trace ID leaves
// ctx unchanged.
func ContextWithTraceID(ctx context.Context, traceID string) context.Context {
	if traceID == "" {
		return ctx
	}
	return context.WithValue(ctx, traceIDKey, traceID)
}

// GenerateTraceID returns a random W3C-format trace ID (16 bytes, hex).
func GenerateTraceID() string {
	return randomHex(16)
}

// GenerateSpanID returns a random W3C-format span ID (8 bytes, hex).
func GenerateSpanID() string {
	return randomHex(8)
}

func randomHex(n int) string {
	b := make([]byte, n)
	// crypto/rand.Read never fails on supported platforms.
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
