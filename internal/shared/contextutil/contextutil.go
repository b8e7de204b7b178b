package contextutil

import (
	"context"

	"go.uber.org/zap"
)

type contextKey string

const (
	requestIDKey contextKey = "request_id"
	userIDKey    contextKey = "user_id"
	batchIDKey   contextKey = "batch_id"
	loggerKey    contextKey = "logger"
)

func WithRequestID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, requestIDKey, rid)
}

func GetRequestID(ctx context.Context) string {
	return stringValue(ctx, requestIDKey)
}

func WithUserID(ctx context.Context, uid string) context.Context {
	return context.WithValue(ctx, userIDKey, uid)
}

func GetUserID(ctx context.Context) string {
	return stringValue(ctx, userIDKey)
}

// WithBatchID tags work done on behalf of one payroll batch, whether it
// arrived over HTTP, Kafka or the batch CLI.
func WithBatchID(ctx context.Context, batchID string) context.Context {
	return context.WithValue(ctx, batchIDKey, batchID)
}

func GetBatchID(ctx context.Context) string {
	return stringValue(ctx, batchIDKey)
}

func stringValue(ctx context.Context, key contextKey) string {
	if ctx == nil {
		return ""
	}
	v, _ := ctx.Value(key).(string)
	return v
}

func WithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// GetLogger returns the request-scoped logger, falling back to
// defaultLogger and finally to a no-op logger so callers never get nil.
func GetLogger(ctx context.Context, defaultLogger *zap.Logger) *zap.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(loggerKey).(*zap.Logger); ok && l != nil {
			return l
		}
	}

	if defaultLogger != nil {
		return defaultLogger
	}

	return zap.NewNop()
}

type Metadata struct {
	RequestID string
	UserID    string
	BatchID   string
}

func ExtractMetadata(ctx context.Context) Metadata {
	return Metadata{
		RequestID: GetRequestID(ctx),
		UserID:    GetUserID(ctx),
		BatchID:   GetBatchID(ctx),
	}
}

// Fields lists the non-empty metadata as zap fields.
func (m Metadata) Fields() []zap.Field {
	fields := make([]zap.Field, 0, 3)
	if m.RequestID != "" {
		fields = append(fields, zap.String("request_id", m.RequestID))
	}
	if m.UserID != "" {
		fields = append(fields, zap.String("user_id", m.UserID))
	}
	if m.BatchID != "" {
		fields = append(fields, zap.String("batch_id", m.BatchID))
	}
	return fields
}

// DecorateLogger tags base with the metadata found on ctx and stores the
// result back on ctx.
func DecorateLogger(ctx context.Context, base *zap.Logger) (context.Context, *zap.Logger) {
	if base == nil {
		base = zap.NewNop()
	}
	l := base.With(ExtractMetadata(ctx).Fields()...)
	return WithLogger(ctx, l), l
}
