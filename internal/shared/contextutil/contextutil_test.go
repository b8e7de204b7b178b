package contextutil_test

import (
	"context"
	"testing"

	"go-paye/internal/shared/contextutil"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestExtractMetadata(t *testing.T) {
	ctx := contextutil.WithRequestID(context.Background(), "rid-1")
	ctx = contextutil.WithUserID(ctx, "user-1")
	ctx = contextutil.WithBatchID(ctx, "batch-1")

	meta := contextutil.ExtractMetadata(ctx)

	assert.Equal(t, contextutil.Metadata{RequestID: "rid-1", UserID: "user-1", BatchID: "batch-1"}, meta)
	assert.Len(t, meta.Fields(), 3)
	assert.Empty(t, contextutil.ExtractMetadata(context.Background()).Fields())
}

func TestGetLogger(t *testing.T) {
	fallback := zap.NewNop()
	scoped := zap.NewExample()

	assert.Same(t, fallback, contextutil.GetLogger(context.Background(), fallback))
	assert.Same(t, scoped, contextutil.GetLogger(contextutil.WithLogger(context.Background(), scoped), fallback))
	assert.NotNil(t, contextutil.GetLogger(context.Background(), nil))
}

func TestDecorateLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	ctx := contextutil.WithBatchID(context.Background(), "batch-7")

	ctx, l := contextutil.DecorateLogger(ctx, zap.New(core))
	contextutil.GetLogger(ctx, nil).Info("processed")

	assert.NotNil(t, l)
	assert.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "batch-7", fields["batch_id"])
	assert.NotContains(t, fields, "request_id")
}
