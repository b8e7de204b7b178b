package bootstrap

import (
	"context"
	"time"

	"go-paye/internal/shared/contextutil"

	"go.uber.org/zap"
)

// ZapAuditLogger writes audit entries to a dedicated "audit" logger so they
// can be routed apart from application logs.
type ZapAuditLogger struct {
	logger *zap.Logger
	now    func() time.Time
}

func NewZapAuditLogger(logger *zap.Logger) *ZapAuditLogger {
	if logger == nil {
		logger = zap.L()
	}
	return &ZapAuditLogger{logger: logger.Named("audit"), now: time.Now}
}

func (l *ZapAuditLogger) Log(ctx context.Context, entry AuditLog) {
	fields := []zap.Field{
		zap.String("timestamp", l.now().UTC().Format(time.RFC3339)),
		zap.String("action", entry.Action),
	}

	fields = append(fields, contextutil.ExtractMetadata(ctx).Fields()...)
	if len(entry.Meta) > 0 {
		fields = append(fields, zap.Any("meta", entry.Meta))
	}

	l.logger.Info(entry.Message, fields...)
}
