package consumer

import (
	"context"
	"encoding/json"
	"time"

	"go-paye/internal/events"
	"go-paye/internal/messaging/kafka"
	"go-paye/internal/messaging/kafka/producer"
	"go-paye/internal/payroll"
	"go-paye/internal/shared/contextutil"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is the part of *kafkago.Reader the consumer needs.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// Publish retry backoff starts at publishRetryDelay and doubles up to
// maxPublishRetryDelay.
var (
	publishRetryDelay    = 500 * time.Millisecond
	maxPublishRetryDelay = 30 * time.Second
)

// ConsumePayrollBatchRequested runs each requested batch and publishes the
// outcome before committing. Undecodable messages are committed and
// dropped; per-employee failures travel inside the result. A failed publish
// is retried until it succeeds or ctx ends, so no later commit can move the
// offset past an unpublished batch.
func ConsumePayrollBatchRequested(
	ctx context.Context,
	reader MessageReader,
	payrollService payroll.Service,
	publisher producer.Publisher,
	resultTopic string,
	logger *zap.Logger,
) {
	if resultTopic == "" {
		resultTopic = events.PayrollBatchCompletedTopic
	}
	log := logger.Named("kafka.consumer.payroll_batch")
	log.Info("payroll batch consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("payroll batch consumer stopped")
				return
			}
			log.Error("fetch payroll batch message failed", zap.Error(err))
			continue
		}

		var event events.PayrollBatchRequestedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode payroll batch event failed",
				zap.Int64("offset", msg.Offset),
				zap.Error(err),
			)
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		requestID := headerValue(msg, "request_id")
		if requestID == "" {
			requestID = event.BatchID
		}
		batchCtx := contextutil.WithBatchID(contextutil.WithRequestID(ctx, requestID), event.BatchID)
		batchCtx = contextutil.WithUserID(batchCtx, event.RequestedBy)
		batchCtx, batchLog := contextutil.DecorateLogger(batchCtx, log)

		completed := runBatch(batchCtx, payrollService, event)
		payload, err := json.Marshal(completed)
		if err != nil {
			batchLog.Error("encode payroll batch result failed", zap.Error(err))
			continue
		}

		err = publishWithRetry(ctx, publisher, kafka.Event{
			RequestID:     requestID,
			AggregateType: events.PayrollBatchAggregateType,
			AggregateID:   completed.BatchID,
			EventType:     events.PayrollBatchCompletedEventType,
			Topic:         resultTopic,
			Payload:       payload,
		}, batchLog)
		if err != nil {
			batchLog.Info("payroll batch consumer stopped before publishing", zap.Error(err))
			return
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			batchLog.Error("commit payroll batch message failed", zap.Error(err))
			continue
		}

		fields := []zap.Field{}
		if completed.Result != nil {
			fields = append(fields, zap.Int("total", completed.Result.Total), zap.Int("failed", completed.Result.Failed))
		}
		batchLog.Info("payroll batch processed", fields...)
	}
}

func publishWithRetry(ctx context.Context, publisher producer.Publisher, event kafka.Event, log *zap.Logger) error {
	delay := publishRetryDelay
	for attempt := 1; ; attempt++ {
		err := publisher.Publish(ctx, event)
		if err == nil {
			return nil
		}
		log.Warn("publish payroll batch result failed",
			zap.Int("attempt", attempt),
			zap.Duration("retry_in", delay),
			zap.Error(err),
		)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		if delay *= 2; delay > maxPublishRetryDelay {
			delay = maxPublishRetryDelay
		}
	}
}

func headerValue(msg kafkago.Message, key string) string {
	for _, h := range msg.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func runBatch(ctx context.Context, svc payroll.Service, event events.PayrollBatchRequestedEvent) events.PayrollBatchCompletedEvent {
	completed := events.PayrollBatchCompletedEvent{
		EventType: events.PayrollBatchCompletedEventType,
		BatchID:   event.BatchID,
	}

	resp, err := svc.CalculateBatch(ctx, payroll.BatchCalculateRequest{
		Employees:  event.Employees,
		Components: event.Components,
	})
	if err != nil {
		completed.Error = payroll.NewItemError(err)
	} else {
		if event.BatchID != "" {
			resp.BatchID = event.BatchID
		}
		completed.BatchID = resp.BatchID
		completed.Result = &resp
	}

	completed.OccurredAt = time.Now().UTC()
	return completed
}
