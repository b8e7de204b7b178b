package payrollqueue

import (
	"context"
	"encoding/json"
	"time"

	"go-paye/internal/events"
	"go-paye/internal/messaging/kafka"
	"go-paye/internal/messaging/kafka/producer"
	"go-paye/internal/payroll"
	payrollerrors "go-paye/internal/payroll/errors"
	"go-paye/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const StatusQueued = "QUEUED"

type Service interface {
	Enqueue(ctx context.Context, requestedBy string, req payroll.BatchCalculateRequest) (EnqueueResponse, error)
}

type service struct {
	publisher producer.Publisher
	topic     string
	now       func() time.Time
	logger    *zap.Logger
}

// NewService publishes batch requests to topic, or to
// events.PayrollBatchRequestedTopic when topic is empty.
func NewService(publisher producer.Publisher, topic string) Service {
	if topic == "" {
		topic = events.PayrollBatchRequestedTopic
	}
	return &service{
		publisher: publisher,
		topic:     topic,
		now:       time.Now,
		logger:    zap.L().Named("payrollqueue.service"),
	}
}

func (s *service) Enqueue(ctx context.Context, requestedBy string, req payroll.BatchCalculateRequest) (EnqueueResponse, error) {
	l := contextutil.GetLogger(ctx, s.logger)

	if len(req.Employees) == 0 {
		return EnqueueResponse{}, payrollerrors.ErrEmptyBatch
	}

	event := events.PayrollBatchRequestedEvent{
		EventType:   events.PayrollBatchRequestedEventType,
		BatchID:     uuid.New().String(),
		RequestedBy: requestedBy,
		Components:  req.Components,
		Employees:   req.Employees,
		OccurredAt:  s.now().UTC(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return EnqueueResponse{}, err
	}

	if err := s.publisher.Publish(ctx, kafka.Event{
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: events.PayrollBatchAggregateType,
		AggregateID:   event.BatchID,
		EventType:     event.EventType,
		Topic:         s.topic,
		Payload:       payload,
	}); err != nil {
		l.Error("failed to publish payroll batch request", zap.String("batch_id", event.BatchID), zap.Error(err))
		return EnqueueResponse{}, err
	}

	l.Info("payroll batch queued",
		zap.String("batch_id", event.BatchID),
		zap.Int("employees", len(req.Employees)),
	)
	return EnqueueResponse{BatchID: event.BatchID, Status: StatusQueued, Total: len(req.Employees)}, nil
}
