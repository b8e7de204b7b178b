package producer_test

import (
	"context"
	"testing"

	"go-paye/internal/messaging/kafka"
	"go-paye/internal/messaging/kafka/producer"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
)

type fakeWriter struct {
	msgs []kafkago.Message
}

func (f *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafkago.Message) error {
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func TestPublisher_Publish(t *testing.T) {
	w := &fakeWriter{}
	pub := producer.NewPublisher(w)

	err := pub.Publish(context.Background(), kafka.Event{
		RequestID:     "rid-1",
		AggregateType: "payroll_batch",
		AggregateID:   "batch-1",
		EventType:     "payroll.batch.completed",
		Topic:         "hr.payroll.batch.completed.v1",
		Payload:       []byte(`{"batch_id":"batch-1"}`),
	})

	assert.NoError(t, err)
	if assert.Len(t, w.msgs, 1) {
		msg := w.msgs[0]
		assert.Equal(t, "hr.payroll.batch.completed.v1", msg.Topic)
		assert.Equal(t, []byte("batch-1"), msg.Key)
		assert.Equal(t, []kafkago.Header{
			{Key: "event_type", Value: []byte("payroll.batch.completed")},
			{Key: "aggregate_type", Value: []byte("payroll_batch")},
			{Key: "request_id", Value: []byte("rid-1")},
		}, msg.Headers)
	}
}
