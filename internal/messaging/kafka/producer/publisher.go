package producer

import (
	"context"

	"go-paye/internal/messaging/kafka"

	kafkago "github.com/segmentio/kafka-go"
)

type Publisher interface {
	Publish(ctx context.Context, event kafka.Event) error
}

// MessageWriter is the part of *kafkago.Writer the publisher needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
}

type publisher struct {
	writer MessageWriter
}

func NewPublisher(writer MessageWriter) Publisher {
	return &publisher{writer: writer}
}

func (p *publisher) Publish(ctx context.Context, event kafka.Event) error {
	msg := kafkago.Message{
		Topic: event.Topic,
		Key:   []byte(event.AggregateID),
		Value: event.Payload,
		Headers: []kafkago.Header{
			{Key: "event_type", Value: []byte(event.EventType)},
			{Key: "aggregate_type", Value: []byte(event.AggregateType)},
		},
	}
	if event.RequestID != "" {
		msg.Headers = append(msg.Headers, kafkago.Header{Key: "request_id", Value: []byte(event.RequestID)})
	}

	return p.writer.WriteMessages(ctx, msg)
}
