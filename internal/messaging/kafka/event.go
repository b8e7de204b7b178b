package kafka

// Event is one message headed for a topic. AggregateID becomes the
// message key so every event for a batch lands on the same partition.
type Event struct {
	RequestID     string
	AggregateType string
	AggregateID   string
	EventType     string
	Topic         string
	Payload       []byte
}
