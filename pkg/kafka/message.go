package kafka

import "time"

// Message is the transport-agnostic shape handed to the producer. Key chooses
// the partition, so records keyed by the same calendar stay ordered.
type Message struct {
	Key       string
	Value     []byte
	Headers   map[string]string
	Timestamp time.Time
}
