package domain

import (
	"context"
	"time"
)

// RawRequest represents an unprocessed assessment request read from the
// source topic. Value carries a JSON-encoded FeatureBundle.
type RawRequest struct {
	Key       []byte
	Value     []byte
	Headers   map[string]string
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	Commit    func(ctx context.Context) error
}

// OutputEvent is the serialized assessment destined for the sink topic.
type OutputEvent struct {
	Key     []byte
	Value   []byte
	Headers map[string]string
}
