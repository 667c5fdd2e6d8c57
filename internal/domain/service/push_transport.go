package service

import (
	"context"
)

// PushTransport opens authenticated push channels on a topic.
type PushTransport interface {
	// Dial connects and subscribes to topic. It returns once the server has
	// accepted the subscription or ctx is done.
	Dial(ctx context.Context, topic, token string) (PushChannel, error)
}

// PushChannel is one live topic subscription.
type PushChannel interface {
	// Frames yields message bodies in arrival order. It is closed when the
	// connection ends for any reason.
	Frames() <-chan []byte

	// Err reports why Frames was closed; nil after a local Close.
	Err() error

	// Close unsubscribes and disconnects. Safe to call more than once.
	Close() error
}
