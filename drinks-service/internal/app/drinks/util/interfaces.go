package util

import (
	"context"
	"time"
)

// MessagePublisher sends domain events to the message bus (Kafka).
type MessagePublisher interface {
	PublishMessage(ctx context.Context, key string, value []byte) error
	Close() error
}

// DayLocker serializes work keyed by calendar day across service replicas.
// The returned func releases the lock and is safe to call once.
type DayLocker interface {
	LockDay(ctx context.Context, day time.Time) (func(), error)
}
