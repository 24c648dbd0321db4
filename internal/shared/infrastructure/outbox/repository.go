package outbox

import (
	"context"
	"time"
)

// Counts summarizes the outbox by delivery state.
type Counts struct {
	Pending      int `json:"pending" yaml:"pending"`
	Retrying     int `json:"retrying" yaml:"retrying"`
	Published    int `json:"published" yaml:"published"`
	DeadLettered int `json:"dead_lettered" yaml:"dead_lettered"`
}

// Repository defines the interface for outbox persistence.
type Repository interface {
	// SaveBatch stores messages and assigns their IDs. It joins the unit
	// of work in ctx when there is one.
	SaveBatch(ctx context.Context, msgs []*Message) error

	// GetPending returns undelivered, non-dead messages due at now, oldest first.
	GetPending(ctx context.Context, now time.Time, limit int) ([]*Message, error)

	// MarkPublished records a successful publish.
	MarkPublished(ctx context.Context, id int64, at time.Time) error

	// MarkFailed records a failed attempt and schedules the next one.
	MarkFailed(ctx context.Context, id int64, errMsg string, nextRetryAt time.Time) error

	// MarkDead dead-letters a message.
	MarkDead(ctx context.Context, id int64, reason string, at time.Time) error

	// DeleteOld removes published messages published before cutoff.
	DeleteOld(ctx context.Context, cutoff time.Time) (int64, error)

	// Counts returns the number of messages per state.
	Counts(ctx context.Context) (Counts, error)
}
