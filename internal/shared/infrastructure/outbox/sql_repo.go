package outbox

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/felixgeelhaar/pulse/internal/shared/infrastructure/database"
	"github.com/felixgeelhaar/pulse/internal/shared/infrastructure/persistence"
)

const messageColumns = `id, event_id, aggregate_type, aggregate_id, event_type, routing_key,
	payload, metadata, created_at, published_at, next_retry_at, retry_count,
	last_error, dead_lettered_at, dead_letter_reason`

// SQLRepository implements Repository on a database.Connection.
type SQLRepository struct {
	conn database.Connection
}

// NewSQLRepository creates a new outbox repository.
func NewSQLRepository(conn database.Connection) *SQLRepository {
	return &SQLRepository{conn: conn}
}

// SaveBatch stores messages in order and assigns their IDs.
func (r *SQLRepository) SaveBatch(ctx context.Context, msgs []*Message) error {
	exec := database.ContextExecutor(ctx, r.conn)
	for _, msg := range msgs {
		var metadata any
		if len(msg.Metadata) > 0 {
			metadata = string(msg.Metadata)
		}
		err := exec.QueryRow(ctx, `
			INSERT INTO outbox (event_id, aggregate_type, aggregate_id, event_type,
				routing_key, payload, metadata, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			RETURNING id`,
			msg.EventID.String(),
			msg.AggregateType,
			msg.AggregateID.String(),
			msg.EventType,
			msg.RoutingKey,
			string(msg.Payload),
			metadata,
			persistence.FormatTimestamp(msg.CreatedAt),
		).Scan(&msg.ID)
		if err != nil {
			return err
		}
	}
	return nil
}

// GetPending returns due, undelivered messages ordered by insertion.
func (r *SQLRepository) GetPending(ctx context.Context, now time.Time, limit int) ([]*Message, error) {
	rows, err := database.ContextExecutor(ctx, r.conn).Query(ctx, `
		SELECT `+messageColumns+`
		FROM outbox
		WHERE published_at IS NULL
		  AND dead_lettered_at IS NULL
		  AND (next_retry_at IS NULL OR next_retry_at <= ?)
		ORDER BY id
		LIMIT ?`,
		persistence.FormatTimestamp(now), limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []*Message
	for rows.Next() {
		msg, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}

// MarkPublished records a successful publish.
func (r *SQLRepository) MarkPublished(ctx context.Context, id int64, at time.Time) error {
	_, err := database.ContextExecutor(ctx, r.conn).Exec(ctx,
		`UPDATE outbox SET published_at = ?, next_retry_at = NULL WHERE id = ?`,
		persistence.FormatTimestamp(at), id,
	)
	return err
}

// MarkFailed increments the retry count and schedules the next attempt.
func (r *SQLRepository) MarkFailed(ctx context.Context, id int64, errMsg string, nextRetryAt time.Time) error {
	_, err := database.ContextExecutor(ctx, r.conn).Exec(ctx, `
		UPDATE outbox
		SET retry_count = retry_count + 1, last_error = ?, next_retry_at = ?
		WHERE id = ?`,
		errMsg, persistence.FormatTimestamp(nextRetryAt), id,
	)
	return err
}

// MarkDead dead-letters a message.
func (r *SQLRepository) MarkDead(ctx context.Context, id int64, reason string, at time.Time) error {
	_, err := database.ContextExecutor(ctx, r.conn).Exec(ctx, `
		UPDATE outbox
		SET retry_count = retry_count + 1, last_error = ?, dead_lettered_at = ?,
			dead_letter_reason = ?, next_retry_at = NULL
		WHERE id = ?`,
		reason, persistence.FormatTimestamp(at), reason, id,
	)
	return err
}

// DeleteOld removes messages published before cutoff.
func (r *SQLRepository) DeleteOld(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := database.ContextExecutor(ctx, r.conn).Exec(ctx,
		`DELETE FROM outbox WHERE published_at IS NOT NULL AND published_at < ?`,
		persistence.FormatTimestamp(cutoff),
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// Counts returns the number of messages per delivery state.
func (r *SQLRepository) Counts(ctx context.Context) (Counts, error) {
	var c Counts
	err := database.ContextExecutor(ctx, r.conn).QueryRow(ctx, `
		SELECT
			COALESCE(SUM(CASE WHEN published_at IS NULL AND dead_lettered_at IS NULL AND retry_count = 0 THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN published_at IS NULL AND dead_lettered_at IS NULL AND retry_count > 0 THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN published_at IS NOT NULL THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN dead_lettered_at IS NOT NULL THEN 1 ELSE 0 END), 0)
		FROM outbox`,
	).Scan(&c.Pending, &c.Retrying, &c.Published, &c.DeadLettered)
	return c, err
}

func scanMessage(row database.Row) (*Message, error) {
	var (
		msg                                      Message
		eventID, aggregateID, payload, createdAt string
		metadata, publishedAt, nextRetryAt       sql.NullString
		lastError, deadLetteredAt, deadLetterWhy sql.NullString
	)
	err := row.Scan(
		&msg.ID, &eventID, &msg.AggregateType, &aggregateID, &msg.EventType, &msg.RoutingKey,
		&payload, &metadata, &createdAt, &publishedAt, &nextRetryAt, &msg.RetryCount,
		&lastError, &deadLetteredAt, &deadLetterWhy,
	)
	if err != nil {
		return nil, err
	}

	if msg.EventID, err = persistence.ParseUUID(eventID); err != nil {
		return nil, err
	}
	if msg.AggregateID, err = persistence.ParseUUID(aggregateID); err != nil {
		return nil, err
	}
	if msg.CreatedAt, err = persistence.ParseTimestamp(createdAt); err != nil {
		return nil, err
	}
	if msg.PublishedAt, err = persistence.ParseNullableTimestamp(publishedAt); err != nil {
		return nil, err
	}
	if msg.NextRetryAt, err = persistence.ParseNullableTimestamp(nextRetryAt); err != nil {
		return nil, err
	}
	if msg.DeadLetteredAt, err = persistence.ParseNullableTimestamp(deadLetteredAt); err != nil {
		return nil, err
	}

	msg.Payload = json.RawMessage(payload)
	if metadata.Valid {
		msg.Metadata = json.RawMessage(metadata.String)
	}
	if lastError.Valid {
		msg.LastError = &lastError.String
	}
	if deadLetterWhy.Valid {
		msg.DeadLetterReason = &deadLetterWhy.String
	}
	return &msg, nil
}
