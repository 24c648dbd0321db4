package persistence

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/pulse/internal/insights/domain"
	"github.com/felixgeelhaar/pulse/internal/shared/infrastructure/database"
	"github.com/felixgeelhaar/pulse/internal/shared/infrastructure/persistence"
)

const distractionColumns = `id, user_id, type, source, duration_minutes, occurred_at, focus_session_id`

// SQLDistractionRepository implements domain.DistractionRepository.
type SQLDistractionRepository struct {
	conn database.Connection
}

// NewSQLDistractionRepository creates a new distraction repository.
func NewSQLDistractionRepository(conn database.Connection) *SQLDistractionRepository {
	return &SQLDistractionRepository{conn: conn}
}

// Save creates or replaces a distraction.
func (r *SQLDistractionRepository) Save(ctx context.Context, d domain.Distraction) error {
	_, err := database.ContextExecutor(ctx, r.conn).Exec(ctx, `
		INSERT INTO distractions (`+distractionColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			type = excluded.type,
			source = excluded.source,
			duration_minutes = excluded.duration_minutes,
			occurred_at = excluded.occurred_at,
			focus_session_id = excluded.focus_session_id`,
		d.ID.String(),
		d.UserID.String(),
		string(d.Type),
		d.Source,
		d.DurationMinutes,
		persistence.FormatTimestamp(d.Timestamp),
		persistence.NullableUUID(d.FocusSessionID),
	)
	return err
}

// FindSince returns the user's distractions at or after since, oldest first.
func (r *SQLDistractionRepository) FindSince(ctx context.Context, userID uuid.UUID, since time.Time) ([]domain.Distraction, error) {
	rows, err := database.ContextExecutor(ctx, r.conn).Query(ctx, `
		SELECT `+distractionColumns+`
		FROM distractions
		WHERE user_id = ? AND occurred_at >= ?
		ORDER BY occurred_at, id`,
		userID.String(), persistence.FormatTimestamp(since),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	distractions := make([]domain.Distraction, 0)
	for rows.Next() {
		var (
			d                         domain.Distraction
			id, uid, kind, occurredAt string
			sessionID                 sql.NullString
		)
		err := rows.Scan(&id, &uid, &kind, &d.Source, &d.DurationMinutes, &occurredAt, &sessionID)
		if err != nil {
			return nil, err
		}
		if d.ID, err = persistence.ParseUUID(id); err != nil {
			return nil, err
		}
		if d.UserID, err = persistence.ParseUUID(uid); err != nil {
			return nil, err
		}
		if d.Timestamp, err = persistence.ParseTimestamp(occurredAt); err != nil {
			return nil, err
		}
		if d.FocusSessionID, err = persistence.ParseNullableUUID(sessionID); err != nil {
			return nil, err
		}
		d.Type = domain.DistractionType(kind)
		distractions = append(distractions, d)
	}
	return distractions, rows.Err()
}
