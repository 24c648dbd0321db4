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

const focusSessionColumns = `id, user_id, duration_minutes, started_at, completed, task_id`

// SQLFocusSessionRepository implements domain.FocusSessionRepository.
type SQLFocusSessionRepository struct {
	conn database.Connection
}

// NewSQLFocusSessionRepository creates a new focus session repository.
func NewSQLFocusSessionRepository(conn database.Connection) *SQLFocusSessionRepository {
	return &SQLFocusSessionRepository{conn: conn}
}

// Save creates or replaces a session.
func (r *SQLFocusSessionRepository) Save(ctx context.Context, s domain.FocusSession) error {
	_, err := database.ContextExecutor(ctx, r.conn).Exec(ctx, `
		INSERT INTO focus_sessions (`+focusSessionColumns+`)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			duration_minutes = excluded.duration_minutes,
			started_at = excluded.started_at,
			completed = excluded.completed,
			task_id = excluded.task_id`,
		s.ID.String(),
		s.UserID.String(),
		s.DurationMinutes,
		persistence.FormatTimestamp(s.Timestamp),
		s.Completed,
		persistence.NullableUUID(s.TaskID),
	)
	return err
}

// FindSince returns the user's sessions started at or after since, oldest first.
func (r *SQLFocusSessionRepository) FindSince(ctx context.Context, userID uuid.UUID, since time.Time) ([]domain.FocusSession, error) {
	rows, err := database.ContextExecutor(ctx, r.conn).Query(ctx, `
		SELECT `+focusSessionColumns+`
		FROM focus_sessions
		WHERE user_id = ? AND started_at >= ?
		ORDER BY started_at, id`,
		userID.String(), persistence.FormatTimestamp(since),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sessions := make([]domain.FocusSession, 0)
	for rows.Next() {
		var (
			s                  domain.FocusSession
			id, uid, startedAt string
			taskID             sql.NullString
		)
		err := rows.Scan(&id, &uid, &s.DurationMinutes, &startedAt, &s.Completed, &taskID)
		if err != nil {
			return nil, err
		}
		if s.ID, err = persistence.ParseUUID(id); err != nil {
			return nil, err
		}
		if s.UserID, err = persistence.ParseUUID(uid); err != nil {
			return nil, err
		}
		if s.Timestamp, err = persistence.ParseTimestamp(startedAt); err != nil {
			return nil, err
		}
		if s.TaskID, err = persistence.ParseNullableUUID(taskID); err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}
