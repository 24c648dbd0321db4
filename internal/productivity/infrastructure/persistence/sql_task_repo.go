package persistence

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/pulse/internal/productivity/domain/task"
	"github.com/felixgeelhaar/pulse/internal/productivity/domain/value_objects"
	"github.com/felixgeelhaar/pulse/internal/shared/infrastructure/database"
	"github.com/felixgeelhaar/pulse/internal/shared/infrastructure/persistence"
)

const taskColumns = `id, user_id, title, priority, time_estimate, completed, created_at,
	category, due_date, focus_mode, completed_at`

// SQLTaskRepository implements task.Repository on a database.Connection.
type SQLTaskRepository struct {
	conn database.Connection
}

// NewSQLTaskRepository creates a new task repository.
func NewSQLTaskRepository(conn database.Connection) *SQLTaskRepository {
	return &SQLTaskRepository{conn: conn}
}

// Save inserts the task or overwrites the stored copy.
func (r *SQLTaskRepository) Save(ctx context.Context, t task.Task) error {
	_, err := database.ContextExecutor(ctx, r.conn).Exec(ctx, `
		INSERT INTO tasks (`+taskColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			title = excluded.title,
			priority = excluded.priority,
			time_estimate = excluded.time_estimate,
			completed = excluded.completed,
			category = excluded.category,
			due_date = excluded.due_date,
			focus_mode = excluded.focus_mode,
			completed_at = excluded.completed_at`,
		t.ID.String(),
		t.UserID.String(),
		t.Title,
		t.Priority.String(),
		t.TimeEstimate,
		t.Completed,
		persistence.FormatTimestamp(t.CreatedAt),
		t.Category,
		t.DueDate,
		t.FocusMode,
		persistence.NullableTimestamp(t.CompletedAt),
	)
	return err
}

// FindByID returns the task, or nil when it does not exist.
func (r *SQLTaskRepository) FindByID(ctx context.Context, id uuid.UUID) (*task.Task, error) {
	row := database.ContextExecutor(ctx, r.conn).QueryRow(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id.String())

	t, err := scanTask(row)
	if database.IsNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// FindByUserID returns the user's tasks in creation order.
func (r *SQLTaskRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]task.Task, error) {
	rows, err := database.ContextExecutor(ctx, r.conn).Query(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE user_id = ? ORDER BY created_at, id`,
		userID.String(),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := make([]task.Task, 0)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// Delete removes a task. Deleting a missing task is not an error.
func (r *SQLTaskRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := database.ContextExecutor(ctx, r.conn).Exec(ctx, `DELETE FROM tasks WHERE id = ?`, id.String())
	return err
}

func scanTask(row database.Row) (task.Task, error) {
	var (
		t                    task.Task
		id, userID, priority string
		createdAt            string
		completedAt          sql.NullString
	)
	err := row.Scan(
		&id, &userID, &t.Title, &priority, &t.TimeEstimate, &t.Completed, &createdAt,
		&t.Category, &t.DueDate, &t.FocusMode, &completedAt,
	)
	if err != nil {
		return task.Task{}, err
	}

	if t.ID, err = persistence.ParseUUID(id); err != nil {
		return task.Task{}, err
	}
	if t.UserID, err = persistence.ParseUUID(userID); err != nil {
		return task.Task{}, err
	}
	if t.CreatedAt, err = persistence.ParseTimestamp(createdAt); err != nil {
		return task.Task{}, err
	}
	if t.CompletedAt, err = persistence.ParseNullableTimestamp(completedAt); err != nil {
		return task.Task{}, err
	}
	t.Priority = value_objects.Priority(priority)
	return t, nil
}
