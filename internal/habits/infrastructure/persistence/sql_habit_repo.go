package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/pulse/internal/habits/domain"
	sharedApplication "github.com/felixgeelhaar/pulse/internal/shared/application"
	sharedDomain "github.com/felixgeelhaar/pulse/internal/shared/domain"
	"github.com/felixgeelhaar/pulse/internal/shared/infrastructure/database"
	"github.com/felixgeelhaar/pulse/internal/shared/infrastructure/persistence"
)

const habitColumns = `id, user_id, name, frequency, color, created_at, current_streak, longest_streak`

// SQLHabitRepository implements domain.Repository on a database.Connection.
// Completion dates live in habit_completions, one row per day.
type SQLHabitRepository struct {
	conn database.Connection
	uow  *database.UnitOfWork
	now  func() time.Time
}

// NewSQLHabitRepository creates a new habit repository.
func NewSQLHabitRepository(conn database.Connection) *SQLHabitRepository {
	return &SQLHabitRepository{
		conn: conn,
		uow:  database.NewUnitOfWork(conn),
		now:  time.Now,
	}
}

// Save upserts the habit row and replaces its completion set atomically.
// It joins the caller's transaction when there is one.
func (r *SQLHabitRepository) Save(ctx context.Context, habit domain.Habit) error {
	return sharedApplication.WithUnitOfWork(ctx, r.uow, func(txCtx context.Context) error {
		exec := database.ContextExecutor(txCtx, r.conn)

		_, err := exec.Exec(txCtx, `
			INSERT INTO habits (`+habitColumns+`, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT (id) DO UPDATE SET
				name = excluded.name,
				frequency = excluded.frequency,
				color = excluded.color,
				current_streak = excluded.current_streak,
				longest_streak = excluded.longest_streak,
				updated_at = excluded.updated_at`,
			habit.ID.String(),
			habit.UserID.String(),
			habit.Name,
			string(habit.Frequency),
			habit.Color,
			habit.CreatedAt.String(),
			habit.CurrentStreak,
			habit.LongestStreak,
			persistence.FormatTimestamp(r.now()),
		)
		if err != nil {
			return err
		}

		if _, err := exec.Exec(txCtx, `DELETE FROM habit_completions WHERE habit_id = ?`, habit.ID.String()); err != nil {
			return err
		}
		for _, day := range habit.CompletionDates {
			if !day.Valid() {
				continue
			}
			_, err := exec.Exec(txCtx, `
				INSERT INTO habit_completions (habit_id, date) VALUES (?, ?)
				ON CONFLICT (habit_id, date) DO NOTHING`,
				habit.ID.String(), day.String(),
			)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// FindByID returns the habit with its completions, or nil when it does not exist.
func (r *SQLHabitRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Habit, error) {
	exec := database.ContextExecutor(ctx, r.conn)

	habit, err := scanHabit(exec.QueryRow(ctx, `SELECT `+habitColumns+` FROM habits WHERE id = ?`, id.String()))
	if database.IsNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	completions, err := r.loadCompletions(ctx, `WHERE habit_id = ?`, id.String())
	if err != nil {
		return nil, err
	}
	habit.CompletionDates = completions[habit.ID]
	if habit.CompletionDates == nil {
		habit.CompletionDates = []sharedDomain.DateKey{}
	}
	return &habit, nil
}

// FindByUserID returns the user's habits in creation order.
func (r *SQLHabitRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]domain.Habit, error) {
	rows, err := database.ContextExecutor(ctx, r.conn).Query(ctx,
		`SELECT `+habitColumns+` FROM habits WHERE user_id = ? ORDER BY created_at, updated_at, id`,
		userID.String(),
	)
	if err != nil {
		return nil, err
	}

	habits := make([]domain.Habit, 0)
	for rows.Next() {
		habit, err := scanHabit(rows)
		if err != nil {
			_ = rows.Close()
			return nil, err
		}
		habits = append(habits, habit)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, err
	}
	// SQLite runs on a single connection; release it before the next query.
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if len(habits) == 0 {
		return habits, nil
	}

	completions, err := r.loadCompletions(ctx,
		`WHERE habit_id IN (SELECT id FROM habits WHERE user_id = ?)`, userID.String())
	if err != nil {
		return nil, err
	}
	for i := range habits {
		habits[i].CompletionDates = completions[habits[i].ID]
		if habits[i].CompletionDates == nil {
			habits[i].CompletionDates = []sharedDomain.DateKey{}
		}
	}
	return habits, nil
}

// Delete removes a habit and, through the foreign key, its completions.
func (r *SQLHabitRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := database.ContextExecutor(ctx, r.conn).Exec(ctx, `DELETE FROM habits WHERE id = ?`, id.String())
	return err
}

func (r *SQLHabitRepository) loadCompletions(ctx context.Context, where string, args ...any) (map[uuid.UUID][]sharedDomain.DateKey, error) {
	rows, err := database.ContextExecutor(ctx, r.conn).Query(ctx,
		`SELECT habit_id, date FROM habit_completions `+where+` ORDER BY habit_id, date`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byHabit := make(map[uuid.UUID][]sharedDomain.DateKey)
	for rows.Next() {
		var habitID, date string
		if err := rows.Scan(&habitID, &date); err != nil {
			return nil, err
		}
		id, err := persistence.ParseUUID(habitID)
		if err != nil {
			return nil, err
		}
		byHabit[id] = append(byHabit[id], sharedDomain.DateKey(date))
	}
	return byHabit, rows.Err()
}

func scanHabit(row database.Row) (domain.Habit, error) {
	var (
		h                    domain.Habit
		id, userID           string
		frequency, createdAt string
	)
	err := row.Scan(&id, &userID, &h.Name, &frequency, &h.Color, &createdAt, &h.CurrentStreak, &h.LongestStreak)
	if err != nil {
		return domain.Habit{}, err
	}

	if h.ID, err = persistence.ParseUUID(id); err != nil {
		return domain.Habit{}, err
	}
	if h.UserID, err = persistence.ParseUUID(userID); err != nil {
		return domain.Habit{}, err
	}
	h.Frequency = domain.Frequency(frequency)
	h.CreatedAt = sharedDomain.DateKey(createdAt)
	return h, nil
}
