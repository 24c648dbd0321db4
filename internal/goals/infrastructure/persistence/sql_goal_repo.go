package persistence

import (
	"context"

	"github.com/google/uuid"

	"github.com/felixgeelhaar/pulse/internal/goals/domain"
	sharedApplication "github.com/felixgeelhaar/pulse/internal/shared/application"
	sharedDomain "github.com/felixgeelhaar/pulse/internal/shared/domain"
	"github.com/felixgeelhaar/pulse/internal/shared/infrastructure/database"
	"github.com/felixgeelhaar/pulse/internal/shared/infrastructure/persistence"
)

const (
	goalColumns      = `id, user_id, title, category, target_date, progress, status, created_at`
	milestoneColumns = `id, goal_id, title, completed, due_date, completed_date, sort_order`
)

// SQLGoalRepository implements domain.Repository on a database.Connection.
type SQLGoalRepository struct {
	conn database.Connection
	uow  *database.UnitOfWork
}

// NewSQLGoalRepository creates a new goal repository.
func NewSQLGoalRepository(conn database.Connection) *SQLGoalRepository {
	return &SQLGoalRepository{conn: conn, uow: database.NewUnitOfWork(conn)}
}

// Save upserts the goal and replaces its milestones in one transaction.
func (r *SQLGoalRepository) Save(ctx context.Context, goal domain.Goal) error {
	return sharedApplication.WithUnitOfWork(ctx, r.uow, func(txCtx context.Context) error {
		exec := database.ContextExecutor(txCtx, r.conn)

		_, err := exec.Exec(txCtx, `
			INSERT INTO goals (`+goalColumns+`)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT (id) DO UPDATE SET
				title = excluded.title,
				category = excluded.category,
				target_date = excluded.target_date,
				progress = excluded.progress,
				status = excluded.status`,
			goal.ID.String(),
			goal.UserID.String(),
			goal.Title,
			goal.Category,
			goal.TargetDate.String(),
			goal.Progress,
			goal.Status.String(),
			persistence.FormatTimestamp(goal.CreatedAt),
		)
		if err != nil {
			return err
		}

		if _, err := exec.Exec(txCtx, `DELETE FROM milestones WHERE goal_id = ?`, goal.ID.String()); err != nil {
			return err
		}
		for _, m := range goal.Milestones {
			_, err := exec.Exec(txCtx, `
				INSERT INTO milestones (`+milestoneColumns+`)
				VALUES (?, ?, ?, ?, ?, ?, ?)`,
				m.ID.String(),
				goal.ID.String(),
				m.Title,
				m.Completed,
				m.DueDate.String(),
				m.CompletedDate.String(),
				m.Order,
			)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// FindByID returns the goal with its milestones, or nil when it does not exist.
func (r *SQLGoalRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Goal, error) {
	exec := database.ContextExecutor(ctx, r.conn)

	goal, err := scanGoal(exec.QueryRow(ctx, `SELECT `+goalColumns+` FROM goals WHERE id = ?`, id.String()))
	if database.IsNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	milestones, err := r.loadMilestones(ctx, `WHERE goal_id = ?`, id.String())
	if err != nil {
		return nil, err
	}
	goal.Milestones = milestonesFor(milestones, goal.ID)
	return &goal, nil
}

// FindByUserID returns the user's goals, oldest first.
func (r *SQLGoalRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]domain.Goal, error) {
	rows, err := database.ContextExecutor(ctx, r.conn).Query(ctx,
		`SELECT `+goalColumns+` FROM goals WHERE user_id = ? ORDER BY created_at, id`,
		userID.String(),
	)
	if err != nil {
		return nil, err
	}

	goals := make([]domain.Goal, 0)
	for rows.Next() {
		goal, err := scanGoal(rows)
		if err != nil {
			_ = rows.Close()
			return nil, err
		}
		goals = append(goals, goal)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, err
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if len(goals) == 0 {
		return goals, nil
	}

	milestones, err := r.loadMilestones(ctx,
		`WHERE goal_id IN (SELECT id FROM goals WHERE user_id = ?)`, userID.String())
	if err != nil {
		return nil, err
	}
	for i := range goals {
		goals[i].Milestones = milestonesFor(milestones, goals[i].ID)
	}
	return goals, nil
}

// Delete removes a goal; its milestones cascade.
func (r *SQLGoalRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := database.ContextExecutor(ctx, r.conn).Exec(ctx, `DELETE FROM goals WHERE id = ?`, id.String())
	return err
}

func (r *SQLGoalRepository) loadMilestones(ctx context.Context, where string, args ...any) (map[uuid.UUID][]domain.Milestone, error) {
	rows, err := database.ContextExecutor(ctx, r.conn).Query(ctx,
		`SELECT `+milestoneColumns+` FROM milestones `+where+` ORDER BY goal_id, sort_order`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byGoal := make(map[uuid.UUID][]domain.Milestone)
	for rows.Next() {
		var (
			m                      domain.Milestone
			id, goalID             string
			dueDate, completedDate string
		)
		err := rows.Scan(&id, &goalID, &m.Title, &m.Completed, &dueDate, &completedDate, &m.Order)
		if err != nil {
			return nil, err
		}
		if m.ID, err = persistence.ParseUUID(id); err != nil {
			return nil, err
		}
		gid, err := persistence.ParseUUID(goalID)
		if err != nil {
			return nil, err
		}
		m.DueDate = sharedDomain.DateKey(dueDate)
		m.CompletedDate = sharedDomain.DateKey(completedDate)
		byGoal[gid] = append(byGoal[gid], m)
	}
	return byGoal, rows.Err()
}

func milestonesFor(byGoal map[uuid.UUID][]domain.Milestone, goalID uuid.UUID) []domain.Milestone {
	if ms, ok := byGoal[goalID]; ok {
		return ms
	}
	return []domain.Milestone{}
}

func scanGoal(row database.Row) (domain.Goal, error) {
	var (
		g                      domain.Goal
		id, userID, targetDate string
		status, createdAt      string
	)
	err := row.Scan(&id, &userID, &g.Title, &g.Category, &targetDate, &g.Progress, &status, &createdAt)
	if err != nil {
		return domain.Goal{}, err
	}

	if g.ID, err = persistence.ParseUUID(id); err != nil {
		return domain.Goal{}, err
	}
	if g.UserID, err = persistence.ParseUUID(userID); err != nil {
		return domain.Goal{}, err
	}
	if g.CreatedAt, err = persistence.ParseTimestamp(createdAt); err != nil {
		return domain.Goal{}, err
	}
	g.TargetDate = sharedDomain.DateKey(targetDate)
	g.Status = domain.Status(status)
	return g, nil
}
