package app

import (
	"fmt"

	goalDomain "github.com/felixgeelhaar/pulse/internal/goals/domain"
	goalPersistence "github.com/felixgeelhaar/pulse/internal/goals/infrastructure/persistence"
	habitDomain "github.com/felixgeelhaar/pulse/internal/habits/domain"
	habitPersistence "github.com/felixgeelhaar/pulse/internal/habits/infrastructure/persistence"
	insightsQueries "github.com/felixgeelhaar/pulse/internal/insights/application/queries"
	insightsDomain "github.com/felixgeelhaar/pulse/internal/insights/domain"
	insightsPersistence "github.com/felixgeelhaar/pulse/internal/insights/infrastructure/persistence"
	"github.com/felixgeelhaar/pulse/internal/productivity/domain/task"
	productivityPersistence "github.com/felixgeelhaar/pulse/internal/productivity/infrastructure/persistence"
	"github.com/felixgeelhaar/pulse/internal/shared/infrastructure/crypto"
	"github.com/felixgeelhaar/pulse/internal/shared/infrastructure/database"
	"github.com/felixgeelhaar/pulse/internal/shared/infrastructure/outbox"
	wellnessDomain "github.com/felixgeelhaar/pulse/internal/wellness/domain"
	wellnessPersistence "github.com/felixgeelhaar/pulse/internal/wellness/infrastructure/persistence"
)

// Repositories groups every repository Pulse uses.
type Repositories struct {
	Tasks         task.Repository
	Habits        habitDomain.Repository
	Goals         goalDomain.Repository
	Distractions  insightsDomain.DistractionRepository
	FocusSessions insightsDomain.FocusSessionRepository
	Moods         wellnessDomain.MoodRepository
	Outbox        outbox.Repository
}

// ReportSources returns the repositories the daily report reads from.
func (r Repositories) ReportSources() insightsQueries.DailyReportSources {
	return insightsQueries.DailyReportSources{
		Tasks:         r.Tasks,
		Habits:        r.Habits,
		Goals:         r.Goals,
		Distractions:  r.Distractions,
		FocusSessions: r.FocusSessions,
		Moods:         r.Moods,
	}
}

// RepositoryFactory creates repositories on a database connection.
type RepositoryFactory struct {
	conn   database.Connection
	sealer crypto.TextSealer
}

// NewRepositoryFactory creates a new repository factory. A nil sealer
// stores mood notes as plain text.
func NewRepositoryFactory(conn database.Connection, sealer crypto.TextSealer) *RepositoryFactory {
	return &RepositoryFactory{conn: conn, sealer: sealer}
}

// Driver returns the driver of the underlying connection.
func (f *RepositoryFactory) Driver() database.Driver {
	return f.conn.Driver()
}

// Build creates every repository.
func (f *RepositoryFactory) Build() (Repositories, error) {
	if !f.conn.Driver().IsValid() {
		return Repositories{}, fmt.Errorf("unsupported driver: %s", f.conn.Driver())
	}
	return Repositories{
		Tasks:         productivityPersistence.NewSQLTaskRepository(f.conn),
		Habits:        habitPersistence.NewSQLHabitRepository(f.conn),
		Goals:         goalPersistence.NewSQLGoalRepository(f.conn),
		Distractions:  insightsPersistence.NewSQLDistractionRepository(f.conn),
		FocusSessions: insightsPersistence.NewSQLFocusSessionRepository(f.conn),
		Moods:         wellnessPersistence.NewSQLMoodRepository(f.conn, f.sealer),
		Outbox:        outbox.NewSQLRepository(f.conn),
	}, nil
}

// UnitOfWork returns a unit of work on the factory's connection.
func (f *RepositoryFactory) UnitOfWork() *database.UnitOfWork {
	return database.NewUnitOfWork(f.conn)
}
