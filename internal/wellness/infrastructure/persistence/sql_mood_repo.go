package persistence

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	sharedDomain "github.com/felixgeelhaar/pulse/internal/shared/domain"
	"github.com/felixgeelhaar/pulse/internal/shared/infrastructure/crypto"
	"github.com/felixgeelhaar/pulse/internal/shared/infrastructure/database"
	"github.com/felixgeelhaar/pulse/internal/shared/infrastructure/persistence"
	"github.com/felixgeelhaar/pulse/internal/wellness/domain"
)

const moodColumns = `id, user_id, date, score, note, created_at`

// SQLMoodRepository implements domain.MoodRepository. Notes pass through
// the sealer on their way in and out of the database.
type SQLMoodRepository struct {
	conn   database.Connection
	sealer crypto.TextSealer
}

// NewSQLMoodRepository creates a new mood repository. A nil sealer stores
// notes as plain text.
func NewSQLMoodRepository(conn database.Connection, sealer crypto.TextSealer) *SQLMoodRepository {
	if sealer == nil {
		sealer = crypto.PlainText{}
	}
	return &SQLMoodRepository{conn: conn, sealer: sealer}
}

// Save stores the entry, replacing any entry the user has for that date.
func (r *SQLMoodRepository) Save(ctx context.Context, entry domain.MoodEntry) error {
	note, err := r.sealer.SealString(entry.Note)
	if err != nil {
		return fmt.Errorf("failed to seal mood note: %w", err)
	}

	_, err = database.ContextExecutor(ctx, r.conn).Exec(ctx, `
		INSERT INTO mood_entries (`+moodColumns+`)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, date) DO UPDATE SET
			id = excluded.id,
			score = excluded.score,
			note = excluded.note,
			created_at = excluded.created_at`,
		entry.ID.String(),
		entry.UserID.String(),
		entry.Date.String(),
		entry.Score,
		note,
		persistence.FormatTimestamp(entry.CreatedAt),
	)
	return err
}

// FindByDate returns the user's entry for date, or nil when there is none.
func (r *SQLMoodRepository) FindByDate(ctx context.Context, userID uuid.UUID, date sharedDomain.DateKey) (*domain.MoodEntry, error) {
	row := database.ContextExecutor(ctx, r.conn).QueryRow(ctx,
		`SELECT `+moodColumns+` FROM mood_entries WHERE user_id = ? AND date = ?`,
		userID.String(), date.String(),
	)

	entry, err := r.scanEntry(row)
	if database.IsNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// FindRange returns the user's entries dated from..to inclusive, oldest first.
func (r *SQLMoodRepository) FindRange(ctx context.Context, userID uuid.UUID, from, to sharedDomain.DateKey) ([]domain.MoodEntry, error) {
	rows, err := database.ContextExecutor(ctx, r.conn).Query(ctx, `
		SELECT `+moodColumns+`
		FROM mood_entries
		WHERE user_id = ? AND date >= ? AND date <= ?
		ORDER BY date`,
		userID.String(), from.String(), to.String(),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]domain.MoodEntry, 0)
	for rows.Next() {
		entry, err := r.scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func (r *SQLMoodRepository) scanEntry(row database.Row) (domain.MoodEntry, error) {
	var (
		e                domain.MoodEntry
		id, userID, date string
		note, createdAt  string
	)
	err := row.Scan(&id, &userID, &date, &e.Score, &note, &createdAt)
	if err != nil {
		return domain.MoodEntry{}, err
	}

	if e.ID, err = persistence.ParseUUID(id); err != nil {
		return domain.MoodEntry{}, err
	}
	if e.UserID, err = persistence.ParseUUID(userID); err != nil {
		return domain.MoodEntry{}, err
	}
	if e.CreatedAt, err = persistence.ParseTimestamp(createdAt); err != nil {
		return domain.MoodEntry{}, err
	}
	if e.Note, err = r.sealer.OpenString(note); err != nil {
		return domain.MoodEntry{}, fmt.Errorf("failed to open mood note: %w", err)
	}
	e.Date = sharedDomain.DateKey(date)
	return e, nil
}
