// Package persistence holds the column codecs shared by the SQL repositories.
// Every column is stored as TEXT or INTEGER so that the same statements run
// on SQLite and PostgreSQL.
package persistence

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// TimestampLayout is fixed-width so stored timestamps sort lexically.
const TimestampLayout = "2006-01-02T15:04:05.000000Z"

// FormatTimestamp renders t in UTC with TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// ParseTimestamp parses a stored timestamp. RFC3339 is accepted for rows
// written by hand.
func ParseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(TimestampLayout, s)
	if err == nil {
		return t, nil
	}
	t, err = time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", s, err)
	}
	return t.UTC(), nil
}

// NullableTimestamp returns nil for a nil time, the formatted value otherwise.
func NullableTimestamp(t *time.Time) any {
	if t == nil {
		return nil
	}
	return FormatTimestamp(*t)
}

// ParseNullableTimestamp is the inverse of NullableTimestamp.
func ParseNullableTimestamp(ns sql.NullString) (*time.Time, error) {
	if !ns.Valid || ns.String == "" {
		return nil, nil
	}
	t, err := ParseTimestamp(ns.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// NullableUUID returns nil for a nil id.
func NullableUUID(id *uuid.UUID) any {
	if id == nil {
		return nil
	}
	return id.String()
}

// ParseNullableUUID is the inverse of NullableUUID.
func ParseNullableUUID(ns sql.NullString) (*uuid.UUID, error) {
	if !ns.Valid || ns.String == "" {
		return nil, nil
	}
	id, err := ParseUUID(ns.String)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// ParseUUID parses a stored id.
func ParseUUID(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid id %q: %w", s, err)
	}
	return id, nil
}

// NullableString returns nil for an empty string.
func NullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
