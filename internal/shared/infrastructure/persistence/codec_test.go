package persistence

import (
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatTimestamp_SortsLexically(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	early := time.Date(2024, time.January, 10, 9, 0, 0, 0, time.UTC)
	late := time.Date(2024, time.January, 10, 10, 30, 0, 500, loc) // 08:30 UTC

	assert.Equal(t, "2024-01-10T09:00:00.000000Z", FormatTimestamp(early))
	assert.Less(t, FormatTimestamp(late), FormatTimestamp(early))
}

func TestParseTimestamp(t *testing.T) {
	at := time.Date(2024, time.March, 1, 12, 15, 30, 123456000, time.UTC)

	parsed, err := ParseTimestamp(FormatTimestamp(at))
	require.NoError(t, err)
	assert.True(t, at.Equal(parsed))

	parsed, err = ParseTimestamp("2024-03-01T14:15:30+02:00")
	require.NoError(t, err)
	assert.Equal(t, 12, parsed.Hour())

	_, err = ParseTimestamp("yesterday")
	assert.Error(t, err)
}

func TestNullableTimestamp(t *testing.T) {
	assert.Nil(t, NullableTimestamp(nil))

	at := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	stored := NullableTimestamp(&at)
	assert.Equal(t, "2024-03-01T00:00:00.000000Z", stored)

	back, err := ParseNullableTimestamp(sql.NullString{String: stored.(string), Valid: true})
	require.NoError(t, err)
	require.NotNil(t, back)
	assert.True(t, at.Equal(*back))

	back, err = ParseNullableTimestamp(sql.NullString{})
	require.NoError(t, err)
	assert.Nil(t, back)
}

func TestNullableUUID(t *testing.T) {
	assert.Nil(t, NullableUUID(nil))

	id := uuid.New()
	back, err := ParseNullableUUID(sql.NullString{String: NullableUUID(&id).(string), Valid: true})
	require.NoError(t, err)
	assert.Equal(t, id, *back)

	_, err = ParseNullableUUID(sql.NullString{String: "nope", Valid: true})
	assert.Error(t, err)
}

func TestNullableString(t *testing.T) {
	assert.Nil(t, NullableString(""))
	assert.Equal(t, "x", NullableString("x"))
}
