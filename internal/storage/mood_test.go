package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"mood_tracker/internal/models"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockStorage(t *testing.T) (*MoodStorage, pgxmock.PgxPoolIface) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	return NewMoodStorage(mock), mock
}

func TestEnsureSchema(t *testing.T) {
	s, mock := newMockStorage(t)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS mood_log").
		WillReturnResult(pgxmock.NewResult("CREATE TABLE", 0))
	mock.ExpectExec("CREATE INDEX IF NOT EXISTS mood_log_user_created_idx").
		WillReturnResult(pgxmock.NewResult("CREATE INDEX", 0))

	require.NoError(t, s.EnsureSchema(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureSchema_Error(t *testing.T) {
	s, mock := newMockStorage(t)
	denied := errors.New("permission denied for schema public")

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS mood_log").WillReturnError(denied)

	err := s.EnsureSchema(context.Background())
	assert.ErrorIs(t, err, denied)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveMood(t *testing.T) {
	s, mock := newMockStorage(t)

	mock.ExpectExec("INSERT INTO mood_log").
		WithArgs("alice", "Happy").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, s.SaveMood(context.Background(), "alice", models.Happy))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveMood_RejectsUnknownMoodBeforeQuery(t *testing.T) {
	s, mock := newMockStorage(t)

	err := s.SaveMood(context.Background(), "alice", models.Mood("Bored"))
	assert.ErrorIs(t, err, models.ErrInvalidMood)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveMood_PropagatesError(t *testing.T) {
	s, mock := newMockStorage(t)
	reset := errors.New("connection reset by peer")

	mock.ExpectExec("INSERT INTO mood_log").
		WithArgs("alice", "Sad").
		WillReturnError(reset)

	err := s.SaveMood(context.Background(), "alice", models.Sad)
	assert.ErrorIs(t, err, reset)
	assert.Contains(t, err.Error(), "SaveMood")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadMoodLog(t *testing.T) {
	s, mock := newMockStorage(t)
	base := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	rows := pgxmock.NewRows([]string{"id", "user_name", "mood", "created_at"}).
		AddRow(int64(3), "alice", "Excited", base.Add(2*time.Minute)).
		AddRow(int64(2), "alice", "Sad", base.Add(time.Minute)).
		AddRow(int64(1), "alice", "Happy", base)
	mock.ExpectQuery("SELECT id, user_name, mood, created_at").
		WithArgs("alice").
		WillReturnRows(rows)

	entries, err := s.LoadMoodLog(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, models.MoodEntry{ID: 3, UserName: "alice", Mood: models.Excited, CreatedAt: base.Add(2 * time.Minute)}, entries[0])
	assert.Equal(t, models.Sad, entries[1].Mood)
	assert.Equal(t, models.Happy, entries[2].Mood)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadMoodLog_Empty(t *testing.T) {
	s, mock := newMockStorage(t)

	mock.ExpectQuery("SELECT id, user_name, mood, created_at").
		WithArgs("bob").
		WillReturnRows(pgxmock.NewRows([]string{"id", "user_name", "mood", "created_at"}))

	entries, err := s.LoadMoodLog(context.Background(), "bob")
	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadMoodLog_QueryError(t *testing.T) {
	s, mock := newMockStorage(t)
	boom := errors.New("relation \"mood_log\" does not exist")

	mock.ExpectQuery("SELECT id, user_name, mood, created_at").
		WithArgs("alice").
		WillReturnError(boom)

	entries, err := s.LoadMoodLog(context.Background(), "alice")
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, entries)
}

func TestLoadMoodLog_RowError(t *testing.T) {
	s, mock := newMockStorage(t)
	broken := errors.New("unexpected EOF")

	rows := pgxmock.NewRows([]string{"id", "user_name", "mood", "created_at"}).
		AddRow(int64(2), "alice", "Sad", time.Now()).
		AddRow(int64(1), "alice", "Happy", time.Now()).
		RowError(1, broken)
	mock.ExpectQuery("SELECT id, user_name, mood, created_at").
		WithArgs("alice").
		WillReturnRows(rows)

	_, err := s.LoadMoodLog(context.Background(), "alice")
	assert.ErrorIs(t, err, broken)
}

func TestLoadLastMood(t *testing.T) {
	s, mock := newMockStorage(t)

	mock.ExpectQuery(`SELECT mood\s+FROM mood_log[\s\S]+LIMIT 1`).
		WithArgs("alice").
		WillReturnRows(pgxmock.NewRows([]string{"mood"}).AddRow("Sad"))

	mood, found, err := s.LoadLastMood(context.Background(), "alice")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, models.Sad, mood)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadLastMood_None(t *testing.T) {
	s, mock := newMockStorage(t)

	mock.ExpectQuery(`SELECT mood\s+FROM mood_log[\s\S]+LIMIT 1`).
		WithArgs("nobody").
		WillReturnRows(pgxmock.NewRows([]string{"mood"}))

	mood, found, err := s.LoadLastMood(context.Background(), "nobody")
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, models.Mood(""), mood)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadLastMood_Error(t *testing.T) {
	s, mock := newMockStorage(t)
	boom := errors.New("server closed the connection unexpectedly")

	mock.ExpectQuery(`SELECT mood\s+FROM mood_log[\s\S]+LIMIT 1`).
		WithArgs("alice").
		WillReturnError(boom)

	_, found, err := s.LoadLastMood(context.Background(), "alice")
	assert.ErrorIs(t, err, boom)
	assert.False(t, found)
}

func TestConnect_EmptyDSN(t *testing.T) {
	pool, err := Connect(context.Background(), "")
	assert.Nil(t, pool)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestConnect_BadDSN(t *testing.T) {
	pool, err := Connect(context.Background(), "postgres://%zz")
	assert.Nil(t, pool)
	assert.ErrorIs(t, err, ErrUnavailable)
}
