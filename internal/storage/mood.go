package storage

import (
	"context"
	"errors"
	"fmt"
	"mood_tracker/internal/models"

	"github.com/jackc/pgx/v5"
)

const (
	sqlCreateMoodLog = `
	CREATE TABLE IF NOT EXISTS mood_log (
		id SERIAL PRIMARY KEY,
		user_name VARCHAR(255) NOT NULL,
		mood VARCHAR(20) NOT NULL,
		created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	`

	sqlCreateMoodLogIndex = `
	CREATE INDEX IF NOT EXISTS mood_log_user_created_idx
	ON mood_log (user_name, created_at DESC);
	`

	sqlInsertMood = `
	INSERT INTO mood_log (user_name, mood)
	VALUES ($1, $2);
	`

	sqlSelectMoodLog = `
	SELECT id, user_name, mood, created_at
	FROM mood_log
	WHERE user_name = $1
	ORDER BY created_at DESC, id DESC;
	`

	sqlSelectLastMood = `
	SELECT mood
	FROM mood_log
	WHERE user_name = $1
	ORDER BY created_at DESC, id DESC
	LIMIT 1;
	`
)

type MoodStorage struct {
	db DBTX
}

// NewMoodStorage does not take ownership of db; closing it is the caller's job.
func NewMoodStorage(db DBTX) *MoodStorage {
	return &MoodStorage{
		db: db,
	}
}

// EnsureSchema creates mood_log and its lookup index when missing.
// Safe to call on every startup.
func (ms *MoodStorage) EnsureSchema(ctx context.Context) error {
	op := "internal/storage/mood.go EnsureSchema"

	if _, err := ms.db.Exec(ctx, sqlCreateMoodLog); err != nil {
		return fmt.Errorf("Failure to create mood_log in %s: %w", op, err)
	}

	if _, err := ms.db.Exec(ctx, sqlCreateMoodLogIndex); err != nil {
		return fmt.Errorf("Failure to create mood_log index in %s: %w", op, err)
	}

	return nil
}

// SaveMood appends one entry; created_at is assigned by the database.
func (ms *MoodStorage) SaveMood(ctx context.Context, userName string, mood models.Mood) error {
	op := "internal/storage/mood.go SaveMood"

	if !mood.Valid() {
		return fmt.Errorf("%s: %q: %w", op, mood, models.ErrInvalidMood)
	}

	_, err := ms.db.Exec(ctx, sqlInsertMood, userName, string(mood))
	if err != nil {
		return fmt.Errorf("Failure to save mood in %s: %w", op, err)
	}

	return nil
}

// LoadMoodLog returns every entry for userName, newest first.
// The result is never nil.
func (ms *MoodStorage) LoadMoodLog(ctx context.Context, userName string) ([]models.MoodEntry, error) {
	op := "internal/storage/mood.go LoadMoodLog"

	rows, err := ms.db.Query(ctx, sqlSelectMoodLog, userName)
	if err != nil {
		return nil, fmt.Errorf("Failure to get mood log in %s: %w", op, err)
	}
	defer rows.Close()

	entries := []models.MoodEntry{}

	for rows.Next() {
		var (
			entry models.MoodEntry
			mood  string
		)

		err := rows.Scan(
			&entry.ID,
			&entry.UserName,
			&mood,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("Failure to scan mood log in %s: %w", op, err)
		}

		entry.Mood = models.Mood(mood)
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("Failure to read mood log in %s: %w", op, err)
	}

	return entries, nil
}

// LoadLastMood returns the mood of the newest entry for userName.
// found is false, with a nil error, when the user has no entries.
func (ms *MoodStorage) LoadLastMood(ctx context.Context, userName string) (mood models.Mood, found bool, err error) {
	op := "internal/storage/mood.go LoadLastMood"

	var raw string
	err = ms.db.QueryRow(ctx, sqlSelectLastMood, userName).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("Failure to get last mood in %s: %w", op, err)
	}

	return models.Mood(raw), true, nil
}
