package usecases

import (
	"context"
	"errors"
	"fmt"
	"mood_tracker/internal/models"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

const (
	// MaxNameLen matches the mood_log.user_name column bound.
	MaxNameLen = 255

	DateLayout = "2006-01-02 15:04:05"
)

var (
	ErrEmptyName   = errors.New("name is required")
	ErrNameTooLong = fmt.Errorf("name is longer than %d characters", MaxNameLen)
)

var validate = validator.New()

// MoodRepository is implemented by storage.MoodStorage.
type MoodRepository interface {
	SaveMood(ctx context.Context, userName string, mood models.Mood) error
	LoadMoodLog(ctx context.Context, userName string) ([]models.MoodEntry, error)
	LoadLastMood(ctx context.Context, userName string) (models.Mood, bool, error)
}

type SaveRequest struct {
	Name string `json:"name" validate:"required,max=255"`
	Mood string `json:"mood" validate:"required,max=20"`
}

type LogRow struct {
	Mood models.Mood `json:"mood"`
	Date string      `json:"date"`
}

type ChartPoint struct {
	Time  time.Time   `json:"time"`
	Mood  models.Mood `json:"mood"`
	Index int         `json:"index"`
}

// MoodLog is the display-ready history of one user, newest first.
type MoodLog struct {
	UserName string        `json:"user_name"`
	Empty    bool          `json:"empty"`
	Rows     []LogRow      `json:"rows"`
	Chart    []ChartPoint  `json:"chart"`
	Moods    []models.Mood `json:"moods"`
}

type Tracker struct {
	repo MoodRepository
}

func NewTracker(repo MoodRepository) *Tracker {
	return &Tracker{repo: repo}
}

// NormalizeName trims and lower-cases raw; the result is the grouping key.
func NormalizeName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", ErrEmptyName
	}
	if utf8.RuneCountInString(name) > MaxNameLen {
		return "", ErrNameTooLong
	}
	return strings.ToLower(name), nil
}

// LastMood returns the newest stored mood for name, if any.
func (t *Tracker) LastMood(ctx context.Context, rawName string) (models.Mood, bool, error) {
	name, err := NormalizeName(rawName)
	if err != nil {
		return "", false, err
	}
	return t.repo.LoadLastMood(ctx, name)
}

// DefaultMood picks the mood to preselect for name.
func (t *Tracker) DefaultMood(ctx context.Context, rawName string) (models.Mood, error) {
	last, found, err := t.LastMood(ctx, rawName)
	if err != nil {
		return "", err
	}
	return PickDefault(last, found), nil
}

// PickDefault is the last saved mood, or models.DefaultMood when there is
// none or it is outside the known set.
func PickDefault(last models.Mood, found bool) models.Mood {
	if !found || !last.Valid() {
		return models.DefaultMood
	}
	return last
}

func (t *Tracker) Save(ctx context.Context, req SaveRequest) error {
	if err := validateRequest(req); err != nil {
		return err
	}

	name, err := NormalizeName(req.Name)
	if err != nil {
		return err
	}

	mood, err := models.ParseMood(req.Mood)
	if err != nil {
		return fmt.Errorf("%q: %w", req.Mood, err)
	}

	return t.repo.SaveMood(ctx, name, mood)
}

func (t *Tracker) History(ctx context.Context, rawName string) (*MoodLog, error) {
	name, err := NormalizeName(rawName)
	if err != nil {
		return nil, err
	}

	entries, err := t.repo.LoadMoodLog(ctx, name)
	if err != nil {
		return nil, err
	}

	return BuildMoodLog(name, entries), nil
}

// BuildMoodLog shapes entries (newest first) for the table and the chart.
// Chart points run oldest to newest.
func BuildMoodLog(name string, entries []models.MoodEntry) *MoodLog {
	log := &MoodLog{
		UserName: name,
		Empty:    len(entries) == 0,
		Rows:     make([]LogRow, 0, len(entries)),
		Chart:    make([]ChartPoint, 0, len(entries)),
		Moods:    models.AllMoods(),
	}

	for _, e := range entries {
		log.Rows = append(log.Rows, LogRow{
			Mood: e.Mood,
			Date: e.CreatedAt.Format(DateLayout),
		})
	}

	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		log.Chart = append(log.Chart, ChartPoint{
			Time:  e.CreatedAt,
			Mood:  e.Mood,
			Index: e.Mood.Index(),
		})
	}

	return log
}
