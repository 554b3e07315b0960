package models

import (
	"errors"
	"strings"
	"time"
)

var ErrInvalidMood = errors.New("invalid mood")

type Mood string

const (
	Happy    Mood = "Happy"
	Sad      Mood = "Sad"
	Angry    Mood = "Angry"
	Stressed Mood = "Stressed"
	Anxious  Mood = "Anxious"
	Neutral  Mood = "Neutral"
	Excited  Mood = "Excited"
)

// DefaultMood is offered when a user has no usable previous entry.
const DefaultMood = Happy

// MaxMoodLen matches the mood_log.mood column bound.
const MaxMoodLen = 20

var allMoods = []Mood{Happy, Sad, Angry, Stressed, Anxious, Neutral, Excited}

// AllMoods returns the closed set in display order.
func AllMoods() []Mood {
	out := make([]Mood, len(allMoods))
	copy(out, allMoods)
	return out
}

// ParseMood maps user input onto the canonical label, ignoring case and
// surrounding whitespace.
func ParseMood(s string) (Mood, error) {
	s = strings.TrimSpace(s)
	for _, m := range allMoods {
		if strings.EqualFold(s, string(m)) {
			return m, nil
		}
	}
	return "", ErrInvalidMood
}

func (m Mood) Valid() bool {
	return m.Index() >= 0
}

// Index is the position of m in display order, -1 when m is not in the set.
func (m Mood) Index() int {
	for i, v := range allMoods {
		if v == m {
			return i
		}
	}
	return -1
}

func (m Mood) String() string {
	return string(m)
}

type MoodEntry struct {
	ID        int64     `json:"id" db:"id"`
	UserName  string    `json:"user_name" db:"user_name"`
	Mood      Mood      `json:"mood" db:"mood"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
