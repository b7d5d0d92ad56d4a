package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidEffortHabit = errors.New("habit_id is required")
	ErrInvalidEffortUser  = errors.New("user_id is required")
)

type Effort struct {
	ID        string    `json:"id" db:"id"`
	HabitID   string    `json:"habit_id" db:"habit_id"`
	UserID    string    `json:"user_id" db:"user_id"`
	Week      int       `json:"week" db:"week"`
	Level     int       `json:"level" db:"level"`
	Year      int       `json:"year" db:"year"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

func NewEffort(habitID, userID string, week, level, year int) *Effort {
	now := time.Now().UTC()

	return &Effort{
		ID:        uuid.NewString(),
		HabitID:   habitID,
		UserID:    userID,
		Week:      week,
		Level:     level,
		Year:      year,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Validate checks identity fields and the week range. Level is not
// bounded: negative levels are stored as given.
func (e *Effort) Validate() error {
	if strings.TrimSpace(e.HabitID) == "" {
		return ErrInvalidEffortHabit
	}
	if strings.TrimSpace(e.UserID) == "" {
		return ErrInvalidEffortUser
	}
	if err := validateWeek(e.Week); err != nil {
		return err
	}
	if e.Year <= 0 {
		return ErrInvalidYear
	}
	return nil
}

func (e *Effort) SetLevel(level int) {
	e.Level = level
	e.UpdatedAt = time.Now().UTC()
}
