package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrHabitNameEmpty        = errors.New("habit name cannot be empty")
	ErrHabitNameTooLong      = errors.New("habit name is too long (max 255 chars)")
	ErrHabitInvalidUserID    = errors.New("invalid user id")
	ErrInvalidWeek           = errors.New("invalid week (must be 1-53)")
	ErrInvalidEndingWeek     = errors.New("ending week must be equal to or greater than starting week")
	ErrInvalidExpectedEffort = errors.New("expected effort cannot be negative")
	ErrInvalidYear           = errors.New("invalid year")
)

const (
	HabitStatusOpen     = "open"
	HabitStatusFinished = "finished"
	DefaultHabitColor   = "rose"
	MaxNameLen          = 255
	MinWeek             = 1
	MaxWeek             = 53
)

type Habit struct {
	ID             string    `json:"id" db:"id"`
	UserID         string    `json:"user_id" db:"user_id"`
	ObjectiveID    *string   `json:"objective_id,omitempty" db:"objective_id"`
	Name           string    `json:"name" db:"name"`
	StartingWeek   int       `json:"starting_week" db:"starting_week"`
	EndingWeek     *int      `json:"ending_week,omitempty" db:"ending_week"`
	ExpectedEffort int       `json:"expected_effort" db:"expected_effort"`
	Year           int       `json:"year" db:"year"`
	Color          string    `json:"color" db:"color"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

type HabitParams struct {
	Name           string
	ObjectiveID    *string
	StartingWeek   int
	EndingWeek     *int
	ExpectedEffort int
	Year           int
	Color          string
}

func validateWeek(week int) error {
	if week < MinWeek || week > MaxWeek {
		return ErrInvalidWeek
	}
	return nil
}

func (p HabitParams) validate() error {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return ErrHabitNameEmpty
	}
	if len(name) > MaxNameLen {
		return ErrHabitNameTooLong
	}
	if err := validateWeek(p.StartingWeek); err != nil {
		return err
	}
	if p.EndingWeek != nil {
		if err := validateWeek(*p.EndingWeek); err != nil {
			return err
		}
		if *p.EndingWeek < p.StartingWeek {
			return ErrInvalidEndingWeek
		}
	}
	if p.ExpectedEffort < 0 {
		return ErrInvalidExpectedEffort
	}
	if p.Year <= 0 {
		return ErrInvalidYear
	}
	return nil
}

func NewHabit(userID string, p HabitParams) (*Habit, error) {
	if userID == "" {
		return nil, ErrHabitInvalidUserID
	}
	if err := p.validate(); err != nil {
		return nil, err
	}

	color := strings.TrimSpace(p.Color)
	if color == "" {
		color = DefaultHabitColor
	}

	now := time.Now().UTC()

	return &Habit{
		ID:             uuid.NewString(),
		UserID:         userID,
		ObjectiveID:    p.ObjectiveID,
		Name:           strings.TrimSpace(p.Name),
		StartingWeek:   p.StartingWeek,
		EndingWeek:     p.EndingWeek,
		ExpectedEffort: p.ExpectedEffort,
		Year:           p.Year,
		Color:          color,
		CreatedAt:      now,
		UpdatedAt:      now,
	}, nil
}

func (h *Habit) Update(p HabitParams) error {
	if err := p.validate(); err != nil {
		return err
	}

	color := strings.TrimSpace(p.Color)
	if color == "" {
		color = h.Color
	}

	h.Name = strings.TrimSpace(p.Name)
	h.ObjectiveID = p.ObjectiveID
	h.StartingWeek = p.StartingWeek
	h.EndingWeek = p.EndingWeek
	h.ExpectedEffort = p.ExpectedEffort
	h.Year = p.Year
	h.Color = color
	h.UpdatedAt = time.Now().UTC()

	return nil
}

// Status reports whether the habit is still running in the given ISO week.
func (h *Habit) Status(currentWeek int) string {
	if h.EndingWeek == nil || currentWeek <= *h.EndingWeek {
		return HabitStatusOpen
	}
	return HabitStatusFinished
}
