package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrGoalNameEmpty      = errors.New("goal name cannot be empty")
	ErrObjectiveNameEmpty = errors.New("objective name cannot be empty")
	ErrInvalidQuarter     = errors.New("invalid quarter (must be 1-4)")
	ErrGoalRequired       = errors.New("goal_id is required")
)

// Goal is a yearly aspiration.
type Goal struct {
	ID          string    `json:"id" db:"id"`
	UserID      string    `json:"user_id" db:"user_id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	Year        int       `json:"year" db:"year"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// Objective is a quarterly step towards a Goal.
type Objective struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	GoalID    string    `json:"goal_id" db:"goal_id"`
	Name      string    `json:"name" db:"name"`
	Quarter   int       `json:"quarter" db:"quarter"`
	Year      int       `json:"year" db:"year"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

func validateGoal(name string, year int) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrGoalNameEmpty
	}
	if len(name) > MaxNameLen {
		return ErrHabitNameTooLong
	}
	if year <= 0 {
		return ErrInvalidYear
	}
	return nil
}

func NewGoal(userID, name, description string, year int) (*Goal, error) {
	if userID == "" {
		return nil, ErrHabitInvalidUserID
	}
	if err := validateGoal(name, year); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &Goal{
		ID:          uuid.NewString(),
		UserID:      userID,
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
		Year:        year,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

func (g *Goal) Update(name, description string, year int) error {
	if err := validateGoal(name, year); err != nil {
		return err
	}
	g.Name = strings.TrimSpace(name)
	g.Description = strings.TrimSpace(description)
	g.Year = year
	g.UpdatedAt = time.Now().UTC()
	return nil
}

func validateObjective(goalID, name string, quarter, year int) error {
	if strings.TrimSpace(goalID) == "" {
		return ErrGoalRequired
	}
	if strings.TrimSpace(name) == "" {
		return ErrObjectiveNameEmpty
	}
	if quarter < 1 || quarter > 4 {
		return ErrInvalidQuarter
	}
	if year <= 0 {
		return ErrInvalidYear
	}
	return nil
}

func NewObjective(userID, goalID, name string, quarter, year int) (*Objective, error) {
	if userID == "" {
		return nil, ErrHabitInvalidUserID
	}
	if err := validateObjective(goalID, name, quarter, year); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	return &Objective{
		ID:        uuid.NewString(),
		UserID:    userID,
		GoalID:    goalID,
		Name:      strings.TrimSpace(name),
		Quarter:   quarter,
		Year:      year,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (o *Objective) Update(goalID, name string, quarter, year int) error {
	if err := validateObjective(goalID, name, quarter, year); err != nil {
		return err
	}
	o.GoalID = goalID
	o.Name = strings.TrimSpace(name)
	o.Quarter = quarter
	o.Year = year
	o.UpdatedAt = time.Now().UTC()
	return nil
}
