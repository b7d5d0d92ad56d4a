package domain

import (
	"context"
	"errors"
)

var (
	ErrHabitNotFound     = errors.New("habit not found")
	ErrEffortNotFound    = errors.New("effort not found")
	ErrEffortConflict    = errors.New("effort already set for that week and habit")
	ErrGoalNotFound      = errors.New("goal not found")
	ErrObjectiveNotFound = errors.New("objective not found")
	ErrTicketNotFound    = errors.New("ticket not found")
	ErrForbidden         = errors.New("forbidden")
)

// HabitFilter narrows ListByUserID. Nil fields are not applied.
type HabitFilter struct {
	Year            *int
	StartingWeekLte *int
}

// EffortFilter narrows effort reads. Nil or empty fields are not applied.
type EffortFilter struct {
	Year    *int
	Week    *int
	WeekLte *int
	HabitID string
}

type HabitRepository interface {
	// Create persists a new habit definition in the storage.
	Create(ctx context.Context, habit *Habit) error

	// GetByID retrieves a habit owned by userID. A habit owned by someone
	// else is reported as ErrHabitNotFound.
	GetByID(ctx context.Context, id, userID string) (*Habit, error)

	// ListByUserID returns the user's habits ordered by starting week.
	ListByUserID(ctx context.Context, userID string, filter HabitFilter) ([]*Habit, error)

	// SumExpectedEffort adds up expected_effort for the habits that started
	// on or before startingWeekLte.
	SumExpectedEffort(ctx context.Context, userID string, startingWeekLte int) (int, error)

	Update(ctx context.Context, habit *Habit) error

	// Delete removes the habit and, by cascade, its efforts.
	Delete(ctx context.Context, id, userID string) error
}

type EffortRepository interface {
	// Create persists a new effort. Implementations must reject a second
	// effort for the same (habit, week, user) with ErrEffortConflict.
	Create(ctx context.Context, effort *Effort) error

	GetByID(ctx context.Context, id, userID string) (*Effort, error)

	// ListByUserID returns the user's efforts in insertion order.
	ListByUserID(ctx context.Context, userID string, filter EffortFilter) ([]*Effort, error)

	// SumLevel adds up level across the efforts matching filter.
	SumLevel(ctx context.Context, userID string, filter EffortFilter) (int, error)

	Update(ctx context.Context, effort *Effort) error

	Delete(ctx context.Context, id, userID string) error
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	Update(ctx context.Context, user *User) error
}

type GoalRepository interface {
	Create(ctx context.Context, goal *Goal) error
	GetByID(ctx context.Context, id, userID string) (*Goal, error)
	ListByUserID(ctx context.Context, userID string) ([]*Goal, error)
	Update(ctx context.Context, goal *Goal) error
	Delete(ctx context.Context, id, userID string) error
}

type ObjectiveRepository interface {
	Create(ctx context.Context, objective *Objective) error
	GetByID(ctx context.Context, id, userID string) (*Objective, error)
	ListByUserID(ctx context.Context, userID string) ([]*Objective, error)
	Update(ctx context.Context, objective *Objective) error
	Delete(ctx context.Context, id, userID string) error
}

type SupportRepository interface {
	CreateTicket(ctx context.Context, ticket *Ticket) error
	GetTicket(ctx context.Context, id string) (*Ticket, error)
	ListTickets(ctx context.Context) ([]*Ticket, error)
	UpdateTicket(ctx context.Context, ticket *Ticket) error

	CreateAnnouncement(ctx context.Context, a *Announcement) error
	ListAnnouncements(ctx context.Context) ([]*Announcement, error)

	CreateFeature(ctx context.Context, f *Feature) error
	ListFeatures(ctx context.Context) ([]*Feature, error)
}

func IntPtr(v int) *int {
	return &v
}
