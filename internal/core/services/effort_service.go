package services

import (
	"context"

	"github.com/comitanigiacomo/kanso-goals/internal/core/domain"
)

type EffortService struct {
	repo        domain.EffortRepository
	habitRepo   domain.HabitRepository
	invalidator ReportInvalidator
}

func NewEffortService(repo domain.EffortRepository, habitRepo domain.HabitRepository, invalidator ReportInvalidator) *EffortService {
	if invalidator == nil {
		invalidator = noopInvalidator{}
	}
	return &EffortService{
		repo:        repo,
		habitRepo:   habitRepo,
		invalidator: invalidator,
	}
}

type CreateEffortInput struct {
	HabitID string
	UserID  string
	Week    int
	Level   int
	// Year defaults to the habit's year when zero.
	Year int
}

type UpdateEffortInput struct {
	ID     string
	UserID string
	Level  int
}

func (s *EffortService) Create(ctx context.Context, input CreateEffortInput) (*domain.Effort, error) {
	effort := domain.NewEffort(input.HabitID, input.UserID, input.Week, input.Level, input.Year)
	if effort.HabitID == "" {
		return nil, domain.ErrInvalidEffortHabit
	}

	habit, err := s.habitRepo.GetByID(ctx, input.HabitID, input.UserID)
	if err != nil {
		return nil, err
	}
	if effort.Year == 0 {
		effort.Year = habit.Year
	}

	if err := effort.Validate(); err != nil {
		return nil, err
	}

	// The store's unique index is what guarantees one effort per week;
	// this lookup only spares the insert in the common case.
	existing, err := s.repo.ListByUserID(ctx, input.UserID, domain.EffortFilter{
		HabitID: habit.ID,
		Week:    &effort.Week,
	})
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return nil, domain.ErrEffortConflict
	}

	if err := s.repo.Create(ctx, effort); err != nil {
		return nil, err
	}

	s.invalidator.Invalidate(ctx, effort.UserID)

	return effort, nil
}

func (s *EffortService) GetByID(ctx context.Context, id, userID string) (*domain.Effort, error) {
	return s.repo.GetByID(ctx, id, userID)
}

func (s *EffortService) ListByUserID(ctx context.Context, userID string, filter domain.EffortFilter) ([]*domain.Effort, error) {
	return s.repo.ListByUserID(ctx, userID, filter)
}

// HabitFor loads the habit an effort belongs to, for nested responses.
func (s *EffortService) HabitFor(ctx context.Context, effort *domain.Effort) (*domain.Habit, error) {
	return s.habitRepo.GetByID(ctx, effort.HabitID, effort.UserID)
}

// HabitsFor loads, in one read, the habits a list of efforts belongs to,
// keyed by habit ID.
func (s *EffortService) HabitsFor(ctx context.Context, userID string, efforts []*domain.Effort) (map[string]*domain.Habit, error) {
	byID := make(map[string]*domain.Habit)
	if len(efforts) == 0 {
		return byID, nil
	}

	habits, err := s.habitRepo.ListByUserID(ctx, userID, domain.HabitFilter{})
	if err != nil {
		return nil, err
	}
	for _, h := range habits {
		byID[h.ID] = h
	}

	for _, e := range efforts {
		if _, ok := byID[e.HabitID]; !ok {
			return nil, domain.ErrHabitNotFound
		}
	}

	return byID, nil
}

func (s *EffortService) Update(ctx context.Context, input UpdateEffortInput) (*domain.Effort, error) {
	effort, err := s.repo.GetByID(ctx, input.ID, input.UserID)
	if err != nil {
		return nil, err
	}

	effort.SetLevel(input.Level)

	if err := s.repo.Update(ctx, effort); err != nil {
		return nil, err
	}

	s.invalidator.Invalidate(ctx, effort.UserID)

	return effort, nil
}

func (s *EffortService) Delete(ctx context.Context, id, userID string) error {
	if err := s.repo.Delete(ctx, id, userID); err != nil {
		return err
	}

	s.invalidator.Invalidate(ctx, userID)

	return nil
}
