package services

import (
	"context"

	"github.com/comitanigiacomo/kanso-goals/internal/core/domain"
)

// ReportInvalidator drops a user's cached reports. Invalidate is called after
// the write has been stored and must not return before later reads see it.
type ReportInvalidator interface {
	Invalidate(ctx context.Context, userID string)
}

type noopInvalidator struct{}

func (noopInvalidator) Invalidate(context.Context, string) {}

type HabitService struct {
	repo        domain.HabitRepository
	invalidator ReportInvalidator
}

func NewHabitService(repo domain.HabitRepository, invalidator ReportInvalidator) *HabitService {
	if invalidator == nil {
		invalidator = noopInvalidator{}
	}
	return &HabitService{
		repo:        repo,
		invalidator: invalidator,
	}
}

type CreateHabitInput struct {
	UserID string
	domain.HabitParams
}

type UpdateHabitInput struct {
	ID     string
	UserID string
	domain.HabitParams
}

func (s *HabitService) Create(ctx context.Context, input CreateHabitInput) (*domain.Habit, error) {
	habit, err := domain.NewHabit(input.UserID, input.HabitParams)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, habit); err != nil {
		return nil, err
	}

	s.invalidator.Invalidate(ctx, habit.UserID)

	return habit, nil
}

func (s *HabitService) GetByID(ctx context.Context, id, userID string) (*domain.Habit, error) {
	return s.repo.GetByID(ctx, id, userID)
}

func (s *HabitService) ListByUserID(ctx context.Context, userID string, filter domain.HabitFilter) ([]*domain.Habit, error) {
	return s.repo.ListByUserID(ctx, userID, filter)
}

func (s *HabitService) Update(ctx context.Context, input UpdateHabitInput) (*domain.Habit, error) {
	habit, err := s.repo.GetByID(ctx, input.ID, input.UserID)
	if err != nil {
		return nil, err
	}

	if err := habit.Update(input.HabitParams); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, habit); err != nil {
		return nil, err
	}

	s.invalidator.Invalidate(ctx, habit.UserID)

	return habit, nil
}

func (s *HabitService) Delete(ctx context.Context, id, userID string) error {
	if err := s.repo.Delete(ctx, id, userID); err != nil {
		return err
	}

	s.invalidator.Invalidate(ctx, userID)

	return nil
}
