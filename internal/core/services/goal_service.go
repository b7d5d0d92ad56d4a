package services

import (
	"context"
	"fmt"

	"github.com/comitanigiacomo/kanso-goals/internal/core/domain"
)

type GoalService struct {
	goals       domain.GoalRepository
	objectives  domain.ObjectiveRepository
	invalidator ReportInvalidator
}

func NewGoalService(goals domain.GoalRepository, objectives domain.ObjectiveRepository, invalidator ReportInvalidator) *GoalService {
	if invalidator == nil {
		invalidator = noopInvalidator{}
	}
	return &GoalService{
		goals:       goals,
		objectives:  objectives,
		invalidator: invalidator,
	}
}

type GoalInput struct {
	ID          string
	UserID      string
	Name        string
	Description string
	Year        int
}

type ObjectiveInput struct {
	ID      string
	UserID  string
	GoalID  string
	Name    string
	Quarter int
	Year    int
}

func (s *GoalService) CreateGoal(ctx context.Context, input GoalInput) (*domain.Goal, error) {
	goal, err := domain.NewGoal(input.UserID, input.Name, input.Description, input.Year)
	if err != nil {
		return nil, err
	}
	if err := s.goals.Create(ctx, goal); err != nil {
		return nil, fmt.Errorf("goal service: create: %w", err)
	}
	s.invalidator.Invalidate(ctx, goal.UserID)
	return goal, nil
}

func (s *GoalService) GetGoal(ctx context.Context, id, userID string) (*domain.Goal, error) {
	return s.goals.GetByID(ctx, id, userID)
}

func (s *GoalService) ListGoals(ctx context.Context, userID string) ([]*domain.Goal, error) {
	return s.goals.ListByUserID(ctx, userID)
}

func (s *GoalService) UpdateGoal(ctx context.Context, input GoalInput) (*domain.Goal, error) {
	goal, err := s.goals.GetByID(ctx, input.ID, input.UserID)
	if err != nil {
		return nil, err
	}
	if err := goal.Update(input.Name, input.Description, input.Year); err != nil {
		return nil, err
	}
	if err := s.goals.Update(ctx, goal); err != nil {
		return nil, err
	}
	s.invalidator.Invalidate(ctx, goal.UserID)
	return goal, nil
}

func (s *GoalService) DeleteGoal(ctx context.Context, id, userID string) error {
	if err := s.goals.Delete(ctx, id, userID); err != nil {
		return err
	}
	s.invalidator.Invalidate(ctx, userID)
	return nil
}

func (s *GoalService) CreateObjective(ctx context.Context, input ObjectiveInput) (*domain.Objective, error) {
	objective, err := domain.NewObjective(input.UserID, input.GoalID, input.Name, input.Quarter, input.Year)
	if err != nil {
		return nil, err
	}
	if _, err := s.goals.GetByID(ctx, input.GoalID, input.UserID); err != nil {
		return nil, err
	}
	if err := s.objectives.Create(ctx, objective); err != nil {
		return nil, fmt.Errorf("goal service: create objective: %w", err)
	}
	s.invalidator.Invalidate(ctx, objective.UserID)
	return objective, nil
}

func (s *GoalService) GetObjective(ctx context.Context, id, userID string) (*domain.Objective, error) {
	return s.objectives.GetByID(ctx, id, userID)
}

func (s *GoalService) ListObjectives(ctx context.Context, userID string) ([]*domain.Objective, error) {
	return s.objectives.ListByUserID(ctx, userID)
}

func (s *GoalService) UpdateObjective(ctx context.Context, input ObjectiveInput) (*domain.Objective, error) {
	objective, err := s.objectives.GetByID(ctx, input.ID, input.UserID)
	if err != nil {
		return nil, err
	}
	if input.GoalID != objective.GoalID {
		if _, err := s.goals.GetByID(ctx, input.GoalID, input.UserID); err != nil {
			return nil, err
		}
	}
	if err := objective.Update(input.GoalID, input.Name, input.Quarter, input.Year); err != nil {
		return nil, err
	}
	if err := s.objectives.Update(ctx, objective); err != nil {
		return nil, err
	}
	s.invalidator.Invalidate(ctx, objective.UserID)
	return objective, nil
}

func (s *GoalService) DeleteObjective(ctx context.Context, id, userID string) error {
	if err := s.objectives.Delete(ctx, id, userID); err != nil {
		return err
	}
	s.invalidator.Invalidate(ctx, userID)
	return nil
}
