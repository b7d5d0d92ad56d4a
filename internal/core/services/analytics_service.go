package services

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/comitanigiacomo/kanso-goals/internal/core/domain"
)

// RecentWeeks is the number of points returned by RecentCompletions.
const RecentWeeks = 5

// Analytics is the read side served by the analytics endpoints.
type Analytics interface {
	CompletionReport(ctx context.Context, userID string, week int) (*domain.CompletionReport, error)
	RecentCompletions(ctx context.Context, userID string, currentWeek int) ([]domain.WeeklyCompletion, error)
	HabitPerformance(ctx context.Context, userID, habitID string) (*domain.HabitPerformanceReport, error)
	YearlyPerformance(ctx context.Context, userID string, currentYear, currentWeek int) ([]domain.HabitContribution, error)
	GoalWeeklyStatistics(ctx context.Context, userID string, week int) (*domain.GoalWeeklyStatistics, error)
}

var _ Analytics = (*AnalyticsService)(nil)

type AnalyticsService struct {
	habitRepo     domain.HabitRepository
	effortRepo    domain.EffortRepository
	goalRepo      domain.GoalRepository
	objectiveRepo domain.ObjectiveRepository
}

func NewAnalyticsService(
	habitRepo domain.HabitRepository,
	effortRepo domain.EffortRepository,
	goalRepo domain.GoalRepository,
	objectiveRepo domain.ObjectiveRepository,
) *AnalyticsService {
	return &AnalyticsService{
		habitRepo:     habitRepo,
		effortRepo:    effortRepo,
		goalRepo:      goalRepo,
		objectiveRepo: objectiveRepo,
	}
}

// Completion returns the share of the week's expected effort that was
// logged, unrounded and uncapped. Habits starting after week are ignored.
func (s *AnalyticsService) Completion(ctx context.Context, userID string, week int) (float64, error) {
	expected, err := s.habitRepo.SumExpectedEffort(ctx, userID, week)
	if err != nil {
		return 0, err
	}

	actual, err := s.effortRepo.SumLevel(ctx, userID, domain.EffortFilter{Week: &week})
	if err != nil {
		return 0, err
	}

	return domain.Percentage(actual, expected), nil
}

func (s *AnalyticsService) CompletionReport(ctx context.Context, userID string, week int) (*domain.CompletionReport, error) {
	completion, err := s.Completion(ctx, userID, week)
	if err != nil {
		return nil, err
	}
	return &domain.CompletionReport{CompletionPercentage: domain.Round2(completion)}, nil
}

func (s *AnalyticsService) HabitPerformance(ctx context.Context, userID, habitID string) (*domain.HabitPerformanceReport, error) {
	habit, err := s.habitRepo.GetByID(ctx, habitID, userID)
	if err != nil {
		return nil, err
	}

	efforts, err := s.effortRepo.ListByUserID(ctx, userID, domain.EffortFilter{HabitID: habit.ID})
	if err != nil {
		return nil, err
	}

	report := &domain.HabitPerformanceReport{
		PerformanceData: make([]domain.WeeklyPerformance, 0, len(efforts)),
	}
	if len(efforts) == 0 {
		return report, nil
	}

	var total float64
	for _, e := range efforts {
		performance := domain.Percentage(e.Level, habit.ExpectedEffort)
		total += performance

		report.PerformanceData = append(report.PerformanceData, domain.WeeklyPerformance{
			Week:                  e.Week,
			PerformancePercentage: domain.Round2(performance),
		})
	}

	report.AveragePerformancePercentage = domain.Round2(total / float64(len(efforts)))

	return report, nil
}

// YearlyPerformance ranks the habits of currentYear that already started by
// their share of the effort delivered up to currentWeek.
func (s *AnalyticsService) YearlyPerformance(ctx context.Context, userID string, currentYear, currentWeek int) ([]domain.HabitContribution, error) {
	habits, err := s.habitRepo.ListByUserID(ctx, userID, domain.HabitFilter{
		Year:            &currentYear,
		StartingWeekLte: &currentWeek,
	})
	if err != nil {
		return nil, err
	}

	points := make([]int, len(habits))
	total := 0
	for i, h := range habits {
		sum, err := s.effortRepo.SumLevel(ctx, userID, domain.EffortFilter{
			HabitID: h.ID,
			WeekLte: &currentWeek,
		})
		if err != nil {
			return nil, fmt.Errorf("sum effort for habit %s: %w", h.ID, err)
		}
		points[i] = sum
		total += sum
	}

	type ranked struct {
		habit        *domain.Habit
		performance  float64
		contribution float64
	}

	rows := make([]ranked, len(habits))
	for i, h := range habits {
		weeksSinceStart := currentWeek - h.StartingWeek + 1
		rows[i] = ranked{
			habit:        h,
			performance:  domain.Percentage(points[i], h.ExpectedEffort*weeksSinceStart),
			contribution: domain.Percentage(points[i], total),
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.contribution != b.contribution {
			return a.contribution > b.contribution
		}
		if a.habit.StartingWeek != b.habit.StartingWeek {
			return a.habit.StartingWeek < b.habit.StartingWeek
		}
		return a.habit.ID < b.habit.ID
	})

	result := make([]domain.HabitContribution, 0, len(rows))
	for _, r := range rows {
		result = append(result, domain.HabitContribution{
			Habit:                  r.habit,
			PerformancePercentage:  domain.Round2(r.performance),
			ContributionPercentage: domain.Round2(r.contribution),
		})
	}

	return result, nil
}

// RecentCompletions reports the completion of currentWeek and the four
// weeks before it, oldest first. Week numbers below 1 are not wrapped into
// the previous year; they match nothing and report 0.
func (s *AnalyticsService) RecentCompletions(ctx context.Context, userID string, currentWeek int) ([]domain.WeeklyCompletion, error) {
	completions := make([]float64, RecentWeeks)
	firstWeek := currentWeek - (RecentWeeks - 1)

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < RecentWeeks; i++ {
		i := i
		g.Go(func() error {
			c, err := s.Completion(gctx, userID, firstWeek+i)
			if err != nil {
				return err
			}
			completions[i] = domain.Round2(c)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := make([]domain.WeeklyCompletion, RecentWeeks)
	for i := range completions {
		var diff float64
		if i > 0 {
			diff = domain.Round2(completions[i] - completions[i-1])
		}
		result[i] = domain.WeeklyCompletion{
			Week:                 firstWeek + i,
			CompletionPercentage: completions[i],
			Difference:           diff,
		}
	}

	return result, nil
}

// GoalWeeklyStatistics sums the effort logged in week per goal, following
// effort to habit to objective to goal. TotalEffortPoints counts every effort
// of the week, including habits outside any objective, and each goal's
// percentage is its share of that total.
func (s *AnalyticsService) GoalWeeklyStatistics(ctx context.Context, userID string, week int) (*domain.GoalWeeklyStatistics, error) {
	var (
		goals      []*domain.Goal
		objectives []*domain.Objective
		habits     []*domain.Habit
		efforts    []*domain.Effort
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		goals, err = s.goalRepo.ListByUserID(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		objectives, err = s.objectiveRepo.ListByUserID(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		habits, err = s.habitRepo.ListByUserID(gctx, userID, domain.HabitFilter{})
		return err
	})
	g.Go(func() (err error) {
		efforts, err = s.effortRepo.ListByUserID(gctx, userID, domain.EffortFilter{Week: &week})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	goalOfObjective := make(map[string]string, len(objectives))
	for _, o := range objectives {
		goalOfObjective[o.ID] = o.GoalID
	}

	goalOfHabit := make(map[string]string, len(habits))
	for _, h := range habits {
		if h.ObjectiveID == nil {
			continue
		}
		if goalID, ok := goalOfObjective[*h.ObjectiveID]; ok {
			goalOfHabit[h.ID] = goalID
		}
	}

	total := 0
	points := make(map[string]int, len(goals))
	for _, e := range efforts {
		total += e.Level
		if goalID, ok := goalOfHabit[e.HabitID]; ok {
			points[goalID] += e.Level
		}
	}

	stats := &domain.GoalWeeklyStatistics{
		TotalEffortPoints: total,
		Goals:             make([]domain.GoalWeeklyPoints, 0, len(goals)),
	}
	for _, goal := range goals {
		stats.Goals = append(stats.Goals, domain.GoalWeeklyPoints{
			ID:              goal.ID,
			Name:            goal.Name,
			TotalPoints:     points[goal.ID],
			TotalPercentage: domain.Round2(domain.Percentage(points[goal.ID], total)),
		})
	}

	return stats, nil
}
