package domain

import "math"

type CompletionReport struct {
	CompletionPercentage float64 `json:"completion_percentage"`
}

type WeeklyCompletion struct {
	Week                 int     `json:"week"`
	CompletionPercentage float64 `json:"completion_percentage"`
	Difference           float64 `json:"difference"`
}

type WeeklyPerformance struct {
	Week                  int     `json:"week"`
	PerformancePercentage float64 `json:"performance_percentage"`
}

type HabitPerformanceReport struct {
	PerformanceData              []WeeklyPerformance `json:"performance_data"`
	AveragePerformancePercentage float64             `json:"average_performance_percentage"`
}

type HabitContribution struct {
	Habit                  *Habit  `json:"habit"`
	PerformancePercentage  float64 `json:"performance_percentage"`
	ContributionPercentage float64 `json:"contribution_percentage"`
}

// GoalWeeklyPoints is one goal's slice of a week's logged effort.
type GoalWeeklyPoints struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	TotalPoints     int     `json:"total_points"`
	TotalPercentage float64 `json:"total_percentage"`
}

type GoalWeeklyStatistics struct {
	TotalEffortPoints int                `json:"total_effort_points"`
	Goals             []GoalWeeklyPoints `json:"goals"`
}

// Percentage returns part/whole*100, or 0 when whole is not positive.
// The result is not capped.
func Percentage(part, whole int) float64 {
	if whole <= 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}

// Round2 rounds half away from zero to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
