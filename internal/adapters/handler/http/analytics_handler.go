package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-goals/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/kanso-goals/internal/core/services"
)

type AnalyticsHandler struct {
	svc   services.Analytics
	clock Clock
}

func NewAnalyticsHandler(svc services.Analytics, clock Clock) *AnalyticsHandler {
	if clock == nil {
		clock = systemClock
	}
	return &AnalyticsHandler{
		svc:   svc,
		clock: clock,
	}
}

func (h *AnalyticsHandler) RegisterRoutes(router *gin.RouterGroup) {
	analytics := router.Group("/analytics")
	{
		analytics.GET("/completion/recent", h.RecentCompletions)
		analytics.GET("/completion/:week", h.Completion)
		analytics.GET("/habits/:id/performance", h.HabitPerformance)
		analytics.GET("/yearly", h.YearlyPerformance)
		analytics.GET("/goals/week/:week", h.GoalWeeklyStatistics)
	}
}

// contributionResponse is a ranking row whose habit carries its status like
// every other habit the API returns.
type contributionResponse struct {
	Habit                  habitResponse `json:"habit"`
	PerformancePercentage  float64       `json:"performance_percentage"`
	ContributionPercentage float64       `json:"contribution_percentage"`
}

// Completion godoc
// @Summary      Weekly completion
// @Description  Share of the expected effort logged in the given week.
// @Tags         analytics
// @Produce      json
// @Param        week  path      int  true  "ISO week number"
// @Success      200   {object}  domain.CompletionReport
// @Failure      400   {object}  map[string]string
// @Security     BearerAuth
// @Router       /analytics/completion/{week} [get]
func (h *AnalyticsHandler) Completion(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	week, err := strconv.Atoi(c.Param("week"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "week must be an integer"})
		return
	}

	report, err := h.svc.CompletionReport(c.Request.Context(), userID, week)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// RecentCompletions godoc
// @Summary      Recent completion trend
// @Description  Completion of the current ISO week and the four before it, oldest first.
// @Tags         analytics
// @Produce      json
// @Success      200  {array}  domain.WeeklyCompletion
// @Security     BearerAuth
// @Router       /analytics/completion/recent [get]
func (h *AnalyticsHandler) RecentCompletions(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	_, week := isoNow(h.clock)

	points, err := h.svc.RecentCompletions(c.Request.Context(), userID, week)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, points)
}

// HabitPerformance godoc
// @Summary      Habit performance
// @Description  Per-effort performance of one habit and its average.
// @Tags         analytics
// @Produce      json
// @Param        id   path      string  true  "Habit ID"
// @Success      200  {object}  domain.HabitPerformanceReport
// @Failure      404  {object}  map[string]string
// @Security     BearerAuth
// @Router       /analytics/habits/{id}/performance [get]
func (h *AnalyticsHandler) HabitPerformance(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	report, err := h.svc.HabitPerformance(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// YearlyPerformance godoc
// @Summary      Yearly ranking
// @Description  Habits of the current year ranked by their share of the delivered effort.
// @Tags         analytics
// @Produce      json
// @Success      200  {array}  contributionResponse
// @Security     BearerAuth
// @Router       /analytics/yearly [get]
func (h *AnalyticsHandler) YearlyPerformance(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	year, week := isoNow(h.clock)

	ranking, err := h.svc.YearlyPerformance(c.Request.Context(), userID, year, week)
	if err != nil {
		handleError(c, err)
		return
	}

	resp := make([]contributionResponse, 0, len(ranking))
	for _, r := range ranking {
		resp = append(resp, contributionResponse{
			Habit:                  habitResponse{Habit: r.Habit, Status: r.Habit.Status(week)},
			PerformancePercentage:  r.PerformancePercentage,
			ContributionPercentage: r.ContributionPercentage,
		})
	}

	c.JSON(http.StatusOK, resp)
}

// GoalWeeklyStatistics godoc
// @Summary      Weekly effort per goal
// @Description  Effort points logged in the given week per goal and their share of the week's total.
// @Tags         analytics
// @Produce      json
// @Param        week  path      int  true  "ISO week number"
// @Success      200   {object}  domain.GoalWeeklyStatistics
// @Failure      400   {object}  map[string]string
// @Security     BearerAuth
// @Router       /analytics/goals/week/{week} [get]
func (h *AnalyticsHandler) GoalWeeklyStatistics(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	week, err := strconv.Atoi(c.Param("week"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "week must be an integer"})
		return
	}

	stats, err := h.svc.GoalWeeklyStatistics(c.Request.Context(), userID, week)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}
