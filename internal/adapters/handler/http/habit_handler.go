package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-goals/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/kanso-goals/internal/core/domain"
	"github.com/comitanigiacomo/kanso-goals/internal/core/services"
)

type HabitHandler struct {
	svc   *services.HabitService
	clock Clock
}

func NewHabitHandler(svc *services.HabitService, clock Clock) *HabitHandler {
	if clock == nil {
		clock = systemClock
	}
	return &HabitHandler{
		svc:   svc,
		clock: clock,
	}
}

type habitRequest struct {
	Name           string  `json:"name" binding:"required"`
	ObjectiveID    *string `json:"objective_id"`
	StartingWeek   int     `json:"starting_week"`
	EndingWeek     *int    `json:"ending_week"`
	ExpectedEffort int     `json:"expected_effort"`
	Year           int     `json:"year"`
	Color          string  `json:"color"`
}

// habitResponse adds the status derived from the current ISO week.
type habitResponse struct {
	*domain.Habit
	Status string `json:"status"`
}

func (h *HabitHandler) params(req habitRequest) domain.HabitParams {
	year := req.Year
	if year == 0 {
		year, _ = isoNow(h.clock)
	}
	return domain.HabitParams{
		Name:           req.Name,
		ObjectiveID:    req.ObjectiveID,
		StartingWeek:   req.StartingWeek,
		EndingWeek:     req.EndingWeek,
		ExpectedEffort: req.ExpectedEffort,
		Year:           year,
		Color:          req.Color,
	}
}

func (h *HabitHandler) respond(habit *domain.Habit) habitResponse {
	_, week := isoNow(h.clock)
	return habitResponse{Habit: habit, Status: habit.Status(week)}
}

func (h *HabitHandler) RegisterRoutes(router *gin.RouterGroup) {
	habits := router.Group("/habits")
	{
		habits.POST("", h.Create)
		habits.GET("", h.List)
		habits.GET("/:id", h.Get)
		habits.PUT("/:id", h.Update)
		habits.DELETE("/:id", h.Delete)
	}
}

func (h *HabitHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	var req habitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	habit, err := h.svc.Create(c.Request.Context(), services.CreateHabitInput{
		UserID:      userID,
		HabitParams: h.params(req),
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, h.respond(habit))
}

func (h *HabitHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	year, err := optionalInt(c, "year")
	if err != nil {
		badRequest(c, err)
		return
	}

	list, err := h.svc.ListByUserID(c.Request.Context(), userID, domain.HabitFilter{Year: year})
	if err != nil {
		handleError(c, err)
		return
	}

	resp := make([]habitResponse, 0, len(list))
	for _, habit := range list {
		resp = append(resp, h.respond(habit))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *HabitHandler) Get(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	habit, err := h.svc.GetByID(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.respond(habit))
}

func (h *HabitHandler) Update(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	var req habitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	habit, err := h.svc.Update(c.Request.Context(), services.UpdateHabitInput{
		ID:          c.Param("id"),
		UserID:      userID,
		HabitParams: h.params(req),
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.respond(habit))
}

func (h *HabitHandler) Delete(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	if err := h.svc.Delete(c.Request.Context(), c.Param("id"), userID); err != nil {
		handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
