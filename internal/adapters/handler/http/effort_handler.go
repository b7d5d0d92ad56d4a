package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-goals/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/kanso-goals/internal/core/domain"
	"github.com/comitanigiacomo/kanso-goals/internal/core/services"
)

type EffortHandler struct {
	svc   *services.EffortService
	clock Clock
}

func NewEffortHandler(svc *services.EffortService, clock Clock) *EffortHandler {
	if clock == nil {
		clock = systemClock
	}
	return &EffortHandler{
		svc:   svc,
		clock: clock,
	}
}

type createEffortRequest struct {
	HabitID string `json:"habit_id" binding:"required"`
	Week    *int   `json:"week"`
	Level   int    `json:"level"`
	Year    int    `json:"year"`
}

type updateEffortRequest struct {
	Level int `json:"level"`
}

// effortResponse nests the owning habit in place of its id.
type effortResponse struct {
	ID        string        `json:"id"`
	Habit     habitResponse `json:"habit"`
	Week      int           `json:"week"`
	Level     int           `json:"level"`
	Year      int           `json:"year"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

func (h *EffortHandler) respond(c *gin.Context, e *domain.Effort) (effortResponse, error) {
	habit, err := h.svc.HabitFor(c.Request.Context(), e)
	if err != nil {
		return effortResponse{}, err
	}
	_, week := isoNow(h.clock)
	return newEffortResponse(e, habit, week), nil
}

func newEffortResponse(e *domain.Effort, habit *domain.Habit, week int) effortResponse {
	return effortResponse{
		ID:        e.ID,
		Habit:     habitResponse{Habit: habit, Status: habit.Status(week)},
		Week:      e.Week,
		Level:     e.Level,
		Year:      e.Year,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func (h *EffortHandler) RegisterRoutes(router *gin.RouterGroup) {
	efforts := router.Group("/efforts")
	{
		efforts.POST("", h.Create)
		efforts.GET("", h.List)
		efforts.GET("/:id", h.Get)
		efforts.PUT("/:id", h.Update)
		efforts.DELETE("/:id", h.Delete)
	}
}

func (h *EffortHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	var req createEffortRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	week := 0
	if req.Week != nil {
		week = *req.Week
	} else {
		_, week = isoNow(h.clock)
	}

	effort, err := h.svc.Create(c.Request.Context(), services.CreateEffortInput{
		HabitID: req.HabitID,
		UserID:  userID,
		Week:    week,
		Level:   req.Level,
		Year:    req.Year,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	resp, err := h.respond(c, effort)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *EffortHandler) List(c *gin.Context) {
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
	week, err := optionalInt(c, "week")
	if err != nil {
		badRequest(c, err)
		return
	}

	list, err := h.svc.ListByUserID(c.Request.Context(), userID, domain.EffortFilter{
		Year:    year,
		Week:    week,
		HabitID: c.Query("habit_id"),
	})
	if err != nil {
		handleError(c, err)
		return
	}

	habits, err := h.svc.HabitsFor(c.Request.Context(), userID, list)
	if err != nil {
		handleError(c, err)
		return
	}

	_, currentWeek := isoNow(h.clock)
	resp := make([]effortResponse, 0, len(list))
	for _, e := range list {
		resp = append(resp, newEffortResponse(e, habits[e.HabitID], currentWeek))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *EffortHandler) Get(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	effort, err := h.svc.GetByID(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		handleError(c, err)
		return
	}

	resp, err := h.respond(c, effort)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *EffortHandler) Update(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	var req updateEffortRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	effort, err := h.svc.Update(c.Request.Context(), services.UpdateEffortInput{
		ID:     c.Param("id"),
		UserID: userID,
		Level:  req.Level,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	resp, err := h.respond(c, effort)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *EffortHandler) Delete(c *gin.Context) {
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
