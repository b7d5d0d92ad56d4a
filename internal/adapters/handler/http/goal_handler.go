package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-goals/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/kanso-goals/internal/core/services"
)

// GoalHandler serves both goals and the quarterly objectives under them.
type GoalHandler struct {
	svc   *services.GoalService
	clock Clock
}

func NewGoalHandler(svc *services.GoalService, clock Clock) *GoalHandler {
	if clock == nil {
		clock = systemClock
	}
	return &GoalHandler{
		svc:   svc,
		clock: clock,
	}
}

type goalRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Year        int    `json:"year"`
}

type objectiveRequest struct {
	GoalID  string `json:"goal_id" binding:"required"`
	Name    string `json:"name" binding:"required"`
	Quarter int    `json:"quarter"`
	Year    int    `json:"year"`
}

func (h *GoalHandler) yearOr(year int) int {
	if year != 0 {
		return year
	}
	y, _ := isoNow(h.clock)
	return y
}

func (h *GoalHandler) RegisterRoutes(router *gin.RouterGroup) {
	goals := router.Group("/goals")
	{
		goals.POST("", h.CreateGoal)
		goals.GET("", h.ListGoals)
		goals.GET("/:id", h.GetGoal)
		goals.PUT("/:id", h.UpdateGoal)
		goals.DELETE("/:id", h.DeleteGoal)
	}

	objectives := router.Group("/objectives")
	{
		objectives.POST("", h.CreateObjective)
		objectives.GET("", h.ListObjectives)
		objectives.GET("/:id", h.GetObjective)
		objectives.PUT("/:id", h.UpdateObjective)
		objectives.DELETE("/:id", h.DeleteObjective)
	}
}

func (h *GoalHandler) CreateGoal(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	var req goalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	goal, err := h.svc.CreateGoal(c.Request.Context(), services.GoalInput{
		UserID:      userID,
		Name:        req.Name,
		Description: req.Description,
		Year:        h.yearOr(req.Year),
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, goal)
}

func (h *GoalHandler) ListGoals(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	goals, err := h.svc.ListGoals(c.Request.Context(), userID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, goals)
}

func (h *GoalHandler) GetGoal(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	goal, err := h.svc.GetGoal(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, goal)
}

func (h *GoalHandler) UpdateGoal(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	var req goalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	goal, err := h.svc.UpdateGoal(c.Request.Context(), services.GoalInput{
		ID:          c.Param("id"),
		UserID:      userID,
		Name:        req.Name,
		Description: req.Description,
		Year:        h.yearOr(req.Year),
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, goal)
}

func (h *GoalHandler) DeleteGoal(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	if err := h.svc.DeleteGoal(c.Request.Context(), c.Param("id"), userID); err != nil {
		handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *GoalHandler) CreateObjective(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	var req objectiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	objective, err := h.svc.CreateObjective(c.Request.Context(), services.ObjectiveInput{
		UserID:  userID,
		GoalID:  req.GoalID,
		Name:    req.Name,
		Quarter: req.Quarter,
		Year:    h.yearOr(req.Year),
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, objective)
}

func (h *GoalHandler) ListObjectives(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	objectives, err := h.svc.ListObjectives(c.Request.Context(), userID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, objectives)
}

func (h *GoalHandler) GetObjective(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	objective, err := h.svc.GetObjective(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, objective)
}

func (h *GoalHandler) UpdateObjective(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	var req objectiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	objective, err := h.svc.UpdateObjective(c.Request.Context(), services.ObjectiveInput{
		ID:      c.Param("id"),
		UserID:  userID,
		GoalID:  req.GoalID,
		Name:    req.Name,
		Quarter: req.Quarter,
		Year:    h.yearOr(req.Year),
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, objective)
}

func (h *GoalHandler) DeleteObjective(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	if err := h.svc.DeleteObjective(c.Request.Context(), c.Param("id"), userID); err != nil {
		handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
