package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/kanso-goals/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/kanso-goals/internal/core/domain"
	"github.com/comitanigiacomo/kanso-goals/internal/core/services"
)

type SupportHandler struct {
	svc   *services.SupportService
	users middleware.UserLookup
	clock Clock
}

func NewSupportHandler(svc *services.SupportService, users middleware.UserLookup, clock Clock) *SupportHandler {
	if clock == nil {
		clock = systemClock
	}
	return &SupportHandler{
		svc:   svc,
		users: users,
		clock: clock,
	}
}

type ticketRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content"`
}

type ticketStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type announcementRequest struct {
	Title        string    `json:"title" binding:"required"`
	Content      string    `json:"content"`
	Type         string    `json:"type" binding:"required"`
	StartingDate time.Time `json:"starting_date" binding:"required"`
	EndDate      time.Time `json:"end_date" binding:"required"`
}

type featureRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

type announcementResponse struct {
	*domain.Announcement
	Status string `json:"status"`
}

func (h *SupportHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/announcements", h.ListAnnouncements)
	router.GET("/features", h.ListFeatures)
	router.POST("/tickets", h.OpenTicket)

	staff := router.Group("")
	staff.Use(middleware.RequireStaff(h.users))
	{
		staff.POST("/announcements", h.PublishAnnouncement)
		staff.POST("/features", h.PublishFeature)
		staff.GET("/tickets", h.ListTickets)
		staff.PUT("/tickets/:id/status", h.SetTicketStatus)
	}
}

func (h *SupportHandler) ListAnnouncements(c *gin.Context) {
	list, err := h.svc.ListAnnouncements(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}

	now := h.clock()
	resp := make([]announcementResponse, 0, len(list))
	for _, a := range list {
		resp = append(resp, announcementResponse{Announcement: a, Status: a.Status(now)})
	}
	c.JSON(http.StatusOK, resp)
}

func (h *SupportHandler) PublishAnnouncement(c *gin.Context) {
	var req announcementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	a, err := h.svc.PublishAnnouncement(c.Request.Context(), services.AnnouncementInput{
		Title:        req.Title,
		Content:      req.Content,
		Type:         req.Type,
		StartingDate: req.StartingDate,
		EndDate:      req.EndDate,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, announcementResponse{Announcement: a, Status: a.Status(h.clock())})
}

func (h *SupportHandler) ListFeatures(c *gin.Context) {
	list, err := h.svc.ListFeatures(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *SupportHandler) PublishFeature(c *gin.Context) {
	var req featureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	f, err := h.svc.PublishFeature(c.Request.Context(), req.Title, req.Description)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, f)
}

// OpenTicket files a web ticket on behalf of the caller, using their
// account email as sender.
func (h *SupportHandler) OpenTicket(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	var req ticketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), userID)
	if err != nil {
		handleError(c, err)
		return
	}

	ticket, err := h.svc.OpenTicket(c.Request.Context(), services.TicketInput{
		Title:   req.Title,
		Content: req.Content,
		Sender:  user.Email,
		Type:    domain.TicketTypeWeb,
	})
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ticket)
}

func (h *SupportHandler) ListTickets(c *gin.Context) {
	list, err := h.svc.ListTickets(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *SupportHandler) SetTicketStatus(c *gin.Context) {
	var req ticketStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	ticket, err := h.svc.SetTicketStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, ticket)
}
