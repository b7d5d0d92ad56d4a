package http

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-goals/internal/core/domain"
	"github.com/comitanigiacomo/kanso-goals/internal/core/services"
)

type MockSupportRepository struct {
	mock.Mock
}

func (m *MockSupportRepository) CreateTicket(ctx context.Context, t *domain.Ticket) error {
	return m.Called(ctx, t).Error(0)
}

func (m *MockSupportRepository) GetTicket(ctx context.Context, id string) (*domain.Ticket, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ticket), args.Error(1)
}

func (m *MockSupportRepository) ListTickets(ctx context.Context) ([]*domain.Ticket, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*domain.Ticket), args.Error(1)
}

func (m *MockSupportRepository) UpdateTicket(ctx context.Context, t *domain.Ticket) error {
	return m.Called(ctx, t).Error(0)
}

func (m *MockSupportRepository) CreateAnnouncement(ctx context.Context, a *domain.Announcement) error {
	return m.Called(ctx, a).Error(0)
}

func (m *MockSupportRepository) ListAnnouncements(ctx context.Context) ([]*domain.Announcement, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*domain.Announcement), args.Error(1)
}

func (m *MockSupportRepository) CreateFeature(ctx context.Context, f *domain.Feature) error {
	return m.Called(ctx, f).Error(0)
}

func (m *MockSupportRepository) ListFeatures(ctx context.Context) ([]*domain.Feature, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*domain.Feature), args.Error(1)
}

func setupSupportHandler() (*gin.Engine, *MockSupportRepository, *MockUserRepository) {
	router, group := newTestEngine()

	repo := new(MockSupportRepository)
	users := new(MockUserRepository)
	users.On("GetByID", mock.Anything, "staff").Return(&domain.User{ID: "staff", Email: "staff@kanso.app", IsStaff: true}, nil)
	users.On("GetByID", mock.Anything, "member").Return(&domain.User{ID: "member", Email: "member@kanso.app"}, nil)

	NewSupportHandler(services.NewSupportService(repo), users, fixedClock).RegisterRoutes(group)

	return router, repo, users
}

func TestSupportHandler_Announcements(t *testing.T) {
	router, repo, _ := setupSupportHandler()

	live := &domain.Announcement{ID: "a1", Title: "Maintenance", Type: domain.AnnouncementInfo,
		StartingDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2024, 3, 20, 0, 0, 0, 0, time.UTC)}
	expired := &domain.Announcement{ID: "a2", Title: "Launch", Type: domain.AnnouncementAlert,
		StartingDate: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2024, 3, 13, 0, 0, 0, 0, time.UTC)}
	repo.On("ListAnnouncements", mock.Anything).Return([]*domain.Announcement{live, expired}, nil)

	w := doRequest(t, router, http.MethodGet, "/api/v1/announcements", "member", nil)
	require.Equal(t, http.StatusOK, w.Code)

	list := decode[[]map[string]interface{}](t, w)
	require.Len(t, list, 2)
	assert.Equal(t, domain.AnnouncementOn, list[0]["status"])
	assert.Equal(t, domain.AnnouncementOff, list[1]["status"])
}

func TestSupportHandler_StaffOnly(t *testing.T) {
	announcement := map[string]interface{}{
		"title":         "Maintenance",
		"type":          domain.AnnouncementWarning,
		"starting_date": "2024-03-13T00:00:00Z",
		"end_date":      "2024-03-15T00:00:00Z",
	}

	t.Run("Member is forbidden", func(t *testing.T) {
		router, repo, _ := setupSupportHandler()

		w := doRequest(t, router, http.MethodPost, "/api/v1/announcements", "member", announcement)
		assert.Equal(t, http.StatusForbidden, w.Code)

		w = doRequest(t, router, http.MethodGet, "/api/v1/tickets", "member", nil)
		assert.Equal(t, http.StatusForbidden, w.Code)

		repo.AssertNotCalled(t, "CreateAnnouncement", mock.Anything, mock.Anything)
	})

	t.Run("Staff publishes an announcement", func(t *testing.T) {
		router, repo, _ := setupSupportHandler()
		repo.On("CreateAnnouncement", mock.Anything, mock.AnythingOfType("*domain.Announcement")).Return(nil)

		w := doRequest(t, router, http.MethodPost, "/api/v1/announcements", "staff", announcement)

		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		assert.Equal(t, domain.AnnouncementOn, decode[map[string]interface{}](t, w)["status"])
	})

	t.Run("Staff cannot publish an inverted range", func(t *testing.T) {
		router, _, _ := setupSupportHandler()

		w := doRequest(t, router, http.MethodPost, "/api/v1/announcements", "staff", map[string]interface{}{
			"title":         "Backwards",
			"type":          domain.AnnouncementInfo,
			"starting_date": "2024-03-15T00:00:00Z",
			"end_date":      "2024-03-13T00:00:00Z",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Staff updates a ticket status", func(t *testing.T) {
		router, repo, _ := setupSupportHandler()
		ticket := &domain.Ticket{ID: "t1", Title: "Bug", Status: domain.TicketStatusOpen, Type: domain.TicketTypeWeb}
		repo.On("GetTicket", mock.Anything, "t1").Return(ticket, nil)
		repo.On("UpdateTicket", mock.Anything, ticket).Return(nil)

		w := doRequest(t, router, http.MethodPut, "/api/v1/tickets/t1/status", "staff", `{"status":"resolved"}`)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, domain.TicketStatusResolved, decode[domain.Ticket](t, w).Status)
	})

	t.Run("Unknown ticket is 404", func(t *testing.T) {
		router, repo, _ := setupSupportHandler()
		repo.On("GetTicket", mock.Anything, "nope").Return(nil, domain.ErrTicketNotFound)

		w := doRequest(t, router, http.MethodPut, "/api/v1/tickets/nope/status", "staff", `{"status":"closed"}`)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestSupportHandler_OpenTicket(t *testing.T) {
	router, repo, _ := setupSupportHandler()

	var saved *domain.Ticket
	repo.On("CreateTicket", mock.Anything, mock.AnythingOfType("*domain.Ticket")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*domain.Ticket) }).
		Return(nil)

	w := doRequest(t, router, http.MethodPost, "/api/v1/tickets", "member", `{"title":"Export","content":"CSV please"}`)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	require.NotNil(t, saved)
	assert.Equal(t, "member@kanso.app", saved.Sender)
	assert.Equal(t, domain.TicketTypeWeb, saved.Type)
	assert.Equal(t, domain.TicketStatusOpen, saved.Status)
}

func TestSupportHandler_Features(t *testing.T) {
	router, repo, _ := setupSupportHandler()
	repo.On("ListFeatures", mock.Anything).Return([]*domain.Feature{{ID: "f1", Title: "Dark mode"}}, nil)
	repo.On("CreateFeature", mock.Anything, mock.AnythingOfType("*domain.Feature")).Return(nil)

	w := doRequest(t, router, http.MethodGet, "/api/v1/features", "member", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Dark mode")

	w = doRequest(t, router, http.MethodPost, "/api/v1/features", "member", `{"title":"Widgets"}`)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doRequest(t, router, http.MethodPost, "/api/v1/features", "staff", `{"title":"Widgets"}`)
	assert.Equal(t, http.StatusCreated, w.Code)
}
