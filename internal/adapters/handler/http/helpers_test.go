package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-goals/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/kanso-goals/internal/adapters/repository"
	"github.com/comitanigiacomo/kanso-goals/internal/core/domain"
	"github.com/comitanigiacomo/kanso-goals/internal/core/services"
)

// fixedClock pins "now" to Wednesday of ISO week 11, 2024.
func fixedClock() time.Time {
	return time.Date(2024, time.March, 13, 12, 0, 0, 0, time.UTC)
}

// withTestUser stands in for AuthMiddleware: the caller id comes from the
// X-User-ID header and an absent header is rejected.
func withTestUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader("X-User-ID")
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization header required"})
			return
		}
		c.Set(middleware.ContextUserIDKey, userID)
		c.Next()
	}
}

func newTestEngine() (*gin.Engine, *gin.RouterGroup) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	group := r.Group("/api/v1")
	group.Use(withTestUser())
	return r, group
}

func doRequest(t *testing.T, router http.Handler, method, path, userID string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

// trackerFixture wires the habit, effort and analytics handlers over the
// in-memory stores.
type trackerFixture struct {
	router  *gin.Engine
	habits  *repository.InMemoryHabitRepository
	efforts *repository.InMemoryEffortRepository
}

func newTrackerFixture() *trackerFixture {
	router, group := newTestEngine()

	efforts := repository.NewInMemoryEffortRepository()
	habits := repository.NewInMemoryHabitRepository(efforts)

	NewHabitHandler(services.NewHabitService(habits, nil), fixedClock).RegisterRoutes(group)
	NewEffortHandler(services.NewEffortService(efforts, habits, nil), fixedClock).RegisterRoutes(group)
	NewAnalyticsHandler(services.NewAnalyticsService(habits, efforts, nil, nil), fixedClock).RegisterRoutes(group)

	return &trackerFixture{router: router, habits: habits, efforts: efforts}
}

func (f *trackerFixture) seedHabit(t *testing.T, userID, name string, startingWeek, expected int) *domain.Habit {
	t.Helper()
	h, err := domain.NewHabit(userID, domain.HabitParams{
		Name:           name,
		StartingWeek:   startingWeek,
		ExpectedEffort: expected,
		Year:           2024,
	})
	require.NoError(t, err)
	require.NoError(t, f.habits.Create(context.Background(), h))
	return h
}

func (f *trackerFixture) seedEffort(t *testing.T, h *domain.Habit, week, level int) *domain.Effort {
	t.Helper()
	e := domain.NewEffort(h.ID, h.UserID, week, level, h.Year)
	require.NoError(t, f.efforts.Create(context.Background(), e))
	return e
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}
