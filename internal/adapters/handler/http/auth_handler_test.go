package http

import (
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

func setupAuthHandler() (*gin.Engine, *MockUserRepository, *services.TokenService) {
	router, group := newTestEngine()

	mockRepo := new(MockUserRepository)
	tokens := services.NewTokenService("handler-secret", "kanso-goals", time.Hour, mockRepo)
	handler := NewAuthHandler(services.NewAuthService(mockRepo), tokens)

	handler.RegisterRoutes(router.Group("/api/v1"))
	handler.RegisterProtectedRoutes(group)

	return router, mockRepo, tokens
}

func userWithPassword(t *testing.T, id, email, password string) *domain.User {
	t.Helper()
	u, err := domain.NewUser(id, email, "Ada", "Lovelace")
	require.NoError(t, err)
	require.NoError(t, u.SetPassword(password))
	return u
}

func TestAuthHandler_Register(t *testing.T) {
	t.Run("Success: 201 with user and token", func(t *testing.T) {
		router, mockRepo, tokens := setupAuthHandler()
		mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil)

		w := doRequest(t, router, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
			"email":      "api_test@kanso.app",
			"password":   "PasswordSuperSegreta1!",
			"first_name": "Ada",
			"last_name":  "Lovelace",
		})

		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		assert.NotContains(t, w.Body.String(), "password")

		body := decode[struct {
			User  domain.User `json:"user"`
			Token string      `json:"token"`
		}](t, w)
		assert.Equal(t, "api_test@kanso.app", body.User.Email)
		assert.Equal(t, "Ada", body.User.FirstName)
		assert.NotEmpty(t, body.User.ID)

		mockRepo.On("GetByID", mock.Anything, body.User.ID).Return(&body.User, nil)
		userID, err := tokens.ValidateToken(t.Context(), body.Token)
		require.NoError(t, err)
		assert.Equal(t, body.User.ID, userID)
	})

	t.Run("Fail: 409 email taken", func(t *testing.T) {
		router, mockRepo, _ := setupAuthHandler()
		mockRepo.On("Create", mock.Anything, mock.Anything).Return(domain.ErrEmailAlreadyExists)

		w := doRequest(t, router, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
			"email":    "taken@kanso.app",
			"password": "longenough",
		})
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("Fail: 400 short password", func(t *testing.T) {
		router, mockRepo, _ := setupAuthHandler()

		w := doRequest(t, router, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
			"email":    "short@kanso.app",
			"password": "short",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestAuthHandler_Login(t *testing.T) {
	user := userWithPassword(t, "u1", "ada@kanso.app", "correct-horse")

	t.Run("Success: returns a token", func(t *testing.T) {
		router, mockRepo, _ := setupAuthHandler()
		mockRepo.On("GetByEmail", mock.Anything, "ada@kanso.app").Return(user, nil)

		w := doRequest(t, router, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
			"email":    "Ada@Kanso.app",
			"password": "correct-horse",
		})

		require.Equal(t, http.StatusOK, w.Code)
		assert.NotEmpty(t, decode[map[string]string](t, w)["token"])
	})

	t.Run("Fail: 400 wrong password", func(t *testing.T) {
		router, mockRepo, _ := setupAuthHandler()
		mockRepo.On("GetByEmail", mock.Anything, "ada@kanso.app").Return(user, nil)

		w := doRequest(t, router, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
			"email":    "ada@kanso.app",
			"password": "wrong-horse",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"wrong credentials"}`, w.Body.String())
	})

	t.Run("Fail: 400 unknown email", func(t *testing.T) {
		router, mockRepo, _ := setupAuthHandler()
		mockRepo.On("GetByEmail", mock.Anything, "ghost@kanso.app").Return(nil, domain.ErrUserNotFound)

		w := doRequest(t, router, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
			"email":    "ghost@kanso.app",
			"password": "whatever1",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"wrong credentials"}`, w.Body.String())
	})
}

func TestAuthHandler_Profile(t *testing.T) {
	t.Run("Me returns the caller", func(t *testing.T) {
		router, mockRepo, _ := setupAuthHandler()
		user := userWithPassword(t, "u1", "ada@kanso.app", "correct-horse")
		mockRepo.On("GetByID", mock.Anything, "u1").Return(user, nil)

		w := doRequest(t, router, http.MethodGet, "/api/v1/users/me", "u1", nil)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "ada@kanso.app", decode[domain.User](t, w).Email)
	})

	t.Run("Update with wrong old password is rejected", func(t *testing.T) {
		router, mockRepo, _ := setupAuthHandler()
		user := userWithPassword(t, "u1", "ada@kanso.app", "correct-horse")
		mockRepo.On("GetByID", mock.Anything, "u1").Return(user, nil)

		w := doRequest(t, router, http.MethodPut, "/api/v1/users/me", "u1", map[string]string{
			"old_password": "nope-nope",
			"password":     "brand-new-pass",
		})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("Update changes the profile", func(t *testing.T) {
		router, mockRepo, _ := setupAuthHandler()
		user := userWithPassword(t, "u1", "ada@kanso.app", "correct-horse")
		mockRepo.On("GetByID", mock.Anything, "u1").Return(user, nil)
		mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil)

		w := doRequest(t, router, http.MethodPut, "/api/v1/users/me", "u1", map[string]string{
			"first_name": "Augusta",
		})

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, "Augusta", decode[domain.User](t, w).FirstName)
	})
}
