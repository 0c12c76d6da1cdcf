package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Domenick1991/rente/internal/domain"
	"github.com/Domenick1991/rente/internal/service/users"
	"github.com/Domenick1991/rente/internal/token"
)

type MockUserUseCase struct {
	mock.Mock
}

func (m *MockUserUseCase) Register(ctx context.Context, input users.RegisterInput) (*domain.User, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserUseCase) Login(ctx context.Context, username, password string) (*domain.User, *token.Pair, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.User), args.Get(1).(*token.Pair), args.Error(2)
}

func (m *MockUserUseCase) Logout(ctx context.Context, actor *domain.User) error {
	args := m.Called(ctx, actor)
	return args.Error(0)
}

func (m *MockUserUseCase) Refresh(ctx context.Context, refreshToken string) (*token.Pair, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*token.Pair), args.Error(1)
}

func (m *MockUserUseCase) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserUseCase) List(ctx context.Context, actor *domain.User) ([]domain.User, error) {
	args := m.Called(ctx, actor)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func testPair() *token.Pair {
	return &token.Pair{
		Access:         "access-token",
		Refresh:        "refresh-token",
		AccessExpires:  time.Now().Add(15 * time.Minute),
		RefreshExpires: time.Now().Add(24 * time.Hour),
	}
}

func TestAuthHandler_register(t *testing.T) {
	mockService := &MockUserUseCase{}
	handler := NewAuthHandler(mockService, false)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	input := users.RegisterInput{
		Username:  "anna",
		Email:     "anna@example.com",
		Password:  "supersecret",
		Password2: "supersecret",
		Role:      domain.RoleLandlord,
	}
	body, _ := json.Marshal(input)
	c.Request = httptest.NewRequest("POST", "/api/auth/register", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	created := &domain.User{ID: 1, Username: "anna", Email: "anna@example.com", Role: domain.RoleLandlord}
	mockService.On("Register", c.Request.Context(), input).Return(created, nil)

	handler.register(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"username":"anna"`)
	assert.NotContains(t, w.Body.String(), "supersecret")
	mockService.AssertExpectations(t)
}

func TestAuthHandler_registerPasswordMismatch(t *testing.T) {
	mockService := &MockUserUseCase{}
	handler := NewAuthHandler(mockService, false)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	input := users.RegisterInput{Username: "anna", Password: "one", Password2: "two"}
	body, _ := json.Marshal(input)
	c.Request = httptest.NewRequest("POST", "/api/auth/register", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	mockService.On("Register", c.Request.Context(), input).
		Return(nil, domain.NewValidationError("password", "passwords do not match"))

	handler.register(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "passwords do not match")
}

func TestAuthHandler_loginSetsCookies(t *testing.T) {
	mockService := &MockUserUseCase{}
	handler := NewAuthHandler(mockService, false)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body, _ := json.Marshal(loginRequest{Username: "anna", Password: "supersecret"})
	c.Request = httptest.NewRequest("POST", "/api/login", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	user := &domain.User{ID: 1, Username: "anna", Role: domain.RoleLandlord}
	mockService.On("Login", c.Request.Context(), "anna", "supersecret").Return(user, testPair(), nil)

	handler.login(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "logged in as anna")

	cookies := w.Header().Values("Set-Cookie")
	joined := strings.Join(cookies, "; ")
	assert.Contains(t, joined, "access_token=access-token")
	assert.Contains(t, joined, "refresh_token=refresh-token")
	assert.Contains(t, joined, "HttpOnly")
}

func TestAuthHandler_loginWrongPassword(t *testing.T) {
	mockService := &MockUserUseCase{}
	handler := NewAuthHandler(mockService, false)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body, _ := json.Marshal(loginRequest{Username: "anna", Password: "wrong"})
	c.Request = httptest.NewRequest("POST", "/api/login", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	mockService.On("Login", c.Request.Context(), "anna", "wrong").
		Return(nil, nil, users.ErrInvalidCredentials)

	handler.login(c)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_loginMissingFields(t *testing.T) {
	mockService := &MockUserUseCase{}
	handler := NewAuthHandler(mockService, false)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body, _ := json.Marshal(loginRequest{Username: "anna"})
	c.Request = httptest.NewRequest("POST", "/api/login", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.login(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "Login", mock.Anything, mock.Anything, mock.Anything)
}

func TestAuthHandler_listUsersForbiddenForTenant(t *testing.T) {
	mockService := &MockUserUseCase{}
	handler := NewAuthHandler(mockService, false)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Request = httptest.NewRequest("GET", "/api/users", nil)
	c.Set(userContextKey, testTenant())

	mockService.On("List", c.Request.Context(), testTenant()).
		Return(nil, domain.AccessDenied("admin role required"))

	handler.listUsers(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "admin role required")
}

func TestAuthHandler_listUsers(t *testing.T) {
	mockService := &MockUserUseCase{}
	handler := NewAuthHandler(mockService, false)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	admin := &domain.User{ID: 9, Username: "root", Role: domain.RoleAdmin}
	c.Request = httptest.NewRequest("GET", "/api/users", nil)
	c.Set(userContextKey, admin)

	mockService.On("List", c.Request.Context(), admin).Return([]domain.User{
		{ID: 1, Username: "anna", Role: domain.RoleLandlord},
		{ID: 2, Username: "boris", Role: domain.RoleTenant},
	}, nil)

	handler.listUsers(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"username":"anna"`)
	assert.Contains(t, w.Body.String(), `"username":"boris"`)
}
