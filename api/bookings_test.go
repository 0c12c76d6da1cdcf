package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Domenick1991/rente/internal/domain"
	"github.com/Domenick1991/rente/internal/service/bookings"
)

type MockBookingUseCase struct {
	mock.Mock
}

func (m *MockBookingUseCase) Create(ctx context.Context, actor *domain.User, input bookings.CreateBookingInput) (*domain.Booking, error) {
	args := m.Called(ctx, actor, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) Confirm(ctx context.Context, actor *domain.User, bookingID int64) (*domain.Booking, error) {
	args := m.Called(ctx, actor, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) Cancel(ctx context.Context, actor *domain.User, bookingID int64) (*domain.Booking, error) {
	args := m.Called(ctx, actor, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) List(ctx context.Context, actor *domain.User) ([]domain.Booking, error) {
	args := m.Called(ctx, actor)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func testTenant() *domain.User {
	return &domain.User{ID: 2, Username: "boris", Role: domain.RoleTenant}
}

func testOwner() *domain.User {
	return &domain.User{ID: 1, Username: "anna", Role: domain.RoleLandlord}
}

func TestBookingHandler_create(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body, _ := json.Marshal(createBookingRequest{
		ListingID: 10,
		StartDate: "2026-09-11",
		EndDate:   "2026-09-15",
	})
	c.Request = httptest.NewRequest("POST", "/api/bookings", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set(userContextKey, testTenant())

	booking := &domain.Booking{
		ID:        100,
		ListingID: 10,
		TenantID:  2,
		StartDate: time.Date(2026, 9, 11, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		Status:    domain.BookingStatusPending,
	}
	mockService.On("Create", c.Request.Context(), testTenant(), bookings.CreateBookingInput{
		ListingID: 10,
		StartDate: booking.StartDate,
		EndDate:   booking.EndDate,
	}).Return(booking, nil)

	handler.create(c)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response bookingResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, int64(100), response.ID)
	assert.Equal(t, string(domain.BookingStatusPending), response.Status)
	assert.Equal(t, "2026-09-11", response.StartDate)

	mockService.AssertExpectations(t)
}

func TestBookingHandler_createBadDate(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body, _ := json.Marshal(createBookingRequest{ListingID: 10, StartDate: "next tuesday", EndDate: "2026-09-15"})
	c.Request = httptest.NewRequest("POST", "/api/bookings", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set(userContextKey, testTenant())

	handler.create(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestBookingHandler_confirm(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Params = gin.Params{{Key: "id", Value: "100"}}
	c.Request = httptest.NewRequest("POST", "/api/bookings/100/confirm", nil)
	c.Set(userContextKey, testOwner())

	booking := &domain.Booking{ID: 100, ListingID: 10, TenantID: 2, Status: domain.BookingStatusConfirmed}
	mockService.On("Confirm", c.Request.Context(), testOwner(), int64(100)).Return(booking, nil)

	handler.confirm(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response bookingResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, string(domain.BookingStatusConfirmed), response.Status)

	mockService.AssertExpectations(t)
}

func TestBookingHandler_confirmDenied(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Params = gin.Params{{Key: "id", Value: "100"}}
	c.Request = httptest.NewRequest("POST", "/api/bookings/100/confirm", nil)
	c.Set(userContextKey, testTenant())

	mockService.On("Confirm", c.Request.Context(), testTenant(), int64(100)).Return(nil, domain.AccessDenied("no access"))

	handler.confirm(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "no access")
}

func TestBookingHandler_cancelPastDeadline(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Params = gin.Params{{Key: "id", Value: "100"}}
	c.Request = httptest.NewRequest("POST", "/api/bookings/100/cancel", nil)
	c.Set(userContextKey, testTenant())

	mockService.On("Cancel", c.Request.Context(), testTenant(), int64(100)).
		Return(nil, domain.AccessDenied("cancellation allowed only up to 2 days before check-in"))

	handler.cancel(c)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "cancellation allowed only up to 2 days before check-in")
}

func TestBookingHandler_list(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService)

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	c.Request = httptest.NewRequest("GET", "/api/bookings", nil)
	c.Set(userContextKey, testTenant())

	mockService.On("List", c.Request.Context(), testTenant()).Return([]domain.Booking{
		{ID: 100, ListingID: 10, TenantID: 2, Status: domain.BookingStatusPending},
	}, nil)

	handler.list(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var response []bookingResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Len(t, response, 1)
}
