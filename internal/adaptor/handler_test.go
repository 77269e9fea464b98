package adaptor

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"carwash-marketplace/internal/data/entity"
	"carwash-marketplace/internal/dto/request"
	"carwash-marketplace/internal/dto/response"
	"carwash-marketplace/internal/usecase"
	"carwash-marketplace/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockBookingService struct {
	mock.Mock
}

func (m *mockBookingService) Create(ctx context.Context, customerID uuid.UUID, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	args := m.Called(ctx, customerID, req)
	b, _ := args.Get(0).(*response.BookingResponse)
	return b, args.Error(1)
}

func (m *mockBookingService) List(ctx context.Context, view usecase.BookingView, actor entity.Principal) ([]response.BookingResponse, error) {
	args := m.Called(ctx, view, actor)
	b, _ := args.Get(0).([]response.BookingResponse)
	return b, args.Error(1)
}

func (m *mockBookingService) SetStatus(ctx context.Context, actor entity.Principal, req *request.BookingStatusRequest) (*response.BookingResponse, error) {
	args := m.Called(ctx, actor, req)
	b, _ := args.Get(0).(*response.BookingResponse)
	return b, args.Error(1)
}

func (m *mockBookingService) Assign(ctx context.Context, actor entity.Principal, req *request.AssignTaskRequest) (*response.BookingResponse, error) {
	args := m.Called(ctx, actor, req)
	b, _ := args.Get(0).(*response.BookingResponse)
	return b, args.Error(1)
}

func (m *mockBookingService) Complete(ctx context.Context, actor entity.Principal, req *request.CompleteTaskRequest) (*response.BookingResponse, error) {
	args := m.Called(ctx, actor, req)
	b, _ := args.Get(0).(*response.BookingResponse)
	return b, args.Error(1)
}

// usecaseError builds an error the way the services do
func usecaseError(kind error, msg string) error {
	return &usecase.Error{Kind: kind, Message: msg}
}

func authed(r *http.Request, role entity.Role) (*http.Request, entity.Principal) {
	actor := entity.Principal{ID: uuid.New(), Role: role}
	return r.WithContext(utils.SetUserContext(r.Context(), actor.ID, actor.Role)), actor
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) utils.Response {
	t.Helper()
	var body utils.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestHandleServiceError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"validation", usecaseError(usecase.ErrValidation, "Field price is required"), http.StatusBadRequest, "Field price is required"},
		{"invalid status", usecaseError(usecase.ErrInvalidStatus, "Invalid status"), http.StatusBadRequest, "Invalid status"},
		{"invalid transition", usecaseError(usecase.ErrInvalidTransition, "Cannot accept"), http.StatusBadRequest, "Cannot accept"},
		{"invalid code", usecaseError(usecase.ErrInvalidCode, "Invalid verification code"), http.StatusBadRequest, "Invalid verification code"},
		{"duplicate email", usecaseError(usecase.ErrDuplicateEmail, "Email already registered"), http.StatusBadRequest, "Email already registered"},
		{"credentials", usecaseError(usecase.ErrInvalidCredential, "Invalid referral code"), http.StatusUnauthorized, "Invalid referral code"},
		{"forbidden", usecaseError(usecase.ErrForbidden, "Not yours"), http.StatusForbidden, "Not yours"},
		{"not found", usecaseError(usecase.ErrNotFound, "Booking not found"), http.StatusNotFound, "Booking not found"},
		{"stale", usecaseError(usecase.ErrStaleBooking, "Reload"), http.StatusConflict, "Reload"},
		{"unexpected", fmt.Errorf("list bookings: %w", fmt.Errorf("connection refused")), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			handleServiceError(zap.NewNop(), w, tt.err, "test")

			assert.Equal(t, tt.wantCode, w.Code)
			body := decodeBody(t, w)
			assert.False(t, body.Status)
			assert.Equal(t, tt.wantMsg, body.Message)
			assert.NotContains(t, w.Body.String(), "connection refused")
		})
	}
}

func TestBookingHandler_SetStatus(t *testing.T) {
	bookingID := uuid.NewString()

	t.Run("stale booking is a conflict", func(t *testing.T) {
		svc := new(mockBookingService)
		h := NewBookingHandler(svc, nil, zap.NewNop())

		req := httptest.NewRequest(http.MethodPost, "/bookings/booking-status",
			strings.NewReader(`{"bookingId":"`+bookingID+`","status":"Accepted"}`))
		req, actor := authed(req, entity.RoleProvider)

		svc.On("SetStatus", mock.Anything, actor, &request.BookingStatusRequest{BookingID: bookingID, Status: "Accepted"}).
			Return(nil, usecaseError(usecase.ErrStaleBooking, "Booking was changed by another request, reload and retry"))

		w := httptest.NewRecorder()
		h.SetStatus(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		svc.AssertExpectations(t)
	})

	t.Run("accepted", func(t *testing.T) {
		svc := new(mockBookingService)
		h := NewBookingHandler(svc, nil, zap.NewNop())

		req := httptest.NewRequest(http.MethodPost, "/bookings/booking-status",
			strings.NewReader(`{"bookingId":"`+bookingID+`","status":"Accepted"}`))
		req, _ = authed(req, entity.RoleProvider)

		svc.On("SetStatus", mock.Anything, mock.Anything, mock.Anything).
			Return(&response.BookingResponse{ID: bookingID, Status: entity.BookingStatusAccepted}, nil)

		w := httptest.NewRecorder()
		h.SetStatus(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Booking Accepted", decodeBody(t, w).Message)
	})

	t.Run("malformed body", func(t *testing.T) {
		svc := new(mockBookingService)
		h := NewBookingHandler(svc, nil, zap.NewNop())

		req := httptest.NewRequest(http.MethodPost, "/bookings/booking-status", strings.NewReader(`{`))
		req, _ = authed(req, entity.RoleProvider)

		w := httptest.NewRecorder()
		h.SetStatus(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		svc.AssertNotCalled(t, "SetStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing booking id", func(t *testing.T) {
		svc := new(mockBookingService)
		h := NewBookingHandler(svc, nil, zap.NewNop())

		req := httptest.NewRequest(http.MethodPost, "/bookings/booking-status", strings.NewReader(`{"status":"Accepted"}`))
		req, _ = authed(req, entity.RoleProvider)

		w := httptest.NewRecorder()
		h.SetStatus(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "BookingID")
	})
}

func TestBookingHandler_RequiresPrincipal(t *testing.T) {
	svc := new(mockBookingService)
	h := NewBookingHandler(svc, nil, zap.NewNop())

	w := httptest.NewRecorder()
	h.List(usecase.ViewPending)(w, httptest.NewRequest(http.MethodGet, "/bookings/pending-bookings", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	svc.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything)
}

func TestBookingHandler_ListPassesView(t *testing.T) {
	svc := new(mockBookingService)
	h := NewBookingHandler(svc, nil, zap.NewNop())

	req, actor := authed(httptest.NewRequest(http.MethodGet, "/bookings/employee-completed-tasks", nil), entity.RoleEmployee)
	svc.On("List", mock.Anything, usecase.ViewEmployeeCompleted, actor).
		Return([]response.BookingResponse{{ID: "b1", Status: entity.BookingStatusCompleted}}, nil)

	w := httptest.NewRecorder()
	h.List(usecase.ViewEmployeeCompleted)(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"b1"`)
	svc.AssertExpectations(t)
}
