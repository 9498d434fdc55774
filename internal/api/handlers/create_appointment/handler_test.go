package create_appointment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/middleware"
	createAppointment "github.com/m04kA/SMC-AvailabilityService/internal/usecase/create_appointment"
	"github.com/m04kA/SMC-AvailabilityService/pkg/logger"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

type mockUseCase struct{ mock.Mock }

func (m *mockUseCase) Execute(ctx context.Context, req *createAppointment.Request) (*createAppointment.Response, error) {
	args := m.Called(ctx, req)
	if resp := args.Get(0); resp != nil {
		return resp.(*createAppointment.Response), args.Error(1)
	}
	return nil, args.Error(1)
}

func setupRouter(uc *mockUseCase) http.Handler {
	r := mux.NewRouter()
	protected := r.PathPrefix("/api/v1").Subrouter()
	protected.Use(middleware.Auth)
	protected.HandleFunc("/tenants/{tenantId}/appointments", NewHandler(uc, logger.NewNop()).Handle).Methods(http.MethodPost)
	return r
}

func newRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/tenants/t1/appointments", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.UserIDHeader, "client-1")
	return req
}

func TestHandle_Created(t *testing.T) {
	uc := new(mockUseCase)
	loc, err := time.LoadLocation("Europe/Moscow")
	require.NoError(t, err)
	start := time.Date(2024, 3, 4, 10, 0, 0, 0, loc)

	uc.On("Execute", mock.Anything, mock.MatchedBy(func(req *createAppointment.Request) bool {
		return req.TenantID == "t1" && req.ClientID == "client-1" && req.ServiceID == "svc" &&
			req.Date == types.NewDate(2024, 3, 4) && req.StartTime == types.TimeString("10:00")
	})).Return(&createAppointment.Response{
		ID:              7,
		TenantID:        "t1",
		StaffID:         "s1",
		ServiceID:       "svc",
		ClientID:        "client-1",
		Start:           start,
		End:             start.Add(60 * time.Minute),
		DurationMinutes: 60,
		Status:          "pending",
		CreatedAt:       start.Add(-24 * time.Hour),
	}, nil)

	w := httptest.NewRecorder()
	setupRouter(uc).ServeHTTP(w, newRequest(`{"serviceId":"svc","date":"2024-03-04","startTime":"10:00"}`))

	require.Equal(t, http.StatusCreated, w.Code)
	var resp AppointmentResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(7), resp.ID)
	assert.Equal(t, "s1", resp.StaffID)
	assert.Equal(t, "2024-03-04T10:00:00+03:00", resp.StartISO)
	assert.Equal(t, "2024-03-04T11:00:00+03:00", resp.EndISO)
	uc.AssertExpectations(t)
}

func TestHandle_Unauthorized(t *testing.T) {
	uc := new(mockUseCase)
	req := newRequest(`{}`)
	req.Header.Del(middleware.UserIDHeader)

	w := httptest.NewRecorder()
	setupRouter(uc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}

func TestHandle_BadBody(t *testing.T) {
	tests := []struct {
		name string
		body string
		msg  string
	}{
		{"not json", `{`, msgInvalidRequestBody},
		{"unknown field", `{"foo":1}`, msgInvalidRequestBody},
		{"bad date", `{"serviceId":"svc","date":"2024/03/04","startTime":"10:00"}`, msgInvalidDate},
		{"bad time", `{"serviceId":"svc","date":"2024-03-04","startTime":"25:99"}`, msgInvalidTime},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := new(mockUseCase)
			w := httptest.NewRecorder()
			setupRouter(uc).ServeHTTP(w, newRequest(tt.body))

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), tt.msg)
		})
	}
}

func TestHandle_UseCaseErrors(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{createAppointment.ErrSlotNotAvailable, http.StatusConflict},
		{createAppointment.ErrServiceNotFound, http.StatusNotFound},
		{createAppointment.ErrVariantNotFound, http.StatusNotFound},
		{createAppointment.ErrSpecialistNotEligible, http.StatusBadRequest},
		{createAppointment.ErrInvalidDate, http.StatusBadRequest},
		{createAppointment.ErrDateTooFarInFuture, http.StatusBadRequest},
		{createAppointment.ErrTooLateToBook, http.StatusBadRequest},
		{createAppointment.ErrInvalidInput, http.StatusBadRequest},
		{createAppointment.ErrUpstreamUnavailable, http.StatusServiceUnavailable},
		{createAppointment.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			uc := new(mockUseCase)
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, fmt.Errorf("%w: wrapped", tt.err))

			w := httptest.NewRecorder()
			setupRouter(uc).ServeHTTP(w, newRequest(`{"serviceId":"svc","date":"2024-03-04","startTime":"10:00"}`))

			assert.Equal(t, tt.status, w.Code)
		})
	}
}
