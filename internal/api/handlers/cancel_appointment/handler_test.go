package cancel_appointment

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/middleware"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/appointments"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/appointments/models"
	"github.com/m04kA/SMC-AvailabilityService/pkg/logger"
)

type mockService struct{ mock.Mock }

func (m *mockService) Cancel(ctx context.Context, tenantID string, id int64, req *models.CancelAppointmentRequest) error {
	return m.Called(ctx, tenantID, id, req).Error(0)
}

func serve(svc *mockService, path, body string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.Use(middleware.Auth)
	r.HandleFunc("/api/v1/tenants/{tenantId}/appointments/{appointmentId}/cancel",
		NewHandler(svc, logger.NewNop()).Handle).Methods(http.MethodPatch)

	req := httptest.NewRequest(http.MethodPatch, path, bytes.NewBufferString(body))
	req.Header.Set(middleware.UserIDHeader, "client-1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandle_EmptyBody(t *testing.T) {
	svc := new(mockService)
	svc.On("Cancel", mock.Anything, "t1", int64(5), &models.CancelAppointmentRequest{UserID: "client-1"}).Return(nil)

	w := serve(svc, "/api/v1/tenants/t1/appointments/5/cancel", "")

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestHandle_WithReason(t *testing.T) {
	svc := new(mockService)
	svc.On("Cancel", mock.Anything, "t1", int64(5), &models.CancelAppointmentRequest{
		UserID:             "client-1",
		CancellationReason: "заболел",
	}).Return(nil)

	w := serve(svc, "/api/v1/tenants/t1/appointments/5/cancel", `{"cancellationReason":"заболел"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	svc.AssertExpectations(t)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		err    error
		status int
	}{
		{"bad id", "/api/v1/tenants/t1/appointments/x/cancel", nil, http.StatusBadRequest},
		{"not found", "/api/v1/tenants/t1/appointments/5/cancel", appointments.ErrAppointmentNotFound, http.StatusNotFound},
		{"cannot cancel", "/api/v1/tenants/t1/appointments/5/cancel", appointments.ErrCannotCancel, http.StatusConflict},
		{"invalid input", "/api/v1/tenants/t1/appointments/5/cancel", appointments.ErrInvalidInput, http.StatusBadRequest},
		{"internal", "/api/v1/tenants/t1/appointments/5/cancel", appointments.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mockService)
			if tt.err != nil {
				svc.On("Cancel", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
					Return(fmt.Errorf("%w: wrapped", tt.err))
			}

			w := serve(svc, tt.path, "")
			assert.Equal(t, tt.status, w.Code)
		})
	}
}
