package get_staff_appointments

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/appointments"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/appointments/models"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

const (
	msgInvalidDate   = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidParams = "некорректные параметры запроса"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/tenants/{tenantId}/staff/{staffId}/appointments
// Query params: date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	tenantID := vars["tenantId"]
	staffID := vars["staffId"]

	date, err := types.ParseDate(handlers.QueryString(r, "date"))
	if err != nil {
		h.logger.Warn("GET /tenants/{id}/staff/{id}/appointments - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.service.StaffLedger(r.Context(), &models.StaffLedgerRequest{
		TenantID: tenantID,
		StaffID:  staffID,
		Date:     date,
	})
	if err != nil {
		if errors.Is(err, appointments.ErrInvalidInput) {
			h.logger.Warn("GET /tenants/{id}/staff/{id}/appointments - Invalid input: tenant_id=%s, error=%v", tenantID, err)
			handlers.RespondBadRequest(w, msgInvalidParams)
			return
		}
		h.logger.Error("GET /tenants/{id}/staff/{id}/appointments - Failed to load ledger: tenant_id=%s, staff_id=%s, error=%v",
			tenantID, staffID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /tenants/{id}/staff/{id}/appointments - Ledger retrieved: tenant_id=%s, staff_id=%s, date=%s, count=%d",
		tenantID, staffID, result.Date, len(result.Occupied))
	handlers.RespondJSON(w, http.StatusOK, result)
}
