package create_appointment

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityService/internal/api/middleware"
	createAppointment "github.com/m04kA/SMC-AvailabilityService/internal/usecase/create_appointment"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты записи, ожидается YYYY-MM-DD"
	msgInvalidTime        = "некорректный формат времени начала, ожидается HH:MM"
	msgInvalidData        = "некорректные данные записи"
	msgSlotNotAvailable   = "выбранный временной слот недоступен"
	msgServiceNotFound    = "услуга не найдена"
	msgVariantNotFound    = "вариант услуги не найден"
	msgSpecialistNotFound = "мастер не оказывает эту услугу"
	msgInvalidBookingDate = "некорректная дата записи"
	msgDateTooFar         = "дата записи слишком далеко в будущем"
	msgTooLateToBook      = "слишком поздно для записи на этот слот"
	msgUnavailable        = "каталог услуг временно недоступен"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/tenants/{tenantId}/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID := mux.Vars(r)["tenantId"]
	clientID, _ := middleware.GetUserID(r.Context())

	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /tenants/{id}/appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(tenantID, clientID)
	if err != nil {
		h.logger.Warn("POST /tenants/{id}/appointments - Failed to parse request: %v", err)
		var timeErr errInvalidTime
		if errors.As(err, &timeErr) {
			handlers.RespondBadRequest(w, msgInvalidTime)
		} else {
			handlers.RespondBadRequest(w, msgInvalidDate)
		}
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createAppointment.ErrSlotNotAvailable):
			h.logger.Warn("POST /tenants/{id}/appointments - Slot not available: tenant_id=%s, date=%s, start=%s",
				tenantID, req.Date, req.StartTime)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createAppointment.ErrServiceNotFound):
			h.logger.Warn("POST /tenants/{id}/appointments - Service not found: tenant_id=%s, service_id=%s", tenantID, req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createAppointment.ErrVariantNotFound):
			h.logger.Warn("POST /tenants/{id}/appointments - Variant not found: tenant_id=%s, variant=%s", tenantID, req.VariantName)
			handlers.RespondNotFound(w, msgVariantNotFound)

		case errors.Is(err, createAppointment.ErrSpecialistNotEligible):
			h.logger.Warn("POST /tenants/{id}/appointments - Specialist not eligible: tenant_id=%s, specialist_id=%s",
				tenantID, req.SpecialistID)
			handlers.RespondBadRequest(w, msgSpecialistNotFound)

		case errors.Is(err, createAppointment.ErrInvalidDate):
			h.logger.Warn("POST /tenants/{id}/appointments - Invalid appointment date: tenant_id=%s, date=%s", tenantID, req.Date)
			handlers.RespondBadRequest(w, msgInvalidBookingDate)

		case errors.Is(err, createAppointment.ErrDateTooFarInFuture):
			h.logger.Warn("POST /tenants/{id}/appointments - Date too far in future: tenant_id=%s, date=%s", tenantID, req.Date)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, createAppointment.ErrTooLateToBook):
			h.logger.Warn("POST /tenants/{id}/appointments - Too late to book: tenant_id=%s, date=%s, start=%s",
				tenantID, req.Date, req.StartTime)
			handlers.RespondBadRequest(w, msgTooLateToBook)

		case errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /tenants/{id}/appointments - Invalid input: tenant_id=%s, error=%v", tenantID, err)
			handlers.RespondBadRequest(w, msgInvalidData)

		case errors.Is(err, createAppointment.ErrUpstreamUnavailable):
			h.logger.Warn("POST /tenants/{id}/appointments - Upstream unavailable: tenant_id=%s, error=%v", tenantID, err)
			handlers.RespondServiceUnavailable(w, msgUnavailable)

		default:
			h.logger.Error("POST /tenants/{id}/appointments - Failed to create appointment: tenant_id=%s, client_id=%s, error=%v",
				tenantID, clientID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /tenants/{id}/appointments - Appointment created: tenant_id=%s, appointment_id=%d, staff_id=%s",
		tenantID, result.ID, result.StaffID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
