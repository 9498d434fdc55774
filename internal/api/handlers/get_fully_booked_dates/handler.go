package get_fully_booked_dates

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	getFullyBookedDates "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_fully_booked_dates"
)

const (
	msgInvalidYear          = "некорректный год"
	msgInvalidMonth         = "некорректный месяц"
	msgInvalidTotalDuration = "некорректная длительность totalDuration"
	msgInvalidParams        = "некорректные параметры запроса"
	msgServiceNotFound      = "услуга не найдена"
	msgVariantNotFound      = "вариант услуги не найден"
	msgSpecialistNotFound   = "мастер не оказывает эту услугу"
	msgUnavailable          = "не удалось загрузить доступность"
)

type Handler struct {
	useCase GetFullyBookedDatesUseCase
	logger  Logger
}

func NewHandler(useCase GetFullyBookedDatesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/tenants/{tenantId}/fully-booked-dates
// Query params: year, month (required), specialistId, serviceId, variantName, totalDuration
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID := mux.Vars(r)["tenantId"]

	year, err := handlers.QueryInt(r, "year")
	if err != nil || year == 0 {
		h.logger.Warn("GET /tenants/{id}/fully-booked-dates - Invalid year: tenant_id=%s", tenantID)
		handlers.RespondBadRequest(w, msgInvalidYear)
		return
	}

	month, err := handlers.QueryInt(r, "month")
	if err != nil || month < 1 || month > 12 {
		h.logger.Warn("GET /tenants/{id}/fully-booked-dates - Invalid month: tenant_id=%s", tenantID)
		handlers.RespondBadRequest(w, msgInvalidMonth)
		return
	}

	totalDuration, err := handlers.QueryInt(r, "totalDuration")
	if err != nil {
		h.logger.Warn("GET /tenants/{id}/fully-booked-dates - Invalid totalDuration: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTotalDuration)
		return
	}

	req := &getFullyBookedDates.Request{
		TenantID:      tenantID,
		Year:          year,
		Month:         time.Month(month),
		SpecialistID:  handlers.QueryString(r, "specialistId"),
		ServiceID:     handlers.QueryString(r, "serviceId"),
		VariantName:   handlers.QueryString(r, "variantName"),
		TotalDuration: totalDuration,
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, getFullyBookedDates.ErrInvalidInput):
			h.logger.Warn("GET /tenants/{id}/fully-booked-dates - Invalid input: tenant_id=%s, error=%v", tenantID, err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		case errors.Is(err, getFullyBookedDates.ErrServiceNotFound):
			h.logger.Warn("GET /tenants/{id}/fully-booked-dates - Service not found: tenant_id=%s, service_id=%s", tenantID, req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getFullyBookedDates.ErrVariantNotFound):
			h.logger.Warn("GET /tenants/{id}/fully-booked-dates - Variant not found: tenant_id=%s, variant=%s", tenantID, req.VariantName)
			handlers.RespondNotFound(w, msgVariantNotFound)

		case errors.Is(err, getFullyBookedDates.ErrSpecialistNotEligible):
			h.logger.Warn("GET /tenants/{id}/fully-booked-dates - Specialist not eligible: tenant_id=%s, specialist_id=%s",
				tenantID, req.SpecialistID)
			handlers.RespondBadRequest(w, msgSpecialistNotFound)

		case errors.Is(err, getFullyBookedDates.ErrUpstreamUnavailable):
			h.logger.Warn("GET /tenants/{id}/fully-booked-dates - Upstream unavailable: tenant_id=%s, error=%v", tenantID, err)
			handlers.RespondServiceUnavailable(w, msgUnavailable)

		default:
			h.logger.Error("GET /tenants/{id}/fully-booked-dates - Failed to build month index: tenant_id=%s, year=%d, month=%d, error=%v",
				tenantID, year, month, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /tenants/{id}/fully-booked-dates - Month index built: tenant_id=%s, year=%d, month=%d, booked=%d",
		tenantID, year, month, len(result.FullyBooked))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
