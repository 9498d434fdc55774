package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

const (
	msgMissingServiceID     = "ID услуги обязателен"
	msgMissingDate          = "дата обязательна"
	msgInvalidDate          = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidTotalDuration = "некорректная длительность totalDuration"
	msgInvalidAny           = "некорректное значение any"
	msgInvalidParams        = "некорректные параметры запроса"
	msgServiceNotFound      = "услуга не найдена"
	msgVariantNotFound      = "вариант услуги не найден"
	msgSpecialistNotFound   = "мастер не оказывает эту услугу"
	msgDateTooFar           = "дата слишком далеко в будущем"
	msgUnavailable          = "не удалось загрузить доступность"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/tenants/{tenantId}/available-slots
// Query params: serviceId (required), date (required, YYYY-MM-DD), variantName, specialistId, totalDuration, any
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID := mux.Vars(r)["tenantId"]

	serviceID := handlers.QueryString(r, "serviceId")
	if serviceID == "" {
		h.logger.Warn("GET /tenants/{id}/available-slots - Missing service ID: tenant_id=%s", tenantID)
		handlers.RespondBadRequest(w, msgMissingServiceID)
		return
	}

	dateStr := handlers.QueryString(r, "date")
	if dateStr == "" {
		h.logger.Warn("GET /tenants/{id}/available-slots - Missing date: tenant_id=%s", tenantID)
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}
	date, err := types.ParseDate(dateStr)
	if err != nil {
		h.logger.Warn("GET /tenants/{id}/available-slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	totalDuration, err := handlers.QueryInt(r, "totalDuration")
	if err != nil {
		h.logger.Warn("GET /tenants/{id}/available-slots - Invalid totalDuration: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTotalDuration)
		return
	}

	anyStaff, err := handlers.QueryBool(r, "any")
	if err != nil {
		h.logger.Warn("GET /tenants/{id}/available-slots - Invalid any flag: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAny)
		return
	}

	req := &getAvailableSlots.Request{
		TenantID:      tenantID,
		ServiceID:     serviceID,
		VariantName:   handlers.QueryString(r, "variantName"),
		SpecialistID:  handlers.QueryString(r, "specialistId"),
		TotalDuration: totalDuration,
		Any:           anyStaff,
		Date:          date,
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /tenants/{id}/available-slots - Invalid input: tenant_id=%s, error=%v", tenantID, err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		case errors.Is(err, getAvailableSlots.ErrServiceNotFound):
			h.logger.Warn("GET /tenants/{id}/available-slots - Service not found: tenant_id=%s, service_id=%s", tenantID, serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getAvailableSlots.ErrVariantNotFound):
			h.logger.Warn("GET /tenants/{id}/available-slots - Variant not found: tenant_id=%s, service_id=%s, variant=%s",
				tenantID, serviceID, req.VariantName)
			handlers.RespondNotFound(w, msgVariantNotFound)

		case errors.Is(err, getAvailableSlots.ErrSpecialistNotEligible):
			h.logger.Warn("GET /tenants/{id}/available-slots - Specialist not eligible: tenant_id=%s, specialist_id=%s",
				tenantID, req.SpecialistID)
			handlers.RespondBadRequest(w, msgSpecialistNotFound)

		case errors.Is(err, getAvailableSlots.ErrDateTooFarInFuture):
			h.logger.Warn("GET /tenants/{id}/available-slots - Date too far in future: tenant_id=%s, date=%s", tenantID, dateStr)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, getAvailableSlots.ErrUpstreamUnavailable):
			h.logger.Warn("GET /tenants/{id}/available-slots - Upstream unavailable: tenant_id=%s, error=%v", tenantID, err)
			handlers.RespondServiceUnavailable(w, msgUnavailable)

		default:
			h.logger.Error("GET /tenants/{id}/available-slots - Failed to get slots: tenant_id=%s, service_id=%s, error=%v",
				tenantID, serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /tenants/{id}/available-slots - Slots retrieved successfully: tenant_id=%s, service_id=%s, date=%s, slots_count=%d",
		tenantID, serviceID, dateStr, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
