package get_tenant_settings

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AvailabilityService/internal/api/handlers"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/settings"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/settings/models"
)

const msgInvalidParams = "некорректные параметры запроса"

type Handler struct {
	service SettingsService
	logger  Logger
}

func NewHandler(service SettingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/tenants/{tenantId}/settings
// Query params: serviceId (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	tenantID := mux.Vars(r)["tenantId"]

	req := &models.GetSettingsRequest{TenantID: tenantID}
	if serviceID := handlers.QueryString(r, "serviceId"); serviceID != "" {
		req.ServiceID = &serviceID
	}

	result, err := h.service.Get(r.Context(), req)
	if err != nil {
		if errors.Is(err, settings.ErrInvalidInput) {
			h.logger.Warn("GET /tenants/{id}/settings - Invalid input: tenant_id=%s, error=%v", tenantID, err)
			handlers.RespondBadRequest(w, msgInvalidParams)
			return
		}
		h.logger.Error("GET /tenants/{id}/settings - Failed to get settings: tenant_id=%s, error=%v", tenantID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /tenants/{id}/settings - Settings retrieved: tenant_id=%s, level=%s", tenantID, result.Level)
	handlers.RespondJSON(w, http.StatusOK, result)
}
