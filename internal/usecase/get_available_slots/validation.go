package get_available_slots

import (
	"fmt"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.TenantID == "" {
		return fmt.Errorf("%w: tenantId is required", ErrInvalidInput)
	}

	if req.ServiceID == "" {
		return fmt.Errorf("%w: serviceId is required", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.TotalDuration < 0 || req.TotalDuration > domain.MaxServiceDurationMinutes {
		return fmt.Errorf("%w: totalDuration must be between 1 and %d", ErrInvalidInput, domain.MaxServiceDurationMinutes)
	}

	if req.Any && req.SpecialistID != "" {
		return fmt.Errorf("%w: specialistId and any are mutually exclusive", ErrInvalidInput)
	}

	return nil
}
