package get_fully_booked_dates

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

const (
	minYear = 2000
	maxYear = 2100
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.TenantID == "" {
		return fmt.Errorf("%w: tenantId is required", ErrInvalidInput)
	}

	if req.Year < minYear || req.Year > maxYear {
		return fmt.Errorf("%w: year must be between %d and %d", ErrInvalidInput, minYear, maxYear)
	}

	if req.Month < time.January || req.Month > time.December {
		return fmt.Errorf("%w: month must be between 1 and 12", ErrInvalidInput)
	}

	if req.TotalDuration < 0 || req.TotalDuration > domain.MaxServiceDurationMinutes {
		return fmt.Errorf("%w: totalDuration must be between 1 and %d", ErrInvalidInput, domain.MaxServiceDurationMinutes)
	}

	return nil
}
