package bookingevents

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// DateInvalidator сбрасывает кэш доступности тенанта на дату
type DateInvalidator interface {
	InvalidateDate(ctx context.Context, tenantID string, date types.Date) error
}

// InvalidateOnChange обработчик событий, сбрасывающий кэш на дату изменённой записи.
// Нужен, когда записи меняет другой экземпляр сервиса.
func InvalidateOnChange(cache DateInvalidator) Handler {
	return func(ctx context.Context, event AppointmentChanged) error {
		date, err := types.ParseDate(event.Date)
		if err != nil {
			return fmt.Errorf("%w: bad date %q: %v", ErrDecode, event.Date, err)
		}
		return cache.InvalidateDate(ctx, event.TenantID, date)
	}
}
