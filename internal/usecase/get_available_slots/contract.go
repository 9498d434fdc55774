package get_available_slots

import (
	"context"

	"github.com/m04kA/SMC-AvailabilityService/internal/availability"
	"github.com/m04kA/SMC-AvailabilityService/internal/calendar"
	"github.com/m04kA/SMC-AvailabilityService/internal/infra/cache"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/scheduling"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// Planner собирает настройки, услугу, мастеров и их записи
type Planner interface {
	Prepare(ctx context.Context, q scheduling.Query, from, to types.Date) (*scheduling.Plan, error)
	Inputs(ctx context.Context, q scheduling.Query, plan *scheduling.Plan, span calendar.Span) ([]availability.StaffInput, error)
}

// SlotsCache кэш рассчитанных слотов
type SlotsCache interface {
	Slots(ctx context.Context, tenantID string, date types.Date, params string, load cache.Loader) ([]byte, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
