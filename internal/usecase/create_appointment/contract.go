package create_appointment

import (
	"context"

	"github.com/m04kA/SMC-AvailabilityService/internal/availability"
	"github.com/m04kA/SMC-AvailabilityService/internal/calendar"
	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/integrations/bookingevents"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/scheduling"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// Planner собирает настройки, услугу, мастеров и их записи
type Planner interface {
	Prepare(ctx context.Context, q scheduling.Query, from, to types.Date) (*scheduling.Plan, error)
	Inputs(ctx context.Context, q scheduling.Query, plan *scheduling.Plan, span calendar.Span) ([]availability.StaffInput, error)
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// CacheInvalidator сбрасывает кэш доступности даты
type CacheInvalidator interface {
	InvalidateDate(ctx context.Context, tenantID string, date types.Date) error
}

// EventPublisher публикует события изменения записей
type EventPublisher interface {
	Publish(ctx context.Context, event bookingevents.AppointmentChanged) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
