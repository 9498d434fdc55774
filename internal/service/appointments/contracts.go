package appointments

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/integrations/bookingevents"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, tenantID string, id int64) (*domain.Appointment, error)
	GetOccupying(ctx context.Context, filter domain.LedgerFilter) ([]*domain.Appointment, error)
	Cancel(ctx context.Context, tenantID string, id int64, status domain.AppointmentStatus, reason string, at time.Time) error
	UpdateStatus(ctx context.Context, tenantID string, id int64, status domain.AppointmentStatus, at time.Time) error
}

// SettingsProvider возвращает действующие настройки расписания (нужен часовой пояс)
type SettingsProvider interface {
	Effective(ctx context.Context, tenantID string, serviceID *string) (*domain.SchedulingSettings, string, error)
}

// CacheInvalidator сбрасывает кэш доступности даты
type CacheInvalidator interface {
	InvalidateDate(ctx context.Context, tenantID string, date types.Date) error
}

// EventPublisher публикует события изменения записей
type EventPublisher interface {
	Publish(ctx context.Context, event bookingevents.AppointmentChanged) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
