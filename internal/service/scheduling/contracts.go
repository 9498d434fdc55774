package scheduling

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	staffRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/staff"
)

// SettingsProvider возвращает действующие настройки расписания
type SettingsProvider interface {
	Effective(ctx context.Context, tenantID string, serviceID *string) (*domain.SchedulingSettings, string, error)
}

// CatalogClient интерфейс клиента каталога услуг
type CatalogClient interface {
	GetService(ctx context.Context, tenantID, serviceID string) (*domain.Service, error)
}

// StaffRepository интерфейс репозитория мастеров
type StaffRepository interface {
	ListWithRules(ctx context.Context, filter staffRepo.Filter) ([]*domain.StaffMember, error)
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetOccupying(ctx context.Context, filter domain.LedgerFilter) ([]*domain.Appointment, error)
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
