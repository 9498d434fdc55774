package settings

import (
	"context"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// SettingsRepository интерфейс репозитория настроек расписания
type SettingsRepository interface {
	GetByTenantAndService(ctx context.Context, tenantID string, serviceID *string) (*domain.SchedulingSettings, error)
	GetWithHierarchy(ctx context.Context, tenantID string, serviceID *string) (*domain.SchedulingSettings, error)
	Upsert(ctx context.Context, s *domain.SchedulingSettings) (*domain.SchedulingSettings, error)
}

// CacheInvalidator сбрасывает закэшированную доступность тенанта
type CacheInvalidator interface {
	InvalidateTenant(ctx context.Context, tenantID string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
