package settings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	settingsRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/settings"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/settings/models"
)

// Service сервис настроек расписания тенанта
type Service struct {
	settingsRepo SettingsRepository
	cache        CacheInvalidator
	logger       Logger
}

// NewService создает новый экземпляр сервиса настроек
func NewService(settingsRepo SettingsRepository, cache CacheInvalidator, logger Logger) *Service {
	return &Service{
		settingsRepo: settingsRepo,
		cache:        cache,
		logger:       logger,
	}
}

// Effective возвращает действующие настройки с учетом иерархии.
// Если настройки не заданы ни на одном уровне, возвращаются настройки по умолчанию.
func (s *Service) Effective(ctx context.Context, tenantID string, serviceID *string) (*domain.SchedulingSettings, string, error) {
	settings, err := s.settingsRepo.GetWithHierarchy(ctx, tenantID, serviceID)
	if err != nil {
		if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			return domain.DefaultSettings(tenantID), models.LevelDefault, nil
		}
		return nil, "", fmt.Errorf("%w: Effective - repository error: %v", ErrInternal, err)
	}

	if settings.IsTenantWide() {
		return settings, models.LevelTenant, nil
	}
	return settings, models.LevelService, nil
}

// Get получает действующие настройки тенанта (и услуги, если указана)
func (s *Service) Get(ctx context.Context, req *models.GetSettingsRequest) (*models.SettingsResponse, error) {
	s.logger.Info("Get: fetching settings for tenant=%s, service=%v", req.TenantID, req.ServiceID)

	if req.TenantID == "" {
		return nil, fmt.Errorf("%w: tenantId is required", ErrInvalidInput)
	}

	settings, level, err := s.Effective(ctx, req.TenantID, req.ServiceID)
	if err != nil {
		s.logger.Error("Get: failed to fetch settings for tenant=%s: %v", req.TenantID, err)
		return nil, err
	}

	s.logger.Info("Get: settings for tenant=%s resolved at level=%s", req.TenantID, level)
	return models.FromDomainSettings(settings, level), nil
}

// Update создает или частично обновляет настройки уровня (tenant или tenant+service).
// После обновления кэш доступности тенанта сбрасывается.
func (s *Service) Update(ctx context.Context, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error) {
	s.logger.Info("Update: updating settings for tenant=%s, service=%v by user=%s", req.TenantID, req.ServiceID, req.UserID)

	if req.TenantID == "" {
		return nil, fmt.Errorf("%w: tenantId is required", ErrInvalidInput)
	}

	// 1. Текущие настройки именно этого уровня, иначе действующие как основа
	current, err := s.settingsRepo.GetByTenantAndService(ctx, req.TenantID, req.ServiceID)
	if err != nil && !errors.Is(err, settingsRepo.ErrSettingsNotFound) {
		s.logger.Error("Update: repository error for tenant=%s: %v", req.TenantID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}
	if current == nil {
		base, _, err := s.Effective(ctx, req.TenantID, nil)
		if err != nil {
			s.logger.Error("Update: failed to resolve base settings for tenant=%s: %v", req.TenantID, err)
			return nil, err
		}
		copied := *base
		copied.ID = 0
		copied.ServiceID = req.ServiceID
		current = &copied
	}

	// 2. Применяем изменения
	applyUpdate(current, req)

	// 3. Валидируем результат
	if err := validateSettings(current); err != nil {
		s.logger.Warn("Update: validation failed for tenant=%s: %v", req.TenantID, err)
		return nil, err
	}

	// 4. Сохраняем
	saved, err := s.settingsRepo.Upsert(ctx, current)
	if err != nil {
		s.logger.Error("Update: repository error for tenant=%s: %v", req.TenantID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	// 5. Сбрасываем кэш доступности тенанта
	if err := s.cache.InvalidateTenant(ctx, req.TenantID); err != nil {
		s.logger.Warn("Update: failed to invalidate availability cache for tenant=%s: %v", req.TenantID, err)
	}

	level := models.LevelTenant
	if !saved.IsTenantWide() {
		level = models.LevelService
	}

	s.logger.Info("Update: successfully saved settings id=%d for tenant=%s", saved.ID, req.TenantID)
	return models.FromDomainSettings(saved, level), nil
}

func applyUpdate(s *domain.SchedulingSettings, req *models.UpdateSettingsRequest) {
	s.TenantID = req.TenantID
	if req.Timezone != nil {
		s.Timezone = *req.Timezone
	}
	if req.SlotStepMinutes != nil {
		s.SlotStepMinutes = *req.SlotStepMinutes
	}
	if req.BufferMinutes != nil {
		s.BufferMinutes = *req.BufferMinutes
	}
	if req.MinBookingNoticeMinutes != nil {
		s.MinBookingNoticeMinutes = *req.MinBookingNoticeMinutes
	}
	if req.AdvanceBookingDays != nil {
		s.AdvanceBookingDays = *req.AdvanceBookingDays
	}
}

// validateSettings проверяет допустимые диапазоны значений
func validateSettings(s *domain.SchedulingSettings) error {
	if _, err := time.LoadLocation(s.Timezone); err != nil || s.Timezone == "" {
		return fmt.Errorf("%w: %q", ErrInvalidTimezone, s.Timezone)
	}
	if s.SlotStepMinutes < domain.MinSlotStepMinutes || s.SlotStepMinutes > domain.MaxSlotStepMinutes {
		return fmt.Errorf("%w: slotStepMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinSlotStepMinutes, domain.MaxSlotStepMinutes)
	}
	if s.BufferMinutes < domain.MinBufferMinutes || s.BufferMinutes > domain.MaxBufferMinutes {
		return fmt.Errorf("%w: bufferMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinBufferMinutes, domain.MaxBufferMinutes)
	}
	if s.MinBookingNoticeMinutes < domain.MinBookingNoticeMinutes || s.MinBookingNoticeMinutes > domain.MaxBookingNoticeMinutes {
		return fmt.Errorf("%w: minBookingNoticeMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinBookingNoticeMinutes, domain.MaxBookingNoticeMinutes)
	}
	if s.AdvanceBookingDays < domain.MinAdvanceBookingDays || s.AdvanceBookingDays > domain.MaxAdvanceBookingDays {
		return fmt.Errorf("%w: advanceBookingDays must be between %d and %d",
			ErrInvalidInput, domain.MinAdvanceBookingDays, domain.MaxAdvanceBookingDays)
	}
	return nil
}
