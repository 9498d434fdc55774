package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/psqlbuilder"
)

// Repository репозиторий настроек расписания
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория настроек
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByTenantAndService получает настройки ровно одного уровня:
// serviceID == nil - настройки тенанта, иначе настройки конкретной услуги
func (r *Repository) GetByTenantAndService(ctx context.Context, tenantID string, serviceID *string) (*domain.SchedulingSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"id",
		"tenant_id",
		"service_id",
		"timezone",
		"slot_step_minutes",
		"buffer_minutes",
		"min_booking_notice_minutes",
		"advance_booking_days",
		"created_at",
		"updated_at",
	).
		From("scheduling_settings").
		Where(squirrel.Eq{"tenant_id": tenantID})

	// Фильтрация по service_id (NULL или конкретное значение)
	if serviceID == nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"service_id": nil})
	} else {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"service_id": *serviceID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByTenantAndService - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.SchedulingSettings
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&s.TenantID,
		&s.ServiceID,
		&s.Timezone,
		&s.SlotStepMinutes,
		&s.BufferMinutes,
		&s.MinBookingNoticeMinutes,
		&s.AdvanceBookingDays,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByTenantAndService - scan settings: %v", ErrScanRow, err)
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return &s, nil
}

// GetWithHierarchy получает настройки с учетом приоритета:
// 1. Настройки конкретной услуги (tenantID, serviceID)
// 2. Настройки тенанта (tenantID, NULL)
//
// Если настройки не найдены ни на одном уровне, возвращает ErrSettingsNotFound
func (r *Repository) GetWithHierarchy(ctx context.Context, tenantID string, serviceID *string) (*domain.SchedulingSettings, error) {
	if serviceID != nil {
		s, err := r.GetByTenantAndService(ctx, tenantID, serviceID)
		if err == nil {
			return s, nil
		}
		if !errors.Is(err, ErrSettingsNotFound) {
			return nil, fmt.Errorf("%w: GetWithHierarchy - service level: %v", ErrExecQuery, err)
		}
	}

	s, err := r.GetByTenantAndService(ctx, tenantID, nil)
	if err == nil {
		return s, nil
	}
	if !errors.Is(err, ErrSettingsNotFound) {
		return nil, fmt.Errorf("%w: GetWithHierarchy - tenant level: %v", ErrExecQuery, err)
	}

	return nil, ErrSettingsNotFound
}

// Upsert создает или обновляет настройки уровня (tenant_id, service_id)
func (r *Repository) Upsert(ctx context.Context, s *domain.SchedulingSettings) (*domain.SchedulingSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("scheduling_settings").
		Columns(
			"tenant_id",
			"service_id",
			"timezone",
			"slot_step_minutes",
			"buffer_minutes",
			"min_booking_notice_minutes",
			"advance_booking_days",
		).
		Values(
			s.TenantID,
			s.ServiceID,
			s.Timezone,
			s.SlotStepMinutes,
			s.BufferMinutes,
			s.MinBookingNoticeMinutes,
			s.AdvanceBookingDays,
		).
		Suffix(`ON CONFLICT (tenant_id, COALESCE(service_id, '')) DO UPDATE SET
			timezone = EXCLUDED.timezone,
			slot_step_minutes = EXCLUDED.slot_step_minutes,
			buffer_minutes = EXCLUDED.buffer_minutes,
			min_booking_notice_minutes = EXCLUDED.min_booking_notice_minutes,
			advance_booking_days = EXCLUDED.advance_booking_days,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&s.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return s, nil
}
