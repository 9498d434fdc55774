package domain

import "time"

// SchedulingSettings настройки расписания тенанта.
// Поддерживается иерархия:
// 1. Настройки конкретной услуги (tenant_id, service_id)
// 2. Настройки тенанта (tenant_id, NULL)
type SchedulingSettings struct {
	ID                      int64
	TenantID                string
	ServiceID               *string // NULL = настройки для всех услуг
	Timezone                string  // IANA, например Europe/London
	SlotStepMinutes         int
	BufferMinutes           int
	MinBookingNoticeMinutes int
	AdvanceBookingDays      int // 0 = без ограничений
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

// IsTenantWide возвращает true для настроек уровня тенанта
func (s *SchedulingSettings) IsTenantWide() bool {
	return s.ServiceID == nil
}

// HasAdvanceBookingLimit возвращает true, если есть ограничение горизонта записи
func (s *SchedulingSettings) HasAdvanceBookingLimit() bool {
	return s.AdvanceBookingDays > 0
}

// Location загружает часовой пояс тенанта
func (s *SchedulingSettings) Location() (*time.Location, error) {
	return time.LoadLocation(s.Timezone)
}

// DefaultSettings возвращает настройки по умолчанию для тенанта
func DefaultSettings(tenantID string) *SchedulingSettings {
	return &SchedulingSettings{
		TenantID:                tenantID,
		Timezone:                DefaultTimezone,
		SlotStepMinutes:         DefaultSlotStepMinutes,
		BufferMinutes:           DefaultBufferMinutes,
		MinBookingNoticeMinutes: DefaultMinBookingNoticeMinutes,
		AdvanceBookingDays:      DefaultAdvanceBookingDays,
	}
}
