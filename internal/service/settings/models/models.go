package models

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// Request модели

// GetSettingsRequest запрос действующих настроек
type GetSettingsRequest struct {
	TenantID  string
	ServiceID *string // Если указан, учитываются настройки услуги
}

// UpdateSettingsRequest запрос на обновление настроек.
// Частичное обновление: не указанные поля берутся из текущих настроек уровня.
type UpdateSettingsRequest struct {
	TenantID                string  `json:"-"`
	UserID                  string  `json:"-"`
	ServiceID               *string `json:"serviceId,omitempty"`
	Timezone                *string `json:"timezone,omitempty"`
	SlotStepMinutes         *int    `json:"slotStepMinutes,omitempty"`
	BufferMinutes           *int    `json:"bufferMinutes,omitempty"`
	MinBookingNoticeMinutes *int    `json:"minBookingNoticeMinutes,omitempty"`
	AdvanceBookingDays      *int    `json:"advanceBookingDays,omitempty"`
}

// Response модели

// SettingsResponse действующие настройки расписания
type SettingsResponse struct {
	TenantID                string     `json:"tenantId"`
	ServiceID               *string    `json:"serviceId,omitempty"`
	Level                   string     `json:"level"` // service, tenant, default
	Timezone                string     `json:"timezone"`
	SlotStepMinutes         int        `json:"slotStepMinutes"`
	BufferMinutes           int        `json:"bufferMinutes"`
	MinBookingNoticeMinutes int        `json:"minBookingNoticeMinutes"`
	AdvanceBookingDays      int        `json:"advanceBookingDays"`
	UpdatedAt               *time.Time `json:"updatedAt,omitempty"`
}

const (
	LevelService = "service"
	LevelTenant  = "tenant"
	LevelDefault = "default"
)

// FromDomainSettings конвертирует доменные настройки в ответ
func FromDomainSettings(s *domain.SchedulingSettings, level string) *SettingsResponse {
	resp := &SettingsResponse{
		TenantID:                s.TenantID,
		ServiceID:               s.ServiceID,
		Level:                   level,
		Timezone:                s.Timezone,
		SlotStepMinutes:         s.SlotStepMinutes,
		BufferMinutes:           s.BufferMinutes,
		MinBookingNoticeMinutes: s.MinBookingNoticeMinutes,
		AdvanceBookingDays:      s.AdvanceBookingDays,
	}
	if !s.UpdatedAt.IsZero() {
		updated := s.UpdatedAt
		resp.UpdatedAt = &updated
	}
	return resp
}
