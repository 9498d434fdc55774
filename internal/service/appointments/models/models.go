package models

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// Request модели

// CancelAppointmentRequest запрос на отмену записи
type CancelAppointmentRequest struct {
	UserID             string `json:"-"`
	CancellationReason string `json:"cancellationReason"`
}

// UpdateStatusRequest запрос на смену статуса записи
type UpdateStatusRequest struct {
	UserID string `json:"-"`
	Status string `json:"status"`
}

// StaffLedgerRequest запрос занятых интервалов мастера на дату
type StaffLedgerRequest struct {
	TenantID string
	StaffID  string
	Date     types.Date
}

// Response модели

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID                 int64      `json:"id"`
	TenantID           string     `json:"tenantId"`
	StaffID            string     `json:"staffId"`
	ServiceID          string     `json:"serviceId"`
	ClientID           string     `json:"clientId"`
	VariantName        *string    `json:"variantName,omitempty"`
	StartISO           string     `json:"startISO"`
	EndISO             string     `json:"endISO"`
	DurationMinutes    int        `json:"durationMinutes"`
	Status             string     `json:"status"`
	Notes              *string    `json:"notes,omitempty"`
	CancellationReason *string    `json:"cancellationReason,omitempty"`
	CancelledAt        *time.Time `json:"cancelledAt,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

// OccupiedInterval занятый интервал [startISO, endISO)
type OccupiedInterval struct {
	AppointmentID int64  `json:"appointmentId"`
	StartISO      string `json:"startISO"`
	EndISO        string `json:"endISO"`
	Status        string `json:"status"`
}

// StaffLedgerResponse занятые интервалы мастера на дату
type StaffLedgerResponse struct {
	StaffID  string             `json:"staffId"`
	Date     string             `json:"date"`
	Timezone string             `json:"timezone"`
	Occupied []OccupiedInterval `json:"occupied"`
}

// Методы конвертации

// FromDomainAppointment конвертирует domain модель в DTO.
// Время отдаётся в часовом поясе loc.
func FromDomainAppointment(a *domain.Appointment, loc *time.Location) *AppointmentResponse {
	if a == nil {
		return nil
	}
	return &AppointmentResponse{
		ID:                 a.ID,
		TenantID:           a.TenantID,
		StaffID:            a.StaffID,
		ServiceID:          a.ServiceID,
		ClientID:           a.ClientID,
		VariantName:        a.VariantName,
		StartISO:           a.Start.In(loc).Format(time.RFC3339),
		EndISO:             a.End().In(loc).Format(time.RFC3339),
		DurationMinutes:    a.DurationMinutes,
		Status:             string(a.Status),
		Notes:              a.Notes,
		CancellationReason: a.CancellationReason,
		CancelledAt:        a.CancelledAt,
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
	}
}

// ToDomainStatus конвертирует строку в статус записи
func ToDomainStatus(s string) (domain.AppointmentStatus, bool) {
	status := domain.AppointmentStatus(s)
	return status, status.IsValid()
}
