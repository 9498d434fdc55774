package bookingevents

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

const EventTypeAppointmentChanged = "appointment.changed"

// AppointmentChanged событие создания, отмены или смены статуса записи.
// Date - дата записи в часовом поясе тенанта (YYYY-MM-DD).
type AppointmentChanged struct {
	EventID    string                   `json:"eventId"`
	TenantID   string                   `json:"tenantId"`
	StaffID    string                   `json:"staffId"`
	Date       string                   `json:"date"`
	Status     domain.AppointmentStatus `json:"status"`
	OccurredAt time.Time                `json:"occurredAt"`
}
