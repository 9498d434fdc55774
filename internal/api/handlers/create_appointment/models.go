package create_appointment

import (
	"fmt"
	"time"

	createAppointment "github.com/m04kA/SMC-AvailabilityService/internal/usecase/create_appointment"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	ServiceID     string  `json:"serviceId"`
	VariantName   string  `json:"variantName,omitempty"`
	SpecialistID  string  `json:"specialistId,omitempty"` // Пусто - первый свободный мастер
	TotalDuration int     `json:"totalDuration,omitempty"`
	Date          string  `json:"date"`      // "2025-10-15"
	StartTime     string  `json:"startTime"` // "10:00"
	Notes         *string `json:"notes,omitempty"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID              int64   `json:"id"`
	TenantID        string  `json:"tenantId"`
	StaffID         string  `json:"staffId"`
	ServiceID       string  `json:"serviceId"`
	ClientID        string  `json:"clientId"`
	VariantName     *string `json:"variantName,omitempty"`
	StartISO        string  `json:"startISO"`
	EndISO          string  `json:"endISO"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	Notes           *string `json:"notes,omitempty"`
	CreatedAt       string  `json:"createdAt"`
}

// errInvalidTime ошибка разбора времени начала
type errInvalidTime struct{ err error }

func (e errInvalidTime) Error() string { return fmt.Sprintf("invalid start time: %v", e.err) }

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest(tenantID, clientID string) (*createAppointment.Request, error) {
	date, err := types.ParseDate(r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, errInvalidTime{err: err}
	}

	return &createAppointment.Request{
		TenantID:      tenantID,
		ClientID:      clientID,
		ServiceID:     r.ServiceID,
		VariantName:   r.VariantName,
		SpecialistID:  r.SpecialistID,
		TotalDuration: r.TotalDuration,
		Date:          date,
		StartTime:     startTime,
		Notes:         r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:              resp.ID,
		TenantID:        resp.TenantID,
		StaffID:         resp.StaffID,
		ServiceID:       resp.ServiceID,
		ClientID:        resp.ClientID,
		VariantName:     resp.VariantName,
		StartISO:        resp.Start.Format(time.RFC3339),
		EndISO:          resp.End.Format(time.RFC3339),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		Notes:           resp.Notes,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
	}
}
