package get_available_slots

import (
	"time"

	getAvailableSlots "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_available_slots"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date            string          `json:"date"`
	Timezone        string          `json:"timezone"`
	DurationMinutes int             `json:"durationMinutes"`
	Slots           []AvailableSlot `json:"slots"`
	Message         string          `json:"message,omitempty"`
}

// AvailableSlot модель временного слота. Время в часовом поясе тенанта.
type AvailableSlot struct {
	StartISO string   `json:"startISO"`
	EndISO   string   `json:"endISO"`
	StaffIDs []string `json:"staffIds"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	loc, err := time.LoadLocation(resp.Timezone)
	if err != nil {
		loc = time.UTC
	}

	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			StartISO: slot.Start.In(loc).Format(time.RFC3339),
			EndISO:   slot.End.In(loc).Format(time.RFC3339),
			StaffIDs: slot.StaffIDs,
		}
	}

	return &AvailableSlotsResponse{
		Date:            resp.Date.String(),
		Timezone:        resp.Timezone,
		DurationMinutes: resp.DurationMinutes,
		Slots:           slots,
		Message:         resp.Message,
	}
}
