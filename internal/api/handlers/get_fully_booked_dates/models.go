package get_fully_booked_dates

import (
	getFullyBookedDates "github.com/m04kA/SMC-AvailabilityService/internal/usecase/get_fully_booked_dates"
)

// FullyBookedDatesResponse HTTP response model
type FullyBookedDatesResponse struct {
	Year        int      `json:"year"`
	Month       int      `json:"month"`
	FullyBooked []string `json:"fullyBooked"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getFullyBookedDates.Response) *FullyBookedDatesResponse {
	dates := make([]string, len(resp.FullyBooked))
	for i, d := range resp.FullyBooked {
		dates[i] = d.String()
	}
	return &FullyBookedDatesResponse{
		Year:        resp.Year,
		Month:       int(resp.Month),
		FullyBooked: dates,
	}
}
