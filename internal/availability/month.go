package availability

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/calendar"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// MonthRequest параметры расчёта полностью занятых дат месяца
type MonthRequest struct {
	Year            int
	Month           time.Month
	Location        *time.Location
	DurationMinutes int
	BufferMinutes   int
	StepMinutes     int
	NotBefore       time.Time
	// LastBookableDate последняя дата горизонта записи. Нулевое значение - без ограничения
	LastBookableDate types.Date
}

// FullyBookedDates возвращает даты месяца, на которые генератор не нашёл ни одного слота.
// Генератор вызывается для каждой даты месяца.
func FullyBookedDates(req MonthRequest, staff []StaffInput) ([]types.Date, error) {
	booked := make([]types.Date, 0)

	for _, date := range calendar.DatesInMonth(req.Year, req.Month) {
		res, err := Generate(Request{
			Date:            date,
			Location:        req.Location,
			DurationMinutes: req.DurationMinutes,
			BufferMinutes:   req.BufferMinutes,
			StepMinutes:     req.StepMinutes,
			NotBefore:       req.NotBefore,
		}, staff)
		if err != nil {
			return nil, err
		}

		beyondHorizon := !req.LastBookableDate.IsZero() && date.After(req.LastBookableDate)
		if len(res.Slots) == 0 || beyondHorizon {
			booked = append(booked, date)
		}
	}

	return booked, nil
}
