package domain

import (
	"time"

	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// WorkingHours регулярный рабочий интервал мастера в определённый день недели
type WorkingHours struct {
	DayOfWeek time.Weekday
	Start     types.TimeString
	End       types.TimeString
}

// Break регулярный перерыв, вычитаемый из рабочего времени
type Break struct {
	DayOfWeek time.Weekday
	Start     types.TimeString
	End       types.TimeString
}

// TimeRange интервал [Start, End) внутри дня
type TimeRange struct {
	Start types.TimeString
	End   types.TimeString
}

// TimeOff диапазон дат (включительно), когда мастер не работает
type TimeOff struct {
	Start  types.Date
	End    types.Date
	Reason string
}

// Covers возвращает true, если дата попадает в отпуск
func (t TimeOff) Covers(d types.Date) bool {
	return !d.Before(t.Start) && !d.After(t.End)
}

// StaffMember мастер салона вместе с правилами доступности
type StaffMember struct {
	ID       string
	TenantID string
	Name     string
	Active   bool

	WorkingHours []WorkingHours
	Breaks       []Break
	// CustomSchedule переопределяет WorkingHours на конкретную дату (ключ YYYY-MM-DD).
	// Пустой список означает выходной.
	CustomSchedule map[string][]TimeRange
	TimeOff        []TimeOff
}
