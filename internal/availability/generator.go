package availability

import (
	"sort"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/calendar"
	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// Request параметры генерации слотов на одну дату
type Request struct {
	Date            types.Date
	Location        *time.Location
	DurationMinutes int       // Длительность услуги D
	BufferMinutes   int       // Пауза после услуги, эффективная длительность D' = D + buffer
	StepMinutes     int       // Шаг между кандидатами G
	NotBefore       time.Time // Слоты, начинающиеся раньше, отбрасываются. Нулевое значение - без ограничения
}

func (r Request) validate() error {
	if r.DurationMinutes <= 0 {
		return ErrInvalidDuration
	}
	if r.StepMinutes <= 0 {
		return ErrInvalidStep
	}
	if r.Location == nil {
		return ErrMissingLocation
	}
	return nil
}

func (r Request) effectiveMinutes() int {
	if r.BufferMinutes < 0 {
		return r.DurationMinutes
	}
	return r.DurationMinutes + r.BufferMinutes
}

// StaffInput мастер вместе с его записями за период запроса
type StaffInput struct {
	Staff        *domain.StaffMember
	Appointments []*domain.Appointment
}

// Result результат генерации
type Result struct {
	Slots []domain.Slot
	Days  map[string]DayRules // Разрешённые правила по ID мастера
}

// Generate строит отсортированные слоты на дату.
// Для одного мастера - его слоты, для нескольких - объединение по времени начала
// с перечнем мастеров, способных принять запись.
// Отсутствие слотов - не ошибка.
func Generate(req Request, staff []StaffInput) (Result, error) {
	if err := req.validate(); err != nil {
		return Result{}, err
	}

	result := Result{Days: make(map[string]DayRules, len(staff))}
	byStart := make(map[int64]int)

	for _, in := range staff {
		slots, day := generateForStaff(req, in)
		result.Days[in.Staff.ID] = day

		for _, slot := range slots {
			key := slot.Start.UnixNano()
			if idx, ok := byStart[key]; ok {
				result.Slots[idx].StaffIDs = append(result.Slots[idx].StaffIDs, in.Staff.ID)
				continue
			}
			byStart[key] = len(result.Slots)
			result.Slots = append(result.Slots, slot)
		}
	}

	sort.SliceStable(result.Slots, func(i, j int) bool {
		return result.Slots[i].Start.Before(result.Slots[j].Start)
	})
	if result.Slots == nil {
		result.Slots = []domain.Slot{}
	}

	return result, nil
}

// generateForStaff генерирует слоты одного мастера:
// 1. открытые интервалы из правил;
// 2. кандидаты open, open+G, ... пока candidate + D' <= close;
// 3. отбрасываются пересечения с записями;
// 4. повторная проверка перерывов;
// 5. сортировка по времени начала.
func generateForStaff(req Request, in StaffInput) ([]domain.Slot, DayRules) {
	day := ResolveDay(in.Staff, req.Date)
	if day.IsClosed() {
		return nil, day
	}

	effective := req.effectiveMinutes()
	busy := OccupiedSpans(in.Appointments, in.Staff.ID, req.BufferMinutes)

	slots := make([]domain.Slot, 0)
	for _, open := range day.Open {
		for m := open.Start; m+effective <= open.End; m += req.StepMinutes {
			window := Interval{Start: m, End: m + effective}
			if overlapsAny(day.Breaks, window) {
				continue
			}

			start := calendar.At(req.Date, m, req.Location)
			// Несуществующее локальное время (переход на летнее время) пропускаем
			if start.Hour()*60+start.Minute() != m || types.DateOf(start) != req.Date {
				continue
			}
			if !req.NotBefore.IsZero() && start.Before(req.NotBefore) {
				continue
			}

			occupied := calendar.Span{Start: start, End: calendar.AddMinutes(start, effective)}
			if overlapsAnySpan(occupied, busy) {
				continue
			}

			slots = append(slots, domain.Slot{
				Start:    start,
				End:      calendar.AddMinutes(start, req.DurationMinutes),
				StaffIDs: []string{in.Staff.ID},
			})
		}
	}

	sort.Slice(slots, func(i, j int) bool { return slots[i].Start.Before(slots[j].Start) })
	return slots, day
}

// Offers проверяет, что мастер может принять запись, начинающуюся в start.
// Используется при записи для повторной проверки актуальности слота.
func Offers(req Request, in StaffInput, start time.Time) (bool, error) {
	if err := req.validate(); err != nil {
		return false, err
	}
	slots, _ := generateForStaff(req, in)
	for _, s := range slots {
		if s.Start.Equal(start) {
			return true, nil
		}
	}
	return false, nil
}
