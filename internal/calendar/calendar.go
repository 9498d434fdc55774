// Package calendar содержит чистые функции для работы с датами и интервалами
// в часовом поясе тенанта.
package calendar

import (
	"time"

	// Часовые пояса встраиваются в бинарник, чтобы не зависеть от zoneinfo хоста.
	_ "time/tzdata"

	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// Span полуоткрытый интервал времени [Start, End)
type Span struct {
	Start time.Time
	End   time.Time
}

// Overlaps проверяет пересечение двух полуоткрытых интервалов
func (s Span) Overlaps(other Span) bool {
	return IntervalsOverlap(s.Start, s.End, other.Start, other.End)
}

// ResolveDayOfWeek возвращает день недели момента t в часовом поясе loc
func ResolveDayOfWeek(t time.Time, loc *time.Location) time.Weekday {
	return t.In(loc).Weekday()
}

// IntervalsOverlap проверяет пересечение [aStart, aEnd) и [bStart, bEnd).
// Касание концами (aEnd == bStart) пересечением не считается.
func IntervalsOverlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// AddMinutes сдвигает момент времени на n минут абсолютного времени.
// Проверки рабочих часов выполняются в wall-clock минутах до перевода в момент времени,
// поэтому переход на летнее время не сдвигает уже проверенное начало.
func AddMinutes(t time.Time, n int) time.Time {
	return t.Add(time.Duration(n) * time.Minute)
}

// At возвращает момент времени для даты и минут от полуночи в часовом поясе loc
func At(d types.Date, minutes int, loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, minutes/60, minutes%60, 0, 0, loc)
}

// DayBounds возвращает [полночь даты, полночь следующей даты) в часовом поясе loc.
// В дни перехода на летнее/зимнее время длина дня отличается от 24 часов.
func DayBounds(d types.Date, loc *time.Location) Span {
	return Span{Start: d.In(loc), End: d.AddDays(1).In(loc)}
}

// MonthBounds возвращает [первое число месяца, первое число следующего месяца) в loc
func MonthBounds(year int, month time.Month, loc *time.Location) Span {
	first := types.NewDate(year, month, 1)
	return Span{Start: first.In(loc), End: types.NewDate(year, month+1, 1).In(loc)}
}

// DatesInMonth возвращает все даты месяца по порядку
func DatesInMonth(year int, month time.Month) []types.Date {
	n := types.DaysInMonth(year, month)
	dates := make([]types.Date, 0, n)
	for day := 1; day <= n; day++ {
		dates = append(dates, types.NewDate(year, month, day))
	}
	return dates
}

// Today возвращает текущую дату в часовом поясе loc
func Today(now time.Time, loc *time.Location) types.Date {
	return types.DateOf(now.In(loc))
}
