package availability

import (
	"fmt"
	"sort"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// Interval полуоткрытый интервал в минутах от полуночи [Start, End)
type Interval struct {
	Start int
	End   int
}

// Overlaps проверяет пересечение полуоткрытых интервалов
func (i Interval) Overlaps(o Interval) bool {
	return i.Start < o.End && o.Start < i.End
}

// Contains возвращает true, если o целиком внутри i
func (i Interval) Contains(o Interval) bool {
	return i.Start <= o.Start && o.End <= i.End
}

func (i Interval) String() string {
	return fmt.Sprintf("[%s, %s)", types.TimeStringFromMinutes(i.Start), types.TimeStringFromMinutes(i.End))
}

// RuleSource уровень правил, определивший открытые интервалы дня
type RuleSource string

const (
	SourceTimeOff        RuleSource = "time_off"
	SourceCustomSchedule RuleSource = "custom_schedule"
	SourceWorkingHours   RuleSource = "working_hours"
	SourceNone           RuleSource = "none"
)

// IssueKind тип некорректного правила
type IssueKind string

const (
	IssueInvalidWorkingHours   IssueKind = "invalid_working_hours"
	IssueDuplicateWorkingHours IssueKind = "duplicate_working_hours"
	IssueInvalidCustomRange    IssueKind = "invalid_custom_range"
	IssueInvalidBreak          IssueKind = "invalid_break"
	IssueBreakOutsideHours     IssueKind = "break_outside_hours"
)

// Issue некорректное правило, пропущенное при расчёте
type Issue struct {
	Kind   IssueKind
	Detail string
}

// DayRules открытые интервалы мастера на дату до учёта записей
type DayRules struct {
	Date   types.Date
	Source RuleSource
	Open   []Interval // Непересекающиеся, отсортированы, перерывы уже вычтены
	Breaks []Interval // Перерывы, применённые в этот день
	Issues []Issue
}

// IsClosed возвращает true, если в этот день нет открытых интервалов
func (d DayRules) IsClosed() bool {
	return len(d.Open) == 0
}

// ResolveDay вычисляет открытые интервалы мастера на дату.
// Приоритет (первое совпадение, без слияния уровней):
// отпуск -> индивидуальное расписание на дату -> рабочие часы дня недели.
// Затем из результата вычитаются перерывы дня недели.
// Некорректные правила пропускаются и попадают в Issues.
func ResolveDay(staff *domain.StaffMember, date types.Date) DayRules {
	day := DayRules{Date: date, Source: SourceNone}

	for _, off := range staff.TimeOff {
		if off.Covers(date) {
			day.Source = SourceTimeOff
			return day
		}
	}

	var open []Interval
	if ranges, ok := staff.CustomSchedule[date.String()]; ok {
		day.Source = SourceCustomSchedule
		for _, r := range ranges {
			iv, err := toInterval(r.Start, r.End)
			if err != nil {
				day.Issues = append(day.Issues, Issue{Kind: IssueInvalidCustomRange, Detail: err.Error()})
				continue
			}
			open = append(open, iv)
		}
	} else {
		weekday := date.Weekday()
		found := false
		for _, wh := range staff.WorkingHours {
			if wh.DayOfWeek != weekday {
				continue
			}
			iv, err := toInterval(wh.Start, wh.End)
			if err != nil {
				day.Issues = append(day.Issues, Issue{Kind: IssueInvalidWorkingHours, Detail: err.Error()})
				continue
			}
			if found {
				day.Issues = append(day.Issues, Issue{
					Kind:   IssueDuplicateWorkingHours,
					Detail: fmt.Sprintf("%s %s ignored", weekday, iv),
				})
				continue
			}
			found = true
			day.Source = SourceWorkingHours
			open = append(open, iv)
		}
	}

	open = mergeIntervals(open)
	if len(open) == 0 {
		return day
	}

	// Перерывы проверяются по часам до вычитания: пересекающиеся перерывы корректны
	hours := open
	for _, br := range staff.Breaks {
		if br.DayOfWeek != date.Weekday() {
			continue
		}
		iv, err := toInterval(br.Start, br.End)
		if err != nil {
			day.Issues = append(day.Issues, Issue{Kind: IssueInvalidBreak, Detail: err.Error()})
			continue
		}

		switch {
		case containedInAny(hours, iv):
			open = subtract(open, iv)
			day.Breaks = append(day.Breaks, iv)
		case overlapsAny(hours, iv):
			// Перерыв частично вне рабочего времени - конфигурация некорректна, пропускаем его
			day.Issues = append(day.Issues, Issue{
				Kind:   IssueBreakOutsideHours,
				Detail: fmt.Sprintf("break %s crosses open hours", iv),
			})
		case day.Source == SourceWorkingHours:
			day.Issues = append(day.Issues, Issue{
				Kind:   IssueBreakOutsideHours,
				Detail: fmt.Sprintf("break %s outside working hours", iv),
			})
		}
	}

	day.Open = open
	return day
}

func toInterval(start, end types.TimeString) (Interval, error) {
	s, err := start.Minutes()
	if err != nil {
		return Interval{}, err
	}
	e, err := end.Minutes()
	if err != nil {
		return Interval{}, err
	}
	if s >= e {
		return Interval{}, fmt.Errorf("start %s is not before end %s", start, end)
	}
	return Interval{Start: s, End: e}, nil
}

// mergeIntervals сортирует интервалы и склеивает пересекающиеся
func mergeIntervals(in []Interval) []Interval {
	if len(in) == 0 {
		return nil
	}
	sorted := make([]Interval, len(in))
	copy(sorted, in)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	merged := []Interval{sorted[0]}
	for _, iv := range sorted[1:] {
		last := &merged[len(merged)-1]
		if iv.Start <= last.End {
			if iv.End > last.End {
				last.End = iv.End
			}
			continue
		}
		merged = append(merged, iv)
	}
	return merged
}

func subtract(open []Interval, cut Interval) []Interval {
	result := make([]Interval, 0, len(open)+1)
	for _, iv := range open {
		if !iv.Overlaps(cut) {
			result = append(result, iv)
			continue
		}
		if iv.Start < cut.Start {
			result = append(result, Interval{Start: iv.Start, End: cut.Start})
		}
		if cut.End < iv.End {
			result = append(result, Interval{Start: cut.End, End: iv.End})
		}
	}
	return result
}

func containedInAny(open []Interval, iv Interval) bool {
	for _, o := range open {
		if o.Contains(iv) {
			return true
		}
	}
	return false
}

func overlapsAny(list []Interval, iv Interval) bool {
	for _, o := range list {
		if o.Overlaps(iv) {
			return true
		}
	}
	return false
}
