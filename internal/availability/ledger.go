package availability

import (
	"github.com/m04kA/SMC-AvailabilityService/internal/calendar"
	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
)

// OccupiedSpans возвращает занятые интервалы мастера [start, start+duration+buffer).
// Учитываются только записи в занимающих статусах.
func OccupiedSpans(appointments []*domain.Appointment, staffID string, bufferMinutes int) []calendar.Span {
	spans := make([]calendar.Span, 0, len(appointments))
	for _, a := range appointments {
		if a.StaffID != staffID || !a.IsOccupying() {
			continue
		}
		spans = append(spans, calendar.Span{
			Start: a.Start,
			End:   calendar.AddMinutes(a.Start, a.DurationMinutes+bufferMinutes),
		})
	}
	return spans
}

// GroupByStaff раскладывает записи по мастерам
func GroupByStaff(appointments []*domain.Appointment) map[string][]*domain.Appointment {
	grouped := make(map[string][]*domain.Appointment)
	for _, a := range appointments {
		grouped[a.StaffID] = append(grouped[a.StaffID], a)
	}
	return grouped
}

func overlapsAnySpan(span calendar.Span, busy []calendar.Span) bool {
	for _, b := range busy {
		if span.Overlaps(b) {
			return true
		}
	}
	return false
}
