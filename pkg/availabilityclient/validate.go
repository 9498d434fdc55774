package availabilityclient

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// dropWarnThreshold доля отброшенных слотов, после которой поднимается предупреждение
const dropWarnThreshold = 0.2

// validateSlots оставляет слоты с корректными RFC3339 границами, end > start,
// началом на запрошенной дате в часовом поясе тенанта и строго возрастающим началом.
func validateSlots(payload *SlotsPayload, date types.Date) (*Slots, error) {
	loc, err := time.LoadLocation(payload.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: unknown timezone %q", ErrInvalidResponse, payload.Timezone)
	}

	result := &Slots{
		Date:            date,
		Timezone:        payload.Timezone,
		DurationMinutes: payload.DurationMinutes,
		Slots:           make([]Slot, 0, len(payload.Slots)),
		Message:         payload.Message,
	}

	var last time.Time
	for _, raw := range payload.Slots {
		start, err := time.Parse(time.RFC3339, raw.StartISO)
		if err != nil {
			result.Dropped++
			continue
		}
		end, err := time.Parse(time.RFC3339, raw.EndISO)
		if err != nil || !end.After(start) {
			result.Dropped++
			continue
		}
		if types.DateOf(start.In(loc)) != date {
			result.Dropped++
			continue
		}
		if !last.IsZero() && !start.After(last) {
			result.Dropped++
			continue
		}
		last = start
		result.Slots = append(result.Slots, Slot{
			Start:    start.In(loc),
			End:      end.In(loc),
			StaffIDs: raw.StaffIDs,
		})
	}

	return result, nil
}

func parseMonth(payload *MonthPayload) ([]types.Date, error) {
	dates := make([]types.Date, 0, len(payload.FullyBooked))
	for _, s := range payload.FullyBooked {
		d, err := types.ParseDate(s)
		if err != nil {
			return nil, fmt.Errorf("%w: bad date %q", ErrInvalidResponse, s)
		}
		dates = append(dates, d)
	}
	return dates, nil
}
