package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

func mustLoadLoc(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	require.NoError(t, err)
	return loc
}

func TestIntervalsOverlap(t *testing.T) {
	base := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	at := func(h, m int) time.Time { return base.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute) }

	tests := []struct {
		name string
		a, b Span
		want bool
	}{
		{name: "touching end to start", a: Span{at(10, 0), at(11, 0)}, b: Span{at(11, 0), at(12, 0)}, want: false},
		{name: "touching start to end", a: Span{at(11, 0), at(12, 0)}, b: Span{at(10, 0), at(11, 0)}, want: false},
		{name: "partial overlap", a: Span{at(10, 30), at(11, 30)}, b: Span{at(10, 0), at(11, 0)}, want: true},
		{name: "containment", a: Span{at(9, 0), at(17, 0)}, b: Span{at(13, 0), at(14, 0)}, want: true},
		{name: "identical", a: Span{at(10, 0), at(11, 0)}, b: Span{at(10, 0), at(11, 0)}, want: true},
		{name: "disjoint", a: Span{at(8, 0), at(9, 0)}, b: Span{at(10, 0), at(11, 0)}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Overlaps(tt.b))
			assert.Equal(t, tt.want, tt.b.Overlaps(tt.a))
		})
	}
}

func TestResolveDayOfWeek_UsesTenantTimezone(t *testing.T) {
	tokyo := mustLoadLoc(t, "Asia/Tokyo")

	// Воскресенье 20:00 UTC - уже понедельник в Токио
	instant := time.Date(2025, 6, 1, 20, 0, 0, 0, time.UTC)

	assert.Equal(t, time.Sunday, ResolveDayOfWeek(instant, time.UTC))
	assert.Equal(t, time.Monday, ResolveDayOfWeek(instant, tokyo))
}

func TestAt_KeepsWallClockAcrossDST(t *testing.T) {
	london := mustLoadLoc(t, "Europe/London")

	before := At(types.NewDate(2025, time.March, 29), 9*60, london)
	after := At(types.NewDate(2025, time.March, 31), 9*60, london)

	assert.Equal(t, 9, before.Hour())
	assert.Equal(t, 9, after.Hour())
	assert.Equal(t, 9, before.UTC().Hour())
	assert.Equal(t, 8, after.UTC().Hour())
}

func TestDayBounds_ShortDay(t *testing.T) {
	london := mustLoadLoc(t, "Europe/London")

	span := DayBounds(types.NewDate(2025, time.March, 30), london)
	assert.Equal(t, 23*time.Hour, span.End.Sub(span.Start))
}

func TestAddMinutes(t *testing.T) {
	start := time.Date(2025, 6, 2, 16, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 6, 2, 17, 0, 0, 0, time.UTC), AddMinutes(start, 60))
}

func TestDatesInMonth(t *testing.T) {
	dates := DatesInMonth(2024, time.February)
	require.Len(t, dates, 29)
	assert.Equal(t, "2024-02-01", dates[0].String())
	assert.Equal(t, "2024-02-29", dates[28].String())
}
