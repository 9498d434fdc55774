package availabilityclient

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSlots(t *testing.T) {
	payload := &SlotsPayload{
		Timezone: "Asia/Tokyo",
		Slots: []SlotPayload{
			{StartISO: "2024-03-04T09:00:00+09:00", EndISO: "2024-03-04T10:00:00+09:00"},
			// Конец раньше начала
			{StartISO: "2024-03-04T10:00:00+09:00", EndISO: "2024-03-04T09:30:00+09:00"},
			// Время в UTC, в Токио это 10:30
			{StartISO: "2024-03-04T01:30:00Z", EndISO: "2024-03-04T02:30:00Z"},
			// Не по возрастанию
			{StartISO: "2024-03-04T09:30:00+09:00", EndISO: "2024-03-04T10:30:00+09:00"},
			// Другая дата в часовом поясе тенанта
			{StartISO: "2024-03-04T16:00:00Z", EndISO: "2024-03-04T17:00:00Z"},
			{StartISO: "not-a-time", EndISO: "2024-03-04T11:00:00+09:00"},
		},
	}

	got, err := validateSlots(payload, testDate)
	require.NoError(t, err)

	require.Len(t, got.Slots, 2)
	assert.Equal(t, "2024-03-04T09:00:00+09:00", got.Slots[0].Start.Format("2006-01-02T15:04:05Z07:00"))
	assert.Equal(t, "2024-03-04T10:30:00+09:00", got.Slots[1].Start.Format("2006-01-02T15:04:05Z07:00"))
	assert.Equal(t, 4, got.Dropped)
}

func TestValidateSlots_UnknownTimezone(t *testing.T) {
	_, err := validateSlots(&SlotsPayload{Timezone: "Mars/Olympus"}, testDate)
	assert.ErrorIs(t, err, ErrInvalidResponse)
}
