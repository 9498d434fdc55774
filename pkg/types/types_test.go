package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeString_Parse(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{in: "09:00", want: 540},
		{in: "17:30:00", want: 1050},
		{in: "00:00", want: 0},
		{in: "24:00", want: 1440},
		{in: "24:30", wantErr: true},
		{in: "9:00", wantErr: true},
		{in: "09:60", wantErr: true},
		{in: "abc", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			ts, err := NewTimeStringFromString(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			m, err := ts.Minutes()
			require.NoError(t, err)
			assert.Equal(t, tt.want, m)
		})
	}
}

func TestTimeString_AddMinutes(t *testing.T) {
	ts := TimeString("16:30")

	got, err := ts.AddMinutes(30)
	require.NoError(t, err)
	assert.Equal(t, TimeString("17:00"), got)

	_, err = ts.AddMinutes(8 * 60)
	assert.ErrorIs(t, err, ErrTimeOutOfRange)

	assert.True(t, TimeString("09:00").IsBefore("09:30"))
	assert.False(t, TimeString("09:30").IsBefore("09:30"))
	assert.True(t, TimeString("10:00").IsAfter("09:59"))
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString
	require.NoError(t, ts.Scan([]byte("13:15:00")))
	assert.Equal(t, TimeString("13:15"), ts)

	require.NoError(t, ts.Scan(time.Date(2000, 1, 1, 8, 5, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("08:05"), ts)
}

func TestDate(t *testing.T) {
	d, err := ParseDate("2025-03-30")
	require.NoError(t, err)
	assert.Equal(t, time.Sunday, d.Weekday())
	assert.Equal(t, "2025-03-31", d.AddDays(1).String())
	assert.True(t, d.Before(d.AddDays(1)))
	assert.False(t, d.After(d))
	assert.Equal(t, 29, DaysInMonth(2024, time.February))
	assert.Equal(t, NewDate(2025, time.February, 1), NewDate(2025, time.January, 32))

	_, err = ParseDate("2025-02-30")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestDate_JSON(t *testing.T) {
	type payload struct {
		Date Date `json:"date"`
	}

	data, err := json.Marshal(payload{Date: NewDate(2024, time.March, 4)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"date":"2024-03-04"}`, string(data))

	var got payload
	require.NoError(t, json.Unmarshal([]byte(`{"date":"2024-10-27"}`), &got))
	assert.Equal(t, NewDate(2024, time.October, 27), got.Date)

	assert.Error(t, json.Unmarshal([]byte(`{"date":"27.10.2024"}`), &got))
}
