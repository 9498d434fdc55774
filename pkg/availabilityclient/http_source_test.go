package availabilityclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPSource_Slots(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/tenants/t1/available-slots", r.URL.Path)
		assert.Equal(t, "svc", r.URL.Query().Get("serviceId"))
		assert.Equal(t, "2024-03-04", r.URL.Query().Get("date"))
		assert.Equal(t, "90", r.URL.Query().Get("totalDuration"))
		assert.Equal(t, "true", r.URL.Query().Get("any"))
		assert.Empty(t, r.URL.Query().Get("specialistId"))
		assert.Equal(t, "bff", r.Header.Get("X-User-ID"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"date":"2024-03-04","timezone":"UTC","durationMinutes":90,
			"slots":[{"startISO":"2024-03-04T09:00:00Z","endISO":"2024-03-04T10:30:00Z","staffIds":["a","b"]}]}`))
	}))
	defer srv.Close()

	src := NewHTTPSource(srv.URL, time.Second, "bff")
	payload, err := src.Slots(context.Background(), Params{
		TenantID:      "t1",
		ServiceID:     "svc",
		TotalDuration: 90,
		Any:           true,
		Date:          testDate,
	})

	require.NoError(t, err)
	assert.Equal(t, "UTC", payload.Timezone)
	require.Len(t, payload.Slots, 1)
	assert.Equal(t, []string{"a", "b"}, payload.Slots[0].StaffIDs)
}

func TestHTTPSource_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"услуга не найдена"}`))
	}))
	defer srv.Close()

	_, err := NewHTTPSource(srv.URL, time.Second, "").Slots(context.Background(), params("svc"))

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusNotFound, statusErr.Code)
	assert.Equal(t, "услуга не найдена", statusErr.Message)
	assert.False(t, statusErr.Temporary())
}

func TestHTTPSource_FullyBookedDates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/tenants/t1/fully-booked-dates", r.URL.Path)
		assert.Equal(t, "2024", r.URL.Query().Get("year"))
		assert.Equal(t, "3", r.URL.Query().Get("month"))
		_, _ = w.Write([]byte(`{"year":2024,"month":3,"fullyBooked":["2024-03-10"]}`))
	}))
	defer srv.Close()

	payload, err := NewHTTPSource(srv.URL, time.Second, "").FullyBookedDates(context.Background(),
		MonthParams{TenantID: "t1", Year: 2024, Month: time.March})

	require.NoError(t, err)
	assert.Equal(t, []string{"2024-03-10"}, payload.FullyBooked)
}

func TestHTTPSource_BadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{`))
	}))
	defer srv.Close()

	_, err := NewHTTPSource(srv.URL, time.Second, "").Slots(context.Background(), params("svc"))
	assert.ErrorIs(t, err, ErrInvalidResponse)
}
