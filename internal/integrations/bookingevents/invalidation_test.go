package bookingevents

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

type recordingCache struct {
	tenant string
	date   types.Date
}

func (c *recordingCache) InvalidateDate(_ context.Context, tenantID string, date types.Date) error {
	c.tenant = tenantID
	c.date = date
	return nil
}

func TestInvalidateOnChange(t *testing.T) {
	cache := &recordingCache{}
	handler := InvalidateOnChange(cache)

	require.NoError(t, handler(context.Background(), AppointmentChanged{TenantID: "t1", Date: "2024-03-04"}))
	assert.Equal(t, "t1", cache.tenant)
	assert.Equal(t, types.NewDate(2024, 3, 4), cache.date)

	err := handler(context.Background(), AppointmentChanged{TenantID: "t1", Date: "04.03.2024"})
	assert.ErrorIs(t, err, ErrDecode)
}
