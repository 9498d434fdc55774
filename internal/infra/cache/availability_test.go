package cache

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/pkg/metrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

type failingStore struct{ *MemoryStore }

func (f *failingStore) Version(context.Context, string) (int64, error) {
	return 0, errors.New("connection refused")
}

func counter(n *int32, value string) Loader {
	return func(context.Context) ([]byte, error) {
		atomic.AddInt32(n, 1)
		return []byte(value), nil
	}
}

func TestAvailability_SlotsCachedUntilInvalidated(t *testing.T) {
	ctx := context.Background()
	m := metrics.NewWithRegistry(prometheus.NewRegistry(), "test")
	c := NewAvailability(NewMemoryStore(), time.Minute, m, nil)
	date := types.NewDate(2024, time.March, 4)

	var calls int32
	val, err := c.Slots(ctx, "salon-1", date, "svc-1", counter(&calls, "a"))
	require.NoError(t, err)
	assert.Equal(t, "a", string(val))

	val, err = c.Slots(ctx, "salon-1", date, "svc-1", counter(&calls, "b"))
	require.NoError(t, err)
	assert.Equal(t, "a", string(val))
	assert.Equal(t, int32(1), calls)

	require.NoError(t, c.InvalidateDate(ctx, "salon-1", date))

	val, err = c.Slots(ctx, "salon-1", date, "svc-1", counter(&calls, "c"))
	require.NoError(t, err)
	assert.Equal(t, "c", string(val))
	assert.Equal(t, int32(2), calls)
}

func TestAvailability_SharedLoadSurvivesCallerCancel(t *testing.T) {
	c := NewAvailability(NewMemoryStore(), time.Minute, nil, nil)
	date := types.NewDate(2024, time.March, 4)

	var calls int32
	started := make(chan struct{})
	release := make(chan struct{})
	slow := func(ctx context.Context) ([]byte, error) {
		atomic.AddInt32(&calls, 1)
		close(started)
		<-release
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return []byte("a"), nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		_, err := c.Slots(ctx, "salon-1", date, "svc-1", slow)
		errCh <- err
	}()

	<-started
	cancel()
	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("cancelled caller did not return")
	}
	close(release)

	require.Eventually(t, func() bool {
		val, err := c.Slots(context.Background(), "salon-1", date, "svc-1", counter(&calls, "b"))
		return err == nil && string(val) == "a"
	}, time.Second, 10*time.Millisecond)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestAvailability_InvalidateDateDropsMonth(t *testing.T) {
	ctx := context.Background()
	c := NewAvailability(NewMemoryStore(), time.Minute, nil, nil)
	date := types.NewDate(2024, time.March, 4)

	var calls int32
	_, err := c.Month(ctx, "salon-1", 2024, time.March, "svc-1", counter(&calls, "x"))
	require.NoError(t, err)

	require.NoError(t, c.InvalidateDate(ctx, "salon-1", types.NewDate(2024, time.April, 1)))
	_, err = c.Month(ctx, "salon-1", 2024, time.March, "svc-1", counter(&calls, "x"))
	require.NoError(t, err)
	assert.Equal(t, int32(1), calls)

	require.NoError(t, c.InvalidateDate(ctx, "salon-1", date))
	_, err = c.Month(ctx, "salon-1", 2024, time.March, "svc-1", counter(&calls, "x"))
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls)
}

func TestAvailability_InvalidateTenant(t *testing.T) {
	ctx := context.Background()
	c := NewAvailability(NewMemoryStore(), time.Minute, nil, nil)
	date := types.NewDate(2024, time.March, 4)

	var calls int32
	_, _ = c.Slots(ctx, "salon-1", date, "p", counter(&calls, "x"))
	_, _ = c.Slots(ctx, "salon-2", date, "p", counter(&calls, "x"))
	require.NoError(t, c.InvalidateTenant(ctx, "salon-1"))
	_, _ = c.Slots(ctx, "salon-1", date, "p", counter(&calls, "x"))
	_, _ = c.Slots(ctx, "salon-2", date, "p", counter(&calls, "x"))

	assert.Equal(t, int32(3), calls)
}

func TestAvailability_StoreFailureFallsBackToLoader(t *testing.T) {
	c := NewAvailability(&failingStore{MemoryStore: NewMemoryStore()}, time.Minute, nil, nil)

	var calls int32
	val, err := c.Slots(context.Background(), "salon-1", types.NewDate(2024, time.March, 4), "p", counter(&calls, "direct"))
	require.NoError(t, err)
	assert.Equal(t, "direct", string(val))
}

func TestAvailability_LoaderErrorNotCached(t *testing.T) {
	ctx := context.Background()
	c := NewAvailability(NewMemoryStore(), time.Minute, nil, nil)
	date := types.NewDate(2024, time.March, 4)

	_, err := c.Slots(ctx, "salon-1", date, "p", func(context.Context) ([]byte, error) {
		return nil, errors.New("db down")
	})
	require.Error(t, err)

	var calls int32
	_, err = c.Slots(ctx, "salon-1", date, "p", counter(&calls, "ok"))
	require.NoError(t, err)
	assert.Equal(t, int32(1), calls)
}

func TestMemoryStore_TTL(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, time.March, 4, 10, 0, 0, 0, time.UTC)
	s := NewMemoryStore()
	s.now = func() time.Time { return now }

	require.NoError(t, s.Set(ctx, "k", []byte("v"), 30*time.Second))
	_, ok, _ := s.Get(ctx, "k")
	assert.True(t, ok)

	now = now.Add(30 * time.Second)
	_, ok, _ = s.Get(ctx, "k")
	assert.False(t, ok)
}
