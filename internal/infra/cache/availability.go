package cache

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/m04kA/SMC-AvailabilityService/pkg/metrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

const (
	KindSlots = "slots"
	KindMonth = "month"

	sharedLoadTimeout = 10 * time.Second
)

// Loader вычисляет значение при промахе кэша
type Loader func(ctx context.Context) ([]byte, error)

// Availability кэш результатов расчёта доступности.
//
// Ключ включает версии областей тенанта, даты и месяца. Запись или отмена
// увеличивает версии даты и месяца, изменение настроек - версию тенанта,
// после чего старые ключи больше не читаются и истекают по TTL.
// Одинаковые одновременные промахи выполняют Loader один раз.
type Availability struct {
	store   Store
	ttl     time.Duration
	group   singleflight.Group
	metrics *metrics.Metrics
	log     Logger
}

// NewAvailability создает кэш. metrics может быть nil.
func NewAvailability(store Store, ttl time.Duration, m *metrics.Metrics, log Logger) *Availability {
	return &Availability{store: store, ttl: ttl, metrics: m, log: log}
}

// Slots возвращает слоты даты из кэша или вычисляет их через load
func (c *Availability) Slots(ctx context.Context, tenantID string, date types.Date, params string, load Loader) ([]byte, error) {
	scopes := []string{tenantScope(tenantID), dateScope(tenantID, date)}
	return c.getOrLoad(ctx, KindSlots, scopes, fmt.Sprintf("slots:%s:%s:%s", tenantID, date, params), load)
}

// Month возвращает индекс полностью занятых дат месяца из кэша или вычисляет его через load
func (c *Availability) Month(ctx context.Context, tenantID string, year int, month time.Month, params string, load Loader) ([]byte, error) {
	scopes := []string{tenantScope(tenantID), monthScope(tenantID, year, month)}
	return c.getOrLoad(ctx, KindMonth, scopes, fmt.Sprintf("month:%s:%04d-%02d:%s", tenantID, year, int(month), params), load)
}

// InvalidateDate сбрасывает закэшированные слоты даты и индекс её месяца
func (c *Availability) InvalidateDate(ctx context.Context, tenantID string, date types.Date) error {
	if err := c.store.Bump(ctx, dateScope(tenantID, date)); err != nil {
		return err
	}
	return c.store.Bump(ctx, monthScope(tenantID, date.Year, date.Month))
}

// InvalidateTenant сбрасывает весь кэш тенанта
func (c *Availability) InvalidateTenant(ctx context.Context, tenantID string) error {
	return c.store.Bump(ctx, tenantScope(tenantID))
}

func (c *Availability) getOrLoad(ctx context.Context, kind string, scopes []string, base string, load Loader) ([]byte, error) {
	key, err := c.versionedKey(ctx, scopes, base)
	if err != nil {
		// Кэш недоступен - считаем напрямую
		c.warn("cache version lookup failed for %s: %v", base, err)
		c.observe(kind, "error")
		return load(ctx)
	}

	if val, ok, err := c.store.Get(ctx, key); err != nil {
		c.warn("cache get failed for %s: %v", key, err)
		c.observe(kind, "error")
	} else if ok {
		c.observe(kind, "hit")
		return val, nil
	} else {
		c.observe(kind, "miss")
	}

	// Общая загрузка не зависит от отмены запроса, который её начал
	ch := c.group.DoChan(key, func() (interface{}, error) {
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sharedLoadTimeout)
		defer cancel()

		val, err := load(loadCtx)
		if err != nil {
			return nil, err
		}
		if err := c.store.Set(loadCtx, key, val, c.ttl); err != nil {
			c.warn("cache set failed for %s: %v", key, err)
		}
		return val, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]byte), nil
	}
}

func (c *Availability) versionedKey(ctx context.Context, scopes []string, base string) (string, error) {
	key := base
	for _, scope := range scopes {
		v, err := c.store.Version(ctx, scope)
		if err != nil {
			return "", err
		}
		key += fmt.Sprintf(":v%d", v)
	}
	return key, nil
}

func (c *Availability) observe(kind, result string) {
	if c.metrics == nil {
		return
	}
	c.metrics.CacheRequestsTotal.WithLabelValues(kind, result).Inc()
}

func (c *Availability) warn(format string, v ...interface{}) {
	if c.log != nil {
		c.log.Warn(format, v...)
	}
}

func tenantScope(tenantID string) string {
	return "tenant:" + tenantID
}

func dateScope(tenantID string, date types.Date) string {
	return "date:" + tenantID + ":" + date.String()
}

func monthScope(tenantID string, year int, month time.Month) string {
	return fmt.Sprintf("month:%s:%04d-%02d", tenantID, year, int(month))
}
