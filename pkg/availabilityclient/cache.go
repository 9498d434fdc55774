package availabilityclient

import (
	"sync"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

type cacheEntry struct {
	slots     *Slots
	month     []types.Date
	date      types.Date // Для слотов
	year      int        // Для индекса месяца
	monthNum  time.Month
	expiresAt time.Time
}

// resultCache кэш результатов по полному набору параметров с окном свежести
type resultCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]cacheEntry
}

func newResultCache(ttl time.Duration, now func() time.Time) *resultCache {
	return &resultCache{
		ttl:     ttl,
		now:     now,
		entries: make(map[string]cacheEntry),
	}
}

func (c *resultCache) slots(p Params) (*Slots, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[p.Key()]
	if !ok || entry.slots == nil {
		return nil, false
	}
	if !c.now().Before(entry.expiresAt) {
		delete(c.entries, p.Key())
		return nil, false
	}
	return entry.slots, true
}

func (c *resultCache) putSlots(p Params, s *Slots) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[p.Key()] = cacheEntry{
		slots:     s,
		date:      p.Date,
		expiresAt: c.now().Add(c.ttl),
	}
}

func (c *resultCache) month(p MonthParams) ([]types.Date, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[p.Key()]
	if !ok || entry.slots != nil {
		return nil, false
	}
	if !c.now().Before(entry.expiresAt) {
		delete(c.entries, p.Key())
		return nil, false
	}
	return entry.month, true
}

func (c *resultCache) putMonth(p MonthParams, dates []types.Date) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[p.Key()] = cacheEntry{
		month:     dates,
		year:      p.Year,
		monthNum:  p.Month,
		expiresAt: c.now().Add(c.ttl),
	}
}

// invalidate удаляет слоты на дату и индекс месяца, в который она входит
func (c *resultCache) invalidate(date types.Date) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key, entry := range c.entries {
		sameDate := entry.slots != nil && entry.date == date
		sameMonth := entry.slots == nil && entry.year == date.Year && entry.monthNum == date.Month
		if sameDate || sameMonth {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}
