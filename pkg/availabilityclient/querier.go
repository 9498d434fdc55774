package availabilityclient

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"

	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

const (
	DefaultDebounce     = 300 * time.Millisecond
	DefaultFreshFor     = 30 * time.Second
	DefaultRetryBackoff = 200 * time.Millisecond

	maxTries = 2 // Запрос и одна повторная попытка
)

// Options настройки Querier. Нулевые значения заменяются значениями по умолчанию.
type Options struct {
	Debounce        time.Duration
	FreshFor        time.Duration
	RetryBackoff    time.Duration
	RequireDuration bool // Не запрашивать слоты без варианта услуги или totalDuration

	OnResult  func(Result)
	OnWarning func(Warning)

	Logger Logger
	Now    func() time.Time
}

func (o *Options) withDefaults() {
	if o.Debounce <= 0 {
		o.Debounce = DefaultDebounce
	}
	if o.FreshFor <= 0 {
		o.FreshFor = DefaultFreshFor
	}
	if o.RetryBackoff <= 0 {
		o.RetryBackoff = DefaultRetryBackoff
	}
	if o.OnResult == nil {
		o.OnResult = func(Result) {}
	}
	if o.OnWarning == nil {
		o.OnWarning = func(Warning) {}
	}
	if o.Logger == nil {
		o.Logger = nopLogger{}
	}
	if o.Now == nil {
		o.Now = time.Now
	}
}

// Querier отправляет запросы слотов от имени интерфейса записи.
// Set можно вызывать на каждое изменение параметров: запрос уходит после паузы,
// предыдущий запрос отменяется, устаревшие ответы отбрасываются.
type Querier struct {
	source Source
	opts   Options
	cache  *resultCache
	log    Logger

	mu      sync.Mutex
	params  Params
	timer   *time.Timer
	seq     uint64
	cancel  context.CancelFunc
	closed  bool
	deliver sync.Mutex
}

// NewQuerier создает Querier поверх транспорта
func NewQuerier(source Source, opts Options) *Querier {
	opts.withDefaults()
	return &Querier{
		source: source,
		opts:   opts,
		cache:  newResultCache(opts.FreshFor, opts.Now),
		log:    opts.Logger,
	}
}

// Set запоминает новые параметры и перезапускает таймер паузы
func (q *Querier) Set(p Params) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}
	q.params = p
	if q.timer != nil {
		q.timer.Stop()
	}
	q.timer = time.AfterFunc(q.opts.Debounce, q.dispatch)
}

// Refresh отправляет запрос с текущими параметрами сразу, минуя паузу и кэш
func (q *Querier) Refresh() {
	q.mu.Lock()
	if q.timer != nil {
		q.timer.Stop()
	}
	p := q.params
	q.mu.Unlock()

	q.cache.invalidate(p.Date)
	q.dispatch()
}

// Invalidate удаляет из кэша слоты на дату и индекс её месяца.
// Вызывается после успешной записи или отмены.
func (q *Querier) Invalidate(date types.Date) {
	removed := q.cache.invalidate(date)
	q.log.Info("Invalidate: dropped %d cached results for date=%s", removed, date)
}

// Close останавливает таймер и отменяет запрос в полёте
func (q *Querier) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.closed = true
	if q.timer != nil {
		q.timer.Stop()
	}
	if q.cancel != nil {
		q.cancel()
	}
}

func (q *Querier) dispatch() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	p := q.params

	// Новые параметры вытесняют предыдущий запрос, даже если сами неполны
	if q.cancel != nil {
		q.cancel()
		q.cancel = nil
	}
	q.seq++
	seq := q.seq

	if !p.Ready(q.opts.RequireDuration) {
		q.mu.Unlock()
		return
	}

	if cached, ok := q.cache.slots(p); ok {
		q.mu.Unlock()
		q.publish(Result{Seq: seq, Params: p, Slots: cached, Cached: true})
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	q.cancel = cancel
	q.mu.Unlock()

	defer cancel()
	slots, err := q.load(ctx, p)
	if ctx.Err() != nil {
		// Отменён более новым запросом
		return
	}
	if err != nil {
		q.publish(Result{Seq: seq, Params: p, Err: err})
		return
	}

	q.cache.putSlots(p, slots)
	q.publish(Result{Seq: seq, Params: p, Slots: slots})
}

func (q *Querier) load(ctx context.Context, p Params) (*Slots, error) {
	payload, err := retry(ctx, q.opts.RetryBackoff, func() (*SlotsPayload, error) {
		return q.source.Slots(ctx, p)
	})
	if err != nil {
		return nil, q.classify("Slots", p.TenantID, err)
	}

	slots, err := validateSlots(payload, p.Date)
	if err != nil {
		q.log.Error("Slots: invalid response for tenant=%s date=%s: %v", p.TenantID, p.Date, err)
		return nil, err
	}

	total := len(payload.Slots)
	if slots.Dropped > 0 {
		q.log.Warn("Slots: dropped %d of %d slots for tenant=%s date=%s", slots.Dropped, total, p.TenantID, p.Date)
		warning := Warning{Params: p, Total: total, Dropped: slots.Dropped}
		if warning.DropRate() > dropWarnThreshold {
			q.opts.OnWarning(warning)
		}
	}
	return slots, nil
}

// FullyBookedDates возвращает полностью занятые даты месяца с учётом кэша
func (q *Querier) FullyBookedDates(ctx context.Context, p MonthParams) ([]types.Date, error) {
	if cached, ok := q.cache.month(p); ok {
		return cached, nil
	}

	payload, err := retry(ctx, q.opts.RetryBackoff, func() (*MonthPayload, error) {
		return q.source.FullyBookedDates(ctx, p)
	})
	if err != nil {
		return nil, q.classify("FullyBookedDates", p.TenantID, err)
	}

	dates, err := parseMonth(payload)
	if err != nil {
		q.log.Error("FullyBookedDates: invalid response for tenant=%s: %v", p.TenantID, err)
		return nil, err
	}

	q.cache.putMonth(p, dates)
	return dates, nil
}

// publish доставляет результат, если он не устарел
func (q *Querier) publish(r Result) {
	q.deliver.Lock()
	defer q.deliver.Unlock()

	q.mu.Lock()
	stale := r.Seq != q.seq
	q.mu.Unlock()
	if stale {
		return
	}
	q.opts.OnResult(r)
}

// classify оставляет отказы сервиса (4xx) как есть, остальное сводит к ErrUnavailable
func (q *Querier) classify(op, tenantID string, err error) error {
	var statusErr *StatusError
	if errors.As(err, &statusErr) && !statusErr.Temporary() {
		return err
	}
	if errors.Is(err, ErrInvalidResponse) || errors.Is(err, context.Canceled) {
		return err
	}
	q.log.Error("%s: availability unavailable for tenant=%s: %v", op, tenantID, err)
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}

func retry[T any](ctx context.Context, initial time.Duration, op func() (T, error)) (T, error) {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = initial

	return backoff.Retry(ctx, func() (T, error) {
		v, err := op()
		if err != nil && !retryable(err) {
			return v, backoff.Permanent(err)
		}
		return v, err
	}, backoff.WithBackOff(b), backoff.WithMaxTries(maxTries))
}

func retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, ErrInvalidResponse) {
		return false
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Temporary()
	}
	return true
}
