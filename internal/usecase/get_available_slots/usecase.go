package get_available_slots

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/m04kA/SMC-AvailabilityService/internal/availability"
	"github.com/m04kA/SMC-AvailabilityService/internal/calendar"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/scheduling"
	"github.com/m04kA/SMC-AvailabilityService/pkg/metrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/tracing"
)

var tracer = tracing.Tracer("usecase/get_available_slots")

// UseCase use case для получения доступных слотов на дату
type UseCase struct {
	planner Planner
	cache   SlotsCache
	metrics *metrics.Metrics
	logger  Logger
}

// NewUseCase создает новый экземпляр use case. metrics может быть nil.
func NewUseCase(planner Planner, cache SlotsCache, m *metrics.Metrics, logger Logger) *UseCase {
	return &UseCase{
		planner: planner,
		cache:   cache,
		metrics: m,
		logger:  logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: tenant=%s, service=%s, variant=%q, specialist=%q, total=%d, date=%s",
		req.TenantID, req.ServiceID, req.VariantName, req.SpecialistID, req.TotalDuration, req.Date)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	ctx, span := tracer.Start(ctx, "GetAvailableSlots")
	defer span.End()
	span.SetAttributes(
		attribute.String("tenant.id", req.TenantID),
		attribute.String("service.id", req.ServiceID),
		attribute.String("date", req.Date.String()),
	)

	// 2. Кэш или расчёт
	data, err := uc.cache.Slots(ctx, req.TenantID, req.Date, req.cacheParams(), func(ctx context.Context) ([]byte, error) {
		resp, err := uc.compute(ctx, req)
		if err != nil {
			return nil, err
		}
		return json.Marshal(resp)
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	var resp Response
	if err := json.Unmarshal(data, &resp); err != nil {
		uc.logger.Error("GetAvailableSlots: failed to decode cached slots: %v", err)
		return nil, fmt.Errorf("%w: failed to decode cached slots: %v", ErrInternal, err)
	}

	span.SetAttributes(attribute.Int("slots.count", len(resp.Slots)))
	return &resp, nil
}

// compute рассчитывает слоты без кэша
func (uc *UseCase) compute(ctx context.Context, req *Request) (*Response, error) {
	q := req.query()

	// 3. Настройки, услуга и подходящие мастера
	plan, err := uc.planner.Prepare(ctx, q, req.Date, req.Date)
	if err != nil {
		return nil, uc.mapPlanError(err)
	}

	resp := &Response{
		Date:            req.Date,
		Timezone:        plan.Location.String(),
		DurationMinutes: plan.DurationMinutes,
		Slots:           []Slot{},
	}

	// 4. Проверка даты: прошлое - пустой ответ, за горизонтом - ошибка
	if req.Date.Before(plan.Today()) {
		uc.logger.Info("GetAvailableSlots: date %s is in the past for tenant=%s", req.Date, req.TenantID)
		resp.Message = MessagePastDate
		return resp, nil
	}
	if plan.BeyondHorizon(req.Date) {
		uc.logger.Warn("GetAvailableSlots: date %s is beyond horizon of %d days", req.Date, plan.Settings.AdvanceBookingDays)
		return nil, fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, plan.Settings.AdvanceBookingDays)
	}

	// 5. Записи мастеров за день
	inputs, err := uc.planner.Inputs(ctx, q, plan, calendar.DayBounds(req.Date, plan.Location))
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to load appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to load appointments: %v", ErrInternal, err)
	}

	// 6. Генерация
	result, err := availability.Generate(plan.Request(req.Date), inputs)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate slots: %v", err)
		if errors.Is(err, availability.ErrInvalidDuration) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return nil, fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
	}
	uc.reportIssues(req.TenantID, result)

	for _, s := range result.Slots {
		resp.Slots = append(resp.Slots, Slot{Start: s.Start, End: s.End, StaffIDs: s.StaffIDs})
	}
	if len(resp.Slots) == 0 {
		resp.Message = MessageNoSlots
	}

	mode := "specialist"
	if q.AnyAvailable() {
		mode = "any"
	}
	if uc.metrics != nil {
		uc.metrics.SlotsGenerated.WithLabelValues(mode).Observe(float64(len(resp.Slots)))
	}

	uc.logger.Info("GetAvailableSlots: generated %d slots for tenant=%s, service=%s, date=%s, staff=%d",
		len(resp.Slots), req.TenantID, req.ServiceID, req.Date, len(plan.Staff))

	return resp, nil
}

// reportIssues логирует пропущенные некорректные правила мастеров
func (uc *UseCase) reportIssues(tenantID string, result availability.Result) {
	for staffID, day := range result.Days {
		for _, issue := range day.Issues {
			uc.logger.Warn("GetAvailableSlots: ignored rule tenant=%s, staff=%s, date=%s, kind=%s: %s",
				tenantID, staffID, day.Date, issue.Kind, issue.Detail)
			if uc.metrics != nil {
				uc.metrics.MalformedRulesTotal.WithLabelValues(string(issue.Kind)).Inc()
			}
		}
	}
}

func (uc *UseCase) mapPlanError(err error) error {
	switch {
	case errors.Is(err, scheduling.ErrServiceNotFound):
		uc.logger.Warn("GetAvailableSlots: %v", err)
		return ErrServiceNotFound
	case errors.Is(err, scheduling.ErrVariantNotFound):
		uc.logger.Warn("GetAvailableSlots: %v", err)
		return fmt.Errorf("%w: %v", ErrVariantNotFound, err)
	case errors.Is(err, scheduling.ErrSpecialistNotEligible):
		uc.logger.Warn("GetAvailableSlots: %v", err)
		return ErrSpecialistNotEligible
	case errors.Is(err, scheduling.ErrUpstreamUnavailable):
		uc.logger.Error("GetAvailableSlots: catalog unavailable: %v", err)
		return fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	default:
		uc.logger.Error("GetAvailableSlots: failed to prepare plan: %v", err)
		return fmt.Errorf("%w: failed to prepare plan: %v", ErrInternal, err)
	}
}
