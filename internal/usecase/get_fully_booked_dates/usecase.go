package get_fully_booked_dates

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
	"github.com/m04kA/SMC-AvailabilityService/pkg/tracing"
)

var tracer = tracing.Tracer("usecase/get_fully_booked_dates")

// UseCase use case для получения полностью занятых дат месяца
type UseCase struct {
	planner Planner
	cache   MonthCache
	logger  Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(planner Planner, cache MonthCache, logger Logger) *UseCase {
	return &UseCase{
		planner: planner,
		cache:   cache,
		logger:  logger,
	}
}

// Execute выполняет use case.
// Генератор вызывается для каждой даты месяца, дата без слотов считается занятой.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetFullyBookedDates: tenant=%s, month=%04d-%02d, service=%q, specialist=%q",
		req.TenantID, req.Year, int(req.Month), req.ServiceID, req.SpecialistID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetFullyBookedDates: validation failed: %v", err)
		return nil, err
	}

	ctx, span := tracer.Start(ctx, "GetFullyBookedDates")
	defer span.End()
	span.SetAttributes(
		attribute.String("tenant.id", req.TenantID),
		attribute.Int("year", req.Year),
		attribute.Int("month", int(req.Month)),
	)

	// 2. Кэш или расчёт
	data, err := uc.cache.Month(ctx, req.TenantID, req.Year, req.Month, req.cacheParams(), func(ctx context.Context) ([]byte, error) {
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
		uc.logger.Error("GetFullyBookedDates: failed to decode cached index: %v", err)
		return nil, fmt.Errorf("%w: failed to decode cached index: %v", ErrInternal, err)
	}

	return &resp, nil
}

func (uc *UseCase) compute(ctx context.Context, req *Request) (*Response, error) {
	q := req.query()
	dates := calendar.DatesInMonth(req.Year, req.Month)

	// 3. Настройки, услуга и мастера с правилами на весь месяц
	plan, err := uc.planner.Prepare(ctx, q, dates[0], dates[len(dates)-1])
	if err != nil {
		return nil, uc.mapPlanError(err)
	}

	// 4. Записи мастеров за месяц
	inputs, err := uc.planner.Inputs(ctx, q, plan, calendar.MonthBounds(req.Year, req.Month, plan.Location))
	if err != nil {
		uc.logger.Error("GetFullyBookedDates: failed to load appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to load appointments: %v", ErrInternal, err)
	}

	// 5. Генератор по каждой дате
	booked, err := availability.FullyBookedDates(plan.MonthRequest(req.Year, req.Month), inputs)
	if err != nil {
		uc.logger.Error("GetFullyBookedDates: failed to build index: %v", err)
		if errors.Is(err, availability.ErrInvalidDuration) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return nil, fmt.Errorf("%w: failed to build index: %v", ErrInternal, err)
	}

	uc.logger.Info("GetFullyBookedDates: %d of %d dates fully booked for tenant=%s, month=%04d-%02d",
		len(booked), len(dates), req.TenantID, req.Year, int(req.Month))

	return &Response{Year: req.Year, Month: req.Month, FullyBooked: booked}, nil
}

func (uc *UseCase) mapPlanError(err error) error {
	switch {
	case errors.Is(err, scheduling.ErrServiceNotFound):
		uc.logger.Warn("GetFullyBookedDates: %v", err)
		return ErrServiceNotFound
	case errors.Is(err, scheduling.ErrVariantNotFound):
		uc.logger.Warn("GetFullyBookedDates: %v", err)
		return fmt.Errorf("%w: %v", ErrVariantNotFound, err)
	case errors.Is(err, scheduling.ErrSpecialistNotEligible):
		uc.logger.Warn("GetFullyBookedDates: %v", err)
		return ErrSpecialistNotEligible
	case errors.Is(err, scheduling.ErrUpstreamUnavailable):
		uc.logger.Error("GetFullyBookedDates: catalog unavailable: %v", err)
		return fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	default:
		uc.logger.Error("GetFullyBookedDates: failed to prepare plan: %v", err)
		return fmt.Errorf("%w: failed to prepare plan: %v", ErrInternal, err)
	}
}
