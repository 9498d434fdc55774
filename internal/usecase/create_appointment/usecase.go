package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/availability"
	"github.com/m04kA/SMC-AvailabilityService/internal/calendar"
	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/integrations/bookingevents"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/scheduling"
	"github.com/m04kA/SMC-AvailabilityService/pkg/ptr"
)

// UseCase use case для создания записи.
// Повторно проверяет слот генератором внутри сериализуемой транзакции.
type UseCase struct {
	planner   Planner
	apptRepo  AppointmentRepository
	txManager TransactionManager
	cache     CacheInvalidator
	publisher EventPublisher
	logger    Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	planner Planner,
	apptRepo AppointmentRepository,
	txManager TransactionManager,
	cache CacheInvalidator,
	publisher EventPublisher,
	logger Logger,
) *UseCase {
	return &UseCase{
		planner:   planner,
		apptRepo:  apptRepo,
		txManager: txManager,
		cache:     cache,
		publisher: publisher,
		logger:    logger,
	}
}

// Execute выполняет use case создания записи
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: tenant=%s, client=%s, service=%s, specialist=%q, date=%s, time=%s",
		req.TenantID, req.ClientID, req.ServiceID, req.SpecialistID, req.Date, req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	startMinutes, err := req.StartTime.Minutes()
	if err != nil {
		return nil, fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}

	q := req.query()
	var result *domain.Appointment

	// 2. Проверка и создание в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Настройки, услуга и подходящие мастера
		plan, err := uc.planner.Prepare(txCtx, q, req.Date, req.Date)
		if err != nil {
			return uc.mapPlanError(err)
		}

		// 2.2. Дата и минимальное время до записи
		if req.Date.Before(plan.Today()) {
			uc.logger.Warn("CreateAppointment: date %s is in the past", req.Date)
			return ErrInvalidDate
		}
		if plan.BeyondHorizon(req.Date) {
			uc.logger.Warn("CreateAppointment: date %s is beyond horizon of %d days", req.Date, plan.Settings.AdvanceBookingDays)
			return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, plan.Settings.AdvanceBookingDays)
		}

		start := calendar.At(req.Date, startMinutes, plan.Location)
		if start.Before(plan.NotBefore()) {
			uc.logger.Warn("CreateAppointment: start %s is earlier than allowed %s", start, plan.NotBefore())
			return fmt.Errorf("%w: must book at least %d minutes in advance", ErrTooLateToBook, plan.Settings.MinBookingNoticeMinutes)
		}

		// 2.3. Записи мастеров за день с блокировкой (FOR UPDATE)
		inputs, err := uc.planner.Inputs(txCtx, q, plan, calendar.DayBounds(req.Date, plan.Location))
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to load appointments: %v", err)
			return fmt.Errorf("%w: failed to load appointments: %v", ErrInternal, err)
		}

		// 2.4. Первый мастер в порядке услуги, которому генератор предлагает этот старт
		staffID, err := pinStaff(plan.Request(req.Date), inputs, start)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to check slot: %v", err)
			return fmt.Errorf("%w: failed to check slot: %v", ErrInternal, err)
		}
		if staffID == "" {
			uc.logger.Warn("CreateAppointment: slot %s %s is not available for tenant=%s", req.Date, req.StartTime, req.TenantID)
			return ErrSlotNotAvailable
		}

		// 2.5. Сохраняем запись
		appt := &domain.Appointment{
			TenantID:        req.TenantID,
			StaffID:         staffID,
			ServiceID:       req.ServiceID,
			ClientID:        req.ClientID,
			Start:           start,
			DurationMinutes: plan.DurationMinutes,
			Status:          domain.StatusPending,
			Notes:           req.Notes,
		}
		if req.VariantName != "" {
			appt.VariantName = ptr.Ptr(req.VariantName)
		}

		created, err := uc.apptRepo.Create(txCtx, appt)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		result = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateAppointment: created appointment id=%d, staff=%s, start=%s",
		result.ID, result.StaffID, result.Start)

	// 3. После коммита: сброс кэша и событие
	uc.afterCommit(ctx, req, result)

	return &Response{
		ID:              result.ID,
		TenantID:        result.TenantID,
		StaffID:         result.StaffID,
		ServiceID:       result.ServiceID,
		ClientID:        result.ClientID,
		VariantName:     result.VariantName,
		Start:           result.Start,
		End:             result.End(),
		DurationMinutes: result.DurationMinutes,
		Status:          string(result.Status),
		Notes:           result.Notes,
		CreatedAt:       result.CreatedAt,
	}, nil
}

// afterCommit ошибки здесь не отменяют созданную запись
func (uc *UseCase) afterCommit(ctx context.Context, req *Request, appt *domain.Appointment) {
	if err := uc.cache.InvalidateDate(ctx, req.TenantID, req.Date); err != nil {
		uc.logger.Warn("CreateAppointment: failed to invalidate cache for %s: %v", req.Date, err)
	}

	event := bookingevents.AppointmentChanged{
		TenantID: appt.TenantID,
		StaffID:  appt.StaffID,
		Date:     req.Date.String(),
		Status:   appt.Status,
	}
	if err := uc.publisher.Publish(ctx, event); err != nil {
		uc.logger.Warn("CreateAppointment: failed to publish event for appointment id=%d: %v", appt.ID, err)
	}
}

// pinStaff возвращает первого мастера, которому доступен старт, или пустую строку
func pinStaff(req availability.Request, inputs []availability.StaffInput, start time.Time) (string, error) {
	for _, in := range inputs {
		ok, err := availability.Offers(req, in, start)
		if err != nil {
			return "", err
		}
		if ok {
			return in.Staff.ID, nil
		}
	}
	return "", nil
}

func (uc *UseCase) mapPlanError(err error) error {
	switch {
	case errors.Is(err, scheduling.ErrServiceNotFound):
		uc.logger.Warn("CreateAppointment: %v", err)
		return ErrServiceNotFound
	case errors.Is(err, scheduling.ErrVariantNotFound):
		uc.logger.Warn("CreateAppointment: %v", err)
		return fmt.Errorf("%w: %v", ErrVariantNotFound, err)
	case errors.Is(err, scheduling.ErrSpecialistNotEligible):
		uc.logger.Warn("CreateAppointment: %v", err)
		return ErrSpecialistNotEligible
	case errors.Is(err, scheduling.ErrUpstreamUnavailable):
		uc.logger.Error("CreateAppointment: catalog unavailable: %v", err)
		return fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	default:
		uc.logger.Error("CreateAppointment: failed to prepare plan: %v", err)
		return fmt.Errorf("%w: failed to prepare plan: %v", ErrInternal, err)
	}
}
