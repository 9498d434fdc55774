package appointments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AvailabilityService/internal/calendar"
	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	apptRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-AvailabilityService/internal/integrations/bookingevents"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/appointments/models"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// Service сервис для работы с записями
type Service struct {
	apptRepo     AppointmentRepository
	settings     SettingsProvider
	cache        CacheInvalidator
	publisher    EventPublisher
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	apptRepo AppointmentRepository,
	settings SettingsProvider,
	cache CacheInvalidator,
	publisher EventPublisher,
	logger Logger,
) *Service {
	return &Service{
		apptRepo:     apptRepo,
		settings:     settings,
		cache:        cache,
		publisher:    publisher,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// GetByID получает запись по ID в рамках тенанта
func (s *Service) GetByID(ctx context.Context, tenantID string, id int64) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d for tenant=%s", id, tenantID)

	appt, err := s.get(ctx, "GetByID", tenantID, id)
	if err != nil {
		return nil, err
	}

	loc, err := s.location(ctx, tenantID, &appt.ServiceID)
	if err != nil {
		return nil, err
	}

	return models.FromDomainAppointment(appt, loc), nil
}

// Cancel отменяет запись и освобождает её интервал.
// Клиент, создавший запись, отменяет её как cancelled_by_client, остальные - как cancelled_by_salon.
func (s *Service) Cancel(ctx context.Context, tenantID string, id int64, req *models.CancelAppointmentRequest) error {
	s.logger.Info("Cancel: cancelling appointment id=%d for tenant=%s by user=%s", id, tenantID, req.UserID)

	if len(req.CancellationReason) > domain.MaxCancellationReasonLength {
		return fmt.Errorf("%w: cancellationReason must be at most %d characters", ErrInvalidInput, domain.MaxCancellationReasonLength)
	}

	appt, err := s.get(ctx, "Cancel", tenantID, id)
	if err != nil {
		return err
	}

	if !appt.CanBeCancelled() {
		s.logger.Warn("Cancel: appointment id=%d cannot be cancelled, status=%s", id, appt.Status)
		return ErrCannotCancel
	}

	status := domain.StatusCancelledBySalon
	if appt.ClientID == req.UserID {
		status = domain.StatusCancelledByClient
	}

	if err := s.apptRepo.Cancel(ctx, tenantID, id, status, req.CancellationReason, s.timeProvider.Now()); err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Cancel: appointment id=%d not found during cancellation", id)
			return ErrAppointmentNotFound
		}
		s.logger.Error("Cancel: repository error for appointment id=%d: %v", id, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	appt.Status = status
	s.notify(ctx, "Cancel", appt)

	s.logger.Info("Cancel: successfully cancelled appointment id=%d with status=%s", id, status)
	return nil
}

// UpdateStatus переводит запись в новый статус по таблице допустимых переходов
func (s *Service) UpdateStatus(ctx context.Context, tenantID string, id int64, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: updating appointment id=%d to status=%s by user=%s", id, req.Status, req.UserID)

	next, ok := models.ToDomainStatus(req.Status)
	if !ok {
		s.logger.Warn("UpdateStatus: invalid status=%s for appointment id=%d", req.Status, id)
		return fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	appt, err := s.get(ctx, "UpdateStatus", tenantID, id)
	if err != nil {
		return err
	}

	if !appt.Status.CanTransitionTo(next) {
		s.logger.Warn("UpdateStatus: transition %s -> %s not allowed for appointment id=%d", appt.Status, next, id)
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, appt.Status, next)
	}

	if err := s.apptRepo.UpdateStatus(ctx, tenantID, id, next, s.timeProvider.Now()); err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			return ErrAppointmentNotFound
		}
		s.logger.Error("UpdateStatus: repository error for appointment id=%d: %v", id, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	// Смена статуса может освободить интервал (completed, no_show)
	if appt.Status.IsOccupying() != next.IsOccupying() {
		appt.Status = next
		s.notify(ctx, "UpdateStatus", appt)
	}

	s.logger.Info("UpdateStatus: successfully updated appointment id=%d to status=%s", id, next)
	return nil
}

// StaffLedger возвращает занятые интервалы мастера на дату
func (s *Service) StaffLedger(ctx context.Context, req *models.StaffLedgerRequest) (*models.StaffLedgerResponse, error) {
	s.logger.Info("StaffLedger: tenant=%s, staff=%s, date=%s", req.TenantID, req.StaffID, req.Date)

	if req.TenantID == "" || req.StaffID == "" || req.Date.IsZero() {
		return nil, fmt.Errorf("%w: tenantId, staffId and date are required", ErrInvalidInput)
	}

	loc, err := s.location(ctx, req.TenantID, nil)
	if err != nil {
		return nil, err
	}

	day := calendar.DayBounds(req.Date, loc)
	appts, err := s.apptRepo.GetOccupying(ctx, domain.LedgerFilter{
		TenantID: req.TenantID,
		StaffIDs: []string{req.StaffID},
		From:     day.Start,
		To:       day.End,
	})
	if err != nil {
		s.logger.Error("StaffLedger: repository error: %v", err)
		return nil, fmt.Errorf("%w: StaffLedger - repository error: %v", ErrInternal, err)
	}

	resp := &models.StaffLedgerResponse{
		StaffID:  req.StaffID,
		Date:     req.Date.String(),
		Timezone: loc.String(),
		Occupied: make([]models.OccupiedInterval, 0, len(appts)),
	}
	for _, a := range appts {
		resp.Occupied = append(resp.Occupied, models.OccupiedInterval{
			AppointmentID: a.ID,
			StartISO:      a.Start.In(loc).Format(time.RFC3339),
			EndISO:        a.End().In(loc).Format(time.RFC3339),
			Status:        string(a.Status),
		})
	}

	s.logger.Info("StaffLedger: %d occupied intervals for staff=%s on %s", len(resp.Occupied), req.StaffID, req.Date)
	return resp, nil
}

// Вспомогательные методы

func (s *Service) get(ctx context.Context, op, tenantID string, id int64) (*domain.Appointment, error) {
	appt, err := s.apptRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			s.logger.Warn("%s: appointment id=%d not found", op, id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("%s: repository error for appointment id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return appt, nil
}

func (s *Service) location(ctx context.Context, tenantID string, serviceID *string) (*time.Location, error) {
	settings, _, err := s.settings.Effective(ctx, tenantID, serviceID)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
	}
	loc, err := settings.Location()
	if err != nil {
		return nil, fmt.Errorf("%w: invalid timezone %q: %v", ErrInternal, settings.Timezone, err)
	}
	return loc, nil
}

// notify сбрасывает кэш даты записи и публикует событие. Ошибки только логируются.
func (s *Service) notify(ctx context.Context, op string, appt *domain.Appointment) {
	loc, err := s.location(ctx, appt.TenantID, &appt.ServiceID)
	if err != nil {
		s.logger.Warn("%s: cannot resolve timezone for appointment id=%d: %v", op, appt.ID, err)
		return
	}
	date := types.DateOf(appt.Start.In(loc))

	if err := s.cache.InvalidateDate(ctx, appt.TenantID, date); err != nil {
		s.logger.Warn("%s: failed to invalidate cache for %s: %v", op, date, err)
	}

	event := bookingevents.AppointmentChanged{
		TenantID: appt.TenantID,
		StaffID:  appt.StaffID,
		Date:     date.String(),
		Status:   appt.Status,
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("%s: failed to publish event for appointment id=%d: %v", op, appt.ID, err)
	}
}
