package scheduling

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/m04kA/SMC-AvailabilityService/internal/availability"
	"github.com/m04kA/SMC-AvailabilityService/internal/calendar"
	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	staffRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/staff"
	catalogClient "github.com/m04kA/SMC-AvailabilityService/internal/integrations/catalogservice"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

// Service собирает входные данные генератора слотов:
// настройки тенанта, услугу из каталога, подходящих мастеров и их записи.
type Service struct {
	settings     SettingsProvider
	catalog      CatalogClient
	staffRepo    StaffRepository
	apptRepo     AppointmentRepository
	timeProvider TimeProvider
}

// NewService создает новый экземпляр сервиса
func NewService(
	settings SettingsProvider,
	catalog CatalogClient,
	staffRepo StaffRepository,
	apptRepo AppointmentRepository,
) *Service {
	return &Service{
		settings:     settings,
		catalog:      catalog,
		staffRepo:    staffRepo,
		apptRepo:     apptRepo,
		timeProvider: &RealTimeProvider{},
	}
}

// WithTimeProvider подменяет источник времени
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// Prepare получает настройки и услугу параллельно, затем подходящих мастеров
// с правилами на период [from, to].
func (s *Service) Prepare(ctx context.Context, q Query, from, to types.Date) (*Plan, error) {
	plan := &Plan{Now: s.timeProvider.Now()}

	var serviceID *string
	if q.ServiceID != "" {
		serviceID = &q.ServiceID
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		settings, level, err := s.settings.Effective(gctx, q.TenantID, serviceID)
		if err != nil {
			return fmt.Errorf("%w: Prepare - settings: %v", ErrInternal, err)
		}
		plan.Settings = settings
		plan.SettingsLevel = level
		return nil
	})
	g.Go(func() error {
		if serviceID == nil {
			// Без услуги: все активные мастера тенанта
			plan.Service = &domain.Service{TenantID: q.TenantID}
			return nil
		}
		svc, err := s.catalog.GetService(gctx, q.TenantID, q.ServiceID)
		if err != nil {
			switch {
			case errors.Is(err, catalogClient.ErrServiceNotFound):
				return ErrServiceNotFound
			case errors.Is(err, catalogClient.ErrUnavailable):
				return fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
			}
			return fmt.Errorf("%w: Prepare - catalog: %v", ErrInternal, err)
		}
		plan.Service = svc
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	loc, err := plan.Settings.Location()
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidTimezone, plan.Settings.Timezone, err)
	}
	plan.Location = loc

	duration, err := resolveDuration(plan.Service, q, plan.Settings.SlotStepMinutes)
	if err != nil {
		return nil, err
	}
	plan.DurationMinutes = duration

	staff, err := s.eligibleStaff(ctx, q, plan.Service, from, to)
	if err != nil {
		return nil, err
	}
	plan.Staff = staff

	return plan, nil
}

// Inputs загружает занимающие записи мастеров плана за период span.
// Начало периода расширяется на буфер: запись, закончившаяся до span, может занимать его буфером.
func (s *Service) Inputs(ctx context.Context, q Query, plan *Plan, span calendar.Span) ([]availability.StaffInput, error) {
	inputs := make([]availability.StaffInput, 0, len(plan.Staff))
	if len(plan.Staff) == 0 {
		return inputs, nil
	}

	appts, err := s.apptRepo.GetOccupying(ctx, domain.LedgerFilter{
		TenantID: q.TenantID,
		StaffIDs: plan.StaffIDs(),
		From:     calendar.AddMinutes(span.Start, -plan.Settings.BufferMinutes),
		To:       span.End,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: Inputs - appointments: %v", ErrInternal, err)
	}

	byStaff := availability.GroupByStaff(appts)
	for _, member := range plan.Staff {
		inputs = append(inputs, availability.StaffInput{Staff: member, Appointments: byStaff[member.ID]})
	}
	return inputs, nil
}

func (s *Service) eligibleStaff(ctx context.Context, q Query, svc *domain.Service, from, to types.Date) ([]*domain.StaffMember, error) {
	filter := staffRepo.Filter{TenantID: q.TenantID, From: from, To: to}
	if !q.AnyAvailable() {
		if !svc.IsStaffEligible(q.SpecialistID) {
			return nil, ErrSpecialistNotEligible
		}
		filter.StaffIDs = []string{q.SpecialistID}
	} else if len(svc.StaffIDs) > 0 {
		filter.StaffIDs = svc.StaffIDs
	}

	members, err := s.staffRepo.ListWithRules(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%w: eligibleStaff - repository: %v", ErrInternal, err)
	}

	if !q.AnyAvailable() && len(members) == 0 {
		return nil, ErrSpecialistNotEligible
	}

	return orderByService(members, svc.StaffIDs), nil
}

// orderByService упорядочивает мастеров по списку услуги, если он задан.
// Иначе сохраняется порядок тенанта.
func orderByService(members []*domain.StaffMember, order []string) []*domain.StaffMember {
	if len(order) == 0 {
		return members
	}
	byID := make(map[string]*domain.StaffMember, len(members))
	for _, m := range members {
		byID[m.ID] = m
	}
	ordered := make([]*domain.StaffMember, 0, len(members))
	for _, id := range order {
		if m, ok := byID[id]; ok {
			ordered = append(ordered, m)
			delete(byID, id)
		}
	}
	return ordered
}

// resolveDuration: длительность корзины > вариант > базовая длительность услуги.
// Без услуги используется шаг сетки.
func resolveDuration(svc *domain.Service, q Query, step int) (int, error) {
	if q.TotalDuration > 0 {
		return q.TotalDuration, nil
	}
	if q.ServiceID == "" {
		return step, nil
	}
	duration, ok := svc.ResolveDuration(q.VariantName)
	if !ok {
		if q.VariantName != "" {
			return 0, fmt.Errorf("%w: %q", ErrVariantNotFound, q.VariantName)
		}
		return 0, fmt.Errorf("%w: service %s has no duration", ErrInternal, svc.ID)
	}
	return duration, nil
}
