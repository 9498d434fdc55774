package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/availability"
	"github.com/m04kA/SMC-AvailabilityService/internal/calendar"
	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/infra/cache"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/scheduling"
	"github.com/m04kA/SMC-AvailabilityService/pkg/logger"
	"github.com/m04kA/SMC-AvailabilityService/pkg/types"
)

type mockPlanner struct{ mock.Mock }

func (m *mockPlanner) Prepare(ctx context.Context, q scheduling.Query, from, to types.Date) (*scheduling.Plan, error) {
	args := m.Called(ctx, q, from, to)
	if p := args.Get(0); p != nil {
		return p.(*scheduling.Plan), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPlanner) Inputs(ctx context.Context, q scheduling.Query, plan *scheduling.Plan, span calendar.Span) ([]availability.StaffInput, error) {
	args := m.Called(ctx, q, plan, span)
	if in := args.Get(0); in != nil {
		return in.([]availability.StaffInput), args.Error(1)
	}
	return nil, args.Error(1)
}

var monday = types.NewDate(2024, time.March, 4)

func london(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Europe/London")
	require.NoError(t, err)
	return loc
}

func stylist(id string) *domain.StaffMember {
	return &domain.StaffMember{
		ID:           id,
		Active:       true,
		WorkingHours: []domain.WorkingHours{{DayOfWeek: time.Monday, Start: "09:00", End: "17:00"}},
		Breaks:       []domain.Break{{DayOfWeek: time.Monday, Start: "13:00", End: "14:00"}},
	}
}

func testPlan(t *testing.T, staff ...*domain.StaffMember) *scheduling.Plan {
	return &scheduling.Plan{
		Settings: &domain.SchedulingSettings{
			Timezone:           "Europe/London",
			SlotStepMinutes:    30,
			AdvanceBookingDays: 30,
		},
		Location:        london(t),
		Service:         &domain.Service{ID: "cut", DurationMinutes: 60},
		DurationMinutes: 60,
		Staff:           staff,
		Now:             time.Date(2024, time.March, 1, 8, 0, 0, 0, time.UTC),
	}
}

func newUseCase(p Planner) *UseCase {
	return NewUseCase(p, cache.NewAvailability(cache.NewMemoryStore(), time.Minute, nil, nil), nil, logger.NewNop())
}

func starts(slots []Slot) []string {
	result := make([]string, 0, len(slots))
	for _, s := range slots {
		result = append(result, s.Start.Format("15:04"))
	}
	return result
}

func TestExecute_SingleSpecialist(t *testing.T) {
	p := &mockPlanner{}
	plan := testPlan(t, stylist("s1"))
	appt := &domain.Appointment{
		ID: 1, StaffID: "s1", Status: domain.StatusConfirmed, DurationMinutes: 60,
		Start: time.Date(2024, time.March, 4, 10, 0, 0, 0, london(t)),
	}
	p.On("Prepare", mock.Anything, mock.Anything, monday, monday).Return(plan, nil)
	p.On("Inputs", mock.Anything, mock.Anything, plan, calendar.DayBounds(monday, plan.Location)).
		Return([]availability.StaffInput{{Staff: plan.Staff[0], Appointments: []*domain.Appointment{appt}}}, nil)

	uc := newUseCase(p)
	resp, err := uc.Execute(context.Background(), &Request{TenantID: "salon-1", ServiceID: "cut", SpecialistID: "s1", Date: monday})
	require.NoError(t, err)

	assert.Equal(t, "Europe/London", resp.Timezone)
	assert.Equal(t, 60, resp.DurationMinutes)
	assert.Equal(t, []string{
		"09:00", "11:00", "11:30", "12:00",
		"14:00", "14:30", "15:00", "15:30", "16:00",
	}, starts(resp.Slots))
	assert.Empty(t, resp.Message)
}

func TestExecute_CachedUntilInvalidated(t *testing.T) {
	p := &mockPlanner{}
	plan := testPlan(t, stylist("s1"))
	p.On("Prepare", mock.Anything, mock.Anything, monday, monday).Return(plan, nil)
	p.On("Inputs", mock.Anything, mock.Anything, plan, mock.Anything).
		Return([]availability.StaffInput{{Staff: plan.Staff[0]}}, nil)

	c := cache.NewAvailability(cache.NewMemoryStore(), time.Minute, nil, nil)
	uc := NewUseCase(p, c, nil, logger.NewNop())
	req := &Request{TenantID: "salon-1", ServiceID: "cut", Date: monday}

	first, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	second, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, starts(first.Slots), starts(second.Slots))
	p.AssertNumberOfCalls(t, "Prepare", 1)

	require.NoError(t, c.InvalidateDate(context.Background(), "salon-1", monday))
	_, err = uc.Execute(context.Background(), req)
	require.NoError(t, err)
	p.AssertNumberOfCalls(t, "Prepare", 2)
}

func TestExecute_AnyAvailableUnion(t *testing.T) {
	p := &mockPlanner{}
	early := &domain.StaffMember{ID: "a", Active: true, WorkingHours: []domain.WorkingHours{{DayOfWeek: time.Monday, Start: "09:00", End: "11:00"}}}
	late := &domain.StaffMember{ID: "b", Active: true, WorkingHours: []domain.WorkingHours{{DayOfWeek: time.Monday, Start: "10:00", End: "12:00"}}}
	plan := testPlan(t, early, late)
	p.On("Prepare", mock.Anything, mock.Anything, monday, monday).Return(plan, nil)
	p.On("Inputs", mock.Anything, mock.Anything, plan, mock.Anything).
		Return([]availability.StaffInput{{Staff: early}, {Staff: late}}, nil)

	resp, err := newUseCase(p).Execute(context.Background(), &Request{TenantID: "salon-1", ServiceID: "cut", Any: true, Date: monday})
	require.NoError(t, err)

	assert.Equal(t, []string{"09:00", "09:30", "10:00", "10:30", "11:00"}, starts(resp.Slots))
	assert.Equal(t, []string{"a"}, resp.Slots[0].StaffIDs)
	assert.Equal(t, []string{"a", "b"}, resp.Slots[2].StaffIDs)
	assert.Equal(t, []string{"b"}, resp.Slots[4].StaffIDs)
}

func TestExecute_NoSlotsMessage(t *testing.T) {
	p := &mockPlanner{}
	sunday := types.NewDate(2024, time.March, 3)
	plan := testPlan(t, stylist("s1"))
	p.On("Prepare", mock.Anything, mock.Anything, sunday, sunday).Return(plan, nil)
	p.On("Inputs", mock.Anything, mock.Anything, plan, mock.Anything).
		Return([]availability.StaffInput{{Staff: plan.Staff[0]}}, nil)

	resp, err := newUseCase(p).Execute(context.Background(), &Request{TenantID: "salon-1", ServiceID: "cut", Date: sunday})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
	assert.NotNil(t, resp.Slots)
	assert.Equal(t, MessageNoSlots, resp.Message)
}

func TestExecute_PastDate(t *testing.T) {
	p := &mockPlanner{}
	past := types.NewDate(2024, time.February, 26)
	p.On("Prepare", mock.Anything, mock.Anything, past, past).Return(testPlan(t, stylist("s1")), nil)

	resp, err := newUseCase(p).Execute(context.Background(), &Request{TenantID: "salon-1", ServiceID: "cut", Date: past})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
	assert.Equal(t, MessagePastDate, resp.Message)
	p.AssertNotCalled(t, "Inputs", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestExecute_BeyondHorizon(t *testing.T) {
	p := &mockPlanner{}
	far := types.NewDate(2024, time.April, 5)
	p.On("Prepare", mock.Anything, mock.Anything, far, far).Return(testPlan(t, stylist("s1")), nil)

	_, err := newUseCase(p).Execute(context.Background(), &Request{TenantID: "salon-1", ServiceID: "cut", Date: far})
	assert.ErrorIs(t, err, ErrDateTooFarInFuture)
}

func TestExecute_PlanErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected error
	}{
		{name: "service", err: scheduling.ErrServiceNotFound, expected: ErrServiceNotFound},
		{name: "variant", err: scheduling.ErrVariantNotFound, expected: ErrVariantNotFound},
		{name: "specialist", err: scheduling.ErrSpecialistNotEligible, expected: ErrSpecialistNotEligible},
		{name: "upstream", err: scheduling.ErrUpstreamUnavailable, expected: ErrUpstreamUnavailable},
		{name: "internal", err: scheduling.ErrInternal, expected: ErrInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &mockPlanner{}
			p.On("Prepare", mock.Anything, mock.Anything, monday, monday).Return(nil, tt.err)

			_, err := newUseCase(p).Execute(context.Background(), &Request{TenantID: "salon-1", ServiceID: "cut", Date: monday})
			assert.ErrorIs(t, err, tt.expected)
		})
	}
}

func TestValidateRequest(t *testing.T) {
	tests := []struct {
		name string
		req  Request
	}{
		{name: "no tenant", req: Request{ServiceID: "cut", Date: monday}},
		{name: "no service", req: Request{TenantID: "salon-1", Date: monday}},
		{name: "no date", req: Request{TenantID: "salon-1", ServiceID: "cut"}},
		{name: "negative total", req: Request{TenantID: "salon-1", ServiceID: "cut", Date: monday, TotalDuration: -5}},
		{name: "any with specialist", req: Request{TenantID: "salon-1", ServiceID: "cut", Date: monday, Any: true, SpecialistID: "s1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, validateRequest(&tt.req), ErrInvalidInput)
		})
	}
}
