package create_appointment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/availability"
	"github.com/m04kA/SMC-AvailabilityService/internal/calendar"
	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	"github.com/m04kA/SMC-AvailabilityService/internal/integrations/bookingevents"
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

type mockRepo struct{ mock.Mock }

func (m *mockRepo) Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	args := m.Called(ctx, appt)
	created := *appt
	created.ID = 42
	return &created, args.Error(0)
}

type mockCache struct{ mock.Mock }

func (m *mockCache) InvalidateDate(ctx context.Context, tenantID string, date types.Date) error {
	return m.Called(ctx, tenantID, date).Error(0)
}

type mockPublisher struct{ mock.Mock }

func (m *mockPublisher) Publish(ctx context.Context, event bookingevents.AppointmentChanged) error {
	return m.Called(ctx, event).Error(0)
}

// inlineTx выполняет функцию без транзакции
type inlineTx struct{}

func (inlineTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

var monday = types.NewDate(2024, time.March, 4)

type fixture struct {
	planner   *mockPlanner
	repo      *mockRepo
	cache     *mockCache
	publisher *mockPublisher
	plan      *scheduling.Plan
	uc        *UseCase
}

func stylist(id string) *domain.StaffMember {
	return &domain.StaffMember{
		ID:           id,
		Active:       true,
		WorkingHours: []domain.WorkingHours{{DayOfWeek: time.Monday, Start: "09:00", End: "17:00"}},
		Breaks:       []domain.Break{{DayOfWeek: time.Monday, Start: "13:00", End: "14:00"}},
	}
}

func newFixture(t *testing.T, inputs []availability.StaffInput) *fixture {
	t.Helper()
	loc, err := time.LoadLocation("Europe/London")
	require.NoError(t, err)

	staff := make([]*domain.StaffMember, 0, len(inputs))
	for _, in := range inputs {
		staff = append(staff, in.Staff)
	}

	f := &fixture{
		planner:   &mockPlanner{},
		repo:      &mockRepo{},
		cache:     &mockCache{},
		publisher: &mockPublisher{},
		plan: &scheduling.Plan{
			Settings: &domain.SchedulingSettings{
				Timezone:                "Europe/London",
				SlotStepMinutes:         30,
				MinBookingNoticeMinutes: 60,
				AdvanceBookingDays:      30,
			},
			Location:        loc,
			Service:         &domain.Service{ID: "cut", DurationMinutes: 60},
			DurationMinutes: 60,
			Staff:           staff,
			Now:             time.Date(2024, time.March, 4, 8, 30, 0, 0, time.UTC),
		},
	}
	f.planner.On("Prepare", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(f.plan, nil)
	f.planner.On("Inputs", mock.Anything, mock.Anything, f.plan, calendar.DayBounds(monday, loc)).Return(inputs, nil)
	f.uc = NewUseCase(f.planner, f.repo, inlineTx{}, f.cache, f.publisher, logger.NewNop())
	return f
}

func request(start types.TimeString) *Request {
	return &Request{TenantID: "salon-1", ClientID: "client-7", ServiceID: "cut", Date: monday, StartTime: start}
}

func TestExecute_Success(t *testing.T) {
	f := newFixture(t, []availability.StaffInput{{Staff: stylist("s1")}})
	f.repo.On("Create", mock.Anything, mock.MatchedBy(func(a *domain.Appointment) bool {
		return a.StaffID == "s1" && a.Status == domain.StatusPending && a.DurationMinutes == 60
	})).Return(nil)
	f.cache.On("InvalidateDate", mock.Anything, "salon-1", monday).Return(nil)
	f.publisher.On("Publish", mock.Anything, mock.MatchedBy(func(e bookingevents.AppointmentChanged) bool {
		return e.TenantID == "salon-1" && e.StaffID == "s1" && e.Date == "2024-03-04" && e.Status == domain.StatusPending
	})).Return(nil)

	resp, err := f.uc.Execute(context.Background(), request("10:00"))
	require.NoError(t, err)

	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, "s1", resp.StaffID)
	assert.Equal(t, "10:00", resp.Start.Format("15:04"))
	assert.Equal(t, "11:00", resp.End.Format("15:04"))
	f.cache.AssertExpectations(t)
	f.publisher.AssertExpectations(t)
}

func TestExecute_PinsFirstFreeStaff(t *testing.T) {
	loc := time.FixedZone("GMT", 0)
	busy := &domain.Appointment{StaffID: "a", Status: domain.StatusConfirmed, DurationMinutes: 60,
		Start: time.Date(2024, time.March, 4, 10, 0, 0, 0, loc)}
	f := newFixture(t, []availability.StaffInput{
		{Staff: stylist("a"), Appointments: []*domain.Appointment{busy}},
		{Staff: stylist("b")},
	})
	f.repo.On("Create", mock.Anything, mock.MatchedBy(func(a *domain.Appointment) bool { return a.StaffID == "b" })).Return(nil)
	f.cache.On("InvalidateDate", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	f.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

	resp, err := f.uc.Execute(context.Background(), request("10:00"))
	require.NoError(t, err)
	assert.Equal(t, "b", resp.StaffID)
}

func TestExecute_SlotTaken(t *testing.T) {
	loc := time.FixedZone("GMT", 0)
	busy := &domain.Appointment{StaffID: "s1", Status: domain.StatusConfirmed, DurationMinutes: 60,
		Start: time.Date(2024, time.March, 4, 10, 0, 0, 0, loc)}
	f := newFixture(t, []availability.StaffInput{{Staff: stylist("s1"), Appointments: []*domain.Appointment{busy}}})

	_, err := f.uc.Execute(context.Background(), request("10:30"))
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	f.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	f.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestExecute_OffGrid(t *testing.T) {
	f := newFixture(t, []availability.StaffInput{{Staff: stylist("s1")}})

	_, err := f.uc.Execute(context.Background(), request("10:10"))
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_InsideBreak(t *testing.T) {
	f := newFixture(t, []availability.StaffInput{{Staff: stylist("s1")}})

	_, err := f.uc.Execute(context.Background(), request("12:30"))
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_TooLate(t *testing.T) {
	f := newFixture(t, []availability.StaffInput{{Staff: stylist("s1")}})

	// Сейчас 08:30, минимальное уведомление 60 минут
	_, err := f.uc.Execute(context.Background(), request("09:00"))
	assert.ErrorIs(t, err, ErrTooLateToBook)
}

func TestExecute_DateChecks(t *testing.T) {
	f := newFixture(t, nil)

	req := request("10:00")
	req.Date = types.NewDate(2024, time.March, 1)
	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidDate)

	req.Date = types.NewDate(2024, time.April, 20)
	_, err = f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrDateTooFarInFuture)
}

func TestExecute_AfterCommitFailuresIgnored(t *testing.T) {
	f := newFixture(t, []availability.StaffInput{{Staff: stylist("s1")}})
	f.repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	f.cache.On("InvalidateDate", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("redis down"))
	f.publisher.On("Publish", mock.Anything, mock.Anything).Return(errors.New("kafka down"))

	resp, err := f.uc.Execute(context.Background(), request("15:00"))
	require.NoError(t, err)
	assert.Equal(t, int64(42), resp.ID)
}

func TestExecute_RepositoryError(t *testing.T) {
	f := newFixture(t, []availability.StaffInput{{Staff: stylist("s1")}})
	f.repo.On("Create", mock.Anything, mock.Anything).Return(errors.New("db down"))

	_, err := f.uc.Execute(context.Background(), request("15:00"))
	assert.ErrorIs(t, err, ErrInternal)
	f.cache.AssertNotCalled(t, "InvalidateDate", mock.Anything, mock.Anything, mock.Anything)
}

func TestValidateRequest(t *testing.T) {
	long := string(make([]byte, domain.MaxNotesLength+1))
	tests := []struct {
		name   string
		mutate func(r *Request)
	}{
		{name: "no tenant", mutate: func(r *Request) { r.TenantID = "" }},
		{name: "no client", mutate: func(r *Request) { r.ClientID = "" }},
		{name: "no service", mutate: func(r *Request) { r.ServiceID = "" }},
		{name: "no date", mutate: func(r *Request) { r.Date = types.Date{} }},
		{name: "no time", mutate: func(r *Request) { r.StartTime = "" }},
		{name: "bad time", mutate: func(r *Request) { r.StartTime = "9am" }},
		{name: "long notes", mutate: func(r *Request) { r.Notes = &long }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := request("10:00")
			tt.mutate(req)
			assert.ErrorIs(t, validateRequest(req), ErrInvalidInput)
		})
	}
}
