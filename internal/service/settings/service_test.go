package settings

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AvailabilityService/internal/domain"
	settingsRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/settings"
	"github.com/m04kA/SMC-AvailabilityService/internal/service/settings/models"
	"github.com/m04kA/SMC-AvailabilityService/pkg/logger"
	"github.com/m04kA/SMC-AvailabilityService/pkg/ptr"
)

type mockRepo struct{ mock.Mock }

func (m *mockRepo) GetByTenantAndService(ctx context.Context, tenantID string, serviceID *string) (*domain.SchedulingSettings, error) {
	args := m.Called(ctx, tenantID, serviceID)
	if s := args.Get(0); s != nil {
		return s.(*domain.SchedulingSettings), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepo) GetWithHierarchy(ctx context.Context, tenantID string, serviceID *string) (*domain.SchedulingSettings, error) {
	args := m.Called(ctx, tenantID, serviceID)
	if s := args.Get(0); s != nil {
		return s.(*domain.SchedulingSettings), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRepo) Upsert(ctx context.Context, s *domain.SchedulingSettings) (*domain.SchedulingSettings, error) {
	args := m.Called(ctx, s)
	return s, args.Error(0)
}

type mockCache struct{ mock.Mock }

func (m *mockCache) InvalidateTenant(ctx context.Context, tenantID string) error {
	return m.Called(ctx, tenantID).Error(0)
}

func TestService_Get_DefaultsWhenMissing(t *testing.T) {
	repo := &mockRepo{}
	repo.On("GetWithHierarchy", mock.Anything, "salon-1", (*string)(nil)).Return(nil, settingsRepo.ErrSettingsNotFound)

	svc := NewService(repo, &mockCache{}, logger.NewNop())
	resp, err := svc.Get(context.Background(), &models.GetSettingsRequest{TenantID: "salon-1"})
	require.NoError(t, err)

	assert.Equal(t, models.LevelDefault, resp.Level)
	assert.Equal(t, domain.DefaultTimezone, resp.Timezone)
	assert.Equal(t, domain.DefaultSlotStepMinutes, resp.SlotStepMinutes)
}

func TestService_Get_ServiceLevel(t *testing.T) {
	repo := &mockRepo{}
	repo.On("GetWithHierarchy", mock.Anything, "salon-1", ptr.Ptr("cut")).Return(&domain.SchedulingSettings{
		TenantID: "salon-1", ServiceID: ptr.Ptr("cut"), Timezone: "Europe/Paris", SlotStepMinutes: 30,
	}, nil)

	svc := NewService(repo, &mockCache{}, logger.NewNop())
	resp, err := svc.Get(context.Background(), &models.GetSettingsRequest{TenantID: "salon-1", ServiceID: ptr.Ptr("cut")})
	require.NoError(t, err)
	assert.Equal(t, models.LevelService, resp.Level)
	assert.Equal(t, 30, resp.SlotStepMinutes)
}

func TestService_Update(t *testing.T) {
	repo := &mockRepo{}
	cache := &mockCache{}
	repo.On("GetByTenantAndService", mock.Anything, "salon-1", (*string)(nil)).Return(nil, settingsRepo.ErrSettingsNotFound)
	repo.On("GetWithHierarchy", mock.Anything, "salon-1", (*string)(nil)).Return(nil, settingsRepo.ErrSettingsNotFound)
	repo.On("Upsert", mock.Anything, mock.MatchedBy(func(s *domain.SchedulingSettings) bool {
		return s.Timezone == "Asia/Tokyo" && s.SlotStepMinutes == 30 && s.BufferMinutes == domain.DefaultBufferMinutes
	})).Return(nil)
	cache.On("InvalidateTenant", mock.Anything, "salon-1").Return(nil)

	svc := NewService(repo, cache, logger.NewNop())
	resp, err := svc.Update(context.Background(), &models.UpdateSettingsRequest{
		TenantID:        "salon-1",
		Timezone:        ptr.Ptr("Asia/Tokyo"),
		SlotStepMinutes: ptr.Ptr(30),
	})
	require.NoError(t, err)
	assert.Equal(t, models.LevelTenant, resp.Level)
	assert.Equal(t, "Asia/Tokyo", resp.Timezone)

	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestService_Update_Validation(t *testing.T) {
	tests := []struct {
		name    string
		req     models.UpdateSettingsRequest
		wantErr error
	}{
		{name: "unknown timezone", req: models.UpdateSettingsRequest{Timezone: ptr.Ptr("Mars/Olympus")}, wantErr: ErrInvalidTimezone},
		{name: "step too small", req: models.UpdateSettingsRequest{SlotStepMinutes: ptr.Ptr(1)}, wantErr: ErrInvalidInput},
		{name: "negative buffer", req: models.UpdateSettingsRequest{BufferMinutes: ptr.Ptr(-5)}, wantErr: ErrInvalidInput},
		{name: "notice over a week", req: models.UpdateSettingsRequest{MinBookingNoticeMinutes: ptr.Ptr(20000)}, wantErr: ErrInvalidInput},
		{name: "horizon over a year", req: models.UpdateSettingsRequest{AdvanceBookingDays: ptr.Ptr(400)}, wantErr: ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockRepo{}
			repo.On("GetByTenantAndService", mock.Anything, "salon-1", (*string)(nil)).Return(domain.DefaultSettings("salon-1"), nil)

			tt.req.TenantID = "salon-1"
			_, err := NewService(repo, &mockCache{}, logger.NewNop()).Update(context.Background(), &tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
			repo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
		})
	}
}

func TestService_Update_RepositoryError(t *testing.T) {
	repo := &mockRepo{}
	repo.On("GetByTenantAndService", mock.Anything, "salon-1", (*string)(nil)).Return(nil, errors.New("connection reset"))

	_, err := NewService(repo, &mockCache{}, logger.NewNop()).Update(context.Background(), &models.UpdateSettingsRequest{TenantID: "salon-1"})
	assert.ErrorIs(t, err, ErrInternal)
}
