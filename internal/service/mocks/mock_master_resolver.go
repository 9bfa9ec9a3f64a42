package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/egovernments/property-survey-api/internal/models"
)

// MockMasterResolver is a mock implementation of service.MasterResolver
type MockMasterResolver struct {
	mock.Mock
}

func (m *MockMasterResolver) ResolveSubUnits(ctx context.Context, ids []string) ([]models.SubUnitRecord, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SubUnitRecord), args.Error(1)
}

func (m *MockMasterResolver) ResolveWard(ctx context.Context, wardID string) (*models.WardRecord, error) {
	args := m.Called(ctx, wardID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.WardRecord), args.Error(1)
}

func (m *MockMasterResolver) ResolveUser(ctx context.Context, userID string) (*models.UserRecord, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserRecord), args.Error(1)
}
