package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/egovernments/property-survey-api/internal/database"
	"github.com/egovernments/property-survey-api/internal/models"
)

// MockAssignmentStore is a mock implementation of service.AssignmentStore
type MockAssignmentStore struct {
	mock.Mock
}

func (m *MockAssignmentStore) CreateWithTx(ctx context.Context, tx *database.Transaction, claim *models.AssignmentClaim) error {
	args := m.Called(ctx, tx, claim)
	return args.Error(0)
}

func (m *MockAssignmentStore) GetActiveByWardForUpdate(ctx context.Context, tx *database.Transaction, wardID string) ([]models.AssignmentClaim, error) {
	args := m.Called(ctx, tx, wardID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AssignmentClaim), args.Error(1)
}

func (m *MockAssignmentStore) UpdateSubUnitsWithTx(ctx context.Context, tx *database.Transaction, claim *models.AssignmentClaim) error {
	args := m.Called(ctx, tx, claim)
	return args.Error(0)
}

func (m *MockAssignmentStore) GetByIDWithTx(ctx context.Context, tx *database.Transaction, assignmentID string) (*models.AssignmentClaim, error) {
	args := m.Called(ctx, tx, assignmentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AssignmentClaim), args.Error(1)
}

func (m *MockAssignmentStore) UpdateStatusWithTx(ctx context.Context, tx *database.Transaction, assignmentID string, isActive bool, updatedTime int64) error {
	args := m.Called(ctx, tx, assignmentID, isActive, updatedTime)
	return args.Error(0)
}

func (m *MockAssignmentStore) DeleteWithTx(ctx context.Context, tx *database.Transaction, assignmentID string) error {
	args := m.Called(ctx, tx, assignmentID)
	return args.Error(0)
}

func (m *MockAssignmentStore) GetActiveByUser(ctx context.Context, userID string) ([]models.AssignmentClaim, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AssignmentClaim), args.Error(1)
}

func (m *MockAssignmentStore) GetActiveByWard(ctx context.Context, wardID string) ([]models.AssignmentClaim, error) {
	args := m.Called(ctx, wardID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AssignmentClaim), args.Error(1)
}

func (m *MockAssignmentStore) GetAll(ctx context.Context) ([]models.AssignmentClaim, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AssignmentClaim), args.Error(1)
}
