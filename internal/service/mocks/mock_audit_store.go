package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/egovernments/property-survey-api/internal/database"
	"github.com/egovernments/property-survey-api/internal/models"
)

// MockAuditStore is a mock implementation of service.AuditStore
type MockAuditStore struct {
	mock.Mock
}

func (m *MockAuditStore) CreateWithTx(ctx context.Context, tx *database.Transaction, entry *models.AuditLogEntry) error {
	args := m.Called(ctx, tx, entry)
	return args.Error(0)
}

func (m *MockAuditStore) GetByActingUser(ctx context.Context, actingUserID string, limit int) ([]models.AuditLogEntry, error) {
	args := m.Called(ctx, actingUserID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AuditLogEntry), args.Error(1)
}

func (m *MockAuditStore) GetByAction(ctx context.Context, action string, fromTime, toTime int64) ([]models.AuditLogEntry, error) {
	args := m.Called(ctx, action, fromTime, toTime)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AuditLogEntry), args.Error(1)
}
