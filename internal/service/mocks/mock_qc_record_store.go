package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/egovernments/property-survey-api/internal/database"
	"github.com/egovernments/property-survey-api/internal/models"
)

// MockQCRecordStore is a mock implementation of service.QCRecordStore
type MockQCRecordStore struct {
	mock.Mock
}

func (m *MockQCRecordStore) CreateWithTx(ctx context.Context, tx *database.Transaction, record *models.QCRecord) error {
	args := m.Called(ctx, tx, record)
	return args.Error(0)
}

func (m *MockQCRecordStore) GetLatestByLevelForUpdate(ctx context.Context, tx *database.Transaction, surveyCode string, qcLevel int) (*models.QCRecord, error) {
	args := m.Called(ctx, tx, surveyCode, qcLevel)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.QCRecord), args.Error(1)
}

func (m *MockQCRecordStore) GetCurrentWithTx(ctx context.Context, tx *database.Transaction, surveyCode string) (*models.QCRecord, error) {
	args := m.Called(ctx, tx, surveyCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.QCRecord), args.Error(1)
}

func (m *MockQCRecordStore) GetHistory(ctx context.Context, surveyCode string) ([]models.QCRecord, error) {
	args := m.Called(ctx, surveyCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.QCRecord), args.Error(1)
}

func (m *MockQCRecordStore) GetCurrentRecords(ctx context.Context) ([]models.QCRecord, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.QCRecord), args.Error(1)
}

func (m *MockQCRecordStore) CountDistinctSurveys(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}
