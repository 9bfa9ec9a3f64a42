package service

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/egovernments/property-survey-api/internal/database"
	"github.com/egovernments/property-survey-api/internal/models"
	"github.com/egovernments/property-survey-api/internal/service/mocks"
)

// TestSetup contains common test dependencies. The database is sqlmock-backed
// so transaction boundaries (begin, commit, rollback) are verifiable while
// the stores themselves are testify mocks.
type TestSetup struct {
	MockAssignmentStore *mocks.MockAssignmentStore
	MockAuditStore      *mocks.MockAuditStore
	MockQCStore         *mocks.MockQCRecordStore
	MockResolver        *mocks.MockMasterResolver
	DB                  *database.DB
	SQLMock             sqlmock.Sqlmock
	Logger              *logrus.Logger
}

// NewTestSetup creates a new test setup with mocks
func NewTestSetup(t *testing.T) *TestSetup {
	t.Helper()

	mockDB, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDB.Close() })

	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)

	return &TestSetup{
		MockAssignmentStore: &mocks.MockAssignmentStore{},
		MockAuditStore:      &mocks.MockAuditStore{},
		MockQCStore:         &mocks.MockQCRecordStore{},
		MockResolver:        &mocks.MockMasterResolver{},
		DB:                  database.Wrap(sqlx.NewDb(mockDB, "sqlmock"), logger),
		SQLMock:             sqlMock,
		Logger:              logger,
	}
}

// NewAssignmentTestService wires an AssignmentService over the setup's mocks
func (s *TestSetup) NewAssignmentTestService() *AssignmentService {
	return NewAssignmentService(s.MockAssignmentStore, s.MockAuditStore, s.MockResolver, s.DB, s.Logger)
}

// NewQCTestService wires a QCService over the setup's mocks
func (s *TestSetup) NewQCTestService() *QCService {
	return NewQCService(s.MockQCStore, s.MockAuditStore, s.DB, s.Logger)
}

// ExpectTxCommit registers expectations for one committed transaction
func (s *TestSetup) ExpectTxCommit() {
	s.SQLMock.ExpectBegin()
	s.SQLMock.ExpectCommit()
}

// ExpectTxRollback registers expectations for one rolled-back transaction
func (s *TestSetup) ExpectTxRollback() {
	s.SQLMock.ExpectBegin()
	s.SQLMock.ExpectRollback()
}

// Helper to create a valid bulk assignment request
func NewValidBulkAssignRequest() *models.BulkAssignRequest {
	return &models.BulkAssignRequest{
		UserID:         "user-1",
		AssignmentType: models.AssignmentTypePrimary,
		AssignedByID:   "admin-1",
		Assignments: []models.WardAssignmentRequest{
			{WardID: "ward-1", SubUnitIDs: []string{"su-1", "su-2"}},
		},
	}
}

// Helper to create a valid QC review request
func NewValidQCReviewRequest() *models.QCReviewRequest {
	return &models.QCReviewRequest{
		SurveyCode: "SVY-001",
		QCLevel:    models.QCLevelSurvey,
		Decision:   models.QCStatusApproved,
	}
}

// Helper to create a pointer to a string
func strPtr(s string) *string {
	return &s
}
