package service

import (
	"context"

	"github.com/egovernments/property-survey-api/internal/database"
	"github.com/egovernments/property-survey-api/internal/models"
)

// AssignmentStore is the repository surface the allocator needs. The DAO
// implements it; tests substitute mocks. Methods taking a Transaction run
// inside the caller's unit of work.
type AssignmentStore interface {
	CreateWithTx(ctx context.Context, tx *database.Transaction, claim *models.AssignmentClaim) error
	GetActiveByWardForUpdate(ctx context.Context, tx *database.Transaction, wardID string) ([]models.AssignmentClaim, error)
	UpdateSubUnitsWithTx(ctx context.Context, tx *database.Transaction, claim *models.AssignmentClaim) error
	GetByIDWithTx(ctx context.Context, tx *database.Transaction, assignmentID string) (*models.AssignmentClaim, error)
	UpdateStatusWithTx(ctx context.Context, tx *database.Transaction, assignmentID string, isActive bool, updatedTime int64) error
	DeleteWithTx(ctx context.Context, tx *database.Transaction, assignmentID string) error
	GetActiveByUser(ctx context.Context, userID string) ([]models.AssignmentClaim, error)
	GetActiveByWard(ctx context.Context, wardID string) ([]models.AssignmentClaim, error)
	GetAll(ctx context.Context) ([]models.AssignmentClaim, error)
}

// AuditStore appends audit entries. Append-only by construction.
type AuditStore interface {
	CreateWithTx(ctx context.Context, tx *database.Transaction, entry *models.AuditLogEntry) error
}

// AuditReader reads the audit trail for the administrative endpoints
type AuditReader interface {
	GetByActingUser(ctx context.Context, actingUserID string, limit int) ([]models.AuditLogEntry, error)
	GetByAction(ctx context.Context, action string, fromTime, toTime int64) ([]models.AuditLogEntry, error)
}

// QCRecordStore is the repository surface of the QC workflow engine
type QCRecordStore interface {
	CreateWithTx(ctx context.Context, tx *database.Transaction, record *models.QCRecord) error
	GetLatestByLevelForUpdate(ctx context.Context, tx *database.Transaction, surveyCode string, qcLevel int) (*models.QCRecord, error)
	GetCurrentWithTx(ctx context.Context, tx *database.Transaction, surveyCode string) (*models.QCRecord, error)
	GetHistory(ctx context.Context, surveyCode string) ([]models.QCRecord, error)
	GetCurrentRecords(ctx context.Context) ([]models.QCRecord, error)
	CountDistinctSurveys(ctx context.Context) (int, error)
}

// MasterResolver resolves master-data records owned by the master-data
// collaborator
type MasterResolver interface {
	ResolveSubUnits(ctx context.Context, ids []string) ([]models.SubUnitRecord, error)
	ResolveWard(ctx context.Context, wardID string) (*models.WardRecord, error)
	ResolveUser(ctx context.Context, userID string) (*models.UserRecord, error)
}
