package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/egovernments/property-survey-api/internal/models"
	"github.com/egovernments/property-survey-api/internal/serviceerror"
	"github.com/egovernments/property-survey-api/pkg/utils"
)

const (
	auditDefaultLimit = 50
	auditMaxLimit     = 500
)

// AuditService reads the audit trail. Writes happen in the mutating
// services, inside their transactions; this service never writes.
type AuditService struct {
	reader AuditReader
	logger *logrus.Logger
}

// NewAuditService creates a new audit service instance
func NewAuditService(reader AuditReader, logger *logrus.Logger) *AuditService {
	return &AuditService{reader: reader, logger: logger}
}

// GetEntriesByActingUser returns a user's audit entries, newest first
func (s *AuditService) GetEntriesByActingUser(ctx context.Context, actingUserID string, limit int) ([]models.AuditLogEntry, error) {
	if err := utils.ValidateID("user ID", actingUserID); err != nil {
		return nil, serviceerror.InvalidArgument(err.Error())
	}

	if limit <= 0 {
		limit = auditDefaultLimit
	}
	if limit > auditMaxLimit {
		limit = auditMaxLimit
	}

	entries, err := s.reader.GetByActingUser(ctx, actingUserID, limit)
	if err != nil {
		return nil, err
	}

	if entries == nil {
		entries = []models.AuditLogEntry{}
	}

	return entries, nil
}

// GetEntriesByAction returns entries for one action within a time window,
// newest first. A zero toTime means "up to now".
func (s *AuditService) GetEntriesByAction(ctx context.Context, action string, fromTime, toTime int64) ([]models.AuditLogEntry, error) {
	if err := utils.ValidateRequired("action", action); err != nil {
		return nil, serviceerror.InvalidArgument(err.Error())
	}
	if toTime == 0 {
		toTime = utils.GetCurrentTimeMillis()
	}
	if fromTime > toTime {
		return nil, serviceerror.InvalidArgument("from must not be after to")
	}

	entries, err := s.reader.GetByAction(ctx, action, fromTime, toTime)
	if err != nil {
		return nil, err
	}

	if entries == nil {
		entries = []models.AuditLogEntry{}
	}

	return entries, nil
}
