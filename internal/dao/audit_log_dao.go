package dao

import (
	"context"
	"fmt"

	"github.com/egovernments/property-survey-api/internal/database"
	"github.com/egovernments/property-survey-api/internal/models"
)

// AuditLogDAO handles database operations for the audit log. The log is
// append-only, so no update or delete methods exist.
type AuditLogDAO struct {
	db *database.DB
}

// NewAuditLogDAO creates a new AuditLogDAO instance
func NewAuditLogDAO(db *database.DB) *AuditLogDAO {
	return &AuditLogDAO{db: db}
}

// CreateWithTx appends an audit entry within the mutating transaction so the
// entry commits atomically with the change it describes
func (dao *AuditLogDAO) CreateWithTx(ctx context.Context, tx *database.Transaction, entry *models.AuditLogEntry) error {
	query := `
		INSERT INTO SURVEY_AUDIT_LOG (
			LOG_ID, ACTING_USER_ID, ACTION, OLD_VALUE, NEW_VALUE, ACTION_TIME
		) VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := tx.ExecContext(
		ctx,
		query,
		entry.LogID,
		entry.ActingUserID,
		entry.Action,
		entry.OldValue,
		entry.NewValue,
		entry.ActionTime,
	)

	if err != nil {
		return fmt.Errorf("failed to create audit log entry: %w", err)
	}

	return nil
}

// GetByActingUser retrieves audit entries written by a user, newest first
func (dao *AuditLogDAO) GetByActingUser(ctx context.Context, actingUserID string, limit int) ([]models.AuditLogEntry, error) {
	query := `
		SELECT LOG_ID, ACTING_USER_ID, ACTION, OLD_VALUE, NEW_VALUE, ACTION_TIME
		FROM SURVEY_AUDIT_LOG
		WHERE ACTING_USER_ID = ?
		ORDER BY ACTION_TIME DESC
		LIMIT ?
	`

	var entries []models.AuditLogEntry
	err := dao.db.SelectContext(ctx, &entries, query, actingUserID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get audit entries by user: %w", err)
	}

	return entries, nil
}

// GetByAction retrieves audit entries for an action within a time range
func (dao *AuditLogDAO) GetByAction(ctx context.Context, action string, fromTime, toTime int64) ([]models.AuditLogEntry, error) {
	query := `
		SELECT LOG_ID, ACTING_USER_ID, ACTION, OLD_VALUE, NEW_VALUE, ACTION_TIME
		FROM SURVEY_AUDIT_LOG
		WHERE ACTION = ? AND ACTION_TIME BETWEEN ? AND ?
		ORDER BY ACTION_TIME DESC
	`

	var entries []models.AuditLogEntry
	err := dao.db.SelectContext(ctx, &entries, query, action, fromTime, toTime)
	if err != nil {
		return nil, fmt.Errorf("failed to get audit entries by action: %w", err)
	}

	return entries, nil
}
