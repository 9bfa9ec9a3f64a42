package models

import (
	"encoding/json"
	"fmt"
)

// Audit actions recorded for assignment and QC mutations
const (
	AuditActionAssignmentCreated     = "ASSIGNMENT_CREATED"
	AuditActionAssignmentMerged      = "ASSIGNMENT_MERGED"
	AuditActionAssignmentActivated   = "ASSIGNMENT_ACTIVATED"
	AuditActionAssignmentDeactivated = "ASSIGNMENT_DEACTIVATED"
	AuditActionAssignmentDeleted     = "ASSIGNMENT_DELETED"
	AuditActionQCReviewSubmitted     = "QC_REVIEW_SUBMITTED"
)

// AuditLogEntry represents the SURVEY_AUDIT_LOG table. Rows are append-only:
// the DAO exposes no update or delete, and entries outlive the records they
// describe.
type AuditLogEntry struct {
	LogID        string `db:"LOG_ID" json:"logId"`
	ActingUserID string `db:"ACTING_USER_ID" json:"actingUserId"`
	Action       string `db:"ACTION" json:"action"`
	OldValue     JSON   `db:"OLD_VALUE" json:"oldValue,omitempty"`
	NewValue     JSON   `db:"NEW_VALUE" json:"newValue,omitempty"`
	ActionTime   int64  `db:"ACTION_TIME" json:"actionTime"`
}

// SnapshotJSON serializes a value for an audit old/new snapshot
func SnapshotJSON(v interface{}) (JSON, error) {
	if v == nil {
		return nil, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal audit snapshot: %w", err)
	}
	return JSON(data), nil
}
