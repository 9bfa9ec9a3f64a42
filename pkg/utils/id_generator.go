package utils

import (
	"github.com/google/uuid"
)

// GenerateID generates a new UUID
func GenerateID() string {
	return uuid.New().String()
}

// GenerateAssignmentID generates a unique assignment claim ID
func GenerateAssignmentID() string {
	return "ASSIGN-" + uuid.New().String()
}

// GenerateAuditID generates a unique audit log ID
func GenerateAuditID() string {
	return "AUDIT-" + uuid.New().String()
}

// GenerateQCRecordID generates a unique QC record ID
func GenerateQCRecordID() string {
	return "QC-" + uuid.New().String()
}

// IsValidUUID checks if a string is a valid UUID
func IsValidUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
