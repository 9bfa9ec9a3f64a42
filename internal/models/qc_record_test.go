package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestIsValidQCLevel tests the level range
func TestIsValidQCLevel(t *testing.T) {
	assert.False(t, IsValidQCLevel(0))
	for level := QCLevelMin; level <= QCLevelMax; level++ {
		assert.True(t, IsValidQCLevel(level))
	}
	assert.False(t, IsValidQCLevel(5))
	assert.False(t, IsValidQCLevel(-1))
}

// TestIsValidQCDecision tests that PENDING is not a recordable decision
func TestIsValidQCDecision(t *testing.T) {
	assert.True(t, IsValidQCDecision(QCStatusApproved))
	assert.True(t, IsValidQCDecision(QCStatusRejected))
	assert.True(t, IsValidQCDecision(QCStatusNeedsRevision))
	assert.True(t, IsValidQCDecision(QCStatusDuplicate))
	assert.False(t, IsValidQCDecision(QCStatusPending))
	assert.False(t, IsValidQCDecision("approved"))
	assert.False(t, IsValidQCDecision(""))
}
