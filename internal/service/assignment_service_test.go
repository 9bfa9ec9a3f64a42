package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/egovernments/property-survey-api/internal/models"
	"github.com/egovernments/property-survey-api/internal/serviceerror"
)

// TestBulkAssign_ValidatesMissingUserID tests that BulkAssign rejects an empty user ID
func TestBulkAssign_ValidatesMissingUserID(t *testing.T) {
	setup := NewTestSetup(t)
	service := setup.NewAssignmentTestService()

	request := NewValidBulkAssignRequest()
	request.UserID = ""

	result, err := service.BulkAssign(context.Background(), request)

	assert.Error(t, err)
	assert.Nil(t, result)
	assert.Equal(t, serviceerror.KindInvalidArgument, serviceerror.KindOf(err))
}

// TestBulkAssign_ValidatesAssignmentType tests that BulkAssign rejects unknown types
func TestBulkAssign_ValidatesAssignmentType(t *testing.T) {
	setup := NewTestSetup(t)
	service := setup.NewAssignmentTestService()

	request := NewValidBulkAssignRequest()
	request.AssignmentType = "TERTIARY"

	result, err := service.BulkAssign(context.Background(), request)

	assert.Error(t, err)
	assert.Nil(t, result)
	assert.Equal(t, serviceerror.KindInvalidArgument, serviceerror.KindOf(err))
}

// TestBulkAssign_CreatesClaimInEmptyWard tests that an uncontested ward gets a
// fresh claim covering every requested sub-unit
func TestBulkAssign_CreatesClaimInEmptyWard(t *testing.T) {
	setup := NewTestSetup(t)
	service := setup.NewAssignmentTestService()

	setup.ExpectTxCommit()

	setup.MockAssignmentStore.On("GetActiveByWardForUpdate", mock.Anything, mock.Anything, "ward-1").
		Return([]models.AssignmentClaim{}, nil)
	setup.MockAssignmentStore.On("CreateWithTx", mock.Anything, mock.Anything, mock.MatchedBy(func(claim *models.AssignmentClaim) bool {
		return claim.UserID == "user-1" &&
			claim.WardID == "ward-1" &&
			claim.IsActive &&
			assert.ObjectsAreEqual(models.SubUnitList{"su-1", "su-2"}, claim.SubUnitIDs)
	})).Return(nil)
	setup.MockAuditStore.On("CreateWithTx", mock.Anything, mock.Anything, mock.MatchedBy(func(entry *models.AuditLogEntry) bool {
		return entry.Action == models.AuditActionAssignmentCreated &&
			entry.ActingUserID == "admin-1" &&
			entry.OldValue == nil &&
			entry.NewValue != nil
	})).Return(nil)

	result, err := service.BulkAssign(context.Background(), NewValidBulkAssignRequest())

	require.NoError(t, err)
	require.Len(t, result.Assigned, 1)
	assert.Equal(t, "ward-1", result.Assigned[0].WardID)
	assert.Equal(t, []string{"su-1", "su-2"}, result.Assigned[0].SubUnitIDs)
	assert.Empty(t, result.Conflicts)

	setup.MockAssignmentStore.AssertExpectations(t)
	setup.MockAuditStore.AssertExpectations(t)
	assert.NoError(t, setup.SQLMock.ExpectationsWereMet())
}

// TestBulkAssign_ReportsClaimedSubUnitsAsConflicts tests that sub-units held
// by another user are withheld and reported as conflicts, while the rest of
// the request is still granted
func TestBulkAssign_ReportsClaimedSubUnitsAsConflicts(t *testing.T) {
	setup := NewTestSetup(t)
	service := setup.NewAssignmentTestService()

	setup.ExpectTxCommit()

	otherClaim := models.AssignmentClaim{
		AssignmentID: "ASSIGN-other",
		UserID:       "user-2",
		WardID:       "ward-1",
		SubUnitIDs:   models.SubUnitList{"su-2"},
		IsActive:     true,
	}

	setup.MockAssignmentStore.On("GetActiveByWardForUpdate", mock.Anything, mock.Anything, "ward-1").
		Return([]models.AssignmentClaim{otherClaim}, nil)
	setup.MockAssignmentStore.On("CreateWithTx", mock.Anything, mock.Anything, mock.MatchedBy(func(claim *models.AssignmentClaim) bool {
		return assert.ObjectsAreEqual(models.SubUnitList{"su-1"}, claim.SubUnitIDs)
	})).Return(nil)
	setup.MockAuditStore.On("CreateWithTx", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	result, err := service.BulkAssign(context.Background(), NewValidBulkAssignRequest())

	require.NoError(t, err)
	require.Len(t, result.Assigned, 1)
	assert.Equal(t, []string{"su-1"}, result.Assigned[0].SubUnitIDs)
	require.Len(t, result.Conflicts, 1)
	assert.Equal(t, "ward-1", result.Conflicts[0].WardID)
	assert.Equal(t, []string{"su-2"}, result.Conflicts[0].SubUnitIDs)

	setup.MockAssignmentStore.AssertExpectations(t)
}

// TestBulkAssign_MergesIntoOwnClaim tests that a repeat allocation for the
// same user and ward grows the existing claim instead of inserting a second
// one, and that the already-held sub-units come back as conflicts
func TestBulkAssign_MergesIntoOwnClaim(t *testing.T) {
	setup := NewTestSetup(t)
	service := setup.NewAssignmentTestService()

	setup.ExpectTxCommit()

	ownClaim := models.AssignmentClaim{
		AssignmentID: "ASSIGN-own",
		UserID:       "user-1",
		WardID:       "ward-1",
		SubUnitIDs:   models.SubUnitList{"su-1"},
		IsActive:     true,
	}

	setup.MockAssignmentStore.On("GetActiveByWardForUpdate", mock.Anything, mock.Anything, "ward-1").
		Return([]models.AssignmentClaim{ownClaim}, nil)
	setup.MockAssignmentStore.On("UpdateSubUnitsWithTx", mock.Anything, mock.Anything, mock.MatchedBy(func(claim *models.AssignmentClaim) bool {
		return claim.AssignmentID == "ASSIGN-own" &&
			assert.ObjectsAreEqual(models.SubUnitList{"su-1", "su-2"}, claim.SubUnitIDs)
	})).Return(nil)
	setup.MockAuditStore.On("CreateWithTx", mock.Anything, mock.Anything, mock.MatchedBy(func(entry *models.AuditLogEntry) bool {
		return entry.Action == models.AuditActionAssignmentMerged &&
			entry.OldValue != nil && entry.NewValue != nil
	})).Return(nil)

	result, err := service.BulkAssign(context.Background(), NewValidBulkAssignRequest())

	require.NoError(t, err)
	require.Len(t, result.Assigned, 1)
	assert.Equal(t, []string{"su-2"}, result.Assigned[0].SubUnitIDs)
	require.Len(t, result.Conflicts, 1)
	assert.Equal(t, []string{"su-1"}, result.Conflicts[0].SubUnitIDs)

	setup.MockAssignmentStore.AssertNotCalled(t, "CreateWithTx", mock.Anything, mock.Anything, mock.Anything)
	setup.MockAssignmentStore.AssertExpectations(t)
}

// TestBulkAssign_FullyClaimedWardWritesNothing tests that a request whose
// every sub-unit is already held commits without any write and reports the
// whole ward as a conflict
func TestBulkAssign_FullyClaimedWardWritesNothing(t *testing.T) {
	setup := NewTestSetup(t)
	service := setup.NewAssignmentTestService()

	setup.ExpectTxCommit()

	otherClaim := models.AssignmentClaim{
		AssignmentID: "ASSIGN-other",
		UserID:       "user-2",
		WardID:       "ward-1",
		SubUnitIDs:   models.SubUnitList{"su-1", "su-2"},
		IsActive:     true,
	}

	setup.MockAssignmentStore.On("GetActiveByWardForUpdate", mock.Anything, mock.Anything, "ward-1").
		Return([]models.AssignmentClaim{otherClaim}, nil)

	result, err := service.BulkAssign(context.Background(), NewValidBulkAssignRequest())

	require.NoError(t, err)
	assert.Empty(t, result.Assigned)
	require.Len(t, result.Conflicts, 1)
	assert.Equal(t, []string{"su-1", "su-2"}, result.Conflicts[0].SubUnitIDs)

	setup.MockAssignmentStore.AssertNotCalled(t, "CreateWithTx", mock.Anything, mock.Anything, mock.Anything)
	setup.MockAssignmentStore.AssertNotCalled(t, "UpdateSubUnitsWithTx", mock.Anything, mock.Anything, mock.Anything)
	setup.MockAuditStore.AssertNotCalled(t, "CreateWithTx", mock.Anything, mock.Anything, mock.Anything)
}

// TestBulkAssign_RetriesOnceOnDeadlock tests that a deadlocked ward
// transaction is rolled back and retried once before any error surfaces
func TestBulkAssign_RetriesOnceOnDeadlock(t *testing.T) {
	setup := NewTestSetup(t)
	service := setup.NewAssignmentTestService()

	setup.ExpectTxRollback()
	setup.ExpectTxCommit()

	setup.MockAssignmentStore.On("GetActiveByWardForUpdate", mock.Anything, mock.Anything, "ward-1").
		Return(nil, &mysql.MySQLError{Number: 1213, Message: "Deadlock found when trying to get lock"}).Once()
	setup.MockAssignmentStore.On("GetActiveByWardForUpdate", mock.Anything, mock.Anything, "ward-1").
		Return([]models.AssignmentClaim{}, nil).Once()
	setup.MockAssignmentStore.On("CreateWithTx", mock.Anything, mock.Anything, mock.Anything).Return(nil)
	setup.MockAuditStore.On("CreateWithTx", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	result, err := service.BulkAssign(context.Background(), NewValidBulkAssignRequest())

	require.NoError(t, err)
	require.Len(t, result.Assigned, 1)

	setup.MockAssignmentStore.AssertExpectations(t)
	assert.NoError(t, setup.SQLMock.ExpectationsWereMet())
}

// TestBulkAssign_PersistentDeadlockSurfacesConflict tests that a deadlock on
// both attempts comes back as a conflict error
func TestBulkAssign_PersistentDeadlockSurfacesConflict(t *testing.T) {
	setup := NewTestSetup(t)
	service := setup.NewAssignmentTestService()

	setup.ExpectTxRollback()
	setup.ExpectTxRollback()

	setup.MockAssignmentStore.On("GetActiveByWardForUpdate", mock.Anything, mock.Anything, "ward-1").
		Return(nil, &mysql.MySQLError{Number: 1205, Message: "Lock wait timeout exceeded"})

	result, err := service.BulkAssign(context.Background(), NewValidBulkAssignRequest())

	assert.Error(t, err)
	assert.Nil(t, result)
	assert.Equal(t, serviceerror.KindConflict, serviceerror.KindOf(err))
}

// TestUpdateAssignmentStatus_NotFound tests the unknown-assignment path
func TestUpdateAssignmentStatus_NotFound(t *testing.T) {
	setup := NewTestSetup(t)
	service := setup.NewAssignmentTestService()

	setup.ExpectTxRollback()

	setup.MockAssignmentStore.On("GetByIDWithTx", mock.Anything, mock.Anything, "ASSIGN-missing").
		Return(nil, sql.ErrNoRows)

	claim, err := service.UpdateAssignmentStatus(context.Background(), "ASSIGN-missing", false, "admin-1")

	assert.Error(t, err)
	assert.Nil(t, claim)
	assert.Equal(t, serviceerror.KindNotFound, serviceerror.KindOf(err))
}

// TestUpdateAssignmentStatus_DeactivateAudited tests that deactivation writes
// both snapshots into the audit trail and returns the updated claim
func TestUpdateAssignmentStatus_DeactivateAudited(t *testing.T) {
	setup := NewTestSetup(t)
	service := setup.NewAssignmentTestService()

	setup.ExpectTxCommit()

	existing := &models.AssignmentClaim{
		AssignmentID: "ASSIGN-1",
		UserID:       "user-1",
		WardID:       "ward-1",
		SubUnitIDs:   models.SubUnitList{"su-1"},
		IsActive:     true,
	}

	setup.MockAssignmentStore.On("GetByIDWithTx", mock.Anything, mock.Anything, "ASSIGN-1").
		Return(existing, nil)
	setup.MockAssignmentStore.On("UpdateStatusWithTx", mock.Anything, mock.Anything, "ASSIGN-1", false, mock.Anything).
		Return(nil)
	setup.MockAuditStore.On("CreateWithTx", mock.Anything, mock.Anything, mock.MatchedBy(func(entry *models.AuditLogEntry) bool {
		return entry.Action == models.AuditActionAssignmentDeactivated &&
			entry.ActingUserID == "admin-1" &&
			entry.OldValue != nil && entry.NewValue != nil
	})).Return(nil)

	claim, err := service.UpdateAssignmentStatus(context.Background(), "ASSIGN-1", false, "admin-1")

	require.NoError(t, err)
	require.NotNil(t, claim)
	assert.False(t, claim.IsActive)
	assert.True(t, existing.IsActive, "stored claim must not be mutated in place")

	setup.MockAuditStore.AssertExpectations(t)
}

// TestDeleteAssignment_KeepsOldValueInAudit tests that deletion preserves the
// deleted claim as the audit entry's old value
func TestDeleteAssignment_KeepsOldValueInAudit(t *testing.T) {
	setup := NewTestSetup(t)
	service := setup.NewAssignmentTestService()

	setup.ExpectTxCommit()

	existing := &models.AssignmentClaim{
		AssignmentID: "ASSIGN-1",
		UserID:       "user-1",
		WardID:       "ward-1",
		SubUnitIDs:   models.SubUnitList{"su-1"},
		IsActive:     true,
	}

	setup.MockAssignmentStore.On("GetByIDWithTx", mock.Anything, mock.Anything, "ASSIGN-1").
		Return(existing, nil)
	setup.MockAssignmentStore.On("DeleteWithTx", mock.Anything, mock.Anything, "ASSIGN-1").
		Return(nil)
	setup.MockAuditStore.On("CreateWithTx", mock.Anything, mock.Anything, mock.MatchedBy(func(entry *models.AuditLogEntry) bool {
		return entry.Action == models.AuditActionAssignmentDeleted &&
			entry.OldValue != nil && entry.NewValue == nil
	})).Return(nil)

	err := service.DeleteAssignment(context.Background(), "ASSIGN-1", "admin-1")

	require.NoError(t, err)
	setup.MockAssignmentStore.AssertExpectations(t)
	setup.MockAuditStore.AssertExpectations(t)
}

// TestGetAssignmentsByUser_ResolvesMasterData tests the resolved user view
func TestGetAssignmentsByUser_ResolvesMasterData(t *testing.T) {
	setup := NewTestSetup(t)
	service := setup.NewAssignmentTestService()

	claims := []models.AssignmentClaim{
		{
			AssignmentID:   "ASSIGN-1",
			UserID:         "user-1",
			WardID:         "ward-1",
			SubUnitIDs:     models.SubUnitList{"su-1"},
			AssignmentType: models.AssignmentTypePrimary,
			IsActive:       true,
		},
	}

	ward := &models.WardRecord{WardID: "ward-1", WardName: "Shivaji Nagar", WardNo: "12"}
	subUnits := []models.SubUnitRecord{{SubUnitID: "su-1", WardID: "ward-1", SubUnitName: "Mohalla A"}}

	setup.MockAssignmentStore.On("GetActiveByUser", mock.Anything, "user-1").Return(claims, nil)
	setup.MockResolver.On("ResolveWard", mock.Anything, "ward-1").Return(ward, nil)
	setup.MockResolver.On("ResolveSubUnits", mock.Anything, []string{"su-1"}).Return(subUnits, nil)

	views, err := service.GetAssignmentsByUser(context.Background(), "user-1")

	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "ASSIGN-1", views[0].AssignmentID)
	assert.Equal(t, ward, views[0].Ward)
	assert.Equal(t, subUnits, views[0].SubUnits)
	assert.Equal(t, models.AssignmentTypePrimary, views[0].AssignmentType)
}

// TestGetAssignmentsByUser_ValidatesUserID tests the empty-ID guard
func TestGetAssignmentsByUser_ValidatesUserID(t *testing.T) {
	setup := NewTestSetup(t)
	service := setup.NewAssignmentTestService()

	views, err := service.GetAssignmentsByUser(context.Background(), "")

	assert.Error(t, err)
	assert.Nil(t, views)
	assert.Equal(t, serviceerror.KindInvalidArgument, serviceerror.KindOf(err))
}
