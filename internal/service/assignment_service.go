package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/egovernments/property-survey-api/internal/database"
	"github.com/egovernments/property-survey-api/internal/models"
	"github.com/egovernments/property-survey-api/internal/serviceerror"
	"github.com/egovernments/property-survey-api/pkg/utils"
)

// AssignmentService implements the assignment allocation engine: per-ward
// conflict detection, merge-or-create, activation toggling and deletion,
// each audited in the same transaction as the mutation.
type AssignmentService struct {
	assignmentStore AssignmentStore
	auditStore      AuditStore
	resolver        MasterResolver
	db              *database.DB
	logger          *logrus.Logger
}

// NewAssignmentService creates a new assignment service instance
func NewAssignmentService(
	assignmentStore AssignmentStore,
	auditStore AuditStore,
	resolver MasterResolver,
	db *database.DB,
	logger *logrus.Logger,
) *AssignmentService {
	return &AssignmentService{
		assignmentStore: assignmentStore,
		auditStore:      auditStore,
		resolver:        resolver,
		db:              db,
		logger:          logger,
	}
}

// BulkAssign allocates sub-units to a user ward by ward. Each ward entry is
// its own transaction: the ward's active claims are read under lock, the
// requested set is split into grantable and already-claimed sub-units, and
// the grantable remainder is merged into the user's existing claim for the
// ward or written as a new claim. Already-claimed sub-units are reported in
// the conflicts list, never as an error, and a failure on one ward does not
// undo allocations already committed for other wards.
func (s *AssignmentService) BulkAssign(ctx context.Context, request *models.BulkAssignRequest) (*models.BulkAssignResult, error) {
	if err := s.validateBulkAssignRequest(request); err != nil {
		return nil, err
	}

	result := &models.BulkAssignResult{
		Assigned:  []models.WardAllocation{},
		Conflicts: []models.WardAllocation{},
	}

	for _, entry := range request.Assignments {
		assigned, conflicts, err := s.assignWard(ctx, request, entry)
		if err != nil {
			return nil, err
		}

		if len(assigned) > 0 {
			result.Assigned = append(result.Assigned, models.WardAllocation{
				WardID:     entry.WardID,
				SubUnitIDs: assigned,
			})
		}
		if len(conflicts) > 0 {
			result.Conflicts = append(result.Conflicts, models.WardAllocation{
				WardID:     entry.WardID,
				SubUnitIDs: conflicts,
			})
		}
	}

	s.logger.WithFields(logrus.Fields{
		"user_id":        request.UserID,
		"assigned_wards": len(result.Assigned),
		"conflict_wards": len(result.Conflicts),
	}).Info("Bulk assignment processed")

	return result, nil
}

// assignWard runs one ward's read-merge-write as a single locked unit of
// work and returns the granted and conflicting sub-unit sets
func (s *AssignmentService) assignWard(ctx context.Context, request *models.BulkAssignRequest, entry models.WardAssignmentRequest) (models.SubUnitList, models.SubUnitList, error) {
	var assigned, conflicts models.SubUnitList

	err := runConflictRetry(ctx, s.db, s.logger, func(tx *database.Transaction) error {
		assigned, conflicts = nil, nil

		claims, err := s.assignmentStore.GetActiveByWardForUpdate(ctx, tx, entry.WardID)
		if err != nil {
			return err
		}

		var claimed models.SubUnitList
		var ownClaim *models.AssignmentClaim
		for i := range claims {
			claimed = claimed.Union(claims[i].SubUnitIDs)
			if claims[i].UserID == request.UserID {
				ownClaim = &claims[i]
			}
		}

		requested := models.SubUnitList(entry.SubUnitIDs).Union(nil)
		toAssign := requested.Diff(claimed)
		conflicts = requested.Intersect(claimed)

		if len(toAssign) == 0 {
			return nil
		}

		now := utils.GetCurrentTimeMillis()

		if ownClaim != nil {
			previous := ownClaim.SubUnitIDs
			merged := previous.Union(toAssign)

			updated := *ownClaim
			updated.SubUnitIDs = merged
			updated.AssignmentType = request.AssignmentType
			updated.AssignedByID = request.AssignedByID
			updated.UpdatedTime = now

			if err := s.assignmentStore.UpdateSubUnitsWithTx(ctx, tx, &updated); err != nil {
				return err
			}

			if err := s.writeAudit(ctx, tx, request.AssignedByID, models.AuditActionAssignmentMerged,
				map[string]interface{}{"assignmentId": updated.AssignmentID, "subUnitIds": previous},
				map[string]interface{}{"assignmentId": updated.AssignmentID, "subUnitIds": merged},
				now); err != nil {
				return err
			}
		} else {
			claim := &models.AssignmentClaim{
				AssignmentID:   utils.GenerateAssignmentID(),
				UserID:         request.UserID,
				WardID:         entry.WardID,
				SubUnitIDs:     toAssign,
				AssignmentType: request.AssignmentType,
				AssignedByID:   request.AssignedByID,
				IsActive:       true,
				CreatedTime:    now,
				UpdatedTime:    now,
			}

			if err := s.assignmentStore.CreateWithTx(ctx, tx, claim); err != nil {
				return err
			}

			if err := s.writeAudit(ctx, tx, request.AssignedByID, models.AuditActionAssignmentCreated,
				nil, claim, now); err != nil {
				return err
			}
		}

		assigned = toAssign
		return nil
	})

	if err != nil {
		return nil, nil, err
	}

	return assigned, conflicts, nil
}

// GetAssignmentsByUser returns the user's active claims with ward and
// sub-unit records resolved
func (s *AssignmentService) GetAssignmentsByUser(ctx context.Context, userID string) ([]models.UserAssignmentView, error) {
	if err := utils.ValidateID("user ID", userID); err != nil {
		return nil, serviceerror.InvalidArgument(err.Error())
	}

	claims, err := s.assignmentStore.GetActiveByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	views := make([]models.UserAssignmentView, 0, len(claims))
	for _, claim := range claims {
		ward, err := s.resolver.ResolveWard(ctx, claim.WardID)
		if err != nil {
			s.logger.WithError(err).WithField("ward_id", claim.WardID).Warn("Failed to resolve ward")
		}

		subUnits, err := s.resolver.ResolveSubUnits(ctx, claim.SubUnitIDs)
		if err != nil {
			s.logger.WithError(err).WithField("assignment_id", claim.AssignmentID).Warn("Failed to resolve sub-units")
		}

		views = append(views, models.UserAssignmentView{
			AssignmentID:   claim.AssignmentID,
			Ward:           ward,
			SubUnits:       subUnits,
			AssignmentType: claim.AssignmentType,
		})
	}

	return views, nil
}

// GetAssignmentsByWard returns the ward's active claims with users resolved
func (s *AssignmentService) GetAssignmentsByWard(ctx context.Context, wardID string) ([]models.WardAssignmentView, error) {
	if err := utils.ValidateID("ward ID", wardID); err != nil {
		return nil, serviceerror.InvalidArgument(err.Error())
	}

	claims, err := s.assignmentStore.GetActiveByWard(ctx, wardID)
	if err != nil {
		return nil, err
	}

	views := make([]models.WardAssignmentView, 0, len(claims))
	for _, claim := range claims {
		user, err := s.resolver.ResolveUser(ctx, claim.UserID)
		if err != nil {
			s.logger.WithError(err).WithField("user_id", claim.UserID).Warn("Failed to resolve user")
		}

		views = append(views, models.WardAssignmentView{
			AssignmentID:   claim.AssignmentID,
			User:           user,
			SubUnitIDs:     claim.SubUnitIDs,
			AssignmentType: claim.AssignmentType,
		})
	}

	return views, nil
}

// UpdateAssignmentStatus toggles a claim's activation. Deactivating frees
// the claim's sub-units for reallocation without reassigning them.
func (s *AssignmentService) UpdateAssignmentStatus(ctx context.Context, assignmentID string, isActive bool, actingUserID string) (*models.AssignmentClaim, error) {
	if err := utils.ValidateID("assignment ID", assignmentID); err != nil {
		return nil, serviceerror.InvalidArgument(err.Error())
	}
	if err := utils.ValidateID("acting user ID", actingUserID); err != nil {
		return nil, serviceerror.InvalidArgument(err.Error())
	}

	var updated *models.AssignmentClaim

	err := runConflictRetry(ctx, s.db, s.logger, func(tx *database.Transaction) error {
		existing, err := s.assignmentStore.GetByIDWithTx(ctx, tx, assignmentID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return serviceerror.NotFound("assignment", assignmentID)
			}
			return err
		}

		now := utils.GetCurrentTimeMillis()

		if err := s.assignmentStore.UpdateStatusWithTx(ctx, tx, assignmentID, isActive, now); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return serviceerror.NotFound("assignment", assignmentID)
			}
			return err
		}

		after := *existing
		after.IsActive = isActive
		after.UpdatedTime = now

		action := models.AuditActionAssignmentDeactivated
		if isActive {
			action = models.AuditActionAssignmentActivated
		}

		if err := s.writeAudit(ctx, tx, actingUserID, action, existing, &after, now); err != nil {
			return err
		}

		updated = &after
		return nil
	})

	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"assignment_id": assignmentID,
		"is_active":     isActive,
		"acting_user":   actingUserID,
	}).Info("Assignment status updated")

	return updated, nil
}

// DeleteAssignment hard-deletes a claim. The audit trail keeps the deleted
// claim as the entry's old value; nothing else survives.
func (s *AssignmentService) DeleteAssignment(ctx context.Context, assignmentID, actingUserID string) error {
	if err := utils.ValidateID("assignment ID", assignmentID); err != nil {
		return serviceerror.InvalidArgument(err.Error())
	}
	if err := utils.ValidateID("acting user ID", actingUserID); err != nil {
		return serviceerror.InvalidArgument(err.Error())
	}

	err := runConflictRetry(ctx, s.db, s.logger, func(tx *database.Transaction) error {
		existing, err := s.assignmentStore.GetByIDWithTx(ctx, tx, assignmentID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return serviceerror.NotFound("assignment", assignmentID)
			}
			return err
		}

		if err := s.assignmentStore.DeleteWithTx(ctx, tx, assignmentID); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return serviceerror.NotFound("assignment", assignmentID)
			}
			return err
		}

		now := utils.GetCurrentTimeMillis()
		return s.writeAudit(ctx, tx, actingUserID, models.AuditActionAssignmentDeleted, existing, nil, now)
	})

	if err != nil {
		return err
	}

	s.logger.WithFields(logrus.Fields{
		"assignment_id": assignmentID,
		"acting_user":   actingUserID,
	}).Info("Assignment deleted")

	return nil
}

// GetAllAssignments returns every claim with user, ward and assigner
// resolved, for the administrative listing
func (s *AssignmentService) GetAllAssignments(ctx context.Context) ([]models.AdminAssignmentView, error) {
	claims, err := s.assignmentStore.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]models.AdminAssignmentView, 0, len(claims))
	for _, claim := range claims {
		view := models.AdminAssignmentView{AssignmentClaim: claim}

		if user, err := s.resolver.ResolveUser(ctx, claim.UserID); err == nil {
			view.User = user
		}
		if ward, err := s.resolver.ResolveWard(ctx, claim.WardID); err == nil {
			view.Ward = ward
		}
		if assigner, err := s.resolver.ResolveUser(ctx, claim.AssignedByID); err == nil {
			view.AssignedBy = assigner
		}

		views = append(views, view)
	}

	return views, nil
}

func (s *AssignmentService) validateBulkAssignRequest(request *models.BulkAssignRequest) error {
	if err := utils.ValidateID("user ID", request.UserID); err != nil {
		return serviceerror.InvalidArgument(err.Error())
	}
	if err := utils.ValidateID("assigned-by ID", request.AssignedByID); err != nil {
		return serviceerror.InvalidArgument(err.Error())
	}
	if !models.IsValidAssignmentType(request.AssignmentType) {
		return serviceerror.InvalidArgument("invalid assignment type: " + request.AssignmentType)
	}
	if len(request.Assignments) == 0 {
		return serviceerror.InvalidArgument("assignments list is required")
	}
	for _, entry := range request.Assignments {
		if err := utils.ValidateID("ward ID", entry.WardID); err != nil {
			return serviceerror.InvalidArgument(err.Error())
		}
		if len(entry.SubUnitIDs) == 0 {
			return serviceerror.InvalidArgument("subUnitIds is required for ward " + entry.WardID)
		}
	}
	return nil
}

func (s *AssignmentService) writeAudit(ctx context.Context, tx *database.Transaction, actingUserID, action string, oldValue, newValue interface{}, actionTime int64) error {
	oldJSON, err := models.SnapshotJSON(oldValue)
	if err != nil {
		return err
	}
	newJSON, err := models.SnapshotJSON(newValue)
	if err != nil {
		return err
	}

	entry := &models.AuditLogEntry{
		LogID:        utils.GenerateAuditID(),
		ActingUserID: actingUserID,
		Action:       action,
		OldValue:     oldJSON,
		NewValue:     newJSON,
		ActionTime:   actionTime,
	}

	return s.auditStore.CreateWithTx(ctx, tx, entry)
}
