package dao

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/egovernments/property-survey-api/internal/database"
	"github.com/egovernments/property-survey-api/internal/models"
)

// AssignmentDAO handles database operations for assignment claims
type AssignmentDAO struct {
	db *database.DB
}

// NewAssignmentDAO creates a new AssignmentDAO instance
func NewAssignmentDAO(db *database.DB) *AssignmentDAO {
	return &AssignmentDAO{db: db}
}

const assignmentColumns = `ASSIGNMENT_ID, USER_ID, WARD_ID, SUB_UNIT_IDS, ASSIGNMENT_TYPE,
	       ASSIGNED_BY_ID, IS_ACTIVE, CREATED_TIME, UPDATED_TIME`

// CreateWithTx inserts a new assignment claim using a transaction
func (dao *AssignmentDAO) CreateWithTx(ctx context.Context, tx *database.Transaction, claim *models.AssignmentClaim) error {
	query := `
		INSERT INTO SURVEY_ASSIGNMENT (
			ASSIGNMENT_ID, USER_ID, WARD_ID, SUB_UNIT_IDS, ASSIGNMENT_TYPE,
			ASSIGNED_BY_ID, IS_ACTIVE, CREATED_TIME, UPDATED_TIME
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := tx.ExecContext(
		ctx,
		query,
		claim.AssignmentID,
		claim.UserID,
		claim.WardID,
		claim.SubUnitIDs,
		claim.AssignmentType,
		claim.AssignedByID,
		claim.IsActive,
		claim.CreatedTime,
		claim.UpdatedTime,
	)

	if err != nil {
		return fmt.Errorf("failed to create assignment: %w", err)
	}

	return nil
}

// GetActiveByWardForUpdate loads every active claim for a ward and locks the
// rows for the duration of the transaction. The conflict computation in the
// allocator is only correct while these rows are held.
func (dao *AssignmentDAO) GetActiveByWardForUpdate(ctx context.Context, tx *database.Transaction, wardID string) ([]models.AssignmentClaim, error) {
	query := `
		SELECT ` + assignmentColumns + `
		FROM SURVEY_ASSIGNMENT
		WHERE WARD_ID = ? AND IS_ACTIVE = TRUE
		FOR UPDATE
	`

	var claims []models.AssignmentClaim
	err := tx.SelectContext(ctx, &claims, query, wardID)
	if err != nil {
		return nil, fmt.Errorf("failed to get active claims for ward: %w", err)
	}

	return claims, nil
}

// UpdateSubUnitsWithTx overwrites a claim's sub-unit set, type and assigner
// after a merge
func (dao *AssignmentDAO) UpdateSubUnitsWithTx(ctx context.Context, tx *database.Transaction, claim *models.AssignmentClaim) error {
	query := `
		UPDATE SURVEY_ASSIGNMENT
		SET SUB_UNIT_IDS = ?, ASSIGNMENT_TYPE = ?, ASSIGNED_BY_ID = ?, UPDATED_TIME = ?
		WHERE ASSIGNMENT_ID = ?
	`

	result, err := tx.ExecContext(
		ctx,
		query,
		claim.SubUnitIDs,
		claim.AssignmentType,
		claim.AssignedByID,
		claim.UpdatedTime,
		claim.AssignmentID,
	)

	if err != nil {
		return fmt.Errorf("failed to update assignment sub-units: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return sql.ErrNoRows
	}

	return nil
}

// GetByIDWithTx retrieves a claim by ID and locks it
func (dao *AssignmentDAO) GetByIDWithTx(ctx context.Context, tx *database.Transaction, assignmentID string) (*models.AssignmentClaim, error) {
	query := `
		SELECT ` + assignmentColumns + `
		FROM SURVEY_ASSIGNMENT
		WHERE ASSIGNMENT_ID = ?
		FOR UPDATE
	`

	var claim models.AssignmentClaim
	err := tx.GetContext(ctx, &claim, query, assignmentID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, sql.ErrNoRows
		}
		return nil, fmt.Errorf("failed to get assignment: %w", err)
	}

	return &claim, nil
}

// UpdateStatusWithTx toggles a claim's activation flag
func (dao *AssignmentDAO) UpdateStatusWithTx(ctx context.Context, tx *database.Transaction, assignmentID string, isActive bool, updatedTime int64) error {
	query := `
		UPDATE SURVEY_ASSIGNMENT
		SET IS_ACTIVE = ?, UPDATED_TIME = ?
		WHERE ASSIGNMENT_ID = ?
	`

	result, err := tx.ExecContext(ctx, query, isActive, updatedTime, assignmentID)
	if err != nil {
		return fmt.Errorf("failed to update assignment status: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return sql.ErrNoRows
	}

	return nil
}

// DeleteWithTx hard-deletes a claim. Audit entries for the claim persist
// independently.
func (dao *AssignmentDAO) DeleteWithTx(ctx context.Context, tx *database.Transaction, assignmentID string) error {
	query := `DELETE FROM SURVEY_ASSIGNMENT WHERE ASSIGNMENT_ID = ?`

	result, err := tx.ExecContext(ctx, query, assignmentID)
	if err != nil {
		return fmt.Errorf("failed to delete assignment: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return sql.ErrNoRows
	}

	return nil
}

// GetActiveByUser retrieves all active claims held by a user
func (dao *AssignmentDAO) GetActiveByUser(ctx context.Context, userID string) ([]models.AssignmentClaim, error) {
	query := `
		SELECT ` + assignmentColumns + `
		FROM SURVEY_ASSIGNMENT
		WHERE USER_ID = ? AND IS_ACTIVE = TRUE
		ORDER BY CREATED_TIME DESC
	`

	var claims []models.AssignmentClaim
	err := dao.db.SelectContext(ctx, &claims, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get assignments by user: %w", err)
	}

	return claims, nil
}

// GetActiveByWard retrieves all active claims within a ward
func (dao *AssignmentDAO) GetActiveByWard(ctx context.Context, wardID string) ([]models.AssignmentClaim, error) {
	query := `
		SELECT ` + assignmentColumns + `
		FROM SURVEY_ASSIGNMENT
		WHERE WARD_ID = ? AND IS_ACTIVE = TRUE
		ORDER BY CREATED_TIME DESC
	`

	var claims []models.AssignmentClaim
	err := dao.db.SelectContext(ctx, &claims, query, wardID)
	if err != nil {
		return nil, fmt.Errorf("failed to get assignments by ward: %w", err)
	}

	return claims, nil
}

// GetAll retrieves every claim, active or not
func (dao *AssignmentDAO) GetAll(ctx context.Context) ([]models.AssignmentClaim, error) {
	query := `
		SELECT ` + assignmentColumns + `
		FROM SURVEY_ASSIGNMENT
		ORDER BY CREATED_TIME DESC
	`

	var claims []models.AssignmentClaim
	err := dao.db.SelectContext(ctx, &claims, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get all assignments: %w", err)
	}

	return claims, nil
}
