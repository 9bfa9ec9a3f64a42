package dao

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/egovernments/property-survey-api/internal/database"
	"github.com/egovernments/property-survey-api/internal/models"
)

// MasterDataDAO resolves ward, sub-unit and user master records by ID. The
// master tables are owned by the master-data service; this DAO only reads.
type MasterDataDAO struct {
	db *database.DB
}

// NewMasterDataDAO creates a new MasterDataDAO instance
func NewMasterDataDAO(db *database.DB) *MasterDataDAO {
	return &MasterDataDAO{db: db}
}

// ResolveSubUnits resolves sub-unit IDs to full records
func (dao *MasterDataDAO) ResolveSubUnits(ctx context.Context, ids []string) ([]models.SubUnitRecord, error) {
	if len(ids) == 0 {
		return []models.SubUnitRecord{}, nil
	}

	placeholders := strings.Repeat("?,", len(ids)-1) + "?"
	query := fmt.Sprintf(`
		SELECT SUB_UNIT_ID, WARD_ID, SUB_UNIT_NAME
		FROM SUB_UNIT
		WHERE SUB_UNIT_ID IN (%s)
		ORDER BY SUB_UNIT_NAME ASC
	`, placeholders)

	args := make([]interface{}, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	var subUnits []models.SubUnitRecord
	err := dao.db.SelectContext(ctx, &subUnits, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve sub-units: %w", err)
	}

	return subUnits, nil
}

// ResolveWard resolves a ward ID to its record
func (dao *MasterDataDAO) ResolveWard(ctx context.Context, wardID string) (*models.WardRecord, error) {
	query := `
		SELECT WARD_ID, WARD_NAME, WARD_NO
		FROM WARD
		WHERE WARD_ID = ?
	`

	var ward models.WardRecord
	err := dao.db.GetContext(ctx, &ward, query, wardID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, sql.ErrNoRows
		}
		return nil, fmt.Errorf("failed to resolve ward: %w", err)
	}

	return &ward, nil
}

// ResolveUser resolves a user ID to its record
func (dao *MasterDataDAO) ResolveUser(ctx context.Context, userID string) (*models.UserRecord, error) {
	query := `
		SELECT USER_ID, NAME, USERNAME
		FROM SURVEY_USER
		WHERE USER_ID = ?
	`

	var user models.UserRecord
	err := dao.db.GetContext(ctx, &user, query, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, sql.ErrNoRows
		}
		return nil, fmt.Errorf("failed to resolve user: %w", err)
	}

	return &user, nil
}
