package dao

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/egovernments/property-survey-api/internal/database"
	"github.com/egovernments/property-survey-api/internal/models"
)

// QCRecordDAO handles database operations for QC records
type QCRecordDAO struct {
	db *database.DB
}

// NewQCRecordDAO creates a new QCRecordDAO instance
func NewQCRecordDAO(db *database.DB) *QCRecordDAO {
	return &QCRecordDAO{db: db}
}

const qcRecordColumns = `QC_RECORD_ID, SURVEY_CODE, QC_LEVEL, QC_STATUS, ERROR_TYPE, REMARKS,
	       GIS_TEAM_REMARK, SURVEY_TEAM_REMARK, RI_REMARK, REVIEWED_BY_ID, REVIEWED_AT`

// CreateWithTx inserts a new QC record using a transaction
func (dao *QCRecordDAO) CreateWithTx(ctx context.Context, tx *database.Transaction, record *models.QCRecord) error {
	query := `
		INSERT INTO SURVEY_QC_RECORD (
			QC_RECORD_ID, SURVEY_CODE, QC_LEVEL, QC_STATUS, ERROR_TYPE, REMARKS,
			GIS_TEAM_REMARK, SURVEY_TEAM_REMARK, RI_REMARK, REVIEWED_BY_ID, REVIEWED_AT
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := tx.ExecContext(
		ctx,
		query,
		record.QCRecordID,
		record.SurveyCode,
		record.QCLevel,
		record.QCStatus,
		record.ErrorType,
		record.Remarks,
		record.GisTeamRemark,
		record.SurveyTeamRemark,
		record.RIRemark,
		record.ReviewedByID,
		record.ReviewedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create qc record: %w", err)
	}

	return nil
}

// GetLatestByLevelForUpdate returns the most recent record at a given level
// for a survey, locking the survey's rows at that level so a concurrent
// reviewer cannot pass the same precondition. Returns nil when no record
// exists at the level.
func (dao *QCRecordDAO) GetLatestByLevelForUpdate(ctx context.Context, tx *database.Transaction, surveyCode string, qcLevel int) (*models.QCRecord, error) {
	query := `
		SELECT ` + qcRecordColumns + `
		FROM SURVEY_QC_RECORD
		WHERE SURVEY_CODE = ? AND QC_LEVEL = ?
		ORDER BY REVIEWED_AT DESC, QC_RECORD_ID DESC
		LIMIT 1
		FOR UPDATE
	`

	var record models.QCRecord
	err := tx.GetContext(ctx, &record, query, surveyCode, qcLevel)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest qc record for level: %w", err)
	}

	return &record, nil
}

// GetHistory retrieves every QC record for a survey ordered by level then
// review time
func (dao *QCRecordDAO) GetHistory(ctx context.Context, surveyCode string) ([]models.QCRecord, error) {
	query := `
		SELECT ` + qcRecordColumns + `
		FROM SURVEY_QC_RECORD
		WHERE SURVEY_CODE = ?
		ORDER BY QC_LEVEL ASC, REVIEWED_AT ASC
	`

	var records []models.QCRecord
	err := dao.db.SelectContext(ctx, &records, query, surveyCode)
	if err != nil {
		return nil, fmt.Errorf("failed to get qc history: %w", err)
	}

	return records, nil
}

// GetCurrentWithTx returns the survey's current record: the latest record at
// its highest reviewed level. Returns nil when the survey has no records.
func (dao *QCRecordDAO) GetCurrentWithTx(ctx context.Context, tx *database.Transaction, surveyCode string) (*models.QCRecord, error) {
	query := `
		SELECT ` + qcRecordColumns + `
		FROM SURVEY_QC_RECORD
		WHERE SURVEY_CODE = ?
		ORDER BY QC_LEVEL DESC, REVIEWED_AT DESC, QC_RECORD_ID DESC
		LIMIT 1
	`

	var record models.QCRecord
	err := tx.GetContext(ctx, &record, query, surveyCode)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get current qc record: %w", err)
	}

	return &record, nil
}

// GetCurrentRecords returns every survey's current record, exactly one row
// per survey code, for aggregation. QC_RECORD_ID breaks ties between records
// sharing a REVIEWED_AT millisecond so counts stay exact.
func (dao *QCRecordDAO) GetCurrentRecords(ctx context.Context) ([]models.QCRecord, error) {
	query := `
		SELECT ` + qcRecordColumns + `
		FROM SURVEY_QC_RECORD r
		WHERE NOT EXISTS (
			SELECT 1
			FROM SURVEY_QC_RECORD r2
			WHERE r2.SURVEY_CODE = r.SURVEY_CODE
			  AND (r2.QC_LEVEL > r.QC_LEVEL
				OR (r2.QC_LEVEL = r.QC_LEVEL AND r2.REVIEWED_AT > r.REVIEWED_AT)
				OR (r2.QC_LEVEL = r.QC_LEVEL AND r2.REVIEWED_AT = r.REVIEWED_AT
					AND r2.QC_RECORD_ID > r.QC_RECORD_ID))
		)
		ORDER BY r.SURVEY_CODE ASC
	`

	var records []models.QCRecord
	err := dao.db.SelectContext(ctx, &records, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get current qc records: %w", err)
	}

	return records, nil
}

// CountDistinctSurveys returns the exact number of surveys holding at least
// one QC record
func (dao *QCRecordDAO) CountDistinctSurveys(ctx context.Context) (int, error) {
	query := `SELECT COUNT(DISTINCT SURVEY_CODE) FROM SURVEY_QC_RECORD`

	var total int
	err := dao.db.GetContext(ctx, &total, query)
	if err != nil {
		return 0, fmt.Errorf("failed to count surveys: %w", err)
	}

	return total, nil
}
