package service

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/egovernments/property-survey-api/internal/database"
	"github.com/egovernments/property-survey-api/internal/models"
	"github.com/egovernments/property-survey-api/internal/serviceerror"
	"github.com/egovernments/property-survey-api/pkg/utils"
)

// QCService implements the multi-level QC workflow engine. Each decision is
// terminal for its review cycle: history rows are never mutated, and a
// survey's current level and status are derived from the latest record at
// its highest reviewed level.
type QCService struct {
	qcStore    QCRecordStore
	auditStore AuditStore
	db         *database.DB
	logger     *logrus.Logger
}

// NewQCService creates a new QC service instance
func NewQCService(qcStore QCRecordStore, auditStore AuditStore, db *database.DB, logger *logrus.Logger) *QCService {
	return &QCService{
		qcStore:    qcStore,
		auditStore: auditStore,
		db:         db,
		logger:     logger,
	}
}

// SubmitReview records a reviewer's decision at a QC level and returns the
// survey's updated aggregate view. Levels above the first require the
// latest predecessor record to be APPROVED; the precondition check and the
// insert share one transaction, with the predecessor row held under lock so
// two concurrent reviewers cannot both pass the check. A decision already
// recorded since the predecessor approval means this review cycle is closed
// and the call fails with a conflict.
func (s *QCService) SubmitReview(ctx context.Context, request *models.QCReviewRequest, reviewerID string) (*models.QCAggregateView, error) {
	if err := s.validateReviewRequest(request, reviewerID); err != nil {
		return nil, err
	}

	var view *models.QCAggregateView

	err := s.db.WithTransaction(ctx, func(tx *database.Transaction) error {
		var prev *models.QCRecord

		if request.QCLevel > models.QCLevelMin {
			var err error
			prev, err = s.qcStore.GetLatestByLevelForUpdate(ctx, tx, request.SurveyCode, request.QCLevel-1)
			if err != nil {
				return err
			}
			if prev == nil || prev.QCStatus != models.QCStatusApproved {
				return serviceerror.OutOfOrderReview(fmt.Sprintf(
					"level %d review requires an approved level %d record for survey %s",
					request.QCLevel, request.QCLevel-1, request.SurveyCode))
			}
		}

		current, err := s.qcStore.GetLatestByLevelForUpdate(ctx, tx, request.SurveyCode, request.QCLevel)
		if err != nil {
			return err
		}
		if current != nil && prev != nil && current.ReviewedAt >= prev.ReviewedAt {
			return serviceerror.Conflict(fmt.Sprintf(
				"level %d decision already recorded for survey %s in this review cycle",
				request.QCLevel, request.SurveyCode))
		}

		now := utils.GetCurrentTimeMillis()
		record := &models.QCRecord{
			QCRecordID:   utils.GenerateQCRecordID(),
			SurveyCode:   request.SurveyCode,
			QCLevel:      request.QCLevel,
			QCStatus:     request.Decision,
			ErrorType:    request.ErrorType,
			Remarks:      request.Remarks,
			ReviewedByID: reviewerID,
			ReviewedAt:   now,
		}
		if request.SectionalRemarks != nil {
			record.GisTeamRemark = request.SectionalRemarks.GisTeamRemark
			record.SurveyTeamRemark = request.SectionalRemarks.SurveyTeamRemark
			record.RIRemark = request.SectionalRemarks.RIRemark
		}

		if err := s.qcStore.CreateWithTx(ctx, tx, record); err != nil {
			return err
		}

		newJSON, err := models.SnapshotJSON(record)
		if err != nil {
			return err
		}
		entry := &models.AuditLogEntry{
			LogID:        utils.GenerateAuditID(),
			ActingUserID: reviewerID,
			Action:       models.AuditActionQCReviewSubmitted,
			NewValue:     newJSON,
			ActionTime:   now,
		}
		if err := s.auditStore.CreateWithTx(ctx, tx, entry); err != nil {
			return err
		}

		currentRecord, err := s.qcStore.GetCurrentWithTx(ctx, tx, request.SurveyCode)
		if err != nil {
			return err
		}
		if currentRecord == nil {
			currentRecord = record
		}

		view = &models.QCAggregateView{
			SurveyCode:      request.SurveyCode,
			CurrentQCLevel:  currentRecord.QCLevel,
			CurrentQCStatus: currentRecord.QCStatus,
			DisplayQCLevel:  currentRecord.QCLevel,
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"survey_code": request.SurveyCode,
		"qc_level":    request.QCLevel,
		"decision":    request.Decision,
		"reviewer":    reviewerID,
	}).Info("QC review submitted")

	return view, nil
}

// GetQCHistory returns every QC record for a survey, ordered by level then
// review time
func (s *QCService) GetQCHistory(ctx context.Context, surveyCode string) ([]models.QCRecord, error) {
	if err := utils.ValidateSurveyCode(surveyCode); err != nil {
		return nil, serviceerror.InvalidArgument(err.Error())
	}

	records, err := s.qcStore.GetHistory(ctx, surveyCode)
	if err != nil {
		return nil, err
	}

	if records == nil {
		records = []models.QCRecord{}
	}

	return records, nil
}

// ComputeStats aggregates every survey's current record into exact counts
// by status and by level. pendingCount covers surveys that cleared a level
// below the final one and are awaiting the next review.
func (s *QCService) ComputeStats(ctx context.Context) (*models.QCStats, error) {
	currents, err := s.qcStore.GetCurrentRecords(ctx)
	if err != nil {
		return nil, err
	}

	total, err := s.qcStore.CountDistinctSurveys(ctx)
	if err != nil {
		return nil, err
	}

	stats := &models.QCStats{
		StatusCounts: make(map[string]int),
		LevelCounts:  make(map[int]int),
		TotalSurveys: total,
	}

	for _, record := range currents {
		stats.StatusCounts[record.QCStatus]++
		stats.LevelCounts[record.QCLevel]++
		if record.QCStatus == models.QCStatusApproved && record.QCLevel < models.QCLevelMax {
			stats.PendingCount++
		}
	}

	return stats, nil
}

func (s *QCService) validateReviewRequest(request *models.QCReviewRequest, reviewerID string) error {
	if err := utils.ValidateSurveyCode(request.SurveyCode); err != nil {
		return serviceerror.InvalidArgument(err.Error())
	}
	if err := utils.ValidateID("reviewer ID", reviewerID); err != nil {
		return serviceerror.InvalidArgument(err.Error())
	}
	if !models.IsValidQCLevel(request.QCLevel) {
		return serviceerror.InvalidArgument(fmt.Sprintf("qc level out of range: %d", request.QCLevel))
	}
	if !models.IsValidQCDecision(request.Decision) {
		return serviceerror.InvalidArgument("invalid qc decision: " + request.Decision)
	}
	return nil
}
