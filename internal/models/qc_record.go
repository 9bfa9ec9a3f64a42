package models

// QC levels, in escalation order
const (
	QCLevelSurvey   = 1
	QCLevelInOffice = 2
	QCLevelRI       = 3
	QCLevelFinal    = 4

	QCLevelMin = QCLevelSurvey
	QCLevelMax = QCLevelFinal
)

// QC statuses. Every status other than PENDING is terminal for its review
// cycle: a fresh review at the same level inserts a new record.
const (
	QCStatusPending       = "PENDING"
	QCStatusApproved      = "APPROVED"
	QCStatusRejected      = "REJECTED"
	QCStatusNeedsRevision = "NEEDS_REVISION"
	QCStatusDuplicate     = "DUPLICATE"
)

// QCRecord represents the SURVEY_QC_RECORD table: one terminal decision for
// a (surveyCode, qcLevel) review cycle
type QCRecord struct {
	QCRecordID       string  `db:"QC_RECORD_ID" json:"qcRecordId"`
	SurveyCode       string  `db:"SURVEY_CODE" json:"surveyCode"`
	QCLevel          int     `db:"QC_LEVEL" json:"qcLevel"`
	QCStatus         string  `db:"QC_STATUS" json:"qcStatus"`
	ErrorType        *string `db:"ERROR_TYPE" json:"errorType,omitempty"`
	Remarks          *string `db:"REMARKS" json:"remarks,omitempty"`
	GisTeamRemark    *string `db:"GIS_TEAM_REMARK" json:"gisTeamRemark,omitempty"`
	SurveyTeamRemark *string `db:"SURVEY_TEAM_REMARK" json:"surveyTeamRemark,omitempty"`
	RIRemark         *string `db:"RI_REMARK" json:"riRemark,omitempty"`
	ReviewedByID     string  `db:"REVIEWED_BY_ID" json:"reviewedById"`
	ReviewedAt       int64   `db:"REVIEWED_AT" json:"reviewedAt"`
}

// SectionalRemarks carries the per-team remark fields of a review
type SectionalRemarks struct {
	GisTeamRemark    *string `json:"gisTeamRemark,omitempty"`
	SurveyTeamRemark *string `json:"surveyTeamRemark,omitempty"`
	RIRemark         *string `json:"riRemark,omitempty"`
}

// QCReviewRequest is the API payload for POST /qc/reviews
type QCReviewRequest struct {
	SurveyCode       string            `json:"surveyCode" binding:"required"`
	QCLevel          int               `json:"qcLevel" binding:"required"`
	Decision         string            `json:"decision" binding:"required"`
	ErrorType        *string           `json:"errorType,omitempty"`
	Remarks          *string           `json:"remarks,omitempty"`
	SectionalRemarks *SectionalRemarks `json:"sectionalRemarks,omitempty"`
}

// QCAggregateView is the survey's derived QC position: the highest level
// holding any record, and that record's status. Nothing here is stored
// redundantly.
type QCAggregateView struct {
	SurveyCode      string `json:"surveyCode"`
	CurrentQCLevel  int    `json:"currentQCLevel"`
	CurrentQCStatus string `json:"currentQCStatus"`
	DisplayQCLevel  int    `json:"displayQCLevel"`
}

// QCStats are exact aggregate counts over every survey's current record
type QCStats struct {
	StatusCounts map[string]int `json:"statusCounts"`
	LevelCounts  map[int]int    `json:"levelCounts"`
	TotalSurveys int            `json:"totalSurveys"`
	PendingCount int            `json:"pendingCount"`
}

// IsValidQCLevel checks the 1..4 level range
func IsValidQCLevel(level int) bool {
	return level >= QCLevelMin && level <= QCLevelMax
}

// IsValidQCDecision checks the closed terminal-decision set
func IsValidQCDecision(status string) bool {
	switch status {
	case QCStatusApproved, QCStatusRejected, QCStatusNeedsRevision, QCStatusDuplicate:
		return true
	}
	return false
}
