package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/egovernments/property-survey-api/internal/authz"
	"github.com/egovernments/property-survey-api/internal/models"
	"github.com/egovernments/property-survey-api/internal/service"
	"github.com/egovernments/property-survey-api/internal/utils"
)

// QCHandler handles QC workflow HTTP requests
type QCHandler struct {
	qcService *service.QCService
}

// NewQCHandler creates a new QC handler instance
func NewQCHandler(qcService *service.QCService) *QCHandler {
	return &QCHandler{qcService: qcService}
}

// SubmitReview handles POST /qc/reviews. The reviewer's role is checked
// against the level's required role before the workflow engine runs.
func (h *QCHandler) SubmitReview(c *gin.Context) {
	var request models.QCReviewRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.SendBadRequestError(c, "Invalid request body", err.Error())
		return
	}

	reviewerID := utils.GetUserIDFromContext(c)
	if reviewerID == "" {
		utils.SendUnauthorizedError(c, "Missing reviewer identity")
		return
	}

	role, err := authz.ParseRole(utils.GetUserRoleFromContext(c))
	if err != nil {
		utils.SendServiceError(c, err)
		return
	}

	if err := authz.CheckReviewerRole(role, request.QCLevel); err != nil {
		utils.SendServiceError(c, err)
		return
	}

	view, err := h.qcService.SubmitReview(c.Request.Context(), &request, reviewerID)
	if err != nil {
		utils.SendServiceError(c, err)
		return
	}

	utils.SendCreatedResponse(c, view)
}

// GetQCHistory handles GET /qc/surveys/:surveyCode/history
func (h *QCHandler) GetQCHistory(c *gin.Context) {
	surveyCode := c.Param("surveyCode")

	records, err := h.qcService.GetQCHistory(c.Request.Context(), surveyCode)
	if err != nil {
		utils.SendServiceError(c, err)
		return
	}

	utils.SendOKResponse(c, gin.H{"history": records})
}

// GetQCStats handles GET /qc/stats
func (h *QCHandler) GetQCStats(c *gin.Context) {
	stats, err := h.qcService.ComputeStats(c.Request.Context())
	if err != nil {
		utils.SendServiceError(c, err)
		return
	}

	utils.SendOKResponse(c, stats)
}
