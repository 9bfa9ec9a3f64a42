package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/egovernments/property-survey-api/internal/models"
	"github.com/egovernments/property-survey-api/internal/service"
	"github.com/egovernments/property-survey-api/internal/utils"
)

// AssignmentHandler handles assignment-related HTTP requests
type AssignmentHandler struct {
	assignmentService *service.AssignmentService
}

// NewAssignmentHandler creates a new assignment handler instance
func NewAssignmentHandler(assignmentService *service.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{assignmentService: assignmentService}
}

// BulkAssign handles POST /assignments/bulk. Conflicts over already-claimed
// sub-units come back in the response body as data, with 200, not as an
// error status.
func (h *AssignmentHandler) BulkAssign(c *gin.Context) {
	var request models.BulkAssignRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.SendBadRequestError(c, "Invalid request body", err.Error())
		return
	}

	result, err := h.assignmentService.BulkAssign(c.Request.Context(), &request)
	if err != nil {
		utils.SendServiceError(c, err)
		return
	}

	utils.SendOKResponse(c, gin.H{
		"success":   true,
		"assigned":  result.Assigned,
		"conflicts": result.Conflicts,
	})
}

// GetAssignmentsByUser handles GET /assignments/user/:userId
func (h *AssignmentHandler) GetAssignmentsByUser(c *gin.Context) {
	userID := c.Param("userId")

	assignments, err := h.assignmentService.GetAssignmentsByUser(c.Request.Context(), userID)
	if err != nil {
		utils.SendServiceError(c, err)
		return
	}

	utils.SendOKResponse(c, gin.H{"assignments": assignments})
}

// GetAssignmentsByWard handles GET /assignments/ward/:wardId
func (h *AssignmentHandler) GetAssignmentsByWard(c *gin.Context) {
	wardID := c.Param("wardId")

	assignments, err := h.assignmentService.GetAssignmentsByWard(c.Request.Context(), wardID)
	if err != nil {
		utils.SendServiceError(c, err)
		return
	}

	utils.SendOKResponse(c, gin.H{"assignments": assignments})
}

// UpdateAssignmentStatus handles PATCH /assignments/:assignmentId/status
func (h *AssignmentHandler) UpdateAssignmentStatus(c *gin.Context) {
	assignmentID := c.Param("assignmentId")

	var request struct {
		IsActive *bool `json:"isActive" binding:"required"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.SendBadRequestError(c, "Invalid request body", err.Error())
		return
	}

	actingUserID := utils.GetUserIDFromContext(c)
	if actingUserID == "" {
		utils.SendUnauthorizedError(c, "Missing acting user")
		return
	}

	claim, err := h.assignmentService.UpdateAssignmentStatus(c.Request.Context(), assignmentID, *request.IsActive, actingUserID)
	if err != nil {
		utils.SendServiceError(c, err)
		return
	}

	utils.SendOKResponse(c, claim)
}

// DeleteAssignment handles DELETE /assignments/:assignmentId
func (h *AssignmentHandler) DeleteAssignment(c *gin.Context) {
	assignmentID := c.Param("assignmentId")

	actingUserID := utils.GetUserIDFromContext(c)
	if actingUserID == "" {
		utils.SendUnauthorizedError(c, "Missing acting user")
		return
	}

	if err := h.assignmentService.DeleteAssignment(c.Request.Context(), assignmentID, actingUserID); err != nil {
		utils.SendServiceError(c, err)
		return
	}

	utils.SendOKResponse(c, gin.H{"success": true})
}

// GetAllAssignments handles GET /assignments
func (h *AssignmentHandler) GetAllAssignments(c *gin.Context) {
	assignments, err := h.assignmentService.GetAllAssignments(c.Request.Context())
	if err != nil {
		utils.SendServiceError(c, err)
		return
	}

	utils.SendOKResponse(c, gin.H{"assignments": assignments})
}
