package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/egovernments/property-survey-api/internal/service"
	"github.com/egovernments/property-survey-api/internal/utils"
)

// AuditHandler handles audit-trail HTTP requests
type AuditHandler struct {
	auditService *service.AuditService
}

// NewAuditHandler creates a new audit handler instance
func NewAuditHandler(auditService *service.AuditService) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

// GetEntriesByUser handles GET /audit/user/:userId
func (h *AuditHandler) GetEntriesByUser(c *gin.Context) {
	userID := c.Param("userId")

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "0"))
	if err != nil {
		utils.SendBadRequestError(c, "Invalid limit parameter", err.Error())
		return
	}

	entries, err := h.auditService.GetEntriesByActingUser(c.Request.Context(), userID, limit)
	if err != nil {
		utils.SendServiceError(c, err)
		return
	}

	utils.SendOKResponse(c, gin.H{"entries": entries})
}

// GetEntriesByAction handles GET /audit/actions/:action
func (h *AuditHandler) GetEntriesByAction(c *gin.Context) {
	action := c.Param("action")

	from, err := strconv.ParseInt(c.DefaultQuery("from", "0"), 10, 64)
	if err != nil {
		utils.SendBadRequestError(c, "Invalid from parameter", err.Error())
		return
	}

	to, err := strconv.ParseInt(c.DefaultQuery("to", "0"), 10, 64)
	if err != nil {
		utils.SendBadRequestError(c, "Invalid to parameter", err.Error())
		return
	}

	entries, err := h.auditService.GetEntriesByAction(c.Request.Context(), action, from, to)
	if err != nil {
		utils.SendServiceError(c, err)
		return
	}

	utils.SendOKResponse(c, gin.H{"entries": entries})
}
