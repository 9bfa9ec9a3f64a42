package router

import (
	"github.com/gin-gonic/gin"

	"github.com/egovernments/property-survey-api/internal/handlers"
	"github.com/egovernments/property-survey-api/internal/service"
	"github.com/egovernments/property-survey-api/internal/utils"
)

// SetupRouter configures all API routes
func SetupRouter(
	assignmentService *service.AssignmentService,
	qcService *service.QCService,
	auditService *service.AuditService,
) *gin.Engine {
	router := gin.Default()

	// The gateway authenticates requests and forwards the principal in
	// headers; extract them into the request context.
	router.Use(func(c *gin.Context) {
		userID := c.GetHeader("user-id")
		if userID != "" {
			utils.SetContextValue(c, "userID", userID)
		}

		userRole := c.GetHeader("user-role")
		if userRole != "" {
			utils.SetContextValue(c, "userRole", userRole)
		}

		c.Next()
	})

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "healthy"})
	})

	// Create handlers
	assignmentHandler := handlers.NewAssignmentHandler(assignmentService)
	qcHandler := handlers.NewQCHandler(qcService)
	auditHandler := handlers.NewAuditHandler(auditService)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Assignment routes
		assignments := v1.Group("/assignments")
		{
			assignments.POST("/bulk", assignmentHandler.BulkAssign)
			assignments.GET("", assignmentHandler.GetAllAssignments)
			assignments.GET("/user/:userId", assignmentHandler.GetAssignmentsByUser)
			assignments.GET("/ward/:wardId", assignmentHandler.GetAssignmentsByWard)
			assignments.PATCH("/:assignmentId/status", assignmentHandler.UpdateAssignmentStatus)
			assignments.DELETE("/:assignmentId", assignmentHandler.DeleteAssignment)
		}

		// QC workflow routes
		qc := v1.Group("/qc")
		{
			qc.POST("/reviews", qcHandler.SubmitReview)
			qc.GET("/surveys/:surveyCode/history", qcHandler.GetQCHistory)
			qc.GET("/stats", qcHandler.GetQCStats)
		}

		// Audit trail routes
		audit := v1.Group("/audit")
		{
			audit.GET("/user/:userId", auditHandler.GetEntriesByUser)
			audit.GET("/actions/:action", auditHandler.GetEntriesByAction)
		}
	}

	return router
}
