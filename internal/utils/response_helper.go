package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/egovernments/property-survey-api/internal/models"
	"github.com/egovernments/property-survey-api/internal/serviceerror"
)

// SendErrorResponse sends an error JSON response
func SendErrorResponse(c *gin.Context, statusCode int, errCode, message, details string) {
	c.JSON(statusCode, models.ErrorResponse{
		Code:    errCode,
		Message: message,
		Details: details,
	})
}

// SendCreatedResponse sends a 201 Created response
func SendCreatedResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// SendOKResponse sends a 200 OK response
func SendOKResponse(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// SendNoContentResponse sends a 204 No Content response
func SendNoContentResponse(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// SendBadRequestError sends a 400 Bad Request error
func SendBadRequestError(c *gin.Context, message, details string) {
	SendErrorResponse(c, http.StatusBadRequest, models.ErrCodeBadRequest, message, details)
}

// SendUnauthorizedError sends a 401 Unauthorized error
func SendUnauthorizedError(c *gin.Context, message string) {
	SendErrorResponse(c, http.StatusUnauthorized, models.ErrCodeUnauthorized, message, "")
}

// SendForbiddenError sends a 403 Forbidden error
func SendForbiddenError(c *gin.Context, message string) {
	SendErrorResponse(c, http.StatusForbidden, models.ErrCodeForbidden, message, "")
}

// SendNotFoundError sends a 404 Not Found error
func SendNotFoundError(c *gin.Context, message string) {
	SendErrorResponse(c, http.StatusNotFound, models.ErrCodeNotFound, message, "")
}

// SendConflictError sends a 409 Conflict error
func SendConflictError(c *gin.Context, message string) {
	SendErrorResponse(c, http.StatusConflict, models.ErrCodeConflict, message, "")
}

// SendInternalServerError sends a 500 Internal Server Error
func SendInternalServerError(c *gin.Context, message, details string) {
	SendErrorResponse(c, http.StatusInternalServerError, models.ErrCodeInternalError, message, details)
}

// SendServiceError decodes a service-layer error kind into an HTTP status.
// Unknown kinds surface as 500 without leaking internals to the caller.
func SendServiceError(c *gin.Context, err error) {
	switch serviceerror.KindOf(err) {
	case serviceerror.KindInvalidArgument:
		SendErrorResponse(c, http.StatusBadRequest, models.ErrCodeValidationError, "Validation failed", err.Error())
	case serviceerror.KindNotFound:
		SendErrorResponse(c, http.StatusNotFound, models.ErrCodeNotFound, err.Error(), "")
	case serviceerror.KindUnauthorized:
		SendErrorResponse(c, http.StatusForbidden, models.ErrCodeForbidden, err.Error(), "")
	case serviceerror.KindOutOfOrderReview:
		SendErrorResponse(c, http.StatusConflict, models.ErrCodeConflict, err.Error(), "")
	case serviceerror.KindConflict:
		SendErrorResponse(c, http.StatusConflict, models.ErrCodeConflict, err.Error(), "")
	default:
		SendErrorResponse(c, http.StatusInternalServerError, models.ErrCodeInternalError, "Internal server error", "")
	}
}

// GetUserIDFromContext extracts the authenticated principal's ID
func GetUserIDFromContext(c *gin.Context) string {
	userID, exists := c.Get("userID")
	if !exists {
		return ""
	}
	return userID.(string)
}

// GetUserRoleFromContext extracts the authenticated principal's role
func GetUserRoleFromContext(c *gin.Context) string {
	role, exists := c.Get("userRole")
	if !exists {
		return ""
	}
	return role.(string)
}

// SetContextValue sets a value in the Gin context
func SetContextValue(c *gin.Context, key string, value interface{}) {
	c.Set(key, value)
}
