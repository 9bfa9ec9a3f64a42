package serviceerror

import (
	"errors"
	"fmt"
)

// Kind is the closed set of error categories the service layer can raise.
// Handlers decode a Kind into an HTTP status; nothing else about an error
// is load-bearing at the transport boundary.
type Kind string

const (
	KindInvalidArgument  Kind = "invalid_argument"
	KindNotFound         Kind = "not_found"
	KindUnauthorized     Kind = "unauthorized"
	KindOutOfOrderReview Kind = "out_of_order_review"
	KindConflict         Kind = "conflict"
	KindInternal         Kind = "internal"
)

// ServiceError is a structured service-layer error
type ServiceError struct {
	Kind        Kind   `json:"kind"`
	Message     string `json:"message"`
	Description string `json:"description,omitempty"`
}

func (e *ServiceError) Error() string {
	if e.Description != "" {
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Message, e.Description)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// New creates a ServiceError with the given kind and message
func New(kind Kind, message string) *ServiceError {
	return &ServiceError{Kind: kind, Message: message}
}

// Newf creates a ServiceError with a formatted description
func Newf(kind Kind, message, format string, args ...interface{}) *ServiceError {
	return &ServiceError{
		Kind:        kind,
		Message:     message,
		Description: fmt.Sprintf(format, args...),
	}
}

// InvalidArgument reports malformed or missing input
func InvalidArgument(description string) *ServiceError {
	return &ServiceError{Kind: KindInvalidArgument, Message: "invalid request", Description: description}
}

// NotFound reports an unknown resource identifier
func NotFound(resource, id string) *ServiceError {
	return &ServiceError{Kind: KindNotFound, Message: resource + " not found", Description: id}
}

// Unauthorized reports an RBAC or role-gate failure
func Unauthorized(description string) *ServiceError {
	return &ServiceError{Kind: KindUnauthorized, Message: "operation not permitted", Description: description}
}

// OutOfOrderReview reports a QC level-sequencing violation
func OutOfOrderReview(description string) *ServiceError {
	return &ServiceError{Kind: KindOutOfOrderReview, Message: "review out of order", Description: description}
}

// Conflict reports a concurrent-write race detected by the transaction layer
func Conflict(description string) *ServiceError {
	return &ServiceError{Kind: KindConflict, Message: "concurrent modification", Description: description}
}

// Internal wraps an unexpected failure
func Internal(err error) *ServiceError {
	return &ServiceError{Kind: KindInternal, Message: "internal error", Description: err.Error()}
}

// KindOf extracts the Kind from an error chain, KindInternal if none
func KindOf(err error) Kind {
	var se *ServiceError
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindInternal
}

// Is reports whether the error carries the given kind
func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}
