// Package authz holds the role model consumed by the request layer: the
// creation guard for new principals and the reviewer-role ladder for QC
// levels. Token mechanics live in the gateway, not here.
package authz

import (
	"github.com/egovernments/property-survey-api/internal/models"
	"github.com/egovernments/property-survey-api/internal/serviceerror"
)

// Role is a principal's role
type Role string

const (
	RoleSuperAdmin Role = "SUPERADMIN"
	RoleAdmin      Role = "ADMIN"
	RoleSupervisor Role = "SUPERVISOR"
	RoleSurveyor   Role = "SURVEYOR"
)

// ParseRole validates a role string against the closed role set
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleSuperAdmin, RoleAdmin, RoleSupervisor, RoleSurveyor:
		return Role(s), nil
	}
	return "", serviceerror.InvalidArgument("unknown role: " + s)
}

// CanCreateRole reports whether a principal with creatorRole may create a
// principal with targetRole. SUPERADMIN may create any role; ADMIN may
// create only SUPERVISOR or SURVEYOR.
func CanCreateRole(creatorRole, targetRole Role) bool {
	switch creatorRole {
	case RoleSuperAdmin:
		return true
	case RoleAdmin:
		return targetRole == RoleSupervisor || targetRole == RoleSurveyor
	}
	return false
}

// CheckCreateRole raises Unauthorized when the creation is not permitted
func CheckCreateRole(creatorRole, targetRole Role) error {
	if !CanCreateRole(creatorRole, targetRole) {
		return serviceerror.Unauthorized(string(creatorRole) + " may not create " + string(targetRole))
	}
	return nil
}

// RequiredReviewerRole returns the role a reviewer must hold to decide at
// the given QC level. Levels 1 and 2 belong to field supervision and
// in-office admins; RI QC stays with admins and the final level needs a
// super admin sign-off.
func RequiredReviewerRole(qcLevel int) (Role, error) {
	switch qcLevel {
	case models.QCLevelSurvey:
		return RoleSupervisor, nil
	case models.QCLevelInOffice, models.QCLevelRI:
		return RoleAdmin, nil
	case models.QCLevelFinal:
		return RoleSuperAdmin, nil
	}
	return "", serviceerror.Newf(serviceerror.KindInvalidArgument, "invalid request", "qc level out of range: %d", qcLevel)
}

// CheckReviewerRole raises Unauthorized when the reviewer's role does not
// match the level's required role. SUPERADMIN may review at any level.
func CheckReviewerRole(reviewerRole Role, qcLevel int) error {
	required, err := RequiredReviewerRole(qcLevel)
	if err != nil {
		return err
	}
	if reviewerRole == RoleSuperAdmin || reviewerRole == required {
		return nil
	}
	return serviceerror.Newf(serviceerror.KindUnauthorized, "operation not permitted",
		"qc level %d requires role %s", qcLevel, required)
}
