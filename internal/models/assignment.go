package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"sort"
)

// Assignment types
const (
	AssignmentTypePrimary   = "PRIMARY"
	AssignmentTypeSecondary = "SECONDARY"
)

// SubUnitList is a set of sub-unit ("mohalla") IDs stored as a JSON array
// column. Order is normalized on write so snapshots compare predictably.
type SubUnitList []string

// Scan implements the sql.Scanner interface for SubUnitList
func (s *SubUnitList) Scan(value interface{}) error {
	if value == nil {
		*s = nil
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("unsupported type for SubUnitList: %T", value)
	}

	var ids []string
	if err := json.Unmarshal(bytes, &ids); err != nil {
		return fmt.Errorf("invalid sub-unit list data: %w", err)
	}

	*s = SubUnitList(ids)
	return nil
}

// Value implements the driver.Valuer interface for SubUnitList
func (s SubUnitList) Value() (driver.Value, error) {
	if s == nil {
		return []byte("[]"), nil
	}
	sorted := append(SubUnitList(nil), s...)
	sort.Strings(sorted)
	return json.Marshal(sorted)
}

// Contains reports whether id is in the list
func (s SubUnitList) Contains(id string) bool {
	for _, v := range s {
		if v == id {
			return true
		}
	}
	return false
}

// Union returns the sorted union of s and other
func (s SubUnitList) Union(other SubUnitList) SubUnitList {
	seen := make(map[string]struct{}, len(s)+len(other))
	var out SubUnitList
	for _, id := range s {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	for _, id := range other {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}

// Diff returns the members of s not present in other, sorted
func (s SubUnitList) Diff(other SubUnitList) SubUnitList {
	var out SubUnitList
	for _, id := range s {
		if !other.Contains(id) && !out.Contains(id) {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}

// Intersect returns the members of s also present in other, sorted
func (s SubUnitList) Intersect(other SubUnitList) SubUnitList {
	var out SubUnitList
	for _, id := range s {
		if other.Contains(id) && !out.Contains(id) {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out
}

// AssignmentClaim represents the SURVEY_ASSIGNMENT table. One active row
// exists per (user, ward) pair; SubUnitIDs grows as later allocations merge
// into it.
type AssignmentClaim struct {
	AssignmentID   string      `db:"ASSIGNMENT_ID" json:"assignmentId"`
	UserID         string      `db:"USER_ID" json:"userId"`
	WardID         string      `db:"WARD_ID" json:"wardId"`
	SubUnitIDs     SubUnitList `db:"SUB_UNIT_IDS" json:"subUnitIds"`
	AssignmentType string      `db:"ASSIGNMENT_TYPE" json:"assignmentType"`
	AssignedByID   string      `db:"ASSIGNED_BY_ID" json:"assignedById"`
	IsActive       bool        `db:"IS_ACTIVE" json:"isActive"`
	CreatedTime    int64       `db:"CREATED_TIME" json:"createdTime"`
	UpdatedTime    int64       `db:"UPDATED_TIME" json:"updatedTime"`
}

// WardAssignmentRequest is a single ward's worth of sub-units in a bulk
// allocation request
type WardAssignmentRequest struct {
	WardID     string   `json:"wardId" binding:"required"`
	SubUnitIDs []string `json:"subUnitIds" binding:"required"`
}

// BulkAssignRequest is the API payload for POST /assignments/bulk
type BulkAssignRequest struct {
	UserID         string                  `json:"userId" binding:"required"`
	AssignmentType string                  `json:"assignmentType" binding:"required"`
	Assignments    []WardAssignmentRequest `json:"assignments" binding:"required"`
	AssignedByID   string                  `json:"assignedById" binding:"required"`
}

// WardAllocation reports the outcome for one ward in a bulk allocation:
// either the sub-units actually granted or the ones already claimed.
type WardAllocation struct {
	WardID     string   `json:"wardId"`
	SubUnitIDs []string `json:"subUnitIds"`
}

// BulkAssignResult carries both partial-success lists; conflicts are data,
// not errors.
type BulkAssignResult struct {
	Assigned  []WardAllocation `json:"assigned"`
	Conflicts []WardAllocation `json:"conflicts"`
}

// UserAssignmentView is a claim resolved for display to the assigned user
type UserAssignmentView struct {
	AssignmentID   string          `json:"assignmentId"`
	Ward           *WardRecord     `json:"ward"`
	SubUnits       []SubUnitRecord `json:"subUnits"`
	AssignmentType string          `json:"assignmentType"`
}

// WardAssignmentView is a claim resolved for the ward roster
type WardAssignmentView struct {
	AssignmentID   string      `json:"assignmentId"`
	User           *UserRecord `json:"user"`
	SubUnitIDs     SubUnitList `json:"subUnitIds"`
	AssignmentType string      `json:"assignmentType"`
}

// AdminAssignmentView is the administrative full listing entry
type AdminAssignmentView struct {
	AssignmentClaim
	User       *UserRecord `json:"user,omitempty"`
	Ward       *WardRecord `json:"ward,omitempty"`
	AssignedBy *UserRecord `json:"assignedBy,omitempty"`
}

// WardRecord is master data for a ward, consumed by ID only
type WardRecord struct {
	WardID   string `db:"WARD_ID" json:"wardId"`
	WardName string `db:"WARD_NAME" json:"wardName"`
	WardNo   string `db:"WARD_NO" json:"wardNo"`
}

// SubUnitRecord is master data for a sub-unit (mohalla)
type SubUnitRecord struct {
	SubUnitID   string `db:"SUB_UNIT_ID" json:"subUnitId"`
	WardID      string `db:"WARD_ID" json:"wardId"`
	SubUnitName string `db:"SUB_UNIT_NAME" json:"subUnitName"`
}

// UserRecord is master data for a principal
type UserRecord struct {
	UserID   string `db:"USER_ID" json:"userId"`
	Name     string `db:"NAME" json:"name"`
	Username string `db:"USERNAME" json:"username"`
}

// IsValidAssignmentType checks the closed assignment-type set
func IsValidAssignmentType(t string) bool {
	return t == AssignmentTypePrimary || t == AssignmentTypeSecondary
}
