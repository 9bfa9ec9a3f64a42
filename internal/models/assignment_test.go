package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSubUnitList_SetAlgebra tests the union, difference and intersection
// operations the allocator is built on
func TestSubUnitList_SetAlgebra(t *testing.T) {
	a := SubUnitList{"su-3", "su-1", "su-2"}
	b := SubUnitList{"su-2", "su-4"}

	assert.Equal(t, SubUnitList{"su-1", "su-2", "su-3", "su-4"}, a.Union(b))
	assert.Equal(t, SubUnitList{"su-1", "su-3"}, a.Diff(b))
	assert.Equal(t, SubUnitList{"su-2"}, a.Intersect(b))
}

// TestSubUnitList_UnionDeduplicates tests duplicate handling inside one list
func TestSubUnitList_UnionDeduplicates(t *testing.T) {
	a := SubUnitList{"su-1", "su-1", "su-2"}

	assert.Equal(t, SubUnitList{"su-1", "su-2"}, a.Union(nil))
	assert.Equal(t, SubUnitList{"su-1", "su-2"}, a.Union(a))
}

// TestSubUnitList_EmptySets tests the degenerate cases
func TestSubUnitList_EmptySets(t *testing.T) {
	var empty SubUnitList
	a := SubUnitList{"su-1"}

	assert.Equal(t, SubUnitList{"su-1"}, empty.Union(a))
	assert.Empty(t, empty.Diff(a))
	assert.Empty(t, empty.Intersect(a))
	assert.Equal(t, SubUnitList{"su-1"}, a.Diff(empty))
	assert.Empty(t, a.Intersect(empty))
}

// TestSubUnitList_Contains tests membership
func TestSubUnitList_Contains(t *testing.T) {
	a := SubUnitList{"su-1", "su-2"}

	assert.True(t, a.Contains("su-1"))
	assert.False(t, a.Contains("su-3"))
	assert.False(t, SubUnitList(nil).Contains("su-1"))
}

// TestSubUnitList_ValueSortsOnWrite tests that the stored JSON array is
// always sorted so audit snapshots compare predictably
func TestSubUnitList_ValueSortsOnWrite(t *testing.T) {
	v, err := SubUnitList{"su-2", "su-1"}.Value()
	require.NoError(t, err)
	assert.Equal(t, []byte(`["su-1","su-2"]`), v)

	v, err = SubUnitList(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, []byte("[]"), v)
}

// TestSubUnitList_Scan tests reading the JSON-array column back
func TestSubUnitList_Scan(t *testing.T) {
	var s SubUnitList
	require.NoError(t, s.Scan([]byte(`["su-1","su-2"]`)))
	assert.Equal(t, SubUnitList{"su-1", "su-2"}, s)

	require.NoError(t, s.Scan(`["su-3"]`))
	assert.Equal(t, SubUnitList{"su-3"}, s)

	require.NoError(t, s.Scan(nil))
	assert.Nil(t, s)

	assert.Error(t, s.Scan(42))
	assert.Error(t, s.Scan([]byte("not json")))
}

// TestIsValidAssignmentType tests the closed type set
func TestIsValidAssignmentType(t *testing.T) {
	assert.True(t, IsValidAssignmentType(AssignmentTypePrimary))
	assert.True(t, IsValidAssignmentType(AssignmentTypeSecondary))
	assert.False(t, IsValidAssignmentType("primary"))
	assert.False(t, IsValidAssignmentType(""))
}
