package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeName(t *testing.T) {
	assert.Equal(t, "mohammed javed ansari", SanitizeName("  Mohammed   JAVED Ansari "))
	assert.Equal(t, "ram kumar", SanitizeName("Ram\tKumar"))
	assert.Equal(t, "", SanitizeName("   "))
}

func TestSanitizePhone(t *testing.T) {
	assert.Equal(t, "919876543210", SanitizePhone("+91 98765-43210"))
	assert.Equal(t, "9876543210", SanitizePhone("(987) 654 3210"))
	assert.Equal(t, "", SanitizePhone("n/a"))
}

func TestWaiverFor(t *testing.T) {
	// The eldest and an only child get nothing
	percent, reason := WaiverFor(1, 1)
	assert.Equal(t, 0.0, percent)
	assert.Empty(t, reason)

	percent, _ = WaiverFor(3, 1)
	assert.Equal(t, 0.0, percent)

	percent, reason = WaiverFor(2, 2)
	assert.Equal(t, 10.0, percent)
	assert.Equal(t, "Second child - 10% sibling discount", reason)

	percent, reason = WaiverFor(3, 3)
	assert.Equal(t, 20.0, percent)
	assert.Equal(t, "Third child - 20% sibling discount", reason)

	percent, reason = WaiverFor(5, 4)
	assert.Equal(t, 25.0, percent)
	assert.Equal(t, "Fourth child - 25% sibling discount", reason)

	percent, _ = WaiverFor(5, 5)
	assert.Equal(t, 25.0, percent)
}

func dob(year, month, day int) *time.Time {
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local)
	return &d
}

func TestRecomputeFamilyOrdersByDateOfBirth(t *testing.T) {
	members := []FamilyMember{
		{StudentID: "youngest", AdmissionNo: "A003", DateOfBirth: dob(2016, 1, 15)},
		{StudentID: "eldest", AdmissionNo: "A001", DateOfBirth: dob(2010, 6, 1)},
		{StudentID: "middle", AdmissionNo: "A002", DateOfBirth: dob(2013, 3, 20)},
	}

	assignments := RecomputeFamily(members)
	require.Len(t, assignments, 3)

	byID := map[string]WaiverAssignment{}
	for _, a := range assignments {
		byID[a.StudentID] = a
	}

	assert.Equal(t, 1, byID["eldest"].BirthOrder)
	assert.Equal(t, 0.0, byID["eldest"].WaiverPercent)
	assert.Empty(t, byID["eldest"].Reason)

	assert.Equal(t, 2, byID["middle"].BirthOrder)
	assert.Equal(t, 10.0, byID["middle"].WaiverPercent)

	assert.Equal(t, 3, byID["youngest"].BirthOrder)
	assert.Equal(t, 20.0, byID["youngest"].WaiverPercent)
}

func TestRecomputeFamilyNilDatesSortLast(t *testing.T) {
	members := []FamilyMember{
		{StudentID: "unknown", AdmissionNo: "A001", DateOfBirth: nil},
		{StudentID: "known", AdmissionNo: "A002", DateOfBirth: dob(2012, 5, 5)},
	}

	assignments := RecomputeFamily(members)
	require.Len(t, assignments, 2)

	byID := map[string]WaiverAssignment{}
	for _, a := range assignments {
		byID[a.StudentID] = a
	}

	assert.Equal(t, 1, byID["known"].BirthOrder)
	assert.Equal(t, 2, byID["unknown"].BirthOrder)
	assert.Equal(t, 10.0, byID["unknown"].WaiverPercent)
}

func TestRecomputeFamilyTiesBreakOnAdmissionNo(t *testing.T) {
	// Twins share a date of birth; the lower admission number counts as elder
	members := []FamilyMember{
		{StudentID: "twin-b", AdmissionNo: "A010", DateOfBirth: dob(2014, 8, 8)},
		{StudentID: "twin-a", AdmissionNo: "A009", DateOfBirth: dob(2014, 8, 8)},
	}

	assignments := RecomputeFamily(members)
	require.Len(t, assignments, 2)

	byID := map[string]WaiverAssignment{}
	for _, a := range assignments {
		byID[a.StudentID] = a
	}

	assert.Equal(t, 1, byID["twin-a"].BirthOrder)
	assert.Equal(t, 2, byID["twin-b"].BirthOrder)
}

func TestRecomputeFamilySingleMemberClearsWaiver(t *testing.T) {
	// A detached student becomes a family of one with no discount
	assignments := RecomputeFamily([]FamilyMember{
		{StudentID: "solo", AdmissionNo: "A001", DateOfBirth: dob(2011, 2, 2)},
	})

	require.Len(t, assignments, 1)
	assert.Equal(t, 1, assignments[0].BirthOrder)
	assert.Equal(t, 0.0, assignments[0].WaiverPercent)
	assert.Empty(t, assignments[0].Reason)
}

func TestRecomputeFamilyDoesNotMutateInput(t *testing.T) {
	members := []FamilyMember{
		{StudentID: "b", AdmissionNo: "A002", DateOfBirth: dob(2015, 1, 1)},
		{StudentID: "a", AdmissionNo: "A001", DateOfBirth: dob(2010, 1, 1)},
	}

	RecomputeFamily(members)
	assert.Equal(t, "b", members[0].StudentID)
	assert.Equal(t, "a", members[1].StudentID)
}
