package services

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// FamilyMember is the snapshot of one student used for birth-order
// recomputation: id, tie-break key and date of birth.
type FamilyMember struct {
	StudentID   string
	AdmissionNo string
	DateOfBirth *time.Time
}

// WaiverAssignment is the replacement (birth_order, waiver) pair for one
// family member after a recompute.
type WaiverAssignment struct {
	StudentID     string
	BirthOrder    int
	WaiverPercent float64
	Reason        string
}

// SanitizeName normalizes a guardian name for sibling matching: lowercase,
// trimmed, inner whitespace collapsed to single spaces.
func SanitizeName(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}

// SanitizePhone strips everything but digits so formatting differences never
// split a family.
func SanitizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

var ordinals = []string{"", "First", "Second", "Third", "Fourth", "Fifth", "Sixth", "Seventh", "Eighth", "Ninth", "Tenth"}

func ordinal(n int) string {
	if n >= 1 && n < len(ordinals) {
		return ordinals[n]
	}
	return fmt.Sprintf("%dth", n)
}

// WaiverFor looks up the sibling discount for a child's birth order within a
// family of the given size. The eldest child never receives a discount; an
// only child has no family to discount against.
func WaiverFor(totalSiblings, birthOrder int) (float64, string) {
	if totalSiblings < 2 || birthOrder < 2 {
		return 0, ""
	}

	var percent float64
	switch {
	case birthOrder == 2:
		percent = 10
	case birthOrder == 3:
		percent = 20
	default:
		percent = 25
	}
	reason := fmt.Sprintf("%s child - %.0f%% sibling discount", ordinal(birthOrder), percent)
	return percent, reason
}

// RecomputeFamily derives the full replacement set of (birth_order, waiver)
// assignments for a family snapshot. Members are ordered by date of birth
// ascending, admission number breaking ties and members without a known date
// of birth sorting last. Pure: callers apply the result as one batch write.
func RecomputeFamily(members []FamilyMember) []WaiverAssignment {
	sorted := make([]FamilyMember, len(members))
	copy(sorted, members)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		switch {
		case a.DateOfBirth == nil && b.DateOfBirth == nil:
			return a.AdmissionNo < b.AdmissionNo
		case a.DateOfBirth == nil:
			return false
		case b.DateOfBirth == nil:
			return true
		case a.DateOfBirth.Equal(*b.DateOfBirth):
			return a.AdmissionNo < b.AdmissionNo
		default:
			return a.DateOfBirth.Before(*b.DateOfBirth)
		}
	})

	total := len(sorted)
	assignments := make([]WaiverAssignment, 0, total)
	for i, m := range sorted {
		order := i + 1
		percent, reason := WaiverFor(total, order)
		assignments = append(assignments, WaiverAssignment{
			StudentID:     m.StudentID,
			BirthOrder:    order,
			WaiverPercent: percent,
			Reason:        reason,
		})
	}
	return assignments
}
