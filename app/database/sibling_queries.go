package database

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/javedansari81/sunrise-school-management-sub001/app/models"
	"github.com/javedansari81/sunrise-school-management-sub001/app/services"
)

// FindSiblingCandidates returns active, non-deleted students whose sanitized
// father name and phone exactly match the given student's. Matching is done
// in SQL with the same normalization the service layer applies: case-folded,
// whitespace-collapsed names and digit-only phones.
func FindSiblingCandidates(db *sql.DB, student *models.Student) ([]*models.Student, error) {
	name := services.SanitizeName(student.FatherName)
	phone := services.SanitizePhone(student.FatherPhone)
	if name == "" || phone == "" {
		return []*models.Student{}, nil
	}

	query := `SELECT id, admission_no, first_name, last_name, date_of_birth, gender, address,
			  class_id, session_year_id, father_name, father_phone, mother_name,
			  birth_order, sibling_waiver_percent, sibling_waiver_reason,
			  is_active, created_at, updated_at
			  FROM students
			  WHERE id <> $1
			  AND is_active = true AND deleted_at IS NULL
			  AND LOWER(regexp_replace(TRIM(father_name), '\s+', ' ', 'g')) = $2
			  AND regexp_replace(father_phone, '[^0-9]', '', 'g') = $3
			  ORDER BY date_of_birth NULLS LAST`

	rows, err := db.Query(query, student.ID, name, phone)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var candidates []*models.Student
	for rows.Next() {
		s := &models.Student{}
		err := rows.Scan(
			&s.ID, &s.AdmissionNo, &s.FirstName, &s.LastName,
			&s.DateOfBirth, &s.Gender, &s.Address,
			&s.ClassID, &s.SessionYearID,
			&s.FatherName, &s.FatherPhone, &s.MotherName,
			&s.BirthOrder, &s.SiblingWaiverPercent, &s.SiblingWaiverReason,
			&s.IsActive, &s.CreatedAt, &s.UpdatedAt,
		)
		if err != nil {
			continue
		}
		candidates = append(candidates, s)
	}
	if candidates == nil {
		candidates = []*models.Student{}
	}
	return candidates, nil
}

// familyMemberIDs collects the distinct family around the given students:
// themselves plus everyone linked to any of them. Links are kept as a
// complete graph, so one hop covers the whole family.
func familyMemberIDs(tx *sql.Tx, studentIDs ...string) ([]string, error) {
	seen := make(map[string]bool)
	var members []string
	add := func(id string) {
		if !seen[id] {
			seen[id] = true
			members = append(members, id)
		}
	}
	for _, id := range studentIDs {
		add(id)
	}

	rows, err := tx.Query(`SELECT sibling_id FROM sibling_links WHERE student_id = ANY($1::uuid[])`, idArray(studentIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		add(id)
	}
	return members, nil
}

// loadFamilySnapshots fetches the birth-order inputs for a set of students.
func loadFamilySnapshots(tx *sql.Tx, memberIDs []string) ([]services.FamilyMember, error) {
	rows, err := tx.Query(`SELECT id, admission_no, date_of_birth FROM students
		WHERE id = ANY($1::uuid[]) AND deleted_at IS NULL`, idArray(memberIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []services.FamilyMember
	for rows.Next() {
		var m services.FamilyMember
		if err := rows.Scan(&m.StudentID, &m.AdmissionNo, &m.DateOfBirth); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, nil
}

// applyWaiverAssignments writes the full replacement set of (birth_order,
// waiver) values as one batch, so a partial recompute can never be observed.
func applyWaiverAssignments(tx *sql.Tx, assignments []services.WaiverAssignment) error {
	for _, a := range assignments {
		var reason interface{}
		if a.Reason != "" {
			reason = a.Reason
		}
		_, err := tx.Exec(`UPDATE students
			SET birth_order = $1, sibling_waiver_percent = $2, sibling_waiver_reason = $3, updated_at = NOW()
			WHERE id = $4`, a.BirthOrder, a.WaiverPercent, reason, a.StudentID)
		if err != nil {
			return fmt.Errorf("failed to apply waiver for student %s: %v", a.StudentID, err)
		}
	}
	return nil
}

// recomputeFamilyTx recomputes birth order and waivers for the family around
// the given students and applies the result inside the open transaction.
func recomputeFamilyTx(tx *sql.Tx, studentIDs ...string) ([]services.WaiverAssignment, error) {
	memberIDs, err := familyMemberIDs(tx, studentIDs...)
	if err != nil {
		return nil, err
	}
	snapshots, err := loadFamilySnapshots(tx, memberIDs)
	if err != nil {
		return nil, err
	}
	assignments := services.RecomputeFamily(snapshots)
	if err := applyWaiverAssignments(tx, assignments); err != nil {
		return nil, err
	}
	return assignments, nil
}

// LinkSiblings joins two students (and their existing families) into one
// family. Links are stored bidirectionally and completed pairwise across the
// merged member set; birth order and waivers are recomputed for every member,
// not just the new pair.
func LinkSiblings(db *sql.DB, studentID, siblingID string) ([]services.WaiverAssignment, error) {
	if studentID == siblingID {
		return nil, fmt.Errorf("cannot link a student to themselves")
	}

	tx, err := db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	memberIDs, err := familyMemberIDs(tx, studentID, siblingID)
	if err != nil {
		return nil, err
	}

	// Complete the pairwise links across the merged family
	for _, a := range memberIDs {
		for _, b := range memberIDs {
			if a == b {
				continue
			}
			_, err := tx.Exec(`INSERT INTO sibling_links (student_id, sibling_id, created_at)
				VALUES ($1, $2, NOW()) ON CONFLICT (student_id, sibling_id) DO NOTHING`, a, b)
			if err != nil {
				return nil, fmt.Errorf("failed to insert sibling link: %v", err)
			}
		}
	}

	assignments, err := recomputeFamilyTx(tx, studentID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return assignments, nil
}

// UnlinkSibling detaches a student from their family: every link touching the
// student is removed, the remaining family is recomputed, and the detached
// student's own waiver is reset by recomputing them as a family of one.
func UnlinkSibling(db *sql.DB, studentID string) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	memberIDs, err := familyMemberIDs(tx, studentID)
	if err != nil {
		return err
	}

	_, err = tx.Exec(`DELETE FROM sibling_links WHERE student_id = $1 OR sibling_id = $1`, studentID)
	if err != nil {
		return fmt.Errorf("failed to remove sibling links: %v", err)
	}

	// Recompute the remaining family without the detached student
	var remaining []string
	for _, id := range memberIDs {
		if id != studentID {
			remaining = append(remaining, id)
		}
	}
	if len(remaining) > 0 {
		if _, err := recomputeFamilyTx(tx, remaining[0]); err != nil {
			return err
		}
	}

	// The detached student becomes a family of one: no birth order, no waiver
	if _, err := recomputeFamilyTx(tx, studentID); err != nil {
		return err
	}

	return tx.Commit()
}

// DetectAndLinkSiblings finds the student's siblings by guardian match and
// links them into one family, returning the student's resulting waiver.
func DetectAndLinkSiblings(db *sql.DB, studentID string) (float64, string, error) {
	student, err := GetStudentByID(db, studentID)
	if err != nil {
		return 0, "", err
	}

	candidates, err := FindSiblingCandidates(db, student)
	if err != nil {
		return 0, "", err
	}
	if len(candidates) == 0 {
		return 0, "", nil
	}

	var assignments []services.WaiverAssignment
	for _, sibling := range candidates {
		assignments, err = LinkSiblings(db, studentID, sibling.ID)
		if err != nil {
			log.Printf("Failed to link sibling %s for student %s: %v", sibling.ID, studentID, err)
			return 0, "", err
		}
	}

	for _, a := range assignments {
		if a.StudentID == studentID {
			return a.WaiverPercent, a.Reason, nil
		}
	}
	return 0, "", nil
}

// GetFamily returns the student's linked siblings (excluding the student).
func GetFamily(db *sql.DB, studentID string) ([]*models.Student, error) {
	query := `SELECT s.id, s.admission_no, s.first_name, s.last_name, s.date_of_birth, s.gender, s.address,
			  s.class_id, s.session_year_id, s.father_name, s.father_phone, s.mother_name,
			  s.birth_order, s.sibling_waiver_percent, s.sibling_waiver_reason,
			  s.is_active, s.created_at, s.updated_at
			  FROM sibling_links sl
			  JOIN students s ON sl.sibling_id = s.id
			  WHERE sl.student_id = $1 AND s.deleted_at IS NULL
			  ORDER BY s.birth_order, s.date_of_birth NULLS LAST`

	rows, err := db.Query(query, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var siblings []*models.Student
	for rows.Next() {
		s := &models.Student{}
		err := rows.Scan(
			&s.ID, &s.AdmissionNo, &s.FirstName, &s.LastName,
			&s.DateOfBirth, &s.Gender, &s.Address,
			&s.ClassID, &s.SessionYearID,
			&s.FatherName, &s.FatherPhone, &s.MotherName,
			&s.BirthOrder, &s.SiblingWaiverPercent, &s.SiblingWaiverReason,
			&s.IsActive, &s.CreatedAt, &s.UpdatedAt,
		)
		if err != nil {
			continue
		}
		siblings = append(siblings, s)
	}
	if siblings == nil {
		siblings = []*models.Student{}
	}
	return siblings, nil
}
