package database

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/javedansari81/sunrise-school-management-sub001/app/models"
	"github.com/javedansari81/sunrise-school-management-sub001/app/services"
)

// insertMissingLedgerEntries materializes one ledger row per schedule period
// that does not already exist for the fee record. The (fee_record, month,
// year) existence check makes re-runs no-ops rather than duplicates.
func insertMissingLedgerEntries(tx *sql.Tx, feeRecordID string, periods []services.SchedulePeriod) (int, error) {
	created := 0
	for _, p := range periods {
		var exists bool
		err := tx.QueryRow(`
			SELECT EXISTS(
				SELECT 1 FROM monthly_fee_tracking
				WHERE fee_record_id = $1 AND academic_month = $2 AND academic_year = $3
			)`, feeRecordID, p.Month, p.Year).Scan(&exists)
		if err != nil {
			return created, fmt.Errorf("failed to check ledger entry for %d/%d: %v", p.Month, p.Year, err)
		}
		if exists {
			continue
		}

		_, err = tx.Exec(`
			INSERT INTO monthly_fee_tracking (
				fee_record_id, academic_month, academic_year, monthly_amount,
				paid_amount, due_date, payment_status, created_at, updated_at
			) VALUES ($1, $2, $3, $4, 0, $5, 'pending', NOW(), NOW())
		`, feeRecordID, p.Month, p.Year, p.Amount, p.DueDate)
		if err != nil {
			return created, fmt.Errorf("failed to insert ledger entry for %d/%d: %v", p.Month, p.Year, err)
		}
		created++
	}
	return created, nil
}

// EnableMonthlyTracking amortizes a fee record's annual total into 12 monthly
// ledger entries starting at (startMonth, startYear) and flags the record as
// monthly tracked. Idempotent: existing (month, year) entries are left alone
// and the returned count covers newly created rows only. The whole operation
// runs in one transaction; a failure mid-loop leaves no partial ledger.
func EnableMonthlyTracking(db *sql.DB, feeRecordID string, startMonth, startYear int, defaultAnnual float64, dueDay int) (int, error) {
	tx, err := db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var total float64
	err = tx.QueryRow(`SELECT total_amount FROM fee_records WHERE id = $1`, feeRecordID).Scan(&total)
	if err == sql.ErrNoRows {
		return 0, ErrFeeRecordNotFound
	}
	if err != nil {
		return 0, err
	}

	// Fallback when the record was created without a resolvable fee
	// structure; the amount comes from configuration, not a literal.
	if total <= 0 {
		total = defaultAnnual
		if _, err := tx.Exec(`UPDATE fee_records SET total_amount = $1, balance_amount = $1 - paid_amount, updated_at = NOW() WHERE id = $2`,
			total, feeRecordID); err != nil {
			return 0, err
		}
	}

	periods := services.BuildMonthlySchedule(total, startMonth, startYear, dueDay)
	created, err := insertMissingLedgerEntries(tx, feeRecordID, periods)
	if err != nil {
		return 0, err
	}

	if _, err := tx.Exec(`UPDATE fee_records SET is_monthly_tracked = true, updated_at = NOW() WHERE id = $1`, feeRecordID); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return created, nil
}

// enableStudentTracking runs the complete enable flow for one student inside
// one transaction: resolve (or create) the fee record from the class fee
// structure, then materialize the ledger. A missing fee structure for a
// student without a record is a precondition failure for that student only.
func enableStudentTracking(db *sql.DB, student *models.Student, sessionYearID string, startMonth, startYear int, defaultAnnual float64, dueDay int) (int, error) {
	tx, err := db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var feeRecordID string
	var total float64
	err = tx.QueryRow(`SELECT id, total_amount FROM fee_records WHERE student_id = $1 AND session_year_id = $2`,
		student.ID, sessionYearID).Scan(&feeRecordID, &total)

	switch {
	case err == sql.ErrNoRows:
		// No record yet: derive the annual total from the class fee structure
		if student.ClassID == nil {
			return 0, ErrNoFeeStructure
		}
		var structureID string
		err = tx.QueryRow(`SELECT id, annual_fee FROM fee_structures
			WHERE class_id = $1 AND session_year_id = $2 AND deleted_at IS NULL`,
			*student.ClassID, sessionYearID).Scan(&structureID, &total)
		if err == sql.ErrNoRows {
			return 0, ErrNoFeeStructure
		}
		if err != nil {
			return 0, err
		}

		err = tx.QueryRow(`INSERT INTO fee_records (student_id, session_year_id, fee_structure_id,
			total_amount, paid_amount, balance_amount, is_monthly_tracked, created_at, updated_at)
			VALUES ($1, $2, $3, $4, 0, $4, false, NOW(), NOW()) RETURNING id`,
			student.ID, sessionYearID, structureID, total).Scan(&feeRecordID)
		if err != nil {
			return 0, fmt.Errorf("failed to create fee record: %v", err)
		}
	case err != nil:
		return 0, err
	}

	if total <= 0 {
		total = defaultAnnual
		if _, err := tx.Exec(`UPDATE fee_records SET total_amount = $1, balance_amount = $1 - paid_amount, updated_at = NOW() WHERE id = $2`,
			total, feeRecordID); err != nil {
			return 0, err
		}
	}

	periods := services.BuildMonthlySchedule(total, startMonth, startYear, dueDay)
	created, err := insertMissingLedgerEntries(tx, feeRecordID, periods)
	if err != nil {
		return 0, err
	}

	if _, err := tx.Exec(`UPDATE fee_records SET is_monthly_tracked = true, updated_at = NOW() WHERE id = $1`, feeRecordID); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return created, nil
}

// EnableTrackingForStudents runs the complete enable flow for a batch of
// students. Each student succeeds or fails independently; a missing fee
// structure is recorded as a per-student failure and the batch continues.
func EnableTrackingForStudents(db *sql.DB, studentIDs []string, sessionYearID string, startMonth, startYear int, defaultAnnual float64, dueDay int) models.BatchTrackingResult {
	result := models.BatchTrackingResult{Total: len(studentIDs)}

	for _, studentID := range studentIDs {
		outcome := models.StudentTrackingOutcome{StudentID: studentID}

		student, err := GetStudentByID(db, studentID)
		if err != nil {
			outcome.Reason = "Student not found"
			result.Failed++
			result.Outcomes = append(result.Outcomes, outcome)
			continue
		}
		outcome.StudentName = student.FullName()

		created, err := enableStudentTracking(db, student, sessionYearID, startMonth, startYear, defaultAnnual, dueDay)
		if err != nil {
			log.Printf("Failed to enable tracking for student %s: %v", studentID, err)
			outcome.Reason = err.Error()
			result.Failed++
			result.Outcomes = append(result.Outcomes, outcome)
			continue
		}

		outcome.Success = true
		outcome.EntriesCreated = created
		result.Succeeded++
		result.Outcomes = append(result.Outcomes, outcome)
	}
	return result
}

// GetLedgerEntries returns all ledger rows for a fee record ordered by
// academic year then month.
func GetLedgerEntries(db *sql.DB, feeRecordID string) ([]*models.MonthlyFeeTracking, error) {
	query := `SELECT id, fee_record_id, academic_month, academic_year, monthly_amount, paid_amount,
			  due_date, payment_status, late_fee, discount_amount, created_at, updated_at
			  FROM monthly_fee_tracking
			  WHERE fee_record_id = $1
			  ORDER BY academic_year, academic_month`

	rows, err := db.Query(query, feeRecordID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*models.MonthlyFeeTracking
	for rows.Next() {
		e := &models.MonthlyFeeTracking{}
		err := rows.Scan(
			&e.ID, &e.FeeRecordID, &e.AcademicMonth, &e.AcademicYear,
			&e.MonthlyAmount, &e.PaidAmount, &e.DueDate, &e.PaymentStatus,
			&e.LateFee, &e.DiscountAmount, &e.CreatedAt, &e.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if entries == nil {
		entries = []*models.MonthlyFeeTracking{}
	}
	return entries, nil
}

// GetUnpaidLedgerEntries returns the fee record's unsettled entries oldest
// first, the order payments are applied in.
func GetUnpaidLedgerEntries(db *sql.DB, feeRecordID string) ([]*models.MonthlyFeeTracking, error) {
	query := `SELECT id, fee_record_id, academic_month, academic_year, monthly_amount, paid_amount,
			  due_date, payment_status, late_fee, discount_amount, created_at, updated_at
			  FROM monthly_fee_tracking
			  WHERE fee_record_id = $1 AND payment_status <> 'paid'
			  ORDER BY academic_year, academic_month`

	rows, err := db.Query(query, feeRecordID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*models.MonthlyFeeTracking
	for rows.Next() {
		e := &models.MonthlyFeeTracking{}
		err := rows.Scan(
			&e.ID, &e.FeeRecordID, &e.AcademicMonth, &e.AcademicYear,
			&e.MonthlyAmount, &e.PaidAmount, &e.DueDate, &e.PaymentStatus,
			&e.LateFee, &e.DiscountAmount, &e.CreatedAt, &e.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if entries == nil {
		entries = []*models.MonthlyFeeTracking{}
	}
	return entries, nil
}
