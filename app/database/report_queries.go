package database

import (
	"database/sql"
	"time"

	"github.com/javedansari81/sunrise-school-management-sub001/app/models"
	"github.com/javedansari81/sunrise-school-management-sub001/app/services"
)

// GetStudentMonthlyFeeHistory builds the per-student ledger summary for a
// session year. Tracking must have been enabled; a student without a tracked
// fee record is a precondition failure, not an empty result.
//
// The headline total_paid comes from the raw payment rows while total_balance
// is the sum of clamped per-entry balances. The two can disagree when a month
// was overpaid; keep both sources as they are.
func GetStudentMonthlyFeeHistory(db *sql.DB, studentID, sessionYearID string) (*models.StudentMonthlyFeeHistory, error) {
	record, err := GetFeeRecordForStudent(db, studentID, sessionYearID)
	if err != nil {
		return nil, err
	}
	if !record.IsMonthlyTracked {
		return nil, ErrTrackingNotEnabled
	}

	entries, err := GetLedgerEntries(db, record.ID)
	if err != nil {
		return nil, err
	}

	totalPaid, err := SumPaymentsForFeeRecord(db, record.ID)
	if err != nil {
		return nil, err
	}

	history := &models.StudentMonthlyFeeHistory{
		StudentID:      studentID,
		SessionYearID:  sessionYearID,
		FeeRecordID:    record.ID,
		TotalAnnualFee: record.TotalAmount,
		TotalPaid:      totalPaid,
	}

	// Display names; tolerate missing joins rather than failing the summary
	var className, sessionName sql.NullString
	err = db.QueryRow(`
		SELECT s.first_name || ' ' || s.last_name, s.admission_no, c.name, sy.name
		FROM students s
		LEFT JOIN classes c ON s.class_id = c.id
		LEFT JOIN session_years sy ON sy.id = $2
		WHERE s.id = $1
	`, studentID, sessionYearID).Scan(&history.StudentName, &history.AdmissionNo, &className, &sessionName)
	if err != nil && err != sql.ErrNoRows {
		return nil, err
	}
	history.ClassName = className.String
	history.SessionYearName = sessionName.String

	summary := services.SummarizeLedger(entries, time.Now())
	history.TotalBalance = summary.TotalBalance
	history.MonthsPaid = summary.MonthsPaid
	history.MonthsPending = summary.MonthsPending
	history.MonthsOverdue = summary.MonthsOverdue
	history.Entries = summary.Entries
	history.CollectionPercentage = services.CollectionPercentage(totalPaid, record.TotalAmount)

	return history, nil
}

// GetClassCollectionReport rolls tracked fee records up per class for a
// session year: expected totals from the records, collections from the raw
// payment rows.
func GetClassCollectionReport(db *sql.DB, sessionYearID string) ([]*models.ClassCollectionRow, error) {
	query := `
		SELECT c.id, c.name,
			COUNT(DISTINCT fr.id) as tracked_students,
			COALESCE(SUM(fr.total_amount), 0) as expected,
			COALESCE((
				SELECT SUM(p.amount) FROM payments p
				JOIN fee_records fr2 ON p.fee_record_id = fr2.id
				JOIN students s2 ON fr2.student_id = s2.id
				WHERE s2.class_id = c.id AND fr2.session_year_id = $1 AND fr2.is_monthly_tracked = true
			), 0) as collected
		FROM classes c
		JOIN students s ON s.class_id = c.id AND s.is_active = true AND s.deleted_at IS NULL
		JOIN fee_records fr ON fr.student_id = s.id AND fr.session_year_id = $1 AND fr.is_monthly_tracked = true
		WHERE c.is_active = true AND c.deleted_at IS NULL
		GROUP BY c.id, c.name, c.sort_order
		ORDER BY c.sort_order, c.name`

	rows, err := db.Query(query, sessionYearID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var report []*models.ClassCollectionRow
	for rows.Next() {
		row := &models.ClassCollectionRow{}
		if err := rows.Scan(&row.ClassID, &row.ClassName, &row.TrackedStudents,
			&row.ExpectedAmount, &row.CollectedAmount); err != nil {
			continue
		}
		row.CollectionPercentage = services.CollectionPercentage(row.CollectedAmount, row.ExpectedAmount)
		report = append(report, row)
	}
	if report == nil {
		report = []*models.ClassCollectionRow{}
	}
	return report, nil
}
