package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/javedansari81/sunrise-school-management-sub001/app/models"
)

// Named precondition failures surfaced to handlers.
var (
	ErrFeeRecordNotFound  = errors.New("fee record not found")
	ErrTrackingNotEnabled = errors.New("monthly fee tracking not enabled for student")
	ErrNoFeeStructure     = errors.New("No fee structure found for student class")
	ErrOverAllocated      = errors.New("allocations exceed the payment amount")
)

// GetFeeRecordByID fetches a fee record by primary key.
func GetFeeRecordByID(db *sql.DB, feeRecordID string) (*models.FeeRecord, error) {
	record := &models.FeeRecord{}
	query := `SELECT id, student_id, session_year_id, fee_structure_id, total_amount, paid_amount,
			  balance_amount, is_monthly_tracked, created_at, updated_at
			  FROM fee_records WHERE id = $1`
	err := db.QueryRow(query, feeRecordID).Scan(
		&record.ID, &record.StudentID, &record.SessionYearID, &record.FeeStructureID,
		&record.TotalAmount, &record.PaidAmount, &record.BalanceAmount,
		&record.IsMonthlyTracked, &record.CreatedAt, &record.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrFeeRecordNotFound
	}
	if err != nil {
		return nil, err
	}
	return record, nil
}

// GetFeeRecordForStudent fetches the fee record for a (student, session year)
// pair. Returns ErrFeeRecordNotFound when the student has no record.
func GetFeeRecordForStudent(db *sql.DB, studentID, sessionYearID string) (*models.FeeRecord, error) {
	record := &models.FeeRecord{}
	query := `SELECT id, student_id, session_year_id, fee_structure_id, total_amount, paid_amount,
			  balance_amount, is_monthly_tracked, created_at, updated_at
			  FROM fee_records WHERE student_id = $1 AND session_year_id = $2`
	err := db.QueryRow(query, studentID, sessionYearID).Scan(
		&record.ID, &record.StudentID, &record.SessionYearID, &record.FeeStructureID,
		&record.TotalAmount, &record.PaidAmount, &record.BalanceAmount,
		&record.IsMonthlyTracked, &record.CreatedAt, &record.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrFeeRecordNotFound
	}
	if err != nil {
		return nil, err
	}
	return record, nil
}

// CreateFeeRecord inserts a fee record with its balance set to the full total.
func CreateFeeRecord(db *sql.DB, record *models.FeeRecord) error {
	query := `INSERT INTO fee_records (student_id, session_year_id, fee_structure_id, total_amount,
			  paid_amount, balance_amount, is_monthly_tracked, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, 0, $4, false, NOW(), NOW())
			  RETURNING id, created_at, updated_at`
	err := db.QueryRow(query, record.StudentID, record.SessionYearID,
		record.FeeStructureID, record.TotalAmount).Scan(
		&record.ID, &record.CreatedAt, &record.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create fee record: %v", err)
	}
	record.PaidAmount = 0
	record.BalanceAmount = record.TotalAmount
	return nil
}

// FeeRecordFilters represents filtering options for fee record listings.
type FeeRecordFilters struct {
	StudentID     string
	SessionYearID string
	TrackedOnly   bool
	Limit         int
	Offset        int
}

// FeeRecordRow is a fee record joined with its student for list views.
type FeeRecordRow struct {
	models.FeeRecord
	StudentName string `json:"student_name"`
	AdmissionNo string `json:"admission_no"`
	ClassName   string `json:"class_name,omitempty"`
}

// ListFeeRecords returns fee records joined with student details.
func ListFeeRecords(db *sql.DB, filters FeeRecordFilters) ([]*FeeRecordRow, error) {
	baseQuery := `SELECT fr.id, fr.student_id, fr.session_year_id, fr.fee_structure_id,
				  fr.total_amount, fr.paid_amount, fr.balance_amount, fr.is_monthly_tracked,
				  fr.created_at, fr.updated_at,
				  s.first_name || ' ' || s.last_name as student_name, s.admission_no,
				  COALESCE(c.name, '') as class_name
				  FROM fee_records fr
				  JOIN students s ON fr.student_id = s.id
				  LEFT JOIN classes c ON s.class_id = c.id
				  WHERE s.is_active = true AND s.deleted_at IS NULL`

	var args []interface{}
	argIndex := 1

	if filters.StudentID != "" {
		baseQuery += fmt.Sprintf(" AND fr.student_id = $%d", argIndex)
		args = append(args, filters.StudentID)
		argIndex++
	}
	if filters.SessionYearID != "" {
		baseQuery += fmt.Sprintf(" AND fr.session_year_id = $%d", argIndex)
		args = append(args, filters.SessionYearID)
		argIndex++
	}
	if filters.TrackedOnly {
		baseQuery += " AND fr.is_monthly_tracked = true"
	}

	baseQuery += " ORDER BY fr.created_at DESC"
	if filters.Limit > 0 {
		baseQuery += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argIndex, argIndex+1)
		args = append(args, filters.Limit, filters.Offset)
	}

	rows, err := db.Query(baseQuery, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*FeeRecordRow
	for rows.Next() {
		row := &FeeRecordRow{}
		err := rows.Scan(
			&row.ID, &row.StudentID, &row.SessionYearID, &row.FeeStructureID,
			&row.TotalAmount, &row.PaidAmount, &row.BalanceAmount, &row.IsMonthlyTracked,
			&row.CreatedAt, &row.UpdatedAt,
			&row.StudentName, &row.AdmissionNo, &row.ClassName,
		)
		if err != nil {
			continue
		}
		records = append(records, row)
	}
	if records == nil {
		records = []*FeeRecordRow{}
	}
	return records, nil
}

// FeeStats aggregates the fee records for a session year.
type FeeStats struct {
	TotalRecords   int     `json:"total_records"`
	TrackedRecords int     `json:"tracked_records"`
	TotalExpected  float64 `json:"total_expected"`
	TotalPaid      float64 `json:"total_paid"`
	TotalBalance   float64 `json:"total_balance"`
}

// GetFeeStats returns aggregate fee figures, optionally scoped to a session year.
func GetFeeStats(db *sql.DB, sessionYearID string) (*FeeStats, error) {
	query := `
		SELECT
			COUNT(*) as total_records,
			COUNT(CASE WHEN is_monthly_tracked THEN 1 END) as tracked_records,
			COALESCE(SUM(total_amount), 0) as total_expected,
			COALESCE(SUM(paid_amount), 0) as total_paid,
			COALESCE(SUM(balance_amount), 0) as total_balance
		FROM fee_records
	`
	var args []interface{}
	if sessionYearID != "" {
		query += " WHERE session_year_id = $1"
		args = append(args, sessionYearID)
	}

	stats := &FeeStats{}
	err := db.QueryRow(query, args...).Scan(
		&stats.TotalRecords, &stats.TrackedRecords,
		&stats.TotalExpected, &stats.TotalPaid, &stats.TotalBalance,
	)
	if err != nil {
		return nil, err
	}
	return stats, nil
}
