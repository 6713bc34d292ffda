package database

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnableMonthlyTrackingCreatesTwelveMonths(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT total_amount FROM fee_records`).
		WithArgs("rec-1").
		WillReturnRows(sqlmock.NewRows([]string{"total_amount"}).AddRow(60000.0))

	for i := 0; i < 12; i++ {
		mock.ExpectQuery(`SELECT EXISTS`).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
		mock.ExpectExec(`INSERT INTO monthly_fee_tracking`).
			WillReturnResult(sqlmock.NewResult(0, 1))
	}

	mock.ExpectExec(`UPDATE fee_records SET is_monthly_tracked = true`).
		WithArgs("rec-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	created, err := EnableMonthlyTracking(db, "rec-1", 4, 2025, 50000, 10)
	require.NoError(t, err)
	assert.Equal(t, 12, created)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnableMonthlyTrackingIsIdempotent(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT total_amount FROM fee_records`).
		WithArgs("rec-1").
		WillReturnRows(sqlmock.NewRows([]string{"total_amount"}).AddRow(60000.0))

	// Every period already exists: no inserts, count stays zero
	for i := 0; i < 12; i++ {
		mock.ExpectQuery(`SELECT EXISTS`).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	}

	mock.ExpectExec(`UPDATE fee_records SET is_monthly_tracked = true`).
		WithArgs("rec-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	created, err := EnableMonthlyTracking(db, "rec-1", 4, 2025, 50000, 10)
	require.NoError(t, err)
	assert.Equal(t, 0, created)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnableMonthlyTrackingAppliesDefaultAnnualFee(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT total_amount FROM fee_records`).
		WithArgs("rec-1").
		WillReturnRows(sqlmock.NewRows([]string{"total_amount"}).AddRow(0.0))

	// Zero total falls back to the configured default
	mock.ExpectExec(`UPDATE fee_records SET total_amount`).
		WithArgs(50000.0, "rec-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	for i := 0; i < 12; i++ {
		mock.ExpectQuery(`SELECT EXISTS`).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
		mock.ExpectExec(`INSERT INTO monthly_fee_tracking`).
			WillReturnResult(sqlmock.NewResult(0, 1))
	}

	mock.ExpectExec(`UPDATE fee_records SET is_monthly_tracked = true`).
		WithArgs("rec-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	created, err := EnableMonthlyTracking(db, "rec-1", 4, 2025, 50000, 10)
	require.NoError(t, err)
	assert.Equal(t, 12, created)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnableMonthlyTrackingMissingRecord(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT total_amount FROM fee_records`).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"total_amount"}))
	mock.ExpectRollback()

	_, err = EnableMonthlyTracking(db, "missing", 4, 2025, 50000, 10)
	assert.ErrorIs(t, err, ErrFeeRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func batchStudentRow(id, admissionNo, firstName string) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{
		"id", "admission_no", "first_name", "last_name", "date_of_birth", "gender", "address",
		"class_id", "session_year_id", "father_name", "father_phone", "mother_name",
		"birth_order", "sibling_waiver_percent", "sibling_waiver_reason",
		"is_active", "created_at", "updated_at",
	}).AddRow(id, admissionNo, firstName, "Kumar", now, "male", nil,
		"class-1", "sy-1", "Raj Kumar", "9876543210", nil,
		1, 0.0, nil, true, now, now)
}

func TestEnableTrackingForStudentsContinuesPastFailures(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	expectStudent := func(id, admissionNo, firstName string) {
		mock.ExpectQuery(`SELECT id, admission_no`).
			WithArgs(id).
			WillReturnRows(batchStudentRow(id, admissionNo, firstName))
	}
	expectEnableSuccess := func(studentID, recordID string) {
		mock.ExpectBegin()
		mock.ExpectQuery(`SELECT id, total_amount FROM fee_records`).
			WithArgs(studentID, "sy-1").
			WillReturnRows(sqlmock.NewRows([]string{"id", "total_amount"}).AddRow(recordID, 60000.0))
		for i := 0; i < 12; i++ {
			mock.ExpectQuery(`SELECT EXISTS`).
				WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
			mock.ExpectExec(`INSERT INTO monthly_fee_tracking`).
				WillReturnResult(sqlmock.NewResult(0, 1))
		}
		mock.ExpectExec(`UPDATE fee_records SET is_monthly_tracked = true`).
			WithArgs(recordID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()
	}

	expectStudent("stu-1", "ADM-001", "Asha")
	expectEnableSuccess("stu-1", "rec-1")

	// Second student has no fee record and the class carries no fee
	// structure for the session; only this student fails
	expectStudent("stu-2", "ADM-002", "Bala")
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id, total_amount FROM fee_records`).
		WithArgs("stu-2", "sy-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "total_amount"}))
	mock.ExpectQuery(`SELECT id, annual_fee FROM fee_structures`).
		WithArgs("class-1", "sy-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "annual_fee"}))
	mock.ExpectRollback()

	expectStudent("stu-3", "ADM-003", "Charu")
	expectEnableSuccess("stu-3", "rec-3")

	result := EnableTrackingForStudents(db, []string{"stu-1", "stu-2", "stu-3"}, "sy-1", 4, 2025, 50000, 10)

	assert.Equal(t, 3, result.Total)
	assert.Equal(t, 2, result.Succeeded)
	assert.Equal(t, 1, result.Failed)
	require.Len(t, result.Outcomes, 3)

	assert.True(t, result.Outcomes[0].Success)
	assert.Equal(t, 12, result.Outcomes[0].EntriesCreated)

	assert.False(t, result.Outcomes[1].Success)
	assert.Equal(t, "Bala Kumar", result.Outcomes[1].StudentName)
	assert.Equal(t, ErrNoFeeStructure.Error(), result.Outcomes[1].Reason)

	assert.True(t, result.Outcomes[2].Success)
	assert.Equal(t, 12, result.Outcomes[2].EntriesCreated)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetLedgerEntriesOrdered(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.NewRows([]string{
		"id", "fee_record_id", "academic_month", "academic_year", "monthly_amount",
		"paid_amount", "due_date", "payment_status", "late_fee", "discount_amount",
		"created_at", "updated_at",
	}).
		AddRow("e1", "rec-1", 4, 2025, 5000.0, 5000.0, now, "paid", 0.0, 0.0, now, now).
		AddRow("e2", "rec-1", 5, 2025, 5000.0, 0.0, now, "pending", 0.0, 0.0, now, now)

	mock.ExpectQuery(`SELECT .+ FROM monthly_fee_tracking`).
		WithArgs("rec-1").
		WillReturnRows(rows)

	entries, err := GetLedgerEntries(db, "rec-1")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, 4, entries[0].AcademicMonth)
	assert.Equal(t, 5, entries[1].AcademicMonth)
	assert.NoError(t, mock.ExpectationsWereMet())
}
