package database

import (
	"testing"
	"time"

	"github.com/javedansari81/sunrise-school-management-sub001/app/models"
	"github.com/javedansari81/sunrise-school-management-sub001/app/services"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePaymentWithAllocations(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO payments`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow("pay-1", now))

	// First allocation: fresh pair, partial month
	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("pay-1", "entry-apr").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery(`SELECT monthly_amount, paid_amount, payment_status`).
		WithArgs("entry-apr").
		WillReturnRows(sqlmock.NewRows([]string{"monthly_amount", "paid_amount", "payment_status"}).
			AddRow(5000.0, 0.0, "pending"))
	mock.ExpectExec(`UPDATE monthly_fee_tracking`).
		WithArgs(4000.0, "partial", "entry-apr").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO payment_allocations`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow("alloc-1", now))

	mock.ExpectExec(`UPDATE fee_records`).
		WithArgs(4000.0, "rec-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	payment := &models.Payment{
		FeeRecordID:   "rec-1",
		Amount:        4000,
		PaymentMethod: models.MethodCash,
		PaymentDate:   now,
		ReceiptNo:     "RCP-TEST0001",
	}
	created, err := CreatePaymentWithAllocations(db, payment, []services.AllocationRequest{
		{MonthlyTrackingID: "entry-apr", Amount: 4000},
	})
	require.NoError(t, err)
	require.Len(t, created, 1)
	assert.Equal(t, "pay-1", payment.ID)
	assert.Equal(t, 4000.0, created[0].AllocatedAmount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreatePaymentClampsEntryAtMonthlyAmount(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO payments`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow("pay-1", now))

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("pay-1", "entry-apr").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery(`SELECT monthly_amount, paid_amount, payment_status`).
		WithArgs("entry-apr").
		WillReturnRows(sqlmock.NewRows([]string{"monthly_amount", "paid_amount", "payment_status"}).
			AddRow(5000.0, 4000.0, "partial"))

	// 2000 requested but only 1000 outstanding: the entry lands exactly at
	// its monthly amount and flips to paid
	mock.ExpectExec(`UPDATE monthly_fee_tracking`).
		WithArgs(5000.0, "paid", "entry-apr").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO payment_allocations`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow("alloc-1", now))

	mock.ExpectExec(`UPDATE fee_records`).
		WithArgs(2000.0, "rec-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	payment := &models.Payment{
		FeeRecordID:   "rec-1",
		Amount:        2000,
		PaymentMethod: models.MethodUPI,
		PaymentDate:   now,
		ReceiptNo:     "RCP-TEST0002",
	}
	_, err = CreatePaymentWithAllocations(db, payment, []services.AllocationRequest{
		{MonthlyTrackingID: "entry-apr", Amount: 2000},
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAllocatePaymentSkipsDuplicatePairs(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT amount FROM payments`).
		WithArgs("pay-1").
		WillReturnRows(sqlmock.NewRows([]string{"amount"}).AddRow(5000.0))
	mock.ExpectQuery(`SELECT COALESCE\(SUM\(allocated_amount\), 0\) FROM payment_allocations`).
		WithArgs("pay-1").
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(0.0))

	// The (payment, entry) pair was already recorded: no update, no insert
	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("pay-1", "entry-apr").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectCommit()

	created, err := AllocatePayment(db, "pay-1", []services.AllocationRequest{
		{MonthlyTrackingID: "entry-apr", Amount: 1000},
	})
	require.NoError(t, err)
	assert.Empty(t, created)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAllocatePaymentUnknownPayment(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT amount FROM payments`).
		WithArgs("ghost").
		WillReturnRows(sqlmock.NewRows([]string{"amount"}))
	mock.ExpectRollback()

	_, err = AllocatePayment(db, "ghost", []services.AllocationRequest{
		{MonthlyTrackingID: "entry-apr", Amount: 1000},
	})
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAllocatePaymentRejectsAmountsBeyondPayment(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	// Payment of 100 with nothing allocated yet; a 5000 request must not
	// leave any allocation row behind
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT amount FROM payments`).
		WithArgs("pay-1").
		WillReturnRows(sqlmock.NewRows([]string{"amount"}).AddRow(100.0))
	mock.ExpectQuery(`SELECT COALESCE\(SUM\(allocated_amount\), 0\) FROM payment_allocations`).
		WithArgs("pay-1").
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(0.0))
	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("pay-1", "entry-apr").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectRollback()

	created, err := AllocatePayment(db, "pay-1", []services.AllocationRequest{
		{MonthlyTrackingID: "entry-apr", Amount: 5000},
	})
	require.ErrorIs(t, err, ErrOverAllocated)
	assert.Empty(t, created)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAllocatePaymentCountsPriorAllocations(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	// 4500 of the 5000 payment is already allocated, so another 1000 would
	// push the stored total past the payment amount
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT amount FROM payments`).
		WithArgs("pay-1").
		WillReturnRows(sqlmock.NewRows([]string{"amount"}).AddRow(5000.0))
	mock.ExpectQuery(`SELECT COALESCE\(SUM\(allocated_amount\), 0\) FROM payment_allocations`).
		WithArgs("pay-1").
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(4500.0))
	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("pay-1", "entry-may").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectRollback()

	_, err = AllocatePayment(db, "pay-1", []services.AllocationRequest{
		{MonthlyTrackingID: "entry-may", Amount: 1000},
	})
	require.ErrorIs(t, err, ErrOverAllocated)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreatePaymentRejectsAllocationsBeyondAmount(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO payments`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow("pay-1", now))

	// First request fits, the second crosses the payment amount
	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("pay-1", "entry-apr").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectQuery(`SELECT monthly_amount, paid_amount, payment_status`).
		WithArgs("entry-apr").
		WillReturnRows(sqlmock.NewRows([]string{"monthly_amount", "paid_amount", "payment_status"}).
			AddRow(5000.0, 0.0, "pending"))
	mock.ExpectExec(`UPDATE monthly_fee_tracking`).
		WithArgs(3000.0, "partial", "entry-apr").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`INSERT INTO payment_allocations`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow("alloc-1", now))
	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("pay-1", "entry-may").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectRollback()

	payment := &models.Payment{
		FeeRecordID:   "rec-1",
		Amount:        4000,
		PaymentMethod: models.MethodCash,
		PaymentDate:   now,
		ReceiptNo:     "RCP-TEST0003",
	}
	_, err = CreatePaymentWithAllocations(db, payment, []services.AllocationRequest{
		{MonthlyTrackingID: "entry-apr", Amount: 3000},
		{MonthlyTrackingID: "entry-may", Amount: 3000},
	})
	require.ErrorIs(t, err, ErrOverAllocated)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSumPaymentsForFeeRecord(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT COALESCE\(SUM\(amount\), 0\) FROM payments`).
		WithArgs("rec-1").
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(12500.0))

	total, err := SumPaymentsForFeeRecord(db, "rec-1")
	require.NoError(t, err)
	assert.Equal(t, 12500.0, total)
}
