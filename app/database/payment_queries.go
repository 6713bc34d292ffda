package database

import (
	"database/sql"
	"fmt"

	"github.com/javedansari81/sunrise-school-management-sub001/app/models"
	"github.com/javedansari81/sunrise-school-management-sub001/app/services"

	"github.com/lib/pq"
)

// allocateToLedger applies allocation requests against ledger entries inside
// an open transaction. For each requested (entry, amount) pair it skips
// duplicates of an already-recorded (payment, entry) allocation, clamps the
// entry's paid amount at its monthly share, and recomputes the entry status.
// remaining is the payment amount not yet covered by stored allocations; a
// request that would push the stored total past it fails the whole
// transaction with ErrOverAllocated. Returns the allocation rows actually
// created.
func allocateToLedger(tx *sql.Tx, paymentID string, remaining float64, requests []services.AllocationRequest) ([]*models.PaymentAllocation, error) {
	var created []*models.PaymentAllocation

	for _, req := range requests {
		// Defend against double-submission of the same allocation
		var exists bool
		err := tx.QueryRow(`
			SELECT EXISTS(
				SELECT 1 FROM payment_allocations
				WHERE payment_id = $1 AND monthly_tracking_id = $2
			)`, paymentID, req.MonthlyTrackingID).Scan(&exists)
		if err != nil {
			return nil, fmt.Errorf("failed to check existing allocation: %v", err)
		}
		if exists {
			continue
		}

		// Small tolerance absorbs float drift from the monthly split
		if req.Amount-remaining > 0.01 {
			return nil, ErrOverAllocated
		}
		remaining -= req.Amount

		entry := &models.MonthlyFeeTracking{ID: req.MonthlyTrackingID}
		err = tx.QueryRow(`
			SELECT monthly_amount, paid_amount, payment_status
			FROM monthly_fee_tracking WHERE id = $1
		`, req.MonthlyTrackingID).Scan(&entry.MonthlyAmount, &entry.PaidAmount, &entry.PaymentStatus)
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("ledger entry %s not found", req.MonthlyTrackingID)
		}
		if err != nil {
			return nil, err
		}

		// Clamp: an entry never shows more paid than owed. Excess is not
		// redistributed here; period selection is the caller's concern.
		services.ApplyAllocation(entry, req.Amount)

		_, err = tx.Exec(`
			UPDATE monthly_fee_tracking
			SET paid_amount = $1, payment_status = $2, updated_at = NOW()
			WHERE id = $3
		`, entry.PaidAmount, entry.PaymentStatus, entry.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to update ledger entry: %v", err)
		}

		alloc := &models.PaymentAllocation{
			PaymentID:         paymentID,
			MonthlyTrackingID: req.MonthlyTrackingID,
			AllocatedAmount:   req.Amount,
		}
		err = tx.QueryRow(`
			INSERT INTO payment_allocations (payment_id, monthly_tracking_id, allocated_amount, created_at)
			VALUES ($1, $2, $3, NOW())
			ON CONFLICT (payment_id, monthly_tracking_id) DO NOTHING
			RETURNING id, created_at
		`, paymentID, req.MonthlyTrackingID, req.Amount).Scan(&alloc.ID, &alloc.CreatedAt)
		if err == sql.ErrNoRows {
			// A concurrent request won the pair between the EXISTS check and
			// the insert; same outcome as the skip above
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to insert allocation: %v", err)
		}
		created = append(created, alloc)
	}
	return created, nil
}

// CreatePaymentWithAllocations records a payment and distributes it across the
// requested ledger entries in a single transaction, then rolls the payment
// amount into the fee record's advisory paid/balance figures. All-or-nothing:
// any failure leaves neither the payment nor any allocation behind.
func CreatePaymentWithAllocations(db *sql.DB, payment *models.Payment, requests []services.AllocationRequest) ([]*models.PaymentAllocation, error) {
	tx, err := db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	queryPayment := `INSERT INTO payments (fee_record_id, amount, payment_method, payment_date, receipt_no, received_by, notes, created_at)
	                 VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
					 RETURNING id, created_at`
	err = tx.QueryRow(queryPayment,
		payment.FeeRecordID,
		payment.Amount,
		string(payment.PaymentMethod),
		payment.PaymentDate,
		payment.ReceiptNo,
		payment.ReceivedBy,
		payment.Notes,
	).Scan(&payment.ID, &payment.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return nil, fmt.Errorf("receipt number %s already exists", payment.ReceiptNo)
		}
		return nil, fmt.Errorf("failed to insert payment: %v", err)
	}

	created, err := allocateToLedger(tx, payment.ID, payment.Amount, requests)
	if err != nil {
		return nil, err
	}

	_, err = tx.Exec(`
		UPDATE fee_records
		SET paid_amount = paid_amount + $1,
		    balance_amount = total_amount - (paid_amount + $1),
		    updated_at = NOW()
		WHERE id = $2
	`, payment.Amount, payment.FeeRecordID)
	if err != nil {
		return nil, fmt.Errorf("failed to update fee record totals: %v", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return created, nil
}

// AllocatePayment applies additional allocations for an already-recorded
// payment, e.g. when the office assigns months after the money came in.
// Re-submitting an identical (payment, entry) pair is a no-op. The stored
// allocation total for a payment can never exceed the payment's amount;
// requests that would cross it fail with ErrOverAllocated.
func AllocatePayment(db *sql.DB, paymentID string, requests []services.AllocationRequest) ([]*models.PaymentAllocation, error) {
	tx, err := db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var amount float64
	err = tx.QueryRow(`SELECT amount FROM payments WHERE id = $1`, paymentID).Scan(&amount)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("payment %s not found", paymentID)
	}
	if err != nil {
		return nil, err
	}

	var allocated float64
	err = tx.QueryRow(`SELECT COALESCE(SUM(allocated_amount), 0) FROM payment_allocations WHERE payment_id = $1`, paymentID).Scan(&allocated)
	if err != nil {
		return nil, err
	}

	created, err := allocateToLedger(tx, paymentID, amount-allocated, requests)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return created, nil
}

// SumPaymentsForFeeRecord sums the raw payment rows for a fee record. This is
// the headline "total paid" figure; it is deliberately NOT derived from the
// clamped per-entry paid amounts so it matches the payment history view.
func SumPaymentsForFeeRecord(db *sql.DB, feeRecordID string) (float64, error) {
	var total float64
	err := db.QueryRow(`SELECT COALESCE(SUM(amount), 0) FROM payments WHERE fee_record_id = $1`, feeRecordID).Scan(&total)
	if err != nil {
		return 0, err
	}
	return total, nil
}

// GetPaymentsForFeeRecord retrieves all payments for a fee record, newest first.
func GetPaymentsForFeeRecord(db *sql.DB, feeRecordID string) ([]*models.Payment, error) {
	query := `SELECT id, fee_record_id, amount, payment_method, payment_date, receipt_no, received_by, notes, created_at
	          FROM payments
			  WHERE fee_record_id = $1
			  ORDER BY payment_date DESC`

	rows, err := db.Query(query, feeRecordID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []*models.Payment
	for rows.Next() {
		p := &models.Payment{}
		var method string
		err := rows.Scan(
			&p.ID, &p.FeeRecordID, &p.Amount, &method,
			&p.PaymentDate, &p.ReceiptNo, &p.ReceivedBy,
			&p.Notes, &p.CreatedAt,
		)
		if err != nil {
			continue
		}
		p.PaymentMethod = models.PaymentMethod(method)
		payments = append(payments, p)
	}
	if payments == nil {
		payments = []*models.Payment{}
	}
	return payments, nil
}

// GetAllocationsForPayment retrieves the allocation trail of one payment.
func GetAllocationsForPayment(db *sql.DB, paymentID string) ([]*models.PaymentAllocation, error) {
	query := `SELECT pa.id, pa.payment_id, pa.monthly_tracking_id, pa.allocated_amount, pa.created_at
	          FROM payment_allocations pa
			  WHERE pa.payment_id = $1
			  ORDER BY pa.created_at`

	rows, err := db.Query(query, paymentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var allocations []*models.PaymentAllocation
	for rows.Next() {
		a := &models.PaymentAllocation{}
		if err := rows.Scan(&a.ID, &a.PaymentID, &a.MonthlyTrackingID, &a.AllocatedAmount, &a.CreatedAt); err != nil {
			continue
		}
		allocations = append(allocations, a)
	}
	if allocations == nil {
		allocations = []*models.PaymentAllocation{}
	}
	return allocations, nil
}
