package services

import (
	"database/sql"
	"fmt"
	"log"
	"time"
)

// MarkOverdueEntries flips pending ledger entries whose due date has passed to
// overdue. Partial and paid entries keep their status; late fees are not
// applied automatically.
func MarkOverdueEntries(db *sql.DB) error {
	log.Println("Starting overdue fee marking...")

	today := time.Now().Format("2006-01-02")

	result, err := db.Exec(`
		UPDATE monthly_fee_tracking
		SET payment_status = 'overdue', updated_at = NOW()
		WHERE payment_status = 'pending'
		AND due_date < $1
	`, today)
	if err != nil {
		return fmt.Errorf("failed to mark overdue entries: %v", err)
	}

	count, _ := result.RowsAffected()
	log.Printf("Overdue fee marking completed. Updated %d entries.", count)
	return nil
}
