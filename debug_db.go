//go:build ignore

package main

import (
	"fmt"
	"log"

	"github.com/javedansari81/sunrise-school-management-sub001/app/config"
)

// Ad hoc connectivity probe: go run debug_db.go
func main() {
	config.InitDB()
	db := config.GetDB()
	defer db.Close()

	fmt.Println("Testing fee records query...")
	rows, err := db.Query(`SELECT fr.id, fr.total_amount, fr.paid_amount, fr.is_monthly_tracked,
		s.admission_no
		FROM fee_records fr
		JOIN students s ON fr.student_id = s.id
		ORDER BY fr.created_at DESC
		LIMIT 10`)
	if err != nil {
		log.Fatalf("Query failed: %v", err)
	}
	defer rows.Close()

	count := 0
	for rows.Next() {
		var id, admissionNo string
		var total, paid float64
		var tracked bool
		if err := rows.Scan(&id, &total, &paid, &tracked, &admissionNo); err != nil {
			log.Fatalf("Scan failed: %v", err)
		}
		fmt.Printf("%s  %s  total=%.2f paid=%.2f tracked=%v\n", id, admissionNo, total, paid, tracked)
		count++
	}
	fmt.Printf("%d fee records\n", count)

	var entries int
	if err := db.QueryRow(`SELECT COUNT(*) FROM monthly_fee_tracking`).Scan(&entries); err != nil {
		log.Fatalf("Count failed: %v", err)
	}
	fmt.Printf("%d monthly ledger entries\n", entries)
}
