package services

import (
	"database/sql"
	"log"
	"time"
)

// StartScheduler starts the background task scheduler
func StartScheduler(db *sql.DB) {
	go func() {
		log.Println("Scheduler started...")
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()

		for range ticker.C {
			now := time.Now()

			// Trigger shortly after midnight (00:15)
			if now.Hour() == 0 && now.Minute() == 15 {
				log.Println("Triggering scheduled tasks [00:15]...")

				// Mark overdue monthly fee entries
				if err := MarkOverdueEntries(db); err != nil {
					log.Printf("Error marking overdue fee entries: %v", err)
				}
			}
		}
	}()
}
