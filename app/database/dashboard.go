package database

import (
	"database/sql"
	"time"

	"github.com/javedansari81/sunrise-school-management-sub001/app/models"
	"github.com/javedansari81/sunrise-school-management-sub001/app/services"
)

// GetDashboardStats returns statistics for the admin dashboard
func GetDashboardStats(db *sql.DB) (*models.DashboardStats, error) {
	stats := &models.DashboardStats{}

	// 1. Total Students
	err := db.QueryRow("SELECT COUNT(*) FROM students WHERE is_active = true AND deleted_at IS NULL").Scan(&stats.TotalStudents)
	if err != nil {
		return nil, err
	}

	// 2. Total Active Classes
	err = db.QueryRow("SELECT COUNT(*) FROM classes WHERE is_active = true AND deleted_at IS NULL").Scan(&stats.TotalClasses)
	if err != nil {
		return nil, err
	}

	// 3. Tracked fee records
	err = db.QueryRow("SELECT COUNT(*) FROM fee_records WHERE is_monthly_tracked = true").Scan(&stats.TrackedRecords)
	if err != nil {
		return nil, err
	}

	// 4. Revenue collected this calendar month
	monthStart := time.Now().Format("2006-01") + "-01"
	err = db.QueryRow(`SELECT COALESCE(SUM(amount), 0) FROM payments WHERE payment_date >= $1::date`, monthStart).Scan(&stats.MonthlyRevenue)
	if err != nil {
		return nil, err
	}

	// 5. Collection rate across tracked records
	var expected, collected float64
	err = db.QueryRow(`
		SELECT COALESCE(SUM(fr.total_amount), 0),
		       COALESCE((SELECT SUM(p.amount) FROM payments p
		                 JOIN fee_records fr2 ON p.fee_record_id = fr2.id
		                 WHERE fr2.is_monthly_tracked = true), 0)
		FROM fee_records fr WHERE fr.is_monthly_tracked = true
	`).Scan(&expected, &collected)
	if err != nil {
		return nil, err
	}
	stats.FeeCollectionRate = services.CollectionPercentage(collected, expected)

	// 6. Overdue ledger entries
	err = db.QueryRow(`SELECT COUNT(*) FROM monthly_fee_tracking WHERE payment_status = 'overdue'`).Scan(&stats.OverdueEntries)
	if err != nil {
		return nil, err
	}

	return stats, nil
}
