package models

import "time"

// MonthlyLedgerView is one ledger entry prepared for display: the balance is
// clamped at zero and the month carries its human-readable name.
type MonthlyLedgerView struct {
	ID             string        `json:"id"`
	AcademicMonth  int           `json:"academic_month"`
	AcademicYear   int           `json:"academic_year"`
	MonthName      string        `json:"month_name"`
	MonthlyAmount  float64       `json:"monthly_amount"`
	PaidAmount     float64       `json:"paid_amount"`
	Balance        float64       `json:"balance"`
	DueDate        time.Time     `json:"due_date"`
	PaymentStatus  PaymentStatus `json:"payment_status"`
	LateFee        float64       `json:"late_fee"`
	DiscountAmount float64       `json:"discount_amount"`
	IsOverdue      bool          `json:"is_overdue"`
}

// StudentMonthlyFeeHistory is the per-student ledger summary used by
// dashboards and the monthly history endpoint.
type StudentMonthlyFeeHistory struct {
	StudentID            string              `json:"student_id"`
	StudentName          string              `json:"student_name"`
	AdmissionNo          string              `json:"admission_no"`
	ClassName            string              `json:"class_name,omitempty"`
	SessionYearID        string              `json:"session_year_id"`
	SessionYearName      string              `json:"session_year_name,omitempty"`
	FeeRecordID          string              `json:"fee_record_id"`
	TotalAnnualFee       float64             `json:"total_annual_fee"`
	TotalPaid            float64             `json:"total_paid"`
	TotalBalance         float64             `json:"total_balance"`
	MonthsPaid           int                 `json:"months_paid"`
	MonthsPending        int                 `json:"months_pending"`
	MonthsOverdue        int                 `json:"months_overdue"`
	CollectionPercentage float64             `json:"collection_percentage"`
	Entries              []MonthlyLedgerView `json:"entries"`
}

// StudentTrackingOutcome is one student's result within a batch
// enable-tracking call. Failures carry a reason instead of aborting the batch.
type StudentTrackingOutcome struct {
	StudentID      string `json:"student_id"`
	StudentName    string `json:"student_name,omitempty"`
	Success        bool   `json:"success"`
	EntriesCreated int    `json:"entries_created"`
	Reason         string `json:"reason,omitempty"`
}

// BatchTrackingResult aggregates per-student outcomes of a batch
// enable-tracking call.
type BatchTrackingResult struct {
	Total     int                      `json:"total"`
	Succeeded int                      `json:"succeeded"`
	Failed    int                      `json:"failed"`
	Outcomes  []StudentTrackingOutcome `json:"outcomes"`
}

// ClassCollectionRow is one class's roll-up in the session collection report.
type ClassCollectionRow struct {
	ClassID              string  `json:"class_id"`
	ClassName            string  `json:"class_name"`
	TrackedStudents      int     `json:"tracked_students"`
	ExpectedAmount       float64 `json:"expected_amount"`
	CollectedAmount      float64 `json:"collected_amount"`
	CollectionPercentage float64 `json:"collection_percentage"`
}

type DashboardStats struct {
	TotalStudents     int     `json:"total_students"`
	TotalClasses      int     `json:"total_classes"`
	TrackedRecords    int     `json:"tracked_records"`
	MonthlyRevenue    float64 `json:"monthly_revenue"`
	FeeCollectionRate float64 `json:"fee_collection_rate"`
	OverdueEntries    int     `json:"overdue_entries"`
}
