package fees

import (
	"database/sql"
	"log"
	"time"

	"github.com/javedansari81/sunrise-school-management-sub001/app/config"
	"github.com/javedansari81/sunrise-school-management-sub001/app/database"

	"github.com/gofiber/fiber/v2"
)

type EnableTrackingRequest struct {
	FeeRecordID string `json:"fee_record_id" validate:"required,uuid"`
	StartMonth  int    `json:"start_month" validate:"omitempty,min=1,max=12"`
	StartYear   int    `json:"start_year" validate:"omitempty,min=2000"`
}

type EnableTrackingBatchRequest struct {
	StudentIDs    []string `json:"student_ids" validate:"required,min=1,dive,uuid"`
	SessionYearID string   `json:"session_year_id" validate:"required,uuid"`
	StartMonth    int      `json:"start_month" validate:"omitempty,min=1,max=12"`
	StartYear     int      `json:"start_year" validate:"omitempty,min=2000"`
}

func trackingDefaults(startMonth, startYear int) (int, int) {
	cfg := config.GetFeeConfig()
	if startMonth == 0 {
		startMonth = cfg.SessionStartMonth
	}
	if startYear == 0 {
		startYear = time.Now().Year()
	}
	return startMonth, startYear
}

// EnableMonthlyTrackingAPI turns an annual fee record into a 12-month ledger.
// Calling it again for the same record only creates the months still missing.
func EnableMonthlyTrackingAPI(c *fiber.Ctx, db *sql.DB) error {
	var req EnableTrackingRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	startMonth, startYear := trackingDefaults(req.StartMonth, req.StartYear)
	cfg := config.GetFeeConfig()

	created, err := database.EnableMonthlyTracking(db, req.FeeRecordID, startMonth, startYear, cfg.DefaultAnnualFee, cfg.DueDayOfMonth)
	if err != nil {
		if err == database.ErrFeeRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		log.Printf("Failed to enable monthly tracking for fee record %s: %v", req.FeeRecordID, err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to enable monthly tracking")
	}

	return c.JSON(fiber.Map{
		"success":        true,
		"message":        "Monthly tracking enabled",
		"months_created": created,
		"fee_record_id":  req.FeeRecordID,
	})
}

// EnableTrackingBatchAPI enables monthly tracking for several students at
// once. Students without a usable fee record are reported per-student instead
// of failing the whole batch.
func EnableTrackingBatchAPI(c *fiber.Ctx, db *sql.DB) error {
	var req EnableTrackingBatchRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	startMonth, startYear := trackingDefaults(req.StartMonth, req.StartYear)
	cfg := config.GetFeeConfig()

	result := database.EnableTrackingForStudents(db, req.StudentIDs, req.SessionYearID, startMonth, startYear, cfg.DefaultAnnualFee, cfg.DueDayOfMonth)

	log.Printf("Batch tracking enable: %d succeeded, %d failed of %d students",
		result.Succeeded, result.Failed, result.Total)

	return c.JSON(fiber.Map{
		"success": true,
		"data":    result,
	})
}

// GetLedgerEntriesAPI returns the monthly ledger for a fee record, ordered
// chronologically.
func GetLedgerEntriesAPI(c *fiber.Ctx, db *sql.DB) error {
	feeRecordID := c.Params("fee_record_id")

	entries, err := database.GetLedgerEntries(db, feeRecordID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch monthly ledger")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    entries,
	})
}
