package fees

import (
	"database/sql"

	"github.com/javedansari81/sunrise-school-management-sub001/app/database"

	"github.com/gofiber/fiber/v2"
)

// GetMonthlyHistoryAPI returns a student's month-by-month fee history for a
// session year. The headline total paid comes from the raw payments while the
// outstanding balance comes from the ledger entries, so an overpaid month
// never hides dues elsewhere.
func GetMonthlyHistoryAPI(c *fiber.Ctx, db *sql.DB) error {
	studentID := c.Params("student_id")
	sessionYearID := c.Query("session_year_id")

	if sessionYearID == "" {
		current, err := database.GetCurrentSessionYear(db)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "No current session year configured")
		}
		sessionYearID = current.ID
	}

	history, err := database.GetStudentMonthlyFeeHistory(db, studentID, sessionYearID)
	if err != nil {
		switch err {
		case database.ErrFeeRecordNotFound:
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		case database.ErrTrackingNotEnabled:
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch monthly fee history")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    history,
	})
}

// GetCollectionReportAPI returns per-class collection totals for a session year.
func GetCollectionReportAPI(c *fiber.Ctx, db *sql.DB) error {
	sessionYearID := c.Query("session_year_id")
	if sessionYearID == "" {
		current, err := database.GetCurrentSessionYear(db)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "No current session year configured")
		}
		sessionYearID = current.ID
	}

	rows, err := database.GetClassCollectionReport(db, sessionYearID)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch collection report")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    rows,
	})
}
