package fees

import (
	"database/sql"

	"github.com/javedansari81/sunrise-school-management-sub001/app/database"
	"github.com/javedansari81/sunrise-school-management-sub001/app/models"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// GetFeeRecordsAPI returns fee records with optional filtering
func GetFeeRecordsAPI(c *fiber.Ctx, db *sql.DB) error {
	filters := database.FeeRecordFilters{
		StudentID:     c.Query("student_id"),
		SessionYearID: c.Query("session_year_id"),
		TrackedOnly:   c.QueryBool("tracked_only", false),
		Limit:         c.QueryInt("limit", 0),
		Offset:        c.QueryInt("offset", 0),
	}

	records, err := database.ListFeeRecords(db, filters)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch fee records")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    records,
	})
}

// GetFeeRecordByIDAPI returns a specific fee record by ID
func GetFeeRecordByIDAPI(c *fiber.Ctx, db *sql.DB) error {
	recordID := c.Params("id")

	record, err := database.GetFeeRecordByID(db, recordID)
	if err != nil {
		if err == database.ErrFeeRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch fee record")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    record,
	})
}

type CreateFeeRecordRequest struct {
	StudentID     string  `json:"student_id" validate:"required,uuid"`
	SessionYearID string  `json:"session_year_id" validate:"required,uuid"`
	TotalAmount   float64 `json:"total_amount" validate:"gte=0"`
}

// CreateFeeRecordAPI creates the annual fee record for a student. When the
// amount is omitted it is resolved from the class fee structure.
func CreateFeeRecordAPI(c *fiber.Ctx, db *sql.DB) error {
	var req CreateFeeRecordRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	record := &models.FeeRecord{
		StudentID:     req.StudentID,
		SessionYearID: req.SessionYearID,
		TotalAmount:   req.TotalAmount,
	}

	if record.TotalAmount <= 0 {
		student, err := database.GetStudentByID(db, req.StudentID)
		if err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Student not found")
		}
		if student.ClassID == nil {
			return fiber.NewError(fiber.StatusBadRequest, database.ErrNoFeeStructure.Error())
		}
		structure, err := database.GetFeeStructure(db, *student.ClassID, req.SessionYearID)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, database.ErrNoFeeStructure.Error())
		}
		record.TotalAmount = structure.AnnualFee
		record.FeeStructureID = &structure.ID
	}

	if err := database.CreateFeeRecord(db, record); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create fee record")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    record,
		"message": "Fee record created successfully",
	})
}

// GetFeeStatsAPI returns fee statistics for a session year
func GetFeeStatsAPI(c *fiber.Ctx, db *sql.DB) error {
	stats, err := database.GetFeeStats(db, c.Query("session_year_id"))
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch fee stats")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    stats,
	})
}
