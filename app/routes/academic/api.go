package academic

import (
	"database/sql"
	"log"

	"github.com/javedansari81/sunrise-school-management-sub001/app/database"
	"github.com/javedansari81/sunrise-school-management-sub001/app/models"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// GetClassesAPI returns all active classes with student counts
func GetClassesAPI(c *fiber.Ctx, db *sql.DB) error {
	classes, err := database.GetActiveClassesSimple(db)
	if err != nil {
		log.Printf("Failed to fetch classes: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch classes")
	}

	if classes == nil {
		classes = []models.Class{}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    classes,
	})
}

type CreateClassRequest struct {
	Name      string `json:"name" validate:"required"`
	Code      string `json:"code" validate:"required"`
	SortOrder int    `json:"sort_order"`
}

// CreateClassAPI creates a new class
func CreateClassAPI(c *fiber.Ctx, db *sql.DB) error {
	var req CreateClassRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	class := &models.Class{
		Name:      req.Name,
		Code:      req.Code,
		SortOrder: req.SortOrder,
		IsActive:  true,
	}

	if err := database.CreateClass(db, class); err != nil {
		log.Printf("Failed to create class %s: %v", req.Name, err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create class")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    class,
		"message": "Class created successfully",
	})
}

// GetSessionYearsAPI returns all session years
func GetSessionYearsAPI(c *fiber.Ctx, db *sql.DB) error {
	sessionYears, err := database.GetSessionYears(db)
	if err != nil {
		log.Printf("Failed to fetch session years: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch session years")
	}

	if sessionYears == nil {
		sessionYears = []models.SessionYear{}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    sessionYears,
	})
}

// GetCurrentSessionYearAPI returns the session year flagged as current
func GetCurrentSessionYearAPI(c *fiber.Ctx, db *sql.DB) error {
	current, err := database.GetCurrentSessionYear(db)
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, "No current session year configured")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    current,
	})
}

type CreateSessionYearRequest struct {
	Name      string            `json:"name" validate:"required"`
	StartDate models.CustomTime `json:"start_date" validate:"required"`
	EndDate   models.CustomTime `json:"end_date" validate:"required"`
	IsCurrent bool              `json:"is_current"`
}

// CreateSessionYearAPI creates a session year. Marking it current unsets the
// previous current year in the same transaction.
func CreateSessionYearAPI(c *fiber.Ctx, db *sql.DB) error {
	var req CreateSessionYearRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if req.Name == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Session year name is required")
	}
	if !req.EndDate.Time.After(req.StartDate.Time) {
		return fiber.NewError(fiber.StatusBadRequest, "End date must be after start date")
	}

	sessionYear := &models.SessionYear{
		Name:      req.Name,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		IsCurrent: req.IsCurrent,
		IsActive:  true,
	}

	if err := database.CreateSessionYear(db, sessionYear); err != nil {
		log.Printf("Failed to create session year %s: %v", req.Name, err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create session year")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    sessionYear,
		"message": "Session year created successfully",
	})
}

// GetFeeStructuresAPI returns fee structures for a session year
func GetFeeStructuresAPI(c *fiber.Ctx, db *sql.DB) error {
	structures, err := database.ListFeeStructures(db, c.Query("session_year_id"))
	if err != nil {
		log.Printf("Failed to fetch fee structures: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch fee structures")
	}

	if structures == nil {
		structures = []*models.FeeStructure{}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    structures,
	})
}

type UpsertFeeStructureRequest struct {
	ClassID       string  `json:"class_id" validate:"required,uuid"`
	SessionYearID string  `json:"session_year_id" validate:"required,uuid"`
	AnnualFee     float64 `json:"annual_fee" validate:"required,gt=0"`
}

// UpsertFeeStructureAPI creates or updates the annual fee for a class
func UpsertFeeStructureAPI(c *fiber.Ctx, db *sql.DB) error {
	var req UpsertFeeStructureRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	structure := &models.FeeStructure{
		ClassID:       req.ClassID,
		SessionYearID: req.SessionYearID,
		AnnualFee:     req.AnnualFee,
	}

	if err := database.UpsertFeeStructure(db, structure); err != nil {
		log.Printf("Failed to upsert fee structure for class %s: %v", req.ClassID, err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to save fee structure")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    structure,
		"message": "Fee structure saved successfully",
	})
}
