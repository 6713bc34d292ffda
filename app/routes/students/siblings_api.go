package students

import (
	"database/sql"
	"log"

	"github.com/javedansari81/sunrise-school-management-sub001/app/database"
	"github.com/javedansari81/sunrise-school-management-sub001/app/models"

	"github.com/gofiber/fiber/v2"
)

// GetSiblingCandidatesAPI returns students that share the student's father
// name and phone but are not linked as siblings yet.
func GetSiblingCandidatesAPI(c *fiber.Ctx, db *sql.DB) error {
	studentID := c.Params("id")

	student, err := database.GetStudentByID(db, studentID)
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, "Student not found")
	}

	candidates, err := database.FindSiblingCandidates(db, student)
	if err != nil {
		log.Printf("Failed to find sibling candidates for student %s: %v", studentID, err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to find sibling candidates")
	}

	if candidates == nil {
		candidates = []*models.Student{}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    candidates,
	})
}

// DetectSiblingsAPI runs sibling detection for a student, links any matches
// and returns the waiver the student ends up with.
func DetectSiblingsAPI(c *fiber.Ctx, db *sql.DB) error {
	studentID := c.Params("id")

	waiverPercent, waiverReason, err := database.DetectAndLinkSiblings(db, studentID)
	if err != nil {
		log.Printf("Sibling detection failed for student %s: %v", studentID, err)
		return fiber.NewError(fiber.StatusInternalServerError, "Sibling detection failed")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"student_id":             studentID,
			"sibling_waiver_percent": waiverPercent,
			"sibling_waiver_reason":  waiverReason,
		},
	})
}

type LinkSiblingRequest struct {
	SiblingID string `json:"sibling_id" validate:"required,uuid"`
}

// LinkSiblingAPI links two students as siblings and recomputes waivers for
// the merged family.
func LinkSiblingAPI(c *fiber.Ctx, db *sql.DB) error {
	studentID := c.Params("id")

	var req LinkSiblingRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if req.SiblingID == studentID {
		return fiber.NewError(fiber.StatusBadRequest, "A student cannot be their own sibling")
	}

	assignments, err := database.LinkSiblings(db, studentID, req.SiblingID)
	if err != nil {
		log.Printf("Failed to link siblings %s and %s: %v", studentID, req.SiblingID, err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to link siblings")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    assignments,
		"message": "Siblings linked successfully",
	})
}

// UnlinkSiblingAPI removes a student from their sibling group. Waivers are
// recomputed for the remaining members and the detached student.
func UnlinkSiblingAPI(c *fiber.Ctx, db *sql.DB) error {
	studentID := c.Params("id")

	if err := database.UnlinkSibling(db, studentID); err != nil {
		log.Printf("Failed to unlink siblings for student %s: %v", studentID, err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to unlink sibling")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Sibling unlinked successfully",
	})
}

// GetFamilyAPI returns the student's family in birth order.
func GetFamilyAPI(c *fiber.Ctx, db *sql.DB) error {
	studentID := c.Params("id")

	family, err := database.GetFamily(db, studentID)
	if err != nil {
		log.Printf("Failed to fetch family for student %s: %v", studentID, err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch family")
	}

	if family == nil {
		family = []*models.Student{}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    family,
	})
}
