package students

import (
	"database/sql"
	"log"
	"time"

	"github.com/javedansari81/sunrise-school-management-sub001/app/database"
	"github.com/javedansari81/sunrise-school-management-sub001/app/models"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// GetStudentsAPI returns students with search, filter and pagination
func GetStudentsAPI(c *fiber.Ctx, db *sql.DB) error {
	filters := database.StudentFilters{
		Search:        c.Query("search"),
		ClassID:       c.Query("class_id"),
		SessionYearID: c.Query("session_year_id"),
		Gender:        c.Query("gender"),
		SortBy:        c.Query("sort_by", "first_name"),
		SortOrder:     c.Query("sort_order", "asc"),
		Limit:         c.QueryInt("limit", 50),
		Offset:        c.QueryInt("offset", 0),
	}

	students, err := database.GetStudents(db, filters)
	if err != nil {
		log.Printf("Failed to fetch students: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch students")
	}

	if students == nil {
		students = []*models.Student{}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    students,
	})
}

// GetStudentByIDAPI returns a specific student by ID
func GetStudentByIDAPI(c *fiber.Ctx, db *sql.DB) error {
	studentID := c.Params("id")

	student, err := database.GetStudentByID(db, studentID)
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, "Student not found")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    student,
	})
}

type CreateStudentRequest struct {
	AdmissionNo   string  `json:"admission_no" validate:"required"`
	FirstName     string  `json:"first_name" validate:"required"`
	LastName      string  `json:"last_name" validate:"required"`
	DateOfBirth   string  `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	Gender        string  `json:"gender" validate:"omitempty,oneof=male female other"`
	Address       *string `json:"address,omitempty"`
	ClassID       *string `json:"class_id,omitempty" validate:"omitempty,uuid"`
	SessionYearID *string `json:"session_year_id,omitempty" validate:"omitempty,uuid"`
	FatherName    string  `json:"father_name" validate:"required"`
	FatherPhone   string  `json:"father_phone" validate:"omitempty,max=20"`
	MotherName    *string `json:"mother_name,omitempty"`
}

// CreateStudentAPI admits a new student. After the insert, siblings already
// enrolled under the same father are detected and the family's waivers are
// recomputed; a detection failure does not fail the admission.
func CreateStudentAPI(c *fiber.Ctx, db *sql.DB) error {
	var req CreateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	student := &models.Student{
		AdmissionNo:   req.AdmissionNo,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Gender:        models.Gender(req.Gender),
		Address:       req.Address,
		ClassID:       req.ClassID,
		SessionYearID: req.SessionYearID,
		FatherName:    req.FatherName,
		FatherPhone:   req.FatherPhone,
		MotherName:    req.MotherName,
		IsActive:      true,
	}

	if req.DateOfBirth != "" {
		dob, err := time.Parse("2006-01-02", req.DateOfBirth)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid date_of_birth, expected YYYY-MM-DD")
		}
		student.DateOfBirth = &dob
	}

	if err := database.CreateStudent(db, student); err != nil {
		log.Printf("Failed to create student %s: %v", req.AdmissionNo, err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create student")
	}

	waiverPercent, waiverReason, err := database.DetectAndLinkSiblings(db, student.ID)
	if err != nil {
		log.Printf("Sibling detection failed for student %s: %v", student.ID, err)
	} else if waiverPercent > 0 {
		student.SiblingWaiverPercent = waiverPercent
		student.SiblingWaiverReason = &waiverReason
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data":    student,
		"message": "Student created successfully",
	})
}

type UpdateStudentRequest struct {
	FirstName     string  `json:"first_name" validate:"required"`
	LastName      string  `json:"last_name" validate:"required"`
	DateOfBirth   string  `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	Gender        string  `json:"gender" validate:"omitempty,oneof=male female other"`
	Address       *string `json:"address,omitempty"`
	ClassID       *string `json:"class_id,omitempty" validate:"omitempty,uuid"`
	SessionYearID *string `json:"session_year_id,omitempty" validate:"omitempty,uuid"`
	FatherName    string  `json:"father_name" validate:"required"`
	FatherPhone   string  `json:"father_phone" validate:"omitempty,max=20"`
	MotherName    *string `json:"mother_name,omitempty"`
}

// UpdateStudentAPI updates a student's details
func UpdateStudentAPI(c *fiber.Ctx, db *sql.DB) error {
	studentID := c.Params("id")

	var req UpdateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	student, err := database.GetStudentByID(db, studentID)
	if err != nil {
		return fiber.NewError(fiber.StatusNotFound, "Student not found")
	}

	student.FirstName = req.FirstName
	student.LastName = req.LastName
	student.Gender = models.Gender(req.Gender)
	student.Address = req.Address
	student.ClassID = req.ClassID
	student.SessionYearID = req.SessionYearID
	student.FatherName = req.FatherName
	student.FatherPhone = req.FatherPhone
	student.MotherName = req.MotherName

	if req.DateOfBirth != "" {
		dob, err := time.Parse("2006-01-02", req.DateOfBirth)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid date_of_birth, expected YYYY-MM-DD")
		}
		student.DateOfBirth = &dob
	} else {
		student.DateOfBirth = nil
	}

	if err := database.UpdateStudent(db, student); err != nil {
		log.Printf("Failed to update student %s: %v", studentID, err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update student")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    student,
		"message": "Student updated successfully",
	})
}

// DeleteStudentAPI soft deletes a student
func DeleteStudentAPI(c *fiber.Ctx, db *sql.DB) error {
	studentID := c.Params("id")

	if err := database.SoftDeleteStudent(db, studentID); err != nil {
		log.Printf("Failed to delete student %s: %v", studentID, err)
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete student")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Student deleted successfully",
	})
}
