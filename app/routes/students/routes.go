package students

import (
	"github.com/javedansari81/sunrise-school-management-sub001/app/config"
	"github.com/javedansari81/sunrise-school-management-sub001/app/routes/auth"

	"github.com/gofiber/fiber/v2"
)

// SetupStudentsRoutes sets up the students routes
func SetupStudentsRoutes(app *fiber.App) {
	// Group for students routes with authentication middleware
	students := app.Group("/students")
	students.Use(auth.AuthMiddleware)

	// API routes for students
	studentsAPI := app.Group("/api/students")
	studentsAPI.Use(auth.AuthMiddleware)

	// Web routes
	students.Get("/", func(c *fiber.Ctx) error {
		return c.Render("students/index", fiber.Map{
			"Title":       "Students - Sunrise Schools",
			"CurrentPage": "students",
		})
	})

	// API routes
	studentsAPI.Get("/", func(c *fiber.Ctx) error {
		return GetStudentsAPI(c, config.GetDB())
	})

	studentsAPI.Post("/", func(c *fiber.Ctx) error {
		return CreateStudentAPI(c, config.GetDB())
	})

	studentsAPI.Get("/:id", func(c *fiber.Ctx) error {
		return GetStudentByIDAPI(c, config.GetDB())
	})

	studentsAPI.Put("/:id", func(c *fiber.Ctx) error {
		return UpdateStudentAPI(c, config.GetDB())
	})

	studentsAPI.Delete("/:id", func(c *fiber.Ctx) error {
		return DeleteStudentAPI(c, config.GetDB())
	})

	// Sibling routes
	studentsAPI.Get("/:id/sibling-candidates", func(c *fiber.Ctx) error {
		return GetSiblingCandidatesAPI(c, config.GetDB())
	})

	studentsAPI.Post("/:id/detect-siblings", func(c *fiber.Ctx) error {
		return DetectSiblingsAPI(c, config.GetDB())
	})

	studentsAPI.Post("/:id/link-sibling", func(c *fiber.Ctx) error {
		return LinkSiblingAPI(c, config.GetDB())
	})

	studentsAPI.Post("/:id/unlink-sibling", func(c *fiber.Ctx) error {
		return UnlinkSiblingAPI(c, config.GetDB())
	})

	studentsAPI.Get("/:id/family", func(c *fiber.Ctx) error {
		return GetFamilyAPI(c, config.GetDB())
	})
}
