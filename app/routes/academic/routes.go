package academic

import (
	"github.com/javedansari81/sunrise-school-management-sub001/app/config"
	"github.com/javedansari81/sunrise-school-management-sub001/app/routes/auth"

	"github.com/gofiber/fiber/v2"
)

// SetupAcademicRoutes sets up session year, class and fee structure routes
func SetupAcademicRoutes(app *fiber.App) {
	academicAPI := app.Group("/api/academic")
	academicAPI.Use(auth.AuthMiddleware)

	academicAPI.Get("/classes", func(c *fiber.Ctx) error {
		return GetClassesAPI(c, config.GetDB())
	})

	academicAPI.Post("/classes", func(c *fiber.Ctx) error {
		return CreateClassAPI(c, config.GetDB())
	})

	academicAPI.Get("/session-years", func(c *fiber.Ctx) error {
		return GetSessionYearsAPI(c, config.GetDB())
	})

	academicAPI.Get("/session-years/current", func(c *fiber.Ctx) error {
		return GetCurrentSessionYearAPI(c, config.GetDB())
	})

	academicAPI.Post("/session-years", func(c *fiber.Ctx) error {
		return CreateSessionYearAPI(c, config.GetDB())
	})

	academicAPI.Get("/fee-structures", func(c *fiber.Ctx) error {
		return GetFeeStructuresAPI(c, config.GetDB())
	})

	academicAPI.Post("/fee-structures", func(c *fiber.Ctx) error {
		return UpsertFeeStructureAPI(c, config.GetDB())
	})
}
