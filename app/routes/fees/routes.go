package fees

import (
	"github.com/javedansari81/sunrise-school-management-sub001/app/config"
	"github.com/javedansari81/sunrise-school-management-sub001/app/routes/auth"

	"github.com/gofiber/fiber/v2"
)

// SetupFeesRoutes sets up the fees routes
func SetupFeesRoutes(app *fiber.App) {
	// Group for fees routes with authentication middleware
	fees := app.Group("/fees")
	fees.Use(auth.AuthMiddleware)

	// API routes for fees
	feesAPI := app.Group("/api/fees")
	feesAPI.Use(auth.AuthMiddleware)

	// Web routes
	fees.Get("/", func(c *fiber.Ctx) error {
		return c.Render("fees/index", fiber.Map{
			"Title":       "Fees Management - Sunrise Schools",
			"CurrentPage": "fees",
		})
	})

	fees.Get("/collection", func(c *fiber.Ctx) error {
		return c.Render("fees/collection", fiber.Map{
			"Title":       "Fee Collection - Sunrise Schools",
			"CurrentPage": "fees",
		})
	})

	// Fee record API routes. Static paths are registered before the :id
	// parameter so they are not shadowed.
	feesAPI.Get("/stats", func(c *fiber.Ctx) error {
		return GetFeeStatsAPI(c, config.GetDB())
	})

	feesAPI.Get("/collection-report", func(c *fiber.Ctx) error {
		return GetCollectionReportAPI(c, config.GetDB())
	})

	feesAPI.Get("/", func(c *fiber.Ctx) error {
		return GetFeeRecordsAPI(c, config.GetDB())
	})

	feesAPI.Post("/", func(c *fiber.Ctx) error {
		return CreateFeeRecordAPI(c, config.GetDB())
	})

	// Monthly tracking routes
	feesAPI.Post("/enable-monthly-tracking", func(c *fiber.Ctx) error {
		return EnableMonthlyTrackingAPI(c, config.GetDB())
	})

	feesAPI.Post("/enable-monthly-tracking-complete", func(c *fiber.Ctx) error {
		return EnableTrackingBatchAPI(c, config.GetDB())
	})

	feesAPI.Get("/monthly-history/:student_id", func(c *fiber.Ctx) error {
		return GetMonthlyHistoryAPI(c, config.GetDB())
	})

	feesAPI.Get("/:fee_record_id/ledger", func(c *fiber.Ctx) error {
		return GetLedgerEntriesAPI(c, config.GetDB())
	})

	// Payment routes
	feesAPI.Post("/payments", func(c *fiber.Ctx) error {
		return CreatePaymentAPI(c, config.GetDB())
	})

	feesAPI.Post("/payments/allocate", func(c *fiber.Ctx) error {
		return AllocatePaymentAPI(c, config.GetDB())
	})

	feesAPI.Get("/payments/:payment_id/allocations", func(c *fiber.Ctx) error {
		return GetPaymentAllocationsAPI(c, config.GetDB())
	})

	feesAPI.Get("/:fee_record_id/payments", func(c *fiber.Ctx) error {
		return GetPaymentsAPI(c, config.GetDB())
	})

	feesAPI.Get("/:id", func(c *fiber.Ctx) error {
		return GetFeeRecordByIDAPI(c, config.GetDB())
	})
}
