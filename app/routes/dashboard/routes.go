package dashboard

import (
	"github.com/javedansari81/sunrise-school-management-sub001/app/routes/auth"

	"github.com/gofiber/fiber/v2"
)

// SetupDashboardRoutes sets up the dashboard routes
func SetupDashboardRoutes(app *fiber.App) {
	dashboardGroup := app.Group("/dashboard")
	dashboardGroup.Use(auth.AuthMiddleware)

	dashboardGroup.Get("/", GetDashboard)

	dashboardAPI := app.Group("/api/dashboard")
	dashboardAPI.Use(auth.AuthMiddleware)

	dashboardAPI.Get("/stats", GetDashboardStatsAPI)
}
