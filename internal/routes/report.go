package routes

import (
	"github.com/labstack/echo/v4"

	"repair-system/internal/controllers"
)

func runReportRouter(secureGroup *echo.Group, reportController *controllers.ReportController) {
	secureGroup.GET("/repairs/stats", reportController.SummaryStats)
	secureGroup.GET("/repairs/export", reportController.ExportRepairs)
	secureGroup.GET("/dictionaries", reportController.Dictionaries)
}
