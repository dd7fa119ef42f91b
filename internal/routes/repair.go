package routes

import (
	"github.com/labstack/echo/v4"

	"repair-system/internal/controllers"
)

func runRepairRouter(secureGroup *echo.Group, repairController *controllers.RepairController) {
	repairs := secureGroup.Group("/repairs")

	repairs.GET("", repairController.ListRepairs)
	repairs.POST("", repairController.CreateRepair)
	repairs.GET("/:id", repairController.GetRepair)
	repairs.PATCH("/:id/status", repairController.UpdateStatus)
	repairs.GET("/:id/next-statuses", repairController.NextStatuses)
	repairs.PUT("/:id/detail", repairController.UpsertDetail)
	repairs.POST("/:id/parts", repairController.AddParts)
	repairs.DELETE("/:id/parts/:partId", repairController.RemovePart)
	repairs.POST("/:id/files", repairController.UploadFiles)
	repairs.DELETE("/:id/files/:fileId", repairController.RemoveFile)
	repairs.GET("/:id/history", repairController.GetHistory)
}
