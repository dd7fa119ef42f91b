package routes

import (
	"github.com/labstack/echo/v4"

	"repair-system/internal/controllers"
)

func runDeviceAssignmentRouter(secureGroup *echo.Group, assignmentController *controllers.DeviceAssignmentController) {
	secureGroup.POST("/devices/:id/checkin", assignmentController.Checkin)
	secureGroup.POST("/devices/:id/checkout", assignmentController.Checkout)
	secureGroup.GET("/devices/:id/active-users", assignmentController.ActiveUsers)
	secureGroup.GET("/devices/:id/assignments", assignmentController.DeviceHistory)
	secureGroup.GET("/assignments/active-count", assignmentController.ActiveCount)
	secureGroup.GET("/assignments/active", assignmentController.ActiveMap)
	secureGroup.GET("/users/:id/devices", assignmentController.DevicesOfUser)
	secureGroup.GET("/me/devices", assignmentController.MyDevices)
}

func runDeviceSoftwareRouter(secureGroup *echo.Group, softwareController *controllers.DeviceSoftwareController) {
	secureGroup.POST("/devices/:id/software/:softwareId/install", softwareController.Install)
	secureGroup.POST("/devices/:id/software/:softwareId/uninstall", softwareController.Uninstall)
	secureGroup.GET("/devices/:id/software", softwareController.ListByDevice)
	secureGroup.GET("/software/:id/devices", softwareController.DevicesBySoftware)
}
