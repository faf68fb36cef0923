package routes

import (
	"github.com/labstack/echo/v4"

	"workshop-system/internal/controllers"
)

func runReportRouter(group *echo.Group, reportCtrl *controllers.ReportController) {
	{
		group.GET("/reports/orders", reportCtrl.GetOrdersReport)
	}
}
