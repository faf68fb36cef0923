package routes

import (
	"github.com/labstack/echo/v4"

	"workshop-system/internal/controllers"
)

func runOrderRouter(group *echo.Group, orderCtrl *controllers.OrderController) {
	{
		group.GET("/orders", orderCtrl.GetOrders)
		group.POST("/orders", orderCtrl.CreateOrder)
		group.GET("/orders/:id", orderCtrl.FindOrder)
		group.PUT("/orders/:id", orderCtrl.UpdateOrder)
		group.DELETE("/orders/:id", orderCtrl.DeleteOrder)
	}
}
