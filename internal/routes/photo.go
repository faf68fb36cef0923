package routes

import (
	"github.com/labstack/echo/v4"

	"workshop-system/internal/controllers"
)

func runPhotoRouter(group *echo.Group, photoCtrl *controllers.PhotoController) {
	{
		group.GET("/orders/:orderId/photos", photoCtrl.GetOrderPhotos)
		group.POST("/orders/:orderId/photos", photoCtrl.UploadPhotos)
		group.GET("/photos/:photoId/content", photoCtrl.GetPhotoContent)
		group.DELETE("/photos/:photoId", photoCtrl.DeletePhoto)
	}
}
