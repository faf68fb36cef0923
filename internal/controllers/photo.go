package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"workshop-system/internal/services"
	apperrors "workshop-system/pkg/errors"
	"workshop-system/pkg/utils"
)

type PhotoController struct {
	photoService services.PhotoServiceInterface
	logger       *zap.Logger
}

func NewPhotoController(photoService services.PhotoServiceInterface, logger *zap.Logger) *PhotoController {
	return &PhotoController{photoService: photoService, logger: logger}
}

func (c *PhotoController) GetOrderPhotos(ctx echo.Context) error {
	orderID, err := strconv.ParseUint(ctx.Param("orderId"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(ctx, apperrors.BadRequest("Invalid order ID", "Order ID must be a number"), c.logger)
	}

	res, err := c.photoService.GetOrderPhotos(ctx.Request().Context(), orderID)
	if err != nil {
		return utils.ErrorResponse(ctx, wrapPhotoStorageError("Failed to fetch photos", err), c.logger)
	}
	return ctx.JSON(http.StatusOK, res)
}

func (c *PhotoController) GetPhotoContent(ctx echo.Context) error {
	photoID, err := strconv.ParseUint(ctx.Param("photoId"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(ctx, apperrors.BadRequest("Invalid photo ID", "Photo ID must be a number"), c.logger)
	}

	content, err := c.photoService.GetPhotoContent(ctx.Request().Context(), photoID)
	if err != nil {
		return utils.ErrorResponse(ctx, wrapPhotoStorageError("Failed to fetch photo content", err), c.logger)
	}

	// Содержимое фотографии неизменно, кэшируем на год.
	ctx.Response().Header().Set("Cache-Control", "public, max-age=31536000")
	return ctx.Blob(http.StatusOK, content.MimeType, content.Data)
}

func (c *PhotoController) UploadPhotos(ctx echo.Context) error {
	orderID, err := strconv.ParseUint(ctx.Param("orderId"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(ctx, apperrors.BadRequest("Invalid order ID", "Order ID must be a number"), c.logger)
	}

	form, err := ctx.MultipartForm()
	if err != nil {
		return utils.ErrorResponse(ctx, apperrors.BadRequest("Invalid multipart form", err.Error()), c.logger)
	}
	files := form.File["photos"]

	res, err := c.photoService.UploadPhotos(ctx.Request().Context(), orderID, files)
	if err != nil {
		return utils.ErrorResponse(ctx, wrapPhotoStorageError("Failed to upload photos", err), c.logger)
	}
	return ctx.JSON(http.StatusCreated, res)
}

func (c *PhotoController) DeletePhoto(ctx echo.Context) error {
	photoID, err := strconv.ParseUint(ctx.Param("photoId"), 10, 64)
	if err != nil {
		return utils.ErrorResponse(ctx, apperrors.BadRequest("Invalid photo ID", "Photo ID must be a number"), c.logger)
	}

	if err := c.photoService.DeletePhoto(ctx.Request().Context(), photoID); err != nil {
		return utils.ErrorResponse(ctx, wrapPhotoStorageError("Failed to delete photo", err), c.logger)
	}
	return ctx.JSON(http.StatusOK, utils.SuccessBody{Success: true, Message: "Photo deleted successfully"})
}

func wrapPhotoStorageError(message string, err error) error {
	var httpErr *apperrors.HttpError
	if errors.As(err, &httpErr) {
		return err
	}
	if errors.Is(err, apperrors.ErrNotFound) {
		return err
	}
	return apperrors.NewHttpError(http.StatusInternalServerError, message, err, err.Error())
}
