package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"workshop-system/internal/dto"
	"workshop-system/internal/repositories"
	"workshop-system/internal/services"
	apperrors "workshop-system/pkg/errors"
	"workshop-system/pkg/utils"
)

type OrderController struct {
	orderService services.OrderServiceInterface
	logger       *zap.Logger
}

func NewOrderController(orderService services.OrderServiceInterface, logger *zap.Logger) *OrderController {
	return &OrderController{orderService: orderService, logger: logger}
}

func (c *OrderController) GetOrders(ctx echo.Context) error {
	filter := repositories.OrderFilter{
		Search: ctx.QueryParam("search"),
		Status: ctx.QueryParam("status"),
	}

	res, err := c.orderService.GetOrders(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, wrapOrderStorageError("Failed to fetch orders", err), c.logger)
	}
	return ctx.JSON(http.StatusOK, res)
}

func (c *OrderController) FindOrder(ctx echo.Context) error {
	id, err := parseOrderID(ctx.Param("id"))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.orderService.FindOrder(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, orderNotFoundOr(id, "Failed to fetch order", err), c.logger)
	}
	return ctx.JSON(http.StatusOK, res)
}

func (c *OrderController) CreateOrder(ctx echo.Context) error {
	var data dto.CreateOrderDTO
	if err := ctx.Bind(&data); err != nil {
		return utils.ErrorResponse(ctx, apperrors.BadRequest("Invalid request body", err.Error()), c.logger)
	}
	if err := ctx.Validate(&data); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.orderService.CreateOrder(ctx.Request().Context(), data)
	if err != nil {
		return utils.ErrorResponse(ctx, wrapOrderStorageError("Failed to create order", err), c.logger)
	}
	return ctx.JSON(http.StatusCreated, res)
}

func (c *OrderController) UpdateOrder(ctx echo.Context) error {
	id, err := parseOrderID(ctx.Param("id"))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var data dto.UpdateOrderDTO
	if err := ctx.Bind(&data); err != nil {
		return utils.ErrorResponse(ctx, apperrors.BadRequest("Invalid request body", err.Error()), c.logger)
	}
	if err := ctx.Validate(&data); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	res, err := c.orderService.UpdateOrder(ctx.Request().Context(), id, data)
	if err != nil {
		return utils.ErrorResponse(ctx, orderNotFoundOr(id, "Failed to update order", err), c.logger)
	}
	return ctx.JSON(http.StatusOK, res)
}

func (c *OrderController) DeleteOrder(ctx echo.Context) error {
	id, err := parseOrderID(ctx.Param("id"))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.orderService.DeleteOrder(ctx.Request().Context(), id); err != nil {
		return utils.ErrorResponse(ctx, orderNotFoundOr(id, "Failed to delete order", err), c.logger)
	}
	return ctx.JSON(http.StatusOK, utils.SuccessBody{Success: true})
}

func parseOrderID(raw string) (uint64, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, apperrors.BadRequest("Invalid order ID", "Order ID must be a number")
	}
	return id, nil
}

func orderNotFoundOr(id uint64, message string, err error) error {
	if errors.Is(err, apperrors.ErrNotFound) {
		return apperrors.NotFound("Order not found", fmt.Sprintf("No order found with ID %d", id))
	}
	return wrapOrderStorageError(message, err)
}

// wrapOrderStorageError оставляет ошибки валидации и HttpError как есть,
// а ошибки хранилища подает клиенту как 500 с диагностикой в details.
func wrapOrderStorageError(message string, err error) error {
	var httpErr *apperrors.HttpError
	if errors.As(err, &httpErr) {
		return err
	}
	var invalidInput *apperrors.InvalidInputError
	if errors.As(err, &invalidInput) {
		return err
	}
	return apperrors.NewHttpError(http.StatusInternalServerError, message, err, err.Error())
}
