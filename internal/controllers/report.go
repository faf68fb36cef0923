package controllers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"workshop-system/internal/dto"
	"workshop-system/internal/repositories"
	"workshop-system/internal/services"
	"workshop-system/pkg/utils"
)

type ReportController struct {
	reportService services.ReportServiceInterface
	logger        *zap.Logger
}

func NewReportController(reportService services.ReportServiceInterface, logger *zap.Logger) *ReportController {
	return &ReportController{reportService: reportService, logger: logger}
}

// GetOrdersReport отдает выгрузку заказов: JSON по умолчанию,
// XLSX при ?format=xlsx.
func (c *ReportController) GetOrdersReport(ctx echo.Context) error {
	filter := repositories.OrderFilter{
		Search: ctx.QueryParam("search"),
		Status: ctx.QueryParam("status"),
	}
	format := strings.ToLower(ctx.QueryParam("format"))

	rows, err := c.reportService.GetOrdersReport(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, wrapOrderStorageError("Failed to build report", err), c.logger)
	}

	if format == "xlsx" {
		return c.respondWithXLSX(ctx, rows)
	}
	return ctx.JSON(http.StatusOK, rows)
}

var reportHeaders = []interface{}{
	"ID", "Заказ", "Телефон", "Мессенджер", "Начало", "Сдача",
	"Цена", "Предоплата", "Остаток", "Расходы", "Прибыль", "Прибыль %", "Статус",
}

func reportRow(o dto.OrderResponseDTO) []interface{} {
	dateOrEmpty := func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	}
	return []interface{}{
		o.ID, o.Name, o.Phone, o.Messenger,
		dateOrEmpty(o.StartDate), dateOrEmpty(o.EndDate),
		o.Price, o.Prepayment, o.Remaining,
		o.TotalExpenses, o.Profit, o.ProfitPercent, o.Status,
	}
}

func (c *ReportController) respondWithXLSX(ctx echo.Context, rows []dto.OrderResponseDTO) error {
	f := excelize.NewFile()
	sheet := "Заказы"
	f.SetSheetName("Sheet1", sheet)
	f.SetSheetRow(sheet, "A1", &reportHeaders)
	style, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	f.SetCellStyle(sheet, "A1", "M1", style)

	for i, o := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := reportRow(o)
		f.SetSheetRow(sheet, cell, &row)
	}
	f.SetColWidth(sheet, "B", "B", 30)
	f.SetColWidth(sheet, "C", "D", 18)
	f.SetColWidth(sheet, "E", "F", 12)

	fileName := fmt.Sprintf("orders_%s.xlsx", time.Now().Format("2006-01-02"))
	ctx.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Response().Header().Set("Content-Disposition", "attachment; filename="+fileName)
	ctx.Response().WriteHeader(http.StatusOK)
	return f.Write(ctx.Response().Writer)
}
