package services

import (
	"context"

	"go.uber.org/zap"

	"workshop-system/internal/dto"
	"workshop-system/internal/repositories"
)

type ReportServiceInterface interface {
	GetOrdersReport(ctx context.Context, filter repositories.OrderFilter) ([]dto.OrderResponseDTO, error)
}

// ReportService собирает данные для выгрузки заказов. Строки отчета несут
// те же вычисленные сервером значения, что и JSON API.
type ReportService struct {
	orders OrderServiceInterface
	logger *zap.Logger
}

func NewReportService(orders OrderServiceInterface, logger *zap.Logger) ReportServiceInterface {
	return &ReportService{orders: orders, logger: logger}
}

func (s *ReportService) GetOrdersReport(ctx context.Context, filter repositories.OrderFilter) ([]dto.OrderResponseDTO, error) {
	rows, err := s.orders.GetOrders(ctx, filter)
	if err != nil {
		s.logger.Error("не удалось сформировать отчет по заказам", zap.Error(err))
		return nil, err
	}
	return rows, nil
}
