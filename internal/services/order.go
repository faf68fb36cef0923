package services

import (
	"context"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"workshop-system/internal/dto"
	"workshop-system/internal/entities"
	"workshop-system/internal/repositories"
	apperrors "workshop-system/pkg/errors"
)

type OrderServiceInterface interface {
	GetOrders(ctx context.Context, filter repositories.OrderFilter) ([]dto.OrderResponseDTO, error)
	FindOrder(ctx context.Context, id uint64) (*dto.OrderResponseDTO, error)
	CreateOrder(ctx context.Context, data dto.CreateOrderDTO) (*dto.OrderResponseDTO, error)
	UpdateOrder(ctx context.Context, id uint64, data dto.UpdateOrderDTO) (*dto.OrderResponseDTO, error)
	DeleteOrder(ctx context.Context, id uint64) error
}

type OrderService struct {
	txManager   repositories.TxManagerInterface
	orderRepo   repositories.OrderRepositoryInterface
	expenseRepo repositories.ExpenseRepositoryInterface
	logger      *zap.Logger
}

func NewOrderService(
	txManager repositories.TxManagerInterface,
	orderRepo repositories.OrderRepositoryInterface,
	expenseRepo repositories.ExpenseRepositoryInterface,
	logger *zap.Logger,
) OrderServiceInterface {
	return &OrderService{
		txManager:   txManager,
		orderRepo:   orderRepo,
		expenseRepo: expenseRepo,
		logger:      logger,
	}
}

func (s *OrderService) GetOrders(ctx context.Context, filter repositories.OrderFilter) ([]dto.OrderResponseDTO, error) {
	orders, err := s.orderRepo.ListOrders(ctx, filter)
	if err != nil {
		s.logger.Error("не удалось получить список заказов", zap.Error(err))
		return nil, err
	}

	ids := make([]uint64, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
	}
	expensesByOrder, err := s.expenseRepo.MapByOrderIDs(ctx, ids)
	if err != nil {
		s.logger.Error("не удалось получить расходы для списка заказов", zap.Error(err))
		return nil, err
	}
	for i := range orders {
		orders[i].Expenses = expensesByOrder[orders[i].ID]
	}

	return dto.NewOrderListResponse(orders), nil
}

func (s *OrderService) FindOrder(ctx context.Context, id uint64) (*dto.OrderResponseDTO, error) {
	order, err := s.loadOrder(ctx, nil, id)
	if err != nil {
		return nil, err
	}
	res := dto.NewOrderResponse(*order)
	return &res, nil
}

func (s *OrderService) CreateOrder(ctx context.Context, data dto.CreateOrderDTO) (*dto.OrderResponseDTO, error) {
	order := data.ToEntity()
	if err := validateDates(order); err != nil {
		return nil, err
	}

	var created *entities.Order
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		newID, err := s.orderRepo.CreateOrderInTx(ctx, tx, order)
		if err != nil {
			return err
		}
		if err := s.expenseRepo.InsertManyInTx(ctx, tx, newID, order.Expenses); err != nil {
			return err
		}
		created, err = s.loadOrder(ctx, tx, newID)
		return err
	})
	if err != nil {
		s.logger.Error("не удалось создать заказ", zap.Error(err))
		return nil, err
	}

	res := dto.NewOrderResponse(*created)
	return &res, nil
}

// UpdateOrder полностью заменяет скалярные поля и набор расходов заказа.
// Вся последовательность удаления/обновления/вставки/перечитывания идет
// одной транзакцией, чтобы параллельный читатель не увидел заказ с
// наполовину замененными расходами. ID расходов при этом не сохраняются.
func (s *OrderService) UpdateOrder(ctx context.Context, id uint64, data dto.UpdateOrderDTO) (*dto.OrderResponseDTO, error) {
	order := data.ToEntity()
	if err := validateDates(order); err != nil {
		return nil, err
	}

	var updated *entities.Order
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		if err := s.expenseRepo.DeleteByOrderIDInTx(ctx, tx, id); err != nil {
			return err
		}
		if err := s.orderRepo.UpdateOrderInTx(ctx, tx, id, order); err != nil {
			return err
		}
		if err := s.expenseRepo.InsertManyInTx(ctx, tx, id, order.Expenses); err != nil {
			return err
		}
		var err error
		updated, err = s.loadOrder(ctx, tx, id)
		return err
	})
	if err != nil {
		if err != apperrors.ErrNotFound {
			s.logger.Error("не удалось обновить заказ", zap.Uint64("orderId", id), zap.Error(err))
		}
		return nil, err
	}

	res := dto.NewOrderResponse(*updated)
	return &res, nil
}

func (s *OrderService) DeleteOrder(ctx context.Context, id uint64) error {
	if err := s.orderRepo.DeleteOrder(ctx, id); err != nil {
		if err != apperrors.ErrNotFound {
			s.logger.Error("не удалось удалить заказ", zap.Uint64("orderId", id), zap.Error(err))
		}
		return err
	}
	return nil
}

// loadOrder читает заказ вместе с расходами; q == nil означает чтение
// вне транзакции.
func (s *OrderService) loadOrder(ctx context.Context, q repositories.Querier, id uint64) (*entities.Order, error) {
	order, err := s.orderRepo.FindOrder(ctx, q, id)
	if err != nil {
		return nil, err
	}
	expenses, err := s.expenseRepo.ListByOrderID(ctx, q, id)
	if err != nil {
		return nil, err
	}
	order.Expenses = expenses
	return order, nil
}

func validateDates(order entities.Order) error {
	if order.StartDate != nil && order.EndDate != nil && order.EndDate.Before(*order.StartDate) {
		return apperrors.NewInvalidInputError("endDate must not precede startDate")
	}
	return nil
}
