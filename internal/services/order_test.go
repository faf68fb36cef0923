package services

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"workshop-system/internal/dto"
	"workshop-system/internal/entities"
	"workshop-system/internal/repositories"
	apperrors "workshop-system/pkg/errors"
)

type txManagerStub struct{}

func (txManagerStub) RunInTransaction(_ context.Context, fn func(tx pgx.Tx) error) error {
	return fn(nil)
}

type orderRepoStub struct {
	orders map[uint64]entities.Order
	nextID uint64
}

func newOrderRepoStub() *orderRepoStub {
	return &orderRepoStub{orders: make(map[uint64]entities.Order), nextID: 1}
}

func (s *orderRepoStub) ListOrders(_ context.Context, _ repositories.OrderFilter) ([]entities.Order, error) {
	out := make([]entities.Order, 0, len(s.orders))
	for _, o := range s.orders {
		out = append(out, o)
	}
	return out, nil
}

func (s *orderRepoStub) FindOrder(_ context.Context, _ repositories.Querier, id uint64) (*entities.Order, error) {
	o, ok := s.orders[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	o.Expenses = nil
	return &o, nil
}

func (s *orderRepoStub) OrderExists(_ context.Context, id uint64) (bool, error) {
	_, ok := s.orders[id]
	return ok, nil
}

func (s *orderRepoStub) CreateOrderInTx(_ context.Context, _ pgx.Tx, order entities.Order) (uint64, error) {
	id := s.nextID
	s.nextID++
	order.ID = id
	s.orders[id] = order
	return id, nil
}

func (s *orderRepoStub) UpdateOrderInTx(_ context.Context, _ pgx.Tx, id uint64, order entities.Order) error {
	if _, ok := s.orders[id]; !ok {
		return apperrors.ErrNotFound
	}
	order.ID = id
	s.orders[id] = order
	return nil
}

func (s *orderRepoStub) DeleteOrder(_ context.Context, id uint64) error {
	if _, ok := s.orders[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(s.orders, id)
	return nil
}

type expenseRepoStub struct {
	byOrder map[uint64][]entities.Expense
	nextID  uint64
}

func newExpenseRepoStub() *expenseRepoStub {
	return &expenseRepoStub{byOrder: make(map[uint64][]entities.Expense), nextID: 1}
}

func (s *expenseRepoStub) ListByOrderID(_ context.Context, _ repositories.Querier, orderID uint64) ([]entities.Expense, error) {
	return s.byOrder[orderID], nil
}

func (s *expenseRepoStub) MapByOrderIDs(_ context.Context, orderIDs []uint64) (map[uint64][]entities.Expense, error) {
	out := make(map[uint64][]entities.Expense)
	for _, id := range orderIDs {
		if list, ok := s.byOrder[id]; ok {
			out[id] = list
		}
	}
	return out, nil
}

func (s *expenseRepoStub) InsertManyInTx(_ context.Context, _ pgx.Tx, orderID uint64, expenses []entities.Expense) error {
	for _, e := range expenses {
		e.ID = s.nextID
		s.nextID++
		e.OrderID = orderID
		s.byOrder[orderID] = append(s.byOrder[orderID], e)
	}
	return nil
}

func (s *expenseRepoStub) DeleteByOrderIDInTx(_ context.Context, _ pgx.Tx, orderID uint64) error {
	delete(s.byOrder, orderID)
	return nil
}

func newTestOrderService() (OrderServiceInterface, *orderRepoStub, *expenseRepoStub) {
	orderRepo := newOrderRepoStub()
	expenseRepo := newExpenseRepoStub()
	svc := NewOrderService(txManagerStub{}, orderRepo, expenseRepo, zap.NewNop())
	return svc, orderRepo, expenseRepo
}

func TestCreateOrderComputesDerivedValues(t *testing.T) {
	svc, _, _ := newTestOrderService()

	res, err := svc.CreateOrder(context.Background(), dto.CreateOrderDTO{
		Name:       "Кухонный гарнитур",
		Price:      85000,
		Prepayment: 30000,
		Expenses: []dto.ExpenseInputDTO{
			{Name: "Материалы", Amount: 30000},
			{Name: "Фурнитура", Amount: 12000},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 42000.0, res.TotalExpenses)
	assert.Equal(t, 43000.0, res.Profit)
	assert.Equal(t, 51, res.ProfitPercent)
	assert.Equal(t, 55000.0, res.Remaining)
	assert.Len(t, res.Expenses, 2)
}

func TestCreateOrderAppliesDefaults(t *testing.T) {
	svc, _, _ := newTestOrderService()

	res, err := svc.CreateOrder(context.Background(), dto.CreateOrderDTO{Name: "Шкаф"})
	require.NoError(t, err)

	assert.Equal(t, entities.MessengerWhatsApp, res.Messenger)
	assert.Equal(t, entities.StatusPending, res.Status)
	assert.Nil(t, res.StartDate)
	assert.Nil(t, res.EndDate)
	assert.Equal(t, 0, res.ProfitPercent)
}

func TestCreateOrderRejectsEndDateBeforeStartDate(t *testing.T) {
	svc, _, _ := newTestOrderService()

	_, err := svc.CreateOrder(context.Background(), dto.CreateOrderDTO{
		Name:      "Стол",
		StartDate: "2026-03-10",
		EndDate:   "2026-03-01",
	})
	require.Error(t, err)

	var invalidInput *apperrors.InvalidInputError
	assert.ErrorAs(t, err, &invalidInput)
}

func TestCreateOrderAllowsEqualDates(t *testing.T) {
	svc, _, _ := newTestOrderService()

	res, err := svc.CreateOrder(context.Background(), dto.CreateOrderDTO{
		Name:      "Полка",
		StartDate: "2026-03-10",
		EndDate:   "2026-03-10",
	})
	require.NoError(t, err)
	require.NotNil(t, res.StartDate)
	assert.Equal(t, "2026-03-10", *res.StartDate)
}

func TestUpdateOrderReplacesExpenses(t *testing.T) {
	svc, _, expenseRepo := newTestOrderService()

	created, err := svc.CreateOrder(context.Background(), dto.CreateOrderDTO{
		Name:  "Комод",
		Price: 20000,
		Expenses: []dto.ExpenseInputDTO{
			{Name: "Материалы", Amount: 5000},
			{Name: "Доставка", Amount: 1000},
		},
	})
	require.NoError(t, err)

	updated, err := svc.UpdateOrder(context.Background(), created.ID, dto.UpdateOrderDTO{
		Name:  "Комод",
		Price: 20000,
		Expenses: []dto.ExpenseInputDTO{
			{Name: "Материалы", Amount: 7000},
		},
	})
	require.NoError(t, err)

	require.Len(t, updated.Expenses, 1)
	assert.Equal(t, "Материалы", updated.Expenses[0].Name)
	assert.Equal(t, 7000.0, updated.Expenses[0].Amount)
	assert.Equal(t, 7000.0, updated.TotalExpenses)

	// Старые расходы не переживают обновление.
	stored := expenseRepo.byOrder[created.ID]
	require.Len(t, stored, 1)
	assert.NotEqual(t, created.Expenses[0].ID, stored[0].ID)
}

func TestUpdateOrderNotFound(t *testing.T) {
	svc, _, _ := newTestOrderService()

	_, err := svc.UpdateOrder(context.Background(), 999, dto.UpdateOrderDTO{Name: "Нет такого"})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestDeleteOrderNotFound(t *testing.T) {
	svc, _, _ := newTestOrderService()

	err := svc.DeleteOrder(context.Background(), 42)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestGetOrdersAttachesExpenses(t *testing.T) {
	svc, _, _ := newTestOrderService()

	created, err := svc.CreateOrder(context.Background(), dto.CreateOrderDTO{
		Name:  "Тумба",
		Price: 10000,
		Expenses: []dto.ExpenseInputDTO{
			{Name: "Материалы", Amount: 2500},
		},
	})
	require.NoError(t, err)

	list, err := svc.GetOrders(context.Background(), repositories.OrderFilter{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)
	require.Len(t, list[0].Expenses, 1)
	assert.Equal(t, 2500.0, list[0].TotalExpenses)
}

func TestCreateOrderDropsEmptyExpenseRows(t *testing.T) {
	svc, _, _ := newTestOrderService()

	res, err := svc.CreateOrder(context.Background(), dto.CreateOrderDTO{
		Name: "Стеллаж",
		Expenses: []dto.ExpenseInputDTO{
			{Name: "", Amount: 0},
			{Name: "Крепеж", Amount: 300},
		},
	})
	require.NoError(t, err)
	require.Len(t, res.Expenses, 1)
	assert.Equal(t, "Крепеж", res.Expenses[0].Name)
}
