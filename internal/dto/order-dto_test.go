package dto

import (
	"testing"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"workshop-system/internal/entities"
)

func TestToEntityDefaults(t *testing.T) {
	d := CreateOrderDTO{Name: "  Шкаф-купе  "}
	order := d.ToEntity()

	assert.Equal(t, "Шкаф-купе", order.Name)
	assert.Equal(t, entities.MessengerWhatsApp, order.Messenger)
	assert.Equal(t, entities.StatusPending, order.Status)
	assert.Nil(t, order.StartDate)
	assert.Nil(t, order.EndDate)
}

func TestToEntityParsesDates(t *testing.T) {
	d := CreateOrderDTO{
		Name:      "Стол",
		StartDate: "2026-04-01",
		EndDate:   "2026-04-15T12:00:00Z",
	}
	order := d.ToEntity()

	require.NotNil(t, order.StartDate)
	require.NotNil(t, order.EndDate)
	assert.Equal(t, "2026-04-01", order.StartDate.Format("2006-01-02"))
	assert.Equal(t, "2026-04-15", order.EndDate.Format("2006-01-02"))
}

func TestToEntityIgnoresUnparsableDate(t *testing.T) {
	d := CreateOrderDTO{Name: "Стол", StartDate: "01.04.2026"}
	order := d.ToEntity()
	assert.Nil(t, order.StartDate)
}

func TestToEntityFiltersEmptyExpenses(t *testing.T) {
	d := CreateOrderDTO{
		Name: "Кровать",
		Expenses: []ExpenseInputDTO{
			{Name: "", Amount: 0},
			{Name: "   ", Amount: 0},
			{Name: "Материалы", Amount: 4500, Link: null.StringFrom("https://example.com")},
			{Name: "", Amount: 100},
		},
	}
	order := d.ToEntity()

	require.Len(t, order.Expenses, 2)
	assert.Equal(t, "Материалы", order.Expenses[0].Name)
	require.NotNil(t, order.Expenses[0].Link)
	assert.Equal(t, "https://example.com", *order.Expenses[0].Link)
	// Строка с суммой, но без имени сохраняется.
	assert.Equal(t, 100.0, order.Expenses[1].Amount)
	assert.Nil(t, order.Expenses[1].Link)
}

func TestNewOrderResponseDerivedValues(t *testing.T) {
	now := time.Now()
	order := entities.Order{
		ID:         1,
		Name:       "Кухня",
		Price:      85000,
		Prepayment: 30000,
		Status:     entities.StatusInProgress,
		Expenses: []entities.Expense{
			{ID: 1, OrderID: 1, Name: "Материалы", Amount: 30000},
			{ID: 2, OrderID: 1, Name: "Фурнитура", Amount: 12000},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	res := NewOrderResponse(order)

	assert.Equal(t, 42000.0, res.TotalExpenses)
	assert.Equal(t, 43000.0, res.Profit)
	assert.Equal(t, 51, res.ProfitPercent)
	assert.Equal(t, 55000.0, res.Remaining)
}

func TestNewOrderResponseProfitPercentRounding(t *testing.T) {
	order := entities.Order{
		Price:    1000,
		Expenses: []entities.Expense{{Name: "x", Amount: 333}},
	}
	res := NewOrderResponse(order)
	// 66.7% округляется до 67.
	assert.Equal(t, 67, res.ProfitPercent)
}

func TestNewOrderResponseZeroPrice(t *testing.T) {
	order := entities.Order{
		Expenses: []entities.Expense{{Name: "x", Amount: 500}},
	}
	res := NewOrderResponse(order)

	assert.Equal(t, 0, res.ProfitPercent)
	assert.Equal(t, -500.0, res.Profit)
	assert.Equal(t, 0.0, res.Remaining)
}

func TestNewOrderResponseEmptyExpensesIsArray(t *testing.T) {
	res := NewOrderResponse(entities.Order{ID: 1, Name: "Полка"})
	// Пустой список сериализуется как [], а не null.
	assert.NotNil(t, res.Expenses)
	assert.Len(t, res.Expenses, 0)
}
