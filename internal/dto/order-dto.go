package dto

import (
	"math"
	"strings"
	"time"

	"github.com/aarondl/null/v8"

	"workshop-system/internal/entities"
	"workshop-system/pkg/utils"
)

type ExpenseInputDTO struct {
	Name   string      `json:"name"`
	Amount float64     `json:"amount" validate:"gte=0"`
	Link   null.String `json:"link"`
}

// CreateOrderDTO - тело POST /api/orders. Update использует ту же форму:
// обновление полностью заменяет скалярные поля и набор расходов.
type CreateOrderDTO struct {
	Name       string            `json:"name" validate:"required"`
	Phone      string            `json:"phone"`
	Messenger  string            `json:"messenger" validate:"omitempty,oneof=WhatsApp Telegram"`
	StartDate  string            `json:"startDate" validate:"omitempty,date_string"`
	EndDate    string            `json:"endDate" validate:"omitempty,date_string"`
	Price      float64           `json:"price" validate:"gte=0"`
	Prepayment float64           `json:"prepayment" validate:"gte=0"`
	Status     string            `json:"status" validate:"omitempty,oneof=pending inProgress completed"`
	Notes      string            `json:"notes"`
	Expenses   []ExpenseInputDTO `json:"expenses" validate:"dive"`
}

type UpdateOrderDTO = CreateOrderDTO

// ToEntity переводит входной DTO в сущность: даты разбираются (невалидные
// дают nil), пустые мессенджер и статус получают значения по умолчанию,
// расходы без имени и суммы отбрасываются.
func (d *CreateOrderDTO) ToEntity() entities.Order {
	messenger := d.Messenger
	if messenger == "" {
		messenger = entities.MessengerWhatsApp
	}
	status := d.Status
	if status == "" {
		status = entities.StatusPending
	}

	order := entities.Order{
		Name:       strings.TrimSpace(d.Name),
		Phone:      d.Phone,
		Messenger:  messenger,
		StartDate:  utils.ParseDate(d.StartDate),
		EndDate:    utils.ParseDate(d.EndDate),
		Price:      d.Price,
		Prepayment: d.Prepayment,
		Status:     status,
		Notes:      d.Notes,
	}

	for _, e := range d.Expenses {
		if strings.TrimSpace(e.Name) == "" && e.Amount == 0 {
			continue
		}
		expense := entities.Expense{
			Name:   e.Name,
			Amount: e.Amount,
		}
		if e.Link.Valid && e.Link.String != "" {
			link := e.Link.String
			expense.Link = &link
		}
		order.Expenses = append(order.Expenses, expense)
	}

	return order
}

type ExpenseResponseDTO struct {
	ID      uint64      `json:"id"`
	OrderID uint64      `json:"orderId"`
	Name    string      `json:"name"`
	Amount  float64     `json:"amount"`
	Link    null.String `json:"link"`
}

type OrderResponseDTO struct {
	ID         uint64               `json:"id"`
	Name       string               `json:"name"`
	Phone      string               `json:"phone"`
	Messenger  string               `json:"messenger"`
	StartDate  *string              `json:"startDate"`
	EndDate    *string              `json:"endDate"`
	Price      float64              `json:"price"`
	Prepayment float64              `json:"prepayment"`
	Status     string               `json:"status"`
	Notes      string               `json:"notes"`
	Expenses   []ExpenseResponseDTO `json:"expenses"`

	// Производные значения всегда считаются сервером и нигде не хранятся.
	TotalExpenses float64 `json:"totalExpenses"`
	Profit        float64 `json:"profit"`
	ProfitPercent int     `json:"profitPercent"`
	Remaining     float64 `json:"remaining"`

	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

func NewOrderResponse(o entities.Order) OrderResponseDTO {
	expenses := make([]ExpenseResponseDTO, 0, len(o.Expenses))
	for _, e := range o.Expenses {
		expenses = append(expenses, ExpenseResponseDTO{
			ID:      e.ID,
			OrderID: e.OrderID,
			Name:    e.Name,
			Amount:  e.Amount,
			Link:    null.StringFromPtr(e.Link),
		})
	}

	totalExpenses := o.TotalExpenses()
	profit := o.Price - totalExpenses
	profitPercent := 0
	if o.Price > 0 {
		profitPercent = int(math.Round(100 * profit / o.Price))
	}

	return OrderResponseDTO{
		ID:            o.ID,
		Name:          o.Name,
		Phone:         o.Phone,
		Messenger:     o.Messenger,
		StartDate:     utils.FormatDate(o.StartDate),
		EndDate:       utils.FormatDate(o.EndDate),
		Price:         o.Price,
		Prepayment:    o.Prepayment,
		Status:        o.Status,
		Notes:         o.Notes,
		Expenses:      expenses,
		TotalExpenses: totalExpenses,
		Profit:        profit,
		ProfitPercent: profitPercent,
		Remaining:     o.Price - o.Prepayment,
		CreatedAt:     o.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     o.UpdatedAt.Format(time.RFC3339),
	}
}

func NewOrderListResponse(orders []entities.Order) []OrderResponseDTO {
	res := make([]OrderResponseDTO, 0, len(orders))
	for _, o := range orders {
		res = append(res, NewOrderResponse(o))
	}
	return res
}
