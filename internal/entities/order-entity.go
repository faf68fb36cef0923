package entities

import "time"

// Статусы заказа.
const (
	StatusPending    = "pending"
	StatusInProgress = "inProgress"
	StatusCompleted  = "completed"
)

// Мессенджеры для связи с клиентом.
const (
	MessengerWhatsApp = "WhatsApp"
	MessengerTelegram = "Telegram"
)

type Order struct {
	ID         uint64
	Name       string
	Phone      string
	Messenger  string
	StartDate  *time.Time
	EndDate    *time.Time
	Price      float64
	Prepayment float64
	Status     string
	Notes      string
	Expenses   []Expense
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TotalExpenses - сумма всех расходов по заказу.
func (o *Order) TotalExpenses() float64 {
	var total float64
	for _, e := range o.Expenses {
		total += e.Amount
	}
	return total
}
