package entities

type Expense struct {
	ID      uint64
	OrderID uint64
	Name    string
	Amount  float64
	Link    *string
}
