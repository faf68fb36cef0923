package repositories

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"workshop-system/internal/entities"
)

type ExpenseRepositoryInterface interface {
	ListByOrderID(ctx context.Context, q Querier, orderID uint64) ([]entities.Expense, error)
	MapByOrderIDs(ctx context.Context, orderIDs []uint64) (map[uint64][]entities.Expense, error)
	InsertManyInTx(ctx context.Context, tx pgx.Tx, orderID uint64, expenses []entities.Expense) error
	DeleteByOrderIDInTx(ctx context.Context, tx pgx.Tx, orderID uint64) error
}

type ExpenseRepository struct {
	storage *pgxpool.Pool
}

func NewExpenseRepository(storage *pgxpool.Pool) ExpenseRepositoryInterface {
	return &ExpenseRepository{storage: storage}
}

func scanExpense(rows pgx.Rows) (entities.Expense, error) {
	var e entities.Expense
	var link sql.NullString
	if err := rows.Scan(&e.ID, &e.OrderID, &e.Name, &e.Amount, &link); err != nil {
		return e, fmt.Errorf("ошибка сканирования расхода: %w", err)
	}
	if link.Valid {
		e.Link = &link.String
	}
	return e, nil
}

func (r *ExpenseRepository) ListByOrderID(ctx context.Context, q Querier, orderID uint64) ([]entities.Expense, error) {
	if q == nil {
		q = r.storage
	}
	rows, err := q.Query(ctx,
		`SELECT id, order_id, name, amount, link FROM expenses WHERE order_id = $1 ORDER BY id`, orderID)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения расходов: %w", err)
	}
	defer rows.Close()

	expenses := make([]entities.Expense, 0)
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

// MapByOrderIDs выбирает расходы сразу для всего списка заказов,
// чтобы не делать по запросу на заказ.
func (r *ExpenseRepository) MapByOrderIDs(ctx context.Context, orderIDs []uint64) (map[uint64][]entities.Expense, error) {
	result := make(map[uint64][]entities.Expense, len(orderIDs))
	if len(orderIDs) == 0 {
		return result, nil
	}

	ids := make([]int64, 0, len(orderIDs))
	for _, id := range orderIDs {
		ids = append(ids, int64(id))
	}

	rows, err := r.storage.Query(ctx,
		`SELECT id, order_id, name, amount, link FROM expenses WHERE order_id = ANY($1) ORDER BY id`, ids)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения расходов по заказам: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		result[e.OrderID] = append(result[e.OrderID], e)
	}
	return result, rows.Err()
}

func (r *ExpenseRepository) InsertManyInTx(ctx context.Context, tx pgx.Tx, orderID uint64, expenses []entities.Expense) error {
	if len(expenses) == 0 {
		return nil
	}

	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	builder := psql.Insert("expenses").Columns("order_id", "name", "amount", "link")
	for _, e := range expenses {
		builder = builder.Values(orderID, e.Name, e.Amount, e.Link)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("ошибка записи в 'expenses': %w", err)
	}
	return nil
}

func (r *ExpenseRepository) DeleteByOrderIDInTx(ctx context.Context, tx pgx.Tx, orderID uint64) error {
	if _, err := tx.Exec(ctx, `DELETE FROM expenses WHERE order_id = $1`, orderID); err != nil {
		return fmt.Errorf("ошибка удаления расходов заказа: %w", err)
	}
	return nil
}
