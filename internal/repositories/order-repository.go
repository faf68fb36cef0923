package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"workshop-system/internal/entities"
	apperrors "workshop-system/pkg/errors"
)

const orderColumns = "id, name, phone, messenger, start_date, end_date, price, prepayment, status, notes, created_at, updated_at"

// OrderFilter - необязательные параметры списка заказов.
// Пагинации нет: клиент всегда получает весь список.
type OrderFilter struct {
	Search string
	Status string
}

type OrderRepositoryInterface interface {
	ListOrders(ctx context.Context, filter OrderFilter) ([]entities.Order, error)
	FindOrder(ctx context.Context, q Querier, id uint64) (*entities.Order, error)
	OrderExists(ctx context.Context, id uint64) (bool, error)
	CreateOrderInTx(ctx context.Context, tx pgx.Tx, order entities.Order) (uint64, error)
	UpdateOrderInTx(ctx context.Context, tx pgx.Tx, id uint64, order entities.Order) error
	DeleteOrder(ctx context.Context, id uint64) error
}

type OrderRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewOrderRepository(storage *pgxpool.Pool, logger *zap.Logger) OrderRepositoryInterface {
	return &OrderRepository{storage: storage, logger: logger}
}

func scanOrder(row pgx.Row) (*entities.Order, error) {
	var o entities.Order
	var startDate, endDate sql.NullTime

	err := row.Scan(
		&o.ID, &o.Name, &o.Phone, &o.Messenger,
		&startDate, &endDate,
		&o.Price, &o.Prepayment, &o.Status, &o.Notes,
		&o.CreatedAt, &o.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка сканирования заказа: %w", err)
	}

	if startDate.Valid {
		o.StartDate = &startDate.Time
	}
	if endDate.Valid {
		o.EndDate = &endDate.Time
	}
	return &o, nil
}

// ListOrders возвращает заказы от новых к старым. Расходы к заказам
// подгружает сервис через ExpenseRepository.
func (r *OrderRepository) ListOrders(ctx context.Context, filter OrderFilter) ([]entities.Order, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	builder := psql.Select(
		"id", "name", "phone", "messenger", "start_date", "end_date",
		"price", "prepayment", "status", "notes", "created_at", "updated_at",
	).From("orders").OrderBy("created_at DESC")

	if filter.Search != "" {
		pat := "%" + filter.Search + "%"
		builder = builder.Where(sq.Or{
			sq.ILike{"name": pat},
			sq.ILike{"phone": pat},
		})
	}
	if filter.Status != "" {
		builder = builder.Where(sq.Eq{"status": filter.Status})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка заказов: %w", err)
	}
	defer rows.Close()

	orders := make([]entities.Order, 0)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
	}
	return orders, rows.Err()
}

func (r *OrderRepository) FindOrder(ctx context.Context, q Querier, id uint64) (*entities.Order, error) {
	if q == nil {
		q = r.storage
	}
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`
	return scanOrder(q.QueryRow(ctx, query, id))
}

func (r *OrderRepository) OrderExists(ctx context.Context, id uint64) (bool, error) {
	var exists bool
	err := r.storage.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM orders WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("ошибка проверки существования заказа: %w", err)
	}
	return exists, nil
}

func (r *OrderRepository) CreateOrderInTx(ctx context.Context, tx pgx.Tx, order entities.Order) (uint64, error) {
	query := `
		INSERT INTO orders (name, phone, messenger, start_date, end_date, price, prepayment, status, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		RETURNING id`

	var newID uint64
	err := tx.QueryRow(ctx, query,
		order.Name, order.Phone, order.Messenger,
		order.StartDate, order.EndDate,
		order.Price, order.Prepayment, order.Status, order.Notes,
	).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("ошибка записи в 'orders': %w", err)
	}
	return newID, nil
}

func (r *OrderRepository) UpdateOrderInTx(ctx context.Context, tx pgx.Tx, id uint64, order entities.Order) error {
	query := `
		UPDATE orders
		SET name = $1, phone = $2, messenger = $3, start_date = $4, end_date = $5,
		    price = $6, prepayment = $7, status = $8, notes = $9, updated_at = NOW()
		WHERE id = $10`

	tag, err := tx.Exec(ctx, query,
		order.Name, order.Phone, order.Messenger,
		order.StartDate, order.EndDate,
		order.Price, order.Prepayment, order.Status, order.Notes,
		id,
	)
	if err != nil {
		return fmt.Errorf("ошибка обновления заказа: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteOrder удаляет заказ; расходы и фотографии снимает каскад в БД.
func (r *OrderRepository) DeleteOrder(ctx context.Context, id uint64) error {
	tag, err := r.storage.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("ошибка удаления заказа: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
