package seeders

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SeedDemoOrders очищает таблицы заказов и расходов и наполняет их
// тестовыми данными: 5 заказов, у каждого по 3 расхода.
func SeedDemoOrders(db *pgxpool.Pool) {
	ctx := context.Background()
	log.Println("▶️  Запуск наполнения тестовыми заказами...")

	if err := seedOrders(ctx, db); err != nil {
		log.Fatalf("❌ Ошибка наполнения заказов: %v", err)
	}

	log.Println("✅ Наполнение тестовыми заказами завершено!")
}

func seedOrders(ctx context.Context, db *pgxpool.Pool) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	// Расходы удаляются каскадом вместе с заказами.
	if _, err := tx.Exec(ctx, `DELETE FROM orders`); err != nil {
		return err
	}
	log.Println("  - Существующие заказы удалены")

	statuses := []string{"pending", "inProgress", "completed"}
	messengers := []string{"WhatsApp", "Telegram"}

	for i := 1; i <= 5; i++ {
		now := time.Now()
		startDate := now.AddDate(0, 0, -i*2)
		endDate := startDate.AddDate(0, 0, 7)

		price := float64(rand.Intn(50000) + 10000)
		prepayment := float64(int(price * (rand.Float64()*0.5 + 0.3)))

		var orderID int64
		err := tx.QueryRow(ctx, `
			INSERT INTO orders (name, phone, messenger, start_date, end_date, price, prepayment, status, notes)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING id`,
			fmt.Sprintf("Тестовый заказ %d", i),
			fmt.Sprintf("+7%010d", rand.Int63n(10000000000)),
			messengers[rand.Intn(len(messengers))],
			startDate, endDate, price, prepayment,
			statuses[rand.Intn(len(statuses))],
			fmt.Sprintf("Это тестовый заказ номер %d. Здесь могут быть любые заметки по заказу.", i),
		).Scan(&orderID)
		if err != nil {
			return err
		}

		expenses := []struct {
			name   string
			amount float64
			link   *string
		}{
			{"Материалы", float64(rand.Intn(5000) + 1000), strPtr("https://example.com/materials")},
			{"Доставка", float64(rand.Intn(1000) + 500), nil},
			{"Услуги подрядчика", float64(rand.Intn(3000) + 2000), strPtr("https://example.com/contractor")},
		}
		for _, e := range expenses {
			if _, err := tx.Exec(ctx, `
				INSERT INTO expenses (order_id, name, amount, link) VALUES ($1, $2, $3, $4)`,
				orderID, e.name, e.amount, e.link,
			); err != nil {
				return err
			}
		}

		log.Printf("  - Создан заказ: Тестовый заказ %d (ID: %d)", i, orderID)
	}

	return tx.Commit(ctx)
}

func strPtr(s string) *string {
	return &s
}
