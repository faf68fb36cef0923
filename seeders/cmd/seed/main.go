package main

import (
	"flag"
	"log"

	"workshop-system/pkg/config"
	"workshop-system/pkg/database/postgresql"
	"workshop-system/seeders"
)

func main() {
	log.Println("======================================================")
	log.Println("       🌱 СИСТЕМА СИДЕРОВ (Наполнение БД)           ")
	log.Println("======================================================")

	runOrders := flag.Bool("orders", false, "Наполнить базу тестовыми заказами с расходами")
	flag.Parse()

	if !*runOrders {
		log.Println("❌ Не выбран ни один сидер для запуска.")
		log.Println("")
		log.Println("Доступные флаги:")
		flag.PrintDefaults()
		log.Println("")
		log.Println("Пример использования:")
		log.Println("  go run ./seeders/cmd/seed -orders")
		log.Println("======================================================")
		return
	}

	cfg := config.New()
	log.Println("📦 Используется DSN:", cfg.Postgres.DSN)
	dbPool := postgresql.ConnectDB(cfg.Postgres.DSN)
	defer dbPool.Close()

	log.Println("======================================================")

	seeders.SeedDemoOrders(dbPool)

	log.Println("======================================================")
	log.Println("🏁 Работа сидеров завершена.")
}
