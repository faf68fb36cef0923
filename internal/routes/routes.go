package routes

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"workshop-system/internal/controllers"
	"workshop-system/internal/repositories"
	"workshop-system/internal/services"
	"workshop-system/pkg/config"
	"workshop-system/pkg/filestorage"
	"workshop-system/pkg/imaging"
	"workshop-system/pkg/middleware"
)

// InitRouter собирает слои приложения и регистрирует все маршруты.
func InitRouter(e *echo.Echo, dbConn *pgxpool.Pool, logger *zap.Logger, cfg *config.Config) {
	logger.Info("InitRouter: Начало создания маршрутов")

	// --- 0. ОБЩИЕ КОМПОНЕНТЫ ---
	api := e.Group("/api")
	txManager := repositories.NewTxManager(dbConn)
	processor := imaging.NewProcessor(cfg.Upload.MaxDimension, cfg.Upload.JPEGQuality)
	contentStore := buildContentStore(cfg, logger)

	// --- 1. РЕПОЗИТОРИИ ---
	orderRepo := repositories.NewOrderRepository(dbConn, logger)
	expenseRepo := repositories.NewExpenseRepository(dbConn)
	photoRepo := repositories.NewPhotoRepository(dbConn)

	// --- 2. СЕРВИСЫ ---
	orderService := services.NewOrderService(txManager, orderRepo, expenseRepo, logger)
	photoService := services.NewPhotoService(
		photoRepo, orderRepo, contentStore, processor,
		cfg.Upload.MaxFileSize, cfg.Upload.MaxFilesPerRequest, logger,
	)
	reportService := services.NewReportService(orderService, logger)

	// --- 3. КОНТРОЛЛЕРЫ ---
	orderCtrl := controllers.NewOrderController(orderService, logger)
	photoCtrl := controllers.NewPhotoController(photoService, logger)
	reportCtrl := controllers.NewReportController(reportService, logger)
	healthCtrl := controllers.NewHealthController()

	// --- 4. МАРШРУТЫ ---
	api.GET("/health", healthCtrl.Health)

	adminGroup := api.Group("", middleware.IPAllowList(cfg.Server.AdminAllowedIPs, logger))
	runOrderRouter(adminGroup, orderCtrl)
	runPhotoRouter(adminGroup, photoCtrl)
	runReportRouter(adminGroup, reportCtrl)

	logger.Info("InitRouter: Создание маршрутов завершено")
}

func buildContentStore(cfg *config.Config, logger *zap.Logger) services.PhotoContentStore {
	if cfg.Upload.Storage == config.PhotoStorageDisk {
		fileStorage, err := filestorage.NewLocalFileStorage(cfg.Upload.UploadDir)
		if err != nil {
			logger.Fatal("не удалось создать файловое хранилище", zap.Error(err))
		}
		return services.NewDiskContentStore(fileStorage)
	}
	return services.NewBlobContentStore()
}
