package main

import (
	"net/http"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"workshop-system/internal/routes"
	"workshop-system/migrations"
	"workshop-system/pkg/config"
	"workshop-system/pkg/customvalidator"
	"workshop-system/pkg/database/postgresql"
	apperrors "workshop-system/pkg/errors"
	applogger "workshop-system/pkg/logger"
	"workshop-system/pkg/middleware"
	"workshop-system/pkg/utils"
)

func main() {
	// 1. Базовые экземпляры Echo и логгера.
	e := echo.New()
	logger := applogger.NewLogger()

	// 2. Конфигурация (читает .env сама).
	cfg := config.New()

	// 3. Middleware: паники, логирование запросов, CORS.
	e.Use(echomw.RecoverWithConfig(echomw.RecoverConfig{
		DisableStackAll: true,
		StackSize:       1 << 10,
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			logger.Error("!!! ОБНАРУЖЕНА ПАНИКА (PANIC) !!!",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Error(err),
				zap.String("stack", string(stack)),
			)
			if !c.Response().Committed {
				httpErr := apperrors.NewHttpError(http.StatusInternalServerError, "Internal server error", err, "")
				utils.ErrorResponse(c, httpErr, logger)
			}
			return err
		},
	}))

	e.Use(middleware.RequestLogger(logger))

	// Слишком большие тела обрезаются на транспорте, до разбора multipart.
	e.Use(echomw.BodyLimit(cfg.Upload.BodyLimit()))

	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:  cfg.Server.AllowedOrigins,
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
		ExposeHeaders: []string{"Content-Disposition"},
	}))

	// 4. Статика для варианта хранения фотографий на диске.
	if cfg.Upload.Storage == config.PhotoStorageDisk {
		absPath, err := filepath.Abs(cfg.Upload.UploadDir)
		if err != nil {
			logger.Fatal("не удалось получить абсолютный путь к каталогу загрузок", zap.Error(err))
		}
		e.Static("/uploads", absPath)
	}

	// 5. Валидатор с кастомными правилами.
	v := validator.New()
	if err := customvalidator.RegisterCustomValidations(v); err != nil {
		logger.Fatal("Ошибка регистрации кастомных правил валидации", zap.Error(err))
	}
	e.Validator = utils.NewValidator(v)

	// 6. База данных и миграции.
	dbConn := postgresql.ConnectDB(cfg.Postgres.DSN)
	defer dbConn.Close()

	if err := migrations.Up(cfg.Postgres.DSN); err != nil {
		logger.Fatal("не удалось применить миграции", zap.Error(err))
	}

	// 7. Маршруты.
	routes.InitRouter(e, dbConn, logger, cfg)

	// 8. Запуск сервера.
	logger.Info("🚀 Сервер запущен", zap.String("port", cfg.Server.Port))
	if err := e.Start(":" + cfg.Server.Port); err != nil {
		logger.Fatal("Ошибка запуска сервера", zap.Error(err))
	}
}
