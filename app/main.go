package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"repair-system/internal/routes"
	"repair-system/pkg/api"
	"repair-system/pkg/config"
	"repair-system/pkg/database/migrations"
	"repair-system/pkg/database/postgresql"
	apperrors "repair-system/pkg/errors"
	"repair-system/pkg/eventbus"
	applogger "repair-system/pkg/logger"
	"repair-system/pkg/middleware"
	"repair-system/pkg/service"
	"repair-system/pkg/validation"
)

func main() {
	// 1. Конфиг и логгер
	cfg := config.New()

	rootLogger, err := applogger.NewLogger(cfg.Log)
	if err != nil {
		log.Fatalf("не удалось создать логгер: %v", err)
	}
	defer rootLogger.Sync()
	loggers := applogger.NewLoggers(rootLogger)
	logger := loggers.Main

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. База данных и миграции
	dbConn, err := postgresql.ConnectDB(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("не удалось подключиться к базе данных", zap.Error(err))
	}
	defer dbConn.Close()

	if cfg.Postgres.RunMigrations {
		if err := migrations.Up(ctx, dbConn, logger); err != nil {
			logger.Fatal("ошибка применения миграций", zap.Error(err))
		}
	}

	// 3. Redis не обязателен: без него статистика просто не кешируется
	var redisClient *redis.Client
	if cfg.Redis.Address != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Warn("Redis недоступен, кеш статистики отключен", zap.Error(err), zap.String("address", cfg.Redis.Address))
			_ = redisClient.Close()
			redisClient = nil
		} else {
			defer redisClient.Close()
		}
	}

	// 4. Echo и middleware
	e := echo.New()
	e.HideBanner = true
	e.Validator = validation.New()

	e.Use(echomw.RecoverWithConfig(echomw.RecoverConfig{
		DisableStackAll: true,
		StackSize:       1 << 10,
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			logger.Error("Паника при обработке запроса",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Error(err),
				zap.String("stack", string(stack)),
			)
			if !c.Response().Committed {
				_ = api.ErrorResponse(c, apperrors.NewHttpError(http.StatusInternalServerError, "Внутренняя ошибка сервера", err, nil))
			}
			return err
		},
	}))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     cfg.Server.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
		ExposeHeaders:    []string{echo.HeaderContentDisposition},
	}))
	e.Use(middleware.InjectLogger(logger))

	absPath, err := filepath.Abs(cfg.Upload.Dir)
	if err != nil {
		logger.Fatal("не удалось получить абсолютный путь к каталогу загрузок", zap.Error(err))
	}
	e.Static("/uploads", absPath)

	// 5. Сервисы и маршруты
	jwtSvc := service.NewJWTService(cfg.JWT.SecretKey, cfg.JWT.AccessTokenTTL, loggers.Auth)
	bus := eventbus.New(logger)

	if err := routes.InitRouter(e, dbConn, redisClient, jwtSvc, bus, loggers, cfg); err != nil {
		logger.Fatal("ошибка инициализации маршрутов", zap.Error(err))
	}

	// 6. Запуск и корректная остановка
	go func() {
		logger.Info("Сервер запущен", zap.String("port", cfg.Server.Port))
		if err := e.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Ошибка запуска сервера", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Получен сигнал остановки")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Ошибка при остановке сервера", zap.Error(err))
	}
	bus.Wait()
	logger.Info("Сервер остановлен")
}
