package routes

import (
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"repair-system/internal/controllers"
	"repair-system/internal/listeners"
	"repair-system/internal/repositories"
	"repair-system/internal/services"
	"repair-system/pkg/config"
	"repair-system/pkg/enums"
	"repair-system/pkg/eventbus"
	"repair-system/pkg/filestorage"
	"repair-system/pkg/logger"
	"repair-system/pkg/middleware"
	"repair-system/pkg/service"
	"repair-system/pkg/validation"
)

// InitRouter собирает репозитории, сервисы и контроллеры и регистрирует
// маршруты. redisClient может быть nil, тогда статистика не кешируется.
func InitRouter(
	e *echo.Echo,
	dbConn *pgxpool.Pool,
	redisClient *redis.Client,
	jwtSvc service.JWTService,
	bus *eventbus.Bus,
	loggers *logger.Loggers,
	cfg *config.Config,
) error {
	loggers.Main.Info("InitRouter: Начало создания маршрутов")

	// --- 0. ОБЩИЕ КОМПОНЕНТЫ ---
	api := e.Group("/api")
	authMW := middleware.NewAuthMiddleware(jwtSvc, loggers.Auth)
	fileStorage, err := filestorage.NewLocalFileStorage(cfg.Upload.Dir)
	if err != nil {
		return err
	}
	txManager := repositories.NewTxManager(dbConn)
	dicts := enums.NewRepairDictionaries()
	validator := validation.New()

	var cacheRepo repositories.CacheRepositoryInterface
	if redisClient != nil {
		cacheRepo = repositories.NewRedisCacheRepository(redisClient)
	}
	listeners.NewStatsCacheListener(cacheRepo, loggers.Report).Register(bus)

	// --- 1. РЕПОЗИТОРИИ ---
	refRepo := repositories.NewReferenceRepository(dbConn)
	repairRepo := repositories.NewRepairRepository(dbConn)
	historyRepo := repositories.NewRepairHistoryRepository(dbConn)
	detailRepo := repositories.NewRepairDetailRepository(dbConn)
	partRepo := repositories.NewRepairPartRepository(dbConn)
	fileRepo := repositories.NewRepairFileRepository(dbConn)
	assignmentRepo := repositories.NewDeviceAssignmentRepository(dbConn)
	softwareRepo := repositories.NewDeviceSoftwareRepository(dbConn)
	reportRepo := repositories.NewReportRepository(dbConn)

	// --- 2. СЕРВИСЫ ---
	repairService := services.NewRepairService(
		txManager, repairRepo, historyRepo, detailRepo, partRepo, fileRepo, refRepo,
		fileStorage, dicts, services.NewTransitionPolicy(cfg.Repair.StrictTransitions),
		validator, bus, loggers.Repair,
	)
	assignmentService := services.NewDeviceAssignmentService(txManager, assignmentRepo, refRepo, bus, loggers.Assignment)
	softwareService := services.NewDeviceSoftwareService(txManager, softwareRepo, refRepo, validator, bus, loggers.Software)
	reportService := services.NewReportService(reportRepo, cacheRepo, cfg.Repair.StatsCacheTTL, dicts, loggers.Report)

	// --- 3. КОНТРОЛЛЕРЫ ---
	repairController := controllers.NewRepairController(repairService, fileStorage, cfg.Upload.MaxBytes, loggers.Repair)
	assignmentController := controllers.NewDeviceAssignmentController(assignmentService, loggers.Assignment)
	softwareController := controllers.NewDeviceSoftwareController(softwareService, loggers.Software)
	reportController := controllers.NewReportController(reportService, repairService, loggers.Report)
	healthController := controllers.NewHealthController(dbConn, loggers.Main)

	// --- 4. РОУТЕРЫ ---
	e.GET("/health", healthController.Health)

	secureGroup := api.Group("", authMW.Auth)

	runReportRouter(secureGroup, reportController)
	runRepairRouter(secureGroup, repairController)
	runDeviceAssignmentRouter(secureGroup, assignmentController)
	runDeviceSoftwareRouter(secureGroup, softwareController)

	loggers.Main.Info("InitRouter: Создание маршрутов завершено", zap.Int("routes", len(e.Routes())))
	return nil
}
