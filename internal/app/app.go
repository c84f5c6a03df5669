package app

import (
	"athena_backend/internal/config"
	"athena_backend/internal/controller"
	"athena_backend/internal/repository"
	"athena_backend/internal/service"
	"athena_backend/internal/util"
	"athena_backend/pkg/configwatcher"
	"athena_backend/pkg/database"
	"athena_backend/pkg/logger"
	"athena_backend/pkg/monitoring"
	"athena_backend/pkg/security"
	"athena_backend/pkg/tracing"
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client
}

type repositories struct {
	user    *repository.UserRepository
	catalog *repository.CatalogRepository
	check   *repository.CheckRepository
}

type services struct {
	storage   *service.StorageService
	progress  *service.ProgressService
	check     *service.CheckService
	catalog   *service.CatalogService
	user      *service.UserService
	validator *service.CheckValidator
}

type controllers struct {
	check    *controller.CheckController
	catalog  *controller.CatalogController
	progress *controller.ProgressController
	user     *controller.UserController
	health   *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:    repository.NewUserRepository(db),
		catalog: repository.NewCatalogRepository(db),
		check:   repository.NewCheckRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	cacheTTL := time.Duration(cfg.Progress.CacheTTLMinutes) * time.Minute
	if cacheTTL <= 0 {
		cacheTTL = 10 * time.Minute
	}

	s.storage = service.NewStorageService(cfg)
	s.progress = service.NewProgressService(repos.check, repos.catalog, repos.user, rdb, cacheTTL)

	s.validator = service.NewCheckValidator(cfg.Validation.StrictUpdate)
	s.check = service.NewCheckService(repos.check, repos.catalog, repos.user, s.validator, s.progress)

	s.catalog = service.NewCatalogService(repos.catalog, repos.check, repos.user)
	s.user = service.NewUserService(repos.user, s.storage)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		check:    controller.NewCheckController(s.check),
		catalog:  controller.NewCatalogController(s.catalog),
		progress: controller.NewProgressController(s.progress),
		user:     controller.NewUserController(s.user),
		health:   controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 1000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	logger.Log.Info("Logger initialized successfully")

	// release 模式默认跳过迁移，除非命令行显式要求
	migrate := cfg.Server.Mode != "release" || cfg.ForceMigrate
	db, err := database.InitDB(&cfg.Database, migrate)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	controllers := app.initControllers(services, db)

	// 监控初始化
	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("athena-backend", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, repos, cfg)

	// 配置热加载：运行期切换勾选校验严格模式
	go configwatcher.WatchConfig("configs/config.yaml", func(newCfg *config.Config) {
		services.validator.SetStrictUpdate(newCfg.Validation.StrictUpdate)
		logger.Log.Info("Config reloaded",
			zap.Bool("strict_update", newCfg.Validation.StrictUpdate))
	})

	if cfg.Storage.Type == util.StorageLocal || cfg.Storage.Type == "" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	// 启动服务器
	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
