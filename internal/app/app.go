package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pilates_diario_backend/internal/config"
	"pilates_diario_backend/internal/controller"
	"pilates_diario_backend/internal/repository"
	"pilates_diario_backend/internal/service"
	"pilates_diario_backend/pkg/configwatcher"
	"pilates_diario_backend/pkg/database"
	"pilates_diario_backend/pkg/logger"
	"pilates_diario_backend/pkg/monitoring"
	"pilates_diario_backend/pkg/security"
	"pilates_diario_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config   *config.Config
	Router   *gin.Engine
	DB       *gorm.DB
	Redis    *redis.Client
	services *services
}

type repositories struct {
	user       *repository.UserRepository
	exercise   *repository.ExerciseRepository
	completion *repository.CompletionRepository
	product    *repository.ProductRepository
}

type services struct {
	auth     *service.AuthService
	user     *service.UserService
	storage  *service.StorageService
	video    *service.VideoService
	schedule *service.ScheduleService
	workout  *service.WorkoutService
	ranking  *service.RankingService
	exercise *service.ExerciseService
	product  *service.ProductService
}

type controllers struct {
	auth     *controller.AuthController
	workout  *controller.WorkoutController
	ranking  *controller.RankingController
	exercise *controller.ExerciseController
	product  *controller.ProductController
	user     *controller.UserController
	health   *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:       repository.NewUserRepository(db),
		exercise:   repository.NewExerciseRepository(db),
		completion: repository.NewCompletionRepository(db),
		product:    repository.NewProductRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.video = service.NewVideoService(&cfg.Bunny)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.user = service.NewUserService(repos.user, repos.completion)

	s.schedule = service.NewScheduleService(repos.exercise, cfg.Reward.Anchor())
	s.workout = service.NewWorkoutService(s.schedule, repos.completion, cfg.Reward.PointsPerCompletion, cfg.Reward.DefaultDurationSeconds)
	s.ranking = service.NewRankingService(repos.user, rdb, cfg.Reward.RankingLimit)

	// a fresh completion moves the leaderboard, drop the cached copy
	s.workout.OnCompletion(func(userID uint) {
		s.ranking.Invalidate(context.Background())
	})

	s.exercise = service.NewExerciseService(repos.exercise, s.video)
	s.product = service.NewProductService(repos.product)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:     controller.NewAuthController(s.auth, s.user),
		workout:  controller.NewWorkoutController(s.workout),
		ranking:  controller.NewRankingController(s.ranking),
		exercise: controller.NewExerciseController(s.exercise),
		product:  controller.NewProductController(s.product),
		user:     controller.NewUserController(s.user, s.storage),
		health:   controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func (a *App) startBackgroundTasks(s *services) {
	go func() {
		ticker := time.NewTicker(10 * time.Minute)
		for range ticker.C {
			s.workout.SweepSessions(24 * time.Hour)
		}
	}()

	// Hot-reload the credential-ish settings that are read through the
	// shared config on every request. Anything wired into a service at
	// construction time still needs a restart.
	go configwatcher.WatchConfig("configs/config.yaml", a.Config, func(raw interface{}) {
		newCfg, ok := raw.(*config.Config)
		if !ok {
			return
		}
		a.Config.Admin = newCfg.Admin
		a.Config.Bunny = newCfg.Bunny
		a.Config.JWT = newCfg.JWT
		logger.Log.Info("configuration reloaded")
	})
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	if cfg.MigrateOnly {
		return &App{Config: cfg, DB: db}
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Warn("Redis unavailable, ranking cache disabled", zap.Error(err))
		rdb = nil
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	app.services = services
	controllers := app.initControllers(services, db)

	monitoring.Init()

	gin.SetMode(cfg.Server.Mode)
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		_, err := tracing.InitTracer("pilates-diario", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, repos, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	app.startBackgroundTasks(services)

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

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
