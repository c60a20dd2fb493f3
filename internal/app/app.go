package app

import (
	"context"
	"corpready_backend/internal/config"
	"corpready_backend/internal/controller"
	"corpready_backend/internal/repository"
	"corpready_backend/internal/service"
	"corpready_backend/pkg/database"
	"corpready_backend/pkg/logger"
	"corpready_backend/pkg/monitoring"
	"corpready_backend/pkg/security"
	"corpready_backend/pkg/tracing"
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
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user       *repository.UserRepository
	catalog    *repository.CatalogRepository
	course     *repository.CourseRepository
	progress   *repository.ProgressRepository
	quiz       *repository.QuizRepository
	cert       *repository.CertificateRepository
	internship *repository.InternshipRepository
	mentorship *repository.MentorshipRepository
	adminLog   *repository.AdminLogRepository
}

type services struct {
	email      *service.EmailService
	storage    *service.StorageService
	auth       *service.AuthService
	user       *service.UserService
	youtube    *service.YouTubeService
	generation *service.GenerationService
	course     *service.CourseService
	progress   *service.ProgressService
	quiz       *service.QuizService
	cert       *service.CertificateService
	internship *service.InternshipService
	mentorship *service.MentorshipService
	admin      *service.AdminService
}

type controllers struct {
	auth       *controller.AuthController
	user       *controller.UserController
	course     *controller.CourseController
	progress   *controller.ProgressController
	quiz       *controller.QuizController
	cert       *controller.CertificateController
	internship *controller.InternshipController
	mentorship *controller.MentorshipController
	admin      *controller.AdminController
	health     *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// ReloadConfig 配置热更新入口，通知所有已注册的监听者
func (a *App) ReloadConfig(newCfg interface{}) {
	cfg, ok := newCfg.(*config.Config)
	if !ok {
		return
	}
	a.Config = cfg
	for _, cb := range a.configCallbacks {
		cb(cfg)
	}
	logger.Log.Info("Config reloaded")
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:       repository.NewUserRepository(db),
		catalog:    repository.NewCatalogRepository(db),
		course:     repository.NewCourseRepository(db),
		progress:   repository.NewProgressRepository(db),
		quiz:       repository.NewQuizRepository(db),
		cert:       repository.NewCertificateRepository(db),
		internship: repository.NewInternshipRepository(db),
		mentorship: repository.NewMentorshipRepository(db),
		adminLog:   repository.NewAdminLogRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.email = service.NewEmailService(cfg)
	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, s.email, cfg)
	s.user = service.NewUserService(repos.user, s.storage)
	s.youtube = service.NewYouTubeService(cfg.YouTube, rdb)
	s.generation = service.NewGenerationService(cfg.Workflow)
	s.course = service.NewCourseService(repos.catalog, repos.course, s.generation, s.youtube)
	s.cert = service.NewCertificateService(repos.cert, repos.user, cfg)
	s.progress = service.NewProgressService(repos.progress, repos.course, repos.user, s.cert, s.email)
	s.quiz = service.NewQuizService(repos.quiz, repos.course, repos.user, s.cert, s.email)
	s.internship = service.NewInternshipService(repos.internship)
	s.mentorship = service.NewMentorshipService(repos.mentorship)
	s.admin = service.NewAdminService(repos.user, repos.adminLog)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:       controller.NewAuthController(s.auth),
		user:       controller.NewUserController(s.user),
		course:     controller.NewCourseController(s.course, s.admin),
		progress:   controller.NewProgressController(s.progress),
		quiz:       controller.NewQuizController(s.quiz),
		cert:       controller.NewCertificateController(s.cert),
		internship: controller.NewInternshipController(s.internship, s.admin),
		mentorship: controller.NewMentorshipController(s.mentorship),
		admin:      controller.NewAdminController(s.admin),
		health:     controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))

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

	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode == "debug" || cfg.ForceMigrate)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
		log.Fatalf("Failed to initialize redis: %v", err)
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

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("corpready", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		defer func() {
			if err := tp.Shutdown(context.Background()); err != nil {
				logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
			}
		}()
	}

	app.registerRoutes(router, controllers, repos, cfg)

	if cfg.Storage.Type == "local" {
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
