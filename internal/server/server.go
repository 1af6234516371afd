package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kraken/docs"
	"kraken/internal/auth"
	"kraken/internal/config"
	"kraken/internal/events"
	"kraken/internal/handler"
	"kraken/internal/middleware"
	"kraken/internal/migrations"
	"kraken/internal/ratelimit"
	"kraken/internal/repository"
	"kraken/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Server struct {
	Engine *gin.Engine
	DB     *gorm.DB
	Config *config.Config
	Log    *zap.Logger

	closers []func() error
}

// Pinger reports whether a backing store is reachable.
type Pinger func(ctx context.Context) error

// Health holds the checks behind /health. Events is nil when no broker is
// configured; a lost broker degrades the status but keeps the 200.
type Health struct {
	Database Pinger
	Events   func() bool
}

func Init(cfg *config.Config, log *zap.Logger) (*Server, error) {
	if cfg.AutoMigrate {
		if err := migrations.Up(cfg.DB.URL()); err != nil {
			return nil, err
		}
		log.Info("migrations applied")
	}

	// Setup GORM
	db, err := gorm.Open(postgres.Open(cfg.DB.DSN()), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to DB: %w", err)
	}
	log.Info("connected to database", zap.String("host", cfg.DB.Host), zap.String("name", cfg.DB.Name))

	s := &Server{DB: db, Config: cfg, Log: log}

	publisher, eventsUp := s.publisher()
	limiter := s.limiter()
	tokens := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.Expiry())

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	milestoneRepo := repository.NewMilestoneRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	sprintRepo := repository.NewSprintRepository(db)

	// Initialize services
	userService := service.NewUserService(userRepo, tokens, limiter, log)
	projectService := service.NewProjectService(projectRepo, userRepo, milestoneRepo, taskRepo, sprintRepo, publisher, log)
	milestoneService := service.NewMilestoneService(projectRepo, milestoneRepo, taskRepo, sprintRepo, publisher, log)
	taskService := service.NewTaskService(projectRepo, milestoneRepo, taskRepo, sprintRepo, publisher, log)
	sprintService := service.NewSprintService(projectRepo, milestoneRepo, taskRepo, sprintRepo, publisher, log)

	// Initialize handlers
	handlers := handler.Handlers{
		Users:      handler.NewUserHandler(userService, log),
		Projects:   handler.NewProjectHandler(projectService, log),
		Milestones: handler.NewMilestoneHandler(milestoneService, log),
		Tasks:      handler.NewTaskHandler(taskService, log),
		Sprints:    handler.NewSprintHandler(sprintService, log),
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get DB handle: %w", err)
	}
	s.closers = append(s.closers, sqlDB.Close)

	health := Health{Database: sqlDB.PingContext, Events: eventsUp}
	s.Engine = NewEngine(handlers, middleware.JWTAuthMiddleware(tokens, userRepo), health, log)
	return s, nil
}

// NewEngine builds the router: API routes plus health, metrics and swagger.
func NewEngine(h handler.Handlers, authMW gin.HandlerFunc, health Health, log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(log), middleware.Metrics())

	r.GET("/health", health.handle)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	docs.SwaggerInfo.BasePath = "/"
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	handler.RegisterRoutes(r, h, authMW)
	return r
}

func (h Health) handle(c *gin.Context) {
	body := gin.H{"status": "ok", "database": "up", "events": "disabled"}

	if h.Events != nil {
		body["events"] = "up"
		if !h.Events() {
			body["events"] = "down"
			body["status"] = "degraded"
		}
	}

	if err := h.Database(c.Request.Context()); err != nil {
		body["database"] = "down"
		body["status"] = "unavailable"
		c.JSON(http.StatusServiceUnavailable, body)
		return
	}
	c.JSON(http.StatusOK, body)
}

// publisher connects to the broker when MQ_URL is set. Events are optional,
// so a broker that is down only costs a warning. The second result reports
// the broker connection for /health and is nil without a broker.
func (s *Server) publisher() (events.Publisher, func() bool) {
	if s.Config.MQ.URL == "" {
		return events.NopPublisher{}, nil
	}
	pub, err := events.NewAMQPPublisher(s.Config.MQ.URL)
	if err != nil {
		s.Log.Warn("event broker unavailable, events disabled", zap.Error(err))
		return events.NopPublisher{}, func() bool { return false }
	}
	s.closers = append(s.closers, pub.Close)
	s.Log.Info("connected to event broker", zap.String("exchange", events.ExchangeName))
	return pub, pub.IsConnected
}

func (s *Server) limiter() ratelimit.LoginLimiter {
	if s.Config.Redis.Addr == "" {
		return ratelimit.NopLimiter{}
	}
	rdb := ratelimit.NewRedisClient(s.Config.Redis.Addr, s.Config.Redis.Password, s.Config.Redis.DB)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		// лимитер всё равно пропускает логин при ошибках Redis
		s.Log.Warn("redis unavailable, login limiter will fail open", zap.Error(err))
	}
	s.closers = append(s.closers, rdb.Close)
	return ratelimit.NewRedisLimiter(rdb, s.Config.Login.MaxAttempts, s.Config.Login.Lockout())
}

func (s *Server) Run() {
	srv := &http.Server{
		Addr:    ":" + s.Config.ServerPort,
		Handler: s.Engine,
	}

	go func() {
		s.Log.Info("server running", zap.String("port", s.Config.ServerPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.Log.Fatal("failed to listen", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	s.Log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		s.Log.Fatal("server forced to shutdown", zap.Error(err))
	}

	s.Close()
	s.Log.Info("server exited properly")
}

// Close releases the broker, redis and database connections.
func (s *Server) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			s.Log.Warn("failed to close resource", zap.Error(err))
		}
	}
}
