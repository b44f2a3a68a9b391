package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"liveboard/internal/auth"
	"liveboard/internal/config"
	"liveboard/internal/db"
	"liveboard/internal/db/seeder"
	"liveboard/internal/handler"
	"liveboard/internal/health"
	"liveboard/internal/middleware"
	redisprovider "liveboard/internal/providers/redis"
	"liveboard/internal/realtime"
	"liveboard/internal/repository"
	"liveboard/internal/service"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type AuthService interface {
	handler.AuthService
	middleware.TokenVerifier
}

// Dependencies is everything the HTTP layer needs, already wired.
type Dependencies struct {
	Auth   AuthService
	Board  handler.BoardService
	Hub    *realtime.Hub
	Health *health.Checker
}

type Server struct {
	Engine *gin.Engine
	DB     *gorm.DB
	Config *config.Config
	Hub    *realtime.Hub
	Redis  *redisprovider.RedisProvider

	logger    *zap.Logger
	stopRelay context.CancelFunc
}

func Init(cfg *config.Config, logger *zap.Logger) (*Server, error) {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	dbConn, err := db.Connect(cfg, logger)
	if err != nil {
		return nil, err
	}

	if err := db.Migrate(dbConn, logger); err != nil {
		return nil, err
	}

	userRepo := repository.NewUserRepository(dbConn)
	columnRepo := repository.NewColumnRepository(dbConn)
	boardRepo := repository.NewBoardRepository(dbConn)
	cardRepo := repository.NewCardRepository(dbConn)

	seed := seeder.NewSeeder(columnRepo, userRepo, cfg, logger)
	if err := seed.Seed(context.Background()); err != nil {
		logger.Warn("Failed to run seeders", zap.Error(err))
	}

	hub := realtime.NewHub(logger)
	s := &Server{
		DB:        dbConn,
		Config:    cfg,
		Hub:       hub,
		logger:    logger,
		stopRelay: func() {},
	}

	var notifier service.Notifier = hub
	if cfg.RedisURL != "" {
		notifier = s.startRelay(hub)
	}

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)
	authService := service.NewAuthService(userRepo, tokens, cfg.BcryptCost, logger)
	boardService := service.NewBoardService(boardRepo, cardRepo, notifier, logger)

	checker := &health.Checker{DB: dbConn}
	if s.Redis != nil {
		checker.Redis = s.Redis
	}

	s.Engine = NewEngine(cfg, Dependencies{
		Auth:   authService,
		Board:  boardService,
		Hub:    hub,
		Health: checker,
	}, logger)

	return s, nil
}

// startRelay connects to Redis and fans board events out across instances.
// Any failure leaves the local hub as the notifier.
func (s *Server) startRelay(hub *realtime.Hub) service.Notifier {
	ctx, cancel := context.WithCancel(context.Background())

	provider, err := redisprovider.NewRedisProvider(ctx, s.Config.RedisURL, s.logger)
	if err != nil {
		cancel()
		s.logger.Warn("Redis unavailable, broadcasting locally only", zap.Error(err))
		return hub
	}

	relay := realtime.NewRedisRelay(hub, provider, s.logger)
	if err := relay.Start(ctx); err != nil {
		cancel()
		_ = provider.Close()
		s.logger.Warn("Redis relay failed to start, broadcasting locally only", zap.Error(err))
		return hub
	}

	s.Redis = provider
	s.stopRelay = cancel
	return relay
}

func NewEngine(cfg *config.Config, deps Dependencies, logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(middleware.CORSMiddleware(cfg.FrontendURLs))
	r.Use(middleware.LoggerMiddleware(logger))
	r.Use(gin.Recovery())

	authHandler := handler.NewAuthHandler(deps.Auth, logger)
	boardHandler := handler.NewBoardHandler(deps.Board, logger)

	api := r.Group(cfg.APIPrefix)
	if deps.Health != nil {
		health.RegisterRoutes(api, health.NewHandler(deps.Health))
	}

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)

	// Protected routes - require authentication
	authorized := api.Group("")
	authorized.Use(middleware.JWTAuthMiddleware(deps.Auth))
	{
		authorized.GET("/auth/me", authHandler.Me)
		authorized.GET("/board", boardHandler.GetBoard)
		authorized.POST("/cards", boardHandler.CreateCard)
		authorized.PATCH("/cards/:id", boardHandler.UpdateCard)
		authorized.DELETE("/cards/:id", boardHandler.DeleteCard)
	}

	realtime.RegisterRoutes(r, deps.Hub)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

func (s *Server) Run() {
	srv := &http.Server{
		Addr:              ":" + s.Config.ServerPort,
		Handler:           s.Engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		s.logger.Info("Server running", zap.String("port", s.Config.ServerPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Fatal("Failed to listen", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	s.logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		s.logger.Error("Server forced to shutdown", zap.Error(err))
	}

	s.stopRelay()
	s.Hub.Close()
	if s.Redis != nil {
		if err := s.Redis.Close(); err != nil {
			s.logger.Warn("Failed to close Redis client", zap.Error(err))
		}
	}
	if sqlDB, err := s.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}

	s.logger.Info("Server exited properly")
}
