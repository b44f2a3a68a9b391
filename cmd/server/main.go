package main

import (
	"log"

	_ "liveboard/docs"
	"liveboard/internal/config"
	"liveboard/internal/logger"
	"liveboard/internal/server"

	"go.uber.org/zap"
)

// @title           Liveboard API
// @version         1.0
// @description     Shared Kanban board with realtime invalidation.

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @schemes http
func main() {
	cfg, envFileLoaded := config.Load()

	zapLogger, err := logger.New(cfg.IsProduction())
	if err != nil {
		log.Fatalf("Failed to initialize zap logger: %v", err)
	}
	defer func() { _ = zapLogger.Sync() }()

	zapLogger.Info("Config loaded",
		zap.Bool("env_file", envFileLoaded),
		zap.String("server_port", cfg.ServerPort),
		zap.String("api_prefix", cfg.APIPrefix),
		zap.String("db_host", cfg.DBHost),
		zap.Bool("redis_enabled", cfg.RedisURL != ""),
		zap.String("env", cfg.Env),
	)

	s, err := server.Init(cfg, zapLogger)
	if err != nil {
		zapLogger.Fatal("Server initialization failed", zap.Error(err))
	}

	s.Run()
}
