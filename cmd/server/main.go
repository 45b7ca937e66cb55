package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"vidhub/internal/core"
	httpProtocol "vidhub/internal/protocols/http"
	"vidhub/internal/repository"
	"vidhub/internal/storage"
	"vidhub/pkg/config"
	"vidhub/pkg/database"
	"vidhub/pkg/logger"
)

func main() {
	// Load configuration
	configPath := os.Getenv("VIDHUB_CONFIG")
	if configPath == "" {
		configPath = "./configs/development.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger.Init(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})

	logger.Info("Starting vidhub server...")

	// Connect to database
	pool, err := database.NewPGXPool(database.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.Database,
		SSLMode:         cfg.Database.SSLMode,
		MaxConns:        cfg.Database.MaxConns,
		MinConns:        cfg.Database.MinConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
		Timeout:         cfg.Database.Timeout,
	})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	logger.Info("Connected to PostgreSQL database")

	// Connect to object storage
	objectStore, err := storage.New(context.Background(), storage.Config{
		Endpoint:  cfg.Storage.Endpoint,
		Region:    cfg.Storage.Region,
		Bucket:    cfg.Storage.Bucket,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		UseSSL:    cfg.Storage.UseSSL,
		PublicURL: cfg.Storage.PublicURL,
	})
	if err != nil {
		log.Fatalf("Failed to connect to object storage: %v", err)
	}

	logger.Info("Connected to object storage")

	// Initialize repositories
	userRepo := repository.NewUserRepository(pool)
	videoRepo := repository.NewVideoRepository(pool)

	// Initialize core services
	authSvc := core.NewAuthService(userRepo, cfg.Auth.Secret, cfg.Auth.Issuer, cfg.Auth.Audience)
	engagementSvc := core.NewEngagementService(videoRepo, userRepo)
	videoSvc := core.NewVideoService(videoRepo, objectStore, engagementSvc)
	userSvc := core.NewUserService(userRepo)

	logger.Info("Initialized repositories and core services")

	// HTTP REST API server
	httpServer := httpProtocol.NewServer(cfg, authSvc, videoSvc, engagementSvc, userSvc)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				logger.Errorf("HTTP server panic recovered: %v", r)
			}
		}()
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		logger.Info(fmt.Sprintf("Starting HTTP server on %s", addr))
		if err := httpServer.Start(addr); err != nil {
			logger.Errorf("HTTP server error: %v", err)
		}
	}()

	logger.Info("Press Ctrl+C to shutdown")

	// Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	sig := <-sigChan
	logger.Info(fmt.Sprintf("Received signal: %v", sig))
	logger.Info("Shutdown complete")
}
