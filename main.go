package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/GhoshCoop/membergate-go/internal/application/container"
	"github.com/GhoshCoop/membergate-go/internal/domain/member"
	"github.com/GhoshCoop/membergate-go/internal/infrastructure/email"
	"github.com/GhoshCoop/membergate-go/internal/infrastructure/observability/logging"
	"github.com/GhoshCoop/membergate-go/internal/infrastructure/observability/performance"
	"github.com/GhoshCoop/membergate-go/internal/infrastructure/persistence/store"
	"github.com/GhoshCoop/membergate-go/internal/infrastructure/security"
	"github.com/GhoshCoop/membergate-go/internal/presentation/http/server"
	"github.com/GhoshCoop/membergate-go/pkg/config"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found -- config defaults will be used")
	}
	config.Load()

	logger, err := logging.NewChanneledLogger(logging.DefaultLoggerConfig())
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	logger.Startup().Info("Member gate starting", "port", config.Port)

	perfTracker := performance.NewTracker(nil)

	var kv store.Store
	if config.MemoryStorage {
		logger.Startup().Warn("Using in-memory storage; sessions will not survive a restart")
		kv = store.NewMemoryStore()
	} else {
		sqlStore, err := store.NewSQLStore(&store.SQLConfig{
			SQLitePath:  config.SQLitePath,
			LibSQLURL:   config.LibSQLURL,
			LibSQLToken: config.LibSQLToken,
		})
		if err != nil {
			log.Fatalf("Failed to open storage: %v", err)
		}
		defer sqlStore.Close()
		logger.Startup().Info("Storage opened", "info", sqlStore.GetConnectionInfo())
		kv = sqlStore
	}

	directory, err := member.LoadDirectory(config.MemberCodesPath)
	if err != nil {
		log.Fatalf("Failed to load member directory from %s: %v", config.MemberCodesPath, err)
	}
	logger.Startup().Info("Member directory loaded", "members", directory.Len())

	if config.JWTSecret == "" {
		secret, err := security.GenerateSecureKey(64)
		if err != nil {
			log.Fatalf("Failed to generate JWT secret: %v", err)
		}
		config.JWTSecret = secret
		logger.Startup().Warn("JWT_SECRET not set; staff tokens will not survive a restart")
	}

	var notifier email.Service = email.NoopService{}
	if config.NotifyOnMessages {
		svc, err := email.NewService()
		if err != nil {
			logger.Startup().Warn("Message notifications disabled", "reason", err.Error())
		} else {
			notifier = svc
		}
	}

	c, err := container.New(container.Options{
		Logger:      logger,
		PerfTracker: perfTracker,
		Store:       kv,
		Directory:   directory,
		Notifier:    notifier,
	})
	if err != nil {
		log.Fatalf("Failed to build container: %v", err)
	}

	srv := server.New(config.Port, c)

	go func() {
		if err := srv.Start(); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Shutdown().Info("Shutdown signal received")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Stop(ctx); err != nil {
		log.Printf("Forced shutdown: %v", err)
	}
	logger.Shutdown().Info("Server stopped")
}
