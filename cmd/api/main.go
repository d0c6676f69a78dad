package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"resumecraft/internal/api"
	"resumecraft/internal/auth"
	"resumecraft/internal/config"
	"resumecraft/internal/database"
	"resumecraft/internal/extract"
	"resumecraft/internal/render"
	"resumecraft/internal/storage"
	"resumecraft/internal/template"
)

func main() {
	cfg := config.MustLoad()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	db, err := database.InitDatabase(cfg.Database)
	if err != nil {
		log.Fatalf("init database: %v", err)
	}
	if err := db.AutoMigrate(&database.User{}, &database.Resume{}, &database.Draft{}); err != nil {
		log.Fatalf("auto migrate: %v", err)
	}
	logger.Info("database ready",
		slog.String("host", cfg.Database.Host),
		slog.String("name", cfg.Database.Name),
	)

	privateKey, err := os.ReadFile(cfg.Auth.PrivateKeyPath)
	if err != nil {
		log.Fatalf("read jwt private key: %v", err)
	}
	publicKey, err := os.ReadFile(cfg.Auth.PublicKeyPath)
	if err != nil {
		log.Fatalf("read jwt public key: %v", err)
	}
	authService, err := auth.NewAuthService(privateKey, publicKey, cfg.Auth.AccessTokenTTL, cfg.Auth.RefreshTokenTTL)
	if err != nil {
		log.Fatalf("init auth service: %v", err)
	}

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr()})
	defer redisClient.Close()
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("ping redis: %v", err)
	}

	asynqClient := asynq.NewClient(asynq.RedisClientOpt{Addr: cfg.Redis.Addr()})
	defer asynqClient.Close()

	storageClient, err := storage.NewClient(cfg.MinIO)
	if err != nil {
		log.Fatalf("init storage client: %v", err)
	}

	catalog := template.Builtin()
	renderer, err := render.New(catalog, logger)
	if err != nil {
		log.Fatalf("init renderer: %v", err)
	}

	parser, err := extract.NewClient(cfg.Extractor.BaseURL, cfg.Extractor.Timeout)
	if err != nil {
		log.Fatalf("init extractor client: %v", err)
	}

	router := api.NewRouter(logger)
	api.RegisterRoutes(router, api.Deps{
		Config:      cfg,
		DB:          db,
		AsynqClient: asynqClient,
		AuthService: authService,
		Redis:       redisClient,
		Storage:     storageClient,
		Catalog:     catalog,
		Renderer:    renderer,
		Parser:      parser,
		Logger:      logger,
	})

	address := fmt.Sprintf(":%d", cfg.API.Port)
	logger.Info("api listening", slog.String("address", address))
	if err := router.Run(address); err != nil {
		log.Fatalf("failed to start api server: %v", err)
	}
}
