package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/mytheresa/catalog-admin/app/config"
	"github.com/mytheresa/catalog-admin/app/database"
	"github.com/mytheresa/catalog-admin/app/logging"
	"github.com/mytheresa/catalog-admin/app/server"
	"github.com/mytheresa/catalog-admin/app/storage"
	"github.com/mytheresa/catalog-admin/models"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Logger().Error("failed to load config", "error", err)
		os.Exit(1)
	}
	log := logging.Init(cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Connect(ctx, database.Config{
		Driver: cfg.Database.Driver,
		DSN:    cfg.Database.DSN,
		Env:    cfg.Env,
	})
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	if err := database.AutoMigrate(db, models.All()...); err != nil {
		log.Error("failed to migrate database", "error", err)
		os.Exit(1)
	}

	if cfg.Seed.UserEmail != "" {
		user, err := models.NewUsersRepository(db).EnsureUser(ctx, cfg.Seed.UserName, cfg.Seed.UserEmail)
		if err != nil {
			log.Error("failed to seed user", "error", err)
			os.Exit(1)
		}
		log.Info("seed user ready", "user_id", user.ID, "email", user.Email)
	}

	store, err := storage.New(ctx, storage.Config{
		Type:            cfg.Storage.Type,
		BasePath:        cfg.Storage.BasePath,
		PublicURL:       publicURL(cfg),
		Bucket:          cfg.Storage.Bucket,
		Endpoint:        cfg.Storage.Endpoint,
		Region:          cfg.Storage.Region,
		AccessKey:       cfg.Storage.AccessKey,
		SecretKey:       cfg.Storage.SecretKey,
		CredentialsFile: cfg.Storage.CredentialsFile,
	})
	if err != nil {
		log.Error("failed to init storage", "type", cfg.Storage.Type, "error", err)
		os.Exit(1)
	}

	router := server.NewRouter(cfg, db, store)
	if err := server.Run(ctx, cfg, server.NewHandler(cfg, router)); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

// publicURL defaults the local backend to the application URL.
func publicURL(cfg *config.Config) string {
	if cfg.Storage.PublicURL == "" && cfg.Storage.Type == "local" {
		return cfg.AppURL
	}
	return cfg.Storage.PublicURL
}
