// Command issue-token prints a signed access token for a user, for use as
// a Bearer header or the token cookie.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"gorm.io/gorm/logger"

	"github.com/mytheresa/catalog-admin/app/auth"
	"github.com/mytheresa/catalog-admin/app/config"
	"github.com/mytheresa/catalog-admin/app/database"
	"github.com/mytheresa/catalog-admin/app/logging"
	"github.com/mytheresa/catalog-admin/models"
)

func main() {
	userID := flag.Uint("user", 0, "user id; defaults to the seeded user")
	ttl := flag.Duration("ttl", 0, "token lifetime; defaults to JWT_TTL")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	log := logging.InitTo(cfg.Env, os.Stderr)

	if *ttl <= 0 {
		*ttl = cfg.Auth.TokenTTL
	}

	id := *userID
	if id == 0 {
		id, err = seededUserID(cfg)
		if err != nil {
			log.Error("failed to resolve seed user", "error", err)
			os.Exit(1)
		}
	}

	token, err := auth.IssueToken(cfg.Auth.JWTSecret, id, *ttl)
	if err != nil {
		log.Error("failed to sign token", "error", err)
		os.Exit(1)
	}
	fmt.Println(token)
}

func seededUserID(cfg *config.Config) (uint, error) {
	if cfg.Seed.UserEmail == "" {
		return 0, fmt.Errorf("pass -user or set SEED_USER_EMAIL")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := database.Connect(ctx, database.Config{
		Driver:      cfg.Database.Driver,
		DSN:         cfg.Database.DSN,
		Env:         cfg.Env,
		LogLevel:    logger.Silent,
		MaxAttempts: 3,
	})
	if err != nil {
		return 0, err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	if err := database.AutoMigrate(db, models.All()...); err != nil {
		return 0, err
	}
	user, err := models.NewUsersRepository(db).EnsureUser(ctx, cfg.Seed.UserName, cfg.Seed.UserEmail)
	if err != nil {
		return 0, err
	}
	return user.ID, nil
}
