package main

import (
	"context"
	"flag"
	"strings"

	"github.com/notsus/site-backend/internal/config"
	"github.com/notsus/site-backend/internal/logger"
	"github.com/notsus/site-backend/internal/service"
	"github.com/notsus/site-backend/internal/store"
)

// create-admin bootstraps (or re-keys) the operator account. Admin accounts
// are never created through the public API.
func main() {
	// flag.Parse happens inside config.GetStructuredConfig, which owns the
	// shared configuration flags; ours only need registering before it runs.
	var email, password string
	flag.StringVar(&email, "email", "", "admin account email")
	flag.StringVar(&password, "password", "", "admin account password")

	log := logger.NewLogger("create-admin")

	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		log.Fatal().Msg("-email is required")
	}
	if err := service.ValidatePassword(password); err != nil {
		log.Fatal().Err(err).Msg("password rejected")
	}

	ctx := context.Background()
	db, err := store.NewConnectPostgres(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("error applying migrations")
	}

	hash, err := service.HashPassword(password, cfg.App.BcryptCost)
	if err != nil {
		log.Fatal().Err(err).Msg("error hashing password")
	}

	users := store.NewUserRepository(db, log)
	id, err := users.UpsertAdmin(ctx, email, hash)
	if err != nil {
		log.Fatal().Err(err).Msg("error upserting admin account")
	}

	log.Info().Int64("id", id).Str("email", email).Msg("admin account ready")
}
