package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/akamensky/argparse"

	"github.com/aprovame/integrations-api/internal/core/domain"
	"github.com/aprovame/integrations-api/internal/core/ports"
	"github.com/aprovame/integrations-api/internal/core/service"
	"github.com/aprovame/integrations-api/internal/infrastructure/config"
	"github.com/aprovame/integrations-api/internal/infrastructure/db/mongo"
	"github.com/aprovame/integrations-api/internal/infrastructure/security"
	"github.com/aprovame/integrations-api/pkg/logger"
)

// seed creates a user directly in the database, bypassing the API.
func main() {
	parser := argparse.NewParser("integrations-seed", "Creates the initial admin (or any) user in the integrations database")

	login := parser.String("l", "login", &argparse.Options{
		Required: true,
		Help:     "(Required) Login of the user to create",
	})
	password := parser.String("p", "password", &argparse.Options{
		Required: true,
		Help:     "(Required) Password of the user to create",
	})
	role := parser.Selector("r", "role", []string{domain.RoleAdmin, domain.RoleOperator}, &argparse.Options{
		Default: domain.RoleAdmin,
		Help:    "Role of the user",
	})
	indexes := parser.Flag("i", "ensure-indexes", &argparse.Options{
		Help: "Create collection indexes before seeding",
	})

	if err := parser.Parse(os.Args); err != nil {
		fmt.Print(parser.Usage(err))
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	cfg, err := config.LoadUnchecked(ctx)
	if err != nil {
		l := logger.Get()
		l.Fatal().Err(err).Msg("failed to load configuration")
	}
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true, Service: "integrations-seed", Env: cfg.Env})

	client, db, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connect")
	}
	defer client.Disconnect(context.Background())

	repo := mongo.NewUserRepository(db)
	if *indexes {
		if err := mongo.EnsureIndexes(ctx, repo, mongo.NewAssignorRepository(db), mongo.NewPayableRepository(db)); err != nil {
			log.Fatal().Err(err).Msg("ensure indexes")
		}
	}

	users := service.NewUserService(repo, security.NewBcryptHasher(cfg.Auth.BcryptCost), nil, log)

	if *role == domain.RoleAdmin {
		created, err := users.EnsureAdmin(ctx, *login, *password)
		if err != nil {
			log.Fatal().Err(err).Msg("seed admin")
		}
		log.Info().Str("login", *login).Bool("created", created).Msg("admin seed done")
		return
	}

	user, err := users.Create(ctx, "seed", ports.CreateUserInput{Login: *login, Password: *password, Role: *role})
	if err != nil {
		log.Fatal().Err(err).Msg("seed user")
	}
	log.Info().Str("login", user.Login).Str("id", user.ID).Msg("user created")
}
