package main

import (
	"context"
	"fmt"
	"os"

	"pet-adoption/internal/adapters/storage/postgres"
	"pet-adoption/internal/config"
	"pet-adoption/internal/domain/choices"
	"pet-adoption/internal/domain/pets"
	"pet-adoption/internal/domain/regions"
	"pet-adoption/internal/domain/shelters"
	"pet-adoption/internal/domain/users"
	"pet-adoption/internal/router"
)

func main() {
	root := newRootCmd(connectPostgres, postgres.Migrate)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// connectPostgres arma los services administrativos sobre la base configurada.
func connectPostgres(ctx context.Context) (*app, func(), error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	if cfg.Postgres.DSN == "" {
		return nil, nil, fmt.Errorf("postgres.dsn (POSTGRES_DSN) is required")
	}
	pool, err := postgres.Connect(ctx, postgres.Config{DSN: cfg.Postgres.DSN, MaxConns: 2})
	if err != nil {
		return nil, nil, err
	}
	return newApp(router.PostgresRepos(pool)), pool.Close, nil
}

func newApp(repos *router.Repos) *app {
	petsSvc := pets.NewService(repos.Pets)
	return &app{
		regions:  repos.Regions,
		users:    users.NewService(repos.Users),
		shelters: shelters.NewService(repos.Shelters).WithRegions(regions.NewService(repos.Regions, nil)),
		choices:  choices.NewService(repos.Choices, petsSvc),
	}
}
